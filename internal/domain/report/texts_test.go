package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectTextsPrefersObservationSummary(t *testing.T) {
	reports := []FieldReport{
		{ID: 1, ObservationSummary: strPtr("summary text"), Description: strPtr("description text")},
		{ID: 2, Description: strPtr("fallback description")},
		{ID: 3},
	}

	bundle := CollectTexts(reports)

	// Never both: the summary wins when present, description only fills in
	// when the summary field is absent.
	assert.Equal(t, []string{"summary text", "fallback description"}, bundle.Observations)
}

func TestCollectTextsSnowpackOrder(t *testing.T) {
	reports := []FieldReport{
		{
			ID:             1,
			SnowpackDetail: &SnowpackDetail{Description: strPtr("  detail one  ")},
			SnowpackObservations: []SnowpackObservation{
				{Comments: strPtr("obs one")},
				{Comments: strPtr("   ")},
				{Comments: strPtr("obs two")},
			},
		},
		{
			ID:                   2,
			SnowpackObservations: []SnowpackObservation{{Comments: strPtr("obs three")}},
		},
	}

	bundle := CollectTexts(reports)

	assert.Equal(t, []string{"detail one", "obs one", "obs two", "obs three"}, bundle.Snowpack)
}

func TestCollectTextsWeather(t *testing.T) {
	reports := []FieldReport{
		{
			ID:                  1,
			WeatherDetail:       &WeatherDetail{Description: strPtr("light snow overnight")},
			WeatherObservations: []WeatherObservation{{Comments: strPtr("wind loading ridgelines")}, {Comments: nil}},
		},
	}

	bundle := CollectTexts(reports)

	assert.Equal(t, []string{"light snow overnight", "wind loading ridgelines"}, bundle.Weather)
}

func TestCollectTextsEmptyInput(t *testing.T) {
	bundle := CollectTexts(nil)
	assert.Empty(t, bundle.Observations)
	assert.Empty(t, bundle.Snowpack)
	assert.Empty(t, bundle.Weather)
	assert.NotNil(t, bundle.Observations)
}
