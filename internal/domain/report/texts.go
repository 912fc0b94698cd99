package report

import "strings"

// TextBundle groups the free-text fragments extracted from a day of field
// reports, ready for downstream summarization. Ordering is stable: report
// order first, then observation order within a report.
type TextBundle struct {
	Observations []string `json:"observations"`
	Snowpack     []string `json:"snowpack"`
	Weather      []string `json:"weather"`
}

// CollectTexts gathers trimmed, non-blank narrative strings from each
// report. The observation text prefers observation_summary and falls back to
// description only when the summary field is absent, never emitting both.
func CollectTexts(reports []FieldReport) TextBundle {
	bundle := TextBundle{
		Observations: make([]string, 0, len(reports)),
		Snowpack:     make([]string, 0, len(reports)),
		Weather:      make([]string, 0, len(reports)),
	}

	for _, rep := range reports {
		text := rep.ObservationSummary
		if text == nil {
			text = rep.Description
		}
		bundle.Observations = appendText(bundle.Observations, deref(text))

		if rep.SnowpackDetail != nil {
			bundle.Snowpack = appendText(bundle.Snowpack, deref(rep.SnowpackDetail.Description))
		}
		for _, obs := range rep.SnowpackObservations {
			bundle.Snowpack = appendText(bundle.Snowpack, deref(obs.Comments))
		}

		if rep.WeatherDetail != nil {
			bundle.Weather = appendText(bundle.Weather, deref(rep.WeatherDetail.Description))
		}
		for _, obs := range rep.WeatherObservations {
			bundle.Weather = appendText(bundle.Weather, deref(obs.Comments))
		}
	}
	return bundle
}

func appendText(out []string, text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return out
	}
	return append(out, trimmed)
}
