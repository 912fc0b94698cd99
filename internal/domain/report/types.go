package report

// FieldReport is a single public field report as returned by the avalanche
// center API. The upstream payload is loosely typed: optional fields arrive
// as null or are missing entirely, and collections default to empty.
type FieldReport struct {
	ID                 int     `json:"id"`
	Description        *string `json:"description"`
	ObservationSummary *string `json:"observation_summary"`

	SnowpackDetail *SnowpackDetail `json:"snowpack_detail"`
	WeatherDetail  *WeatherDetail  `json:"weather_detail"`

	AvalancheObservations []AvalancheObservation `json:"avalanche_observations"`
	SnowpackObservations  []SnowpackObservation  `json:"snowpack_observations"`
	WeatherObservations   []WeatherObservation   `json:"weather_observations"`

	// AvalancheObservationsCount is reported by historical API variants that
	// carry a count without itemized observations. It is only consulted when
	// AvalancheObservations is empty.
	AvalancheObservationsCount int `json:"avalanche_observations_count"`
}

// AvalancheObservation describes one observed avalanche. Elevation may carry
// HTML entities for < and > from the upstream CMS.
type AvalancheObservation struct {
	Aspect    *string `json:"aspect"`
	Elevation *string `json:"elevation"`
}

// SnowpackObservation captures free-text instability signs.
type SnowpackObservation struct {
	Cracking   *string `json:"cracking"`
	Collapsing *string `json:"collapsing"`
	Comments   *string `json:"comments"`
}

// WeatherObservation carries free-text weather comments.
type WeatherObservation struct {
	Comments *string `json:"comments"`
}

// SnowpackDetail is the report-level snowpack narrative.
type SnowpackDetail struct {
	Description *string `json:"description"`
}

// WeatherDetail is the report-level weather narrative.
type WeatherDetail struct {
	Description *string `json:"description"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
