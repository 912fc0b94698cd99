package report

// ElevationCounts buckets avalanches by treeline band.
type ElevationCounts struct {
	AboveTreeline int `json:"aboveTreeline"`
	NearTreeline  int `json:"nearTreeline"`
	BelowTreeline int `json:"belowTreeline"`
}

func (c *ElevationCounts) add(band ElevationBand) {
	switch band {
	case BandAboveTreeline:
		c.AboveTreeline++
	case BandNearTreeline:
		c.NearTreeline++
	case BandBelowTreeline:
		c.BelowTreeline++
	}
}

// Sum returns the number of classified avalanches across all bands.
func (c ElevationCounts) Sum() int {
	return c.AboveTreeline + c.NearTreeline + c.BelowTreeline
}

// AspectCounts buckets avalanches by compass direction.
type AspectCounts struct {
	N  int `json:"N"`
	NE int `json:"NE"`
	E  int `json:"E"`
	SE int `json:"SE"`
	S  int `json:"S"`
	SW int `json:"SW"`
	W  int `json:"W"`
	NW int `json:"NW"`
}

func (c *AspectCounts) add(aspect Aspect) {
	switch aspect {
	case AspectN:
		c.N++
	case AspectNE:
		c.NE++
	case AspectE:
		c.E++
	case AspectSE:
		c.SE++
	case AspectS:
		c.S++
	case AspectSW:
		c.SW++
	case AspectW:
		c.W++
	case AspectNW:
		c.NW++
	}
}

// Sum returns the number of classified avalanches across all directions.
func (c AspectCounts) Sum() int {
	return c.N + c.NE + c.E + c.SE + c.S + c.SW + c.W + c.NW
}

// InstabilityCounts buckets instability signs by severity level.
type InstabilityCounts struct {
	None     int `json:"none"`
	Minor    int `json:"minor"`
	Moderate int `json:"moderate"`
	Major    int `json:"major"`
	Severe   int `json:"severe"`
}

func (c *InstabilityCounts) add(level InstabilityLevel) {
	switch level {
	case InstabilityMinor:
		c.Minor++
	case InstabilityModerate:
		c.Moderate++
	case InstabilityMajor:
		c.Major++
	case InstabilitySevere:
		c.Severe++
	default:
		c.None++
	}
}

// Sum returns the total number of classified instability signs.
func (c InstabilityCounts) Sum() int {
	return c.None + c.Minor + c.Moderate + c.Major + c.Severe
}

// Snapshot is the fixed-shape statistical summary of one day of field
// reports. It is built fresh per request and holds no state beyond it.
type Snapshot struct {
	TotalReports          int               `json:"totalReports"`
	ReportsWithAvalanches int               `json:"reportsWithAvalanches"`
	TotalAvalanches       int               `json:"totalAvalanches"`
	AvalanchesByElevation ElevationCounts   `json:"avalanchesByElevation"`
	AvalanchesByAspect    AspectCounts      `json:"avalanchesByAspect"`
	CrackingCounts        InstabilityCounts `json:"crackingCounts"`
	CollapsingCounts      InstabilityCounts `json:"collapsingCounts"`
}

// Aggregate folds a day of field reports into a Snapshot in a single pass.
//
// Avalanche observations whose elevation or aspect matches no category are
// dropped rather than miscounted, so the per-bucket sums may undershoot
// TotalAvalanches. Every snowpack observation contributes exactly one
// cracking and one collapsing classification; a report with no snowpack
// observations contributes a single implicit "none" to each counter.
func Aggregate(reports []FieldReport) Snapshot {
	snap := Snapshot{TotalReports: len(reports)}

	for _, rep := range reports {
		count := len(rep.AvalancheObservations)
		if count == 0 && rep.AvalancheObservationsCount > 0 {
			count = rep.AvalancheObservationsCount
		}
		if count > 0 {
			snap.ReportsWithAvalanches++
			snap.TotalAvalanches += count
		}

		for _, obs := range rep.AvalancheObservations {
			snap.AvalanchesByElevation.add(ClassifyElevation(deref(obs.Elevation)))
			snap.AvalanchesByAspect.add(ClassifyAspect(deref(obs.Aspect)))
		}

		if len(rep.SnowpackObservations) == 0 {
			snap.CrackingCounts.add(InstabilityNone)
			snap.CollapsingCounts.add(InstabilityNone)
			continue
		}
		for _, obs := range rep.SnowpackObservations {
			snap.CrackingCounts.add(ClassifyInstability(deref(obs.Cracking)))
			snap.CollapsingCounts.add(ClassifyInstability(deref(obs.Collapsing)))
		}
	}
	return snap
}
