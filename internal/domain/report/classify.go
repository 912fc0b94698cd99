package report

import "strings"

// ElevationBand places an avalanche relative to treeline.
type ElevationBand int

const (
	BandUnclassified ElevationBand = iota
	BandAboveTreeline
	BandNearTreeline
	BandBelowTreeline
)

var elevationBandNames = map[ElevationBand]string{
	BandUnclassified:  "unclassified",
	BandAboveTreeline: "above_treeline",
	BandNearTreeline:  "near_treeline",
	BandBelowTreeline: "below_treeline",
}

func (b ElevationBand) String() string {
	if name, ok := elevationBandNames[b]; ok {
		return name
	}
	return "unclassified"
}

// Aspect is one of the eight principal compass directions a slope faces.
type Aspect int

const (
	AspectUnclassified Aspect = iota
	AspectN
	AspectNE
	AspectE
	AspectSE
	AspectS
	AspectSW
	AspectW
	AspectNW
)

var aspectNames = map[Aspect]string{
	AspectUnclassified: "unclassified",
	AspectN:            "N",
	AspectNE:           "NE",
	AspectE:            "E",
	AspectSE:           "SE",
	AspectS:            "S",
	AspectSW:           "SW",
	AspectW:            "W",
	AspectNW:           "NW",
}

func (a Aspect) String() string {
	if name, ok := aspectNames[a]; ok {
		return name
	}
	return "unclassified"
}

// InstabilityLevel rates a snowpack instability sign. Classification is
// total: unrecognized or missing text maps to InstabilityNone.
type InstabilityLevel int

const (
	InstabilityNone InstabilityLevel = iota
	InstabilityMinor
	InstabilityModerate
	InstabilityMajor
	InstabilitySevere
)

var instabilityNames = map[InstabilityLevel]string{
	InstabilityNone:     "none",
	InstabilityMinor:    "minor",
	InstabilityModerate: "moderate",
	InstabilityMajor:    "major",
	InstabilitySevere:   "severe",
}

func (l InstabilityLevel) String() string {
	if name, ok := instabilityNames[l]; ok {
		return name
	}
	return "none"
}

var entityReplacer = strings.NewReplacer(
	"&#62;", ">",
	"&#60;", "<",
	"&gt;", ">",
	"&lt;", "<",
)

// ClassifyElevation maps free-text elevation to a treeline band.
//
// The above/below rules run before the near-treeline rule: the bare "TL"
// token is a substring of both "ATL" and "BTL", so checking the more
// specific markers first keeps "ATL" out of the near-treeline bucket. A
// string carrying both an above and a below marker lands above, which is the
// intended tie-break.
func ClassifyElevation(raw string) ElevationBand {
	text := strings.ToUpper(strings.TrimSpace(entityReplacer.Replace(raw)))
	if text == "" {
		return BandUnclassified
	}

	switch {
	case strings.Contains(text, ">TL") || strings.HasPrefix(text, ">") ||
		strings.Contains(text, "ATL") || strings.Contains(text, "ABOVE") || strings.Contains(text, "ALPINE"):
		return BandAboveTreeline
	case strings.Contains(text, "<TL") || strings.HasPrefix(text, "<") ||
		strings.Contains(text, "BTL") || strings.Contains(text, "BELOW") || strings.Contains(text, "SUB"):
		return BandBelowTreeline
	case text == "TL" || strings.Contains(text, "NTL") ||
		strings.Contains(text, "NEAR") || strings.Contains(text, "TREELINE"):
		return BandNearTreeline
	}
	return BandUnclassified
}

var (
	twoLetterAspects = []Aspect{AspectNE, AspectNW, AspectSE, AspectSW}
	oneLetterAspects = []Aspect{AspectN, AspectE, AspectS, AspectW}
)

// ClassifyAspect maps free-text slope aspect to a compass direction.
//
// Two-letter codes are tried before single letters so "NW" is never captured
// as "N" plus a stray "W", and each code must appear as a whole word bounded
// by non-letter characters so "N" does not match inside "NW". Spelled-out
// direction words are not recognized.
func ClassifyAspect(raw string) Aspect {
	text := strings.ToUpper(strings.TrimSpace(raw))
	if text == "" {
		return AspectUnclassified
	}
	for _, aspect := range twoLetterAspects {
		if containsWord(text, aspect.String()) {
			return aspect
		}
	}
	for _, aspect := range oneLetterAspects {
		if containsWord(text, aspect.String()) {
			return aspect
		}
	}
	return AspectUnclassified
}

// containsWord reports whether code equals text or occurs inside it bounded
// by non-letter bytes or string edges.
func containsWord(text, code string) bool {
	if text == code {
		return true
	}
	for from := 0; ; {
		i := strings.Index(text[from:], code)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(code)
		startsWord := start == 0 || !isASCIILetter(text[start-1])
		endsWord := end == len(text) || !isASCIILetter(text[end])
		if startsWord && endsWord {
			return true
		}
		from = start + 1
	}
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// ClassifyInstability maps free-text cracking/collapsing severity to a
// level. First matching rule wins; anything unrecognized is the safe
// default, none.
func ClassifyInstability(raw string) InstabilityLevel {
	text := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case text == "" || text == "no" || strings.Contains(text, "none"):
		return InstabilityNone
	case strings.Contains(text, "minor") || strings.Contains(text, "slight") || strings.Contains(text, "light"):
		return InstabilityMinor
	case strings.Contains(text, "moderate") || strings.Contains(text, "medium"):
		return InstabilityModerate
	case strings.Contains(text, "major") || strings.Contains(text, "heavy") || strings.Contains(text, "significant"):
		return InstabilityMajor
	case strings.Contains(text, "severe") || strings.Contains(text, "extreme") || strings.Contains(text, "widespread"):
		return InstabilitySevere
	}
	return InstabilityNone
}
