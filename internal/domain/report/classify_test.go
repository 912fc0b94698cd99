package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyElevation(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected ElevationBand
	}{
		{"empty", "", BandUnclassified},
		{"whitespace only", "   ", BandUnclassified},
		{"numeric entity above", "&#62;TL", BandAboveTreeline},
		{"numeric entity below", "&#60;TL", BandBelowTreeline},
		{"named entity above", "&gt;TL", BandAboveTreeline},
		{"named entity below", "&lt;TL", BandBelowTreeline},
		{"literal above treeline", ">TL", BandAboveTreeline},
		{"leading gt only", "> treeline", BandAboveTreeline},
		{"atl code", "ATL", BandAboveTreeline},
		{"atl lowercase", "atl", BandAboveTreeline},
		{"above word", "Above Treeline", BandAboveTreeline},
		{"alpine", "alpine zone", BandAboveTreeline},
		{"literal below treeline", "<TL", BandBelowTreeline},
		{"btl code", "BTL", BandBelowTreeline},
		{"below word", "below treeline", BandBelowTreeline},
		{"subalpine", "subalpine", BandBelowTreeline},
		{"bare tl", "TL", BandNearTreeline},
		{"bare tl lowercase trimmed", " tl ", BandNearTreeline},
		{"ntl code", "NTL", BandNearTreeline},
		{"near word", "Near TL", BandNearTreeline},
		{"treeline word", "at treeline", BandNearTreeline},
		{"unknown", "unknown", BandUnclassified},
		{"elevation number", "2400m", BandUnclassified},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyElevation(tc.raw))
		})
	}
}

func TestClassifyElevationAboveWinsOverBelow(t *testing.T) {
	// A string carrying both markers resolves above, the designed tie-break.
	assert.Equal(t, BandAboveTreeline, ClassifyElevation("ATL and BTL"))
	assert.Equal(t, BandAboveTreeline, ClassifyElevation(">TL to <TL"))
}

func TestClassifyElevationCodesBeatBareTL(t *testing.T) {
	// ATL/BTL contain the bare TL token; they must never land near treeline.
	assert.Equal(t, BandAboveTreeline, ClassifyElevation("ATL"))
	assert.Equal(t, BandBelowTreeline, ClassifyElevation("BTL"))
}

func TestClassifyAspect(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Aspect
	}{
		{"empty", "", AspectUnclassified},
		{"whitespace only", "  \t", AspectUnclassified},
		{"exact north", "N", AspectN},
		{"exact northwest", "NW", AspectNW},
		{"exact northeast", "NE", AspectNE},
		{"exact southeast", "SE", AspectSE},
		{"exact southwest", "SW", AspectSW},
		{"exact east", "E", AspectE},
		{"exact south", "S", AspectS},
		{"exact west", "W", AspectW},
		{"lowercase", "nw", AspectNW},
		{"padded", "  se  ", AspectSE},
		{"word in sentence", "N facing", AspectN},
		{"word with slash", "NE/E start zone", AspectNE},
		{"two letter beats single", "NW aspect", AspectNW},
		{"spelled out not recognized", "northeast facing", AspectUnclassified},
		{"embedded in word", "SNOW", AspectUnclassified},
		{"no aspect", "ridge top", AspectUnclassified},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyAspect(tc.raw))
		})
	}
}

func TestClassifyInstability(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected InstabilityLevel
	}{
		{"empty", "", InstabilityNone},
		{"whitespace only", "   ", InstabilityNone},
		{"explicit none", "None observed", InstabilityNone},
		{"bare no", "no", InstabilityNone},
		{"minor", "minor cracking", InstabilityMinor},
		{"slight", "Slight", InstabilityMinor},
		{"light", "light collapsing", InstabilityMinor},
		{"moderate", "moderate", InstabilityModerate},
		{"medium", "Medium cracking", InstabilityModerate},
		{"major", "major collapsing", InstabilityMajor},
		{"heavy", "heavy", InstabilityMajor},
		{"significant", "significant cracking", InstabilityMajor},
		{"severe", "severe", InstabilitySevere},
		{"extreme", "extreme collapsing", InstabilitySevere},
		{"widespread", "widespread collapsing", InstabilitySevere},
		{"unrecognized", "unrecognized text", InstabilityNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyInstability(tc.raw))
		})
	}
}

func TestClassifyInstabilityNoneWinsFirst(t *testing.T) {
	// "none" anywhere in the text short-circuits the later severity rules.
	assert.Equal(t, InstabilityNone, ClassifyInstability("none, previously minor"))
}
