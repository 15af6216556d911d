package toon

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ============================================================
// Conversion Statistics
// ============================================================
//
// Token counts are an approximation, not a tokenizer: roughly four
// characters per token plus a weight for structural punctuation. The
// arithmetic is fixed bit-for-bit because downstream cost figures are
// derived from it.

// ConversionStats summarizes the savings of one JSON -> TOON conversion.
type ConversionStats struct {
	JSONTokenCount   int     `json:"jsonTokenCount"`
	TOONTokenCount   int     `json:"toonTokenCount"`
	TokensSaved      int     `json:"tokensSaved"`
	PercentageSaved  float64 `json:"percentageSaved"`
	JSONSize         int     `json:"jsonSize"`
	TOONSize         int     `json:"toonSize"`
	CompressionRatio float64 `json:"compressionRatio"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// structural characters carry extra tokenization weight.
const structuralChars = "{}[]:,"

// EstimateTokens estimates the token count of a text: whitespace runs
// collapse to a single space, the character count divides by four rounding
// up, and each structural character adds 0.3 tokens, rounded up in total.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	normalized := whitespaceRun.ReplaceAllString(text, " ")

	structural := 0
	for i := 0; i < len(normalized); i++ {
		if strings.IndexByte(structuralChars, normalized[i]) >= 0 {
			structural++
		}
	}

	tokens := (utf8.RuneCountInString(normalized) + 3) / 4
	tokens += int(math.Ceil(0.3 * float64(structural)))
	return tokens
}

// ComputeStats derives conversion statistics from the two text forms.
// When the JSON side estimates to zero tokens the percentage saved is 0,
// and likewise a zero-byte JSON text yields a 0 compression ratio.
func ComputeStats(jsonText, toonText string) ConversionStats {
	jsonTokens := EstimateTokens(jsonText)
	toonTokens := EstimateTokens(toonText)

	stats := ConversionStats{
		JSONTokenCount: jsonTokens,
		TOONTokenCount: toonTokens,
		TokensSaved:    jsonTokens - toonTokens,
		JSONSize:       len(jsonText),
		TOONSize:       len(toonText),
	}

	if jsonTokens > 0 {
		pct := float64(stats.TokensSaved) / float64(jsonTokens) * 100
		stats.PercentageSaved = roundTo(pct, 2)
	}
	if stats.JSONSize > 0 {
		stats.CompressionRatio = roundTo(float64(stats.TOONSize)/float64(stats.JSONSize), 3)
	}
	return stats
}

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
