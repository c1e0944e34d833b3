package match

import (
	"math"
	"regexp"
	"strings"
)

var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// tokenize splits text into lowercase alphanumeric tokens.
func tokenize(text string) []string {
	raw := tokenSplitPattern.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// similarity computes the cosine similarity between the token-frequency
// vectors of two strings. Returns 0 when either side has no tokens.
//
// It only orders ambiguous candidates for presentation; it never decides a
// match on its own.
func similarity(a, b string) float64 {
	ca, na := counts(a)
	cb, nb := counts(b)
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for token, count := range ca {
		if other, ok := cb[token]; ok {
			dot += count * other
		}
	}
	return dot / (na * nb)
}

func counts(text string) (map[string]float64, float64) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, 0
	}
	c := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		c[t]++
	}
	var norm float64
	for _, count := range c {
		norm += count * count
	}
	return c, math.Sqrt(norm)
}
