package ats

import (
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

const similarityThreshold = 0.8

// tokenizeSkills splits a free-text skill line into individual skill tokens.
// Lines like "Languages: Python, R" yield ["Python", "R"]: the separator set
// includes ':' so the leading label becomes its own token, and single-rune
// tokens are dropped as noise.
func tokenizeSkills(line string) []string {
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		switch r {
		case ',', ';', '|', ':':
			return true
		}
		return false
	})
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if len([]rune(tok)) > 1 {
			out = append(out, tok)
		}
	}
	return out
}

// countFuzzyMatches counts how many wanted skills appear among the resume
// skills. A wanted skill matches on substring containment in either
// direction, or on similarity ratio above the threshold.
func countFuzzyMatches(resumeSkills, wanted []string) int {
	matches := 0
	for _, want := range wanted {
		for _, have := range resumeSkills {
			if strings.Contains(have, want) || strings.Contains(want, have) {
				matches++
				break
			}
			if similarityRatio(want, have) > similarityThreshold {
				matches++
				break
			}
		}
	}
	return matches
}

// similarityRatio maps edit distance onto [0,1]: identical strings score 1.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// parseGradePercent interprets "X/Y" as a fraction or a bare number as an
// already-scaled percentage.
func parseGradePercent(grade string) (float64, bool) {
	if num, denom, found := strings.Cut(grade, "/"); found {
		n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, err2 := strconv.ParseFloat(strings.TrimSpace(denom), 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d * 100, true
	}
	n, err := strconv.ParseFloat(grade, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
