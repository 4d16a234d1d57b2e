package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAspectResult turns raw oracle output into an AspectResult. It never
// fails: when the payload cannot be interpreted, the result carries a zero
// score and a reasoning entry describing the problem. Scores are coerced to
// a number and clamped to [0,100].
func ParseAspectResult(raw string) AspectResult {
	obj, ok := ExtractJSONObject(raw)
	if !ok {
		return errorResult(fmt.Sprintf("no JSON object in oracle output (%d bytes)", len(raw)))
	}

	var loose struct {
		Score     json.RawMessage `json:"score"`
		Breakdown map[string]any  `json:"breakdown"`
		Reasoning map[string]any  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(obj), &loose); err != nil {
		return errorResult("decode oracle output: " + err.Error())
	}

	score, err := coerceScore(loose.Score)
	if err != nil {
		return errorResult("oracle score: " + err.Error())
	}

	res := AspectResult{
		Score:     clampScore(score),
		Breakdown: loose.Breakdown,
		Reasoning: loose.Reasoning,
	}
	if res.Breakdown == nil {
		res.Breakdown = map[string]any{}
	}
	if res.Reasoning == nil {
		res.Reasoning = map[string]any{}
	}
	return res
}

// ExtractJSONObject returns the first balanced {...} substring. Oracle
// responses are often wrapped in prose or markdown fences.
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

func coerceScore(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing")
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return 0, fmt.Errorf("not numeric: %q", str)
		}
		return parsed, nil
	}
	return 0, fmt.Errorf("not numeric: %s", string(raw))
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Min(100, math.Max(0, score))
}

func errorResult(msg string) AspectResult {
	return AspectResult{
		Score:     0,
		Breakdown: map[string]any{},
		Reasoning: map[string]any{"error": msg},
	}
}
