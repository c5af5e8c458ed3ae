package normalize

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Object-shaped substrings holding both keys as quoted strings, in either
// order, with anything in between.
var objectRes = []*regexp.Regexp{
	regexp.MustCompile(`\{[\s\S]*?"mathjs"\s*:\s*"[^"]*"[\s\S]*?"latex"\s*:\s*"[^"]*"[\s\S]*?\}`),
	regexp.MustCompile(`\{[\s\S]*?"latex"\s*:\s*"[^"]*"[\s\S]*?"mathjs"\s*:\s*"[^"]*"[\s\S]*?\}`),
}

// Single-line, unescaped field values. Values containing escaped quotes are
// not supported.
var (
	mathjsFieldRe = regexp.MustCompile(`"mathjs"\s*:\s*"([^"\n]*)"`)
	latexFieldRe  = regexp.MustCompile(`"latex"\s*:\s*"([^"\n]*)"`)
)

// ExtractJSON finds a JSON object containing both keys and decodes it.
// It returns nil when no candidate decodes.
func ExtractJSON(text string) map[string]any {
	for offset := 0; offset < len(text); {
		start, m := nextObject(text[offset:])
		if start < 0 {
			return nil
		}
		if m != nil {
			return m
		}
		offset += start + 1
	}
	return nil
}

// nextObject returns the position of the earliest candidate match in text
// and its decoded form, or a nil map if the candidate does not decode.
func nextObject(text string) (int, map[string]any) {
	best := -1
	var match string
	for _, re := range objectRes {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if best < 0 || loc[0] < best {
			best = loc[0]
			match = text[loc[0]:loc[1]]
		}
	}
	if best < 0 {
		return -1, nil
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(match), &m); err == nil && m != nil {
		return best, m
	}

	// The lazy match can stop at a brace inside a value; decode the first
	// complete value starting at the same brace instead.
	dec := json.NewDecoder(strings.NewReader(text[best:]))
	if err := dec.Decode(&m); err == nil && m != nil && hasBothKeys(m) {
		return best, m
	}
	return best, nil
}

func hasBothKeys(m map[string]any) bool {
	_, okA := m["mathjs"]
	_, okB := m["latex"]
	return okA && okB
}

// ExtractFields matches the two key/value pairs independently. Both must
// be found.
func ExtractFields(text string) (mathjs, latex string, ok bool) {
	a := mathjsFieldRe.FindStringSubmatch(text)
	b := latexFieldRe.FindStringSubmatch(text)
	if a == nil || b == nil {
		return "", "", false
	}
	return a[1], b[1], true
}

// LastTwoLines returns the last two non-empty lines of text.
func LastTwoLines(text string) (primary, display string, ok bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return "", "", false
	}
	return lines[len(lines)-2], lines[len(lines)-1], true
}
