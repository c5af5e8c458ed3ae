package expression

import (
	"fmt"
	"strings"
)

// Display formats the record as the fixed-order human-readable block used
// on screen and at the top of saved files.
func (e *Expression) Display() string {
	lines := []string{"Mathematical Expression:"}

	if e.query != "" {
		lines = append(lines, "Query: "+e.query)
	}

	lines = append(lines,
		"MathJS: "+e.mathjs,
		"LaTeX:  "+e.latex,
	)

	if e.rendering != "" {
		lines = append(lines, "", "Symbolic form:", e.rendering)
	}

	if e.hasLatency {
		lines = append(lines, "", fmt.Sprintf("Response time: %.3f seconds", e.latency))
	}

	return strings.Join(lines, "\n")
}
