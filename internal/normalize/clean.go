package normalize

import (
	"regexp"
	"strings"
)

// Patterns for deliberation noise that models emit around their answer.
var (
	thinkBlockRe = regexp.MustCompile(`<think>[\s\S]*?</think>`)

	fillerRes = []*regexp.Regexp{
		regexp.MustCompile(`/waiting for user to provide the result/`),
		regexp.MustCompile(`Please provide the result of the .* tool call\.`),
	}

	// Planning lines are removed through their trailing newline.
	planningLineRe = regexp.MustCompile(`(?m)^[ \t]*(?:I['’]ll think about|I['’]ll analyze|Now, I['’]ll create).*\n`)

	// Markdown fences around the JSON answer.
	fenceLineRe = regexp.MustCompile("(?m)^[ \t]*```[A-Za-z]*[ \t]*$")
)

// Clean strips deliberation blocks, filler sentences, planning lines and
// code fences, then trims surrounding whitespace. Removal repeats until the
// text stops changing, so Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	for {
		next := cleanOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func cleanOnce(text string) string {
	text = thinkBlockRe.ReplaceAllString(text, "")
	for _, re := range fillerRes {
		text = re.ReplaceAllString(text, "")
	}
	text = planningLineRe.ReplaceAllString(text, "")
	text = fenceLineRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
