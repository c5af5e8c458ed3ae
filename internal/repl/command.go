// Package repl is the interactive loop: it routes each input line either
// to a command (save, load, list, ...) or to the agent as a math query.
package repl

import "strings"

// Kind identifies a parsed input line.
type Kind int

const (
	KindQuery Kind = iota
	KindEmpty
	KindSave
	KindLoad
	KindList
	KindDebug
	KindRaw
	KindHelp
	KindExit
)

// Command is one parsed input line. Arg holds the file name for save and
// load, and the trimmed query text for KindQuery.
type Command struct {
	Kind Kind
	Arg  string
}

// bare commands take no argument; followed by more text the line is a query.
var bare = map[string]Kind{
	"list":  KindList,
	"debug": KindDebug,
	"raw":   KindRaw,
	"help":  KindHelp,
	"?":     KindHelp,
	"exit":  KindExit,
	"quit":  KindExit,
}

// ParseCommand classifies line. The command word is the first
// whitespace-separated token, matched case-insensitively; the rest of the
// line keeps its case.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: KindEmpty}
	}

	word, rest := line, ""
	if i := strings.IndexFunc(line, isSpace); i >= 0 {
		word, rest = line[:i], strings.TrimSpace(line[i:])
	}

	switch w := strings.ToLower(word); w {
	case "save":
		return Command{Kind: KindSave, Arg: rest}
	case "load":
		return Command{Kind: KindLoad, Arg: rest}
	default:
		if k, ok := bare[w]; ok && rest == "" {
			return Command{Kind: k}
		}
	}
	return Command{Kind: KindQuery, Arg: line}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

const helpText = `Available commands:
  save [filename] - Save the last expression to a file
  load <filename> - Load an expression from a file
  list            - List all saved expressions
  debug           - Toggle debug mode
  raw             - Show raw response from the last query
  help, ?         - Show this help message
  exit, quit      - Exit the program

Any other input will be treated as a math expression to process.`
