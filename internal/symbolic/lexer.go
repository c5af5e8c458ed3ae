package symbolic

import (
	"fmt"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokPow // **
	tokRel // < > <= >= == != =
	tokLParen
	tokRParen
	tokComma
	tokBang
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokIdent:
		return "name"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokPercent:
		return "'%'"
	case tokPow:
		return "'**'"
	case tokRel:
		return "comparison"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokBang:
		return "'!'"
	default:
		return "token"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits src into tokens. Positions are byte offsets.
func lex(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	offsets := make([]int, len(rs)+1)
	off := 0
	for i, r := range rs {
		offsets[i] = off
		off += len(string(r))
	}
	offsets[len(rs)] = off

	for i := 0; i < len(rs); {
		r := rs[i]
		pos := offsets[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case isDigit(r) || (r == '.' && i+1 < len(rs) && isDigit(rs[i+1])):
			start := i
			seenDot := false
			for i < len(rs) && (isDigit(rs[i]) || (rs[i] == '.' && !seenDot)) {
				if rs[i] == '.' {
					seenDot = true
				}
				i++
			}
			// Scientific notation: 1e5, 2.5E-3.
			if i < len(rs) && (rs[i] == 'e' || rs[i] == 'E') {
				j := i + 1
				if j < len(rs) && (rs[j] == '+' || rs[j] == '-') {
					j++
				}
				if j < len(rs) && isDigit(rs[j]) {
					for j < len(rs) && isDigit(rs[j]) {
						j++
					}
					i = j
				}
			}
			toks = append(toks, token{kind: tokNumber, text: string(rs[start:i]), pos: pos})

		case isIdentStart(r):
			start := i
			for i < len(rs) && isIdentPart(rs[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(rs[start:i]), pos: pos})

		case r == '*':
			if i+1 < len(rs) && rs[i+1] == '*' {
				toks = append(toks, token{kind: tokPow, text: "**", pos: pos})
				i += 2
			} else {
				toks = append(toks, token{kind: tokStar, text: "*", pos: pos})
				i++
			}

		case r == '<' || r == '>' || r == '=' || (r == '!' && i+1 < len(rs) && rs[i+1] == '='):
			op := string(r)
			if i+1 < len(rs) && rs[i+1] == '=' {
				op += "="
			}
			toks = append(toks, token{kind: tokRel, text: op, pos: pos})
			i += len(op)

		default:
			kind, ok := punct[r]
			if !ok {
				return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unexpected character %q", r)}
			}
			toks = append(toks, token{kind: kind, text: string(r), pos: pos})
			i++
		}
	}

	toks = append(toks, token{kind: tokEOF, pos: offsets[len(rs)]})
	return toks, nil
}

var punct = map[rune]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'/': tokSlash,
	'%': tokPercent,
	'(': tokLParen,
	')': tokRParen,
	',': tokComma,
	'!': tokBang,
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
