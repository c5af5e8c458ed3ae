package symbolic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFunction is wrapped by errors for calls to names the grammar
// does not define.
var ErrUnknownFunction = errors.New("unknown function")

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 200

// SyntaxError reports a parse failure at a byte offset in the source.
type SyntaxError struct {
	Pos int
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// arity is the accepted argument count range; max < 0 means unbounded.
type arity struct{ min, max int }

var functions = map[string]arity{
	"sin": {1, 1}, "cos": {1, 1}, "tan": {1, 1}, "cot": {1, 1}, "sec": {1, 1}, "csc": {1, 1},
	"asin": {1, 1}, "acos": {1, 1}, "atan": {1, 1}, "atan2": {2, 2},
	"sinh": {1, 1}, "cosh": {1, 1}, "tanh": {1, 1},
	"asinh": {1, 1}, "acosh": {1, 1}, "atanh": {1, 1},
	"exp": {1, 1}, "ln": {1, 1}, "log": {1, 2}, "log10": {1, 1}, "log2": {1, 1},
	"sqrt": {1, 1}, "cbrt": {1, 1}, "root": {2, 2}, "nthRoot": {2, 2},
	"abs": {1, 1}, "sign": {1, 1}, "floor": {1, 1}, "ceil": {1, 1},
	"factorial": {1, 1}, "gamma": {1, 1},
	"min": {1, -1}, "max": {1, -1}, "mod": {2, 2}, "gcd": {2, -1}, "lcm": {2, -1},
	"binomial": {2, 2},
	"derivative": {2, 3}, "diff": {1, -1},
	"integrate": {1, 4}, "integral": {1, 4},
	"limit": {3, 4}, "sum": {1, 4}, "summation": {1, 4}, "product": {1, 4},
}

// names that stay whole instead of being split into single-letter symbols.
var constants = map[string]bool{
	"pi": true, "e": true, "E": true, "i": true, "I": true,
	"oo": true, "inf": true, "infinity": true, "Infinity": true,
}

func isKnownName(name string) bool {
	_, greek := prettyNames[name]
	return greek || constants[name]
}

type parser struct {
	toks  []token
	pos   int
	depth int
}

// Parse parses a MathJS-style expression using ** for powers. Adjacent
// operands multiply implicitly and known functions may be applied without
// parentheses. A power written on the function name, as in sin**2(x),
// applies to the call. Comparisons bind loosest.
func Parse(src string) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}

	if p.peek().kind == tokEOF {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}

	n, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", describe(t))}
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected %s, found %s", kind, describe(t))}
	}
	return t, nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return &SyntaxError{Pos: p.peek().pos, Msg: "expression nested too deeply"}
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseCompare() (Node, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokRel {
		t := p.next()
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.text, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseSum() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokPlus && t.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.text, L: left, R: right}
	}
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch {
		case t.kind == tokStar || t.kind == tokSlash || t.kind == tokPercent:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: t.text, L: left, R: right}
		case startsOperand(t):
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: "*", L: left, R: right}
		default:
			return left, nil
		}
	}
}

// startsOperand reports whether t can begin an implicitly multiplied factor.
func startsOperand(t token) bool {
	return t.kind == tokNumber || t.kind == tokIdent || t.kind == tokLParen
}

func (p *parser) parseUnary() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.peek().kind {
	case tokMinus:
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Neg{X: x}, nil
	case tokPlus:
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: "**", L: base, R: exp}, nil
}

func (p *parser) parsePostfix() (Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokBang {
		p.next()
		n = &Factorial{X: n}
	}
	return n, nil
}

func (p *parser) parsePrimary() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	t := p.next()
	switch t.kind {
	case tokNumber:
		return &Num{Text: t.text}, nil

	case tokLParen:
		n, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return n, nil

	case tokIdent:
		return p.parseName(t)
	}
	return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", describe(t))}
}

// parseName resolves an identifier to a call, a symbol, or a product of
// single-letter symbols.
func (p *parser) parseName(t token) (Node, error) {
	name := t.text

	if ar, ok := functions[name]; ok {
		if p.peek().kind == tokPow {
			return p.parseCallPower(t, ar)
		}
		if call, err := p.parseApplication(t, ar); call != nil || err != nil {
			return call, err
		}
		if isKnownName(name) {
			return &Sym{Name: name}, nil
		}
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("function %s is missing its argument", name)}
	}

	runes := []rune(name)
	if len(runes) == 1 || isKnownName(name) || strings.ContainsAny(name, "_0123456789") {
		return &Sym{Name: name}, nil
	}

	if p.peek().kind == tokLParen {
		return nil, &SyntaxError{
			Pos: t.pos,
			Msg: fmt.Sprintf("unknown function %q", name),
			Err: ErrUnknownFunction,
		}
	}

	// Unknown multi-letter names split into single-letter symbols.
	var n Node = &Sym{Name: string(runes[0])}
	for _, r := range runes[1:] {
		n = &Binary{Op: "*", L: n, R: &Sym{Name: string(r)}}
	}
	return n, nil
}

// parseApplication parses the arguments of a function name, with or without
// parentheses. It returns nil when no argument follows.
func (p *parser) parseApplication(name token, ar arity) (Node, error) {
	if p.peek().kind == tokLParen {
		return p.parseCall(name, ar)
	}
	// Application without parentheses: sin x.
	if startsOperand(p.peek()) {
		arg, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return &Call{Name: name.text, Args: []Node{arg}}, nil
	}
	return nil, nil
}

// parseCallPower handles sin**2(x), which means sin(x)**2.
func (p *parser) parseCallPower(name token, ar arity) (Node, error) {
	p.next() // **
	neg := p.peek().kind == tokMinus
	if neg {
		p.next()
	}
	exp, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if neg {
		exp = &Neg{X: exp}
	}

	call, err := p.parseApplication(name, ar)
	if err != nil {
		return nil, err
	}
	if call == nil {
		// gamma**2 is the Greek letter squared.
		if !isKnownName(name.text) {
			return nil, &SyntaxError{Pos: name.pos, Msg: fmt.Sprintf("function %s is missing its argument", name.text)}
		}
		call = &Sym{Name: name.text}
	}
	return &Binary{Op: "**", L: call, R: exp}, nil
}

func (p *parser) parseCall(name token, ar arity) (Node, error) {
	p.next() // (
	var args []Node
	if p.peek().kind != tokRParen {
		for {
			arg, err := p.parseCompare()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}

	if len(args) < ar.min || (ar.max >= 0 && len(args) > ar.max) {
		return nil, &SyntaxError{
			Pos: name.pos,
			Msg: fmt.Sprintf("%s takes %s, got %d", name.text, describeArity(ar), len(args)),
		}
	}
	return &Call{Name: name.text, Args: args}, nil
}

func describeArity(ar arity) string {
	switch {
	case ar.min == ar.max && ar.min == 1:
		return "1 argument"
	case ar.min == ar.max:
		return fmt.Sprintf("%d arguments", ar.min)
	case ar.max < 0:
		return fmt.Sprintf("at least %d arguments", ar.min)
	default:
		return fmt.Sprintf("%d to %d arguments", ar.min, ar.max)
	}
}

func describe(t token) string {
	if t.kind == tokNumber || t.kind == tokIdent || t.kind == tokRel {
		return fmt.Sprintf("%s %q", t.kind, t.text)
	}
	return t.kind.String()
}
