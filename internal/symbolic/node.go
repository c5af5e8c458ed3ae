package symbolic

import "strings"

// Node is a parsed expression tree node. String returns the canonical
// ASCII form with ** for powers.
type Node interface {
	String() string
	prec() int
}

// Precedence levels, loosest first.
const (
	precCompare = iota + 1
	precSum
	precProduct
	precUnary
	precPower
	precPostfix
	precAtom
)

// Num is a numeric literal kept in its source spelling.
type Num struct{ Text string }

// Sym is a named symbol or constant.
type Sym struct{ Name string }

// Neg is unary minus.
type Neg struct{ X Node }

// Binary is an arithmetic operator (+ - * / % **) or a comparison
// (< > <= >= == != =).
type Binary struct {
	Op   string
	L, R Node
}

// Call is a known function applied to its arguments.
type Call struct {
	Name string
	Args []Node
}

// Factorial is the postfix ! operator.
type Factorial struct{ X Node }

func (n *Num) String() string { return n.Text }
func (n *Num) prec() int      { return precAtom }

func (s *Sym) String() string { return s.Name }
func (s *Sym) prec() int      { return precAtom }

func (n *Neg) String() string { return "-" + wrap(n.X, n.X.prec() <= precProduct) }
func (n *Neg) prec() int      { return precUnary }

func (b *Binary) String() string {
	l, r := binaryOperands(b)
	switch b.Op {
	case "**":
		return l.String() + "**" + r.String()
	case "*", "/":
		return l.String() + b.Op + r.String()
	default:
		return l.String() + " " + b.Op + " " + r.String()
	}
}

func (b *Binary) prec() int { return opPrec(b.Op) }

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

func (c *Call) prec() int { return precAtom }

func (f *Factorial) String() string { return wrap(f.X, f.X.prec() < precAtom) + "!" }
func (f *Factorial) prec() int      { return precPostfix }

func opPrec(op string) int {
	switch op {
	case "+", "-":
		return precSum
	case "*", "/", "%":
		return precProduct
	case "**":
		return precPower
	default:
		return precCompare
	}
}

// operand pairs a child with whether it needs parentheses under its parent.
type operand struct {
	n      Node
	parens bool
	render func(Node) string
}

func (o operand) String() string {
	r := o.render
	if r == nil {
		r = Node.String
	}
	s := r(o.n)
	if o.parens {
		return "(" + s + ")"
	}
	return s
}

// binaryOperands decides parenthesization for both children of b. Sums,
// products and comparisons are left associative; powers are right
// associative.
func binaryOperands(b *Binary) (operand, operand) {
	p := opPrec(b.Op)
	if b.Op == "**" {
		return operand{n: b.L, parens: b.L.prec() <= precPower},
			operand{n: b.R, parens: b.R.prec() < precPower}
	}
	commutative := b.Op == "+" || b.Op == "*"
	right := b.R.prec() < p || (!commutative && b.R.prec() == p)
	// Unary minus on the right of a sum or product reads ambiguously.
	if _, ok := b.R.(*Neg); ok && p > precCompare {
		right = true
	}
	return operand{n: b.L, parens: b.L.prec() < p}, operand{n: b.R, parens: right}
}

func wrap(n Node, parens bool) string {
	if parens {
		return "(" + n.String() + ")"
	}
	return n.String()
}
