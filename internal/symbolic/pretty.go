package symbolic

import "strings"

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'n': 'ⁿ', 'i': 'ⁱ',
}

var prettyNames = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"zeta": "ζ", "eta": "η", "theta": "θ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "omicron": "ο",
	"pi": "π", "rho": "ρ", "sigma": "σ", "tau": "τ", "upsilon": "υ",
	"phi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",
	"oo": "∞", "inf": "∞", "infinity": "∞", "Infinity": "∞",
}

var prettyOps = map[string]string{
	"<=": "≤", ">=": "≥", "!=": "≠", "==": "=",
}

// Pretty renders n on a single line using Unicode operators, superscript
// exponents and Greek letters.
func Pretty(n Node) string {
	switch n := n.(type) {
	case *Num:
		return n.Text

	case *Sym:
		if p, ok := prettyNames[n.Name]; ok {
			return p
		}
		return n.Name

	case *Neg:
		return "-" + prettyWrap(n.X, n.X.prec() <= precProduct)

	case *Factorial:
		return prettyWrap(n.X, n.X.prec() < precAtom) + "!"

	case *Call:
		return prettyCall(n)

	case *Binary:
		l, r := binaryOperands(n)
		l.render, r.render = Pretty, Pretty
		switch n.Op {
		case "**":
			if sup, ok := superscript(n.R); ok {
				return l.String() + sup
			}
			return l.String() + "^" + r.String()
		case "*":
			return l.String() + "⋅" + r.String()
		case "/":
			return l.String() + "/" + r.String()
		default:
			op := n.Op
			if p, ok := prettyOps[op]; ok {
				op = p
			}
			return l.String() + " " + op + " " + r.String()
		}
	}
	return n.String()
}

func prettyCall(c *Call) string {
	switch {
	case c.Name == "sqrt" && len(c.Args) == 1:
		a := c.Args[0]
		return "√" + prettyWrap(a, a.prec() < precAtom)
	case c.Name == "cbrt" && len(c.Args) == 1:
		a := c.Args[0]
		return "∛" + prettyWrap(a, a.prec() < precAtom)
	case c.Name == "abs" && len(c.Args) == 1:
		return "│" + Pretty(c.Args[0]) + "│"
	}

	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = Pretty(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// superscript returns the exponent in superscript form when every
// character has one.
func superscript(n Node) (string, bool) {
	var text string
	switch n := n.(type) {
	case *Num:
		text = n.Text
	case *Sym:
		text = n.Name
	default:
		return "", false
	}

	var b strings.Builder
	for _, r := range text {
		s, ok := superscripts[r]
		if !ok {
			return "", false
		}
		b.WriteRune(s)
	}
	return b.String(), true
}

func prettyWrap(n Node, parens bool) string {
	if parens {
		return "(" + Pretty(n) + ")"
	}
	return Pretty(n)
}
