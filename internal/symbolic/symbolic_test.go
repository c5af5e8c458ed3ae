package symbolic

import (
	"errors"
	"strings"
	"testing"

	"github.com/Swanand58/math-ai-agent/internal/expression"
)

func TestParse_Canonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x + y", "x + y"},
		{"x**2 + y**2", "x**2 + y**2"},
		{"2x", "2*x"},
		{"2 x y", "2*x*y"},
		{"x(y+1)", "x*(y + 1)"},
		{"(a)(b)", "a*b"},
		{"2sin(x)", "2*sin(x)"},
		{"sin x", "sin(x)"},
		{"sin x**2", "sin(x**2)"},
		{"xy", "x*y"},
		{"-x**2", "-x**2"},
		{"(-x)**2", "(-x)**2"},
		{"2**3**2", "2**3**2"},
		{"(2**3)**2", "(2**3)**2"},
		{"a - (b - c)", "a - (b - c)"},
		{"a - b - c", "a - b - c"},
		{"a/(b*c)", "a/(b*c)"},
		{"a*-b", "a*(-b)"},
		{"n!", "n!"},
		{"(n+1)!", "(n + 1)!"},
		{"sqrt(x**2 + y**2)", "sqrt(x**2 + y**2)"},
		{"log(x, 2)", "log(x, 2)"},
		{"1.5e3 + .5", "1.5e3 + .5"},
		{"pi r**2", "pi*r**2"},
		{"x_1 + x2", "x_1 + x2"},
		{"+x", "x"},
		{"sin**2(x)", "sin(x)**2"},
		{"sin**2(x) + cos**2(x)", "sin(x)**2 + cos(x)**2"},
		{"sin**2 x", "sin(x)**2"},
		{"tan**-1(x)", "tan(x)**(-1)"},
		{"gamma**2", "gamma**2"},
		{"5 % 3", "5 % 3"},
		{"a % (b % c)", "a % (b % c)"},
		{"2x % 3 + 1", "2*x % 3 + 1"},
		{"x < 5", "x < 5"},
		{"x + 1 >= 2y", "x + 1 >= 2*y"},
		{"x < -1", "x < -1"},
		{"a < b < c", "a < b < c"},
		{"a < (b < c)", "a < (b < c)"},
		{"x**2 + y**2 = r**2", "x**2 + y**2 = r**2"},
		{"x != 0", "x != 0"},
		{"max(x < 1, 2)", "max(x < 1, 2)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got := n.String(); got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"unclosed paren", "(x + 1"},
		{"stray close", "x)"},
		{"dangling operator", "x +"},
		{"caret is not an operator", "x^2"},
		{"bad character", "x # y"},
		{"wrong arity", "atan2(x)"},
		{"bare function", "sqrt"},
		{"empty call", "sin()"},
		{"trailing comma", "max(a,)"},
		{"function power without argument", "sqrt**2"},
		{"dangling comparison", "x <"},
		{"doubled comparison", "x < < y"},
		{"dangling modulo", "5 %"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.in)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Parse(%q) error %T, want *SyntaxError", tt.in, err)
			}
		})
	}
}

func TestParse_UnknownFunction(t *testing.T) {
	_, err := Parse("foo(x)")
	if !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("err = %v, want ErrUnknownFunction", err)
	}
}

func TestParse_DepthLimit(t *testing.T) {
	src := strings.Repeat("(", 500) + "x" + strings.Repeat(")", 500)
	if _, err := Parse(src); err == nil {
		t.Fatal("expected depth error")
	}

	src = strings.Repeat("-", 1000) + "x"
	if _, err := Parse(src); err == nil {
		t.Fatal("expected depth error for unary chain")
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x^2 + y^2", "x² + y²"},
		{"sqrt(x^2 + y^2)", "√(x² + y²)"},
		{"sqrt(x)", "√x"},
		{"cbrt(8)", "∛8"},
		{"abs(x - 1)", "│x - 1│"},
		{"2*x", "2⋅x"},
		{"x^n", "xⁿ"},
		{"x^(n+1)", "x^(n + 1)"},
		{"x^y", "x^y"},
		{"alpha + beta", "α + β"},
		{"2 pi r", "2⋅π⋅r"},
		{"limit(1/x, x, oo)", "limit(1/x, x, ∞)"},
		{"e^(i pi) + 1", "e^(i⋅π) + 1"},
		{"x^10", "x¹⁰"},
		{"sin^2(x) + cos^2(x)", "sin(x)² + cos(x)²"},
		{"x < 5", "x < 5"},
		{"x <= 5", "x ≤ 5"},
		{"x >= y", "x ≥ y"},
		{"x != 0", "x ≠ 0"},
		{"x == 1", "x = 1"},
		{"5 % 3", "5 % 3"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Render(tt.in)
			if err != nil {
				t.Fatalf("Render(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRender_NotMath(t *testing.T) {
	if _, err := Render("this is not math("); err == nil {
		t.Fatal("expected error")
	}
}

func TestEnrich(t *testing.T) {
	e, err := expression.New("x^2 + y^2", "x^2 + y^2")
	if err != nil {
		t.Fatal(err)
	}

	got, ok := Enrich(e)
	if !ok {
		t.Fatal("Enrich failed")
	}
	if got.Rendering() != "x² + y²" {
		t.Fatalf("rendering = %q", got.Rendering())
	}
	if e.Rendering() != "" {
		t.Fatal("original record was modified")
	}
	if got.MathJS() != e.MathJS() || got.LaTeX() != e.LaTeX() {
		t.Fatal("notations changed")
	}
}

func TestEnrich_Failure(t *testing.T) {
	e, err := expression.New("this is not math(", "x")
	if err != nil {
		t.Fatal(err)
	}

	got, ok := Enrich(e)
	if ok {
		t.Fatal("Enrich succeeded on invalid input")
	}
	if got != e {
		t.Fatal("expected the original record back")
	}
}

func TestEnrich_AlreadyEnriched(t *testing.T) {
	e, _ := expression.New("x", "x")
	once, ok := Enrich(e)
	if !ok {
		t.Fatal("first Enrich failed")
	}
	if _, ok := Enrich(once); ok {
		t.Fatal("second Enrich should fail")
	}
}

func TestEnrich_Nil(t *testing.T) {
	if got, ok := Enrich(nil); ok || got != nil {
		t.Fatal("Enrich(nil) should report failure")
	}
}
