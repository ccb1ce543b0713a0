package dice

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Notation is a parsed dice expression in NdS+B form, as authored in preset
// files ("2d6+1", "d8", "3"). Count and Sides are zero for flat expressions.
type Notation struct {
	Count int
	Sides int
	Bonus int
}

var notationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `\d+`},
	{Name: "Die", Pattern: `[dD]`},
	{Name: "Sign", Pattern: `[+-]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// notationExpr is the raw participle AST before normalization.
type notationExpr struct {
	Lead *int     `parser:"@Int?"`
	Dice *dieExpr `parser:"@@?"`
	Mod  *modExpr `parser:"@@?"`
}

type dieExpr struct {
	Marker string `parser:"@Die"`
	Sides  int    `parser:"@Int"`
}

type modExpr struct {
	Sign  string `parser:"@Sign"`
	Value int    `parser:"@Int"`
}

var notationParser = participle.MustBuild[notationExpr](
	participle.Lexer(notationLexer),
)

// ParseNotation parses a dice expression string into a Notation.
func ParseNotation(raw string) (Notation, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Notation{}, fmt.Errorf("dice expression cannot be empty")
	}

	expr, err := notationParser.ParseString("", trimmed)
	if err != nil {
		return Notation{}, fmt.Errorf("invalid dice expression %q: %w", raw, err)
	}

	var n Notation
	if expr.Dice != nil {
		n.Count = 1
		if expr.Lead != nil {
			n.Count = *expr.Lead
		}
		n.Sides = expr.Dice.Sides
		if n.Sides < 1 {
			return Notation{}, fmt.Errorf("invalid dice expression %q: %w", raw, ErrInvalidDie)
		}
	} else if expr.Lead != nil {
		// A bare integer is a flat amount.
		n.Bonus = *expr.Lead
	}

	if expr.Mod != nil {
		if expr.Mod.Sign == "-" {
			n.Bonus -= expr.Mod.Value
		} else {
			n.Bonus += expr.Mod.Value
		}
	}

	if n.Count == 0 && n.Sides == 0 && expr.Lead == nil {
		return Notation{}, fmt.Errorf("invalid dice expression %q", raw)
	}
	return n, nil
}

// Roll evaluates the notation against the given roller.
func (n Notation) Roll(r *Roller) (int, error) {
	if n.Count <= 0 || n.Sides <= 0 {
		return n.Bonus, nil
	}
	sum, err := r.RollSum(n.Count, n.Sides)
	if err != nil {
		return 0, err
	}
	return sum + n.Bonus, nil
}

func (n Notation) String() string {
	var sb strings.Builder
	if n.Count > 0 && n.Sides > 0 {
		fmt.Fprintf(&sb, "%dd%d", n.Count, n.Sides)
		if n.Bonus > 0 {
			fmt.Fprintf(&sb, "+%d", n.Bonus)
		} else if n.Bonus < 0 {
			fmt.Fprintf(&sb, "%d", n.Bonus)
		}
		return sb.String()
	}
	return fmt.Sprintf("%d", n.Bonus)
}

// UnmarshalYAML lets presets author dice expressions as plain strings.
func (n *Notation) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseNotation(raw)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
