package cssmx

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/FeepingCreature/cssmx/ast"
	"github.com/FeepingCreature/cssmx/color"
	"github.com/FeepingCreature/cssmx/denest"
	"github.com/FeepingCreature/cssmx/lexer"
	"github.com/FeepingCreature/cssmx/macro"
)

// vendorPrefixes is the prefix set applied by the prefixed builtin. The
// empty entry keeps the unprefixed declaration.
var vendorPrefixes = []string{"-moz-", "-webkit-", "-o-", "-ms-", "-khtml-", ""}

// Expander is a macro expander with the CSS builtins registered.
type Expander struct {
	*macro.Expander
	log *zap.Logger
}

// New returns an Expander for one document. A nil logger disables logging.
func New(log *zap.Logger) *Expander {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Expander{
		Expander: macro.New(log),
		log:      log.Named("cssmx"),
	}
	e.DefineFunction("prefixed", prefixed)
	e.DefineFunction("lighten", colorFunc("lighten", color.Color.Lighten))
	e.DefineFunction("darken", colorFunc("darken", color.Color.Darken))
	e.DefineFunction("saturate", colorFunc("saturate", color.Color.Saturate))
	e.DefineFunction("desaturate", colorFunc("desaturate", color.Color.Desaturate))
	e.DefineFunction("rotateHue", colorFunc("rotateHue", color.Color.RotateHue))
	return e
}

// ExpandAndDenest runs the full pipeline: macro expansion, structural
// lexing, denesting of every top-level rule set, and serialization. Top-level
// nodes that are not rule sets pass through unchanged.
func (e *Expander) ExpandAndDenest(source string) (string, error) {
	expanded, err := e.Expand(source)
	if err != nil {
		return "", err
	}
	nodes, err := lexer.Lex(expanded)
	if err != nil {
		return "", err
	}

	flat := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		rs, ok := n.(*ast.RuleSet)
		if !ok {
			flat = append(flat, n.Clone())
			continue
		}
		for _, f := range denest.Denest(rs) {
			flat = append(flat, f)
		}
	}

	e.log.Debug("denested stylesheet",
		zap.Int("top_level_nodes", len(nodes)),
		zap.Int("flat_nodes", len(flat)))
	return ast.Format(flat), nil
}

// prefixed repeats a declaration with each vendor prefix prepended, each
// copy terminated with a semicolon.
func prefixed(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: prefixed takes 1 argument, got %d", macro.ErrWrongArgumentCount, len(args))
	}
	decl := strings.TrimSuffix(strings.TrimSpace(args[0]), ";")
	lines := make([]string, 0, len(vendorPrefixes))
	for _, p := range vendorPrefixes {
		lines = append(lines, p+decl+";")
	}
	return strings.Join(lines, "\n"), nil
}

// colorFunc adapts a color-algebra transform into a two-argument builtin
// taking a hex color literal and an amount.
func colorFunc(name string, op func(color.Color, float64) color.Color) macro.Func {
	return func(args []string) (string, error) {
		if len(args) != 2 {
			return "", fmt.Errorf("%w: %s takes a color and an amount, got %d arguments",
				macro.ErrWrongArgumentCount, name, len(args))
		}
		c, err := color.Parse(args[0])
		if err != nil {
			return "", err
		}
		amount, err := color.ParseAmount(args[1])
		if err != nil {
			return "", err
		}
		return op(c, amount).String(), nil
	}
}
