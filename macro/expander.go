// Package macro implements a generic recursive text-rewriting engine.
//
// An invocation is a marker rune followed by an identifier and, optionally,
// a parenthesized comma-separated argument list and/or a single
// brace-delimited block argument. Names resolve against, in order, the
// current macro's parameter bindings, the builtin functions, the global
// variables, and the user-defined macros; an unmatched name expands to the
// empty string.
package macro

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultMarker is the invocation marker rune.
const DefaultMarker = '¤'

// MaxDepth bounds recursive expansion. Exceeding it is fatal for the
// current Expand call.
const MaxDepth = 10

var (
	// ErrMalformedInvocation is returned when a parenthesis or brace
	// argument list is never closed.
	ErrMalformedInvocation = errors.New("macro: unterminated argument list")

	// ErrRecursionLimit is returned when expansion nests beyond MaxDepth.
	ErrRecursionLimit = errors.New("macro: recursion limit exceeded")

	// ErrInvalidDefinition is returned when define is called with fewer
	// than two arguments.
	ErrInvalidDefinition = errors.New("macro: invalid definition")

	// ErrUndefinedMacro is returned when loop names an unregistered macro.
	ErrUndefinedMacro = errors.New("macro: undefined macro")

	// ErrWrongArgumentCount is returned when a builtin's argument-count
	// contract is violated.
	ErrWrongArgumentCount = errors.New("macro: wrong argument count")
)

// Func is a builtin or user-registered function. It maps an ordered argument
// list to a replacement string.
type Func func(args []string) (string, error)

// Macro is a named, parameterized text template registered via define.
// The body is kept raw and expanded per invocation.
type Macro struct {
	Name   string
	Params []string
	Body   string
}

// Expander rewrites a string containing macro invocations into its fully
// expanded form. An Expander owns its registries exclusively and is not safe
// for concurrent use; construct one per document or goroutine.
type Expander struct {
	// Marker is the rune that introduces an invocation.
	Marker rune

	funcs  map[string]Func
	vars   map[string]string
	macros map[string]*Macro

	depth int
	log   *zap.Logger
}

// New returns an Expander with the builtin functions registered.
// A nil logger disables logging.
func New(log *zap.Logger) *Expander {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Expander{
		Marker: DefaultMarker,
		funcs:  make(map[string]Func),
		vars:   make(map[string]string),
		macros: make(map[string]*Macro),
		log:    log.Named("macro"),
	}
	e.funcs["get"] = e.get
	e.funcs["set"] = e.set
	e.funcs["define"] = e.define
	e.funcs["loop"] = e.loop
	e.funcs["echo"] = echo
	e.funcs["quote"] = quote
	return e
}

// DefineVariable sets a global variable.
func (e *Expander) DefineVariable(name, value string) {
	e.vars[name] = value
}

// DefineFunction registers a function. Registering over a builtin replaces
// it for this instance.
func (e *Expander) DefineFunction(name string, fn Func) {
	e.funcs[name] = fn
}

// Expand rewrites source into its fully expanded form.
func (e *Expander) Expand(source string) (string, error) {
	e.depth = 0
	return e.expand(source, nil)
}

// rawNames are the builtins whose arguments must not be pre-expanded, so
// that literal bodies and stored values are not prematurely evaluated.
var rawNames = map[string]bool{
	"define": true,
	"quote":  true,
	"set":    true,
}

// expand performs one expansion pass over src with the given local parameter
// bindings. It is re-entered for every macro body and every pre-expanded
// argument, and each entry counts against the recursion limit.
func (e *Expander) expand(src string, locals map[string]string) (string, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > MaxDepth {
		return "", fmt.Errorf("%w (depth %d)", ErrRecursionLimit, e.depth)
	}

	// Assignments are document-position independent: run every set
	// invocation first so a write later in the document is visible to a
	// read earlier in it.
	src, err := e.expandSets(src)
	if err != nil {
		return "", err
	}

	rs := []rune(src)
	var out strings.Builder
	i := 0
	for i < len(rs) {
		if rs[i] != e.Marker {
			out.WriteRune(rs[i])
			i++
			continue
		}

		inv, next, err := parseInvocation(rs, i)
		if err != nil {
			return "", err
		}
		if inv == nil {
			// A marker with no identifier stays literal.
			out.WriteRune(rs[i])
			i++
			continue
		}

		rep, err := e.resolve(inv, locals)
		if err != nil {
			return "", err
		}

		// A single trailing semicolon is consumed and put back only when
		// the replacement does not already supply one.
		if next < len(rs) && rs[next] == ';' {
			next++
			if !strings.HasSuffix(rep, ";") {
				rep += ";"
			}
		}

		out.WriteString(rep)
		i = next
	}
	return out.String(), nil
}

// expandSets evaluates every set invocation in src, wherever it occurs, and
// splices it out. Other invocations are left untouched.
func (e *Expander) expandSets(src string) (string, error) {
	rs := []rune(src)
	var out strings.Builder
	i := 0
	for i < len(rs) {
		if rs[i] != e.Marker {
			out.WriteRune(rs[i])
			i++
			continue
		}

		name, j := scanIdent(rs, i+1)
		if name != "set" {
			// Copy the marker and identifier; their arguments are scanned
			// again on the main pass, so a nested set is still found.
			for ; i < j; i++ {
				out.WriteRune(rs[i])
			}
			continue
		}

		inv, next, err := parseInvocation(rs, i)
		if err != nil {
			return "", err
		}
		args, err := e.builtinArgs(inv, nil)
		if err != nil {
			return "", err
		}
		if _, err := e.set(args); err != nil {
			return "", err
		}
		if next < len(rs) && rs[next] == ';' {
			next++
			out.WriteString(";")
		}
		i = next
	}
	return out.String(), nil
}

// resolve looks up an invocation and produces its replacement text.
func (e *Expander) resolve(inv *invocation, locals map[string]string) (string, error) {
	args, err := e.builtinArgs(inv, locals)
	if err != nil {
		return "", err
	}

	if locals != nil {
		if v, ok := locals[inv.name]; ok {
			return v, nil
		}
	}
	if fn, ok := e.funcs[inv.name]; ok {
		return fn(args)
	}
	if v, ok := e.vars[inv.name]; ok {
		return v, nil
	}
	if m, ok := e.macros[inv.name]; ok {
		return e.invoke(m, args)
	}

	// Unmatched names expand to nothing so templates may leave slots unset.
	e.log.Debug("unresolved name", zap.String("name", inv.name))
	return "", nil
}

// builtinArgs prepares an invocation's arguments: trims surrounding
// whitespace, strips a fully wrapping quote pair, and, unless the invoked
// name requires raw text, expands each argument recursively.
func (e *Expander) builtinArgs(inv *invocation, locals map[string]string) ([]string, error) {
	raw := rawNames[inv.name]
	args := make([]string, 0, len(inv.args))
	for _, a := range inv.args {
		a = stripQuotes(strings.TrimSpace(a))
		if !raw {
			expanded, err := e.expand(a, locals)
			if err != nil {
				return nil, err
			}
			a = expanded
		}
		args = append(args, a)
	}
	return args, nil
}

// invoke expands a macro body with its parameters bound to args. Missing
// trailing arguments bind as empty strings.
func (e *Expander) invoke(m *Macro, args []string) (string, error) {
	locals := make(map[string]string, len(m.Params))
	for i, p := range m.Params {
		if i < len(args) {
			locals[p] = args[i]
		} else {
			locals[p] = ""
		}
	}
	return e.expand(m.Body, locals)
}

// stripQuotes removes a single pair of wrapping quote or backtick
// delimiters.
func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	switch s[0] {
	case '\'', '"', '`':
		if s[len(s)-1] == s[0] {
			return s[1 : len(s)-1]
		}
	}
	return s
}
