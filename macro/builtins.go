package macro

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// get returns the named global variable, or the empty string when unset.
func (e *Expander) get(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: get takes 1 argument, got %d", ErrWrongArgumentCount, len(args))
	}
	return e.vars[args[0]], nil
}

// set stores a global variable and expands to nothing.
func (e *Expander) set(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("%w: set takes 2 arguments, got %d", ErrWrongArgumentCount, len(args))
	}
	e.vars[args[0]] = args[1]
	e.log.Debug("set variable", zap.String("name", args[0]), zap.String("value", args[1]))
	return "", nil
}

// define registers a macro: a name, zero or more parameter names, and a raw
// body as the final argument. A later definition replaces an earlier one.
func (e *Expander) define(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%w: define takes a name and a body", ErrInvalidDefinition)
	}
	m := &Macro{
		Name:   args[0],
		Params: append([]string(nil), args[1:len(args)-1]...),
		Body:   args[len(args)-1],
	}
	e.macros[m.Name] = m
	e.log.Debug("defined macro", zap.String("name", m.Name), zap.Int("params", len(m.Params)))
	return "", nil
}

// loop invokes the named macro over successive chunks of the remaining
// arguments, one chunk per parameter list, concatenating the expansions.
// The last chunk may run short; missing parameters bind as empty strings.
func (e *Expander) loop(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%w: loop takes a macro name and arguments", ErrWrongArgumentCount)
	}
	m, ok := e.macros[args[0]]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUndefinedMacro, args[0])
	}

	chunk := len(m.Params)
	if chunk == 0 {
		chunk = 1
	}

	rest := args[1:]
	var out strings.Builder
	for i := 0; i < len(rest); i += chunk {
		end := i + chunk
		if end > len(rest) {
			end = len(rest)
		}
		s, err := e.invoke(m, rest[i:end])
		if err != nil {
			return "", err
		}
		out.WriteString(s)
	}
	return out.String(), nil
}

// echo joins its arguments with ", ".
func echo(args []string) (string, error) {
	return strings.Join(args, ", "), nil
}

// quote passes its arguments through unexpanded.
func quote(args []string) (string, error) {
	return strings.Join(args, ", "), nil
}
