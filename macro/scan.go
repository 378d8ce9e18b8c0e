package macro

import "fmt"

// invocation is one parsed marker invocation: the identifier and its raw,
// unprocessed argument texts.
type invocation struct {
	name string
	args []string
}

// parseInvocation parses the invocation starting at the marker at rs[i].
// It returns the invocation and the index one past it, or a nil invocation
// when the marker is not followed by an identifier.
func parseInvocation(rs []rune, i int) (*invocation, int, error) {
	name, j := scanIdent(rs, i+1)
	if name == "" {
		return nil, i + 1, nil
	}
	inv := &invocation{name: name}

	if j < len(rs) && rs[j] == '(' {
		args, next, err := parseParenArgs(rs, j)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", err, name)
		}
		inv.args = args
		j = next
	}

	// A brace block directly after the identifier or the argument list is
	// one final raw argument.
	if j < len(rs) && rs[j] == '{' {
		block, next, err := parseBraceArg(rs, j)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", err, name)
		}
		inv.args = append(inv.args, block)
		j = next
	}

	return inv, j, nil
}

// scanIdent consumes an identifier (an alphanumeric/underscore run) starting
// at rs[i]. It returns the identifier and the index one past it.
func scanIdent(rs []rune, i int) (string, int) {
	start := i
	for i < len(rs) && isIdent(rs[i]) {
		i++
	}
	return string(rs[start:i]), i
}

// parseParenArgs parses a parenthesized, comma-separated argument list
// starting at the open parenthesis at rs[i]. Commas inside balanced
// sub-parentheses or inside quote-delimited spans do not split arguments;
// a backslash inside a quoted span suppresses the quote toggle.
func parseParenArgs(rs []rune, i int) ([]string, int, error) {
	depth := 1
	var quote rune
	escaped := false

	args := []string{}
	var cur []rune
	for j := i + 1; j < len(rs); j++ {
		ch := rs[j]

		if quote != 0 {
			cur = append(cur, ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == quote:
				quote = 0
			}
			continue
		}

		switch ch {
		case '\'', '"', '`':
			quote = ch
			cur = append(cur, ch)
		case '(':
			depth++
			cur = append(cur, ch)
		case ')':
			depth--
			if depth == 0 {
				args = append(args, string(cur))
				if len(args) == 1 && args[0] == "" {
					args = args[:0]
				}
				return args, j + 1, nil
			}
			cur = append(cur, ch)
		case ',':
			if depth == 1 {
				args = append(args, string(cur))
				cur = cur[:0]
			} else {
				cur = append(cur, ch)
			}
		default:
			cur = append(cur, ch)
		}
	}
	return nil, 0, ErrMalformedInvocation
}

// parseBraceArg parses a brace-delimited block starting at the open brace at
// rs[i] and returns its content. Only brace depth is tracked; braces nest
// uniformly so no quote awareness is needed.
func parseBraceArg(rs []rune, i int) (string, int, error) {
	depth := 0
	for j := i; j < len(rs); j++ {
		switch rs[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return string(rs[i+1 : j]), j + 1, nil
			}
		}
	}
	return "", 0, ErrMalformedInvocation
}

// isIdent returns true if the rune can appear in an invocation identifier.
func isIdent(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') || ch == '_'
}
