package commands

import (
	"strings"
)

// Args is the structured form of a command's arguments.
type Args struct {
	Flags      map[string]string // flags that carried a value: -m msg, --message=msg
	Switches   map[string]bool   // boolean flags: -a, --all, and each letter of -ab
	Positional []string          // everything else, in order
	Raw        []string          // the untouched tokens after the command key
}

// Has reports whether any of names was given, as a switch or with a value.
func (a Args) Has(names ...string) bool {
	for _, n := range names {
		if a.Switches[n] {
			return true
		}
		if _, ok := a.Flags[n]; ok {
			return true
		}
	}
	return false
}

// Value returns the value of the first of names that carried one.
func (a Args) Value(names ...string) (string, bool) {
	for _, n := range names {
		if v, ok := a.Flags[n]; ok {
			return v, true
		}
	}
	return "", false
}

// Count returns how many positional and flag arguments were given.
func (a Args) Count() int {
	return len(a.Flags) + len(a.Switches) + len(a.Positional)
}

// ParsedCommand is a command key plus its arguments.
type ParsedCommand struct {
	Command string
	Args    Args
}

// ParseCommand splits a raw input line on whitespace. "git <sub>" becomes the single key "git <sub>"; keys are lower-cased, arguments keep their case.
// Quotes get no special treatment.
func ParseCommand(line string) ParsedCommand {
	key, rest := splitCommand(line)
	return ParsedCommand{Command: key, Args: ParseArgs(rest)}
}

// splitCommand returns the command key and the remaining tokens.
func splitCommand(line string) (string, []string) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return "", nil
	}
	first := strings.ToLower(tokens[0])
	if first == "git" && len(tokens) > 1 && !strings.HasPrefix(tokens[1], "-") {
		return "git " + strings.ToLower(tokens[1]), tokens[2:]
	}
	return first, tokens[1:]
}

// ParseArgs turns tokens into flags, switches and positional arguments.
func ParseArgs(tokens []string) Args {
	return parseArgs(tokens, nil)
}

// parseArgs is ParseArgs with a set of flag names that never consume a value.
func parseArgs(tokens []string, booleans map[string]bool) Args {
	args := Args{
		Flags:      map[string]string{},
		Switches:   map[string]bool{},
		Positional: []string{},
		Raw:        append([]string{}, tokens...),
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		hasValue := i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-")

		switch {
		case tok == "--":
			// Everything after a bare -- is positional
			args.Positional = append(args.Positional, tokens[i+1:]...)
			return args

		case strings.HasPrefix(tok, "--"):
			name := tok[2:]
			if eq := strings.Index(name, "="); eq != -1 {
				args.Flags[name[:eq]] = name[eq+1:]
				continue
			}
			if hasValue && !booleans[name] {
				args.Flags[name] = tokens[i+1]
				i++
				continue
			}
			args.Switches[name] = true

		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			letters := tok[1:]
			if len(letters) == 1 && hasValue && !booleans[letters] {
				args.Flags[letters] = tokens[i+1]
				i++
				continue
			}
			for _, l := range letters {
				args.Switches[string(l)] = true
			}

		default:
			args.Positional = append(args.Positional, tok)
		}
	}
	return args
}

// joinQuoted rebuilds a value that the whitespace tokenizer split apart. tokens start at the value; a leading quote runs to the matching closing quote.
func joinQuoted(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	first := tokens[0]
	if first == "" || (first[0] != '"' && first[0] != '\'') {
		return first
	}
	quote := first[0]

	parts := []string{}
	for _, tok := range tokens {
		parts = append(parts, tok)
		if len(parts) == 1 && len(tok) > 1 && tok[len(tok)-1] == quote {
			break
		}
		if len(parts) > 1 && len(tok) > 0 && tok[len(tok)-1] == quote {
			break
		}
	}
	joined := strings.Join(parts, " ")
	joined = joined[1:]
	if strings.HasSuffix(joined, string(quote)) {
		joined = joined[:len(joined)-1]
	}
	return joined
}
