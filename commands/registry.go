package commands

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Result is what one dispatched line produced.
type Result struct {
	Command string
	Args    Args
	Lines   []string
	Found   bool
}

// Observer is told about every dispatched command.
type Observer func(command string, found bool)

// Registry maps command keys and aliases to handlers.
type Registry struct {
	commands map[string]Command
	aliases  map[string]string
	log      *zap.Logger
	observer Observer
}

// NewRegistry returns an empty registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		commands: map[string]Command{},
		aliases:  map[string]string{},
		log:      log,
	}
}

// NewDefaultRegistry returns a registry with every built-in command and alias.
func NewDefaultRegistry(log *zap.Logger) *Registry {
	r := NewRegistry(log)
	for _, c := range gitCommands() {
		r.Register(c)
	}
	for _, c := range shellCommands() {
		r.Register(c)
	}
	r.Alias("git ci", "git commit")
	r.Alias("git co", "git checkout")
	r.Alias("git br", "git branch")
	r.Alias("git st", "git status")
	r.Alias("dir", "ls")
	r.Alias("cls", "clear")
	return r
}

// Register adds c under its name, replacing any previous handler.
func (r *Registry) Register(c Command) {
	r.commands[c.Name()] = c
}

// Alias makes alias dispatch to target.
func (r *Registry) Alias(alias, target string) {
	r.aliases[alias] = target
}

// SetObserver installs a callback run after every dispatch.
func (r *Registry) SetObserver(o Observer) {
	r.observer = o
}

// Lookup resolves a command key or alias.
func (r *Registry) Lookup(name string) (Command, bool) {
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	c, ok := r.commands[name]
	return c, ok
}

// Commands returns every registered command sorted by name.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Execute runs a single command line and returns its output lines.
func (r *Registry) Execute(line string, ctx *Context) []string {
	return r.Run(line, ctx).Lines
}

// Run parses, validates and executes one command line.
func (r *Registry) Run(line string, ctx *Context) (res Result) {
	key, tokens := splitCommand(line)
	if key == "" {
		return Result{Lines: []string{}}
	}

	cmd, ok := r.Lookup(key)
	if !ok {
		r.notify(key, false)
		return Result{Command: key, Args: ParseArgs(tokens), Lines: []string{notFound(key)}}
	}

	// Commands may declare flags that never take a value
	var booleans map[string]bool
	if bf, isBF := cmd.(BooleanFlagger); isBF {
		booleans = map[string]bool{}
		for _, f := range bf.BooleanFlags() {
			booleans[f] = true
		}
	}
	args := parseArgs(tokens, booleans)
	res = Result{Command: cmd.Name(), Args: args, Found: true}
	r.notify(cmd.Name(), true)

	if v, isValidator := cmd.(Validator); isValidator {
		if vr := v.Validate(args); !vr.IsValid {
			res.Lines = []string{vr.ErrorMessage}
			return res
		}
	}

	ctx.registry = r
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("command panicked", zap.String("command", cmd.Name()), zap.Any("panic", rec))
			res.Lines = []string{fmt.Sprintf("error: %s failed unexpectedly", cmd.Name())}
		}
	}()

	res.Lines = cmd.Execute(args, ctx)
	if res.Lines == nil {
		res.Lines = []string{}
	}
	r.log.Debug("command executed", zap.String("command", cmd.Name()), zap.Int("lines", len(res.Lines)))
	return res
}

func (r *Registry) notify(command string, found bool) {
	if r.observer != nil {
		r.observer(command, found)
	}
}

func notFound(key string) string {
	if sub, isGit := strings.CutPrefix(key, "git "); isGit {
		return fmt.Sprintf("git: '%s' is not a git command. See 'git help'.", sub)
	}
	return fmt.Sprintf("Command not found: %s. Type 'help' to see available commands.", key)
}

// Complete returns the candidate lines for tab completion of input.
func (r *Registry) Complete(input string, ctx *Context) []string {
	trailingSpace := strings.HasSuffix(input, " ")
	tokens := strings.Fields(input)

	// Completing the command key itself
	completingKey := len(tokens) == 0 || (len(tokens) == 1 && !trailingSpace)
	if len(tokens) > 0 && strings.EqualFold(tokens[0], "git") {
		completingKey = len(tokens) == 1 || (len(tokens) == 2 && !trailingSpace)
	}
	if completingKey {
		prefix := strings.ToLower(strings.Join(tokens, " "))
		if trailingSpace && prefix != "" {
			prefix += " "
		}
		out := []string{}
		for _, c := range r.Commands() {
			if c.IncludeInTabCompletion() && strings.HasPrefix(c.Name(), prefix) {
				out = append(out, c.Name())
			}
		}
		return out
	}

	key, _ := splitCommand(input)
	cmd, ok := r.Lookup(key)
	if !ok || !cmd.SupportsFileCompletion() || ctx == nil {
		return []string{}
	}

	// Complete the last token against directory entries
	partial := ""
	head := input
	if !trailingSpace {
		partial = tokens[len(tokens)-1]
		head = input[:len(input)-len(partial)]
	}
	dirPart, namePart := "", partial
	if idx := strings.LastIndex(partial, "/"); idx != -1 {
		dirPart, namePart = partial[:idx+1], partial[idx+1:]
	}

	children, ok := ctx.FS.GetDirectoryContents(ctx.Resolve(dirPart + "."))
	if !ok {
		return []string{}
	}
	names := make([]string, 0, len(children))
	for name, item := range children {
		if !strings.HasPrefix(name, namePart) || (strings.HasPrefix(name, ".") && !strings.HasPrefix(namePart, ".")) {
			continue
		}
		if item.IsDir() {
			name += "/"
		}
		names = append(names, head+dirPart+name)
	}
	sort.Strings(names)
	return names
}
