package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MikaStiebitz/Git-Gud/commands"
	"github.com/MikaStiebitz/Git-Gud/config"
	"github.com/MikaStiebitz/Git-Gud/levels"
	"github.com/MikaStiebitz/Git-Gud/session"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"github.com/MikaStiebitz/Git-Gud/utils/logging"
	"github.com/google/uuid"
	"golang.org/x/term"
)

// editorEnd finishes inline nano input.
const editorEnd = "."

// newLocalSession builds the single session of the terminal modes. Progress goes to the configured file.
func newLocalSession(cfg *config.Config) (*session.Session, error) {
	log := logging.L()

	catalog, err := levels.LoadCatalog(cfg.Levels.Catalog)
	if err != nil {
		return nil, err
	}

	var store levels.Store = levels.NewMemoryStore()
	if cfg.Levels.ProgressFile != "" {
		store = levels.NewFileStore(cfg.Levels.ProgressFile)
	}
	progress, err := levels.NewProgressManager(store, log)
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}

	return session.New(uuid.NewString(), commands.NewDefaultRegistry(log), catalog, progress, log), nil
}

// runExec runs one line and prints the result.
func runExec(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("exec needs an input line")
	}
	sess, err := newLocalSession(cfg)
	if err != nil {
		return err
	}
	for _, line := range sess.Execute(strings.Join(args, " ")).Lines {
		fmt.Println(line)
	}
	return nil
}

// runTerminal reads lines from stdin. A real terminal gets line editing and tab completion.
func runTerminal(cfg *config.Config) error {
	sess, err := newLocalSession(cfg)
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return runPlain(sess, cfg, os.Stdin, os.Stdout)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw terminal: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, sess.Prompt(cfg.Terminal.Prompt))
	if w, h, err := term.GetSize(fd); err == nil {
		_ = t.SetSize(w, h)
	}
	t.AutoCompleteCallback = func(line string, pos int, key rune) (string, int, bool) {
		if key != '\t' {
			return "", 0, false
		}
		completed, ok := completeLine(sess.Complete(line[:pos]), line[:pos])
		if !ok {
			return "", 0, false
		}
		return completed + line[pos:], len(completed), true
	}

	p := painter{color: cfg.Terminal.Color}
	writeLines(t, p, sess.Intro())
	for {
		line, err := t.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if quit(line) {
			return nil
		}

		out := sess.Execute(line)
		if out.Clear {
			fmt.Fprint(t, "\033[H\033[2J")
		}
		writeLines(t, p, out.Lines)

		if out.Editor != nil {
			content, err := editInline(t, out.Editor)
			if err != nil {
				return err
			}
			sess.SaveEditor(content)
		}
		t.SetPrompt(sess.Prompt(cfg.Terminal.Prompt))
	}
}

// runPlain serves piped input without line editing.
func runPlain(sess *session.Session, cfg *config.Config, in io.Reader, out io.Writer) error {
	p := painter{}
	writeLines(out, p, sess.Intro())
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, sess.Prompt(cfg.Terminal.Prompt))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()
		if quit(line) {
			return nil
		}
		res := sess.Execute(line)
		writeLines(out, p, res.Lines)

		if res.Editor != nil {
			var b strings.Builder
			for scanner.Scan() && scanner.Text() != editorEnd {
				b.WriteString(scanner.Text() + "\n")
			}
			sess.SaveEditor(b.String())
		}
	}
}

// editInline collects file content line by line until a lone ".".
func editInline(t *term.Terminal, ed *session.Editor) (string, error) {
	fmt.Fprintf(t, "Current content of %s:\r\n", ed.Path)
	for _, l := range strings.Split(strings.TrimSuffix(ed.Content, "\n"), "\n") {
		fmt.Fprintf(t, "  %s\r\n", l)
	}
	fmt.Fprintf(t, "Type the new content, finish with a line containing only '%s'.\r\n", editorEnd)

	t.SetPrompt("> ")
	var b strings.Builder
	for {
		line, err := t.ReadLine()
		if err != nil {
			return "", err
		}
		if line == editorEnd {
			return b.String(), nil
		}
		b.WriteString(line + "\n")
	}
}

func quit(line string) bool {
	l := strings.TrimSpace(line)
	return l == "exit" || l == "quit"
}

// completeLine picks the completion of prefix: the only candidate, or the longest prefix all candidates share.
func completeLine(candidates []string, prefix string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	common := candidates[0]
	for _, c := range candidates[1:] {
		for !strings.HasPrefix(c, common) {
			common = common[:len(common)-1]
		}
	}
	if len(common) <= len(prefix) {
		return "", false
	}
	return common, true
}

// painter colours error and success lines.
type painter struct {
	color bool
}

func (p painter) paint(line string) string {
	if !p.color {
		return line
	}
	switch {
	case strings.HasPrefix(line, "fatal:"), strings.HasPrefix(line, "error:"):
		return constants.RedColor + line + constants.ResetColor
	case strings.HasPrefix(line, "hint:"), strings.HasPrefix(line, "warning:"):
		return constants.YellowColor + line + constants.ResetColor
	case strings.HasPrefix(line, "Level ") && strings.Contains(line, "complete!"):
		return constants.GreenColor + constants.BoldColor + line + constants.ResetColor
	}
	return line
}

func writeLines(w io.Writer, p painter, lines []string) {
	for _, l := range lines {
		fmt.Fprint(w, p.paint(l)+"\r\n")
	}
}
