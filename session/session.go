// Package session ties one learner's filesystem, repository, terminal state and level progress together.
package session

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MikaStiebitz/Git-Gud/commands"
	"github.com/MikaStiebitz/Git-Gud/levels"
	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/porcelain"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"go.uber.org/zap"
)

// Output is what one input line produced.
type Output struct {
	Lines         []string `json:"lines"`
	Cwd           string   `json:"cwd"`
	Level         int      `json:"level"`
	LevelComplete bool     `json:"levelComplete"`
	Clear         bool     `json:"clear,omitempty"`
	Editor        *Editor  `json:"editor,omitempty"`
}

// Editor is a pending nano request the UI has to answer with SaveEditor.
type Editor struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// CommitInfo is the read-only view of one commit.
type CommitInfo struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Branch    string    `json:"branch"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Files     []string  `json:"files"`
}

// State is the read-only repository view a renderer or level checker needs.
type State struct {
	Initialized   bool                 `json:"initialized"`
	CurrentBranch string               `json:"currentBranch"`
	Head          string               `json:"head"`
	Branches      []string             `json:"branches"`
	Status        map[string]string    `json:"status"`
	Commits       []CommitInfo         `json:"commits"`
	Cwd           string               `json:"cwd"`
	Level         levels.Level         `json:"level"`
	Remaining     []levels.Requirement `json:"remaining"`
	LevelComplete bool                 `json:"levelComplete"`
}

// Session is single-owner. Every exported method takes the session lock, so commands never run concurrently.
type Session struct {
	ID string

	mu       sync.Mutex
	fs       *plumbing.FileSystem
	repo     *porcelain.Repository
	ctx      *commands.Context
	registry *commands.Registry
	levels   *levels.Manager
	progress *levels.ProgressManager
	log      *zap.Logger

	announced bool // level completion was already reported
	cleared   bool
	editor    *Editor
	save      func(string)
}

// New builds a session positioned at the saved level of progress, or the first level.
func New(id string, registry *commands.Registry, catalog []levels.Level, progress *levels.ProgressManager, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("session", id))

	fs := plumbing.NewFileSystem()
	s := &Session{
		ID:       id,
		fs:       fs,
		repo:     porcelain.New(fs, porcelain.WithLogger(log)),
		registry: registry,
		levels:   levels.NewManager(catalog, log),
		progress: progress,
		log:      log,
	}
	s.ctx = commands.NewContext(s.fs, s.repo)
	s.ctx.ClearScreen = func() { s.cleared = true }
	s.ctx.NextLevel = s.advance
	s.ctx.OpenEditor = func(path, content string, save func(string)) {
		s.editor = &Editor{Path: path, Content: content}
		s.save = save
	}

	if saved := progress.Progress().CurrentLevel; saved != 0 {
		if _, err := s.levels.Goto(saved); err != nil {
			log.Warn("saved level not in catalog", zap.Int("level", saved), zap.Error(err))
		}
	}
	s.levels.Current().Setup.Apply(s.fs, s.repo)
	return s
}

// Intro returns the lines that introduce the active level.
func (s *Session) Intro() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intro()
}

func (s *Session) intro() []string {
	lvl := s.levels.Current()
	lines := []string{fmt.Sprintf("Level %d: %s", lvl.ID, lvl.Title)}
	if lvl.Chapter != "" {
		lines[0] = fmt.Sprintf("[%s] %s", lvl.Chapter, lines[0])
	}
	return append(lines, lvl.Objective)
}

// Execute runs an input line. Commands separated by ';' run in order, each to completion before the next.
func (s *Session) Execute(line string) Output {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleared = false
	s.editor = nil
	lines := []string{}

	for _, part := range strings.Split(line, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		res := s.registry.Run(part, s.ctx)
		lines = append(lines, res.Lines...)
		if res.Found {
			s.levels.CheckCommand(res.Command, res.Args.Raw)
		}
		lines = append(lines, s.checkCompletion()...)
	}

	return Output{
		Lines:         lines,
		Cwd:           s.ctx.CurrentDir,
		Level:         s.levels.Current().ID,
		LevelComplete: s.levels.IsLevelComplete(),
		Clear:         s.cleared,
		Editor:        s.editor,
	}
}

// checkCompletion reports a freshly completed level once and records it.
func (s *Session) checkCompletion() []string {
	if s.announced || !s.levels.IsLevelComplete() {
		return nil
	}
	s.announced = true
	id := s.levels.Current().ID
	if err := s.progress.MarkCompleted(id); err != nil {
		s.log.Error("saving progress failed", zap.Int("level", id), zap.Error(err))
	}
	return []string{"", fmt.Sprintf("Level %d complete! Type 'next' to continue.", id)}
}

// advance backs the 'next' command. It runs under the lock Execute already holds.
func (s *Session) advance() []string {
	if !s.levels.IsLevelComplete() {
		lines := []string{"Finish the current level first."}
		if hint := s.levels.Current().Hint; hint != "" {
			lines = append(lines, "Hint: "+hint)
		}
		return lines
	}

	lvl, ok := s.levels.Next()
	if !ok {
		return []string{"Congratulations, you finished every level!"}
	}
	s.announced = false

	if lvl.KeepState {
		s.repo.PartialReset()
	} else {
		s.resetWorkspace(lvl)
	}
	if err := s.progress.SetCurrent(lvl.ID); err != nil {
		s.log.Error("saving progress failed", zap.Int("level", lvl.ID), zap.Error(err))
	}
	s.log.Info("level started", zap.Int("level", lvl.ID))
	return s.intro()
}

// resetWorkspace wipes the repository and the working tree and rebuilds them from the level setup.
func (s *Session) resetWorkspace(lvl levels.Level) {
	s.repo.Reset()
	children, _ := s.fs.GetDirectoryContents(constants.RootDir)
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		plumbing.RemoveAll(s.fs, constants.RootDir+name)
	}
	s.ctx.SetCurrentDir(constants.RootDir)
	lvl.Setup.Apply(s.fs, s.repo)
}

// ResetProgress forgets all progress and restarts at the first level.
func (s *Session) ResetProgress() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.progress.Reset(); err != nil {
		return nil, err
	}
	s.levels.Reset()
	s.announced = false
	s.resetWorkspace(s.levels.Current())
	return s.intro(), nil
}

// SaveEditor writes the content of the last nano request back. ok is false when no editor is open.
func (s *Session) SaveEditor(content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.save == nil {
		return false
	}
	s.save(content)
	s.save = nil
	s.editor = nil
	return true
}

// Complete returns tab completions for input.
func (s *Session) Complete(input string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Complete(input, s.ctx)
}

// State returns the read-only repository and level view.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]string{}
	for p, st := range s.repo.GetStatus() {
		status[p] = string(st)
	}

	commits := []CommitInfo{}
	all := s.repo.GetCommits()
	for _, id := range s.repo.CommitIDs() {
		c := all[id]
		commits = append(commits, CommitInfo{
			ID:        c.ID,
			Message:   c.Message,
			Branch:    c.Branch,
			Author:    c.Author,
			Timestamp: c.Timestamp,
			Files:     append([]string{}, c.Files...),
		})
	}

	return State{
		Initialized:   s.repo.IsInitialized(),
		CurrentBranch: s.repo.GetCurrentBranch(),
		Head:          s.repo.HEAD(),
		Branches:      s.repo.GetBranches(),
		Status:        status,
		Commits:       commits,
		Cwd:           s.ctx.CurrentDir,
		Level:         s.levels.Current(),
		Remaining:     s.levels.Remaining(),
		LevelComplete: s.levels.IsLevelComplete(),
	}
}

// Cwd returns the current directory.
func (s *Session) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.CurrentDir
}

// Prompt renders the shell prompt: cwd plus the branch once a repository exists.
func (s *Session) Prompt(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := name + ":" + s.ctx.CurrentDir
	if branch := s.repo.GetCurrentBranch(); branch != "" {
		p += " (" + branch + ")"
	}
	return p + " $ "
}
