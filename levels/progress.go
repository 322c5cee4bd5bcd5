package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// UserProgress is what survives between sessions.
type UserProgress struct {
	CurrentLevel    int   `yaml:"currentLevel" json:"currentLevel"`
	CompletedLevels []int `yaml:"completedLevels" json:"completedLevels"`
}

// Store persists progress. Load returns nil when nothing was saved yet.
type Store interface {
	Load() (*UserProgress, error)
	Save(p *UserProgress) error
}

// ProgressManager keeps UserProgress in memory and writes every change through its Store.
type ProgressManager struct {
	store    Store
	progress *UserProgress
	log      *zap.Logger
}

// NewProgressManager loads the saved progress, starting empty when there is none.
func NewProgressManager(store Store, log *zap.Logger) (*ProgressManager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if p == nil {
		p = &UserProgress{CompletedLevels: []int{}}
	}
	return &ProgressManager{store: store, progress: p, log: log}, nil
}

// Progress returns a copy of the current progress.
func (pm *ProgressManager) Progress() UserProgress {
	return UserProgress{
		CurrentLevel:    pm.progress.CurrentLevel,
		CompletedLevels: append([]int{}, pm.progress.CompletedLevels...),
	}
}

// IsCompleted reports whether the level id was finished before.
func (pm *ProgressManager) IsCompleted(id int) bool {
	for _, done := range pm.progress.CompletedLevels {
		if done == id {
			return true
		}
	}
	return false
}

// MarkCompleted records id as finished and saves.
func (pm *ProgressManager) MarkCompleted(id int) error {
	if pm.IsCompleted(id) {
		return nil
	}
	pm.progress.CompletedLevels = append(pm.progress.CompletedLevels, id)
	sort.Ints(pm.progress.CompletedLevels)
	pm.log.Info("level completed", zap.Int("level", id))
	return pm.save()
}

// SetCurrent records the level the learner is on and saves.
func (pm *ProgressManager) SetCurrent(id int) error {
	pm.progress.CurrentLevel = id
	return pm.save()
}

// Reset forgets all progress and saves the empty state.
func (pm *ProgressManager) Reset() error {
	pm.progress = &UserProgress{CompletedLevels: []int{}}
	return pm.save()
}

func (pm *ProgressManager) save() error {
	if err := pm.store.Save(pm.progress); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// MemoryStore keeps progress in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	data *UserProgress
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	cp := *s.data
	cp.CompletedLevels = append([]int{}, s.data.CompletedLevels...)
	return &cp, nil
}

func (s *MemoryStore) Save(p *UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	cp.CompletedLevels = append([]int{}, p.CompletedLevels...)
	s.data = &cp
	return nil
}

// FileStore keeps progress in a YAML file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var p UserProgress
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if p.CompletedLevels == nil {
		p.CompletedLevels = []int{}
	}
	return &p, nil
}

func (s *FileStore) Save(p *UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	// Write to a sibling file first so a crash never leaves half a document
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
