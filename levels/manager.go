package levels

import (
	"fmt"

	"go.uber.org/zap"
)

// Manager walks a learner through the catalog. Requirements of a level are met in order.
type Manager struct {
	levels []Level
	index  int
	met    int // requirements of the current level already satisfied
	log    *zap.Logger
}

// NewManager starts at the first level of levels.
func NewManager(levels []Level, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{levels: levels, log: log}
}

// Levels returns the catalog.
func (m *Manager) Levels() []Level {
	return append([]Level{}, m.levels...)
}

// Current returns the active level.
func (m *Manager) Current() Level {
	return m.levels[m.index]
}

// Remaining returns the requirements still open on the active level.
func (m *Manager) Remaining() []Requirement {
	return append([]Requirement{}, m.Current().Requirements[m.met:]...)
}

// CheckCommand records command against the next open requirement and reports whether it counted.
func (m *Manager) CheckCommand(command string, tokens []string) bool {
	if m.IsLevelComplete() {
		return false
	}
	req := m.Current().Requirements[m.met]
	if !req.SatisfiedBy(command, tokens) {
		return false
	}
	m.met++
	m.log.Debug("requirement met",
		zap.Int("level", m.Current().ID),
		zap.String("command", command),
		zap.Int("met", m.met),
		zap.Int("of", len(m.Current().Requirements)),
	)
	return true
}

// IsLevelComplete reports whether every requirement of the active level is met.
func (m *Manager) IsLevelComplete() bool {
	return m.met >= len(m.Current().Requirements)
}

// Next moves to the following level. ok is false on the last level.
func (m *Manager) Next() (Level, bool) {
	if m.index+1 >= len(m.levels) {
		return Level{}, false
	}
	m.index++
	m.met = 0
	return m.Current(), true
}

// Goto jumps to the level with the given id.
func (m *Manager) Goto(id int) (Level, error) {
	for i, l := range m.levels {
		if l.ID == id {
			m.index, m.met = i, 0
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("level %d: %w", id, ErrUnknownLevel)
}

// Reset returns to the first level.
func (m *Manager) Reset() {
	m.index, m.met = 0, 0
}
