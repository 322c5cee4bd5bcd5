package session

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MikaStiebitz/Git-Gud/commands"
	"github.com/MikaStiebitz/Git-Gud/levels"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned for unknown or expired session ids.
	ErrNotFound = errors.New("session not found")
	// ErrRejected is returned when the cache refuses a new session, usually because it is full.
	ErrRejected = errors.New("session rejected")
)

// Options configure a Manager.
type Options struct {
	TTL         time.Duration
	MaxSessions int64
	Registry    *commands.Registry
	Catalog     []levels.Level
	// NewStore returns the progress store of a new session. Defaults to an in-memory store.
	NewStore func(id string) levels.Store
	// OnEvict is called after a session expired or was pushed out of the cache.
	OnEvict func(id string)
}

// Manager keeps live sessions in a TTL cache. Every Get extends the lifetime of the session.
type Manager struct {
	cache *ristretto.Cache[string, *Session]
	opts  Options
	ids   sync.Map // ids counted in live
	live  atomic.Int64
	log   *zap.Logger
}

// NewManager creates the session cache.
func NewManager(opts Options, log *zap.Logger) (*Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 1000
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.Registry == nil {
		opts.Registry = commands.NewDefaultRegistry(log)
	}
	if len(opts.Catalog) == 0 {
		opts.Catalog = levels.DefaultCatalog()
	}
	if opts.NewStore == nil {
		opts.NewStore = func(string) levels.Store { return levels.NewMemoryStore() }
	}

	m := &Manager{opts: opts, log: log}
	cache, err := ristretto.NewCache(&ristretto.Config[string, *Session]{
		NumCounters:        opts.MaxSessions * 10,
		MaxCost:            opts.MaxSessions,
		BufferItems:        64,
		IgnoreInternalCost: true,
		OnEvict: func(item *ristretto.Item[*Session]) {
			if item.Value == nil || !m.retire(item.Value.ID) {
				return
			}
			log.Info("session evicted", zap.String("session", item.Value.ID))
			if opts.OnEvict != nil {
				opts.OnEvict(item.Value.ID)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating session cache: %w", err)
	}
	m.cache = cache
	return m, nil
}

// Create starts a new session at the learner's saved level.
func (m *Manager) Create() (*Session, error) {
	id := uuid.NewString()
	progress, err := levels.NewProgressManager(m.opts.NewStore(id), m.log)
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}
	s := New(id, m.opts.Registry, m.opts.Catalog, progress, m.log)

	m.admit(id)
	if !m.cache.SetWithTTL(id, s, 1, m.opts.TTL) {
		m.retire(id)
		return nil, ErrRejected
	}
	m.cache.Wait()
	if _, ok := m.cache.Get(id); !ok {
		m.retire(id)
		return nil, ErrRejected
	}
	m.log.Info("session created", zap.String("session", id))
	return s, nil
}

// Get returns a live session and refreshes its TTL.
func (m *Manager) Get(id string) (*Session, error) {
	s, ok := m.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	m.cache.SetWithTTL(id, s, 1, m.opts.TTL)
	return s, nil
}

// Delete ends a session. It reports whether the session was still live. An expired session is counted out but reported missing.
func (m *Manager) Delete(id string) bool {
	_, live := m.cache.Get(id)
	m.cache.Del(id)
	m.cache.Wait()
	if !m.retire(id) || !live {
		return false
	}
	m.log.Info("session deleted", zap.String("session", id))
	return true
}

// admit counts id as live once.
func (m *Manager) admit(id string) {
	if _, loaded := m.ids.LoadOrStore(id, struct{}{}); !loaded {
		m.live.Add(1)
	}
}

// retire counts id out and reports whether it was still counted.
func (m *Manager) retire(id string) bool {
	if _, loaded := m.ids.LoadAndDelete(id); !loaded {
		return false
	}
	m.live.Add(-1)
	return true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int64 {
	return m.live.Load()
}

// Registry returns the command registry shared by all sessions.
func (m *Manager) Registry() *commands.Registry {
	return m.opts.Registry
}

// Close releases the cache.
func (m *Manager) Close() {
	m.cache.Close()
}
