package search

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// buildKey is shared by lazy initialization and forced rebuilds so that at
// most one build runs at a time. The shared build runs without the first
// caller's cancellation, since other callers may be waiting on it.
const buildKey = "build"

// Manager owns the shared Engine for one documents directory. The engine is
// built lazily on first use; ForceReindex replaces it after the directory
// changes. Concurrent builds collapse into one.
type Manager struct {
	dir    string
	opts   Options
	logger *slog.Logger

	group         singleflight.Group
	engine        atomic.Pointer[Engine]
	lastIndexTime atomic.Int64 // unix nanoseconds
}

// NewManager creates a manager for dir. Engines it builds use opts.
func NewManager(dir string, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{dir: dir, opts: opts, logger: logger}
}

// Dir returns the managed documents directory.
func (m *Manager) Dir() string { return m.dir }

// Engine returns the shared engine, building it on first call.
func (m *Manager) Engine(ctx context.Context) (*Engine, error) {
	if e := m.engine.Load(); e != nil {
		return e, nil
	}
	v, err, _ := m.group.Do(buildKey, func() (any, error) {
		if e := m.engine.Load(); e != nil {
			return e, nil
		}
		m.logger.Info("Creating search engine", "dir", m.dir)
		return m.rebuild(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*Engine), nil
}

// Current returns the shared engine without building it.
func (m *Manager) Current() (*Engine, bool) {
	e := m.engine.Load()
	return e, e != nil
}

// ForceReindex builds a new engine from the directory's current contents and
// swaps it in. If the build fails the previous engine stays in place.
// Callers arriving while a rebuild is running share its result.
func (m *Manager) ForceReindex(ctx context.Context) (*Engine, error) {
	v, err, shared := m.group.Do(buildKey, func() (any, error) {
		m.logger.Info("Forcing reindex", "dir", m.dir)
		return m.rebuild(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	if shared {
		m.logger.Debug("Joined in-flight reindex")
	}
	return v.(*Engine), nil
}

// LastIndexTime reports when the shared engine was last built successfully.
func (m *Manager) LastIndexTime() time.Time {
	ns := m.lastIndexTime.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

func (m *Manager) rebuild(ctx context.Context) (*Engine, error) {
	if m.dir == "" {
		return nil, ErrNoDirectoryConfig
	}
	e := NewEngine(m.opts)
	if err := e.IndexDocuments(ctx, m.dir); err != nil {
		return nil, err
	}
	m.engine.Store(e)
	m.lastIndexTime.Store(time.Now().UnixNano())
	m.logger.Info("Search engine ready", "documents", e.Stats().TotalDocuments)
	return e, nil
}
