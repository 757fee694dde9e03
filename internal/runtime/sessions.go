package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"devstation/internal/metrics"
	"devstation/internal/shell"
)

// session pairs an interpreter with the lock that keeps one command in
// flight at a time.
type session struct {
	mu       sync.Mutex
	in       *shell.Interpreter
	lastUsed time.Time
	// evicted is set under mu once the session left the manager; holders
	// must look the sid up again.
	evicted bool
}

// Execution is what one command line did to a session.
type Execution struct {
	Result shell.Result
	// Patch is the merge patch applied to the stored snapshot, nil when the
	// environment did not change.
	Patch    []byte
	Packages []string
}

// SessionManager owns one interpreter per session id, created lazily from
// the store.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	store    SessionStore
	log      *slog.Logger
	now      func() time.Time

	// reference serves completion and the static document table, neither of
	// which touches session state.
	reference *shell.Interpreter
}

func NewSessionManager(store SessionStore, log *slog.Logger) *SessionManager {
	if store == nil {
		store = NewMemoryStore()
	}
	if log == nil {
		log = slog.Default()
	}
	return &SessionManager{
		sessions:  make(map[string]*session),
		store:     store,
		log:       log,
		now:       time.Now,
		reference: shell.New(shell.WithLogger(log)),
	}
}

func (m *SessionManager) acquire(ctx context.Context, sid string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sid]; ok {
		return s, nil
	}
	snap, found, err := m.store.Load(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sid, err)
	}
	env := shell.NewEnvironment()
	if found {
		env = shell.Restore(snap)
		m.log.Debug("session restored", "sid", sid, "packages", env.PackageCount())
	}
	s := &session{
		in:       shell.New(shell.WithEnvironment(env), shell.WithLogger(m.log.With("sid", sid))),
		lastUsed: m.now(),
	}
	m.sessions[sid] = s
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	return s, nil
}

// lock returns the live session for sid with its mutex held.
func (m *SessionManager) lock(ctx context.Context, sid string) (*session, error) {
	for {
		s, err := m.acquire(ctx, sid)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if !s.evicted {
			s.lastUsed = m.now()
			return s, nil
		}
		s.mu.Unlock()
	}
}

// Exec runs one line in the session and persists the environment when it
// changed. A store failure after the command ran is logged; the result is
// still returned.
func (m *SessionManager) Exec(ctx context.Context, sid, line string) (Execution, error) {
	s, err := m.lock(ctx, sid)
	if err != nil {
		return Execution{}, err
	}
	defer s.mu.Unlock()

	res := s.in.Process(ctx, line)
	env := s.in.Environment()
	patch, err := m.store.Save(ctx, sid, env.Snapshot())
	if err != nil {
		m.log.Warn("session save failed", "sid", sid, "err", err)
		patch = nil
	}
	return Execution{Result: res, Patch: patch, Packages: env.Packages()}, nil
}

// Packages returns the session's installed packages, restoring the session
// when needed.
func (m *SessionManager) Packages(ctx context.Context, sid string) ([]string, error) {
	s, err := m.lock(ctx, sid)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return s.in.Environment().Packages(), nil
}

// Complete lists command names for tab completion.
func (m *SessionManager) Complete(partial string) []string {
	return m.reference.Complete(partial)
}

// Canonical maps a typed command word to its registered name, or "" when it
// is not registered.
func (m *SessionManager) Canonical(name string) string {
	if e, ok := m.reference.Registry().Resolve(name); ok {
		return e.Name
	}
	return ""
}

// Document returns the content of a virtual file.
func (m *SessionManager) Document(name string) (string, bool) {
	return m.reference.Environment().ReadFile(name)
}

// Close drops the in-memory interpreter. The stored snapshot is kept.
func (m *SessionManager) Close(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sid]
	if !ok {
		return
	}
	s.mu.Lock()
	s.evicted = true
	s.mu.Unlock()
	delete(m.sessions, sid)
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
}

// Evict closes the sessions unused for longer than idle and returns how many
// went. Sessions running a command are skipped.
func (m *SessionManager) Evict(idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for sid, s := range m.sessions {
		if !s.mu.TryLock() {
			continue
		}
		if s.lastUsed.Before(cutoff) {
			s.evicted = true
			delete(m.sessions, sid)
			n++
		}
		s.mu.Unlock()
	}
	if n > 0 {
		metrics.ActiveSessions.Set(float64(len(m.sessions)))
		m.log.Debug("sessions evicted", "count", n, "active", len(m.sessions))
	}
	return n
}

// RunEviction evicts idle sessions every idle/2 until ctx is done. A
// non-positive idle disables eviction.
func (m *SessionManager) RunEviction(ctx context.Context, idle time.Duration) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(max(idle/2, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Evict(idle)
		}
	}
}

// Active reports the number of live interpreters.
func (m *SessionManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
