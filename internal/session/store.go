package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agentcrm_site/internal/dashboard"
	"agentcrm_site/internal/leadform"
)

// Visitor is the per-browser state: one controller per lead form and one
// dashboard router.
type Visitor struct {
	ID    string
	forms map[leadform.Kind]*leadform.Controller
	nav   *dashboard.Router

	mu       sync.Mutex
	lastSeen time.Time
}

// Form returns the visitor's controller for kind
func (v *Visitor) Form(kind leadform.Kind) (*leadform.Controller, bool) {
	c, ok := v.forms[kind]
	return c, ok
}

// Nav returns the visitor's dashboard router
func (v *Visitor) Nav() *dashboard.Router {
	return v.nav
}

func (v *Visitor) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *Visitor) idleSince(now time.Time) time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return now.Sub(v.lastSeen)
}

// busy reports whether any form has a delivery in flight
func (v *Visitor) busy() bool {
	for _, c := range v.forms {
		if c.Status() == leadform.StatusSubmitting {
			return true
		}
	}
	return false
}

// DefaultMaxVisitors bounds the store when Options.MaxVisitors is unset
const DefaultMaxVisitors = 10000

// Options configure how new visitors are built
type Options struct {
	Deliverer   leadform.Deliverer
	Recipients  map[string]string
	Registry    *dashboard.Registry
	IdleTimeout time.Duration
	MaxVisitors int
	Logger      *zap.Logger
}

// Store keeps visitors in memory. Nothing is persisted; a restart starts
// every visitor fresh.
type Store struct {
	opts Options
	now  func() time.Time

	mu       sync.RWMutex
	visitors map[string]*Visitor

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewStore creates a store and starts its idle sweeper
func NewStore(opts Options) *Store {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 30 * time.Minute
	}
	if opts.MaxVisitors <= 0 {
		opts.MaxVisitors = DefaultMaxVisitors
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Store{
		opts:     opts,
		now:      time.Now,
		visitors: make(map[string]*Visitor),
		stop:     make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop(opts.IdleTimeout / 2)
	return s
}

// Lookup returns the stored visitor for id and marks it as seen
func (s *Store) Lookup(id string) (*Visitor, bool) {
	s.mu.RLock()
	v, ok := s.visitors[id]
	s.mu.RUnlock()
	if ok {
		v.touch(s.now())
	}
	return v, ok
}

// Get returns the visitor for id, creating and storing a new one (with a
// fresh id) when id is unknown.
func (s *Store) Get(id string) *Visitor {
	if v, ok := s.Lookup(id); ok {
		return v
	}

	now := s.now()
	v := s.newVisitor(now)

	s.mu.Lock()
	evicted := 0
	for len(s.visitors) >= s.opts.MaxVisitors && s.evictOldestLocked() {
		evicted++
	}
	s.visitors[v.ID] = v
	s.mu.Unlock()

	if evicted > 0 {
		s.opts.Logger.Warn("Visitor limit reached, evicted least recent", zap.Int("count", evicted))
	}
	s.opts.Logger.Debug("New visitor session", zap.String("visitor", v.ID))
	return v
}

// Transient returns a fresh visitor that is not stored. Read-only requests
// from unknown callers render from one so they cost nothing after the
// response.
func (s *Store) Transient() *Visitor {
	return s.newVisitor(s.now())
}

// evictOldestLocked drops the least recently seen visitor that has no
// submission in flight. It reports false when every visitor is busy.
func (s *Store) evictOldestLocked() bool {
	now := s.now()

	oldestID, oldestIdle := "", time.Duration(-1)
	for id, v := range s.visitors {
		if idle := v.idleSince(now); idle > oldestIdle && !v.busy() {
			oldestID, oldestIdle = id, idle
		}
	}
	if oldestIdle < 0 {
		return false
	}
	delete(s.visitors, oldestID)
	return true
}

func (s *Store) newVisitor(now time.Time) *Visitor {
	forms := make(map[leadform.Kind]*leadform.Controller)
	for _, schema := range leadform.Schemas() {
		to := s.opts.Recipients[string(schema.Kind)]
		forms[schema.Kind] = leadform.New(schema, to, s.opts.Deliverer)
	}

	registry := s.opts.Registry
	if registry == nil {
		registry = dashboard.NewRegistry()
	}

	return &Visitor{
		ID:       uuid.NewString(),
		forms:    forms,
		nav:      dashboard.NewRouter(registry),
		lastSeen: now,
	}
}

// Len returns the number of live visitors
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.visitors)
}

// Sweep drops visitors idle longer than the timeout. Visitors with a
// submission in flight are kept until it resolves.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, v := range s.visitors {
		if v.idleSince(now) > s.opts.IdleTimeout && !v.busy() {
			delete(s.visitors, id)
			removed++
		}
	}
	return removed
}

func (s *Store) sweepLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.opts.Logger.Debug("Evicted idle visitors", zap.Int("count", n))
			}
		case <-s.stop:
			return
		}
	}
}

// Close stops the sweeper and waits for in-flight submissions to resolve or
// ctx to end.
func (s *Store) Close(ctx context.Context) error {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()

	s.mu.RLock()
	var pending []*leadform.Controller
	for _, v := range s.visitors {
		for _, c := range v.forms {
			pending = append(pending, c)
		}
	}
	s.mu.RUnlock()

	for _, c := range pending {
		if _, err := c.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}
