package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"agentcrm_site/internal/dashboard"
	"agentcrm_site/internal/leadform"
)

func newTestStore(t *testing.T, d leadform.Deliverer) *Store {
	t.Helper()
	s := NewStore(Options{
		Deliverer:   d,
		Recipients:  map[string]string{"agency": "partners@example.in", "sales": "sales@example.in"},
		Registry:    dashboard.NewRegistry(),
		IdleTimeout: time.Hour,
	})
	return s
}

func closeStore(t *testing.T, s *Store) {
	t.Helper()
	require.NoError(t, s.Close(context.Background()))
}

func okDeliverer() leadform.Deliverer {
	return leadform.DelivererFunc(func(context.Context, leadform.Inquiry) error { return nil })
}

func TestGetCreatesAndReuses(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := newTestStore(t, okDeliverer())
	defer closeStore(t, s)

	v := s.Get("")
	require.NotEmpty(t, v.ID)
	assert.Same(t, v, s.Get(v.ID))
	assert.NotSame(t, v, s.Get("unknown-id"))
	assert.Equal(t, 2, s.Len())

	for _, schema := range leadform.Schemas() {
		c, ok := v.Form(schema.Kind)
		require.True(t, ok)
		assert.Equal(t, leadform.StatusIdle, c.Status())
	}
	assert.Equal(t, dashboard.DefaultPage, v.Nav().ActivePage())
}

func TestVisitorsAreIsolated(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := newTestStore(t, okDeliverer())
	defer closeStore(t, s)

	a, b := s.Get(""), s.Get("")
	fa, _ := a.Form(leadform.KindAgency)
	fb, _ := b.Form(leadform.KindAgency)
	fa.UpdateField("agencyName", "Acme")

	assert.Equal(t, "", fb.State().Value("agencyName"))
}

func TestSweepEvictsIdleVisitors(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate := make(chan struct{})
	s := newTestStore(t, leadform.DelivererFunc(func(context.Context, leadform.Inquiry) error {
		<-gate
		return nil
	}))
	defer closeStore(t, s)

	now := time.Now()
	s.now = func() time.Time { return now }
	idle := s.Get("")
	busy := s.Get("")
	form, _ := busy.Form(leadform.KindSales)
	require.True(t, form.Submit(context.Background()))

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	fresh := s.Get("")

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 2, s.Len())
	assert.NotSame(t, idle, s.Get(idle.ID), "evicted visitor gets a new session")
	assert.Same(t, fresh, s.Get(fresh.ID))

	close(gate)
	_, err := form.Wait(context.Background())
	require.NoError(t, err)
}

func TestLookupAndTransientDoNotStore(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := newTestStore(t, okDeliverer())
	defer closeStore(t, s)

	_, ok := s.Lookup("")
	assert.False(t, ok)

	tmp := s.Transient()
	require.NotEmpty(t, tmp.ID)
	_, ok = s.Lookup(tmp.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	v := s.Get("")
	got, ok := s.Lookup(v.ID)
	require.True(t, ok)
	assert.Same(t, v, got)
}

func TestMaxVisitorsEvictsLeastRecent(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate := make(chan struct{})
	s := NewStore(Options{
		Deliverer: leadform.DelivererFunc(func(context.Context, leadform.Inquiry) error {
			<-gate
			return nil
		}),
		IdleTimeout: time.Hour,
		MaxVisitors: 3,
	})
	defer closeStore(t, s)

	now := time.Now()
	at := func(d time.Duration) { s.now = func() time.Time { return now.Add(d) } }

	at(0)
	busy := s.Get("")
	form, _ := busy.Form(leadform.KindAgency)
	require.True(t, form.Submit(context.Background()))
	at(time.Second)
	oldest := s.Get("")
	at(2 * time.Second)
	recent := s.Get("")

	at(3 * time.Second)
	s.Get("")
	assert.Equal(t, 3, s.Len())

	_, ok := s.Lookup(oldest.ID)
	assert.False(t, ok, "least recently seen idle visitor evicted")
	_, ok = s.Lookup(busy.ID)
	assert.True(t, ok, "visitor with a submission in flight kept")
	_, ok = s.Lookup(recent.ID)
	assert.True(t, ok)

	close(gate)
}

func TestCloseWaitsForInFlightSubmissions(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate := make(chan struct{})
	s := newTestStore(t, leadform.DelivererFunc(func(context.Context, leadform.Inquiry) error {
		<-gate
		return nil
	}))

	form, _ := s.Get("").Form(leadform.KindSales)
	require.True(t, form.Submit(context.Background()))

	closed := make(chan error, 1)
	go func() { closed <- s.Close(context.Background()) }()

	select {
	case err := <-closed:
		t.Fatalf("Close returned before the delivery resolved: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return after the delivery resolved")
	}
	assert.Equal(t, leadform.StatusSuccess, form.Status())
}

func TestCloseGivesUpAtDeadline(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate := make(chan struct{})
	s := newTestStore(t, leadform.DelivererFunc(func(context.Context, leadform.Inquiry) error {
		<-gate
		return nil
	}))

	form, _ := s.Get("").Form(leadform.KindInsurer)
	require.True(t, form.Submit(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Close(ctx), context.DeadlineExceeded)
	assert.Equal(t, leadform.StatusSubmitting, form.Status())

	close(gate)
	_, err := form.Wait(context.Background())
	require.NoError(t, err)
}
