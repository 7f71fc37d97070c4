package profile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"fitprofile/internal/healthstore"
	"fitprofile/internal/models"

	"golang.org/x/sync/errgroup"
)

// Screen is the profile of one user. It asks the health store for read
// access, loads the latest samples and keeps the result as a single State
// that readers can take at any time without blocking a refresh.
type Screen struct {
	userID uint
	store  healthstore.HealthStore
	now    func() time.Time

	authorized atomic.Bool
	current    atomic.Pointer[State]

	mu         sync.Mutex // serialises commits
	generation uint64
	// epoch advances on Reset; work started in an older epoch is not stored.
	epoch uint64
}

type Option func(*Screen)

// WithClock overrides the clock used for ages and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Screen) { s.now = now }
}

func NewScreen(userID uint, store healthstore.HealthStore, opts ...Option) *Screen {
	s := &Screen{
		userID: userID,
		store:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Screen) UserID() uint { return s.userID }

// State returns the current snapshot. Before the first refresh it is unauthorized.
func (s *Screen) State() State {
	if p := s.current.Load(); p != nil {
		return *p
	}
	return unauthorizedState()
}

// Loaded reports whether any state has been stored yet.
func (s *Screen) Loaded() bool {
	return s.current.Load() != nil
}

func (s *Screen) Rows(units Units) []Row {
	return Render(s.State(), units)
}

// RequestAuthorization asks for read access to date of birth, height and weight.
// A denial clears the state.
func (s *Screen) RequestAuthorization(ctx context.Context) error {
	return s.requestAuthorization(ctx, s.currentEpoch())
}

func (s *Screen) requestAuthorization(ctx context.Context, epoch uint64) error {
	err := s.store.RequestAuthorization(ctx, s.userID, models.ProfileSampleTypes)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return errors.Join(ErrSuperseded, err)
	}

	if err != nil {
		s.authorized.Store(false)
		s.storeLocked(unavailableState(err, s.now()))
		return err
	}

	s.authorized.Store(true)
	if st := s.State(); st.Status() == StatusUnauthorized || st.Status() == StatusUnavailable {
		s.storeLocked(authorizedState(s.now()))
	}
	return nil
}

// LoadLatestSamples queries date of birth, height and weight concurrently and
// stores the resulting state. Missing samples leave their field empty and are
// reported as healthstore.ErrNoSampleAvailable; a denial or query failure
// clears the whole state.
func (s *Screen) LoadLatestSamples(ctx context.Context) (State, error) {
	st, _, err := s.loadLatestSamples(ctx, s.currentEpoch())
	return st, err
}

func (s *Screen) loadLatestSamples(ctx context.Context, epoch uint64) (State, bool, error) {
	if !s.authorized.Load() {
		st, ok := s.commitAt(epoch, unavailableState(ErrNotAuthorized, s.now()))
		if !ok {
			return st, false, errors.Join(ErrSuperseded, ErrNotAuthorized)
		}
		return st, true, ErrNotAuthorized
	}

	var (
		age      *int
		height   *float64
		weight   *float64
		missing  [3]error
		now      = s.now()
		userID   = s.userID
		store    = s.store
		g, gctx  = errgroup.WithContext(ctx)
		softFail = func(i int, err error) error {
			if errors.Is(err, healthstore.ErrNoSampleAvailable) {
				missing[i] = err
				return nil
			}
			return err
		}
	)

	g.Go(func() error {
		dob, err := store.DateOfBirth(gctx, userID)
		if err != nil {
			return softFail(0, err)
		}
		a := ageAt(dob, now)
		age = &a
		return nil
	})
	g.Go(func() error {
		sample, err := store.QueryLatest(gctx, userID, models.SampleTypeHeight)
		if err != nil {
			return softFail(1, err)
		}
		height = &sample.Value
		return nil
	})
	g.Go(func() error {
		sample, err := store.QueryLatest(gctx, userID, models.SampleTypeBodyMass)
		if err != nil {
			return softFail(2, err)
		}
		weight = &sample.Value
		return nil
	})

	if err := g.Wait(); err != nil {
		if !errors.Is(err, healthstore.ErrAuthorizationDenied) && !errors.Is(err, healthstore.ErrQueryFailed) {
			err = errors.Join(healthstore.ErrQueryFailed, err)
		}
		st, ok := s.commitAt(epoch, unavailableState(err, s.now()))
		if !ok {
			return st, false, errors.Join(ErrSuperseded, err)
		}
		if errors.Is(err, healthstore.ErrAuthorizationDenied) {
			s.authorized.Store(false)
		}
		return st, true, err
	}

	st, ok := s.commitAt(epoch, loadedState(age, height, weight, errors.Join(missing[:]...), s.now()))
	if !ok {
		return st, false, ErrSuperseded
	}
	return st, true, st.Err()
}

// Refresh runs the whole authorize-then-load sequence and returns the stored state.
func (s *Screen) Refresh(ctx context.Context) State {
	st, _, _ := s.refresh(ctx)
	return st
}

// refresh reports the epoch the sequence ran in and whether its result was
// stored. A Reset during the sequence discards the result.
func (s *Screen) refresh(ctx context.Context) (State, uint64, bool) {
	epoch := s.currentEpoch()
	if err := s.requestAuthorization(ctx, epoch); err != nil {
		return s.State(), epoch, !errors.Is(err, ErrSuperseded)
	}
	st, ok, _ := s.loadLatestSamples(ctx, epoch)
	return st, epoch, ok
}

// Restore installs st if the screen has not stored anything yet.
func (s *Screen) Restore(st State) bool {
	return s.restoreAt(s.currentEpoch(), st)
}

func (s *Screen) restoreAt(epoch uint64, st State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.current.Load() != nil {
		return false
	}
	if st.Status() == StatusLoaded {
		s.authorized.Store(true)
	}
	s.storeLocked(st)
	return true
}

// Reset forgets the stored state so the next read triggers a refresh.
// Loads already in flight are discarded when they complete.
func (s *Screen) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.current.Store(nil)
}

func (s *Screen) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// commitAt publishes st as the current state unless a Reset happened after
// epoch. Refreshes may overlap; the one that completes last wins.
func (s *Screen) commitAt(epoch uint64, st State) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return s.State(), false
	}
	return s.storeLocked(st), true
}

func (s *Screen) storeLocked(st State) State {
	s.generation++
	st = st.withGeneration(s.generation)
	s.current.Store(&st)
	return st
}

func ageAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
