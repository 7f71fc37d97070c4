package profile

import (
	"context"
	"sync"
	"time"

	"fitprofile/internal/events"
	"fitprofile/internal/healthstore"
	"fitprofile/internal/logger"
	"fitprofile/internal/metrics"

	"go.uber.org/zap"
)

const maxRefreshAttempts = 3

type StateCache interface {
	Get(ctx context.Context, userID uint) (State, bool, error)
	Set(ctx context.Context, userID uint, st State) error
	Delete(ctx context.Context, userID uint) error
}

// Service owns one Screen per user.
type Service struct {
	store     healthstore.HealthStore
	cache     StateCache
	publisher events.Publisher
	opts      []Option

	mu      sync.Mutex
	screens map[uint]*Screen
}

func NewService(store healthstore.HealthStore, cache StateCache, publisher events.Publisher, opts ...Option) *Service {
	return &Service{
		store:     store,
		cache:     cache,
		publisher: publisher,
		opts:      opts,
		screens:   make(map[uint]*Screen),
	}
}

func (s *Service) Screen(userID uint) *Screen {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.screens[userID]
	if !ok {
		sc = NewScreen(userID, s.store, s.opts...)
		s.screens[userID] = sc
	}
	return sc
}

// Current returns the user's state, restoring it from the cache or
// refreshing it when nothing has been loaded yet.
func (s *Service) Current(ctx context.Context, userID uint) State {
	sc := s.Screen(userID)
	if sc.Loaded() {
		return sc.State()
	}

	epoch := sc.currentEpoch()
	cached, ok, err := s.cache.Get(ctx, userID)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		logger.Logger.Warn("State cache lookup failed", zap.Uint("user_id", userID), zap.Error(err))
	case ok && cached.Status() == StatusLoaded:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		if sc.restoreAt(epoch, cached) || sc.Loaded() {
			return sc.State()
		}
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	return s.Refresh(ctx, userID)
}

// Refresh re-reads the health store for the user. It is also the manual
// recovery path after a failure; failures are not retried, but a load
// discarded by Invalidate is run again.
func (s *Service) Refresh(ctx context.Context, userID uint) State {
	sc := s.Screen(userID)
	start := time.Now()

	var (
		st    State
		epoch uint64
		fresh bool
	)
	for attempt := 0; attempt < maxRefreshAttempts && !fresh; attempt++ {
		st, epoch, fresh = sc.refresh(ctx)
	}
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	if !fresh {
		logger.Logger.Warn("Profile kept changing during refresh", zap.Uint("user_id", userID))
		return sc.State()
	}
	metrics.ProfileRefreshes.WithLabelValues(string(st.Status()), st.Reason()).Inc()

	log := logger.Logger.With(
		zap.Uint("user_id", userID),
		zap.String("status", string(st.Status())),
		zap.Uint64("generation", st.Generation()),
	)
	if st.Err() != nil {
		log.Info("Profile refreshed with missing data", zap.String("reason", st.Reason()), zap.Error(st.Err()))
	} else {
		log.Debug("Profile refreshed")
	}

	if st.Status() == StatusLoaded {
		s.cacheState(ctx, sc, epoch, st)
	} else if err := s.cache.Delete(ctx, userID); err != nil {
		log.Warn("Failed to drop cached profile state", zap.Error(err))
	}

	var bmi *float64
	if v, ok := st.BMI(); ok {
		bmi = &v
	}
	event := events.NewProfileRefreshed(userID, string(st.Status()), st.Reason(), bmi, st.Generation())
	if err := s.publisher.PublishProfileRefreshed(ctx, event); err != nil {
		log.Warn("Failed to publish profile event", zap.Error(err))
	}

	return st
}

// cacheState writes st unless the screen was reset after epoch. A reset that
// lands while the write is in flight removes the entry again.
func (s *Service) cacheState(ctx context.Context, sc *Screen, epoch uint64, st State) {
	if sc.currentEpoch() != epoch {
		return
	}
	if err := s.cache.Set(ctx, sc.UserID(), st); err != nil {
		logger.Logger.Warn("Failed to cache profile state", zap.Uint("user_id", sc.UserID()), zap.Error(err))
		return
	}
	if sc.currentEpoch() != epoch {
		if err := s.cache.Delete(ctx, sc.UserID()); err != nil {
			logger.Logger.Warn("Failed to drop cached profile state", zap.Uint("user_id", sc.UserID()), zap.Error(err))
		}
	}
}

// Invalidate drops the user's cached and in-memory state after the
// underlying samples or permissions changed.
func (s *Service) Invalidate(ctx context.Context, userID uint) {
	s.Screen(userID).Reset()
	if err := s.cache.Delete(ctx, userID); err != nil {
		logger.Logger.Warn("Failed to invalidate profile state", zap.Uint("user_id", userID), zap.Error(err))
	}
}
