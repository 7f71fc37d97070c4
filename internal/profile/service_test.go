package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fitprofile/internal/events"
	"fitprofile/internal/healthstore"
	"fitprofile/internal/mocks"
	"fitprofile/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStateCache struct {
	mock.Mock
}

func (m *mockStateCache) Get(ctx context.Context, userID uint) (State, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(State), args.Bool(1), args.Error(2)
}

func (m *mockStateCache) Set(ctx context.Context, userID uint, st State) error {
	args := m.Called(ctx, userID, st)
	return args.Error(0)
}

func (m *mockStateCache) Delete(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishProfileRefreshed(ctx context.Context, event events.ProfileRefreshed) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

func setupService() (*Service, *mocks.MockHealthStore, *mockStateCache, *mockPublisher) {
	store := new(mocks.MockHealthStore)
	cache := new(mockStateCache)
	pub := new(mockPublisher)
	svc := NewService(store, cache, pub, WithClock(func() time.Time { return fixedNow }))
	return svc, store, cache, pub
}

func TestServiceScreenIsPerUser(t *testing.T) {
	svc, _, _, _ := setupService()

	assert.Same(t, svc.Screen(1), svc.Screen(1))
	assert.NotSame(t, svc.Screen(1), svc.Screen(2))
	assert.Equal(t, uint(2), svc.Screen(2).UserID())
}

func TestServiceCurrentRefreshesOnCacheMiss(t *testing.T) {
	svc, store, cache, pub := setupService()
	cache.On("Get", mock.Anything, uint(1)).Return(State{}, false, nil)
	store.On("RequestAuthorization", mock.Anything, uint(1), models.ProfileSampleTypes).Return(nil)
	expectSamples(store, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), nil, 1.8, 72)
	cache.On("Set", mock.Anything, uint(1), mock.AnythingOfType("profile.State")).Return(nil)
	pub.On("PublishProfileRefreshed", mock.Anything, mock.MatchedBy(func(e events.ProfileRefreshed) bool {
		return e.UserID == 1 && e.Status == "loaded" && e.BMI != nil && *e.BMI > 22.2 && *e.BMI < 22.3
	})).Return(nil)

	st := svc.Current(context.Background(), 1)
	assert.Equal(t, StatusLoaded, st.Status())

	// a second read is served from memory
	again := svc.Current(context.Background(), 1)
	assert.Equal(t, st.Generation(), again.Generation())

	store.AssertExpectations(t)
	cache.AssertExpectations(t)
	pub.AssertExpectations(t)
	cache.AssertNumberOfCalls(t, "Get", 1)
}

func TestServiceCurrentRestoresFromCache(t *testing.T) {
	svc, store, cache, _ := setupService()
	cached := loadedState(ptr(30), ptr(1.6), ptr(50.0), nil, fixedNow)
	cache.On("Get", mock.Anything, uint(1)).Return(cached, true, nil)

	st := svc.Current(context.Background(), 1)

	assert.Equal(t, StatusLoaded, st.Status())
	w, _ := st.Weight()
	assert.Equal(t, 50.0, w)
	store.AssertNotCalled(t, "RequestAuthorization", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceCurrentFallsBackWhenCacheFails(t *testing.T) {
	svc, store, cache, pub := setupService()
	cache.On("Get", mock.Anything, uint(1)).Return(State{}, false, errors.New("redis down"))
	store.On("RequestAuthorization", mock.Anything, uint(1), models.ProfileSampleTypes).Return(healthstore.ErrAuthorizationDenied)
	cache.On("Delete", mock.Anything, uint(1)).Return(nil)
	pub.On("PublishProfileRefreshed", mock.Anything, mock.Anything).Return(nil)

	st := svc.Current(context.Background(), 1)

	assert.Equal(t, StatusUnavailable, st.Status())
	assert.Equal(t, "authorization_denied", st.Reason())
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceRefreshSurvivesPublishAndCacheErrors(t *testing.T) {
	svc, store, cache, pub := setupService()
	store.On("RequestAuthorization", mock.Anything, uint(1), models.ProfileSampleTypes).Return(nil)
	expectSamples(store, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), nil, 1.8, 72)
	cache.On("Set", mock.Anything, uint(1), mock.Anything).Return(errors.New("redis down"))
	pub.On("PublishProfileRefreshed", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	st := svc.Refresh(context.Background(), 1)
	assert.Equal(t, StatusLoaded, st.Status())
}

func TestServiceInvalidate(t *testing.T) {
	svc, _, cache, _ := setupService()
	svc.Screen(1).Restore(loadedState(nil, ptr(1.6), ptr(50.0), nil, fixedNow))
	cache.On("Delete", mock.Anything, uint(1)).Return(nil)

	svc.Invalidate(context.Background(), 1)

	assert.False(t, svc.Screen(1).Loaded())
	cache.AssertExpectations(t)
}

func TestServiceWithRealPublisherTypes(t *testing.T) {
	store := new(mocks.MockHealthStore)
	svc := NewService(store, nopCache{}, events.NopPublisher{})
	store.On("RequestAuthorization", mock.Anything, uint(3), models.ProfileSampleTypes).Return(healthstore.ErrAuthorizationDenied)

	st := svc.Refresh(context.Background(), 3)
	require.Equal(t, StatusUnavailable, st.Status())
}

type nopCache struct{}

func (nopCache) Get(context.Context, uint) (State, bool, error) { return State{}, false, nil }
func (nopCache) Set(context.Context, uint, State) error         { return nil }
func (nopCache) Delete(context.Context, uint) error             { return nil }

// memoryCache keeps states in a map so tests can look at what was written.
type memoryCache struct {
	mu     sync.Mutex
	states map[uint]State
}

func newMemoryCache() *memoryCache {
	return &memoryCache{states: make(map[uint]State)}
}

func (m *memoryCache) Get(_ context.Context, userID uint) (State, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[userID]
	return st, ok, nil
}

func (m *memoryCache) Set(_ context.Context, userID uint, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = st
	return nil
}

func (m *memoryCache) Delete(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
	return nil
}

// editableStore serves the current weight and access answer, blocking the
// first weight query until gate is closed.
type editableStore struct {
	gate    chan struct{}
	started chan struct{}

	mu     sync.Mutex
	weight float64
	denied bool
	calls  int
}

func newEditableStore(weight float64) *editableStore {
	return &editableStore{gate: make(chan struct{}), started: make(chan struct{}), weight: weight}
}

func (e *editableStore) update(weight float64, denied bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.weight, e.denied = weight, denied
}

func (e *editableStore) RequestAuthorization(context.Context, uint, []models.SampleType) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.denied {
		return healthstore.ErrAuthorizationDenied
	}
	return nil
}

func (e *editableStore) QueryLatest(_ context.Context, _ uint, t models.SampleType) (healthstore.Sample, error) {
	if t == models.SampleTypeHeight {
		return healthstore.Sample{Type: t, Value: 1.8}, nil
	}
	e.mu.Lock()
	call, weight := e.calls, e.weight
	e.calls++
	e.mu.Unlock()

	if call == 0 {
		close(e.started)
		<-e.gate
	}
	return healthstore.Sample{Type: t, Value: weight}, nil
}

func (e *editableStore) DateOfBirth(context.Context, uint) (time.Time, error) {
	return time.Time{}, healthstore.ErrNoSampleAvailable
}

func TestServiceInvalidateDiscardsInFlightRefresh(t *testing.T) {
	store := newEditableStore(72)
	cache := newMemoryCache()
	svc := NewService(store, cache, events.NopPublisher{}, WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	done := make(chan State)
	go func() { done <- svc.Refresh(ctx, 1) }()
	<-store.started

	store.update(90, false)
	svc.Invalidate(ctx, 1)
	close(store.gate)
	refreshed := <-done

	w, _ := refreshed.Weight()
	assert.Equal(t, 90.0, w)

	w, _ = svc.Current(ctx, 1).Weight()
	assert.Equal(t, 90.0, w)

	cached, ok, _ := cache.Get(ctx, 1)
	require.True(t, ok)
	w, _ = cached.Weight()
	assert.Equal(t, 90.0, w)
}

func TestServiceRevokedAccessDropsInFlightRefresh(t *testing.T) {
	store := newEditableStore(72)
	cache := newMemoryCache()
	svc := NewService(store, cache, events.NopPublisher{}, WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	done := make(chan State)
	go func() { done <- svc.Refresh(ctx, 1) }()
	<-store.started

	store.update(72, true)
	svc.Invalidate(ctx, 1)
	close(store.gate)
	<-done

	st := svc.Current(ctx, 1)
	assert.Equal(t, StatusUnavailable, st.Status())
	assert.Equal(t, "authorization_denied", st.Reason())
	_, ok := st.Weight()
	assert.False(t, ok)
	_, ok = st.BMI()
	assert.False(t, ok)

	_, ok, _ = cache.Get(ctx, 1)
	assert.False(t, ok)
}
