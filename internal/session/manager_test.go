package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/models"
	"github.com/Simatwa/house-rental-management-system/internal/tokenstore"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

// fakeAuth is a scriptable AuthAPI. Profiles are keyed by the token held in
// the store at the time of the call, like the real bearer-token client.
type fakeAuth struct {
	store tokenstore.Store

	mu        sync.Mutex
	passwords map[string]string
	profiles  map[string]*models.UserProfile
	loginGate map[string]chan struct{}
	issued    map[string]string
	rotated   string
}

func newFakeAuth(store tokenstore.Store) *fakeAuth {
	return &fakeAuth{
		store:     store,
		passwords: map[string]string{},
		profiles:  map[string]*models.UserProfile{},
		loginGate: map[string]chan struct{}{},
		issued:    map[string]string{},
	}
}

func (f *fakeAuth) addUser(username, password, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passwords[username] = password
	f.profiles[token] = &models.UserProfile{Username: username, AccountBalance: 100}
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*dtos.TokenAuth, error) {
	f.mu.Lock()
	gate := f.loginGate[username]
	want, known := f.passwords[username]
	var token string
	for tok, p := range f.profiles {
		if p.Username == username {
			token = tok
		}
	}
	if tok, ok := f.issued[username]; ok {
		token = tok
	}
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !known || want != password {
		return nil, utils.ErrInvalidCredentials
	}
	return &dtos.TokenAuth{AccessToken: token, TokenType: "bearer"}, nil
}

func (f *fakeAuth) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	token, ok, _ := f.store.Get()
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, found := f.profiles[token]; ok && found {
		return p, nil
	}
	return nil, utils.ErrNotAuthenticated
}

func (f *fakeAuth) RotateToken(ctx context.Context) (*dtos.TokenAuth, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rotated == "" {
		return nil, errors.New("rotation disabled")
	}
	return &dtos.TokenAuth{AccessToken: f.rotated, TokenType: "bearer"}, nil
}

func (f *fakeAuth) gate(username string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.loginGate[username] = ch
	return ch
}

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

func newTestManager(store tokenstore.Store) (*Manager, *fakeAuth, *recordingNavigator) {
	api := newFakeAuth(store)
	nav := &recordingNavigator{}
	return NewManager(api, store, nav), api, nav
}

func assertAnonymous(t *testing.T, st State, wantErr string) {
	t.Helper()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
	assert.False(t, st.Loading)
	assert.Equal(t, wantErr, st.Error)
	assert.Equal(t, PhaseAnonymous, st.Phase)
}

func TestNewManagerIsInitializing(t *testing.T) {
	m, _, _ := newTestManager(tokenstore.NewMemoryStore())
	st := m.State()
	assert.Equal(t, PhaseInitializing, st.Phase)
	assert.True(t, st.Loading)
	assert.False(t, st.IsAuthenticated)
}

func TestBootstrapWithoutToken(t *testing.T) {
	m, _, _ := newTestManager(tokenstore.NewMemoryStore())

	require.NoError(t, m.Bootstrap(context.Background()))
	assertAnonymous(t, m.State(), "")
}

func TestBootstrapWithValidToken(t *testing.T) {
	store := tokenstore.NewMemoryStoreWith("tok-bob")
	m, api, _ := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")

	require.NoError(t, m.Bootstrap(context.Background()))
	st := m.State()
	assert.True(t, st.IsAuthenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "bob", st.User.Username)
	assert.False(t, st.Loading)
	assert.Equal(t, PhaseAuthenticated, st.Phase)
}

func TestBootstrapWithExpiredToken(t *testing.T) {
	store := tokenstore.NewMemoryStoreWith("expired")
	m, _, _ := newTestManager(store)

	err := m.Bootstrap(context.Background())
	assert.ErrorIs(t, err, utils.ErrSessionExpired)
	assertAnonymous(t, m.State(), "Session expired. Please login again.")

	_, ok, _ := store.Get()
	assert.False(t, ok, "expired token must be discarded")
}

func TestLoginWrongPassword(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, _ := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")
	require.NoError(t, m.Bootstrap(context.Background()))

	err := m.Login(context.Background(), "bob", "wrong")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	assertAnonymous(t, m.State(), "Invalid username or password")

	_, ok, _ := store.Get()
	assert.False(t, ok)
}

func TestLoginSuccess(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, _ := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")
	require.NoError(t, m.Bootstrap(context.Background()))

	require.NoError(t, m.Login(context.Background(), "bob", "correct"))
	st := m.State()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, "bob", st.User.Username)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)

	token, ok, _ := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "tok-bob", token)
}

func TestLoginClearsPreviousError(t *testing.T) {
	store := tokenstore.NewMemoryStoreWith("expired")
	m, api, _ := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")
	_ = m.Bootstrap(context.Background())
	require.Equal(t, utils.MsgSessionExpired, m.State().Error)

	require.NoError(t, m.Login(context.Background(), "bob", "correct"))
	assert.Empty(t, m.State().Error)
}

func TestBootstrapCanceledSettlesAnonymous(t *testing.T) {
	store := tokenstore.NewMemoryStoreWith("tok-bob")
	m, api, _ := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Bootstrap(ctx), context.Canceled)
	assertAnonymous(t, m.State(), "")

	token, ok, _ := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "tok-bob", token)

	require.NoError(t, m.Bootstrap(context.Background()))
	assert.True(t, m.State().IsAuthenticated)
}

func TestFailedReloginKeepsSession(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, _ := newTestManager(store)
	api.addUser("alice", "pw", "tok-alice")
	require.NoError(t, m.Bootstrap(context.Background()))
	require.NoError(t, m.Login(context.Background(), "alice", "pw"))

	err := m.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	st := m.State()
	assert.True(t, st.IsAuthenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "alice", st.User.Username)
	assert.False(t, st.Loading)
	assert.Equal(t, utils.MsgInvalidCredentials, st.Error)
	assert.Equal(t, PhaseAuthenticated, st.Phase)

	token, ok, _ := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "tok-alice", token)

	fresh, freshAPI, _ := newTestManager(store)
	freshAPI.addUser("alice", "pw", "tok-alice")
	require.NoError(t, fresh.Bootstrap(context.Background()))
	assert.Equal(t, "alice", fresh.State().User.Username)
}

func TestFailedReloginRestoresPreviousToken(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, _ := newTestManager(store)
	api.addUser("alice", "pw-a", "tok-alice")
	api.addUser("bob", "pw-b", "tok-bob")
	api.mu.Lock()
	api.issued["bob"] = "tok-no-profile"
	api.mu.Unlock()
	require.NoError(t, m.Bootstrap(context.Background()))
	require.NoError(t, m.Login(context.Background(), "alice", "pw-a"))

	require.Error(t, m.Login(context.Background(), "bob", "pw-b"))

	st := m.State()
	require.True(t, st.IsAuthenticated)
	assert.Equal(t, "alice", st.User.Username)
	assert.Equal(t, utils.MsgInvalidCredentials, st.Error)

	token, _, _ := store.Get()
	assert.Equal(t, "tok-alice", token)
}

func TestLoginTokenWithoutProfileIsFailure(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, _ := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")
	api.mu.Lock()
	delete(api.profiles, "tok-bob")
	api.passwords["bob"] = "correct"
	api.mu.Unlock()
	require.NoError(t, m.Bootstrap(context.Background()))

	err := m.Login(context.Background(), "bob", "correct")
	require.Error(t, err)
	assertAnonymous(t, m.State(), "Invalid username or password")

	_, ok, _ := store.Get()
	assert.False(t, ok, "half-written token must be removed")
}

func TestLoginThenLogout(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, nav := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")
	require.NoError(t, m.Bootstrap(context.Background()))

	require.NoError(t, m.Login(context.Background(), "bob", "correct"))
	m.Logout()

	st := m.State()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
	assert.False(t, st.Loading)
	_, ok, _ := store.Get()
	assert.False(t, ok)
	assert.Equal(t, []string{"/"}, nav.Paths())
}

func TestLogoutDuringLoginDiscardsResult(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, _ := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")
	require.NoError(t, m.Bootstrap(context.Background()))
	release := api.gate("bob")

	done := make(chan error, 1)
	go func() { done <- m.Login(context.Background(), "bob", "correct") }()

	require.Eventually(t, func() bool { return m.State().Loading }, time.Second, time.Millisecond)
	m.Logout()
	close(release)

	err := <-done
	assert.ErrorIs(t, err, utils.ErrSuperseded)
	assertAnonymous(t, m.State(), "")
	_, ok, _ := store.Get()
	assert.False(t, ok, "a superseded login must not persist its token")
}

func TestOverlappingLoginsLastStartedWins(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, _ := newTestManager(store)
	api.addUser("alice", "pw-a", "tok-alice")
	api.addUser("bob", "pw-b", "tok-bob")
	require.NoError(t, m.Bootstrap(context.Background()))

	releaseAlice := api.gate("alice")
	first := make(chan error, 1)
	go func() { first <- m.Login(context.Background(), "alice", "pw-a") }()
	require.Eventually(t, func() bool { return m.State().Loading }, time.Second, time.Millisecond)

	require.NoError(t, m.Login(context.Background(), "bob", "pw-b"))
	close(releaseAlice)
	assert.ErrorIs(t, <-first, utils.ErrSuperseded)

	st := m.State()
	require.True(t, st.IsAuthenticated)
	assert.Equal(t, "bob", st.User.Username)
	token, _, _ := store.Get()
	assert.Equal(t, "tok-bob", token)
}

func TestInvalidateDiscardsInFlightLogin(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, _ := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")
	require.NoError(t, m.Bootstrap(context.Background()))
	release := api.gate("bob")

	done := make(chan error, 1)
	go func() { done <- m.Login(context.Background(), "bob", "correct") }()
	require.Eventually(t, func() bool { return m.State().Loading }, time.Second, time.Millisecond)

	m.Invalidate()
	assert.False(t, m.State().Loading)
	close(release)

	assert.ErrorIs(t, <-done, utils.ErrSuperseded)
	assertAnonymous(t, m.State(), "")
}

func TestLoginCanceledLeavesNoError(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, _ := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")
	require.NoError(t, m.Bootstrap(context.Background()))
	api.gate("bob")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Login(ctx, "bob", "correct") }()
	require.Eventually(t, func() bool { return m.State().Loading }, time.Second, time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	assertAnonymous(t, m.State(), "")
}

func TestSubscribeSeesTransitions(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, _ := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")

	var mu sync.Mutex
	var seen []State
	unsubscribe := m.Subscribe(func(st State) {
		mu.Lock()
		seen = append(seen, st)
		mu.Unlock()
	})

	require.NoError(t, m.Bootstrap(context.Background()))
	require.NoError(t, m.Login(context.Background(), "bob", "correct"))

	mu.Lock()
	require.Len(t, seen, 4)
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[1].Loading)
	assert.True(t, seen[2].Loading)
	assert.True(t, seen[3].IsAuthenticated)
	mu.Unlock()

	unsubscribe()
	m.Logout()
	mu.Lock()
	assert.Len(t, seen, 4)
	mu.Unlock()

	for _, st := range seen {
		assert.Equal(t, st.User != nil, st.IsAuthenticated)
	}
}

func TestRotateToken(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m, api, _ := newTestManager(store)
	api.addUser("bob", "correct", "tok-bob")
	require.NoError(t, m.Bootstrap(context.Background()))

	assert.ErrorIs(t, m.RotateToken(context.Background()), utils.ErrNotAuthenticated)

	require.NoError(t, m.Login(context.Background(), "bob", "correct"))
	assert.Error(t, m.RotateToken(context.Background()))

	api.mu.Lock()
	api.rotated = "tok-bob-2"
	api.mu.Unlock()
	require.NoError(t, m.RotateToken(context.Background()))

	token, _, _ := store.Get()
	assert.Equal(t, "tok-bob-2", token)
	assert.True(t, m.State().IsAuthenticated)
}

func TestNavigatorFunc(t *testing.T) {
	var got string
	m := NewManager(newFakeAuth(tokenstore.NewMemoryStore()), tokenstore.NewMemoryStore(), NavigatorFunc(func(p string) { got = p }))
	m.Logout()
	assert.Equal(t, "/", got)
}
