// Package session tracks who is logged in to the tenant portal and keeps
// the persisted bearer token in step with that.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/models"
	"github.com/Simatwa/house-rental-management-system/internal/tokenstore"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

// AuthAPI is the slice of the rental API the session needs.
// apiclient.Client satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*dtos.TokenAuth, error)
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	RotateToken(ctx context.Context) (*dtos.TokenAuth, error)
}

// Navigator performs the full navigation that follows a logout.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type Phase string

const (
	PhaseInitializing  Phase = "initializing"
	PhaseAnonymous     Phase = "anonymous"
	PhaseAuthenticated Phase = "authenticated"
)

// State is an immutable snapshot of the session.
// IsAuthenticated is always User != nil.
type State struct {
	Phase           Phase
	IsAuthenticated bool
	User            *models.UserProfile
	Loading         bool
	Error           string
}

// Manager owns the session state machine.
//
// Every Bootstrap and Login captures a generation number. Logout,
// Invalidate and any newer Login advance it, and an operation that
// resolves under an older generation commits nothing and returns
// utils.ErrSuperseded. Overlapping logins therefore resolve as "last
// started wins".
type Manager struct {
	api   AuthAPI
	store tokenstore.Store
	nav   Navigator

	mu          sync.Mutex
	gen         uint64
	booted      bool
	user        *models.UserProfile
	loading     bool
	errMsg      string
	subscribers map[int]func(State)
	nextSubID   int
}

// NewManager starts in the initializing phase with loading set, as before
// the first Bootstrap. nav may be nil.
func NewManager(api AuthAPI, store tokenstore.Store, nav Navigator) *Manager {
	return &Manager{
		api:         api,
		store:       store,
		nav:         nav,
		loading:     true,
		subscribers: make(map[int]func(State)),
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers fn to receive the state after every transition.
// The returned func removes it.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// Bootstrap restores the session from the persisted token. With no token
// the session becomes anonymous. When the profile cannot be fetched the
// token is discarded, the session-expired message is set and the
// returned error wraps utils.ErrSessionExpired.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.loading = true
	m.unlockAndNotify()

	token, ok, err := m.store.Get()
	if err != nil {
		utils.Logger.WithError(err).Warn("Could not read persisted token; starting anonymous")
	}
	if err != nil || !ok || token == "" {
		return m.commit(gen, func() {
			m.booted = true
			m.user = nil
			m.loading = false
		})
	}

	profile, err := m.api.GetProfile(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// The token is kept so a later Bootstrap can still restore it.
			if cerr := m.commit(gen, func() {
				m.booted = true
				m.loading = false
			}); cerr != nil {
				return cerr
			}
			return ctx.Err()
		}

		utils.Logger.WithError(err).Info("Stored session no longer valid")
		if cerr := m.commit(gen, func() {
			if rmErr := m.store.Remove(); rmErr != nil {
				utils.Logger.WithError(rmErr).Error("Failed to discard expired token")
			}
			m.booted = true
			m.user = nil
			m.errMsg = utils.MsgSessionExpired
			m.loading = false
		}); cerr != nil {
			return cerr
		}
		return fmt.Errorf("%w: %w", utils.ErrSessionExpired, err)
	}

	return m.commit(gen, func() {
		m.booted = true
		m.user = profile
		m.loading = false
	})
}

// Login exchanges credentials for a token, persists it and fetches the
// profile. The session only becomes authenticated once both steps have
// succeeded. On failure the error message is set, the session keeps
// whoever was logged in before along with their token, and the
// underlying error is returned unchanged.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.loading = true
	m.errMsg = ""
	m.unlockAndNotify()

	auth, err := m.api.Login(ctx, username, password)
	if err != nil {
		return m.failLogin(ctx, gen, nil, err)
	}

	// The token is written only while this login is still current, so a
	// superseded login never overwrites a newer session's token.
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return utils.ErrSuperseded
	}
	prev := &priorToken{}
	if m.user != nil {
		prev.value, prev.ok, _ = m.store.Get()
	}
	err = m.store.Set(auth.AccessToken)
	m.mu.Unlock()
	if err != nil {
		return m.failLogin(ctx, gen, nil, fmt.Errorf("persist token: %w", err))
	}

	profile, err := m.api.GetProfile(ctx)
	if err != nil {
		return m.failLogin(ctx, gen, prev, err)
	}

	return m.commit(gen, func() {
		m.booted = true
		m.user = profile
		m.loading = false
	})
}

// priorToken is the token an authenticated session held before a login
// attempt overwrote it.
type priorToken struct {
	value string
	ok    bool
}

// failLogin settles a failed login. written is non-nil when this attempt
// already persisted its token: the prior token is put back, or the store
// is cleared when there was none. The current user is left as it was. A
// canceled context clears loading without setting the error message.
func (m *Manager) failLogin(ctx context.Context, gen uint64, written *priorToken, cause error) error {
	canceled := ctx.Err() != nil && errors.Is(cause, ctx.Err())
	if cerr := m.commit(gen, func() {
		if written != nil {
			var err error
			if written.ok {
				err = m.store.Set(written.value)
			} else {
				err = m.store.Remove()
			}
			if err != nil {
				utils.Logger.WithError(err).Error("Failed to roll back half-written token")
			}
		}
		m.booted = true
		m.loading = false
		if !canceled {
			m.errMsg = utils.MsgInvalidCredentials
		}
	}); cerr != nil {
		return cerr
	}
	if !canceled {
		utils.Logger.WithError(cause).Info("Login failed")
	}
	return cause
}

// Logout erases the persisted token, clears the user and navigates to the
// application root. In-flight bootstrap or login results are discarded.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.gen++
	if err := m.store.Remove(); err != nil {
		utils.Logger.WithError(err).Error("Failed to remove token on logout")
	}
	m.booted = true
	m.user = nil
	m.loading = false
	m.unlockAndNotify()

	if m.nav != nil {
		m.nav.Navigate(utils.RootPath)
	}
}

// Invalidate discards the results of any in-flight operation without
// changing who is logged in.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.gen++
	m.loading = false
	m.unlockAndNotify()
}

// RotateToken swaps the persisted token for a fresh one from the API.
func (m *Manager) RotateToken(ctx context.Context) error {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return utils.ErrNotAuthenticated
	}
	gen := m.gen
	m.mu.Unlock()

	auth, err := m.api.RotateToken(ctx)
	if err != nil {
		return fmt.Errorf("rotate token: %w", err)
	}
	if auth.AccessToken == "" {
		return errors.New("rotate token: server returned an empty token")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return utils.ErrSuperseded
	}
	if err := m.store.Set(auth.AccessToken); err != nil {
		return fmt.Errorf("persist rotated token: %w", err)
	}
	return nil
}

// commit applies fn if gen is still current and notifies subscribers.
func (m *Manager) commit(gen uint64, fn func()) error {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		utils.Logger.Debug("Discarding superseded session result")
		return utils.ErrSuperseded
	}
	fn()
	m.unlockAndNotify()
	return nil
}

// unlockAndNotify releases m.mu and then hands the new snapshot to every
// subscriber. Must be called with m.mu held.
func (m *Manager) unlockAndNotify() {
	st := m.snapshotLocked()
	subs := make([]func(State), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

func (m *Manager) snapshotLocked() State {
	phase := PhaseAnonymous
	switch {
	case m.user != nil:
		phase = PhaseAuthenticated
	case !m.booted:
		phase = PhaseInitializing
	}
	return State{
		Phase:           phase,
		IsAuthenticated: m.user != nil,
		User:            m.user,
		Loading:         m.loading,
		Error:           m.errMsg,
	}
}
