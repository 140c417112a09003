package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Malithmadhushantha/asali-frontend/internal/api"
	"github.com/Malithmadhushantha/asali-frontend/internal/models"
	"github.com/Malithmadhushantha/asali-frontend/internal/notify"
	"github.com/Malithmadhushantha/asali-frontend/internal/store"
)

type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateAuthFailed     State = "auth_failed"
)

// Backend is the slice of the REST client the session manager drives.
type Backend interface {
	Login(ctx context.Context, email, password string) (api.AuthPayload, error)
	Register(ctx context.Context, name, email, password string) (api.AuthPayload, error)
	GoogleLogin(ctx context.Context, profile api.GoogleProfile) (api.AuthPayload, error)
	Me(ctx context.Context) (models.Identity, error)
	UpdateProfile(ctx context.Context, patch api.ProfilePatch) (models.Identity, error)
	SetToken(token string)
	ClearToken()
}

// Snapshot is a point-in-time copy of session state for views.
type Snapshot struct {
	State           State            `json:"state"`
	Identity        *models.Identity `json:"identity,omitempty"`
	IsAuthenticated bool             `json:"isAuthenticated"`
	Loading         bool             `json:"loading"`
	LastError       string           `json:"lastError,omitempty"`
}

// Result is the discriminated outcome of an auth command. Expected
// failures (bad password, rejected registration) come back here, not
// as errors.
type Result struct {
	OK       bool
	Identity models.Identity
	Err      string
}

// Manager owns authentication state. State only moves through the
// transition methods below, and every transition that changes
// credential presence writes the persistence slot in the same step.
//
// Each network attempt carries a sequence number; a response is applied
// only if it belongs to the most recently issued attempt, so an
// overlapping login cannot be clobbered by a slower, older response.
type Manager struct {
	backend Backend
	store   store.Store
	bus     *notify.Bus
	log     zerolog.Logger

	mu         sync.Mutex
	state      State
	identity   *models.Identity
	credential string
	lastError  string
	attempts   uint64
}

func New(backend Backend, st store.Store, bus *notify.Bus, log zerolog.Logger) *Manager {
	return &Manager{
		backend: backend,
		store:   st,
		bus:     bus,
		log:     log,
		state:   StateAnonymous,
	}
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		State:           m.state,
		IsAuthenticated: m.state == StateAuthenticated,
		Loading:         m.state == StateAuthenticating,
		LastError:       m.lastError,
	}
	if m.identity != nil {
		identity := *m.identity
		if m.identity.Address != nil {
			addr := *m.identity.Address
			identity.Address = &addr
		}
		snap.Identity = &identity
	}
	return snap
}

// Bootstrap restores a persisted credential and verifies it against
// the backend. Verification failure silently resets to anonymous and
// discards the stale credential; no retries, no user-facing error.
func (m *Manager) Bootstrap(ctx context.Context) {
	credential, ok := m.store.Read(store.SlotToken)
	if !ok || credential == "" {
		return
	}

	seq := m.beginAttempt()
	m.backend.SetToken(credential)

	identity, err := m.backend.Me(ctx)
	if err != nil {
		m.mu.Lock()
		if seq == m.attempts {
			m.resetLocked()
		}
		m.mu.Unlock()
		m.log.Debug().Err(err).Msg("stored credential rejected, starting anonymous")
		return
	}

	m.mu.Lock()
	if seq == m.attempts {
		m.state = StateAuthenticated
		m.identity = &identity
		m.credential = credential
		m.lastError = ""
	}
	m.mu.Unlock()
	m.log.Debug().Str("email", identity.Email).Msg("session restored")
}

func (m *Manager) Login(ctx context.Context, email, password string) Result {
	seq := m.beginAttempt()

	payload, err := m.backend.Login(ctx, email, password)
	if err != nil {
		message := api.Message(err, "Login failed")
		if m.failAttempt(seq, message) {
			m.bus.Error(message)
		}
		return Result{Err: message}
	}

	if m.succeedAttempt(seq, payload) {
		if payload.User.Role == models.RoleAdmin {
			m.bus.Success(fmt.Sprintf("Welcome back, Admin %s! You have full system access.", payload.User.Name))
		} else {
			m.bus.Success(fmt.Sprintf("Welcome back, %s! Happy shopping at Asali House of Fashion.", payload.User.Name))
		}
	}
	return Result{OK: true, Identity: payload.User}
}

// Register always submits the customer role, whatever the caller was
// given; promotion is a server-side admin mutation.
func (m *Manager) Register(ctx context.Context, name, email, password string) Result {
	seq := m.beginAttempt()

	payload, err := m.backend.Register(ctx, name, email, password)
	if err != nil {
		message := api.Message(err, "Registration failed")
		if m.failAttempt(seq, message) {
			m.bus.Error(message)
		}
		return Result{Err: message}
	}

	if m.succeedAttempt(seq, payload) {
		m.bus.Success("Registration successful! Welcome to Asali House of Fashion.")
	}
	return Result{OK: true, Identity: payload.User}
}

// LoginWithIdentityToken decodes the third-party identity token
// client-side (display-only trust; the backend re-validates the
// asserted identity) and exchanges the decoded profile for a session.
func (m *Manager) LoginWithIdentityToken(ctx context.Context, token string) Result {
	seq := m.beginAttempt()

	claims, err := DecodeIdentityToken(token)
	if err != nil {
		message := err.Error()
		if m.failAttempt(seq, message) {
			m.bus.Error(message)
		}
		return Result{Err: message}
	}

	payload, err := m.backend.GoogleLogin(ctx, api.GoogleProfile{
		Email:    claims.Email,
		Name:     claims.Name,
		GoogleID: claims.Subject,
		Picture:  claims.Picture,
	})
	if err != nil {
		message := api.Message(err, "Google login failed")
		if m.failAttempt(seq, message) {
			m.bus.Error(message)
		}
		return Result{Err: message}
	}

	if m.succeedAttempt(seq, payload) {
		if payload.User.Role == models.RoleAdmin {
			m.bus.Success(fmt.Sprintf("Welcome %s! Google admin login successful.", payload.User.Name))
		} else {
			m.bus.Success(fmt.Sprintf("Welcome %s! Google login successful.", payload.User.Name))
		}
	}
	return Result{OK: true, Identity: payload.User}
}

// Logout always succeeds and needs no network call. It also
// invalidates any in-flight auth attempt.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.attempts++
	m.resetLocked()
	m.mu.Unlock()

	m.bus.Success("Logged out successfully")
}

func (m *Manager) UpdateProfile(ctx context.Context, patch api.ProfilePatch) Result {
	if !m.Snapshot().IsAuthenticated {
		message := "Please log in to update your profile"
		m.bus.Error(message)
		return Result{Err: message}
	}

	identity, err := m.backend.UpdateProfile(ctx, patch)
	if err != nil {
		message := api.Message(err, "Profile update failed")
		m.bus.Error(message)
		return Result{Err: message}
	}

	m.mu.Lock()
	if m.identity != nil {
		merged := m.identity.Merge(identity)
		m.identity = &merged
	}
	m.mu.Unlock()

	m.bus.Success("Profile updated successfully!")
	return Result{OK: true, Identity: identity}
}

func (m *Manager) beginAttempt() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts++
	m.state = StateAuthenticating
	m.lastError = ""
	return m.attempts
}

// succeedAttempt applies a successful auth payload if it belongs to
// the newest attempt. The credential slot is written under the same
// lock as the in-memory transition.
func (m *Manager) succeedAttempt(seq uint64, payload api.AuthPayload) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.attempts {
		m.log.Debug().Uint64("seq", seq).Msg("dropping stale auth response")
		return false
	}

	m.state = StateAuthenticated
	m.identity = &payload.User
	m.credential = payload.Token
	m.lastError = ""

	m.backend.SetToken(payload.Token)
	if err := m.store.Write(store.SlotToken, payload.Token); err != nil {
		m.log.Warn().Err(err).Msg("persist credential failed")
	}
	return true
}

func (m *Manager) failAttempt(seq uint64, message string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.attempts {
		m.log.Debug().Uint64("seq", seq).Msg("dropping stale auth failure")
		return false
	}

	m.state = StateAuthFailed
	m.identity = nil
	m.credential = ""
	m.lastError = message

	m.backend.ClearToken()
	if err := m.store.Erase(store.SlotToken); err != nil {
		m.log.Warn().Err(err).Msg("erase credential failed")
	}
	return true
}

// resetLocked returns to the anonymous state, clearing the persisted
// credential in the same step. Caller holds m.mu.
func (m *Manager) resetLocked() {
	m.state = StateAnonymous
	m.identity = nil
	m.credential = ""
	m.lastError = ""

	m.backend.ClearToken()
	if err := m.store.Erase(store.SlotToken); err != nil {
		m.log.Warn().Err(err).Msg("erase credential failed")
	}
}
