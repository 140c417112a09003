package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Malithmadhushantha/asali-frontend/internal/api"
	"github.com/Malithmadhushantha/asali-frontend/internal/models"
	"github.com/Malithmadhushantha/asali-frontend/internal/notify"
	"github.com/Malithmadhushantha/asali-frontend/internal/store"
)

type fakeStore struct {
	mu    sync.Mutex
	slots map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{slots: map[string]string{}}
}

func (s *fakeStore) Read(slot string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.slots[slot]
	return v, ok
}

func (s *fakeStore) Write(slot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = value
	return nil
}

func (s *fakeStore) Erase(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}

func (s *fakeStore) Close() error { return nil }

type mockBackend struct {
	mu         sync.Mutex
	token      string
	loginCalls int
	meErr      error
	meUser     models.Identity
	loginFn    func(email, password string) (api.AuthPayload, error)
	googleFn   func(profile api.GoogleProfile) (api.AuthPayload, error)
	profileFn  func(patch api.ProfilePatch) (models.Identity, error)
}

func (b *mockBackend) Login(_ context.Context, email, password string) (api.AuthPayload, error) {
	b.mu.Lock()
	b.loginCalls++
	fn := b.loginFn
	b.mu.Unlock()
	if fn == nil {
		return api.AuthPayload{}, errors.New("no login stub")
	}
	return fn(email, password)
}

func (b *mockBackend) Register(_ context.Context, name, email, password string) (api.AuthPayload, error) {
	return api.AuthPayload{Token: "reg-token", User: models.Identity{Name: name, Email: email, Role: models.RoleCustomer}}, nil
}

func (b *mockBackend) GoogleLogin(_ context.Context, profile api.GoogleProfile) (api.AuthPayload, error) {
	if b.googleFn == nil {
		return api.AuthPayload{}, errors.New("no google stub")
	}
	return b.googleFn(profile)
}

func (b *mockBackend) Me(context.Context) (models.Identity, error) {
	if b.meErr != nil {
		return models.Identity{}, b.meErr
	}
	return b.meUser, nil
}

func (b *mockBackend) UpdateProfile(_ context.Context, patch api.ProfilePatch) (models.Identity, error) {
	if b.profileFn == nil {
		return models.Identity{}, errors.New("no profile stub")
	}
	return b.profileFn(patch)
}

func (b *mockBackend) SetToken(token string) {
	b.mu.Lock()
	b.token = token
	b.mu.Unlock()
}

func (b *mockBackend) ClearToken() { b.SetToken("") }

func (b *mockBackend) currentToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

func newManager(backend *mockBackend, st store.Store) (*Manager, *notify.Bus) {
	bus := notify.New(zerolog.Nop())
	return New(backend, st, bus, zerolog.Nop()), bus
}

func TestBootstrapRestoresSession(t *testing.T) {
	st := newFakeStore()
	require.NoError(t, st.Write(store.SlotToken, "stored-token"))

	backend := &mockBackend{meUser: models.Identity{ID: "u1", Name: "Amara", Email: "a@x.com", Role: models.RoleCustomer}}
	m, bus := newManager(backend, st)

	m.Bootstrap(context.Background())

	snap := m.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "Amara", snap.Identity.Name)
	assert.Equal(t, "stored-token", backend.currentToken())
	assert.Empty(t, bus.Drain(), "bootstrap must be silent")
}

func TestBootstrapRejectedCredentialResetsSilently(t *testing.T) {
	st := newFakeStore()
	require.NoError(t, st.Write(store.SlotToken, "stale-token"))

	backend := &mockBackend{meErr: &api.Error{Status: 401, Message: "jwt expired"}}
	m, bus := newManager(backend, st)

	m.Bootstrap(context.Background())

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.Identity)
	assert.Empty(t, snap.LastError)

	_, ok := st.Read(store.SlotToken)
	assert.False(t, ok, "stale credential must be erased")
	assert.Empty(t, backend.currentToken())
	assert.Empty(t, bus.Drain(), "bootstrap failure must not surface to the user")
}

func TestBootstrapWithoutCredentialStaysAnonymous(t *testing.T) {
	backend := &mockBackend{meErr: errors.New("must not be called")}
	m, _ := newManager(backend, newFakeStore())

	m.Bootstrap(context.Background())

	assert.Equal(t, StateAnonymous, m.Snapshot().State)
}

func TestLoginSuccessPersistsAndGreetsByRole(t *testing.T) {
	for _, tc := range []struct {
		role    models.Role
		greetIn string
	}{
		{models.RoleCustomer, "Happy shopping at Asali House of Fashion"},
		{models.RoleAdmin, "Admin Nadee! You have full system access"},
	} {
		st := newFakeStore()
		backend := &mockBackend{loginFn: func(email, password string) (api.AuthPayload, error) {
			return api.AuthPayload{Token: "fresh-token", User: models.Identity{Name: "Nadee", Email: email, Role: tc.role}}, nil
		}}
		m, bus := newManager(backend, st)

		result := m.Login(context.Background(), "n@x.com", "pw")
		require.True(t, result.OK)

		snap := m.Snapshot()
		assert.True(t, snap.IsAuthenticated)
		assert.Equal(t, StateAuthenticated, snap.State)

		stored, ok := st.Read(store.SlotToken)
		require.True(t, ok)
		assert.Equal(t, "fresh-token", stored)
		assert.Equal(t, "fresh-token", backend.currentToken())

		notices := bus.Drain()
		require.Len(t, notices, 1)
		assert.Equal(t, notify.KindSuccess, notices[0].Kind)
		assert.Contains(t, notices[0].Message, tc.greetIn)
	}
}

func TestLoginFailureSetsLastErrorAndNotifiesOnce(t *testing.T) {
	backend := &mockBackend{loginFn: func(string, string) (api.AuthPayload, error) {
		return api.AuthPayload{}, &api.Error{Status: 401, Message: "Invalid password"}
	}}
	m, bus := newManager(backend, newFakeStore())

	result := m.Login(context.Background(), "n@x.com", "bad")
	require.False(t, result.OK)
	assert.Equal(t, "Invalid password", result.Err)

	snap := m.Snapshot()
	assert.Equal(t, StateAuthFailed, snap.State)
	assert.False(t, snap.IsAuthenticated)
	assert.Equal(t, "Invalid password", snap.LastError)

	notices := bus.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, notify.KindError, notices[0].Kind)
	assert.Equal(t, "Invalid password", notices[0].Message)
}

func TestLoginFailureFallsBackToGenericMessage(t *testing.T) {
	backend := &mockBackend{loginFn: func(string, string) (api.AuthPayload, error) {
		return api.AuthPayload{}, errors.New("connection refused")
	}}
	m, _ := newManager(backend, newFakeStore())

	result := m.Login(context.Background(), "n@x.com", "pw")
	assert.Equal(t, "Login failed", result.Err)
}

// The slower of two overlapping login attempts must not determine
// final state.
func TestOverlappingLoginLatestAttemptWins(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	first := true

	backend := &mockBackend{}
	backend.loginFn = func(email, _ string) (api.AuthPayload, error) {
		if first {
			first = false
			close(started)
			<-release
			return api.AuthPayload{Token: "old-token", User: models.Identity{Name: "Old", Email: email}}, nil
		}
		return api.AuthPayload{Token: "new-token", User: models.Identity{Name: "New", Email: email}}, nil
	}

	st := newFakeStore()
	m, _ := newManager(backend, st)

	done := make(chan Result, 1)
	go func() { done <- m.Login(context.Background(), "old@x.com", "pw") }()
	<-started

	result := m.Login(context.Background(), "new@x.com", "pw")
	require.True(t, result.OK)

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("first login never returned")
	}

	snap := m.Snapshot()
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "New", snap.Identity.Name, "stale response must be dropped")

	stored, ok := st.Read(store.SlotToken)
	require.True(t, ok)
	assert.Equal(t, "new-token", stored)
}

func TestLogoutResetsEverything(t *testing.T) {
	st := newFakeStore()
	backend := &mockBackend{loginFn: func(email, password string) (api.AuthPayload, error) {
		return api.AuthPayload{Token: "tok", User: models.Identity{Name: "Nadee", Email: email}}, nil
	}}
	m, bus := newManager(backend, st)

	require.True(t, m.Login(context.Background(), "n@x.com", "pw").OK)
	bus.Drain()

	m.Logout()

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.Identity)

	_, ok := st.Read(store.SlotToken)
	assert.False(t, ok)
	assert.Empty(t, backend.currentToken())

	notices := bus.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, "Logged out successfully", notices[0].Message)
}

func identityToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "RS256", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return fmt.Sprintf("%s.%s.%s",
		base64.RawURLEncoding.EncodeToString(header),
		base64.RawURLEncoding.EncodeToString(payload),
		base64.RawURLEncoding.EncodeToString([]byte("sig")))
}

func TestLoginWithIdentityTokenForwardsDecodedProfile(t *testing.T) {
	var got api.GoogleProfile
	backend := &mockBackend{googleFn: func(profile api.GoogleProfile) (api.AuthPayload, error) {
		got = profile
		return api.AuthPayload{Token: "g-token", User: models.Identity{Name: profile.Name, Email: profile.Email, Role: models.RoleCustomer}}, nil
	}}
	m, bus := newManager(backend, newFakeStore())

	token := identityToken(t, map[string]any{
		"email":   "g@x.com",
		"name":    "Gamini",
		"sub":     "google-123",
		"picture": "https://pic",
	})

	result := m.LoginWithIdentityToken(context.Background(), token)
	require.True(t, result.OK)

	assert.Equal(t, "g@x.com", got.Email)
	assert.Equal(t, "Gamini", got.Name)
	assert.Equal(t, "google-123", got.GoogleID)
	assert.Equal(t, "https://pic", got.Picture)

	notices := bus.Drain()
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0].Message, "Google login successful")
}

func TestLoginWithIdentityTokenMissingEmailFailsBeforeNetwork(t *testing.T) {
	called := false
	backend := &mockBackend{googleFn: func(api.GoogleProfile) (api.AuthPayload, error) {
		called = true
		return api.AuthPayload{}, nil
	}}
	m, bus := newManager(backend, newFakeStore())

	token := identityToken(t, map[string]any{"name": "No Email"})
	result := m.LoginWithIdentityToken(context.Background(), token)

	require.False(t, result.OK)
	assert.False(t, called, "backend must not be called for an incomplete payload")
	assert.Contains(t, result.Err, "incomplete profile information")

	notices := bus.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, notify.KindError, notices[0].Kind)
}

func TestLoginWithIdentityTokenGarbageFailsFast(t *testing.T) {
	backend := &mockBackend{}
	m, _ := newManager(backend, newFakeStore())

	result := m.LoginWithIdentityToken(context.Background(), "not-a-token")
	require.False(t, result.OK)
	assert.Contains(t, result.Err, "malformed identity token")
}

func TestUpdateProfileMergesFieldWise(t *testing.T) {
	backend := &mockBackend{
		loginFn: func(email, password string) (api.AuthPayload, error) {
			return api.AuthPayload{Token: "tok", User: models.Identity{
				ID: "u1", Name: "Nadee", Email: "n@x.com", Phone: "0771234567", Role: models.RoleCustomer,
			}}, nil
		},
		profileFn: func(patch api.ProfilePatch) (models.Identity, error) {
			return models.Identity{Name: patch.Name}, nil
		},
	}
	m, bus := newManager(backend, newFakeStore())

	require.True(t, m.Login(context.Background(), "n@x.com", "pw").OK)
	bus.Drain()

	result := m.UpdateProfile(context.Background(), api.ProfilePatch{Name: "Nadeeka"})
	require.True(t, result.OK)

	snap := m.Snapshot()
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "Nadeeka", snap.Identity.Name)
	assert.Equal(t, "n@x.com", snap.Identity.Email, "untouched fields survive the merge")
	assert.Equal(t, "0771234567", snap.Identity.Phone)

	notices := bus.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, "Profile updated successfully!", notices[0].Message)
}

func TestUpdateProfileFailureLeavesStateUnchanged(t *testing.T) {
	backend := &mockBackend{
		loginFn: func(email, password string) (api.AuthPayload, error) {
			return api.AuthPayload{Token: "tok", User: models.Identity{Name: "Nadee", Email: email}}, nil
		},
		profileFn: func(api.ProfilePatch) (models.Identity, error) {
			return models.Identity{}, &api.Error{Status: 400, Message: "Phone number invalid"}
		},
	}
	m, bus := newManager(backend, newFakeStore())

	require.True(t, m.Login(context.Background(), "n@x.com", "pw").OK)
	bus.Drain()

	result := m.UpdateProfile(context.Background(), api.ProfilePatch{Phone: "x"})
	require.False(t, result.OK)
	assert.Equal(t, "Phone number invalid", result.Err)

	snap := m.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "Nadee", snap.Identity.Name)
}

func TestUpdateProfileRequiresAuthentication(t *testing.T) {
	m, bus := newManager(&mockBackend{}, newFakeStore())

	result := m.UpdateProfile(context.Background(), api.ProfilePatch{Name: "X"})
	require.False(t, result.OK)

	notices := bus.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, notify.KindError, notices[0].Kind)
}
