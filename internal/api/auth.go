package api

import (
	"context"
	"net/http"

	"github.com/Malithmadhushantha/asali-frontend/internal/models"
)

// AuthPayload is the backend's answer to every successful auth call.
type AuthPayload struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthPayload, error) {
	var payload AuthPayload
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{
		Email:    email,
		Password: password,
	}, &payload)
	return payload, err
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register always submits the customer role. Promotion is an
// admin-only mutation on the server; self-registration never gets a
// say in it.
func (c *Client) Register(ctx context.Context, name, email, password string) (AuthPayload, error) {
	var payload AuthPayload
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     string(models.RoleCustomer),
	}, &payload)
	return payload, err
}

// GoogleProfile carries claims decoded client-side from the identity
// token. They are unverified here; the backend re-validates before
// trusting any of it.
type GoogleProfile struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	GoogleID string `json:"googleId"`
	Picture  string `json:"picture,omitempty"`
}

func (c *Client) GoogleLogin(ctx context.Context, profile GoogleProfile) (AuthPayload, error) {
	var payload AuthPayload
	err := c.do(ctx, http.MethodPost, "/auth/google-login", nil, profile, &payload)
	return payload, err
}

type userEnvelope struct {
	User models.Identity `json:"user"`
}

// Me is the credential-verification probe.
func (c *Client) Me(ctx context.Context) (models.Identity, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &env); err != nil {
		return models.Identity{}, err
	}
	return env.User, nil
}

// ProfilePatch is a partial profile update; zero fields are omitted
// from the request body.
type ProfilePatch struct {
	Name    string          `json:"name,omitempty"`
	Phone   string          `json:"phone,omitempty"`
	Address *models.Address `json:"address,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (models.Identity, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, patch, &env); err != nil {
		return models.Identity{}, err
	}
	return env.User, nil
}

type usersEnvelope struct {
	Users []models.Identity `json:"users"`
}

func (c *Client) ListUsers(ctx context.Context) ([]models.Identity, error) {
	var env usersEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/users", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Users, nil
}

type roleRequest struct {
	Role models.Role `json:"role"`
}

func (c *Client) UpdateUserRole(ctx context.Context, userID string, role models.Role) (models.Identity, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodPatch, "/auth/users/"+userID+"/role", nil, roleRequest{Role: role}, &env); err != nil {
		return models.Identity{}, err
	}
	return env.User, nil
}
