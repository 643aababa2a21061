package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/melodex/internal/models"
)

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the payload for POST /users/auth.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the issued bearer token.
type loginResponse struct {
	Token string `json:"token"`
}

// passwordResetRequest is the payload for POST /users/password-reset/request.
type passwordResetRequest struct {
	Email string `json:"email"`
}

// passwordResetConfirm is the payload for POST /users/password-reset/confirm.
type passwordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ProfileUpdateRequest is the payload for PUT /users/profile.
type ProfileUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register creates a new account. The server responds with a confirmation
// message only; the caller still has to log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	msg, err := c.do(ctx, http.MethodPost, "/users/register", req, nil)
	if err != nil {
		return "", fmt.Errorf("register failed: %w", err)
	}
	return msg, nil
}

// Login exchanges credentials for a bearer token and attaches it to the
// client for all subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if _, err := c.do(ctx, http.MethodPost, "/users/auth", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	c.SetToken(resp.Token)
	return resp.Token, nil
}

// RequestPasswordReset asks the server to email a reset token to the given
// address. The server replies with a confirmation message; no session is
// required.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	msg, err := c.do(ctx, http.MethodPost, "/users/password-reset/request", passwordResetRequest{Email: email}, nil)
	if err != nil {
		return "", fmt.Errorf("password reset request failed: %w", err)
	}
	return msg, nil
}

// ConfirmPasswordReset redeems a reset token for a new password. Tokens are
// single use and expire server-side.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (string, error) {
	payload := passwordResetConfirm{Token: token, NewPassword: newPassword}
	msg, err := c.do(ctx, http.MethodPost, "/users/password-reset/confirm", payload, nil)
	if err != nil {
		return "", fmt.Errorf("password reset failed: %w", err)
	}
	return msg, nil
}

// Profile retrieves the current user's profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, http.MethodGet, "/users/profile", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the current user's name and email.
func (c *Client) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, http.MethodPut, "/users/profile", req, &user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// UploadAvatar uploads a new profile image. Chained after profile mutations
// by the workflow layer; never called when the primary mutation failed.
func (c *Client) UploadAvatar(ctx context.Context, filename string, file io.Reader) (*models.User, error) {
	var user models.User
	if _, err := c.doMultipart(ctx, http.MethodPost, "/users/profile/avatar", "avatar", filename, file, &user); err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}
	return &user, nil
}

// DeleteAvatar removes the current user's profile image.
func (c *Client) DeleteAvatar(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodDelete, "/users/profile/avatar", nil, nil); err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}
	return nil
}
