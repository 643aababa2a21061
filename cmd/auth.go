package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/melodex/internal/api"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates a new account and logs in with it.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Infof("registering account for %v", email)

	msg, err := r.client.Register(ctx, api.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %s", api.UserMessage(err))
	}

	if msg != "" {
		r.writePlain("✓ %s\n", msg)
	} else {
		r.writePlain("✓ Account created\n")
	}

	user, err := r.session.Login(ctx, email, password)
	if err != nil {
		r.writePlain("Account created but login failed: %s\n", api.UserMessage(err))
		r.writePlain("Run 'melodex auth login' to sign in.\n")
		return nil
	}

	r.writePlain("✓ Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

// AuthLogin authenticates against the server and persists the session token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Infof("logging in as %v", email)

	user, err := r.session.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %s", api.UserMessage(err))
	}

	r.writePlain("✓ Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

// AuthLogout clears the persisted token and local session state.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.session.Logout()
	r.writePlain("✓ Logged out\n")
	return nil
}

// AuthResetRequest asks the server to email a password reset token.
func (r *Runner) AuthResetRequest(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")

	r.logger.Infof("requesting password reset for %v", email)

	msg, err := r.client.RequestPasswordReset(ctx, email)
	if err != nil {
		return fmt.Errorf("password reset request failed: %s", api.UserMessage(err))
	}

	if msg != "" {
		r.writePlain("✓ %s\n", msg)
	} else {
		r.writePlain("✓ Reset email sent. Check your inbox for the token.\n")
	}
	return nil
}

// AuthResetConfirm redeems an emailed token for a new password.
func (r *Runner) AuthResetConfirm(ctx context.Context, cmd *cli.Command) error {
	token := cmd.String("token")
	password := cmd.String("password")

	msg, err := r.client.ConfirmPasswordReset(ctx, token, password)
	if err != nil {
		return fmt.Errorf("password reset failed: %s", api.UserMessage(err))
	}

	if msg != "" {
		r.writePlain("✓ %s\n", msg)
	} else {
		r.writePlain("✓ Password changed. Log in with the new password.\n")
	}
	return nil
}

// AuthWhoami shows the authenticated user, hydrating from the stored token if needed.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	user := r.session.User()

	if useJSON {
		return r.writeJSON(user, true)
	}

	r.writePlain("Logged in as %s <%s>\n", user.Name, user.Email)
	if user.AvatarURL != "" {
		r.writePlain("Avatar: %s\n", user.AvatarURL)
	}

	return nil
}
