package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/melodex/internal/api"
	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/shared"
)

// ProfileFlow implements profile edits for the current user.
type ProfileFlow struct {
	deps Deps
}

// NewProfileFlow creates the profile workflow.
func NewProfileFlow(deps Deps) *ProfileFlow {
	return &ProfileFlow{deps: deps.fill()}
}

// Update changes the user's name and email, then refreshes the session's
// resolved profile. When avatarPath is non-empty the image is uploaded as a
// chained second call with the same non-atomic semantics as playlist
// covers: a failed upload leaves the profile update in place and surfaces
// one error.
func (f *ProfileFlow) Update(ctx context.Context, name, email, avatarPath string) (*models.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		f.deps.Notifier.Error("Name and email are required.")
		return nil, fmt.Errorf("%w: name and email are required", shared.ErrInvalidInput)
	}

	user, err := f.deps.Client.UpdateProfile(ctx, api.ProfileUpdateRequest{Name: name, Email: email})
	if err != nil {
		notifyFailure(f.deps.Notifier, err)
		return nil, err
	}
	f.deps.Notifier.Success("Profile updated")

	if avatarPath != "" {
		if uploaded, err := f.uploadAvatar(ctx, avatarPath); err != nil {
			f.deps.Notifier.Error("Profile updated, but the avatar upload failed. Try again.")
		} else {
			user = uploaded
		}
	}

	if f.deps.Session != nil {
		if refreshed, err := f.deps.Session.Refresh(ctx); err == nil {
			user = refreshed
		}
	}

	return user, nil
}

// RemoveAvatar deletes the current avatar.
func (f *ProfileFlow) RemoveAvatar(ctx context.Context) error {
	if err := f.deps.Client.DeleteAvatar(ctx); err != nil {
		notifyFailure(f.deps.Notifier, err)
		return err
	}

	f.deps.Notifier.Success("Avatar removed")

	if f.deps.Session != nil {
		f.deps.Session.Refresh(ctx)
	}
	return nil
}

func (f *ProfileFlow) uploadAvatar(ctx context.Context, path string) (*models.User, error) {
	if path == "" {
		return nil, shared.ErrNothingToUpload
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open avatar file: %w", err)
	}
	defer file.Close()

	return f.deps.Client.UploadAvatar(ctx, filepath.Base(path), file)
}
