package tasks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/melodex/internal/api"
	"github.com/desertthunder/melodex/internal/cache"
	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/shared"
)

// InviteFlow implements the collaborator-invite lifecycle for the current
// user: list pending invites, accept, reject.
//
// Accept and reject are never optimistic. An invite leaves the visible list
// only after the server confirms, because a false-positive accept (the
// invite was already resolved by another actor) must surface as feedback,
// not silently vanish.
type InviteFlow struct {
	deps Deps
}

// NewInviteFlow creates the invite workflow.
func NewInviteFlow(deps Deps) *InviteFlow {
	return &InviteFlow{deps: deps.fill()}
}

// ListMyInvites reads the current user's invites through the cache. The
// server returns only actionable (pending) invites; no client-side
// filtering is applied, and an empty slice renders as the empty state.
func (f *InviteFlow) ListMyInvites(ctx context.Context) ([]models.CollaboratorInvite, error) {
	return cache.ReadAs(ctx, f.deps.Cache, cache.CollaboratorInvites(), f.deps.Client.MyInvites)
}

// Accept accepts a pending invite. On success the invite is consumed and
// the collaborator materialized in one server operation, and three views go
// stale: the invite list, the user's playlists (the playlist now appears
// for them), and the accessible-playlists aggregate.
//
// A racing second accept fails with a domain error; the invite list is
// invalidated so the next read reflects the true state.
func (f *InviteFlow) Accept(ctx context.Context, inviteID int64) (*models.Collaborator, error) {
	collab, msg, err := f.deps.Client.AcceptInvite(ctx, inviteID)
	if err != nil {
		f.resolveFailed(err)
		return nil, wrapResolveError(err)
	}

	if err := invalidate(f.deps.Cache, MutationAcceptInvite, Scope{}); err != nil {
		return nil, err
	}

	if msg == "" {
		msg = "Invite accepted"
	}
	f.deps.Notifier.Success(msg)

	return collab, nil
}

// Reject rejects a pending invite. Only the invite list goes stale;
// rejecting creates no playlist access.
func (f *InviteFlow) Reject(ctx context.Context, inviteID int64) error {
	msg, err := f.deps.Client.RejectInvite(ctx, inviteID)
	if err != nil {
		f.resolveFailed(err)
		return wrapResolveError(err)
	}

	if err := invalidate(f.deps.Cache, MutationRejectInvite, Scope{}); err != nil {
		return err
	}

	if msg == "" {
		msg = "Invite rejected"
	}
	f.deps.Notifier.Success(msg)

	return nil
}

// wrapResolveError maps accept/reject failures onto domain sentinels. A 404
// means the invite or its playlist is gone; the only 400 this endpoint
// produces is a second resolve of the same invite. The API error stays in
// the chain for callers that inspect codes.
func wrapResolveError(err error) error {
	if api.IsNotFound(err) {
		return fmt.Errorf("%w: %w", shared.ErrInviteNotFound, err)
	}
	if apiErr, ok := api.AsError(err); ok && apiErr.Status == http.StatusBadRequest {
		return fmt.Errorf("%w: %w", shared.ErrInviteResolved, err)
	}
	return err
}

// resolveFailed surfaces an accept/reject failure. Domain errors (invite
// already resolved, playlist deleted) additionally mark the invite list
// stale so the next read shows the server's current truth.
func (f *InviteFlow) resolveFailed(err error) {
	notifyFailure(f.deps.Notifier, err)

	if _, ok := api.AsError(err); ok {
		f.deps.Cache.Invalidate(cache.CollaboratorInvites())
	}
}
