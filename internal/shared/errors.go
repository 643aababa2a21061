package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrSessionExpired   = fmt.Errorf("session expired")

	// API and service errors
	ErrAPIRequest       = fmt.Errorf("API request failed")
	ErrMusicNotFound    = fmt.Errorf("music not found")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrInviteNotFound   = fmt.Errorf("invite not found")

	// Workflow errors
	ErrToggleInFlight  = fmt.Errorf("like toggle already in flight")
	ErrInviteResolved  = fmt.Errorf("invite already resolved")
	ErrOrphanedMusic   = fmt.Errorf("music has no owner and is read-only")
	ErrNothingToUpload = fmt.Errorf("no image to upload")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
