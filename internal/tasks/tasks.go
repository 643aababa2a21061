// package tasks implements the client-side workflows over the music-library
// API: catalog browsing, the like toggle, playlist mutations, and the
// collaborator-invite lifecycle.
//
// Every mutation follows the same shape: issue the HTTP call, then on
// success invalidate the cache keys whose derived views may have changed.
// Dependent views re-fetch lazily on their next read; nothing is pushed.
// The mapping from mutation to affected keys is the declared table in
// invalidation.go, not ad-hoc call-site knowledge.
package tasks

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/melodex/internal/api"
	"github.com/desertthunder/melodex/internal/cache"
	"github.com/desertthunder/melodex/internal/session"
	"github.com/desertthunder/melodex/internal/shared"
)

// Notifier receives the paired success/failure notifications every mutating
// action produces. The CLI prints them; the TUI shows them in a status line.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier is the default [Notifier], writing notifications to a logger.
type LogNotifier struct {
	Logger *log.Logger
}

func (n *LogNotifier) Success(msg string) { n.Logger.Info(msg) }
func (n *LogNotifier) Error(msg string)   { n.Logger.Error(msg) }

// Deps bundles the shared dependencies injected into every workflow.
type Deps struct {
	Client   *api.Client
	Cache    *cache.Store
	Session  *session.Store
	Notifier Notifier
	Logger   *log.Logger
}

// fill applies defaults for optional dependencies.
func (d Deps) fill() Deps {
	if d.Logger == nil {
		d.Logger = shared.NewLogger(nil)
	}
	if d.Notifier == nil {
		d.Notifier = &LogNotifier{Logger: d.Logger}
	}
	if d.Cache == nil {
		d.Cache = cache.NewStore(d.Logger)
	}
	return d
}

// notifyFailure surfaces err as a user-visible notification. Errors never
// blank a view; previously rendered data stays in place.
func notifyFailure(n Notifier, err error) {
	n.Error(api.UserMessage(err))
}
