package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/melodex/internal/api"
	"github.com/desertthunder/melodex/internal/cache"
	"github.com/desertthunder/melodex/internal/session"
	"github.com/desertthunder/melodex/internal/shared"
	"github.com/desertthunder/melodex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	client     *api.Client
	cache      *cache.Store
	session    *session.Store
	logger     *log.Logger
	output     io.Writer

	catalog   *tasks.CatalogFlow
	likes     *tasks.LikeFlow
	playlists *tasks.PlaylistFlow
	invites   *tasks.InviteFlow
	profile   *tasks.ProfileFlow
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     *api.Client
	Cache      *cache.Store
	Session    *session.Store
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Client == nil {
		clientOpts := []api.Option{
			api.WithLogger(opts.Logger),
			api.WithRateLimit(opts.Config.Server.RateLimit),
		}
		if opts.Config.Server.TimeoutSeconds > 0 {
			clientOpts = append(clientOpts, api.WithHTTPClient(&http.Client{
				Timeout: time.Duration(opts.Config.Server.TimeoutSeconds) * time.Second,
			}))
		}
		opts.Client = api.NewClient(opts.Config.Server.BaseURL, clientOpts...)
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewStore(opts.Logger)
	}
	if opts.Session == nil {
		tokenPath, err := opts.Config.TokenPath()
		if err != nil {
			opts.Logger.Warnf("failed to resolve token path %v", err)
		}
		opts.Session = session.NewStore(opts.Client, tokenPath, opts.Logger)
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		client:     opts.Client,
		cache:      opts.Cache,
		session:    opts.Session,
		logger:     opts.Logger,
		output:     opts.Output,
	}

	deps := r.deps(&plainNotifier{runner: r})
	r.catalog = tasks.NewCatalogFlow(deps)
	r.likes = tasks.NewLikeFlow(deps)
	r.playlists = tasks.NewPlaylistFlow(deps)
	r.invites = tasks.NewInviteFlow(deps)
	r.profile = tasks.NewProfileFlow(deps)

	return r
}

// deps assembles a workflow dependency bundle around the given notifier.
func (r *Runner) deps(n tasks.Notifier) tasks.Deps {
	return tasks.Deps{
		Client:   r.client,
		Cache:    r.cache,
		Session:  r.session,
		Notifier: n,
		Logger:   r.logger,
	}
}

// SetLogger swaps the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// requireSession ensures an authenticated session, hydrating from the stored
// token if needed.
func (r *Runner) requireSession(ctx context.Context) error {
	if r.session.Authenticated() {
		return nil
	}

	ok, err := r.session.Hydrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: run 'melodex auth login' first", shared.ErrNotAuthenticated)
	}

	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, musicsCommand, likesCommand, playlistsCommand, invitesCommand, profileCommand, libraryCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// plainNotifier prints workflow notifications to the runner's output.
type plainNotifier struct {
	runner *Runner
}

func (n *plainNotifier) Success(msg string) { n.runner.writePlain("✓ %s\n", msg) }
func (n *plainNotifier) Error(msg string)   { n.runner.writePlain("✗ %s\n", msg) }
