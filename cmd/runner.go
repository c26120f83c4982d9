package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sioneuhlig/eventscout/internal/normalize"
	"github.com/sioneuhlig/eventscout/internal/repositories"
	"github.com/sioneuhlig/eventscout/internal/services"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/sioneuhlig/eventscout/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	gateway     services.EventGateway
	geocoder    services.Geocoder
	api         *services.APIService
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	normalizer  *normalize.Normalizer
	recommender *tasks.Recommender
	now         func() time.Time

	store     repositories.SlotStore
	favorites *repositories.FavoritesRepository
	history   *repositories.HistoryRepository
	shares    *repositories.ShareRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Gateway     services.EventGateway
	Geocoder    services.Geocoder
	API         *services.APIService
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
	Store       repositories.SlotStore // opened from Config.Database on first use when nil
	Normalizer  *normalize.Normalizer
	Recommender *tasks.Recommender
	Now         func() time.Time
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
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Normalizer == nil {
		opts.Normalizer = normalize.New(normalize.Opts{
			Now:             opts.Now,
			DefaultLocation: opts.Config.Search.Location,
			FallbackRegion:  opts.Config.Search.FallbackRegion,
		})
	}
	if opts.Recommender == nil {
		opts.Recommender = tasks.NewRecommender(nil)
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		gateway:     opts.Gateway,
		geocoder:    opts.Geocoder,
		api:         opts.API,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		normalizer:  opts.Normalizer,
		recommender: opts.Recommender,
		now:         opts.Now,
		store:       opts.Store,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, searchCommand, eventCommand, favoritesCommand, historyCommand, prefsCommand,
		recommendCommand, shareCommand, geocodeCommand, serveCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the logger, e.g. to keep log lines out of the TUI.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the slot store if one was opened.
func (r *Runner) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// openStore lazily opens storage and builds the repositories on top of it.
func (r *Runner) openStore() error {
	if r.favorites != nil {
		return nil
	}
	if r.store == nil {
		store, err := repositories.OpenStore(r.config.Database, r.logger)
		if err != nil {
			return err
		}
		r.store = store
	}

	r.favorites = repositories.NewFavoritesRepository(r.store, r.logger)
	r.history = repositories.NewHistoryRepository(r.store, repositories.HistoryOpts{
		SearchCap: r.config.History.SearchCap,
		ViewedCap: r.config.History.ViewedCap,
		Logger:    r.logger,
		Now:       r.now,
	})
	r.shares = repositories.NewShareRepository(r.store, r.logger)
	return nil
}

// engine builds a discovery engine; with record unset searches are not written to history.
func (r *Runner) engine(record bool) (*tasks.DiscoveryEngine, error) {
	if r.gateway == nil {
		return nil, fmt.Errorf("%w: event gateway not initialized", shared.ErrServiceUnavailable)
	}
	if err := r.openStore(); err != nil {
		return nil, err
	}

	opts := tasks.EngineOpts{
		Gateway:    r.gateway,
		Normalizer: r.normalizer,
		Favorites:  r.favorites,
		Logger:     r.logger,
	}
	if record {
		opts.History = r.history
	}
	return tasks.NewDiscoveryEngine(opts), nil
}

// syncFavoriteCategories recomputes the favorite category ranking after favorites change.
func (r *Runner) syncFavoriteCategories() {
	favs, err := r.favorites.List()
	if err == nil {
		_, err = r.history.UpdateFavoriteCategories(favs)
	}
	if err != nil {
		r.logger.Warn("failed to update favorite categories", "error", err)
	}
}

// logProgress drains progress updates into debug logs until the channel closes.
func (r *Runner) logProgress(progress <-chan tasks.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase.String(), "step", update.Step, "total", update.Total)
		}
	}()
	return done
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
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

// withTimeout applies the configured upstream timeout, if any.
func (r *Runner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if secs := r.config.Credentials.Ticketmaster.TimeoutSeconds; secs > 0 {
		return context.WithTimeout(ctx, time.Duration(secs)*time.Second)
	}
	return context.WithCancel(ctx)
}
