package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"golang.org/x/time/rate"
)

// RefreshOpts contains configuration for favorite refreshes.
type RefreshOpts struct {
	NumWorkers int     // Concurrent workers (default: 5, max: 10)
	RateLimit  float64 // Requests per second (default: 5)
}

// RefreshResult summarises a favorites refresh.
type RefreshResult struct {
	Total     int               `json:"total"`
	Refreshed int               `json:"refreshed"`
	Failed    int               `json:"failed"`
	Errors    map[string]string `json:"errors,omitempty"`
	Events    []models.Event    `json:"events"`
}

type refreshJob struct {
	previous models.Event
}

type refreshOutcome struct {
	previous models.Event
	event    *models.Event
	err      error
}

// RefreshFavorites re-fetches every favorite and replaces its stored snapshot.
//
// Fetches run on a bounded worker pool paced by a token bucket. A failed fetch keeps the old
// snapshot and is reported in the result; only storage failures abort the refresh.
func (e *DiscoveryEngine) RefreshFavorites(ctx context.Context, progress chan<- ProgressUpdate, opts RefreshOpts) (*RefreshResult, error) {
	if e.gateway == nil {
		return nil, fmt.Errorf("%w: event gateway not initialized", shared.ErrServiceUnavailable)
	}
	if e.favorites == nil {
		return nil, fmt.Errorf("%w: favorites store not initialized", shared.ErrStorage)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	favorites, err := e.favorites.List()
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{
		Total:  len(favorites),
		Errors: make(map[string]string),
		Events: make([]models.Event, 0, len(favorites)),
	}
	if len(favorites) == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan refreshJob, len(favorites))
	outcomes := make(chan refreshOutcome, len(favorites))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.refreshWorker(ctx, &wg, limiter, jobs, outcomes)
	}

	e.sendProgress(progress, refreshStartUpdate(len(favorites)))
	for _, fav := range favorites {
		jobs <- refreshJob{previous: fav}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	completed := 0
	for out := range outcomes {
		completed++
		if out.err != nil {
			result.Failed++
			result.Errors[out.previous.ID] = out.err.Error()
			e.sendProgress(progress, refreshFailedUpdate(completed, len(favorites), out.previous.ID, out.err))
			continue
		}
		result.Refreshed++
		result.Events = append(result.Events, *out.event)
		e.sendProgress(progress, refreshedUpdate(completed, len(favorites), out.event.Title))
	}

	if len(result.Events) > 0 {
		if _, err := e.favorites.Replace(result.Events); err != nil {
			return result, fmt.Errorf("refresh completed but failed to store snapshots: %w", err)
		}
	}
	return result, nil
}

func (e *DiscoveryEngine) refreshWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan refreshJob,
	outcomes chan<- refreshOutcome,
) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			outcomes <- refreshOutcome{previous: job.previous, err: err}
			continue
		}

		u, err := e.gateway.GetEvent(ctx, job.previous.ID)
		if err != nil {
			outcomes <- refreshOutcome{previous: job.previous, err: err}
			continue
		}

		ev := e.normalizer.Refresh(*u, job.previous)
		outcomes <- refreshOutcome{previous: job.previous, event: &ev}
	}
}
