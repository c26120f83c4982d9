package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/services"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/sioneuhlig/eventscout/internal/testing/mocks"
)

func TestRefreshFavorites(t *testing.T) {
	stored := []models.Event{
		{ID: "f1", Title: "Old One", Category: models.CategoryMusic, Distance: 11, Attendees: 111},
		{ID: "f2", Title: "Old Two", Category: models.CategorySports, Distance: 22, Attendees: 222},
		{ID: "f3", Title: "Gone", Category: models.CategoryArts, Distance: 33, Attendees: 333},
	}

	t.Run("Partial Failure", func(t *testing.T) {
		one := mocks.UpstreamEvent("f1", "New One", "Music", "2024-07-01", 15, 15)
		two := mocks.UpstreamEvent("f2", "New Two", "Sports", "2024-07-02", 40, 90)
		gateway := &mocks.MockGateway{Events: map[string]*services.UpstreamEvent{"f1": &one, "f2": &two}}
		favs := &mockFavorites{events: stored}
		engine := NewDiscoveryEngine(EngineOpts{Gateway: gateway, Normalizer: testNormalizer(), Favorites: favs})

		progress := make(chan ProgressUpdate, 20)
		res, err := engine.RefreshFavorites(context.Background(), progress, RefreshOpts{NumWorkers: 2, RateLimit: 1000})
		close(progress)
		if err != nil {
			t.Fatalf("RefreshFavorites() error = %v", err)
		}

		if res.Total != 3 || res.Refreshed != 2 || res.Failed != 1 {
			t.Errorf("unexpected counts %+v", res)
		}
		if _, ok := res.Errors["f3"]; !ok {
			t.Errorf("expected f3 failure, got %v", res.Errors)
		}
		if len(favs.replaced) != 2 {
			t.Fatalf("expected 2 replaced snapshots, got %d", len(favs.replaced))
		}
		for _, e := range favs.replaced {
			switch e.ID {
			case "f1":
				if e.Title != "New One" || e.Distance != 11 || e.Attendees != 111 {
					t.Errorf("expected refreshed f1 with kept filler, got %+v", e)
				}
			case "f2":
				if e.Price != "$40.00 - $90.00" || e.Distance != 22 {
					t.Errorf("unexpected f2 %+v", e)
				}
			default:
				t.Errorf("unexpected replaced id %s", e.ID)
			}
		}

		count := 0
		for u := range progress {
			if u.Phase != RefreshFavorites {
				t.Errorf("unexpected phase %v", u.Phase)
			}
			count++
		}
		if count != 4 {
			t.Errorf("expected 4 progress updates, got %d", count)
		}
	})

	t.Run("Worker Pool Bounds", func(t *testing.T) {
		var inFlight, peak int32
		gateway := &mocks.MockGateway{GetFn: func(ctx context.Context, id string) (*services.UpstreamEvent, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			defer atomic.AddInt32(&inFlight, -1)
			u := mocks.UpstreamEvent(id, id, "Music", "2024-07-01", 1, 1)
			return &u, nil
		}}

		many := make([]models.Event, 30)
		for i := range many {
			many[i] = models.Event{ID: string(rune('A' + i)), Category: models.CategoryMusic}
		}
		engine := NewDiscoveryEngine(EngineOpts{Gateway: gateway, Favorites: &mockFavorites{events: many}})

		res, err := engine.RefreshFavorites(context.Background(), nil, RefreshOpts{NumWorkers: 50, RateLimit: 10000})
		if err != nil {
			t.Fatalf("RefreshFavorites() error = %v", err)
		}
		if res.Refreshed != 30 {
			t.Errorf("expected 30 refreshed, got %d", res.Refreshed)
		}
		if peak > 10 {
			t.Errorf("expected at most 10 concurrent fetches, saw %d", peak)
		}
	})

	t.Run("Canceled Context", func(t *testing.T) {
		engine := NewDiscoveryEngine(EngineOpts{Gateway: &mocks.MockGateway{}, Favorites: &mockFavorites{events: stored}})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := engine.RefreshFavorites(ctx, nil, RefreshOpts{NumWorkers: 1, RateLimit: 1})
		if err != nil {
			t.Fatalf("expected graceful cancellation, got %v", err)
		}
		if res.Failed != 3 || res.Refreshed != 0 {
			t.Errorf("expected all canceled, got %+v", res)
		}
	})

	t.Run("No Favorites", func(t *testing.T) {
		gateway := &mocks.MockGateway{}
		engine := NewDiscoveryEngine(EngineOpts{Gateway: gateway, Favorites: &mockFavorites{}})
		res, err := engine.RefreshFavorites(context.Background(), nil, RefreshOpts{})
		if err != nil || res.Total != 0 {
			t.Errorf("expected empty refresh, got %+v %v", res, err)
		}
		if len(gateway.Gets) != 0 {
			t.Error("expected no upstream calls")
		}
	})

	t.Run("Missing Dependencies", func(t *testing.T) {
		if _, err := NewDiscoveryEngine(EngineOpts{}).RefreshFavorites(context.Background(), nil, RefreshOpts{}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
		if _, err := NewDiscoveryEngine(EngineOpts{Gateway: &mocks.MockGateway{}}).RefreshFavorites(context.Background(), nil, RefreshOpts{}); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage, got %v", err)
		}
	})

	t.Run("List Error", func(t *testing.T) {
		engine := NewDiscoveryEngine(EngineOpts{Gateway: &mocks.MockGateway{}, Favorites: &mockFavorites{listErr: shared.ErrStorage}})
		if _, err := engine.RefreshFavorites(context.Background(), nil, RefreshOpts{}); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage, got %v", err)
		}
	})
}
