package tasks

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/sioneuhlig/eventscout/internal/models"
)

// DefaultRecommendations is the number of events [Recommender.Recommend] returns when n <= 0.
const DefaultRecommendations = 6

// Signals are the user behaviours that feed recommendation scoring.
type Signals struct {
	FavoriteCategories []models.Category
	Viewed             []string
	Searches           []models.SearchEntry
}

// Scored is an event with its recommendation score.
type Scored struct {
	models.Event
	Score float64 `json:"score"`
}

// Recommender ranks events against user signals.
//
// Scores are +5 for a favorite category, +3 when already viewed, +2 for each past search
// in the same category, plus a jitter in [0,2) drawn from the injected source.
type Recommender struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRecommender creates a recommender. A nil source is seeded from the clock.
func NewRecommender(src rand.Source) *Recommender {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
	return &Recommender{rng: rand.New(src)}
}

// Recommend returns the top n events by descending score. Equal scores keep input order.
func (r *Recommender) Recommend(events []models.Event, s Signals, n int) []Scored {
	if n <= 0 {
		n = DefaultRecommendations
	}

	viewed := make(map[string]bool, len(s.Viewed))
	for _, id := range s.Viewed {
		viewed[id] = true
	}

	r.mu.Lock()
	scored := make([]Scored, 0, len(events))
	for _, e := range events {
		score := 0.0
		if slices.Contains(s.FavoriteCategories, e.Category) {
			score += 5
		}
		if viewed[e.ID] {
			score += 3
		}
		for _, search := range s.Searches {
			if search.Category == string(e.Category) {
				score += 2
			}
		}
		score += r.rng.Float64() * 2
		scored = append(scored, Scored{Event: e, Score: score})
	}
	r.mu.Unlock()

	slices.SortStableFunc(scored, func(a, b Scored) int { return cmp.Compare(b.Score, a.Score) })
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}
