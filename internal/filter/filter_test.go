package filter

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

func sample() []models.Event {
	return []models.Event{
		{ID: "1", Category: models.CategoryMusic, Date: "2024-05-03", Price: "$20.00", Distance: 10, Attendees: 300},
		{ID: "2", Category: models.CategorySports, Date: "2024-05-01", Price: "Free", Distance: 60, Attendees: 120},
		{ID: "3", Category: models.CategoryMusic, Date: "2024-05-02", Price: "Check website", Distance: 5, Attendees: 300},
		{ID: "4", Category: models.CategoryArts, Date: "2024-04-20", Price: "$5.00 - $9.00", Distance: 25, Attendees: 80},
		{ID: "5", Category: models.CategoryFood, Date: "2024-05-02", Price: "", Distance: 90, Attendees: 500},
	}
}

func ids(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestApply(t *testing.T) {
	tt := []struct {
		name     string
		criteria models.FilterCriteria
		want     []string
	}{
		{name: "No Criteria Keeps Order", criteria: models.FilterCriteria{}, want: []string{"1", "2", "3", "4", "5"}},
		{name: "All Bypasses", criteria: models.FilterCriteria{Category: "all", Price: "all"}, want: []string{"1", "2", "3", "4", "5"}},
		{name: "Category", criteria: models.FilterCriteria{Category: "music"}, want: []string{"1", "3"}},
		{name: "Free Includes Check Website", criteria: models.FilterCriteria{Price: "free"}, want: []string{"2", "3"}},
		{name: "Paid Is Complement", criteria: models.FilterCriteria{Price: "paid"}, want: []string{"1", "4", "5"}},
		{name: "Max Distance Inclusive", criteria: models.FilterCriteria{MaxDistance: 25}, want: []string{"1", "3", "4"}},
		{name: "Conjunctive", criteria: models.FilterCriteria{Category: "music", Price: "paid"}, want: []string{"1"}},
		{name: "Sort Date", criteria: models.FilterCriteria{Sort: "date"}, want: []string{"4", "2", "3", "5", "1"}},
		{name: "Sort Popularity Stable", criteria: models.FilterCriteria{Sort: "popularity"}, want: []string{"5", "1", "3", "2", "4"}},
		{name: "Sort Distance", criteria: models.FilterCriteria{Sort: "distance"}, want: []string{"3", "1", "4", "2", "5"}},
		{name: "No Match", criteria: models.FilterCriteria{Category: "community"}, want: []string{}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := ids(Apply(sample(), tc.criteria)); !slices.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("Input Is Not Modified", func(t *testing.T) {
		in := sample()
		Apply(in, models.FilterCriteria{Sort: "distance", Category: "music"})
		if got := ids(in); !slices.Equal(got, []string{"1", "2", "3", "4", "5"}) {
			t.Errorf("input reordered: %v", got)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		c := models.FilterCriteria{Price: "paid", Sort: "date"}
		once := Apply(sample(), c)
		twice := Apply(once, c)
		if !slices.Equal(ids(once), ids(twice)) {
			t.Errorf("expected idempotence, got %v then %v", ids(once), ids(twice))
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		if got := Apply(nil, models.FilterCriteria{Sort: "date"}); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})
}

func TestParseCriteria(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		c, err := ParseCriteria("Music", "FREE", "50", "distance")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := models.FilterCriteria{Category: "music", Price: "free", MaxDistance: 50, Sort: "distance"}
		if c != want {
			t.Errorf("got %+v, want %+v", c, want)
		}
	})

	t.Run("All Distance", func(t *testing.T) {
		c, err := ParseCriteria("all", "all", "all", "")
		if err != nil || c.MaxDistance != 0 {
			t.Errorf("expected disabled distance, got %+v %v", c, err)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		tt := [][4]string{
			{"karaoke", "", "", ""},
			{"", "cheap", "", ""},
			{"", "", "far", ""},
			{"", "", "-3", ""},
			{"", "", "", "alphabetical"},
		}
		for _, in := range tt {
			if _, err := ParseCriteria(in[0], in[1], in[2], in[3]); !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("ParseCriteria(%v) expected ErrInvalidFlag, got %v", in, err)
			}
		}
	})
}

func TestTabs(t *testing.T) {
	now := time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC)

	if got := ids(Upcoming(sample(), now)); !slices.Equal(got, []string{"1", "3", "5"}) {
		t.Errorf("upcoming got %v", got)
	}
	if got := ids(Past(sample(), now)); !slices.Equal(got, []string{"2", "4"}) {
		t.Errorf("past got %v", got)
	}
	if got := Tab(sample(), "all", now); len(got) != 5 {
		t.Errorf("expected all events, got %d", len(got))
	}
	if got := ids(Tab(sample(), "Past", now)); !slices.Equal(got, []string{"2", "4"}) {
		t.Errorf("tab past got %v", got)
	}
}

func TestStats(t *testing.T) {
	s := Stats(sample())
	if s.Total != 5 {
		t.Errorf("expected 5, got %d", s.Total)
	}
	if s.ByCategory[models.CategoryMusic] != 2 || s.ByCategory[models.CategoryFood] != 1 {
		t.Errorf("unexpected categories %v", s.ByCategory)
	}
	if s.Free != 2 || s.Paid != 3 {
		t.Errorf("expected 2 free and 3 paid, got %d %d", s.Free, s.Paid)
	}

	empty := Stats(nil)
	if empty.Total != 0 || len(empty.ByCategory) != 0 {
		t.Errorf("unexpected empty stats %+v", empty)
	}
}
