package models

// Filter values that disable a criterion.
const FilterAll = "all"

// Sort keys understood by the filter engine.
const (
	SortDate       = "date"
	SortPopularity = "popularity"
	SortDistance   = "distance"
)

// FilterCriteria are conjunctive filter and sort selections.
//
// Empty strings and "all" disable a criterion; MaxDistance 0 means no distance limit.
type FilterCriteria struct {
	Category    string `json:"category" validate:"omitempty,oneof=all music food arts sports community"`
	Price       string `json:"price" validate:"omitempty,oneof=all free paid"`
	MaxDistance int    `json:"maxDistance" validate:"gte=0"`
	Sort        string `json:"sort" validate:"omitempty,oneof=date popularity distance"`
}
