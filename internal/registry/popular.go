package registry

import (
	"sort"

	"github.com/roach88/evreg/internal/ev"
)

// ModelCount is the number of current vehicles of one make and model.
type ModelCount struct {
	Model string `json:"model"`
	Count int    `json:"count"`
}

// ModelCounts counts current vehicles by make and model, optionally limited to
// county (case-insensitive; empty means all counties). Results are ordered by
// count descending; equal counts keep first-encountered order.
func (r *Registry) ModelCounts(county string) []ModelCount {
	var key string
	if county != "" {
		key = ev.FoldKey(county)
	}

	index := make(map[string]int)
	var counts []ModelCount
	for _, v := range r.store.Vehicles() {
		if county != "" && ev.FoldKey(v.County) != key {
			continue
		}
		name := v.MakeAndModel()
		i, ok := index[name]
		if !ok {
			i = len(counts)
			index[name] = i
			counts = append(counts, ModelCount{Model: name})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// MostPopularModel returns the most common make and model among current
// vehicles, optionally limited to county. Ties go to the model encountered
// first.
//
// An unmatched county yields CountyNotFoundMessage(county) and an empty
// registry yields NoVehiclesMessage; neither is an error.
func (r *Registry) MostPopularModel(county string) string {
	counts := r.ModelCounts(county)
	if len(counts) == 0 {
		if county != "" {
			return CountyNotFoundMessage(county)
		}
		return NoVehiclesMessage
	}
	return counts[0].Model
}
