package adminview

import (
	"math"

	"github.com/oaiiae/hackathon-signup/datastores"
)

const DefaultCapacity = 70

type Stats struct {
	Total            int
	Filtered         int
	Capacity         int
	OccupancyPercent int
	ByInterest       map[datastores.Interest]int
}

// Summarize computes the dashboard numbers for the whole collection and
// the currently filtered view.
func Summarize(all, filtered []*datastores.Registration, capacity int) Stats {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := Stats{
		Total:            len(all),
		Filtered:         len(filtered),
		Capacity:         capacity,
		OccupancyPercent: int(math.Round(float64(len(all)) / float64(capacity) * 100)), //nolint: mnd // percent
		ByInterest:       make(map[datastores.Interest]int),
	}
	for _, r := range all {
		s.ByInterest[r.Interest]++
	}
	return s
}
