// Package planning holds the read-only views over the order book: which stores
// can take a delivery on a date, which candidate lines collide with existing
// orders, and how much has to be produced per day.
package planning

import "github.com/ting-32/noodle/internal/models"

// EligibleStores returns the stores open on date, keeping input order.
func EligibleStores(stores []models.Store, date string) []models.Store {
	out := make([]models.Store, 0, len(stores))
	for _, s := range stores {
		if s.IsClosedOn(date) {
			continue
		}
		out = append(out, s)
	}
	return out
}
