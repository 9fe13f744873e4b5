package planning

import "github.com/ting-32/noodle/internal/models"

// CandidateRow is one (item, quantity) line of an order being entered.
type CandidateRow struct {
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

// FindConflicts returns the rows whose (date, storeName, itemName) already
// exists in existing. Quantity and staged/persisted origin are ignored.
func FindConflicts(rows []CandidateRow, existing []models.Order, date, storeName string) []CandidateRow {
	taken := make(map[string]struct{})
	for _, o := range existing {
		if o.Date == date && o.StoreName == storeName {
			taken[o.ItemName] = struct{}{}
		}
	}

	var out []CandidateRow
	for _, r := range rows {
		if _, ok := taken[r.ItemName]; ok {
			out = append(out, r)
		}
	}
	return out
}
