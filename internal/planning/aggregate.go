package planning

import (
	"sort"

	"github.com/ting-32/noodle/internal/models"
)

// Summary maps a delivery date to the total pending quantity per item.
type Summary map[string]map[string]int

// Aggregate sums pending quantities per (date, item). Completed orders are
// left out; staged orders count like persisted ones.
func Aggregate(orders []models.Order) Summary {
	out := make(Summary)
	for _, o := range orders {
		if !o.IsPending() {
			continue
		}
		day, ok := out[o.Date]
		if !ok {
			day = make(map[string]int)
			out[o.Date] = day
		}
		day[o.ItemName] += o.Quantity
	}
	return out
}

type PlanLine struct {
	ItemName string `json:"itemName"`
	Unit     string `json:"unit,omitempty"`
	Quantity int    `json:"quantity"`
}

type DayPlan struct {
	Date  string     `json:"date"`
	Lines []PlanLine `json:"lines"`
}

// Plan orders a summary for display: dates ascending, items in catalog order.
// Items missing from the catalog still show up, after the catalog ones, by name.
func Plan(s Summary, products []models.Product) []DayPlan {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	rank := make(map[string]int, len(products))
	units := make(map[string]string, len(products))
	for i, p := range products {
		if _, dup := rank[p.ItemName]; !dup {
			rank[p.ItemName] = i
			units[p.ItemName] = p.Unit
		}
	}

	plans := make([]DayPlan, 0, len(dates))
	for _, d := range dates {
		items := make([]string, 0, len(s[d]))
		for item := range s[d] {
			items = append(items, item)
		}
		sort.Slice(items, func(i, j int) bool {
			ri, iok := rank[items[i]]
			rj, jok := rank[items[j]]
			switch {
			case iok && jok:
				return ri < rj
			case iok != jok:
				return iok
			default:
				return items[i] < items[j]
			}
		})

		lines := make([]PlanLine, 0, len(items))
		for _, item := range items {
			lines = append(lines, PlanLine{ItemName: item, Unit: units[item], Quantity: s[d][item]})
		}
		plans = append(plans, DayPlan{Date: d, Lines: lines})
	}
	return plans
}
