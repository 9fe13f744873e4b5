package planning

import (
	"sort"

	"github.com/ting-32/noodle/internal/models"
)

// DaySchedule lists the deliveries of one date by delivery time.
type DaySchedule struct {
	Date   string         `json:"date"`
	Orders []models.Order `json:"orders"`
	Staged int            `json:"staged"`
}

// Schedule groups orders per date (ascending). Within a day orders are sorted
// by delivery time, then store name; the input order breaks remaining ties.
func Schedule(orders []models.Order) []DaySchedule {
	byDate := make(map[string][]models.Order)
	for _, o := range orders {
		byDate[o.Date] = append(byDate[o.Date], o)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DaySchedule, 0, len(dates))
	for _, d := range dates {
		day := byDate[d]
		sort.SliceStable(day, func(i, j int) bool {
			if day[i].DeliveryTime != day[j].DeliveryTime {
				return day[i].DeliveryTime < day[j].DeliveryTime
			}
			return day[i].StoreName < day[j].StoreName
		})
		staged := 0
		for _, o := range day {
			if o.IsLocal {
				staged++
			}
		}
		out = append(out, DaySchedule{Date: d, Orders: day, Staged: staged})
	}
	return out
}
