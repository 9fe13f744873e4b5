package models

import (
	"sort"
)

type Product struct {
	ItemName string `json:"itemName" validate:"required" gorm:"primary_key"`
	Unit     string `json:"unit"`
}

// StoreDefaultItem is a template line used to pre-populate new orders for a store.
type StoreDefaultItem struct {
	ItemName string `json:"itemName" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type Store struct {
	StoreName    string             `json:"storeName"              validate:"required"`
	Phone        string             `json:"phone"`
	HolidayDates []string           `json:"holidayDates"           validate:"dive,datetime=2006-01-02"`
	DeliveryTime string             `json:"deliveryTime"           validate:"omitempty,datetime=15:04"`
	DefaultItems []StoreDefaultItem `json:"defaultItems,omitempty" validate:"dive"`
}

// IsClosedOn reports whether date is one of the store's holiday dates.
func (s Store) IsClosedOn(date string) bool {
	for _, d := range s.HolidayDates {
		if d == date {
			return true
		}
	}
	return false
}

// Normalize returns a copy with a sorted, deduplicated holiday set and a
// padded delivery time.
func (s Store) Normalize() Store {
	seen := make(map[string]struct{}, len(s.HolidayDates))
	dates := make([]string, 0, len(s.HolidayDates))
	for _, d := range s.HolidayDates {
		d = NormalizeDate(d)
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := s
	out.HolidayDates = dates
	out.DeliveryTime = NormalizeDeliveryTime(s.DeliveryTime)
	out.DefaultItems = append([]StoreDefaultItem(nil), s.DefaultItems...)
	return out
}

// ToggleHoliday adds date to the holiday set, or removes it when present.
func (s Store) ToggleHoliday(date string) Store {
	out := s.Normalize()
	date = NormalizeDate(date)
	if date == "" {
		return out
	}
	if out.IsClosedOn(date) {
		kept := out.HolidayDates[:0:0]
		for _, d := range out.HolidayDates {
			if d != date {
				kept = append(kept, d)
			}
		}
		out.HolidayDates = kept
		return out
	}
	out.HolidayDates = append(out.HolidayDates, date)
	sort.Strings(out.HolidayDates)
	return out
}
