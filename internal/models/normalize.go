package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const DefaultDeliveryTime = "08:00"

var (
	timePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	datePattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)
)

// NormalizeDeliveryTime extracts the first H:MM found in s and zero-pads the
// hour. Spreadsheet backends tend to hand back full timestamps for time cells,
// so "1899-12-30T08:30:00.000Z" becomes "08:30".
func NormalizeDeliveryTime(s string) string {
	if t, ok := ParseDeliveryTime(s); ok {
		return t
	}
	return DefaultDeliveryTime
}

// ParseDeliveryTime is the strict form of NormalizeDeliveryTime: it reports
// false instead of falling back to the default.
func ParseDeliveryTime(s string) (string, bool) {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	h, err := strconv.Atoi(m[1])
	if err != nil || h > 23 {
		return "", false
	}
	if mm, _ := strconv.Atoi(m[2]); mm > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%s", h, m[2]), true
}

// NormalizeDate trims a time suffix and pads month/day. Returns "" when s does
// not start with a Y-M-D date.
func NormalizeDate(s string) string {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%s-%02d-%02d", m[1], month, day)
}

// NormalizeSnapshot cleans up the representation quirks of a fetched snapshot.
// Every order in it is marked as persisted.
func NormalizeSnapshot(s Snapshot) Snapshot {
	out := Snapshot{
		Stores:   make([]Store, 0, len(s.Stores)),
		Products: append([]Product{}, s.Products...),
		Orders:   make([]Order, 0, len(s.Orders)),
	}
	for _, st := range s.Stores {
		out.Stores = append(out.Stores, st.Normalize())
	}
	for _, o := range s.Orders {
		if d := NormalizeDate(o.Date); d != "" {
			o.Date = d
		}
		o.DeliveryTime = NormalizeDeliveryTime(o.DeliveryTime)
		if o.Status == "" {
			o.Status = StatusPending
		}
		o.IsLocal = false
		out.Orders = append(out.Orders, o)
	}
	return out
}
