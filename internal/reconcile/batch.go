package reconcile

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/planning"
)

// Quantity is the raw quantity typed into an order row. It accepts JSON numbers
// and numeric strings; Int coerces it.
type Quantity string

func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*q = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*q = Quantity(n.String())
	return nil
}

// Int returns the quantity as a positive integer, or false.
func (q Quantity) Int() (int, bool) {
	s := strings.TrimSpace(string(q))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, n > 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

type Row struct {
	ItemName string   `json:"itemName"`
	Quantity Quantity `json:"quantity"`
}

// Batch is one order entry: a store, a date and time, and its item rows.
type Batch struct {
	Date         string `json:"date"`
	DeliveryTime string `json:"deliveryTime"`
	StoreName    string `json:"storeName"`
	Rows         []Row  `json:"rows"`
}

// Prepared is a batch that passed validation.
type Prepared struct {
	Date         string
	DeliveryTime string
	StoreName    string
	Rows         []planning.CandidateRow
}

// Prepare validates b. Rows without an item name are blank template rows and
// are skipped; a named row with a quantity that is not a positive integer
// fails the whole batch.
func (b Batch) Prepare() (Prepared, error) {
	date := strings.TrimSpace(b.Date)
	store := strings.TrimSpace(b.StoreName)
	tm := strings.TrimSpace(b.DeliveryTime)
	if date == "" || store == "" || tm == "" {
		return Prepared{}, NewValidationError("date, store and delivery time are required")
	}

	p := Prepared{StoreName: store}
	if p.Date = models.NormalizeDate(date); p.Date == "" {
		return Prepared{}, NewValidationError("invalid date %q, want YYYY-MM-DD", date)
	}
	var ok bool
	if p.DeliveryTime, ok = models.ParseDeliveryTime(tm); !ok {
		return Prepared{}, NewValidationError("invalid delivery time %q, want HH:MM", tm)
	}

	for i, r := range b.Rows {
		item := strings.TrimSpace(r.ItemName)
		if item == "" {
			continue
		}
		qty, ok := r.Quantity.Int()
		if !ok {
			return Prepared{}, NewValidationError("row %d (%s): quantity %q must be a positive integer", i+1, item, string(r.Quantity))
		}
		p.Rows = append(p.Rows, planning.CandidateRow{ItemName: item, Quantity: qty})
	}
	if len(p.Rows) == 0 {
		return Prepared{}, NewValidationError("at least one item row with a positive quantity is required")
	}

	for _, o := range p.orders() {
		if err := models.Validate(o); err != nil {
			return Prepared{}, NewValidationError("%s", err.Error())
		}
	}
	return p, nil
}

func (p Prepared) orders() []models.Order {
	out := make([]models.Order, 0, len(p.Rows))
	for _, r := range p.Rows {
		out = append(out, models.Order{
			Date:         p.Date,
			DeliveryTime: p.DeliveryTime,
			StoreName:    p.StoreName,
			ItemName:     r.ItemName,
			Quantity:     r.Quantity,
			Status:       models.StatusPending,
			IsLocal:      true,
		})
	}
	return out
}
