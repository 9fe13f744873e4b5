package postgres

import (
	"encoding/json"
	"time"

	"github.com/ting-32/noodle/internal/models"
)

type orderRecord struct {
	ID           string `gorm:"primary_key;type:varchar(64)"`
	Seq          int64  `gorm:"index"`
	Date         string `gorm:"type:varchar(10);index"`
	DeliveryTime string `gorm:"type:varchar(5)"`
	StoreName    string `gorm:"index"`
	ItemName     string
	Quantity     int
	Status       string `gorm:"type:varchar(16)"`
	CreatedAt    *time.Time
}

func (orderRecord) TableName() string { return "orders" }

func newOrderRecord(o models.Order, seq int64) orderRecord {
	return orderRecord{
		ID:           o.ID,
		Seq:          seq,
		Date:         o.Date,
		DeliveryTime: o.DeliveryTime,
		StoreName:    o.StoreName,
		ItemName:     o.ItemName,
		Quantity:     o.Quantity,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
	}
}

func (r orderRecord) model() models.Order {
	return models.Order{
		ID:           r.ID,
		Date:         r.Date,
		DeliveryTime: r.DeliveryTime,
		StoreName:    r.StoreName,
		ItemName:     r.ItemName,
		Quantity:     r.Quantity,
		Status:       models.Status(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

// storeRecord keeps holidays and default items as JSON text columns.
type storeRecord struct {
	StoreName    string `gorm:"primary_key"`
	Position     int
	Phone        string
	HolidayDates string `gorm:"type:text"`
	DeliveryTime string `gorm:"type:varchar(5)"`
	DefaultItems string `gorm:"type:text"`
}

func (storeRecord) TableName() string { return "stores" }

func newStoreRecord(s models.Store, pos int) (storeRecord, error) {
	holidays, err := json.Marshal(nonNil(s.HolidayDates))
	if err != nil {
		return storeRecord{}, err
	}
	defaults, err := json.Marshal(nonNil(s.DefaultItems))
	if err != nil {
		return storeRecord{}, err
	}
	return storeRecord{
		StoreName:    s.StoreName,
		Position:     pos,
		Phone:        s.Phone,
		HolidayDates: string(holidays),
		DeliveryTime: s.DeliveryTime,
		DefaultItems: string(defaults),
	}, nil
}

func (r storeRecord) model() (models.Store, error) {
	s := models.Store{
		StoreName:    r.StoreName,
		Phone:        r.Phone,
		DeliveryTime: r.DeliveryTime,
	}
	if r.HolidayDates != "" {
		if err := json.Unmarshal([]byte(r.HolidayDates), &s.HolidayDates); err != nil {
			return models.Store{}, err
		}
	}
	if r.DefaultItems != "" {
		if err := json.Unmarshal([]byte(r.DefaultItems), &s.DefaultItems); err != nil {
			return models.Store{}, err
		}
	}
	if s.HolidayDates == nil {
		s.HolidayDates = []string{}
	}
	return s, nil
}

type productRecord struct {
	ItemName string `gorm:"primary_key"`
	Position int
	Unit     string
}

func (productRecord) TableName() string { return "products" }

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
