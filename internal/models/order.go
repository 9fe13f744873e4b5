package models

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

type Order struct {
	ID           string     `json:"id,omitempty"      gorm:"primary_key;type:varchar(64)"`
	Date         string     `json:"date"              validate:"required,datetime=2006-01-02" gorm:"type:varchar(10);index"`
	DeliveryTime string     `json:"deliveryTime"      validate:"required,datetime=15:04" gorm:"type:varchar(5)"`
	StoreName    string     `json:"storeName"         validate:"required" gorm:"index"`
	ItemName     string     `json:"itemName"          validate:"required"`
	Quantity     int        `json:"quantity"          validate:"gt=0"`
	Status       Status     `json:"status"            validate:"oneof=pending completed" gorm:"type:varchar(16)"`
	IsLocal      bool       `json:"isLocal,omitempty" gorm:"-"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// OrderKey is the natural identity used for duplicate detection.
type OrderKey struct {
	Date      string
	StoreName string
	ItemName  string
}

func (o Order) Key() OrderKey {
	return OrderKey{Date: o.Date, StoreName: o.StoreName, ItemName: o.ItemName}
}

func (o Order) IsPending() bool {
	return o.Status == StatusPending
}
