package main

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ting-32/noodle/internal/models"
)

type seedFile struct {
	Products []seedProduct `yaml:"products"`
	Stores   []seedStore   `yaml:"stores"`
	Orders   []seedOrder   `yaml:"orders"`
}

type seedProduct struct {
	ItemName string `yaml:"itemName"`
	Unit     string `yaml:"unit"`
}

type seedDefault struct {
	ItemName string `yaml:"itemName"`
	Quantity int    `yaml:"quantity"`
}

type seedStore struct {
	StoreName    string        `yaml:"storeName"`
	Phone        string        `yaml:"phone"`
	HolidayDates []string      `yaml:"holidayDates"`
	DeliveryTime string        `yaml:"deliveryTime"`
	DefaultItems []seedDefault `yaml:"defaultItems"`
}

type seedOrder struct {
	Date         string `yaml:"date"`
	DeliveryTime string `yaml:"deliveryTime"`
	StoreName    string `yaml:"storeName"`
	ItemName     string `yaml:"itemName"`
	Quantity     int    `yaml:"quantity"`
	Status       string `yaml:"status"`
}

// parseSeed turns a YAML fixture into write envelopes: products, then stores,
// then orders. Empty sections produce no envelope.
func parseSeed(raw []byte) ([]models.WriteRequest, error) {
	var f seedFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode seed yaml")
	}

	var out []models.WriteRequest
	if len(f.Products) > 0 {
		req := models.WriteRequest{Action: models.ActionSaveProducts}
		for _, p := range f.Products {
			req.Products = append(req.Products, models.Product{ItemName: p.ItemName, Unit: p.Unit})
		}
		out = append(out, req)
	}
	if len(f.Stores) > 0 {
		req := models.WriteRequest{Action: models.ActionSaveStores}
		for _, s := range f.Stores {
			st := models.Store{
				StoreName:    s.StoreName,
				Phone:        s.Phone,
				HolidayDates: s.HolidayDates,
				DeliveryTime: s.DeliveryTime,
			}
			for _, d := range s.DefaultItems {
				st.DefaultItems = append(st.DefaultItems, models.StoreDefaultItem{ItemName: d.ItemName, Quantity: d.Quantity})
			}
			req.Stores = append(req.Stores, st.Normalize())
		}
		out = append(out, req)
	}
	if len(f.Orders) > 0 {
		req := models.WriteRequest{Action: models.ActionSaveOrders}
		for _, o := range f.Orders {
			status := models.Status(o.Status)
			if status == "" {
				status = models.StatusPending
			}
			req.Orders = append(req.Orders, models.Order{
				Date:         models.NormalizeDate(o.Date),
				DeliveryTime: models.NormalizeDeliveryTime(o.DeliveryTime),
				StoreName:    o.StoreName,
				ItemName:     o.ItemName,
				Quantity:     o.Quantity,
				Status:       status,
			})
		}
		out = append(out, req)
	}

	for _, req := range out {
		if err := models.Validate(req); err != nil {
			return nil, errors.Wrapf(err, "seed %s", req.Action)
		}
	}
	return out, nil
}
