package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ting-32/noodle/internal/models"
)

// Client talks to the remote store: one URL answering GET with the whole
// snapshot and POST with bulk write envelopes.
type Client struct {
	endpoint string
	http     *http.Client
	now      func() time.Time
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

type fetchResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	models.Snapshot
}

func (c *Client) Fetch(ctx context.Context) (models.Snapshot, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return models.Snapshot{}, errors.Wrap(err, "parse remote endpoint")
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.Snapshot{}, errors.Wrap(err, "build fetch request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Snapshot{}, errors.Wrap(err, "fetch remote snapshot")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Snapshot{}, fmt.Errorf("fetch remote snapshot: http status %d", resp.StatusCode)
	}

	var out fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Snapshot{}, errors.Wrap(err, "decode remote snapshot")
	}
	if out.Status == models.ResponseError {
		return models.Snapshot{}, fmt.Errorf("remote snapshot: %s", out.Message)
	}

	logrus.WithFields(logrus.Fields{
		"stores":   len(out.Stores),
		"products": len(out.Products),
		"orders":   len(out.Orders),
	}).Debug("remote snapshot fetched")
	return out.Snapshot, nil
}

func (c *Client) SaveOrders(ctx context.Context, orders []models.Order) error {
	return c.write(ctx, models.WriteRequest{Action: models.ActionSaveOrders, Orders: orders})
}

func (c *Client) SaveStores(ctx context.Context, stores []models.Store) error {
	return c.write(ctx, models.WriteRequest{Action: models.ActionSaveStores, Stores: stores})
}

func (c *Client) SaveProducts(ctx context.Context, products []models.Product) error {
	return c.write(ctx, models.WriteRequest{Action: models.ActionSaveProducts, Products: products})
}

func (c *Client) write(ctx context.Context, wr models.WriteRequest) error {
	body, err := json.Marshal(wr)
	if err != nil {
		return errors.Wrapf(err, "encode %s request", wr.Action)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "build %s request", wr.Action)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s", wr.Action)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.Wrapf(err, "read %s response", wr.Action)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: http status %d", wr.Action, resp.StatusCode)
	}

	var out models.WriteResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return errors.Wrapf(err, "decode %s response", wr.Action)
	}
	if out.Status != models.ResponseOK {
		return fmt.Errorf("%s rejected: %s", wr.Action, out.Message)
	}
	return nil
}
