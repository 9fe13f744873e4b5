package models

type Action string

const (
	ActionSaveOrders   Action = "saveOrders"
	ActionSaveStores   Action = "saveStores"
	ActionSaveProducts Action = "saveProducts"
)

const (
	ResponseOK    = "ok"
	ResponseError = "error"
)

// Snapshot is the full object graph returned by the remote store on fetch.
type Snapshot struct {
	Stores   []Store   `json:"stores"`
	Products []Product `json:"products"`
	Orders   []Order   `json:"orders"`
}

// WriteRequest is a bulk save/replace envelope accepted by the remote store.
type WriteRequest struct {
	Action   Action    `json:"action"             validate:"oneof=saveOrders saveStores saveProducts"`
	Orders   []Order   `json:"orders,omitempty"   validate:"dive"`
	Stores   []Store   `json:"stores,omitempty"   validate:"dive"`
	Products []Product `json:"products,omitempty" validate:"dive"`
}

type WriteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
