package commands

import (
	"encoding/json"
	"time"

	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/model/servicerequest"
	"orderhub/internal/core/ports"
)

// orderEventPayload is the wire shape of an order carried on the realtime
// bus and into audit snapshots. Consumer views apply these last-write-wins
// per order id.
type orderEventPayload struct {
	ID          string    `json:"id"`
	Number      int64     `json:"order_number"`
	Status      string    `json:"status"`
	OrderType   string    `json:"order_type"`
	TableNumber *int      `json:"table_number,omitempty"`
	LocationID  *string   `json:"location_id,omitempty"`
	Subtotal    string    `json:"subtotal"`
	Tax         string    `json:"tax"`
	Total       string    `json:"total"`
	Modified    bool      `json:"modified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// orderSnapshot renders an order for audit entries and event payloads.
func orderSnapshot(o *order.Order) json.RawMessage {
	var locationID *string
	if o.LocationID() != nil {
		s := o.LocationID().String()
		locationID = &s
	}

	totals := o.Totals()
	payload := orderEventPayload{
		ID:          o.ID().String(),
		Number:      o.Number(),
		Status:      o.Status().String(),
		OrderType:   string(o.Type()),
		TableNumber: o.TableNumber(),
		LocationID:  locationID,
		Subtotal:    totals.Subtotal.String(),
		Tax:         totals.Tax.String(),
		Total:       totals.Total.String(),
		Modified:    o.IsModified(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}

	raw, _ := json.Marshal(payload)
	return raw
}

// newOrderEvent builds the bus envelope for a durable order mutation.
func newOrderEvent(o *order.Order, action string) ports.Event {
	return ports.Event{
		Entity:           ports.EntityOrder,
		Action:           action,
		Payload:          orderSnapshot(o),
		LocationID:       o.LocationID(),
		TableNumber:      o.TableNumber(),
		VerificationCode: o.VerificationCode(),
	}
}

type requestEventPayload struct {
	ID          string     `json:"id"`
	TableNumber int        `json:"table_number"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// requestSnapshot renders a service request for audit entries and event payloads.
func requestSnapshot(r *servicerequest.ServiceRequest) json.RawMessage {
	payload := requestEventPayload{
		ID:          r.ID().String(),
		TableNumber: r.TableNumber(),
		Type:        string(r.Type()),
		Status:      string(r.Status()),
		CreatedAt:   r.CreatedAt(),
		ResolvedAt:  r.ResolvedAt(),
	}

	raw, _ := json.Marshal(payload)
	return raw
}

// newRequestEvent builds the bus envelope for a durable service request mutation.
// Service requests are staff-facing; they carry no verification code and fan
// out to global subscribers only.
func newRequestEvent(r *servicerequest.ServiceRequest, action string) ports.Event {
	return ports.Event{
		Entity:  ports.EntityServiceRequest,
		Action:  action,
		Payload: requestSnapshot(r),
	}
}
