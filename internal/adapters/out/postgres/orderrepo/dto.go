// Package orderrepo persists order aggregates. It implements the repository
// pattern for the order domain aggregate, mapping between the aggregate (with
// its item snapshots and note history) and the orders/order_items tables.
package orderrepo

import (
	"encoding/json"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order aggregate.
// The human-facing order number is a bigserial assigned by the database on
// insert; notes are stored as a JSONB document because they are an
// append-only display history, never queried by field.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber      int64      `gorm:"autoIncrement;uniqueIndex"`
	Status           int        `gorm:"index"`
	OrderType        string     `gorm:"type:varchar(16)"`
	PaymentMethod    string     `gorm:"type:varchar(16)"`
	TableNumber      *int       `gorm:"index"`
	LocationID       *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName     string
	CustomerPhone    string
	Subtotal         string `gorm:"type:decimal(12,2)"`
	Tax              string `gorm:"type:decimal(12,2)"`
	Total            string `gorm:"type:decimal(12,2)"`
	VerificationCode string `gorm:"type:varchar(64)"`
	Notes            []byte `gorm:"type:jsonb"`
	Modified         bool
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time

	Items []ItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the database row for one order line snapshot.
// Rows are written once at checkout and never updated.
type ItemDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID          uuid.UUID `gorm:"type:uuid"`
	Name                string
	Quantity            int
	UnitPrice           string `gorm:"type:decimal(12,2)"`
	Modifiers           []byte `gorm:"type:jsonb"`
	SpecialInstructions string
	LineTotal           string `gorm:"type:decimal(12,2)"`
}

// TableName specifies the database table name for order line rows.
func (ItemDTO) TableName() string {
	return "order_items"
}

// noteDoc is the JSONB shape of one note history entry.
type noteDoc struct {
	Status string    `json:"status"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// modifierDoc is the JSONB shape of one line modifier snapshot.
type modifierDoc struct {
	Name            string `json:"name"`
	LocalizedName   string `json:"localized_name,omitempty"`
	PriceAdjustment string `json:"price_adjustment"`
}

func notesToJSON(notes []order.Note) ([]byte, error) {
	if len(notes) == 0 {
		return []byte("[]"), nil
	}
	docs := make([]noteDoc, 0, len(notes))
	for _, n := range notes {
		docs = append(docs, noteDoc{Status: n.Status.String(), Text: n.Text, At: n.At})
	}
	return json.Marshal(docs)
}

func notesFromJSON(raw []byte) ([]order.Note, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var docs []noteDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	notes := make([]order.Note, 0, len(docs))
	for _, d := range docs {
		status, err := order.ParseStatus(d.Status)
		if err != nil {
			return nil, err
		}
		notes = append(notes, order.Note{Status: status, Text: d.Text, At: d.At})
	}
	return notes, nil
}

func modifiersToJSON(modifiers []order.Modifier) ([]byte, error) {
	if len(modifiers) == 0 {
		return []byte("[]"), nil
	}
	docs := make([]modifierDoc, 0, len(modifiers))
	for _, m := range modifiers {
		docs = append(docs, modifierDoc{
			Name:            m.Name,
			LocalizedName:   m.LocalizedName,
			PriceAdjustment: m.PriceAdjustment.String(),
		})
	}
	return json.Marshal(docs)
}

func modifiersFromJSON(raw []byte) ([]order.Modifier, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var docs []modifierDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	modifiers := make([]order.Modifier, 0, len(docs))
	for _, d := range docs {
		adjustment, err := kernel.NewMoneyFromString(d.PriceAdjustment)
		if err != nil {
			return nil, err
		}
		modifiers = append(modifiers, order.Modifier{
			Name:            d.Name,
			LocalizedName:   d.LocalizedName,
			PriceAdjustment: adjustment,
		})
	}
	return modifiers, nil
}

// fromDomain converts an order aggregate to its database rows.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	notes, err := notesToJSON(aggregate.Notes())
	if err != nil {
		return OrderDTO{}, err
	}

	var locationID *uuid.UUID
	if id := aggregate.LocationID(); id != nil {
		raw := id.Bytes()
		locationID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		dto, itemErr := itemFromDomain(aggregate.ID(), item)
		if itemErr != nil {
			return OrderDTO{}, itemErr
		}
		items = append(items, dto)
	}

	totals := aggregate.Totals()
	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		OrderNumber:      aggregate.Number(),
		Status:           int(aggregate.Status()),
		OrderType:        string(aggregate.Type()),
		PaymentMethod:    string(aggregate.PaymentMethod()),
		TableNumber:      aggregate.TableNumber(),
		LocationID:       locationID,
		CustomerName:     aggregate.Customer().Name,
		CustomerPhone:    aggregate.Customer().Phone,
		Subtotal:         totals.Subtotal.String(),
		Tax:              totals.Tax.String(),
		Total:            totals.Total.String(),
		VerificationCode: aggregate.VerificationCode(),
		Notes:            notes,
		Modified:         aggregate.IsModified(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
		Items:            items,
	}, nil
}

func itemFromDomain(orderID kernel.UUID, item order.Item) (ItemDTO, error) {
	modifiers, err := modifiersToJSON(item.Modifiers())
	if err != nil {
		return ItemDTO{}, err
	}

	return ItemDTO{
		ID:                  item.ID().Bytes(),
		OrderID:             orderID.Bytes(),
		MenuItemID:          item.MenuItemID().Bytes(),
		Name:                item.Name(),
		Quantity:            item.Quantity(),
		UnitPrice:           item.UnitPrice().String(),
		Modifiers:           modifiers,
		SpecialInstructions: item.SpecialInstructions(),
		LineTotal:           item.LineTotal().String(),
	}, nil
}

// toDomain converts database rows back into an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var locationID *kernel.UUID
	if dto.LocationID != nil {
		lID, locErr := kernel.UUIDFromBytes((*dto.LocationID)[:])
		if locErr != nil {
			return nil, locErr
		}
		locationID = &lID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	notes, err := notesFromJSON(dto.Notes)
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoneyFromString(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoneyFromString(dto.Tax)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoneyFromString(dto.Total)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		order.Status(dto.Status),
		order.OrderType(dto.OrderType),
		order.PaymentMethod(dto.PaymentMethod),
		dto.TableNumber,
		locationID,
		order.Customer{Name: dto.CustomerName, Phone: dto.CustomerPhone},
		items,
		order.Totals{Subtotal: subtotal, Tax: tax, Total: total},
		dto.VerificationCode,
		notes,
		dto.Modified,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Item{}, err
	}
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.Item{}, err
	}
	unitPrice, err := kernel.NewMoneyFromString(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}
	lineTotal, err := kernel.NewMoneyFromString(dto.LineTotal)
	if err != nil {
		return order.Item{}, err
	}
	modifiers, err := modifiersFromJSON(dto.Modifiers)
	if err != nil {
		return order.Item{}, err
	}

	return order.RestoreItem(
		id,
		menuItemID,
		dto.Name,
		dto.Quantity,
		unitPrice,
		modifiers,
		dto.SpecialInstructions,
		lineTotal,
	)
}
