package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its item snapshots in one write and assigns the
// database-generated order number back onto the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err = aggregate.SetNumber(dto.OrderNumber); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus persists a status change with a compare-and-swap on the status
// the caller observed. If another writer moved the order in the meantime the
// WHERE clause matches no row and the update fails with order.ErrConflict.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, observedStatus order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	notes, err := notesToJSON(aggregate.Notes())
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(observedStatus)).
		Updates(map[string]any{
			"status":     int(aggregate.Status()),
			"notes":      notes,
			"modified":   aggregate.IsModified(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: order %s no longer in status %s", order.ErrConflict, aggregate.ID(), observedStatus)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetIDsCreatedOn returns the ids of all orders created on the given UTC
// calendar day.
func (r *GormOrderRepository) GetIDsCreatedOn(ctx context.Context, day time.Time) ([]kernel.UUID, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, u := range raw {
		id, idErr := kernel.UUIDFromBytes(u[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete removes one order and its items, items first so no orphaned lines
// survive a partial failure. Audit entries referencing the order are not
// touched.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&ItemDTO{}, "order_id = ?", id.Bytes()).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}
