package servicerequestrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/servicerequest"
	"orderhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormServiceRequestRepository implements ports.ServiceRequestRepository
// using GORM.
type GormServiceRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormServiceRequestRepository creates a new GORM service request repository.
func NewGormServiceRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormServiceRequestRepository {
	return &GormServiceRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new service request. The partial unique index on pending rows
// is the last line of defense against two concurrent creations for the same
// table and type; the handler's GetPending lookup absorbs the common case.
func (r *GormServiceRequestRepository) Add(ctx context.Context, aggregate *servicerequest.ServiceRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a service request by ID.
func (r *GormServiceRequestRepository) Get(ctx context.Context, id kernel.UUID) (*servicerequest.ServiceRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ServiceRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("service request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPending retrieves the pending request for a (table, type) pair.
func (r *GormServiceRequestRepository) GetPending(ctx context.Context, tableNumber int, requestType servicerequest.Type) (*servicerequest.ServiceRequest, error) {
	var dto ServiceRequestDTO
	err := r.db.WithContext(ctx).First(&dto,
		"table_number = ? AND request_type = ? AND status = ?",
		tableNumber, string(requestType), string(servicerequest.Pending),
	).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("service request",
				fmt.Sprintf("pending %s for table %d", requestType, tableNumber))
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update persists a state change.
func (r *GormServiceRequestRepository) Update(ctx context.Context, aggregate *servicerequest.ServiceRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ServiceRequestDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":      dto.Status,
			"resolved_at": dto.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("service request", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// DeleteResolvedBefore removes resolved requests older than cutoff.
// Pending requests are never deleted regardless of age.
func (r *GormServiceRequestRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&ServiceRequestDTO{},
		"status = ? AND resolved_at < ?", string(servicerequest.Resolved), cutoff)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
