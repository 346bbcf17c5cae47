// Package servicerequestrepo persists service request aggregates.
package servicerequestrepo

import (
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/servicerequest"

	"github.com/google/uuid"
)

// ServiceRequestDTO is the database row for a service request.
// The partial unique index backs the dedupe invariant: at most one pending
// row may exist per (table_number, request_type); resolved rows never
// participate.
type ServiceRequestDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TableNumber int        `gorm:"uniqueIndex:idx_pending_request,where:status = 'pending'"`
	RequestType string     `gorm:"type:varchar(16);uniqueIndex:idx_pending_request,where:status = 'pending'"`
	Status      string     `gorm:"type:varchar(16);index"`
	CreatedAt   time.Time  `gorm:"index"`
	ResolvedAt  *time.Time `gorm:"index"`
}

// TableName specifies the database table name for service request rows.
func (ServiceRequestDTO) TableName() string {
	return "service_requests"
}

// fromDomain converts a service request aggregate to its database row.
func fromDomain(aggregate *servicerequest.ServiceRequest) ServiceRequestDTO {
	return ServiceRequestDTO{
		ID:          aggregate.ID().Bytes(),
		TableNumber: aggregate.TableNumber(),
		RequestType: string(aggregate.Type()),
		Status:      string(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
		ResolvedAt:  aggregate.ResolvedAt(),
	}
}

// toDomain converts a database row back into a service request aggregate.
func toDomain(dto ServiceRequestDTO) (*servicerequest.ServiceRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return servicerequest.RestoreServiceRequest(
		id,
		dto.TableNumber,
		servicerequest.Type(dto.RequestType),
		servicerequest.Status(dto.Status),
		dto.CreatedAt,
		dto.ResolvedAt,
	)
}
