// Package servicerequest provides the domain model for ephemeral non-order
// table requests: calling staff over or asking for the bill. Requests are
// deduplicated while pending and simply resolved by staff; they carry no
// money and no lifecycle beyond pending/resolved.
package servicerequest

import (
	"errors"
	"fmt"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

var (
	// ErrRequestIsNotConstructed is returned when a ServiceRequest was not
	// created through NewServiceRequest or RestoreServiceRequest.
	ErrRequestIsNotConstructed = errors.New("ServiceRequest must be created via NewServiceRequest or RestoreServiceRequest")

	// ErrAlreadyResolved is returned when resolving a request twice.
	ErrAlreadyResolved = errors.New("service request is already resolved")
)

// Type is the kind of service being requested.
type Type string

const (
	CallStaff   Type = "call_staff"
	RequestBill Type = "request_bill"
)

// ParseType validates and converts a wire value into a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case CallStaff, RequestBill:
		return Type(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("service request type", fmt.Errorf("%q is not a known request type", s))
	}
}

// Status is the request's two-state lifecycle.
type Status string

const (
	Pending  Status = "pending"
	Resolved Status = "resolved"
)

// ServiceRequest tracks one table's pending ask.
// Invariant (enforced by the repository's dedupe lookup together with
// the command handler): at most one pending request exists per
// (table number, type) at any time. Resolved requests never participate
// in dedupe, so a fresh request after resolution opens a new record.
type ServiceRequest struct {
	id          kernel.UUID
	tableNumber int
	requestType Type
	status      Status
	createdAt   time.Time
	resolvedAt  *time.Time

	isConstructed bool
}

// NewServiceRequest creates a pending request for a table.
func NewServiceRequest(id kernel.UUID, tableNumber int, requestType Type, now time.Time) (*ServiceRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if tableNumber <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("table number", fmt.Errorf("%d is not greater than 0", tableNumber))
	}
	if _, err := ParseType(string(requestType)); err != nil {
		return nil, err
	}

	return &ServiceRequest{
		id:            id,
		tableNumber:   tableNumber,
		requestType:   requestType,
		status:        Pending,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreServiceRequest reconstructs a request from persistence.
func RestoreServiceRequest(
	id kernel.UUID,
	tableNumber int,
	requestType Type,
	status Status,
	createdAt time.Time,
	resolvedAt *time.Time,
) (*ServiceRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &ServiceRequest{
		id:            id,
		tableNumber:   tableNumber,
		requestType:   requestType,
		status:        status,
		createdAt:     createdAt,
		resolvedAt:    resolvedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the request was created through a factory function.
func (r *ServiceRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// ID returns the request's unique identifier.
func (r *ServiceRequest) ID() kernel.UUID {
	return r.id
}

// TableNumber returns the table the request came from.
func (r *ServiceRequest) TableNumber() int {
	return r.tableNumber
}

// Type returns the kind of service requested.
func (r *ServiceRequest) Type() Type {
	return r.requestType
}

// Status returns pending or resolved.
func (r *ServiceRequest) Status() Status {
	return r.status
}

// IsPending reports whether the request still awaits staff.
func (r *ServiceRequest) IsPending() bool {
	return r.status == Pending
}

// CreatedAt returns when the request was raised.
func (r *ServiceRequest) CreatedAt() time.Time {
	return r.createdAt
}

// ResolvedAt returns when staff resolved the request, or nil while pending.
func (r *ServiceRequest) ResolvedAt() *time.Time {
	return r.resolvedAt
}

// Resolve marks the request handled. Resolving twice fails with
// ErrAlreadyResolved.
func (r *ServiceRequest) Resolve(now time.Time) error {
	if r.status == Resolved {
		return ErrAlreadyResolved
	}
	r.status = Resolved
	r.resolvedAt = &now
	return nil
}
