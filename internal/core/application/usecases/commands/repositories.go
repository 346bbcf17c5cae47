// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, a synchronous audit write inside the same
// transaction, and an asynchronous event publish after commit.
package commands

import (
	"context"

	"orderhub/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it actually uses.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RequestRepoFactory provides access to the service request repository within a transaction.
	RequestRepoFactory interface {
		ServiceRequestRepository() ports.ServiceRequestRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	// Every mutating unit of work carries it: a mutation and its audit entry
	// commit or roll back together.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// OrderUoW manages transactions for order mutations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RequestUoW manages transactions for service request mutations.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
		AuditRepoFactory
	}

	// RequestUoWFactory creates new service request unit of work instances.
	RequestUoWFactory interface {
		Create() RequestUoW
	}
)
