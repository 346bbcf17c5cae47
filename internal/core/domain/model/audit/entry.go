// Package audit provides the immutable audit trail entry. Every mutating
// action in the system appends exactly one entry; nothing ever updates or
// deletes one, and entries outlive the records they describe.
package audit

import (
	"encoding/json"
	"errors"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// NewEntry.
var ErrEntryIsNotConstructed = errors.New("audit Entry must be created via NewEntry")

// Actions recorded in the audit trail.
const (
	ActionCreate           = "create"
	ActionStatusTransition = "status_transition"
	ActionStatusOverride   = "status_override"
	ActionNoteAppend       = "note_append"
	ActionResolve          = "resolve"
	ActionDelete           = "delete"
)

// Entry is one immutable audit record: which table and record changed, what
// happened, the old and new snapshots and who did it. A nil actor means the
// system or an anonymous customer acted. Entries are never updated and never
// cascade-deleted with their subject.
type Entry struct {
	id        kernel.UUID
	tableName string
	recordID  kernel.UUID
	action    string
	oldData   json.RawMessage
	newData   json.RawMessage
	actor     *kernel.UUID
	createdAt time.Time

	isConstructed bool
}

// NewEntry creates an audit record. oldData may be nil for creations and
// newData may be nil for deletions; both snapshots must be valid JSON when
// present.
func NewEntry(
	id kernel.UUID,
	tableName string,
	recordID kernel.UUID,
	action string,
	oldData json.RawMessage,
	newData json.RawMessage,
	actor *kernel.UUID,
	now time.Time,
) (Entry, error) {
	if err := errors.Join(id.Validate(), recordID.Validate()); err != nil {
		return Entry{}, err
	}
	if tableName == "" {
		return Entry{}, errs.NewValueIsRequiredError("audit table name")
	}
	if action == "" {
		return Entry{}, errs.NewValueIsRequiredError("audit action")
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return Entry{}, err
		}
	}

	return Entry{
		id:            id,
		tableName:     tableName,
		recordID:      recordID,
		action:        action,
		oldData:       oldData,
		newData:       newData,
		actor:         actor,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// Validate ensures the entry was created via NewEntry.
func (e Entry) Validate() error {
	if !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e Entry) ID() kernel.UUID {
	return e.id
}

// TableName returns the logical table of the mutated record.
func (e Entry) TableName() string {
	return e.tableName
}

// RecordID returns the identifier of the mutated record.
func (e Entry) RecordID() kernel.UUID {
	return e.recordID
}

// Action returns what happened.
func (e Entry) Action() string {
	return e.action
}

// OldData returns the pre-mutation snapshot, or nil for creations.
func (e Entry) OldData() json.RawMessage {
	return e.oldData
}

// NewData returns the post-mutation snapshot, or nil for deletions.
func (e Entry) NewData() json.RawMessage {
	return e.newData
}

// Actor returns who acted, or nil for system/anonymous actions.
func (e Entry) Actor() *kernel.UUID {
	return e.actor
}

// CreatedAt returns when the entry was recorded.
func (e Entry) CreatedAt() time.Time {
	return e.createdAt
}
