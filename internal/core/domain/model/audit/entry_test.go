package audit_test

import (
	"encoding/json"
	"testing"
	"time"

	"orderhub/internal/core/domain/model/audit"
	"orderhub/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	t.Run("should create entry with actor and snapshots", func(t *testing.T) {
		actor := kernel.NewUUID()
		recordID := kernel.NewUUID()
		now := time.Now().UTC()
		oldData := json.RawMessage(`{"status":"new"}`)
		newData := json.RawMessage(`{"status":"accepted"}`)

		entry, err := audit.NewEntry(
			kernel.NewUUID(), "orders", recordID,
			audit.ActionStatusTransition, oldData, newData, &actor, now,
		)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.Equal(t, "orders", entry.TableName())
		assert.True(t, entry.RecordID().IsEqual(recordID))
		assert.Equal(t, audit.ActionStatusTransition, entry.Action())
		assert.JSONEq(t, string(oldData), string(entry.OldData()))
		assert.JSONEq(t, string(newData), string(entry.NewData()))
		require.NotNil(t, entry.Actor())
		assert.True(t, entry.Actor().IsEqual(actor))
		assert.Equal(t, now, entry.CreatedAt())
	})

	t.Run("should allow nil actor for anonymous actions", func(t *testing.T) {
		entry, err := audit.NewEntry(
			kernel.NewUUID(), "orders", kernel.NewUUID(),
			audit.ActionCreate, nil, json.RawMessage(`{}`), nil, time.Now().UTC(),
		)

		require.NoError(t, err)
		assert.Nil(t, entry.Actor())
		assert.Nil(t, entry.OldData())
	})

	t.Run("should allow nil new data for deletions", func(t *testing.T) {
		entry, err := audit.NewEntry(
			kernel.NewUUID(), "orders", kernel.NewUUID(),
			audit.ActionDelete, json.RawMessage(`{}`), nil, nil, time.Now().UTC(),
		)

		require.NoError(t, err)
		assert.Nil(t, entry.NewData())
	})

	t.Run("should fail without table name", func(t *testing.T) {
		_, err := audit.NewEntry(
			kernel.NewUUID(), "", kernel.NewUUID(),
			audit.ActionCreate, nil, nil, nil, time.Now().UTC(),
		)

		require.Error(t, err)
	})

	t.Run("should fail without action", func(t *testing.T) {
		_, err := audit.NewEntry(
			kernel.NewUUID(), "orders", kernel.NewUUID(),
			"", nil, nil, nil, time.Now().UTC(),
		)

		require.Error(t, err)
	})

	t.Run("should fail with invalid record id", func(t *testing.T) {
		_, err := audit.NewEntry(
			kernel.NewUUID(), "orders", kernel.UUID{},
			audit.ActionCreate, nil, nil, nil, time.Now().UTC(),
		)

		require.Error(t, err)
	})

	t.Run("should reject not constructed entry", func(t *testing.T) {
		var entry audit.Entry

		err := entry.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, audit.ErrEntryIsNotConstructed)
	})
}
