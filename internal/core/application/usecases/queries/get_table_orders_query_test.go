package queries_test

import (
	"testing"

	"orderhub/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetTableOrdersQuery_Valid(t *testing.T) {
	query, err := queries.NewGetTableOrdersQuery(7, "a1b2c3")
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	assert.Equal(t, 7, query.TableNumber())
	assert.Equal(t, "a1b2c3", query.VerificationCode())
}

func TestNewGetTableOrdersQuery_InvalidInputs(t *testing.T) {
	t.Run("non-positive table number", func(t *testing.T) {
		_, err := queries.NewGetTableOrdersQuery(0, "a1b2c3")
		require.Error(t, err)
	})

	t.Run("missing verification code", func(t *testing.T) {
		_, err := queries.NewGetTableOrdersQuery(7, "")
		require.Error(t, err)
	})
}

func TestGetTableOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetTableOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetTableOrdersQueryIsNotConstructed)
}

func TestNewListPendingServiceRequestsQuery_Valid(t *testing.T) {
	query := queries.NewListPendingServiceRequestsQuery()
	require.NoError(t, query.Validate())
}

func TestListPendingServiceRequestsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListPendingServiceRequestsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListPendingServiceRequestsQueryIsNotConstructed)
}
