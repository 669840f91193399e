package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

func TestNewBackendRoundTrip(t *testing.T) {
	store := NewBackend(nil)
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer store.Detach()

	tbl, err := store.GetTable(types.EventTypesTable)
	require.NoError(t, err)

	id, err := tbl.Set("", &types.EventType{Slug: "intro", Title: "Intro", LengthInMinutes: 15})
	require.NoError(t, err)

	got, err := tbl.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "intro", got.(*types.EventType).Slug)
}
