package blockstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocKey(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		docName string
		want    string
		wantErr bool
	}{
		{
			name:    "valid",
			kind:    KindConnector,
			docName: "prod-warehouse",
			want:    "snowflake-connector/prod-warehouse",
		},
		{
			name:    "empty name",
			kind:    KindConnector,
			wantErr: true,
		},
		{
			name:    "empty kind",
			docName: "prod-warehouse",
			wantErr: true,
		},
		{
			name:    "separator in name",
			kind:    KindConnector,
			docName: "prod/warehouse",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := docKey(tt.kind, tt.docName)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	doc := &Document{
		Kind: KindCredentials,
		Name: "analytics",
		Data: []byte("account: acme-eu1\nuser: loader\n"),
	}
	require.NoError(t, store.Put(ctx, doc))

	got, err := store.Get(ctx, KindCredentials, "analytics")
	require.NoError(t, err)
	assert.Equal(t, doc.Kind, got.Kind)
	assert.Equal(t, doc.Name, got.Name)
	assert.Equal(t, doc.Data, got.Data)

	// The stored copy must not alias caller memory.
	got.Data[0] = 'X'
	again, err := store.Get(ctx, KindCredentials, "analytics")
	require.NoError(t, err)
	assert.Equal(t, byte('a'), again.Data[0])
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), KindConnector, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, &Document{Kind: KindConnector, Name: "x", Data: []byte("d")}))
	require.NoError(t, store.Delete(ctx, KindConnector, "x"))

	_, err := store.Get(ctx, KindConnector, "x")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, KindConnector, "x"), ErrNotFound)
}

func TestMemoryStore_ListSortedPerKind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, name := range []string{"beta", "alpha"} {
		require.NoError(t, store.Put(ctx, &Document{Kind: KindConnector, Name: name, Data: []byte("d")}))
	}
	require.NoError(t, store.Put(ctx, &Document{Kind: KindCredentials, Name: "other", Data: []byte("d")}))

	names, err := store.List(ctx, KindConnector)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)
}
