package warehouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Maps(t *testing.T) {
	result := &Result{
		Columns: []string{"ID", "NAME"},
		Rows: [][]any{
			{int64(1), "alpha"},
			{int64(2), "beta"},
		},
	}

	maps := result.Maps()
	require.Len(t, maps, 2)
	assert.Equal(t, map[string]any{"ID": int64(1), "NAME": "alpha"}, maps[0])
	assert.Equal(t, map[string]any{"ID": int64(2), "NAME": "beta"}, maps[1])
}

func TestResult_MapsEmpty(t *testing.T) {
	result := &Result{Columns: []string{"ID"}}
	assert.Empty(t, result.Maps())
}

func TestDriverConn_QueryDoneUnknownID(t *testing.T) {
	conn := &driverConn{pending: make(map[string]*pendingQuery)}

	_, err := conn.QueryDone(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnknownQueryID)
}

func TestDriverConn_PendingLifecycle(t *testing.T) {
	ctx := context.Background()
	conn := &driverConn{pending: make(map[string]*pendingQuery)}

	p := &pendingQuery{done: make(chan struct{})}
	conn.track("01aa-bb", p)

	done, err := conn.QueryDone(ctx, "01aa-bb")
	require.NoError(t, err)
	assert.False(t, done, "query still running")

	p.result = &Result{Columns: []string{"N"}, Rows: [][]any{{int64(1)}}}
	close(p.done)

	done, err = conn.QueryDone(ctx, "01aa-bb")
	require.NoError(t, err)
	assert.True(t, done)

	cursor := &driverCursor{conn: conn}
	result, err := cursor.FetchByID(ctx, "01aa-bb")
	require.NoError(t, err)
	assert.Equal(t, p.result, result)

	// Fetch consumes the pending entry.
	_, err = cursor.FetchByID(ctx, "01aa-bb")
	assert.ErrorIs(t, err, ErrUnknownQueryID)
}
