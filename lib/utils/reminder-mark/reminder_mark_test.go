package remindermark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryMark(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	provider := NewMemoryInstance(func() time.Time { return now })
	ctx := context.Background()

	ok, err := provider.Mark(ctx, "entry-1", 48*time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = provider.Mark(ctx, "entry-1", 48*time.Hour)
	require.NoError(t, err)
	require.False(t, ok, "second mark inside the window must be refused")

	ok, err = provider.Mark(ctx, "entry-2", 48*time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(48 * time.Hour)
	ok, err = provider.Mark(ctx, "entry-1", 48*time.Hour)
	require.NoError(t, err)
	require.True(t, ok, "mark expires with the window")
}
