package helpers

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("wrapped unique violation", func(t *testing.T) {
		err := errors.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "insert")
		require.True(t, IsUniqueViolation(err))
	})
	t.Run("other pg error", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
		require.False(t, IsUniqueViolation(err))
	})
	t.Run("plain error", func(t *testing.T) {
		require.False(t, IsUniqueViolation(errors.New("boom")))
		require.False(t, IsUniqueViolation(nil))
	})
}

func TestJoinOrDefault(t *testing.T) {
	require.Equal(t, "Pune, Chennai", JoinOrDefault([]string{"Pune", " ", "Chennai"}, ", ", "Not specified"))
	require.Equal(t, "Not specified", JoinOrDefault(nil, ", ", "Not specified"))
	require.Equal(t, "Not specified", JoinOrDefault([]string{""}, ", ", "Not specified"))
}

func TestFirstN(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, FirstN([]string{"a", "b", "c", "d"}, 3))
	require.Equal(t, []string{"a"}, FirstN([]string{"a"}, 3))
}

func TestIsContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	require.False(t, IsContextDone(ctx))
	cancel()
	require.True(t, IsContextDone(ctx))
}

func TestPtrValue(t *testing.T) {
	v := 5
	require.Equal(t, 5, PtrValue(&v))
	require.Equal(t, 0, PtrValue[int](nil))
}

func TestPtr(t *testing.T) {
	p := Ptr("EXP-2025-DAI-001")
	require.Equal(t, "EXP-2025-DAI-001", *p)
}
