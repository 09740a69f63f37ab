package helpers

import (
	"context"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// IsUniqueViolation reports whether err was raised by a postgres unique constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// JoinOrDefault joins non-empty items with sep, returning def when nothing is left.
func JoinOrDefault(items []string, sep, def string) string {
	list := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return def
	}
	return strings.Join(list, sep)
}

func FirstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func PtrValue[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}
