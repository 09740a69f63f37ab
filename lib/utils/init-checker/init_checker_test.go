package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface{ Name() string }

type impl struct{}

func (i *impl) Name() string { return "impl" }

func TestCheckInit(t *testing.T) {
	t.Run("all set", func(t *testing.T) {
		require.NotPanics(t, func() {
			CheckInit("store", &impl{}, "handler", provider(&impl{}))
		})
	})
	t.Run("nil value", func(t *testing.T) {
		require.PanicsWithValue(t, "store dependency not initialized", func() {
			CheckInit("store", nil)
		})
	})
	t.Run("typed nil", func(t *testing.T) {
		var p *impl
		require.PanicsWithValue(t, "sink dependency not initialized", func() {
			CheckInit("sink", provider(p))
		})
	})
	t.Run("odd args", func(t *testing.T) {
		require.Panics(t, func() {
			CheckInit("store")
		})
	})
}
