package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface{ Do() }

func TestCheckInit(t *testing.T) {
	var nilPtr *int
	var nilIface provider
	value := 1
	require.NotPanics(t, func() { CheckInit("value", &value, "str", "x") })
	require.Panics(t, func() { CheckInit("iface", nilIface) })
	require.Panics(t, func() { CheckInit("ptr", nilPtr) })
	require.Panics(t, func() { CheckInit("odd") })
	require.Panics(t, func() { CheckInit(1, &value) })
}
