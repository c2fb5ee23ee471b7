package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotNil(t *testing.T) {
	require.Panics(t, func() { NotNil(nil) })
	require.NotPanics(t, func() { NotNil(struct{}{}) })
}

func TestNotEmptyStr(t *testing.T) {
	require.Panics(t, func() { NotEmptyStr("") })
	require.NotPanics(t, func() { NotEmptyStr("https://www.metacritic.com/game/") })
}
