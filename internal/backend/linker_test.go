package backend_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sourcelang/slc/internal/backend"
)

func TestLinkSucceedsWhenDriverExitsZero(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("no `true` binary on PATH")
	}
	d := &backend.LinkerDriver{CC: "true"}
	err := d.Link(context.Background(), []string{"a.o", "b.o"}, "out", []string{"/lib"}, []string{"m"}, nil)
	require.NoError(t, err)
}

func TestLinkPropagatesFailureExitCode(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("no `false` binary on PATH")
	}
	d := &backend.LinkerDriver{CC: "false"}
	err := d.Link(context.Background(), []string{"a.o"}, "out", nil, nil, nil)
	require.Error(t, err)
}

func TestDefaultEncodingRulesAre64Bit(t *testing.T) {
	e := backend.DefaultEncodingRules()
	require.Equal(t, 64, e.PointerWidthBits)
	require.True(t, e.TwosComplement)
	require.True(t, e.IEEE754Floats)
}
