package rangetree

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	require.Equal(t, 64, opts.GetInitialCapacity())
	require.Equal(t, zerolog.Disabled, opts.GetLogger().GetLevel())

	opts.InitialCapacity = 10
	require.Equal(t, 10, opts.GetInitialCapacity())
	tree := NewTree[int](opts)
	require.Equal(t, 11, cap(tree.nodes), "capacity excludes the sentinel slot")
}

func TestOptionsJSON(t *testing.T) {
	logger := zerolog.Nop()
	bz, err := json.Marshal(Options{InitialCapacity: 5, CheckInvariants: true, Logger: &logger})
	require.NoError(t, err)
	require.JSONEq(t, `{"initial_capacity":5,"check_invariants":true}`, string(bz))
}

func TestTraceLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	tree := NewTree[int](Options{Logger: &logger})
	for _, k := range []int{1, 2, 3} {
		tree.Insert(k)
	}
	_, err := tree.Delete(2)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `"message":"rotate left"`)
	require.Contains(t, out, `"message":"insert"`)
	require.Contains(t, out, `"message":"delete"`)
	require.NotContains(t, out, `"message":"rotate right"`)
}
