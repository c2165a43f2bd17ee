package bench_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	rangetree "github.com/malans/range-tree"
	"github.com/malans/range-tree/bench"
)

func testParams(seed uint64) bench.WorkloadParams {
	return bench.WorkloadParams{
		Seed:           seed,
		InitialSize:    1000,
		Ops:            5000,
		DeleteFraction: 0.3,
		QueryFraction:  0.2,
		KeySpace:       4000,
		RangeWidth:     50,
	}
}

func Test_Generate_Expectations(t *testing.T) {
	params := testParams(1)
	ops, err := bench.Generate(params)
	require.NoError(t, err)
	require.Len(t, ops, params.InitialSize+params.Ops)

	keys := map[int64]struct{}{}
	counts := map[bench.OpKind]int{}
	for i, op := range ops {
		counts[op.Kind]++
		require.GreaterOrEqual(t, op.Key, int64(0))
		require.Less(t, op.Key, params.KeySpace)
		_, exists := keys[op.Key]
		switch op.Kind {
		case bench.OpInsert:
			require.Equal(t, !exists, op.Expect, "op %d", i)
			keys[op.Key] = struct{}{}
		case bench.OpDelete:
			require.Equal(t, exists, op.Expect, "op %d", i)
			delete(keys, op.Key)
		case bench.OpList:
			require.GreaterOrEqual(t, op.High, op.Key)
			require.Less(t, op.High-op.Key, params.RangeWidth)
		}
		if i < params.InitialSize {
			require.Equal(t, bench.OpInsert, op.Kind)
			require.True(t, op.Expect)
		}
	}
	fmt.Printf("ops: %v; live keys %s\n", counts, humanize.Comma(int64(len(keys))))
	require.NotZero(t, counts[bench.OpDelete])
	require.NotZero(t, counts[bench.OpRank])
	require.NotZero(t, counts[bench.OpList])
}

func Test_Generate_Determinism(t *testing.T) {
	for _, seed := range []uint64{2, 100, 777} {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			a, err := bench.Generate(testParams(seed))
			require.NoError(t, err)
			b, err := bench.Generate(testParams(seed))
			require.NoError(t, err)
			require.Equal(t, a, b)

			c, err := bench.Generate(testParams(seed + 1))
			require.NoError(t, err)
			require.NotEqual(t, a, c)
		})
	}
}

func Test_Generate_Validation(t *testing.T) {
	cases := map[string]func(p *bench.WorkloadParams){
		"negative initial":  func(p *bench.WorkloadParams) { p.InitialSize = -1 },
		"negative ops":      func(p *bench.WorkloadParams) { p.Ops = -1 },
		"negative fraction": func(p *bench.WorkloadParams) { p.DeleteFraction = -0.1 },
		"fractions over 1":  func(p *bench.WorkloadParams) { p.DeleteFraction, p.QueryFraction = 0.6, 0.5 },
		"small key space":   func(p *bench.WorkloadParams) { p.KeySpace = 1000 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			params := testParams(1)
			mutate(&params)
			_, err := bench.Generate(params)
			require.Error(t, err)
		})
	}

	// defaults fill in the key space and range width
	ops, err := bench.Generate(bench.WorkloadParams{InitialSize: 10, Ops: 10, QueryFraction: 1})
	require.NoError(t, err)
	require.Len(t, ops, 20)
}

func Test_Run(t *testing.T) {
	ops, err := bench.Generate(testParams(42))
	require.NoError(t, err)

	tree := rangetree.NewRangeTree[int64](rangetree.Options{})
	stats, err := bench.Run(tree, ops, bench.RunParams{
		CheckEvery:    500,
		ProgressEvery: 1000,
		Logger:        zerolog.Nop(),
	})
	require.NoError(t, err)
	require.Equal(t, len(ops), stats.Ops)
	require.Equal(t, len(ops), stats.Inserts+stats.Deletes+stats.Ranks+stats.Lists)
	require.Equal(t, tree.Len(), stats.FinalSize)
	require.Equal(t, len(ops)/500+1, stats.InvChecked)
}

func Test_Run_DetectsMismatch(t *testing.T) {
	tree := rangetree.NewRangeTree[int64](rangetree.Options{})
	ops := []bench.Op{
		{Kind: bench.OpInsert, Key: 1, Expect: true},
		{Kind: bench.OpInsert, Key: 1, Expect: true},
	}
	stats, err := bench.Run(tree, ops, bench.RunParams{Logger: zerolog.Nop()})
	require.Error(t, err)
	require.Contains(t, err.Error(), "op 1")
	require.Equal(t, 1, stats.Ops)

	_, err = bench.Run(tree, []bench.Op{{Kind: bench.OpDelete, Key: 7, Expect: true}}, bench.RunParams{Logger: zerolog.Nop()})
	require.ErrorIs(t, err, rangetree.ErrNotFound)
}

func Test_Plan(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "plan.json")
	plan := bench.Plan{
		Workload:   testParams(9),
		CheckEvery: 100,
		Tree:       rangetree.Options{InitialCapacity: 2048},
	}
	require.NoError(t, bench.WritePlan(filename, plan))
	loaded, err := bench.LoadPlan(filename)
	require.NoError(t, err)
	require.Equal(t, plan, loaded)

	_, err = bench.LoadPlan(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	plan.Workload.Ops = -1
	require.NoError(t, bench.WritePlan(filename, plan))
	_, err = bench.LoadPlan(filename)
	require.Error(t, err)
}
