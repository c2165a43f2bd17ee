package bench

import (
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	rangetree "github.com/malans/range-tree"
)

type RunParams struct {
	// CheckEvery runs a full invariant check after every CheckEvery ops. 0 only checks
	// once at the end.
	CheckEvery int
	// ProgressEvery logs progress after every ProgressEvery ops. Defaults to 100,000.
	ProgressEvery int
	Logger        zerolog.Logger
}

type Stats struct {
	Ops        int
	Inserts    int
	Deletes    int
	Ranks      int
	Lists      int
	Listed     int
	FinalSize  int
	Height     int
	Duration   time.Duration
	OpsPerSec  float64
	MemAllocs  uint64
	InvChecked int
}

// Run applies ops to tree in order and verifies each mutation's outcome against the
// expectation recorded by Generate.
func Run(tree *rangetree.RangeTree[int64], ops []Op, params RunParams) (Stats, error) {
	logger := params.Logger
	progressEvery := params.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = 100_000
	}

	logger.Info().Int("ops", len(ops)).Int("start_size", tree.Len()).Msg("starting run")
	var stats Stats
	startTime := time.Now()
	for i, op := range ops {
		if err := apply(tree, op, &stats); err != nil {
			return stats, errors.Wrapf(err, "op %d (%s %d)", i, op.Kind, op.Key)
		}
		stats.Ops++

		if params.CheckEvery > 0 && stats.Ops%params.CheckEvery == 0 {
			if err := tree.CheckInvariants(); err != nil {
				return stats, errors.Wrapf(err, "after op %d", i)
			}
			stats.InvChecked++
		}
		if stats.Ops%progressEvery == 0 {
			logger.Debug().
				Str("applied", humanize.Comma(int64(stats.Ops))).
				Str("size", humanize.Comma(int64(tree.Len()))).
				Int("height", tree.Height()).
				Msg("progress")
		}
	}
	if err := tree.CheckInvariants(); err != nil {
		return stats, errors.Wrap(err, "after run")
	}
	stats.InvChecked++

	stats.Duration = time.Since(startTime)
	if secs := stats.Duration.Seconds(); secs > 0 {
		stats.OpsPerSec = float64(stats.Ops) / secs
	}
	stats.FinalSize = tree.Len()
	stats.Height = tree.Height()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats.MemAllocs = memStats.Alloc
	logger.Info().
		Dur("duration", stats.Duration).
		Float64("ops_per_sec", stats.OpsPerSec).
		Int("size", stats.FinalSize).
		Int("height", stats.Height).
		Str("mem_allocs", humanize.Bytes(memStats.Alloc)).
		Str("mem_sys", humanize.Bytes(memStats.Sys)).
		Str("mem_num_gc", humanize.Comma(int64(memStats.NumGC))).
		Msg("finished run")
	return stats, nil
}

func apply(tree *rangetree.RangeTree[int64], op Op, stats *Stats) error {
	switch op.Kind {
	case OpInsert:
		_, inserted := tree.Insert(op.Key)
		if inserted != op.Expect {
			return errors.AssertionFailedf("inserted = %t, expected %t", inserted, op.Expect)
		}
		stats.Inserts++
	case OpDelete:
		_, err := tree.Delete(op.Key)
		switch {
		case err == nil && !op.Expect:
			return errors.AssertionFailedf("deleted a key that should be absent")
		case err != nil && (op.Expect || !errors.Is(err, rangetree.ErrNotFound)):
			return err
		}
		stats.Deletes++
	case OpRank:
		if r := tree.Rank(op.Key); r < 0 || r > tree.Len() {
			return errors.AssertionFailedf("rank %d outside [0, %d]", r, tree.Len())
		}
		stats.Ranks++
	case OpList:
		nodes, err := tree.List(op.Key, op.High)
		if err != nil {
			return err
		}
		count, err := tree.Count(op.Key, op.High)
		if err != nil {
			return err
		}
		if count != len(nodes) {
			return errors.AssertionFailedf("listed %d keys, count says %d", len(nodes), count)
		}
		stats.Lists++
		stats.Listed += len(nodes)
	default:
		return errors.Newf("unknown op kind %s", op.Kind)
	}
	return nil
}
