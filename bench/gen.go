package bench

import (
	"fmt"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/btree"
)

type OpKind uint8

const (
	OpInsert OpKind = iota
	OpDelete
	OpRank
	OpList
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpRank:
		return "rank"
	case OpList:
		return "list"
	default:
		return fmt.Sprintf("OpKind(%d)", uint8(k))
	}
}

// Op is a single step of a workload. High is only used by OpList. For mutations,
// Expect records whether the tree should change: a fresh insert or a delete of a
// present key.
type Op struct {
	Kind   OpKind
	Key    int64
	High   int64
	Expect bool
}

// WorkloadParams describes a randomly generated mix of mutations and queries over
// int64 keys drawn from [0, KeySpace).
type WorkloadParams struct {
	Seed uint64 `json:"seed"`
	// InitialSize is the number of distinct keys inserted before the mixed phase.
	InitialSize int `json:"initial_size"`
	// Ops is the number of operations in the mixed phase.
	Ops int `json:"ops"`
	// DeleteFraction of the mixed phase deletes a key; most deletes hit.
	DeleteFraction float64 `json:"delete_fraction"`
	// QueryFraction of the mixed phase runs rank or list queries.
	QueryFraction float64 `json:"query_fraction"`
	KeySpace      int64   `json:"key_space"`
	// RangeWidth bounds the span of list queries.
	RangeWidth int64 `json:"range_width"`
}

// GetKeySpace returns the key space with default
func (p WorkloadParams) GetKeySpace() int64 {
	if p.KeySpace <= 0 {
		return 4 * int64(p.InitialSize+p.Ops+1)
	}
	return p.KeySpace
}

// GetRangeWidth returns the list query span with default
func (p WorkloadParams) GetRangeWidth() int64 {
	if p.RangeWidth <= 0 {
		return max(p.GetKeySpace()/1000, 1)
	}
	return p.RangeWidth
}

func (p WorkloadParams) Validate() error {
	switch {
	case p.InitialSize < 0:
		return errors.Newf("initial size must not be negative, got %d", p.InitialSize)
	case p.Ops < 0:
		return errors.Newf("ops must not be negative, got %d", p.Ops)
	case p.DeleteFraction < 0 || p.QueryFraction < 0:
		return errors.New("fractions must not be negative")
	case p.DeleteFraction+p.QueryFraction > 1:
		return errors.Newf("delete fraction %v + query fraction %v exceed 1", p.DeleteFraction, p.QueryFraction)
	case p.GetKeySpace() <= int64(p.InitialSize):
		return errors.Newf("key space %d cannot hold %d distinct initial keys", p.GetKeySpace(), p.InitialSize)
	}
	return nil
}

// Generate returns the workload described by p. The same parameters always produce
// the same ops.
func Generate(p WorkloadParams) ([]Op, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	st := &genState{
		params:   p,
		rng:      rand.New(rand.NewPCG(p.Seed, p.Seed)),
		existing: btree.NewBTreeG(func(a, b int64) bool { return a < b }),
		keySpace: p.GetKeySpace(),
	}

	ops := make([]Op, 0, p.InitialSize+p.Ops)
	for range p.InitialSize {
		ops = append(ops, st.genCreate())
	}
	for range p.Ops {
		r := st.rng.Float64()
		switch {
		case r < p.QueryFraction/2:
			ops = append(ops, st.genRank())
		case r < p.QueryFraction:
			ops = append(ops, st.genList())
		case r < p.QueryFraction+p.DeleteFraction:
			ops = append(ops, st.genDelete())
		default:
			ops = append(ops, st.genInsert())
		}
	}
	return ops, nil
}

type genState struct {
	params   WorkloadParams
	rng      *rand.Rand
	existing *btree.BTreeG[int64]
	keySpace int64
}

func (st *genState) genKey() int64 {
	return st.rng.Int64N(st.keySpace)
}

// genCreate always produces a key that is not yet present.
func (st *genState) genCreate() Op {
	key := st.genKey()
	for st.has(key) {
		key = st.genKey()
	}
	st.existing.Set(key)
	return Op{Kind: OpInsert, Key: key, Expect: true}
}

// genInsert may pick a present key, which exercises duplicate inserts.
func (st *genState) genInsert() Op {
	key := st.genKey()
	_, replaced := st.existing.Set(key)
	return Op{Kind: OpInsert, Key: key, Expect: !replaced}
}

// genDelete removes a present key, except for one in ten deletes which probe a
// random key that is usually absent.
func (st *genState) genDelete() Op {
	n := st.existing.Len()
	if n == 0 || st.rng.IntN(10) == 0 {
		key := st.genKey()
		_, deleted := st.existing.Delete(key)
		return Op{Kind: OpDelete, Key: key, Expect: deleted}
	}
	key, ok := st.existing.GetAt(st.rng.IntN(n))
	if !ok {
		panic("logic error: no key to delete")
	}
	st.existing.Delete(key)
	return Op{Kind: OpDelete, Key: key, Expect: true}
}

func (st *genState) genRank() Op {
	return Op{Kind: OpRank, Key: st.genKey()}
}

func (st *genState) genList() Op {
	low := st.genKey()
	return Op{Kind: OpList, Key: low, High: low + st.rng.Int64N(st.params.GetRangeWidth())}
}

func (st *genState) has(key int64) bool {
	_, ok := st.existing.Get(key)
	return ok
}
