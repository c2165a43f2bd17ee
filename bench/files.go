package bench

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"

	rangetree "github.com/malans/range-tree"
)

// Plan is the JSON form of a benchmark run, so a run can be repeated exactly.
type Plan struct {
	Workload   WorkloadParams    `json:"workload"`
	CheckEvery int               `json:"check_every"`
	Tree       rangetree.Options `json:"tree"`
}

func WritePlan(filename string, plan Plan) error {
	bz, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error marshaling plan file")
	}
	return os.WriteFile(filename, bz, 0o644)
}

func LoadPlan(filename string) (Plan, error) {
	bz, err := os.ReadFile(filename)
	if err != nil {
		return Plan{}, errors.Wrap(err, "error reading plan file")
	}
	var plan Plan
	if err := json.Unmarshal(bz, &plan); err != nil {
		return Plan{}, errors.Wrapf(err, "error unmarshaling plan file %s", filename)
	}
	if err := plan.Workload.Validate(); err != nil {
		return Plan{}, errors.Wrapf(err, "plan file %s", filename)
	}
	return plan, nil
}
