// Package bench runs suites of decomposition instances through the solve
// pipeline and records the outcomes.
//
// A suite is a TOML file listing instances with paths relative to the
// suite file itself:
//
//	name = "paths and cycles"
//
//	[[instance]]
//	name     = "p4"
//	file     = "p4.ntd"
//	expected = 2
//
// [Runner.Run] produces a [Report] with one entry per instance. Reports
// can be appended to a JSON-lines file or inserted into a MongoDB
// collection through the [ResultStore] implementations.
package bench

import "time"

// Status classifies the outcome of a single instance run.
type Status string

const (
	// StatusOK means the instance solved and matched its expectation,
	// or carried no expectation.
	StatusOK Status = "ok"

	// StatusMismatch means the instance solved but the answer differs
	// from the suite's expected value.
	StatusMismatch Status = "mismatch"

	// StatusError means the instance could not be solved.
	StatusError Status = "error"
)

// Report captures one execution of a suite.
type Report struct {
	RunID    string           `json:"run_id" bson:"run_id"`
	Suite    string           `json:"suite" bson:"suite"`
	Started  time.Time        `json:"started" bson:"started"`
	Duration time.Duration    `json:"duration" bson:"duration"`
	Results  []InstanceResult `json:"results" bson:"results"`
}

// Passed reports whether every instance finished with [StatusOK].
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if res.Status != StatusOK {
			return false
		}
	}
	return true
}

// InstanceResult is the outcome of a single instance.
type InstanceResult struct {
	Name     string        `json:"name" bson:"name"`
	Status   Status        `json:"status" bson:"status"`
	Answer   int           `json:"answer" bson:"answer"`
	Expected *int          `json:"expected,omitempty" bson:"expected,omitempty"`
	Feasible bool          `json:"feasible" bson:"feasible"`
	Bags     int           `json:"bags" bson:"bags"`
	Width    int           `json:"width" bson:"width"`
	Cached   bool          `json:"cached" bson:"cached"`
	Duration time.Duration `json:"duration" bson:"duration"`
	Error    string        `json:"error,omitempty" bson:"error,omitempty"`
}
