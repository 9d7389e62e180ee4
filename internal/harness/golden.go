package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/reframe/internal/lattice"
)

// traceSnapshot is the serialized form of a decision trace. Field order is
// fixed by struct declaration, so marshaling is deterministic.
type traceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Trace        []TraceEvent `json:"trace"`
}

// RunWithGolden executes a scenario, fails the test on any expect_tag
// violation, and compares the decision trace against the committed golden
// file (testdata/golden/<name>.golden). Golden files are the source of
// truth for which tag survives each step.
func RunWithGolden(t *testing.T, s *Scenario, lat *lattice.Lattice) {
	t.Helper()

	result, err := Run(s, lat)
	if err != nil {
		t.Fatalf("scenario %s: %v", s.Name, err)
	}
	for _, failure := range result.Failures {
		t.Errorf("scenario %s: %s", s.Name, failure)
	}

	data, err := marshalTrace(traceSnapshot{ScenarioName: s.Name, Trace: result.Trace})
	if err != nil {
		t.Fatalf("scenario %s: marshal trace: %v", s.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, data)
}

// marshalTrace produces indented JSON without HTML escaping, with a
// trailing newline so golden files end the way editors save them.
func marshalTrace(snap traceSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
