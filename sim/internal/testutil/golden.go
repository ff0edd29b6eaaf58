// Package testutil provides shared test infrastructure for the edsim simulator.
// It holds the golden scenario types and the loader used by sim/ tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase represents a single scenario from the golden dataset.
// Durations are whole minutes; clock times are HH:MM.
type GoldenTestCase struct {
	Name            string        `json:"name"`
	Rooms           int           `json:"rooms"`
	Patients        int           `json:"patients"`
	InterarrivalMin int           `json:"interarrival_min"`
	TriageMin       int           `json:"triage_min"`
	TickMin         int           `json:"tick_min"`
	TreatmentMin    ColorMinutes  `json:"treatment_min"`
	TimeoutMin      ColorMinutes  `json:"timeout_min"`
	Start           string        `json:"start"`
	End             string        `json:"end"`
	Allocator       string        `json:"allocator"` // "" = round robin, else the fixed color
	Metrics         GoldenMetrics `json:"metrics"`
}

// ColorMinutes holds one value per waiting color.
type ColorMinutes struct {
	White  int `json:"white"`
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

// GoldenMetrics represents the expected outcome of a golden scenario.
type GoldenMetrics struct {
	Treated   int    `json:"treated"`
	Abandoned int    `json:"abandoned"`
	Dead      int    `json:"dead"`
	SimEnded  string `json:"sim_ended"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}
