// Tracks the simulation-wide outcome counters: treated, abandoned and dead
// patients, plus the figures needed to check conservation.

package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Metrics aggregates the outcome of a simulation run for final reporting.
// Counters only ever increase during a run.
type Metrics struct {
	RunID        string    // Unique identifier of the run, stamped on reports
	Generated    int       // Patients created at initialization
	Treated      int       // Patients discharged after treatment
	Abandoned    int       // Patients who timed out while WHITE
	Dead         int       // Patients who timed out while RED
	SimEndedTime time.Time // Timestamp of the last dispatched event
}

// NewMetrics returns zeroed counters with a fresh run ID.
func NewMetrics() *Metrics {
	return &Metrics{RunID: uuid.NewString()}
}

// Resolved is the number of patients that reached a terminal outcome.
func (m *Metrics) Resolved() int {
	return m.Treated + m.Abandoned + m.Dead
}

// InSystem is the number of generated patients without a terminal outcome.
func (m *Metrics) InSystem() int {
	return m.Generated - m.Resolved()
}

// MetricsOutput is the JSON form of Metrics.
type MetricsOutput struct {
	RunID        string  `json:"run_id"`
	Generated    int     `json:"generated_patients"`
	Treated      int     `json:"treated_patients"`
	Abandoned    int     `json:"abandoned_patients"`
	Dead         int     `json:"dead_patients"`
	InSystem     int     `json:"patients_in_system"`
	SimEndedTime string  `json:"sim_ended_time"`
	WallTimeS    float64 `json:"simulation_duration_s"`
}

// Output converts the counters into their report form.
func (m *Metrics) Output(wallStart time.Time) MetricsOutput {
	return MetricsOutput{
		RunID:        m.RunID,
		Generated:    m.Generated,
		Treated:      m.Treated,
		Abandoned:    m.Abandoned,
		Dead:         m.Dead,
		InSystem:     m.InSystem(),
		SimEndedTime: m.SimEndedTime.Format("15:04:05"),
		WallTimeS:    time.Since(wallStart).Seconds(),
	}
}

// Print displays the counters at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Patients Generated : %d\n", m.Generated)
	fmt.Printf("Treated            : %d\n", m.Treated)
	fmt.Printf("Abandoned          : %d\n", m.Abandoned)
	fmt.Printf("Dead               : %d\n", m.Dead)
	if n := m.InSystem(); n > 0 {
		fmt.Printf("Still In System    : %d\n", n)
	}
}

// SaveResults prints the metrics JSON to stdout and, when outputFilePath
// is non-empty, writes it to that file as well.
func (m *Metrics) SaveResults(wallStart time.Time, outputFilePath string) error {
	data, err := json.MarshalIndent(m.Output(wallStart), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	fmt.Println("=== Simulation Metrics ===")
	fmt.Println(string(data))

	if outputFilePath == "" {
		return nil
	}
	if err := os.WriteFile(outputFilePath, data, 0644); err != nil {
		return fmt.Errorf("write metrics to %s: %w", outputFilePath, err)
	}
	logrus.Infof("Metrics written to: %s", outputFilePath)
	return nil
}
