package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/edsim/edsim/sim"
)

// Environment variables consulted when the matching flag is not set.
const (
	envConfigPath = "EDSIM_CONFIG"
	envLogLevel   = "EDSIM_LOG"
)

// ColorDurations is the per-color block of a scenario file.
type ColorDurations struct {
	White  time.Duration `yaml:"white"`
	Yellow time.Duration `yaml:"yellow"`
	Red    time.Duration `yaml:"red"`
}

// Scenario represents a scenario YAML file. Omitted keys keep the built-in
// defaults. All keys must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Rooms        int            `yaml:"rooms"`
	Patients     int            `yaml:"patients"`
	Interarrival time.Duration  `yaml:"interarrival"`
	Triage       time.Duration  `yaml:"triage"`
	TickInterval time.Duration  `yaml:"tick_interval"`
	Treatment    ColorDurations `yaml:"treatment"`
	Timeout      ColorDurations `yaml:"timeout"`
	Start        string         `yaml:"start"` // HH:MM
	End          string         `yaml:"end"`   // HH:MM
}

func scenarioFromConfig(c sim.Config) Scenario {
	return Scenario{
		Rooms:        c.TotalRooms,
		Patients:     c.NumPatients,
		Interarrival: c.Interarrival,
		Triage:       c.TriageDuration,
		TickInterval: c.TickInterval,
		Treatment:    ColorDurations(c.Treatment),
		Timeout:      ColorDurations(c.Timeout),
		Start:        c.Start.Format("15:04"),
		End:          c.End.Format("15:04"),
	}
}

// Config converts the scenario into engine configuration.
func (s Scenario) Config() (sim.Config, error) {
	start, err := parseClock(s.Start)
	if err != nil {
		return sim.Config{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseClock(s.End)
	if err != nil {
		return sim.Config{}, fmt.Errorf("end: %w", err)
	}
	return sim.Config{
		TotalRooms:     s.Rooms,
		NumPatients:    s.Patients,
		Interarrival:   s.Interarrival,
		TriageDuration: s.Triage,
		TickInterval:   s.TickInterval,
		Treatment:      sim.ColorDurations(s.Treatment),
		Timeout:        sim.ColorDurations(s.Timeout),
		Start:          start,
		End:            end,
	}, nil
}

// parseClock parses an HH:MM wall-clock time onto the simulation's reference day.
func parseClock(v string) (time.Time, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q (want HH:MM): %w", v, err)
	}
	return sim.ClockTime(t.Hour(), t.Minute()), nil
}

// loadScenario parses a scenario file over the built-in defaults.
// Uses strict field checking: typos must cause errors.
// An empty path yields the defaults unchanged.
func loadScenario(path string) (Scenario, error) {
	sc := scenarioFromConfig(sim.DefaultConfig())
	if path == "" {
		return sc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return Scenario{}, fmt.Errorf("parse scenario file %s: %w", path, err)
	}
	return sc, nil
}

// loadEnvFile loads KEY=VALUE pairs into the process environment.
// A missing file is not an error; variables already set are not overridden.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logrus.Debugf("env file %s not found, relying on environment variables", path)
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	logrus.Debugf("Loaded env file %s", path)
	return nil
}
