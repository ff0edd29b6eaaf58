package sim

import (
	"errors"
	"fmt"
	"time"
)

// DefaultTickInterval is the cadence of the periodic room re-check.
// It is independent of the inter-arrival interval.
const DefaultTickInterval = 5 * time.Minute

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid simulation config")

// ColorDurations groups one duration per waiting color.
type ColorDurations struct {
	White  time.Duration
	Yellow time.Duration
	Red    time.Duration
}

// For returns the duration configured for s. Only WHITE, YELLOW and RED
// have a configured value; ok is false for every other state.
func (d ColorDurations) For(s Severity) (dur time.Duration, ok bool) {
	switch s {
	case SeverityWhite:
		return d.White, true
	case SeverityYellow:
		return d.Yellow, true
	case SeverityRed:
		return d.Red, true
	default:
		return 0, false
	}
}

// Config groups every parameter of a simulation run.
type Config struct {
	TotalRooms     int           // treatment rooms (0 = nobody is ever admitted)
	NumPatients    int           // patients to generate (upper bound)
	Interarrival   time.Duration // fixed gap between consecutive arrivals (must be > 0)
	TriageDuration time.Duration // ARRIVAL → TRIAGE delay
	TickInterval   time.Duration // periodic room re-check (0 = DefaultTickInterval)

	Treatment ColorDurations // time spent in a room, per color at admission
	Timeout   ColorDurations // waiting limit, per color

	Start time.Time // first arrival and first tick
	End   time.Time // no arrivals at or after End; ticks stop past End
}

// DefaultConfig returns the reference department: 3 rooms, 120 patients
// arriving every 5 minutes between 08:00 and 20:00.
func DefaultConfig() Config {
	return Config{
		TotalRooms:     3,
		NumPatients:    120,
		Interarrival:   5 * time.Minute,
		TriageDuration: 5 * time.Minute,
		TickInterval:   DefaultTickInterval,
		Treatment: ColorDurations{
			White:  10 * time.Minute,
			Yellow: 15 * time.Minute,
			Red:    30 * time.Minute,
		},
		Timeout: ColorDurations{
			White:  60 * time.Minute,
			Yellow: 30 * time.Minute,
			Red:    30 * time.Minute,
		},
		Start: ClockTime(8, 0),
		End:   ClockTime(20, 0),
	}
}

// ClockTime returns hh:mm on the simulation's reference day.
func ClockTime(hour, minute int) time.Time {
	return time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC)
}

// Validate checks that the configuration describes a finite, meaningful run.
// Zero rooms is allowed.
func (c Config) Validate() error {
	if c.TotalRooms < 0 {
		return fmt.Errorf("%w: TotalRooms must be >= 0, got %d", ErrInvalidConfig, c.TotalRooms)
	}
	if c.NumPatients < 0 {
		return fmt.Errorf("%w: NumPatients must be >= 0, got %d", ErrInvalidConfig, c.NumPatients)
	}
	if c.Interarrival <= 0 {
		return fmt.Errorf("%w: Interarrival must be > 0, got %s", ErrInvalidConfig, c.Interarrival)
	}
	if c.TriageDuration < 0 {
		return fmt.Errorf("%w: TriageDuration must be >= 0, got %s", ErrInvalidConfig, c.TriageDuration)
	}
	// cron.Every truncates to whole seconds.
	if c.TickInterval != 0 && (c.TickInterval < time.Second || c.TickInterval%time.Second != 0) {
		return fmt.Errorf("%w: TickInterval must be a positive whole number of seconds, got %s", ErrInvalidConfig, c.TickInterval)
	}
	for _, s := range []Severity{SeverityWhite, SeverityYellow, SeverityRed} {
		if d, _ := c.Treatment.For(s); d < 0 {
			return fmt.Errorf("%w: treatment duration for %s must be >= 0, got %s", ErrInvalidConfig, s, d)
		}
		if d, _ := c.Timeout.For(s); d < 0 {
			return fmt.Errorf("%w: timeout for %s must be >= 0, got %s", ErrInvalidConfig, s, d)
		}
	}
	if c.Start.IsZero() || c.End.IsZero() {
		return fmt.Errorf("%w: Start and End must be set", ErrInvalidConfig)
	}
	if !c.End.After(c.Start) {
		return fmt.Errorf("%w: End (%s) must be after Start (%s)", ErrInvalidConfig, c.End.Format("15:04"), c.Start.Format("15:04"))
	}
	return nil
}

func (c Config) tickInterval() time.Duration {
	if c.TickInterval == 0 {
		return DefaultTickInterval
	}
	return c.TickInterval
}
