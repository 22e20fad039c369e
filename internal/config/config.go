// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and TIXROI_* env vars.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/go-playground/validator/v10"

	"github.com/okian/tixroi/internal/domain/catalog"
	"github.com/okian/tixroi/internal/domain/model"
	"github.com/okian/tixroi/internal/domain/scoring"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Strategy selects the ROI estimator: cohort or regression.
	Strategy string `koanf:"strategy" validate:"oneof=cohort regression"`

	// WorkerCount sets the number of ranking workers.
	WorkerCount int `koanf:"worker_count" validate:"gte=1"`

	// QueueSize bounds the in-memory job queue of a ranking run.
	QueueSize int `koanf:"queue_size" validate:"gte=1"`

	// TopN is the default number of rows cmd/rank prints.
	TopN int `koanf:"top_n" validate:"gte=1"`

	// MetricsFile, when set, receives a Prometheus text dump on exit.
	MetricsFile string `koanf:"metrics_file"`

	// Catalog replaces the built-in sample catalog when non-empty.
	Catalog []EventSpec `koanf:"catalog"`
}

// EventSpec is the file representation of one catalog event.
type EventSpec struct {
	ID            int       `koanf:"id"`
	Name          string    `koanf:"name"`
	Category      string    `koanf:"category"`
	Venue         string    `koanf:"venue"`
	OriginalPrice float64   `koanf:"original_price"`
	CurrentPrice  float64   `koanf:"current_price"`
	ResalePrices  []float64 `koanf:"resale_prices"`
	Dates         []string  `koanf:"dates"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   LogFormatText,
		Strategy:    scoring.CohortStrategyName,
		WorkerCount: runtime.NumCPU(),
		QueueSize:   1024,
		TopN:        10,
	}
}

// validate reports field errors under their koanf key names.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})
	return v
}()

// Validate checks field ranges and names.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Events converts the configured catalog into domain events. Without a
// configured catalog the built-in sample is returned.
func (c *Config) Events() ([]model.Event, error) {
	if len(c.Catalog) == 0 {
		return catalog.Sample(), nil
	}
	events := make([]model.Event, len(c.Catalog))
	for i, spec := range c.Catalog {
		e, err := spec.Event()
		if err != nil {
			return nil, fmt.Errorf("%w: catalog[%d]: %w", ErrInvalidConfig, i, err)
		}
		events[i] = e
	}
	return events, nil
}

// Event converts the file entry, parsing its dates.
func (s *EventSpec) Event() (model.Event, error) {
	e := model.Event{
		ID:            s.ID,
		Name:          s.Name,
		Category:      s.Category,
		Venue:         s.Venue,
		OriginalPrice: s.OriginalPrice,
		CurrentPrice:  s.CurrentPrice,
		ResalePrices:  append([]float64(nil), s.ResalePrices...),
	}
	for _, d := range s.Dates {
		t, err := model.ParseDate(d)
		if err != nil {
			return model.Event{}, fmt.Errorf("event %d: %w", s.ID, err)
		}
		e.Dates = append(e.Dates, t)
	}
	return e, nil
}
