package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/tixroi/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Strategy, convey.ShouldEqual, "cohort")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
				convey.So(cfg.Catalog, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TIXROI_STRATEGY", "regression")
			_ = os.Setenv("TIXROI_QUEUE_SIZE", "64")
			_ = os.Setenv("TIXROI_WORKER_COUNT", "3")
			_ = os.Setenv("TIXROI_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Strategy, convey.ShouldEqual, "regression")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 64)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(t, `
strategy: regression
top_n: 3
metrics_file: /tmp/tixroi.prom
catalog:
  - id: 1
    name: "Rock Concert A"
    category: Concert
    venue: "Stadium X"
    original_price: 100
    current_price: 130
    resale_prices: [120, 150, 200, 180]
    dates: ["2024-01-01", "2024-01-05", "2024-01-10", "2024-01-15"]
  - id: 2
    name: "Football Match B"
    category: Sports
    venue: "Arena Y"
    original_price: 80.5
    resale_prices: [90]
    dates: ["2024-02-01"]
`)
			_ = os.Setenv("TIXROI_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load settings and the catalog", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Strategy, convey.ShouldEqual, "regression")
				convey.So(cfg.TopN, convey.ShouldEqual, 3)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/tixroi.prom")
				convey.So(cfg.Catalog, convey.ShouldHaveLength, 2)
				convey.So(cfg.Catalog[0].ResalePrices, convey.ShouldResemble, []float64{120, 150, 200, 180})
				convey.So(cfg.Catalog[1].OriginalPrice, convey.ShouldEqual, 80.5)

				events, err := cfg.Events()
				convey.So(err, convey.ShouldBeNil)
				convey.So(events[0].Dates, convey.ShouldHaveLength, 4)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, "strategy: regression\ntop_n: 3\n")
			_ = os.Setenv("TIXROI_CONFIG", tmpFile)
			_ = os.Setenv("TIXROI_TOP_N", "7")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Strategy, convey.ShouldEqual, "regression") // From file
				convey.So(cfg.TopN, convey.ShouldEqual, 7)                // Overridden by env
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("TIXROI_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			cfg, err := config.LoadFile(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the log level is given in upper case", func() {
			_ = os.Setenv("TIXROI_LOG_LEVEL", "DEBUG")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it is normalised", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with an unknown strategy", func() {
			_ = os.Setenv("TIXROI_STRATEGY", "oracle")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("TIXROI_QUEUE_SIZE", "invalid")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"TIXROI_CONFIG",
		"TIXROI_LOG_LEVEL",
		"TIXROI_LOG_FORMAT",
		"TIXROI_STRATEGY",
		"TIXROI_WORKER_COUNT",
		"TIXROI_QUEUE_SIZE",
		"TIXROI_TOP_N",
		"TIXROI_METRICS_FILE",
	} {
		_ = os.Unsetenv(key)
	}
}
