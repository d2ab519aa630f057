package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/medalhist/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "athlete_events.csv")
				convey.So(cfg.Thresholds, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MEDALHIST_ADDR", ":8080")
			_ = os.Setenv("MEDALHIST_DATA_PATH", "/data/athletes.csv")
			_ = os.Setenv("MEDALHIST_COUNTRY", "Germany")
			_ = os.Setenv("MEDALHIST_THRESHOLDS", "30")
			_ = os.Setenv("MEDALHIST_ROW_POLICY", "fail")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/data/athletes.csv")
				convey.So(cfg.Country, convey.ShouldEqual, "Germany")
				convey.So(cfg.Thresholds, convey.ShouldEqual, 30)
				convey.So(cfg.RowPolicy, convey.ShouldEqual, config.RowPolicyFail)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
data_path: "./testdata/events.csv"
country: "Norway"
medal_sentinel: "None"
thresholds: 10
example_count: 5
log_format: json
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MEDALHIST_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataPath, convey.ShouldEqual, "./testdata/events.csv")
				convey.So(cfg.Country, convey.ShouldEqual, "Norway")
				convey.So(cfg.MedalSentinel, convey.ShouldEqual, "None")
				convey.So(cfg.Thresholds, convey.ShouldEqual, 10)
				convey.So(cfg.ExampleCount, convey.ShouldEqual, 5)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.NiceCount, convey.ShouldEqual, 10) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
country: "Norway"
thresholds: 10
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MEDALHIST_CONFIG", tmpFile)
			_ = os.Setenv("MEDALHIST_COUNTRY", "Canada")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")     // From file
				convey.So(cfg.Country, convey.ShouldEqual, "Canada") // Overridden by env
				convey.So(cfg.Thresholds, convey.ShouldEqual, 10)    // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MEDALHIST_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MEDALHIST_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("MEDALHIST_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MEDALHIST_THRESHOLDS", "twenty")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown row policy", func() {
			_ = os.Setenv("MEDALHIST_ROW_POLICY", "coerce")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MEDALHIST_CONFIG",
		"MEDALHIST_ADDR",
		"MEDALHIST_DATA_PATH",
		"MEDALHIST_COUNTRY",
		"MEDALHIST_THRESHOLDS",
		"MEDALHIST_ROW_POLICY",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "medalhist-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
