// Command emicast forecasts monthly emissions of a single gas from a
// CSV export of transaction level records. Configuration comes from
// EMICAST_ prefixed environment variables.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	emicast "github.com/carbonatlas/go-emicast"
	"github.com/carbonatlas/go-emicast/forecast"
	"github.com/goccy/go-json"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/profile"
)

type Config struct {
	CSVPath    string `envconfig:"CSV_PATH" required:"true"`
	Gas        string `envconfig:"GAS" default:"co2"`
	TargetYear int    `envconfig:"TARGET_YEAR" required:"true"`
	PlotPath   string `envconfig:"PLOT_PATH"`
	ReportPath string `envconfig:"REPORT_PATH"`
	ModelPath  string `envconfig:"MODEL_PATH"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	Profile    bool   `envconfig:"PROFILE"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("EMICAST", &cfg); err != nil {
		slog.Error("unable to load config from env", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.LogLevel)

	if cfg.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(cfg); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func run(cfg Config) error {
	opt := emicast.NewDefaultOptions()
	opt.Gas = cfg.Gas
	opt.TargetYear = cfg.TargetYear

	p, err := emicast.New(opt)
	if err != nil {
		return err
	}

	report, err := p.Run(cfg.CSVPath)
	if err != nil {
		return err
	}

	if err := report.WriteSummary(os.Stdout); err != nil {
		return err
	}

	if cfg.PlotPath != "" && report.Results != nil {
		if err := p.PlotFit(report, cfg.PlotPath); err != nil {
			return err
		}
		slog.Info("wrote forecast plot", "path", cfg.PlotPath)
	}

	if cfg.ReportPath != "" {
		if err := writeJSON(cfg.ReportPath, report); err != nil {
			return err
		}
		slog.Info("wrote report", "path", cfg.ReportPath)
	}

	if cfg.ModelPath != "" {
		f, ok := p.Predictor().(*forecast.Forecast)
		if !ok {
			return fmt.Errorf("predictor does not expose a serializable model")
		}
		model, err := f.Model()
		if err != nil {
			return err
		}
		if err := writeJSON(cfg.ModelPath, model); err != nil {
			return err
		}
		slog.Info("wrote model", "path", cfg.ModelPath)
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
