package cmd

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vkozyrev/mcp-gerrit/internal/config"
	"github.com/vkozyrev/mcp-gerrit/internal/gerrit"
)

// loadConfig loads and validates the config, providing a user-friendly error.
// Validation failures here are the fatal configuration errors: commands
// return them and the process exits non-zero before any outbound call.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w\nRun `mcp-gerrit init` to create a config file", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs always go to stderr (stdout is
// reserved for the MCP stdio protocol); GERRIT_LOG_FILE mirrors them to a
// file. --verbose switches to debug level with a console encoder.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if cfg != nil && cfg.LogFile != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.LogFile)
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return zc.Build()
}

// newClient builds the Gerrit client from a validated config.
func newClient(cfg *config.Config, log *zap.Logger) *gerrit.Client {
	return gerrit.New(gerrit.Options{
		BaseURL:   cfg.BaseURL(),
		User:      cfg.User,
		Password:  cfg.HTTPPassword,
		VerifySSL: cfg.VerifySSL,
		Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		Logger:    log.Named("gerrit"),
	})
}
