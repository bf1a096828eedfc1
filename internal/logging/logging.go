// Package logging builds the zap loggers used across the CLI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a sugared logger writing to stderr so structured output on
// stdout (tables, JSON envelopes) stays clean. With verbose set the level
// drops to debug and output uses the human-readable development encoder.
func New(verbose bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if verbose {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stderr"}
		z.ErrorOutputPaths = []string{"stderr"}
		logger, err = z.Build()
	} else {
		z := zap.NewProductionConfig()
		z.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		z.OutputPaths = []string{"stderr"}
		z.ErrorOutputPaths = []string{"stderr"}
		logger, err = z.Build()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	zap.ReplaceGlobals(logger)
	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything. Used in tests and as the
// default when a component is constructed without one.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
