// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logger holds the process-wide structured logger. Until Initialize
// runs, Logger discards everything.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names.
const (
	FieldFile     = "file"
	FieldLine     = "line"
	FieldColumn   = "column"
	FieldType     = "type"
	FieldCount    = "count"
	FieldStatus   = "status"
	FieldCommand  = "command"
	FieldDuration = "duration_ms"
)

// Logger is the global logger instance.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize installs a logger writing to stderr. Stdout is left for
// command output. verbose lowers the level from warn to debug.
func Initialize(jsonOutput, verbose bool) error {
	Logger = New(zapcore.Lock(os.Stderr), jsonOutput, verbose)
	return nil
}

// New builds a logger writing to w.
func New(w zapcore.WriteSyncer, jsonOutput, verbose bool) *zap.SugaredLogger {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	return zap.New(zapcore.NewCore(encoder, w, level)).Sugar()
}

// ComponentLogger returns a logger named for one component.
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
