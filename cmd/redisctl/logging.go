package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BackupLogger is used before flags are parsed and for fatal errors that escape command execution.
var BackupLogger = func() *zap.SugaredLogger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger.Sugar()
}()

type LoggingOptions struct {
	Level  string
	Format string
}

func (o *LoggingOptions) AddCLIFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.StringVar(&o.Format, "log-format", "console", "Log format: console or json")
}

func (o *LoggingOptions) CreateLogger() (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(o.Level)
	if err != nil {
		return nil, err
	}
	var config zap.Config
	switch o.Format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.DisableStacktrace = true
	case "json":
		config = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", o.Format)
	}
	config.Level = zap.NewAtomicLevelAt(level)
	// Command output goes to stdout, logs stay out of its way.
	config.OutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
