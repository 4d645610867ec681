package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"exusiai.dev/cardrank/internal/app/appconfig"
	"exusiai.dev/cardrank/internal/app/appcontext"
)

func Configure(conf *appconfig.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	_ = os.Mkdir("logs", os.ModePerm)

	logFile, err := os.OpenFile("logs/app.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		log.Panic().Err(err).Msg("failed to open log file")
	}

	var level zerolog.Level
	if conf.DevMode {
		level = zerolog.TraceLevel
	} else {
		level = zerolog.DebugLevel
	}

	// stdout carries command output in CLI mode
	var out io.Writer = os.Stdout
	if conf.AppContext.Env == appcontext.EnvCLI {
		out = os.Stderr
	}
	if !conf.LogJsonStdout {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339Nano,
		}
	}

	writer := zerolog.MultiLevelWriter(logFile, out)

	log.Logger = zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(level)

	// requests that never passed the logger middleware still log
	zerolog.DefaultContextLogger = &log.Logger
}
