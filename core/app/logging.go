package app

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging redirects the log output into the given file, rotated when it grows beyond 10 MB.
func SetupLogging(filename string) io.Closer {
	logger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	log.SetOutput(logger)
	return logger
}

// DiscardLogging drops all log output.
func DiscardLogging() {
	log.SetOutput(io.Discard)
}
