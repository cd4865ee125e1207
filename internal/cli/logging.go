package cli

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
	"tce-quiz-dashboard/internal/config"
)

// setupLogging tees the standard logger to stdout and a rotating file when
// log.file is configured. The returned func flushes and closes the file.
func setupLogging(cfg config.Config) func() {
	if cfg.Log.File == "" {
		return func() {}
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() {
		log.SetOutput(os.Stderr)
		_ = rotator.Close()
	}
}
