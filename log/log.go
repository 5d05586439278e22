package log

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup sends log output to a rotated file at logFilePath.
// Also prints out to console if debugMode = true, or only to console if there is no file.
func Setup(logFilePath string, debugMode bool) io.Closer {
	if logFilePath == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxBackups: 3,
		MaxAge:     28, //days
	}
	if debugMode {
		log.SetOutput(io.MultiWriter(os.Stderr, lj))
	} else {
		log.SetOutput(lj)
	}
	return lj
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetOutput is for tests that want to see what was logged.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func Println(v ...interface{}) {
	log.Println(v...)
}

func Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

func Fatal(v ...interface{}) {
	log.Fatal(v...)
}
