// Package logger provides the leveled loggers used across the migration.
// Output goes to the console and, when InitLogger is given a filename,
// to a log file as well.
package logger

import (
	"io"
	"log"
	"os"
)

var (
	InfoLog  *log.Logger
	WarnLog  *log.Logger
	ErrorLog *log.Logger
	logFile  *os.File
)

// InitLogger initializes the loggers with combined file and console output.
func InitLogger(filename string) error {
	var err error
	logFile, err = os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)
	InfoLog = log.New(multiWriter, "INFO: ", log.Ldate|log.Ltime)
	WarnLog = log.New(multiWriter, "WARN: ", log.Ldate|log.Ltime)
	ErrorLog = log.New(multiWriter, "ERROR: ", log.Ldate|log.Ltime)
	return nil
}

// Init sets up console-only loggers. Called lazily when InitLogger was not.
func Init() {
	InfoLog = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	WarnLog = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime)
	ErrorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
}

// Close releases the log file if one was opened.
func Close() {
	if logFile != nil {
		logFile.Close()
	}
}

func Infof(format string, v ...interface{}) {
	if InfoLog == nil {
		Init()
	}
	InfoLog.Printf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	if WarnLog == nil {
		Init()
	}
	WarnLog.Printf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	if ErrorLog == nil {
		Init()
	}
	ErrorLog.Printf(format, v...)
}
