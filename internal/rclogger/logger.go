// Package rclogger provides a small leveled-logging interface so the rest
// of the pipeline does not depend directly on github.com/aristanetworks/glog.
package rclogger

// Logger is a generic leveled logger, modeled on goarista's logger.Logger
// (which abstracts golang/glog vs aristanetworks/glog) but extended with a
// Debug level selectable via the CLI's -log-level flag.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warning(args ...interface{})
	Warningf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
}

// Level is one of the four levels selectable by the -log-level flag.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// ParseLevel maps a -log-level flag value to a Level. Unrecognized values
// default to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG":
		return LevelDebug
	case "WARNING":
		return LevelWarning
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}
