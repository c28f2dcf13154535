package rclogger

import "github.com/aristanetworks/glog"

// debugVerbosity is the glog.V() level gated behind -log-level=DEBUG.
const debugVerbosity glog.Level = 1

// Glog implements Logger on top of github.com/aristanetworks/glog.
type Glog struct {
	level Level
}

// NewGlog returns a Logger whose minimum enabled level is level. Debug
// messages are only emitted when level is LevelDebug.
func NewGlog(level Level) *Glog {
	return &Glog{level: level}
}

func (g *Glog) Debug(args ...interface{}) {
	if g.level <= LevelDebug {
		glog.V(debugVerbosity).Info(args...)
	}
}

func (g *Glog) Debugf(format string, args ...interface{}) {
	if g.level <= LevelDebug {
		glog.V(debugVerbosity).Infof(format, args...)
	}
}

func (g *Glog) Info(args ...interface{}) {
	if g.level <= LevelInfo {
		glog.Info(args...)
	}
}

func (g *Glog) Infof(format string, args ...interface{}) {
	if g.level <= LevelInfo {
		glog.Infof(format, args...)
	}
}

func (g *Glog) Warning(args ...interface{}) {
	if g.level <= LevelWarning {
		glog.Warning(args...)
	}
}

func (g *Glog) Warningf(format string, args ...interface{}) {
	if g.level <= LevelWarning {
		glog.Warningf(format, args...)
	}
}

func (g *Glog) Error(args ...interface{}) {
	glog.Error(args...)
}

func (g *Glog) Errorf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}

func (g *Glog) Fatal(args ...interface{}) {
	glog.Fatal(args...)
}

func (g *Glog) Fatalf(format string, args ...interface{}) {
	glog.Fatalf(format, args...)
}
