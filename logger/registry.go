package logger

import "sync"

// components caches the loggers handed out by Get. Replacing the global
// logger clears it so later calls pick up the new level and format.
var components sync.Map

// Get returns the logger for a component such as "dispatch" or "proxy": the
// global logger tagged with component=name, unless one was registered.
func Get(name string) *Logger {
	if l, ok := components.Load(name); ok {
		return l.(*Logger)
	}
	l, _ := components.LoadOrStore(name, GetGlobalLogger().WithComponent(name))
	return l.(*Logger)
}

// Register pins the logger Get returns for name, for example a debug
// logger for the one provider being investigated.
func Register(name string, l *Logger) {
	components.Store(name, l)
}

// Reset forgets every cached and registered component logger.
func Reset() {
	components.Clear()
}
