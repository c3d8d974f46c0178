package server

import (
	"time"

	"github.com/rs/zerolog"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// consoleHook forwards log messages of a single render to its client
type consoleHook struct {
	send func(ConsoleMessage)
}

// Run implements zerolog.Hook
func (h consoleHook) Run(e *zerolog.Event, level zerolog.Level, message string) {
	if message == "" || level < zerolog.InfoLevel {
		return
	}
	h.send(ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     level.String(),
	})
}
