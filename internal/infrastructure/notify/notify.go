// Package notify routes user-visible notifications. The gateway has no UI
// of its own, so notices land in the structured log where the shell (or an
// operator) picks them up.
package notify

import "github.com/rs/zerolog"

// Log emits notifications through zerolog. Success notices log at info,
// error notices at warn; both carry a "notice" marker so they can be
// filtered from ordinary service logs.
type Log struct {
	logger zerolog.Logger
}

func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger}
}

func (n *Log) Success(msg string) {
	n.logger.Info().Str("notice", "success").Msg(msg)
}

func (n *Log) Error(msg string) {
	n.logger.Warn().Str("notice", "error").Msg(msg)
}
