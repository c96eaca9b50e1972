// Package models defines the records that focusplug persists
package models

import "time"

// Session is a finished focus session, either completed or stopped early.
type Session struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds int       `json:"duration_seconds"`
	ElapsedSeconds  int       `json:"elapsed_seconds"`
	Completed       bool      `json:"completed"`
}

// Elapsed returns the focus time recorded for the session.
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.ElapsedSeconds) * time.Second
}
