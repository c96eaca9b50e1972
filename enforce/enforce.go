// Package enforce implements the mechanisms that apply a block list. No
// mechanism here filters network traffic: blocking is simulated and its
// effect recorded so that other processes can report it
package enforce

import (
	"errors"
	"log/slog"
)

// Enforcer applies or clears a block list.
type Enforcer interface {
	ApplyBlockList(domains []string) error
	ClearBlockList() error
}

// Simulated logs the hosts-file entries that real enforcement would add.
type Simulated struct {
	Logger *slog.Logger
}

func (s *Simulated) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}

	return slog.Default()
}

func (s *Simulated) ApplyBlockList(domains []string) error {
	entries := make([]string, 0, len(domains)*2)

	for _, d := range domains {
		entries = append(entries, "127.0.0.1 "+d, "127.0.0.1 www."+d)
	}

	s.logger().Info(
		"blocking websites",
		slog.Int("count", len(domains)),
		slog.Any("hosts_entries", entries),
	)

	return nil
}

func (s *Simulated) ClearBlockList() error {
	s.logger().Info("unblocking all websites")

	return nil
}

// Chain applies every enforcer in order. All enforcers run even if one fails.
type Chain []Enforcer

func (c Chain) ApplyBlockList(domains []string) error {
	var errs []error

	for _, e := range c {
		errs = append(errs, e.ApplyBlockList(domains))
	}

	return errors.Join(errs...)
}

func (c Chain) ClearBlockList() error {
	var errs []error

	for _, e := range c {
		errs = append(errs, e.ClearBlockList())
	}

	return errors.Join(errs...)
}
