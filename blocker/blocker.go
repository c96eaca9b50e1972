// Package blocker decides when the block list is enforced: during focus
// sessions, and again after a break window runs out
package blocker

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/focusplug/focusplug/enforce"
	"github.com/focusplug/focusplug/internal/clock"
	"github.com/focusplug/focusplug/store"
)

// DefaultBreakWindow is how long blocking stays suspended after a break
// request.
const DefaultBreakWindow = 5 * time.Minute

// DefaultSites is the block list of a fresh installation.
var DefaultSites = []string{
	"twitter.com",
	"facebook.com",
	"instagram.com",
	"youtube.com",
	"reddit.com",
	"tiktok.com",
	"netflix.com",
}

// Persister saves settings without waiting for the write to complete.
type Persister interface {
	Save(entries map[string]any)
}

// State is a copy of the blocker state.
type State struct {
	PendingReblockAt *time.Time `json:"pending_reblock_at,omitempty"`
	Domains          []string   `json:"domains"`
	Enabled          bool       `json:"enabled"`
	Blocking         bool       `json:"blocking"`
}

// Blocker owns the block list and the enabled and blocking flags. Like
// timer.Timer, its methods expect to be serialized by the caller, and the
// deferred re-block acquires the Locker given with WithLocker.
type Blocker struct {
	clock       clock.Clock
	enforcer    enforce.Enforcer
	persister   Persister
	locker      sync.Locker
	onChange    func(State)
	reblock     clock.Timer
	reblockAt   time.Time
	domains     []string
	breakWindow time.Duration
	generation  uint64
	enabled     bool
	blocking    bool
}

// Option configures a Blocker.
type Option func(*Blocker)

// WithLocker sets the lock acquired by the deferred re-block.
func WithLocker(l sync.Locker) Option {
	return func(b *Blocker) {
		b.locker = l
	}
}

// WithChangeHandler registers fn to receive the state after every change.
func WithChangeHandler(fn func(State)) Option {
	return func(b *Blocker) {
		b.onChange = fn
	}
}

// WithBreakWindow overrides DefaultBreakWindow.
func WithBreakWindow(d time.Duration) Option {
	return func(b *Blocker) {
		if d > 0 {
			b.breakWindow = d
		}
	}
}

// WithDomains sets the initial block list. Entries are normalized and
// deduplicated.
func WithDomains(domains []string) Option {
	return func(b *Blocker) {
		b.domains = normalizeAll(domains)
	}
}

// WithEnabled sets the initial enabled flag.
func WithEnabled(enabled bool) Option {
	return func(b *Blocker) {
		b.enabled = enabled
	}
}

// New creates an enabled blocker with the default block list. The persister
// may be nil.
func New(
	clk clock.Clock,
	enforcer enforce.Enforcer,
	persister Persister,
	opts ...Option,
) *Blocker {
	b := &Blocker{
		clock:       clk,
		enforcer:    enforcer,
		persister:   persister,
		locker:      &sync.Mutex{},
		breakWindow: DefaultBreakWindow,
		domains:     slices.Clone(DefaultSites),
		enabled:     true,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// BlockWebsites enforces the block list unless the blocker is disabled. It
// supersedes a pending re-block.
func (b *Blocker) BlockWebsites() {
	if !b.enabled {
		return
	}

	b.cancelReblock()
	b.blocking = true
	b.apply()
	b.changed()
}

// UnblockAll clears enforcement whether or not the blocker is enabled, and
// cancels a pending re-block.
func (b *Blocker) UnblockAll() {
	b.cancelReblock()
	b.blocking = false

	err := b.enforcer.ClearBlockList()
	if err != nil {
		slog.Error(
			"enforcement failed",
			slog.Any("error", ErrEnforcementFailure.Fmt("clear").Wrap(err)),
		)
	}

	b.changed()
}

// BreakMode unblocks now and blocks again once the break window elapses.
// Calling it again restarts the window.
func (b *Blocker) BreakMode() {
	b.UnblockAll()

	gen := b.generation

	b.reblockAt = b.clock.Now().Add(b.breakWindow)
	b.reblock = b.clock.AfterFunc(b.breakWindow, func() {
		b.locker.Lock()
		defer b.locker.Unlock()

		if gen != b.generation {
			return
		}

		b.reblock = nil
		b.reblockAt = time.Time{}

		slog.Info("break window over")

		b.BlockWebsites()
	})

	slog.Info(
		"break started",
		slog.Time("reblock_at", b.reblockAt),
	)

	b.changed()
}

// AddWebsite normalizes raw and appends it to the block list. It reports
// whether the list changed.
func (b *Blocker) AddWebsite(raw string) bool {
	domain := Normalize(raw)
	if domain == "" || b.contains(domain) {
		return false
	}

	b.domains = append(b.domains, domain)
	b.listChanged()

	return true
}

// RemoveWebsite removes domain from the block list. It reports whether the
// list changed.
func (b *Blocker) RemoveWebsite(domain string) bool {
	domain = Normalize(domain)

	i := slices.IndexFunc(b.domains, func(d string) bool {
		return strings.EqualFold(d, domain)
	})
	if i < 0 {
		return false
	}

	b.domains = slices.Delete(b.domains, i, i+1)
	b.listChanged()

	return true
}

// UpdateBlockedWebsites replaces the block list with the domains in text, one
// per line.
func (b *Blocker) UpdateBlockedWebsites(text string) {
	b.domains = normalizeAll(strings.Split(text, "\n"))
	b.listChanged()
}

// SetEnabled toggles the blocker. Disabling it clears enforcement at once.
func (b *Blocker) SetEnabled(enabled bool) {
	b.enabled = enabled

	b.save(map[string]any{
		store.KeyWebsiteBlockerEnabled: enabled,
	})

	if !enabled {
		b.UnblockAll()
		return
	}

	b.changed()
}

// Websites returns a copy of the block list.
func (b *Blocker) Websites() []string {
	return slices.Clone(b.domains)
}

// State returns a copy of the blocker state.
func (b *Blocker) State() State {
	s := State{
		Domains:  slices.Clone(b.domains),
		Enabled:  b.enabled,
		Blocking: b.blocking,
	}

	if b.reblock != nil {
		at := b.reblockAt
		s.PendingReblockAt = &at
	}

	return s
}

// Close cancels a pending re-block.
func (b *Blocker) Close() {
	b.cancelReblock()
}

func (b *Blocker) cancelReblock() {
	if b.reblock != nil {
		b.reblock.Stop()
		b.reblock = nil
	}

	b.reblockAt = time.Time{}
	b.generation++
}

func (b *Blocker) apply() {
	err := b.enforcer.ApplyBlockList(slices.Clone(b.domains))
	if err != nil {
		slog.Error(
			"enforcement failed",
			slog.Any("error", ErrEnforcementFailure.Fmt("apply").Wrap(err)),
		)
	}
}

func (b *Blocker) listChanged() {
	b.save(map[string]any{
		store.KeyBlockedWebsites: slices.Clone(b.domains),
	})

	if b.blocking {
		b.apply()
	}

	b.changed()
}

func (b *Blocker) changed() {
	if b.onChange != nil {
		b.onChange(b.State())
	}
}

func (b *Blocker) save(entries map[string]any) {
	if b.persister != nil {
		b.persister.Save(entries)
	}
}

func (b *Blocker) contains(domain string) bool {
	return slices.ContainsFunc(b.domains, func(d string) bool {
		return strings.EqualFold(d, domain)
	})
}

// Normalize trims raw and strips a leading scheme and "www." prefix. The case
// of the domain itself is kept.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)

	for _, prefix := range []string{"https://", "http://", "www."} {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = s[len(prefix):]
		}
	}

	return strings.TrimSpace(s)
}

func normalizeAll(raw []string) []string {
	domains := make([]string, 0, len(raw))

	for _, r := range raw {
		d := Normalize(r)
		if d == "" {
			continue
		}

		if slices.ContainsFunc(domains, func(existing string) bool {
			return strings.EqualFold(existing, d)
		}) {
			continue
		}

		domains = append(domains, d)
	}

	return domains
}
