package music

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/focusplug/focusplug/internal/apperr"
)

var (
	errTrackNotFound = &apperr.Error{Message: "no track with id %s"}
	errNoTrack       = &apperr.Error{Message: "no track selected"}
)

// Player walks the queue formed by the focus playlists, the local tracks and
// the recent tracks, in that order.
type Player struct {
	playlists []Track
	local     []Track
	recent    []Track
	current   *Track
	playing   bool
}

// NewPlayer creates a stopped player over the built-in lists and local.
func NewPlayer(local []Track) *Player {
	return &Player{
		playlists: FocusPlaylists(),
		local:     local,
		recent:    RecentTracks(),
	}
}

// Queue returns every track in playback order.
func (p *Player) Queue() []Track {
	return slices.Concat(p.playlists, p.local, p.recent)
}

// Playlists returns the focus playlists.
func (p *Player) Playlists() []Track {
	return slices.Clone(p.playlists)
}

// Local returns the scanned local tracks.
func (p *Player) Local() []Track {
	return slices.Clone(p.local)
}

// Recent returns the recent tracks.
func (p *Player) Recent() []Track {
	return slices.Clone(p.recent)
}

// Current returns the selected track, if any.
func (p *Player) Current() (Track, bool) {
	if p.current == nil {
		return Track{}, false
	}

	return *p.current, true
}

// Playing reports whether the selected track is playing.
func (p *Player) Playing() bool {
	return p.playing
}

// Select makes the track with id current and starts playing it.
func (p *Player) Select(id uuid.UUID) error {
	queue := p.Queue()

	i := slices.IndexFunc(queue, func(t Track) bool {
		return t.ID == id
	})
	if i < 0 {
		return errTrackNotFound.Fmt(id)
	}

	p.selectTrack(queue[i])

	return nil
}

func (p *Player) selectTrack(t Track) {
	p.current = &t

	if p.playing {
		p.Stop()
	}

	_ = p.Play()
}

// Play starts the selected track.
func (p *Player) Play() error {
	if p.current == nil {
		return errNoTrack
	}

	if p.current.Streamable {
		slog.Info(
			"now streaming",
			slog.String("title", p.current.Title),
			slog.String("artist", p.current.Artist),
		)
	} else {
		slog.Info(
			"now playing",
			slog.String("title", p.current.Title),
			slog.String("path", p.current.FilePath),
		)
	}

	p.playing = true

	return nil
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.playing = false
}

// Stop stops playback. The selection is kept.
func (p *Player) Stop() {
	p.playing = false
}

// Toggle pauses a playing track or plays a paused one.
func (p *Player) Toggle() error {
	if p.playing {
		p.Pause()
		return nil
	}

	return p.Play()
}

// Next selects the track after the current one. It does nothing at the end
// of the queue or when no track is selected.
func (p *Player) Next() {
	p.step(1)
}

// Previous selects the track before the current one. It does nothing at the
// start of the queue or when no track is selected.
func (p *Player) Previous() {
	p.step(-1)
}

func (p *Player) step(delta int) {
	if p.current == nil {
		return
	}

	queue := p.Queue()

	i := slices.IndexFunc(queue, func(t Track) bool {
		return t.ID == p.current.ID
	})
	if i < 0 {
		return
	}

	j := i + delta
	if j < 0 || j >= len(queue) {
		return
	}

	p.selectTrack(queue[j])
}
