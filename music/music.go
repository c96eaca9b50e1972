// Package music manages the background music queue. Playback is simulated:
// tracks are announced in the log rather than decoded
package music

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
)

const localArtist = "Local Artist"

var audioExtensions = []string{".mp3", ".m4a", ".wav", ".aiff"}

// Track is a playable item of the queue.
type Track struct {
	Title      string        `json:"title"`
	Artist     string        `json:"artist"`
	FilePath   string        `json:"file_path,omitempty"`
	Duration   time.Duration `json:"duration"`
	ID         uuid.UUID     `json:"id"`
	Streamable bool          `json:"streamable"`
}

func streamed(title, artist string, seconds int) Track {
	return Track{
		ID:         uuid.New(),
		Title:      title,
		Artist:     artist,
		Duration:   time.Duration(seconds) * time.Second,
		Streamable: true,
	}
}

// FocusPlaylists returns the built-in streamed playlists.
func FocusPlaylists() []Track {
	return []Track{
		streamed("Deep Focus", "Focus Plug", 3600),
		streamed("Lo-Fi Chill", "Study Beats", 2400),
		streamed("White Noise", "Nature Sounds", 1800),
		streamed("Brain Food", "Productivity Mix", 2700),
	}
}

// RecentTracks returns the built-in recently played tracks.
func RecentTracks() []Track {
	return []Track{
		streamed("Concentration", "Mind Music", 1500),
		streamed("Flow State", "Focus Masters", 2000),
	}
}

// Scan walks dir for audio files. Tracks are returned in natural path order.
// A missing dir yields no tracks.
func Scan(dir string) ([]Track, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}

			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if slices.Contains(audioExtensions, ext) {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return 0
		}
	})

	tracks := make([]Track, 0, len(paths))

	for _, path := range paths {
		base := filepath.Base(path)

		tracks = append(tracks, Track{
			ID:       uuid.New(),
			Title:    strings.TrimSuffix(base, filepath.Ext(base)),
			Artist:   localArtist,
			FilePath: path,
		})
	}

	return tracks, nil
}
