package app

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/focusplug/focusplug/internal/config"
	"github.com/focusplug/focusplug/internal/pathutil"
	"github.com/focusplug/focusplug/music"
	"github.com/focusplug/focusplug/report"
)

// scanMusicDir returns the local tracks from --dir, music.dir or the user's
// music directory, in that order of preference.
func scanMusicDir(ctx *cli.Context) ([]music.Track, error) {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return nil, err
	}

	dir := firstNonEmptyString(
		ctx.String("dir"),
		cfg.Music.Dir,
		pathutil.MusicDir(),
	)
	if dir == "" {
		return nil, nil
	}

	return music.Scan(dir)
}

// localTracks scans dir for the interactive view. Scan errors are logged
// and leave the local list empty.
func localTracks(dir string) []music.Track {
	if dir == "" {
		return nil
	}

	tracks, err := music.Scan(dir)
	if err != nil {
		slog.Warn("unable to scan music directory",
			slog.String("dir", dir),
			slog.Any("error", err),
		)

		return nil
	}

	return tracks
}

func musicListAction(ctx *cli.Context) error {
	local, err := scanMusicDir(ctx)
	if err != nil {
		return err
	}

	return report.Tracks(config.Stdout, music.NewPlayer(local).Queue())
}

func musicScanAction(ctx *cli.Context) error {
	local, err := scanMusicDir(ctx)
	if err != nil {
		return err
	}

	return report.Tracks(config.Stdout, local)
}
