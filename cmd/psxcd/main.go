package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/go-retro/psxcdrom/cdrom"
)

func main() {
	app := &cli.App{
		Name:  "psxcd",
		Usage: "inspect PlayStation disc images (.cue/.bin)",
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print the track table of a disc image",
				ArgsUsage: "IMAGE",
				Action:    infoCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("psxcd: %s", err)
	}
}

func infoCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("missing IMAGE argument", 1)
	}

	if err := checkBinFilesExist(path); err != nil {
		return err
	}

	img, err := cdrom.Open(path)
	if err != nil {
		return err
	}

	printTrackTable(os.Stdout, img)
	return nil
}

// printTrackTable renders the track table. Output is only aligned in
// space-padded columns when stdout is a terminal (golang.org/x/term); a
// piped consumer gets the same fields, tab-separated, with no cosmetic
// padding to parse around.
func printTrackTable(w *os.File, img *cdrom.Image) {
	interactive := term.IsTerminal(int(w.Fd()))

	count := img.TrackCount()
	fmt.Fprintf(w, "tracks: %d, size: %s\n", count, img.Size())

	for n := uint8(1); n <= count; n++ {
		track, err := img.GetTrack(n)
		if err != nil {
			continue
		}
		lba := track.Start.ToLBA()
		if interactive {
			fmt.Fprintf(w, "  track %2d  %-6s start %s  lba %d\n", n, track.Kind, track.Start, lba)
		} else {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", n, track.Kind, track.Start, lba)
		}
	}
}

// checkBinFilesExist stats every .bin a .cue sheet references before the
// first read, concurrently (golang.org/x/sync/errgroup). A path that is
// not a .cue is not checked here; cdrom.Open reports a missing bare .bin
// itself. For a multi-file .cue it means a single combined error instead
// of failing on whichever file happens to be opened first.
func checkBinFilesExist(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".cue") {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	paths, err := cdrom.CueReferencedFiles(f, filepath.Dir(path))
	if err != nil {
		return err
	}

	return cdrom.StatAll(paths)
}
