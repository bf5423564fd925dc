package cdrom

import (
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestParseCueSingleFileTwoTracks(t *testing.T) {
	sheet := `
FILE "game.bin" BINARY
  TRACK 01 MODE2/2352
    INDEX 01 00:00:00
  TRACK 02 AUDIO
    INDEX 00 03:00:00
    INDEX 01 03:02:00
`
	entries, err := parseCue(strings.NewReader(sheet), "/discs")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].tracks, 2)

	require.Equal(t, "/discs/game.bin", entries[0].binPath)
	require.Equal(t, SectorData, entries[0].tracks[0].Kind)
	require.Equal(t, SectorAudio, entries[0].tracks[1].Kind)
	require.Equal(t, NewPosition(3, 2, 0), entries[0].tracks[1].Start)
}

func TestParseCueAggregatesErrors(t *testing.T) {
	sheet := `
FILE "game.bin" BINARY
  TRACK 01 MODE1/2352
    INDEX 01 bogus:ss:ff
  TRACK notanumber AUDIO
    INDEX 01 00:00:00
`
	_, err := parseCue(strings.NewReader(sheet), "/discs")
	require.Error(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
}

func TestParseCueQuotedFilenameWithSpaces(t *testing.T) {
	sheet := `FILE "My Game (Disc 1).bin" BINARY
TRACK 01 MODE1/2352
  INDEX 01 00:00:00
`
	entries, err := parseCue(strings.NewReader(sheet), "/discs")
	require.NoError(t, err)
	require.Equal(t, "/discs/My Game (Disc 1).bin", entries[0].binPath)
}

func TestCueReferencedFilesDeduplicates(t *testing.T) {
	sheet := `
FILE "a.bin" BINARY
  TRACK 01 MODE1/2352
    INDEX 01 00:00:00
FILE "a.bin" BINARY
  TRACK 02 AUDIO
    INDEX 01 00:10:00
`
	paths, err := CueReferencedFiles(strings.NewReader(sheet), "/discs")
	require.NoError(t, err)
	require.Equal(t, []string{"/discs/a.bin"}, paths)
}
