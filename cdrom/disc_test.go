package cdrom

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// makeTestImage builds an in-memory single-track bin image with n
// sectors, each of which starts with a valid sync pattern and carries its
// index as a marker byte at offset 2000 so reads can be told apart. Using
// bytesextra.NewReadWriteSeeker keeps disc tests off the real filesystem.
func makeTestImage(t *testing.T, n int) *Image {
	t.Helper()
	buf := make([]byte, n*SectorSize)
	for i := 0; i < n; i++ {
		copy(buf[i*SectorSize:], syncMagic[:])
		buf[i*SectorSize+2000] = byte(i) // a marker byte inside the payload
	}
	rws := bytesextra.NewReadWriteSeeker(buf)

	img, err := OpenReader(rws)
	require.NoError(t, err)
	return img
}

func TestImageReadKnownSector(t *testing.T) {
	img := makeTestImage(t, 4)

	sector, kind := img.Read(PositionFromLBA(2))
	require.Equal(t, SectorData, kind)
	require.True(t, sector.HasSyncMagic())
	require.Equal(t, byte(2), sector.Data[2000])
}

func TestImageReadOutOfRangeIsInvalid(t *testing.T) {
	img := makeTestImage(t, 2)

	sector, kind := img.Read(PositionFromLBA(1000))
	require.Equal(t, SectorInvalid, kind)
	require.Equal(t, Sector{}, sector)
}

func TestImageTrackTableForBareBin(t *testing.T) {
	img := makeTestImage(t, 4)

	require.Equal(t, uint8(1), img.TrackCount())
	require.False(t, img.IsEmpty())

	start, err := img.GetTrackStart(1)
	require.NoError(t, err)
	require.Equal(t, PositionFromLBA(0), start)

	require.Equal(t, PositionFromLBA(4), img.Size())
}

func TestEmptyImageReportsNoTracks(t *testing.T) {
	img := emptyImage()
	require.True(t, img.IsEmpty())
	require.Equal(t, uint8(0), img.TrackCount())

	_, kind := img.Read(PositionFromLBA(0))
	require.Equal(t, SectorInvalid, kind)
}
