package cdrom

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// trackEntry is a resolved Track plus the file-reader bookkeeping needed
// to seek to its sectors.
type trackEntry struct {
	track        Track
	startLBA     int32
	fileStartLBA int32 // LBA of the first track sharing this track's .bin
	reader       io.ReadSeeker
}

// Image is an opened disc image: a .cue sheet resolved against its .bin
// file(s), or a bare .bin treated as one data track. It owns the open file
// handles for its lifetime (spec.md §5: "the disk image is owned
// exclusively by the drive").
type Image struct {
	entries []trackEntry
	sizeLBA int32
}

// emptyImage is the zero-track placeholder a freshly-created Drive starts
// with, before any Insert call.
func emptyImage() *Image {
	return &Image{}
}

// Open loads a disc image from path. The extension test is
// case-insensitive (spec.md §6).
func Open(path string) (*Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return openCueImage(path)
	case ".bin":
		return openBinImage(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, path)
	}
}

// OpenReader builds an Image directly from an already-open bare-.bin
// reader, bypassing the filesystem. Used by tests and by any embedder that
// already owns the file handle.
func OpenReader(r io.ReadSeeker) (*Image, error) {
	size, err := readerSize(r)
	if err != nil {
		return nil, err
	}
	return imageFromSingleTrack(r, size, SectorData)
}

func openBinImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	size, err := readerSize(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return imageFromSingleTrack(f, size, SectorData)
}

func imageFromSingleTrack(r io.ReadSeeker, sizeBytes int64, kind SectorKind) (*Image, error) {
	sectors := int32(sizeBytes / SectorSize)
	track := Track{Number: 1, Kind: kind, Start: PositionFromLBA(0)}
	return &Image{
		entries: []trackEntry{{track: track, startLBA: 0, fileStartLBA: 0, reader: r}},
		sizeLBA: sectors,
	}, nil
}

func openCueImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dir := filepath.Dir(path)
	fileEntries, err := parseCue(f, dir)
	if err != nil {
		return nil, err
	}
	if len(fileEntries) == 0 {
		return nil, fmt.Errorf("cdrom: cue sheet %s has no FILE entries", path)
	}

	img := &Image{}
	for _, fe := range fileEntries {
		if len(fe.tracks) == 0 {
			continue
		}
		r, err := os.Open(fe.binPath)
		if err != nil {
			return nil, err
		}
		size, err := readerSize(r)
		if err != nil {
			r.Close()
			return nil, err
		}

		fileStartLBA := fe.tracks[0].Start.ToLBA()
		for _, t := range fe.tracks {
			lba := t.Start.ToLBA()
			img.entries = append(img.entries, trackEntry{
				track:        t,
				startLBA:     lba,
				fileStartLBA: fileStartLBA,
				reader:       r,
			})
			end := fileStartLBA + int32(size/SectorSize)
			if end > img.sizeLBA {
				img.sizeLBA = end
			}
		}
	}
	return img, nil
}

func readerSize(r io.ReadSeeker) (int64, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}

// IsEmpty reports whether no disc has been loaded.
func (img *Image) IsEmpty() bool {
	return len(img.entries) == 0
}

// TrackCount returns the number of tracks in the disc's table.
func (img *Image) TrackCount() uint8 {
	return uint8(len(img.entries))
}

// GetTrackStart returns the start Position of track n (1-based).
func (img *Image) GetTrackStart(n uint8) (Position, error) {
	t, err := img.GetTrack(n)
	if err != nil {
		return Position{}, err
	}
	return t.Start, nil
}

// GetTrack returns the full Track record (number, kind, start) for track n
// (1-based), e.g. for an inspector that reports more than the start MSF.
func (img *Image) GetTrack(n uint8) (Track, error) {
	for _, e := range img.entries {
		if uint8(e.track.Number) == n {
			return e.track, nil
		}
	}
	return Track{}, fmt.Errorf("%w: %d", ErrNoSuchTrack, n)
}

// Size returns the position at the end of the last track.
func (img *Image) Size() Position {
	return PositionFromLBA(img.sizeLBA)
}

// entryFor returns the track entry whose file covers the given LBA, or nil
// if it falls outside every known track.
func (img *Image) entryFor(lba int32) *trackEntry {
	var best *trackEntry
	for i := range img.entries {
		e := &img.entries[i]
		if e.startLBA <= lba && (best == nil || e.startLBA > best.startLBA) {
			best = e
		}
	}
	if best == nil || lba >= img.sizeLBA {
		return nil
	}
	return best
}

// Read returns the 2352-byte sector at pos along with its kind. Positions
// outside every track report SectorInvalid and a zeroed sector; per
// spec.md §4.B the caller must early-return in that case rather than
// trust the contents.
func (img *Image) Read(pos Position) (Sector, SectorKind) {
	lba := pos.ToLBA()
	entry := img.entryFor(lba)
	if entry == nil {
		return Sector{}, SectorInvalid
	}

	offsetSectors := lba - entry.fileStartLBA
	var sector Sector
	if _, err := entry.reader.Seek(int64(offsetSectors)*SectorSize, io.SeekStart); err != nil {
		return Sector{}, SectorInvalid
	}
	if _, err := io.ReadFull(entry.reader, sector.Data[:]); err != nil {
		return Sector{}, SectorInvalid
	}
	return sector, entry.track.Kind
}
