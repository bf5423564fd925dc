package cdrom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// cueFileEntry is one FILE ... BINARY block: a bin path and the tracks
// carved out of it.
type cueFileEntry struct {
	binPath string
	tracks  []Track
}

// parseCue reads a .cue sheet and returns its file entries. Every line
// that fails to parse is collected rather than aborting on the first
// error, so a caller sees every problem in the sheet at once (SPEC_FULL.md
// §4.B).
func parseCue(r io.Reader, dir string) ([]cueFileEntry, error) {
	scanner := bufio.NewScanner(r)

	var entries []cueFileEntry
	var errs *multierror.Error
	var curTrackNum int
	var curKind SectorKind
	haveTrack := false

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := splitCueLine(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToUpper(fields[0]) {
		case "FILE":
			path, err := parseCueFile(fields, dir)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("line %d: %w", lineNo, err))
				continue
			}
			entries = append(entries, cueFileEntry{binPath: path})
			haveTrack = false

		case "TRACK":
			if len(entries) == 0 {
				errs = multierror.Append(errs, fmt.Errorf("line %d: TRACK before any FILE", lineNo))
				continue
			}
			num, kind, err := parseCueTrack(fields)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("line %d: %w", lineNo, err))
				continue
			}
			curTrackNum, curKind = num, kind
			haveTrack = true

		case "INDEX":
			if len(entries) == 0 || !haveTrack {
				errs = multierror.Append(errs, fmt.Errorf("line %d: INDEX before any TRACK", lineNo))
				continue
			}
			num, pos, err := parseCueIndex(fields)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("line %d: %w", lineNo, err))
				continue
			}
			if num != 1 {
				// INDEX 00 (pre-gap) is parsed but ignored: only INDEX 01
				// establishes a track's start, matching the reference.
				continue
			}
			last := &entries[len(entries)-1]
			last.tracks = append(last.tracks, Track{
				Number:  curTrackNum,
				Kind:    curKind,
				Start:   pos,
				BinPath: last.binPath,
			})

		default:
			// unrecognized keywords (CATALOG, FLAGS, PREGAP, REM, ...) are
			// silently accepted; they carry no information this core uses.
		}
	}
	if err := scanner.Err(); err != nil {
		errs = multierror.Append(errs, err)
	}

	return entries, errs.ErrorOrNil()
}

// splitCueLine splits on whitespace but keeps a "quoted string" as one
// field, since FILE lines look like: FILE "Game (Track 1).bin" BINARY
func splitCueLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return fields
}

func parseCueFile(fields []string, dir string) (string, error) {
	if len(fields) < 2 {
		return "", fmt.Errorf("malformed FILE line")
	}
	name := fields[1]
	if filepath.IsAbs(name) {
		return name, nil
	}
	return filepath.Join(dir, name), nil
}

func parseCueTrack(fields []string) (int, SectorKind, error) {
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("malformed TRACK line")
	}
	num, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad track number %q: %w", fields[1], err)
	}
	mode := strings.ToUpper(fields[2])
	switch {
	case mode == "AUDIO":
		return num, SectorAudio, nil
	case strings.HasPrefix(mode, "MODE1") || strings.HasPrefix(mode, "MODE2"):
		return num, SectorData, nil
	default:
		return 0, 0, fmt.Errorf("unsupported track mode %q", fields[2])
	}
}

func parseCueIndex(fields []string) (int, Position, error) {
	if len(fields) < 3 {
		return 0, Position{}, fmt.Errorf("malformed INDEX line")
	}
	num, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, Position{}, fmt.Errorf("bad index number %q: %w", fields[1], err)
	}
	pos, err := parseMSF(fields[2])
	if err != nil {
		return 0, Position{}, err
	}
	return num, pos, nil
}

// parseMSF parses a plain-decimal "mm:ss:ff" string as it appears in a
// .cue sheet. This is decimal text, not the BCD bytes the MMIO command
// interface speaks (SPEC_FULL.md §4.B).
func parseMSF(s string) (Position, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Position{}, fmt.Errorf("bad mm:ss:ff %q", s)
	}
	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Position{}, fmt.Errorf("bad mm:ss:ff %q: %w", s, err)
		}
		if n < 0 || n > 255 {
			return Position{}, fmt.Errorf("bad mm:ss:ff %q: field %d out of range", s, n)
		}
		v[i] = uint8(n)
	}
	pos, err := newPositionChecked(v[0], v[1], v[2])
	if err != nil {
		return Position{}, fmt.Errorf("bad mm:ss:ff %q: %w", s, err)
	}
	return pos, nil
}

// CueReferencedFiles parses a .cue sheet and returns the distinct .bin
// paths it references, resolved relative to dir. It does not open any of
// those files.
func CueReferencedFiles(r io.Reader, dir string) ([]string, error) {
	entries, err := parseCue(r, dir)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(entries))
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if seen[e.binPath] {
			continue
		}
		seen[e.binPath] = true
		paths = append(paths, e.binPath)
	}
	return paths, nil
}

// StatAll checks that every path exists, stat-ing them concurrently and
// aggregating every failure into one error instead of stopping at the
// first (the same "collect everything" shape parseCue uses for malformed
// lines).
func StatAll(paths []string) error {
	var g errgroup.Group
	errs := make([]error, len(paths))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if _, err := os.Stat(p); err != nil {
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
