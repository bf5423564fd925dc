package cdrom

import (
	"errors"
	"fmt"
)

// ErrNoSuchTrack is returned by Image.GetTrackStart for a track number
// outside the disc's table.
var ErrNoSuchTrack = errors.New("cdrom: no such track")

// ErrUnsupportedImage is returned by Open for a file that is neither a
// recognized .cue sheet nor a raw .bin image.
var ErrUnsupportedImage = errors.New("cdrom: unsupported disc image")

// panicf formats and panics. It marks host-misuse preconditions the spec
// calls "assertion-level, fatal in development" (§7 class 2): parameter
// FIFO overflow/underflow, Setmode with bit 4 set, Play with a non-empty
// parameter FIFO, and similar programmer errors an embedder should never
// actually trigger once command sequencing is correct.
func panicf(format string, a ...interface{}) {
	panic(fmt.Sprintf(format, a...))
}

// assertf panics with a formatted message if cond is false.
func assertf(cond bool, format string, a ...interface{}) {
	if !cond {
		panicf(format, a...)
	}
}
