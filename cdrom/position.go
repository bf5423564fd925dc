package cdrom

import "fmt"

// leadInSectors is the number of sectors reserved for the disc lead-in;
// LBA 0 corresponds to Position{0, 2, 0}.
const leadInSectors = 150

// secondsPerMinute and framesPerSecond are the CD-DA sector addressing
// constants: 75 frames (sectors) per second, 60 seconds per minute.
const (
	secondsPerMinute = 60
	framesPerSecond  = 75
)

// Position is a minute:second:frame disc address. Unlike the bytes that
// travel over the MMIO wire, the fields here are decimal, not BCD; BCD
// conversion happens only at the command-processor boundary (§4.A/§9).
type Position struct {
	Minutes uint8
	Seconds uint8
	Frames  uint8
}

// NewPosition validates and builds a Position from decimal components.
func NewPosition(minutes, seconds, frames uint8) Position {
	if seconds >= 60 {
		panicf("cdrom: invalid position seconds=%d", seconds)
	}
	if frames >= framesPerSecond {
		panicf("cdrom: invalid position frames=%d", frames)
	}
	return Position{Minutes: minutes, Seconds: seconds, Frames: frames}
}

// newPositionChecked is NewPosition's non-panicking counterpart for parse
// paths (cue-sheet INDEX lines) that must report an out-of-range MSF as an
// error rather than crash the process. NewPosition's panic stays reserved
// for genuine host-misuse callers (Setloc et al.), which never see
// attacker- or author-controlled input the way a cue sheet can.
func newPositionChecked(minutes, seconds, frames uint8) (Position, error) {
	if seconds >= 60 {
		return Position{}, fmt.Errorf("cdrom: invalid position seconds=%d", seconds)
	}
	if frames >= framesPerSecond {
		return Position{}, fmt.Errorf("cdrom: invalid position frames=%d", frames)
	}
	return Position{Minutes: minutes, Seconds: seconds, Frames: frames}, nil
}

func (p Position) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", p.Minutes, p.Seconds, p.Frames)
}

// ToLBA converts the position to a Linear Block Address, undoing the
// 150-sector lead-in offset. The result is signed because positions in
// the lead-in (e.g. 00:00:00..00:01:74) map to negative LBAs.
func (p Position) ToLBA() int32 {
	total := int32(p.Minutes)*secondsPerMinute + int32(p.Seconds)
	total = total*framesPerSecond + int32(p.Frames)
	return total - leadInSectors
}

// PositionFromLBA is the inverse of Position.ToLBA.
func PositionFromLBA(lba int32) Position {
	total := lba + leadInSectors
	if total < 0 {
		panicf("cdrom: LBA %d is before the lead-in", lba)
	}
	f := total % framesPerSecond
	total /= framesPerSecond
	s := total % secondsPerMinute
	total /= secondsPerMinute
	m := total
	return Position{Minutes: uint8(m), Seconds: uint8(s), Frames: uint8(f)}
}

// bcdToDec decodes one binary-coded-decimal byte: each nibble is a digit.
func bcdToDec(b uint8) uint8 {
	return (b>>4)*10 + (b & 0xf)
}

// decToBcd is the inverse of bcdToDec.
func decToBcd(v uint8) uint8 {
	return ((v / 10) << 4) | (v % 10)
}

// PositionFromBCD builds a Position out of the three BCD bytes the host
// writes as Setloc parameters.
func PositionFromBCD(mm, ss, ff uint8) Position {
	return NewPosition(bcdToDec(mm), bcdToDec(ss), bcdToDec(ff))
}

// BCD returns the position re-encoded as the three wire bytes a GetTD/GetTN
// style response sends back to the host.
func (p Position) BCD() (mm, ss, ff uint8) {
	return decToBcd(p.Minutes), decToBcd(p.Seconds), decToBcd(p.Frames)
}
