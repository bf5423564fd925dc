package cdrom

// DriveStatus is the single status byte returned by Getstat and friends
// (the "stat" byte in the command table, §4.C). Bit layout follows the
// real hardware's assignment so that a host program probing specific bits
// behaves the same way it would against real silicon:
//
//	bit 0: error            bit 4: shell_open
//	bit 1: spindle_motor_on bit 5: reading
//	bit 2: seek_error       bit 6: seeking
//	bit 3: id_error         bit 7: playing
type DriveStatus struct {
	byteValue uint8
}

const (
	statBitError      = 1 << 0
	statBitMotorOn    = 1 << 1
	statBitSeekError  = 1 << 2
	statBitIdError    = 1 << 3
	statBitShellOpen  = 1 << 4
	statBitReading    = 1 << 5
	statBitSeeking    = 1 << 6
	statBitPlaying    = 1 << 7
	driveStateBitMask = statBitReading | statBitSeeking | statBitPlaying
)

// NewDriveStatus returns the power-on status: tray closed, motor off,
// idle, no disk recognized yet. See DESIGN.md for why shell_open starts
// false rather than true — spec.md §3's "shell_open is set until a disk is
// inserted" describes the post-eject lifecycle, not this zero value; the
// worked GetID-with-no-disk scenario in spec.md §8 only matches real PS1
// behavior (error 08h/40h, "no disk", not 11h/80h "door open") if a fresh
// drive starts with the tray reading as closed.
func NewDriveStatus() DriveStatus {
	return DriveStatus{}
}

// Byte returns the wire-format status byte.
func (d DriveStatus) Byte() uint8 { return d.byteValue }

func (d DriveStatus) bit(mask uint8) bool { return d.byteValue&mask != 0 }
func (d *DriveStatus) setBit(mask uint8, v bool) {
	if v {
		d.byteValue |= mask
	} else {
		d.byteValue &^= mask
	}
}

func (d DriveStatus) ShellOpen() bool       { return d.bit(statBitShellOpen) }
func (d DriveStatus) SpindleMotorOn() bool  { return d.bit(statBitMotorOn) }
func (d DriveStatus) Reading() bool         { return d.bit(statBitReading) }
func (d DriveStatus) Playing() bool         { return d.bit(statBitPlaying) }
func (d DriveStatus) Seeking() bool         { return d.bit(statBitSeeking) }

func (d *DriveStatus) SetShellOpen(v bool)      { d.setBit(statBitShellOpen, v) }
func (d *DriveStatus) SetSpindleMotorOn(v bool) { d.setBit(statBitMotorOn, v) }
func (d *DriveStatus) SetError(v bool)          { d.setBit(statBitError, v) }

// DriveState names the mutually-exclusive {Stopped, Reading, Playing,
// Seeking} state spec.md's invariant requires.
type DriveState int

const (
	DriveStopped DriveState = iota
	DriveReading
	DrivePlaying
	DriveSeeking
)

// SetState clears whichever of {reading, playing, seeking} was set and
// asserts the requested one, preserving the "at most one" invariant.
func (d *DriveStatus) SetState(state DriveState) {
	d.byteValue &^= driveStateBitMask
	switch state {
	case DriveReading:
		d.byteValue |= statBitReading
	case DrivePlaying:
		d.byteValue |= statBitPlaying
	case DriveSeeking:
		d.byteValue |= statBitSeeking
	case DriveStopped:
		// all three bits already cleared
	}
}

// State reports the current mutually-exclusive drive state.
func (d DriveStatus) State() DriveState {
	switch {
	case d.bit(statBitReading):
		return DriveReading
	case d.bit(statBitPlaying):
		return DrivePlaying
	case d.bit(statBitSeeking):
		return DriveSeeking
	default:
		return DriveStopped
	}
}

// ModeRegister is the byte set by Setmode (cmd 0x0E). The core only
// interprets bit 5 (sector size); Set rejects bit 4, and every other bit is
// stored and returned unexamined.
type ModeRegister struct {
	byteValue uint8
}

const modeBitSectorSizeIsWhole = 1 << 5
const modeBitReservedZero = 1 << 4

// Byte returns the raw mode byte.
func (m ModeRegister) Byte() uint8 { return m.byteValue }

// Set installs a new mode byte. Bit 4 must be zero (spec.md §3); violating
// this is a host-misuse precondition, not a protocol error.
func (m *ModeRegister) Set(v uint8) {
	assertf(v&modeBitReservedZero == 0, "cdrom: Setmode with reserved bit 4 set (0x%02x)", v)
	m.byteValue = v
}

// SectorSize returns 2340 when bit 5 is set, else 2048 — the payload
// length read_byte walks over.
func (m ModeRegister) SectorSize() int {
	if m.byteValue&modeBitSectorSizeIsWhole != 0 {
		return 2340
	}
	return 2048
}

// payloadOffset returns the offset into a raw 2352-byte sector the data
// window starts at, matching SectorSize's choice of 2340 vs 2048.
func (m ModeRegister) payloadOffset() int {
	if m.byteValue&modeBitSectorSizeIsWhole != 0 {
		return wholePayloadOffset
	}
	return dataPayloadOffset
}

// StatusRegister is the byte read from MMIO register 0 — distinct from
// DriveStatus, the "stat" byte that travels as response payload.
type StatusRegister struct {
	Index                 uint8
	AdpcmFifoEmpty        bool
	ParamFifoEmpty        bool
	ParamFifoWriteReady   bool
	ResponseFifoNotEmpty  bool
	DataFifoNotEmpty      bool
	TransmitBusy          bool
}

// NewStatusRegister returns the power-on status register: both FIFOs
// empty (param empty => true), write-ready, nothing else set.
func NewStatusRegister() StatusRegister {
	return StatusRegister{
		ParamFifoEmpty:      true,
		ParamFifoWriteReady: true,
	}
}

// Byte packs the fields into the wire-format status byte:
//
//	bits 0-1: index                  bit 5: response_fifo_not_empty
//	bit 2: adpcm_fifo_empty          bit 6: data_fifo_not_empty
//	bit 3: param_fifo_empty          bit 7: transmit_busy
//	bit 4: param_fifo_write_ready
func (s StatusRegister) Byte() uint8 {
	var b uint8
	b |= s.Index & 0b11
	b |= boolBit(s.AdpcmFifoEmpty, 2)
	b |= boolBit(s.ParamFifoEmpty, 3)
	b |= boolBit(s.ParamFifoWriteReady, 4)
	b |= boolBit(s.ResponseFifoNotEmpty, 5)
	b |= boolBit(s.DataFifoNotEmpty, 6)
	b |= boolBit(s.TransmitBusy, 7)
	return b
}

func boolBit(v bool, shift uint) uint8 {
	if v {
		return 1 << shift
	}
	return 0
}
