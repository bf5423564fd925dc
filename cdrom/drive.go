package cdrom

// ReadSectorDelaySteps is the number of Step calls the pump counts down
// between sector reads while reading or playing. The original hardware
// paces this off a 33.8688MHz CPU clock divided by 75 (single-speed CD-ROM
// cadence); this core has no CPU clock of its own; see SPEC_FULL.md §9 for
// the reasoning behind this value. An embedder pacing Step() differently
// may override it.
var ReadSectorDelaySteps uint32 = 44100 / 75 * 16

// Drive is the PlayStation 1 CD-ROM controller: register bank, FIFOs,
// command processor, sector pump, and the disc image it reads from. It is
// not safe for concurrent use; spec.md §5 requires a single cooperative
// caller driving Step() and the MMIO methods.
type Drive struct {
	status StatusRegister
	stat   DriveStatus
	mode   ModeRegister

	intEnable uint8

	params   *byteFIFO
	response *byteFIFO
	irqFifo  *byteFIFO

	readBuf      Sector
	readBufValid bool

	dataBuf      Sector
	dataBufValid bool
	dataBufIndex int

	seekSector         uint32
	readSector         uint32
	stepsUntilReadSect uint32

	muted          bool
	filterFile     uint8
	filterChannel  uint8

	disk *Image
	sink InterruptSink
}

// NewDrive returns a freshly powered-on drive with no disc inserted. sink
// receives the raised CDROM interrupt edges (spec.md §6); pass
// NopInterruptSink{} if the embedder doesn't care.
func NewDrive(sink InterruptSink) *Drive {
	if sink == nil {
		sink = NopInterruptSink{}
	}
	return &Drive{
		status:             NewStatusRegister(),
		stat:               NewDriveStatus(),
		params:             newByteFIFO(),
		response:           newByteFIFO(),
		irqFifo:            newByteFIFO(),
		disk:               emptyImage(),
		sink:               sink,
		stepsUntilReadSect: ReadSectorDelaySteps,
	}
}

// InsertDisk replaces the currently loaded disc image and clears
// shell_open. No in-flight command recovery is attempted; the caller is
// expected to quiesce the drive first (spec.md §5).
func (d *Drive) InsertDisk(img *Image) {
	d.disk = img
	d.stat.SetShellOpen(false)
}

// InsertDiskFile opens path (a .cue or .bin image) and inserts it.
func (d *Drive) InsertDiskFile(path string) error {
	img, err := Open(path)
	if err != nil {
		return err
	}
	d.InsertDisk(img)
	return nil
}

// EjectDisk removes the currently loaded disc and sets shell_open.
func (d *Drive) EjectDisk() {
	d.disk = emptyImage()
	d.stat.SetShellOpen(true)
}

// Stat returns the current drive status byte (spec.md's "stat" byte).
func (d *Drive) Stat() DriveStatus { return d.stat }

// pushResponse enqueues one interrupt cause and its response payload
// bytes, matching the original's push_response: the cause always goes in,
// but payload bytes beyond FIFO capacity are dropped and logged (spec.md
// §7: response-FIFO overflow is a warning, not a failure).
func (d *Drive) pushResponse(cause InterruptCause, bytes ...uint8) {
	d.irqFifo.Push(uint8(cause))
	for _, b := range bytes {
		if d.response.IsFull() {
			logf("cdrom: response byte 0x%02x lost, FIFO was full", b)
			continue
		}
		d.response.Push(b)
		d.status.ResponseFifoNotEmpty = true
	}
}

// pushResponseStat is the common case of pushResponse(cause, stat byte).
func (d *Drive) pushResponseStat(cause InterruptCause) {
	d.pushResponse(cause, d.stat.Byte())
}

// popParam dequeues one parameter. Calling this with an empty parameter
// FIFO is a precondition violation (spec.md §7 class 2): every command
// handler that calls it has already committed to needing that many bytes.
func (d *Drive) popParam() uint8 {
	assertf(!d.params.IsEmpty(), "cdrom: parameter FIFO underflow")
	v := d.params.Pop()
	d.status.ParamFifoEmpty = d.params.IsEmpty()
	d.status.ParamFifoWriteReady = true
	return v
}

// isDataBufEmpty reports whether the data-stream buffer has nothing left
// to read: either it was never filled, or the cursor has walked off the
// end of the current mode's payload window.
func (d *Drive) isDataBufEmpty() bool {
	if !d.dataBufValid {
		return true
	}
	return d.dataBufIndex >= d.mode.SectorSize()
}
