package cdrom

// commandTable maps a command byte to its handler. A table is preferable
// to a large switch once more than a couple dozen commands exist
// (SPEC_FULL.md §9); at this scope a switch would also have been fine, but
// the table reads as a closer match to the spec's own command listing.
var commandTable = map[uint8]func(*Drive){
	0x01: (*Drive).cmdGetstat,
	0x02: (*Drive).cmdSetloc,
	0x03: (*Drive).cmdPlay,
	0x06: (*Drive).cmdReadN,
	0x07: (*Drive).cmdMotorOn,
	0x08: (*Drive).cmdStop,
	0x09: (*Drive).cmdPause,
	0x0A: (*Drive).cmdInit,
	0x0B: (*Drive).cmdMute,
	0x0C: (*Drive).cmdDemute,
	0x0D: (*Drive).cmdSetfilter,
	0x0E: (*Drive).cmdSetmode,
	0x0F: (*Drive).cmdGetparam,
	0x11: (*Drive).cmdPlay, // GetlocP: deliberate compatibility hack, see SPEC_FULL.md §9
	0x13: (*Drive).cmdGetTN,
	0x14: (*Drive).cmdGetTD,
	0x15: (*Drive).cmdSeekL,
	0x19: (*Drive).cmdTest,
	0x1A: (*Drive).cmdGetID,
	0x1B: (*Drive).cmdReadN, // ReadS behaves identically to ReadN in this core
}

// ExecuteCommand decodes and runs a host command byte written to MMIO
// Reg 1 bank 0. Per spec.md §4.C, commands run synchronously on write: the
// interrupt and response FIFOs are cleared at entry, the handler enqueues
// whatever it needs to, and finally the parameter FIFO is cleared and the
// busy/ready status bits are set.
func (d *Drive) ExecuteCommand(cmd uint8) {
	d.irqFifo.Clear()
	d.response.Clear()
	d.status.ResponseFifoNotEmpty = false

	logf("cdrom: command issued: %s (0x%02x)", commandName(cmd), cmd)
	if !d.params.IsEmpty() {
		logf("cdrom: parameters: %v", d.params.Bytes())
	}

	if handler, ok := commandTable[cmd]; ok {
		handler(d)
	} else {
		logf("cdrom: unhandled command 0x%02x", cmd)
		d.commandError()
	}

	d.params.Clear()
	d.status.TransmitBusy = true
	d.status.ParamFifoEmpty = true
	d.status.ParamFifoWriteReady = true
	d.status.AdpcmFifoEmpty = false
}

// commandError enqueues the generic "invalid command" rejection.
func (d *Drive) commandError() {
	d.pushResponse(IntError, 0x11, 0x40)
}

func (d *Drive) cmdGetstat() {
	d.pushResponseStat(IntFirstAck)
}

func (d *Drive) cmdSetloc() {
	mm := d.popParam()
	ss := d.popParam()
	ff := d.popParam()
	pos := PositionFromBCD(mm, ss, ff)
	d.seekSector = uint32(pos.ToLBA())
	d.pushResponseStat(IntFirstAck)
}

// cmdPlay implements both Play (0x03) and GetlocP (0x11): spec.md §4.C and
// §9 call the latter "a deliberate compatibility hack" that just runs
// Play, since this core stubs sub-channel Q data rather than tracking a
// real previous-sector position.
func (d *Drive) cmdPlay() {
	assertf(d.params.IsEmpty(), "cdrom: Play with non-empty parameter FIFO")
	d.readSector = d.seekSector
	d.stat.SetState(DrivePlaying)
	d.pushResponseStat(IntFirstAck)
}

func (d *Drive) cmdReadN() {
	d.readSector = d.seekSector
	d.stat.SetState(DriveReading)
	d.pushResponseStat(IntFirstAck)
}

func (d *Drive) cmdMotorOn() {
	d.stat.SetSpindleMotorOn(true)
	d.pushResponseStat(IntFirstAck)
	d.pushResponseStat(IntSecondAck)
}

func (d *Drive) cmdStop() {
	d.stat.SetState(DriveStopped)
	d.stat.SetSpindleMotorOn(false)
	d.pushResponseStat(IntFirstAck)
	d.pushResponseStat(IntSecondAck)
}

func (d *Drive) cmdPause() {
	d.pushResponseStat(IntFirstAck)
	d.stat.SetState(DriveStopped)
	d.pushResponseStat(IntSecondAck)
}

func (d *Drive) cmdInit() {
	d.pushResponseStat(IntFirstAck)

	shellOpen := d.stat.ShellOpen()
	d.stat = NewDriveStatus()
	d.stat.SetShellOpen(shellOpen)
	d.stat.SetSpindleMotorOn(true)
	d.mode = ModeRegister{}

	d.pushResponseStat(IntSecondAck)
}

func (d *Drive) cmdMute() {
	d.muted = true
	d.pushResponseStat(IntFirstAck)
}

func (d *Drive) cmdDemute() {
	d.muted = false
	d.pushResponseStat(IntFirstAck)
}

func (d *Drive) cmdSetfilter() {
	d.filterFile = bcdToDec(d.popParam())
	d.filterChannel = bcdToDec(d.popParam())
	d.pushResponse(IntFirstAck, d.stat.Byte(), decToBcd(d.filterFile), decToBcd(d.filterChannel))
}

func (d *Drive) cmdSetmode() {
	d.pushResponseStat(IntFirstAck)
	d.mode.Set(d.popParam())
}

func (d *Drive) cmdGetparam() {
	d.pushResponse(IntFirstAck, d.stat.Byte(), 0x00, 0x00)
}

func (d *Drive) cmdGetTN() {
	index := decToBcd(1)
	trackCount := decToBcd(d.disk.TrackCount())
	d.pushResponse(IntFirstAck, d.stat.Byte(), index, trackCount)
}

func (d *Drive) cmdGetTD() {
	trackNumber := bcdToDec(d.popParam())

	var pos Position
	if trackNumber == 0 {
		pos = d.disk.Size()
	} else {
		var err error
		pos, err = d.disk.GetTrackStart(trackNumber)
		if err != nil {
			logf("cdrom: GetTD: %s", err)
			d.commandError()
			return
		}
	}

	mm, ss, _ := pos.BCD()
	d.pushResponse(IntFirstAck, d.stat.Byte(), mm, ss)
}

func (d *Drive) cmdSeekL() {
	d.pushResponseStat(IntFirstAck)
	d.readSector = d.seekSector
	d.stat.SetState(DriveSeeking)
	d.pushResponseStat(IntSecondAck)
}

func (d *Drive) cmdTest() {
	sub := d.popParam()
	if sub == 0x20 {
		d.pushResponse(IntFirstAck, 0x94, 0x09, 0x19, 0xC0)
		return
	}
	logf("cdrom: unhandled Test subfunction 0x%02x", sub)
	d.commandError()
}

func (d *Drive) cmdGetID() {
	switch {
	case d.stat.ShellOpen():
		d.pushResponse(IntError, 0x11, 0x80)
	case !d.disk.IsEmpty():
		d.pushResponseStat(IntFirstAck)
		d.pushResponse(IntSecondAck, 0x02, 0x00, 0x20, 0x00, 'S', 'C', 'E', 'A')
	default:
		d.pushResponseStat(IntFirstAck)
		d.pushResponse(IntError, 0x08, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00)
	}
}
