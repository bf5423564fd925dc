package cdrom

// Step runs one pump tick. An embedder calls this once per host tick
// (spec.md §4.F); the cadence is the embedder's choice, paced against
// ReadSectorDelaySteps.
func (d *Drive) Step() {
	d.status.TransmitBusy = false

	if head, ok := d.irqFifo.Peek(); ok {
		if head&d.intEnable&0b111 != 0 {
			d.sink.RaiseCDROM()
		}
	}

	state := d.stat.State()
	if state != DriveReading && state != DrivePlaying {
		return
	}

	d.stepsUntilReadSect--
	if d.stepsUntilReadSect != 0 {
		return
	}
	d.stepsUntilReadSect = ReadSectorDelaySteps

	pos := PositionFromLBA(int32(d.readSector))
	sector, kind := d.disk.Read(pos)
	d.readSector++

	if kind == SectorInvalid {
		return
	}
	d.readBuf = sector
	d.readBufValid = true

	syncMatch := sector.HasSyncMagic()

	switch {
	case state == DrivePlaying && kind == SectorAudio:
		if syncMatch {
			logf("cdrom: sync pattern found in audio sector at %s", pos)
		}
	case state == DriveReading && kind == SectorData:
		if !syncMatch {
			logf("cdrom: sync pattern mismatch in data sector at %s", pos)
		}
		d.pushResponse(IntDataReady, d.stat.Byte())
	}
}
