package cdrom

// ReadReg reads one byte from MMIO register reg (0..3), at the current
// bank selected by the last Reg-0 write (spec.md §4.G).
func (d *Drive) ReadReg(reg uint8) uint8 {
	bank := d.status.Index

	switch reg {
	case 0:
		return d.status.Byte()

	case 1:
		if d.response.IsEmpty() {
			logf("cdrom: response FIFO read while empty")
			return 0
		}
		v := d.response.Pop()
		d.status.ResponseFifoNotEmpty = !d.response.IsEmpty()
		return v

	case 2:
		return d.readByte()

	case 3:
		switch bank {
		case 0, 2:
			return d.intEnable
		default: // 1, 3
			v := uint8(0b11100000)
			if head, ok := d.irqFifo.Peek(); ok {
				v |= head & 0b111
			}
			return v
		}

	default:
		logf("cdrom: read from unknown register %d", reg)
		return 0
	}
}

// WriteReg writes one byte to MMIO register reg (0..3) at the current
// bank.
func (d *Drive) WriteReg(reg uint8, val uint8) {
	bank := d.status.Index

	switch reg {
	case 0: // Index Register: selects the bank, nothing else. Not logged.
		d.status.Index = val & 0b11
		return

	case 1:
		switch bank {
		case 0: // Command Register
			d.ExecuteCommand(val)
		default: // Sound Map Data Out / Coding Info / Volume: accepted, unimplemented
		}

	case 2:
		switch bank {
		case 0: // Parameter FIFO
			assertf(!d.params.IsFull(), "cdrom: parameter FIFO overflow")
			d.params.Push(val)
			d.status.ParamFifoEmpty = false
			d.status.ParamFifoWriteReady = !d.params.IsFull()
		case 1: // Interrupt Enable Register
			d.intEnable = val
		default: // Audio volume writes: accepted, unimplemented
		}

	case 3:
		switch bank {
		case 0: // Request Register
			if val&0x80 != 0 { // want data
				if d.isDataBufEmpty() {
					d.dataBuf = d.readBuf
					d.dataBufValid = d.readBufValid
					d.readBufValid = false
					d.dataBufIndex = 0
					d.status.DataFifoNotEmpty = d.dataBufValid
				}
			} else { // clear data buffer
				d.dataBufValid = false
				d.dataBufIndex = 0
				d.status.DataFifoNotEmpty = false
			}
		case 1: // Interrupt Flag Register
			if val&0x40 != 0 {
				d.params.Clear()
				d.status.ParamFifoEmpty = true
				d.status.ParamFifoWriteReady = true
			}
			if !d.irqFifo.IsEmpty() {
				d.irqFifo.Pop()
			}
		default: // Audio volume writes/apply: accepted, unimplemented
		}

	default:
		logf("cdrom: write to unknown register %d val=0x%02x", reg, val)
	}
}

// readByte implements the Reg-2 data stream: one byte from the data
// buffer's payload window, advancing the cursor.
func (d *Drive) readByte() uint8 {
	if d.isDataBufEmpty() {
		logf("cdrom: read from empty data buffer")
		return 0
	}

	offset := d.mode.payloadOffset()
	v := d.dataBuf.Data[offset+d.dataBufIndex]
	d.dataBufIndex++

	if d.isDataBufEmpty() {
		d.status.DataFifoNotEmpty = false
	}
	return v
}

// ReadWord performs four consecutive Reg-2 reads, packed little-endian, as
// an embedder's 16/32-bit data-stream access synthesizes (spec.md §6).
func (d *Drive) ReadWord() uint32 {
	var v uint32
	v |= uint32(d.readByte()) << 0
	v |= uint32(d.readByte()) << 8
	v |= uint32(d.readByte()) << 16
	v |= uint32(d.readByte()) << 24
	return v
}
