package cdrom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDrive() *Drive {
	return NewDrive(&RecordingInterruptSink{})
}

// TestScenarioGetstat is spec.md §8 scenario 1. Reg-3 reads/writes that
// touch the Interrupt Enable/Flag registers need bank 1 selected; bank 0
// is reserved for the Command Register and Parameter FIFO on Reg 1/Reg 2.
// See DESIGN.md for why this resolves an apparent bank-0-vs-1 ambiguity in
// the scenario text.
func TestScenarioGetstat(t *testing.T) {
	d := newTestDrive()

	d.WriteReg(0, 0) // bank 0: issue the command
	d.WriteReg(1, 0x01)

	require.Equal(t, []byte{byte(IntFirstAck)}, d.irqFifo.Bytes())
	require.Equal(t, []byte{d.stat.Byte()}, d.response.Bytes())
	require.True(t, d.status.ResponseFifoNotEmpty)
	require.True(t, d.status.TransmitBusy)

	d.WriteReg(0, 1) // bank 1: Interrupt Flag Register semantics
	require.Equal(t, uint8(0b11100011), d.ReadReg(3))

	d.WriteReg(3, 0) // ack
	require.True(t, d.irqFifo.IsEmpty())

	statByte := d.stat.Byte()
	got := d.ReadReg(1)
	require.Equal(t, statByte, got)
	require.False(t, d.status.ResponseFifoNotEmpty)
}

// TestScenarioGetIDNoDisk is spec.md §8 scenario 2.
func TestScenarioGetIDNoDisk(t *testing.T) {
	d := newTestDrive()

	d.WriteReg(0, 0)
	d.WriteReg(1, 0x1A)

	d.WriteReg(0, 1)
	require.Equal(t, uint8(0b11100011), d.ReadReg(3))

	d.WriteReg(3, 0) // ack first cause
	require.Equal(t, uint8(0b11100101), d.ReadReg(3))

	want := []byte{d.stat.Byte(), 0x08, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00}
	var got []byte
	for i := 0; i < 8; i++ {
		got = append(got, d.ReadReg(1))
	}
	require.Equal(t, want, got)
}

// TestScenarioSetlocReadNDrivesPump is spec.md §8 scenario 3.
func TestScenarioSetlocReadNDrivesPump(t *testing.T) {
	d := newTestDrive()
	d.InsertDisk(makeTestImage(t, 4))

	d.WriteReg(0, 0)
	d.WriteReg(2, 0x00) // mm
	d.WriteReg(2, 0x02) // ss
	d.WriteReg(2, 0x00) // ff
	d.WriteReg(1, 0x02) // Setloc
	require.EqualValues(t, 0, d.seekSector)

	d.WriteReg(1, 0x06) // ReadN
	require.Equal(t, DriveReading, d.stat.State())
	require.EqualValues(t, 0, d.readSector)

	for i := uint32(0); i < ReadSectorDelaySteps; i++ {
		d.Step()
	}

	require.EqualValues(t, 1, d.readSector)
	require.Equal(t, []byte{byte(IntFirstAck), byte(IntDataReady)}, d.irqFifo.Bytes())
}

// TestScenarioModeAffectsDataWindow is spec.md §8 scenario 4.
func TestScenarioModeAffectsDataWindow(t *testing.T) {
	d := newTestDrive()
	d.InsertDisk(makeTestImage(t, 4))
	d.mode.Set(0x00) // 2048-byte window

	d.WriteReg(0, 0)
	d.WriteReg(1, 0x06) // ReadN
	for i := uint32(0); i < ReadSectorDelaySteps; i++ {
		d.Step()
	}
	require.True(t, d.readBufValid)

	d.WriteReg(3, 0x80) // Request Register: want data
	require.True(t, d.status.DataFifoNotEmpty)

	for i := 0; i < 2048; i++ {
		d.ReadReg(2)
	}
	require.False(t, d.status.DataFifoNotEmpty)
}

// TestScenarioTestSubfunction is spec.md §8 scenario 5.
func TestScenarioTestSubfunction(t *testing.T) {
	d := newTestDrive()

	d.WriteReg(0, 0)
	d.WriteReg(2, 0x20)
	d.WriteReg(1, 0x19)

	require.Equal(t, []byte{byte(IntFirstAck)}, d.irqFifo.Bytes())
	require.Equal(t, []byte{0x94, 0x09, 0x19, 0xC0}, d.response.Bytes())
}

// TestScenarioUnknownCommand is spec.md §8 scenario 6.
func TestScenarioUnknownCommand(t *testing.T) {
	d := newTestDrive()

	d.WriteReg(0, 0)
	d.WriteReg(1, 0xFF)

	require.Equal(t, []byte{byte(IntError)}, d.irqFifo.Bytes())
	require.Equal(t, []byte{0x11, 0x40}, d.response.Bytes())
}

func TestPlayWithNonEmptyParamsPanics(t *testing.T) {
	d := newTestDrive()
	d.WriteReg(0, 0)
	d.WriteReg(2, 0x00)
	require.Panics(t, func() { d.ExecuteCommand(0x03) })
}

func TestParameterFIFOOverflowPanics(t *testing.T) {
	d := newTestDrive()
	d.WriteReg(0, 0)
	for i := 0; i < fifoDepth; i++ {
		d.WriteReg(2, byte(i))
	}
	require.Panics(t, func() { d.WriteReg(2, 0xFF) })
}

func TestGetTNReportsTrackCount(t *testing.T) {
	d := newTestDrive()
	d.InsertDisk(makeTestImage(t, 4))

	d.WriteReg(0, 0)
	d.WriteReg(1, 0x13)

	require.Equal(t, []byte{d.stat.Byte(), 0x01, 0x01}, d.response.Bytes())
}

func TestGetTDTotalSize(t *testing.T) {
	d := newTestDrive()
	d.InsertDisk(makeTestImage(t, 4))

	d.WriteReg(0, 0)
	d.WriteReg(2, 0x00) // track 0: total size
	d.WriteReg(1, 0x14)

	mm, ss, _ := PositionFromLBA(4).BCD()
	require.Equal(t, []byte{d.stat.Byte(), mm, ss}, d.response.Bytes())
}
