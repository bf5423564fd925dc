package cdrom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReg0WriteOnlyChangesIndex(t *testing.T) {
	d := newTestDrive()
	before := d.status
	before.Index = 0

	d.WriteReg(0, 0b10)

	require.EqualValues(t, 0b10, d.status.Index)
	after := d.status
	after.Index = 0
	require.Equal(t, before, after)
}

func TestReg2Bank0WritePushesParam(t *testing.T) {
	d := newTestDrive()
	d.WriteReg(0, 0)

	d.WriteReg(2, 0x42)

	require.Equal(t, 1, d.params.Len())
	require.False(t, d.status.ParamFifoEmpty)
}

func TestDataFifoNotEmptyInvariant(t *testing.T) {
	d := newTestDrive()
	d.InsertDisk(makeTestImage(t, 2))
	d.mode.Set(0x00)

	require.False(t, d.status.DataFifoNotEmpty)

	d.WriteReg(0, 0)
	d.WriteReg(1, 0x06)
	for i := uint32(0); i < ReadSectorDelaySteps; i++ {
		d.Step()
	}

	d.WriteReg(0, 0)
	d.WriteReg(3, 0x80)
	require.Equal(t, d.dataBufValid && d.dataBufIndex < d.mode.SectorSize(), d.status.DataFifoNotEmpty)

	for i := 0; i < d.mode.SectorSize(); i++ {
		d.ReadReg(2)
		require.Equal(t, d.dataBufValid && d.dataBufIndex < d.mode.SectorSize(), d.status.DataFifoNotEmpty)
	}
}

func TestInterruptRaisedOnlyWhenMaskedHeadNonzero(t *testing.T) {
	d := newTestDrive()
	sink := d.sink.(*RecordingInterruptSink)

	d.WriteReg(0, 0)
	d.WriteReg(1, 0x01) // Getstat -> irqFifo = [3]

	d.intEnable = 0 // masked out
	d.Step()
	require.Equal(t, 0, sink.Count)

	d.intEnable = 0b111
	d.Step()
	require.Equal(t, 1, sink.Count)
}

func TestRequestRegisterMovesReadBufOnce(t *testing.T) {
	d := newTestDrive()
	d.InsertDisk(makeTestImage(t, 2))

	d.WriteReg(0, 0)
	d.WriteReg(1, 0x06)
	for i := uint32(0); i < ReadSectorDelaySteps; i++ {
		d.Step()
	}
	require.True(t, d.readBufValid)

	d.WriteReg(3, 0x80)
	require.False(t, d.readBufValid)
	require.True(t, d.dataBufValid)

	// a second "want data" while the data buffer is still full must not
	// clobber it (spec.md §4.G: "else do nothing").
	snapshot := d.dataBuf
	d.readBufValid = true // pretend another sector arrived
	d.WriteReg(3, 0x80)
	require.Equal(t, snapshot, d.dataBuf)
}
