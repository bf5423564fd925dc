package cdrom

// InterruptCause is an interrupt-cause code, pushed into the interrupt
// FIFO and observable at MMIO Reg 3 bank 1/3 (§6).
type InterruptCause uint8

const (
	// IntDataReady ("INT1") signals a sector is ready in the data buffer.
	IntDataReady InterruptCause = 1
	// IntSecondAck ("INT2") signals completion of a deferred command
	// effect (motor spin-up, stop, seek, init...).
	IntSecondAck InterruptCause = 2
	// IntFirstAck ("INT3") acknowledges receipt of a command.
	IntFirstAck InterruptCause = 3
	// IntError ("INT5") signals a rejected command.
	IntError InterruptCause = 5
)

// InterruptSink is the entire surface this package needs from "the
// external interrupt controller" (spec.md §1 treats the controller itself
// as an outside collaborator). Step raises an edge on it whenever the
// interrupt FIFO's head, masked by the interrupt-enable register, is
// nonzero.
type InterruptSink interface {
	RaiseCDROM()
}

// NopInterruptSink discards every raised edge.
type NopInterruptSink struct{}

func (NopInterruptSink) RaiseCDROM() {}

// RecordingInterruptSink counts raised edges, for tests.
type RecordingInterruptSink struct {
	Count int
}

func (r *RecordingInterruptSink) RaiseCDROM() { r.Count++ }
