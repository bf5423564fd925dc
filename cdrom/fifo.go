package cdrom

// fifoDepth is the maximum number of entries any of the four FIFOs holds.
const fifoDepth = 16

// byteFIFO is a fixed-capacity ring buffer, adapted from the host CPU's own
// command FIFO: a 4-bit index plus a carry bit lets IsEmpty/IsFull be
// computed from the two pointers alone, with no separate length counter.
type byteFIFO struct {
	buf      [fifoDepth]byte
	writePtr uint8
	readPtr  uint8
}

func newByteFIFO() *byteFIFO {
	return &byteFIFO{}
}

// IsEmpty reports whether the FIFO holds no bytes.
func (f *byteFIFO) IsEmpty() bool {
	return f.writePtr == f.readPtr
}

// IsFull reports whether the FIFO is at capacity.
func (f *byteFIFO) IsFull() bool {
	return f.writePtr == f.readPtr^(fifoDepth)
}

// Len returns the number of bytes currently queued.
func (f *byteFIFO) Len() int {
	return int((f.writePtr - f.readPtr) & (2*fifoDepth - 1))
}

// Clear empties the FIFO.
func (f *byteFIFO) Clear() {
	f.readPtr = 0
	f.writePtr = 0
}

// Push enqueues one byte. The caller must check IsFull first; pushing past
// capacity silently overwrites the oldest unread byte, matching the
// hardware ring buffer's wraparound.
func (f *byteFIFO) Push(v byte) {
	f.buf[f.writePtr&(fifoDepth-1)] = v
	f.writePtr = (f.writePtr + 1) & (2*fifoDepth - 1)
}

// Pop dequeues and returns the oldest byte. Calling Pop on an empty FIFO is
// a precondition violation (spec §7 class 2) and panics.
func (f *byteFIFO) Pop() byte {
	if f.IsEmpty() {
		panicf("cdrom: pop from empty FIFO")
	}
	idx := f.readPtr & (fifoDepth - 1)
	f.readPtr = (f.readPtr + 1) & (2*fifoDepth - 1)
	return f.buf[idx]
}

// Peek returns the oldest byte without dequeuing it. The second return
// value is false if the FIFO is empty.
func (f *byteFIFO) Peek() (byte, bool) {
	if f.IsEmpty() {
		return 0, false
	}
	return f.buf[f.readPtr&(fifoDepth-1)], true
}

// Bytes returns a snapshot of the queued bytes, oldest first. It does not
// mutate the FIFO; intended for tests and logging.
func (f *byteFIFO) Bytes() []byte {
	out := make([]byte, 0, f.Len())
	for i, n := f.readPtr, f.Len(); n > 0; n-- {
		out = append(out, f.buf[i&(fifoDepth-1)])
		i++
	}
	return out
}
