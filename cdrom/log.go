package cdrom

import "log"

// logf reports a non-fatal anomaly: a sync-pattern mismatch, a dropped
// response byte, a read from an empty data buffer, or similar (spec.md §7
// class 3, "warnings only; no state change"). Kept as a single indirection
// so tests can silence or capture it without reaching into the standard
// logger's global state.
var logf = log.Printf
