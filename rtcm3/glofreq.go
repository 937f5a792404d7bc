package rtcm3

import "sync"

// MaxGLONASSSlot is the highest GLONASS orbital slot number this table
// tracks (slots are 1-based, matching the legacy and MSM frequency-slot
// fields).
const MaxGLONASSSlot = 32

// FreqTable is the cross-stream GLONASS frequency-slot table: writes from
// the 1010/1012/1020 decoders and MSM extended info, reads from MSM
// wavelength resolution. It is an explicit handle rather than a package
// global so Decoder instances stay independently testable; stations that
// should pool slot knowledge share one *FreqTable.
//
// Slot k's stored value is 0 for "unknown" and 100+k for "known, frequency
// number k" (k in [-7,13]), per the data model invariant.
type FreqTable struct {
	mu   sync.Mutex
	slot [MaxGLONASSSlot + 1]int
}

// NewFreqTable returns an empty, ready-to-use table.
func NewFreqTable() *FreqTable {
	return &FreqTable{}
}

// Set records the GLONASS frequency number k for the given 1-based slot.
// Writes are idempotent last-writer-wins overwrites.
func (t *FreqTable) Set(slot int, k int) {
	if slot < 1 || slot > MaxGLONASSSlot {
		return
	}
	t.mu.Lock()
	t.slot[slot] = 100 + k
	t.mu.Unlock()
}

// Get returns the known frequency number for slot and true, or (0, false)
// if the slot's frequency number is unknown.
func (t *FreqTable) Get(slot int) (int, bool) {
	if slot < 1 || slot > MaxGLONASSSlot {
		return 0, false
	}
	t.mu.Lock()
	raw := t.slot[slot]
	t.mu.Unlock()
	if raw == 0 {
		return 0, false
	}
	return raw - 100, true
}
