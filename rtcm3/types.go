// Package rtcm3 decodes the RTCM 3 binary message stream used to carry
// real-time GNSS observations, broadcast ephemerides, and reference
// station metadata from a framed byte stream, following RTCM Standard
// 10403.3 (with amendment 1) message layouts.
package rtcm3

import "math"

// CLight is the speed of light in vacuum, m/s.
const CLight = 299792458.0

// System identifies the GNSS constellation a PRN belongs to.
type System byte

const (
	SystemGPS      System = 'G'
	SystemGLONASS  System = 'R'
	SystemGalileo  System = 'E'
	SystemBeiDou   System = 'C'
	SystemQZSS     System = 'J'
	SystemIRNSS    System = 'I'
	SystemSBAS     System = 'S'
	SystemUnknown  System = 0
)

// PRN identifies a satellite by constellation and number. SBAS numbers are
// stored as the SBAS PRN minus 100 (PRN 120 is S20).
type PRN struct {
	System System
	Number int
}

// Time is a constellation-agnostic time-of-week representation. The zero
// value is "unset" (Valid() == false); equality compares the represented
// instant, not the constructor used to build it.
type Time struct {
	sec   float64 // continuous seconds on a GPS-time-like scale
	valid bool
}

// NewGPSTime builds a Time from a GPS week number and milliseconds of week.
func NewGPSTime(week int, towMS uint32) Time {
	return Time{sec: float64(week)*604800.0 + float64(towMS)/1000.0, valid: true}
}

// bdtToGPSWeekOffset is the number of GPS weeks between the GPS epoch and
// the BeiDou Time epoch (2006-01-01 00:00:00 UTC).
const bdtToGPSWeekOffset = 1356

// bdtToGPSLeapOffset is the constant leap-second offset between BDT and
// GPST (BDT runs 14s behind GPST; both are leap-second-free scales after
// their respective epochs).
const bdtToGPSLeapOffset = 14.0

// NewBDTTime builds a Time from a BeiDou Time week number and milliseconds
// of BDT week.
func NewBDTTime(week int, towMS uint32) Time {
	sec := float64(week+bdtToGPSWeekOffset)*604800.0 + float64(towMS)/1000.0 + bdtToGPSLeapOffset
	return Time{sec: sec, valid: true}
}

// moscowUTCOffset is the fixed Moscow-time-to-UTC offset used to interpret
// the GLONASS tk field. This package carries no leap-second source, so the
// UTC/GPST distinction below is treated as negligible for tk
// disambiguation purposes.
const moscowUTCOffset = 3 * 3600.0

// NewGLONASSTime builds a Time from a GLONASS tk field (milliseconds of day
// in Moscow time), disambiguating the day boundary against ref, the
// decoder's most recently resolved Time. If ref is not valid, tk is
// interpreted as seconds into an arbitrary day zero.
func NewGLONASSTime(tkMS uint32, ref Time) Time {
	tod := float64(tkMS) / 1000.0
	utcTod := tod - moscowUTCOffset
	if utcTod < 0 {
		utcTod += 86400.0
	}
	if !ref.valid {
		return Time{sec: utcTod, valid: true}
	}
	refTod := math.Mod(ref.sec, 86400.0)
	dayStart := ref.sec - refTod
	cand := dayStart + utcTod
	switch {
	case cand < ref.sec-43200.0:
		cand += 86400.0
	case cand > ref.sec+43200.0:
		cand -= 86400.0
	}
	return Time{sec: cand, valid: true}
}

// Valid reports whether t represents a resolved instant.
func (t Time) Valid() bool { return t.valid }

// Equal reports whether t and o represent the same instant, within a
// sub-millisecond tolerance to absorb floating point scaling error.
func (t Time) Equal(o Time) bool {
	if !t.valid || !o.valid {
		return t.valid == o.valid
	}
	return math.Abs(t.sec-o.sec) < 1e-6
}

// Sub returns t-o in seconds. Both must be valid.
func (t Time) Sub(o Time) float64 { return t.sec - o.sec }

// FreqObs is one frequency-band observation: a RINEX-style 2-character
// band+attribute code plus optional code pseudorange, carrier phase,
// Doppler, SNR, and lock-time fields. Each numeric field carries its own
// validity bit; an invalid field must never be read as zero.
type FreqObs struct {
	// Code is the RINEX-2-char band+attribute signal code, e.g. "1C", "2W", "5Q".
	Code string

	Pseudorange      float64 // meters
	PseudorangeValid bool

	CarrierPhase      float64 // cycles
	CarrierPhaseValid bool

	Doppler      float64 // Hz
	DopplerValid bool

	SNR      float64 // dB-Hz
	SNRValid bool

	LockTimeIndicator int // raw RTCM lock-time index
	LockTimeValid     bool
	LockTimeSeconds   float64 // decoded seconds, valid iff LockTimeValid

	// LLI is the loss-of-lock indicator accumulated across calls to Decode
	// for this satellite/band: bit 0 means lock was lost since the last
	// observation, bit 1 that the half-cycle ambiguity is unresolved.
	LLI int
}

// SatObs is one satellite's observation set for one epoch.
type SatObs struct {
	PRN         PRN
	Time        Time
	MessageType int // the RTCM message number this observation was decoded from
	Freqs       []FreqObs
}

// Empty reports whether obs carries no valid frequency observations and
// should be dropped before emission.
func (obs SatObs) Empty() bool { return len(obs.Freqs) == 0 }
