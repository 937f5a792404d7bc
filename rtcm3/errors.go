package rtcm3

import "errors"

// Sentinel errors returned by the decode functions. A message that fails
// one of these checks is dropped: the caller logs it (via Logger) and
// continues with the next frame rather than aborting the stream.
var (
	ErrMessageTooShort  = errors.New("rtcm3: message payload too short for its type")
	ErrMessageWrongSize = errors.New("rtcm3: message payload size does not match its type")
	ErrImplausibleOrbit = errors.New("rtcm3: orbital parameters fail plausibility check")
	ErrHealthMismatch   = errors.New("rtcm3: inconsistent health/signal-status fields")
	ErrCellMaskTooLarge = errors.New("rtcm3: MSM cell count exceeds decoder limit")

	// ErrPartialMSMData marks MSM subtypes 1-3, which lack the integer
	// millisecond range and are skipped after their header (epoch time and
	// sync flag) has been consumed.
	ErrPartialMSMData = errors.New("rtcm3: MSM subtype carries partial data")
)
