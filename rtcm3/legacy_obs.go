package rtcm3

import "github.com/fxb-rtcm/rtcm3dec/bitreader"

// Ambiguity units for the legacy (non-MSM) pseudorange encoding: the code
// range travels modulo one light-millisecond (GPS) or two light-milliseconds
// (GLONASS), restored from the 8-/7-bit ambiguity field. Ref RTCM 10403.3 §4.5.
const (
	pseudorangeUnitGPS = 299792.458
	pseudorangeUnitGLO = 599584.916
)

// Sentinel raw values marking "field not included": a 20-/14-bit field
// whose only set bit is the sign bit.
const (
	sentinelPhaseRange20 = -(1 << 19)
	sentinelPhaseDiff14  = -(1 << 13)
)

// legacyHeader is the shared preamble of messages 1001-1004 and 1009-1012:
// station ID, epoch time, synchronous-GNSS flag, and satellite count.
type legacyHeader struct {
	StationID int
	Sync      bool
	NumSats   int
}

// decodeLegacyHeaderGPS reads the 1001-1004 header (tow in ms of GPS week).
func decodeLegacyHeaderGPS(r *bitreader.Reader) (legacyHeader, float64, error) {
	var h legacyHeader
	if err := r.Skip(12); err != nil { // message type, already known to caller
		return h, 0, ErrMessageTooShort
	}
	staid, err := r.GetBits(12)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	towMS, err := r.GetFloat(30, 1.0)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	sync, err := r.GetBits(1)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	nsat, err := r.GetBits(5)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	if err := r.Skip(1 + 3); err != nil { // smoothing indicator + interval
		return h, 0, ErrMessageTooShort
	}
	h.StationID = int(staid)
	h.Sync = sync != 0
	h.NumSats = int(nsat)
	return h, towMS, nil
}

// decodeLegacyHeaderGLONASS reads the 1009-1012 header (tk in ms of day).
func decodeLegacyHeaderGLONASS(r *bitreader.Reader) (legacyHeader, float64, error) {
	var h legacyHeader
	if err := r.Skip(12); err != nil {
		return h, 0, ErrMessageTooShort
	}
	staid, err := r.GetBits(12)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	todMS, err := r.GetFloat(27, 1.0)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	sync, err := r.GetBits(1)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	nsat, err := r.GetBits(5)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	if err := r.Skip(1 + 3); err != nil {
		return h, 0, ErrMessageTooShort
	}
	h.StationID = int(staid)
	h.Sync = sync != 0
	h.NumSats = int(nsat)
	return h, todMS, nil
}

// legacyGPSPRN maps the 6-bit legacy satellite field: 1-39 are GPS PRNs,
// 40-58 are SBAS PRNs 120-138, stored as raw-20 (PRN minus 100).
func legacyGPSPRN(raw int) PRN {
	if raw >= 40 {
		return PRN{System: SystemSBAS, Number: raw - 20}
	}
	return PRN{System: SystemGPS, Number: raw}
}

// decodeType1002 decodes message 1002 (extended L1-only GPS observables)
// into one SatObs per satellite slot.
func decodeType1002(payload []byte) (legacyHeader, float64, []SatObs, error) {
	r := bitreader.New(payload)
	h, towMS, err := decodeLegacyHeaderGPS(r)
	if err != nil {
		return h, 0, nil, err
	}
	obsList := make([]SatObs, 0, h.NumSats)
	for j := 0; j < h.NumSats; j++ {
		if r.Remaining() < 74 {
			break
		}
		prnRaw, _ := r.GetBits(6)
		code, _ := r.GetBits(1)
		pr1Raw, _ := r.GetBits(24)
		ppr1, _ := r.GetBitsSigned(20)
		lock1, _ := r.GetBits(7)
		amb, _ := r.GetBits(8)
		cnr1, _ := r.GetBits(8)

		pr1 := float64(pr1Raw)*0.02 + float64(amb)*pseudorangeUnitGPS
		freqCode := "1C"
		if code > 0 {
			freqCode = "1W"
		}
		fobs := FreqObs{Code: freqCode}
		if ppr1 != sentinelPhaseRange20 {
			fobs.Pseudorange, fobs.PseudorangeValid = pr1, true
			fobs.CarrierPhase = (pr1 + float64(ppr1)*0.0005) * freqL1 / CLight
			fobs.CarrierPhaseValid = true
		}
		fobs.LockTimeIndicator = int(lock1)
		fobs.LockTimeSeconds = legacyLockSeconds(int(lock1))
		fobs.LockTimeValid = fobs.CarrierPhaseValid
		if cnr1 > 0 {
			fobs.SNR, fobs.SNRValid = float64(cnr1)*0.25, true
		}

		obsList = append(obsList, SatObs{
			PRN:         legacyGPSPRN(int(prnRaw)),
			MessageType: 1002,
			Freqs:       []FreqObs{fobs},
		})
	}
	return h, towMS, obsList, nil
}

// gpsL2Codes maps the 2-bit L2 code indicator of 1003/1004 to RINEX codes.
// Indicators 2 and 3 both name the Z-tracking/W flavour.
var gpsL2Codes = [4]string{"2X", "2P", "2W", "2W"}

// decodeType1004 decodes message 1004 (extended L1&L2 GPS observables).
func decodeType1004(payload []byte) (legacyHeader, float64, []SatObs, error) {
	r := bitreader.New(payload)
	h, towMS, err := decodeLegacyHeaderGPS(r)
	if err != nil {
		return h, 0, nil, err
	}
	obsList := make([]SatObs, 0, h.NumSats)
	for j := 0; j < h.NumSats; j++ {
		if r.Remaining() < 125 {
			break
		}
		prnRaw, _ := r.GetBits(6)
		code1, _ := r.GetBits(1)
		pr1Raw, _ := r.GetBits(24)
		ppr1, _ := r.GetBitsSigned(20)
		lock1, _ := r.GetBits(7)
		amb, _ := r.GetBits(8)
		cnr1, _ := r.GetBits(8)
		code2, _ := r.GetBits(2)
		pr21, _ := r.GetBitsSigned(14)
		ppr2, _ := r.GetBitsSigned(20)
		lock2, _ := r.GetBits(7)
		cnr2, _ := r.GetBits(8)

		pr1 := float64(pr1Raw)*0.02 + float64(amb)*pseudorangeUnitGPS

		f1 := FreqObs{Code: "1C"}
		if code1 > 0 {
			f1.Code = "1W"
		}
		if ppr1 != sentinelPhaseRange20 {
			f1.Pseudorange, f1.PseudorangeValid = pr1, true
			f1.CarrierPhase = (pr1 + float64(ppr1)*0.0005) * freqL1 / CLight
			f1.CarrierPhaseValid = true
		}
		f1.LockTimeIndicator = int(lock1)
		f1.LockTimeSeconds = legacyLockSeconds(int(lock1))
		f1.LockTimeValid = f1.CarrierPhaseValid
		if cnr1 > 0 {
			f1.SNR, f1.SNRValid = float64(cnr1)*0.25, true
		}

		f2 := FreqObs{Code: gpsL2Codes[code2]}
		if pr21 != sentinelPhaseDiff14 {
			f2.Pseudorange, f2.PseudorangeValid = pr1+float64(pr21)*0.02, true
		}
		if ppr2 != sentinelPhaseRange20 {
			f2.CarrierPhase = (pr1 + float64(ppr2)*0.0005) * freqL2 / CLight
			f2.CarrierPhaseValid = true
		}
		f2.LockTimeIndicator = int(lock2)
		f2.LockTimeSeconds = legacyLockSeconds(int(lock2))
		f2.LockTimeValid = f2.CarrierPhaseValid
		if cnr2 > 0 {
			f2.SNR, f2.SNRValid = float64(cnr2)*0.25, true
		}

		obsList = append(obsList, SatObs{
			PRN:         legacyGPSPRN(int(prnRaw)),
			MessageType: 1004,
			Freqs:       []FreqObs{f1, f2},
		})
	}
	return h, towMS, obsList, nil
}

// decodeType1010 decodes message 1010 (extended L1-only GLONASS
// observables). freqTable receives each satellite's frequency slot.
func decodeType1010(payload []byte, freqTable *FreqTable) (legacyHeader, float64, []SatObs, error) {
	r := bitreader.New(payload)
	h, todMS, err := decodeLegacyHeaderGLONASS(r)
	if err != nil {
		return h, 0, nil, err
	}
	obsList := make([]SatObs, 0, h.NumSats)
	for j := 0; j < h.NumSats; j++ {
		if r.Remaining() < 79 {
			break
		}
		prnRaw, _ := r.GetBits(6)
		code, _ := r.GetBits(1)
		fcnRaw, _ := r.GetBits(5)
		pr1Raw, _ := r.GetBits(25)
		ppr1, _ := r.GetBitsSigned(20)
		lock1, _ := r.GetBits(7)
		amb, _ := r.GetBits(7)
		cnr1, _ := r.GetBits(8)

		prn := int(prnRaw)
		fcn := int(fcnRaw) - 7
		if freqTable != nil {
			freqTable.Set(prn, fcn)
		}

		pr1 := float64(pr1Raw)*0.02 + float64(amb)*pseudorangeUnitGLO
		fobs := FreqObs{Code: "1C"}
		if code > 0 {
			fobs.Code = "1P"
		}
		if ppr1 != sentinelPhaseRange20 {
			fobs.Pseudorange, fobs.PseudorangeValid = pr1, true
			wavelength, _ := legacyWavelength(SystemGLONASS, 0, fcn, true)
			fobs.CarrierPhase = (pr1 + float64(ppr1)*0.0005) / wavelength
			fobs.CarrierPhaseValid = true
		}
		fobs.LockTimeIndicator = int(lock1)
		fobs.LockTimeSeconds = legacyLockSeconds(int(lock1))
		fobs.LockTimeValid = fobs.CarrierPhaseValid
		if cnr1 > 0 {
			fobs.SNR, fobs.SNRValid = float64(cnr1)*0.25, true
		}

		obsList = append(obsList, SatObs{
			PRN:         PRN{System: SystemGLONASS, Number: prn},
			MessageType: 1010,
			Freqs:       []FreqObs{fobs},
		})
	}
	return h, todMS, obsList, nil
}

// decodeType1012 decodes message 1012 (extended L1&L2 GLONASS observables).
func decodeType1012(payload []byte, freqTable *FreqTable) (legacyHeader, float64, []SatObs, error) {
	r := bitreader.New(payload)
	h, todMS, err := decodeLegacyHeaderGLONASS(r)
	if err != nil {
		return h, 0, nil, err
	}
	obsList := make([]SatObs, 0, h.NumSats)
	for j := 0; j < h.NumSats; j++ {
		if r.Remaining() < 130 {
			break
		}
		prnRaw, _ := r.GetBits(6)
		code1, _ := r.GetBits(1)
		fcnRaw, _ := r.GetBits(5)
		pr1Raw, _ := r.GetBits(25)
		ppr1, _ := r.GetBitsSigned(20)
		lock1, _ := r.GetBits(7)
		amb, _ := r.GetBits(7)
		cnr1, _ := r.GetBits(8)
		code2, _ := r.GetBits(2)
		pr21, _ := r.GetBitsSigned(14)
		ppr2, _ := r.GetBitsSigned(20)
		lock2, _ := r.GetBits(7)
		cnr2, _ := r.GetBits(8)

		prn := int(prnRaw)
		fcn := int(fcnRaw) - 7
		if freqTable != nil {
			freqTable.Set(prn, fcn)
		}

		pr1 := float64(pr1Raw)*0.02 + float64(amb)*pseudorangeUnitGLO
		wl1, _ := legacyWavelength(SystemGLONASS, 0, fcn, true)
		wl2, _ := legacyWavelength(SystemGLONASS, 1, fcn, true)

		f1 := FreqObs{Code: "1C"}
		if code1 > 0 {
			f1.Code = "1P"
		}
		if ppr1 != sentinelPhaseRange20 {
			f1.Pseudorange, f1.PseudorangeValid = pr1, true
			f1.CarrierPhase = (pr1 + float64(ppr1)*0.0005) / wl1
			f1.CarrierPhaseValid = true
		}
		f1.LockTimeIndicator = int(lock1)
		f1.LockTimeSeconds = legacyLockSeconds(int(lock1))
		f1.LockTimeValid = f1.CarrierPhaseValid
		if cnr1 > 0 {
			f1.SNR, f1.SNRValid = float64(cnr1)*0.25, true
		}

		f2 := FreqObs{Code: "2C"}
		if code2 > 0 {
			f2.Code = "2P"
		}
		if pr21 != sentinelPhaseDiff14 {
			f2.Pseudorange, f2.PseudorangeValid = pr1+float64(pr21)*0.02, true
		}
		if ppr2 != sentinelPhaseRange20 {
			f2.CarrierPhase = (pr1 + float64(ppr2)*0.0005) / wl2
			f2.CarrierPhaseValid = true
		}
		f2.LockTimeIndicator = int(lock2)
		f2.LockTimeSeconds = legacyLockSeconds(int(lock2))
		f2.LockTimeValid = f2.CarrierPhaseValid
		if cnr2 > 0 {
			f2.SNR, f2.SNRValid = float64(cnr2)*0.25, true
		}

		obsList = append(obsList, SatObs{
			PRN:         PRN{System: SystemGLONASS, Number: prn},
			MessageType: 1012,
			Freqs:       []FreqObs{f1, f2},
		})
	}
	return h, todMS, obsList, nil
}
