package rtcm3

import "github.com/fxb-rtcm/rtcm3dec/bitreader"

// rangeMS is one light-millisecond in meters, the MSM rough-range unit.
const rangeMS = CLight * 0.001

// maxMSMCells bounds the number of (satellite, signal) cells a single MSM
// frame may carry. Frames above the limit are discarded with a diagnostic.
const maxMSMCells = 96

// msmHeader is the decoded common preamble shared by all MSM subtypes
// (1-7) across every constellation: epoch time, sync flag, satellite mask,
// signal mask, and cell mask. The session and clock-steering indicator
// bits are consumed but not surfaced.
type msmHeader struct {
	StationID int
	Sync      bool
	IOD       int
	Sats      []int // 1-64, satellite mask bit positions that are set
	Sigs      []int // 1-32, signal mask bit positions that are set
	CellMask  []bool
	NCell     int
}

func decodeMSMHeader(r *bitreader.Reader, sys System) (msmHeader, float64, error) {
	var h msmHeader
	if err := r.Skip(12); err != nil {
		return h, 0, ErrMessageTooShort
	}
	staid, err := r.GetBits(12)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	var towMS float64
	switch sys {
	case SystemGLONASS:
		if err := r.Skip(3); err != nil { // day of week
			return h, 0, ErrMessageTooShort
		}
		tod, e := r.GetBits(27)
		if e != nil {
			return h, 0, ErrMessageTooShort
		}
		towMS = float64(tod)
	default: // GPS-style and BDS time of week
		tow, e := r.GetBits(30)
		if e != nil {
			return h, 0, ErrMessageTooShort
		}
		towMS = float64(tow)
	}
	sync, err := r.GetBits(1)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	iod, err := r.GetBits(3)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	if err := r.Skip(7 + 2 + 2 + 1 + 3); err != nil { // time_s, clk_str, clk_ext, smooth, tint_s
		return h, 0, ErrMessageTooShort
	}

	satMask, err := r.GetBits(64)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}
	sigMask, err := r.GetBits(32)
	if err != nil {
		return h, 0, ErrMessageTooShort
	}

	h.StationID = int(staid)
	h.Sync = sync != 0
	h.IOD = int(iod)
	for j := 1; j <= 64; j++ {
		if satMask&(1<<uint(64-j)) != 0 {
			h.Sats = append(h.Sats, j)
		}
	}
	for j := 1; j <= 32; j++ {
		if sigMask&(1<<uint(32-j)) != 0 {
			h.Sigs = append(h.Sigs, j)
		}
	}

	ncell := len(h.Sats) * len(h.Sigs)
	if ncell > maxMSMCells {
		return h, towMS, ErrCellMaskTooLarge
	}
	h.CellMask = make([]bool, ncell)
	for j := 0; j < ncell; j++ {
		b, e := r.GetBits(1)
		if e != nil {
			return h, 0, ErrMessageTooShort
		}
		if b != 0 {
			h.CellMask[j] = true
			h.NCell++
		}
	}
	return h, towMS, nil
}

// msmFieldWidths names the per-subtype bit widths and scales that differ
// between MSM 4/5 (standard resolution) and MSM 6/7 (extended resolution),
// and whether the subtype carries phase-range-rate (Doppler) data.
type msmFieldWidths struct {
	pseudorangeBits  int
	pseudorangeScale float64 // light-ms
	phaseRangeBits   int
	phaseRangeScale  float64 // light-ms
	lockBits         int
	cnrBits          int
	cnrScale         float64
	hasRate          bool
}

var msmWidths = map[int]msmFieldWidths{
	4: {pseudorangeBits: 15, pseudorangeScale: p2_24, phaseRangeBits: 22, phaseRangeScale: p2_29, lockBits: 4, cnrBits: 6, cnrScale: 1.0},
	5: {pseudorangeBits: 15, pseudorangeScale: p2_24, phaseRangeBits: 22, phaseRangeScale: p2_29, lockBits: 4, cnrBits: 6, cnrScale: 1.0, hasRate: true},
	6: {pseudorangeBits: 20, pseudorangeScale: p2_29, phaseRangeBits: 24, phaseRangeScale: p2_31, lockBits: 10, cnrBits: 10, cnrScale: 0.0625},
	7: {pseudorangeBits: 20, pseudorangeScale: p2_29, phaseRangeBits: 24, phaseRangeScale: p2_31, lockBits: 10, cnrBits: 10, cnrScale: 0.0625, hasRate: true},
}

// Fine-field validity thresholds, light-ms and m/s. A value at or below the
// threshold is the extended sentinel range meaning "not measured".
const (
	msmPsrInvalid = -p2_10   // fine pseudorange
	msmPhInvalid  = -1.0 / 256 // fine phase range
	msmDopInvalid = -1.6384  // fine phase range rate
)

// decodeMSM decodes the body of one MSM message. Subtypes 4-7 yield
// observations; subtypes 1-3 carry partial data (no integer-millisecond
// range), so only the header is consumed and ErrPartialMSMData is returned
// with the header intact — the caller still honours the epoch time and sync
// flag, and logs the skip.
func decodeMSM(payload []byte, sys System, subtype int, freqTable *FreqTable) (msmHeader, float64, []SatObs, error) {
	r := bitreader.New(payload)
	h, towMS, err := decodeMSMHeader(r, sys)
	if err != nil {
		return h, towMS, nil, err
	}
	widths, ok := msmWidths[subtype]
	if !ok {
		return h, towMS, nil, ErrPartialMSMData
	}

	nsat := len(h.Sats)
	nsig := len(h.Sigs)

	roughMS := make([]float64, nsat) // integer + fractional rough range, light-ms
	extInfo := make([]int, nsat)
	rate := make([]float64, nsat)

	for j := 0; j < nsat; j++ {
		extInfo[j] = 15
	}
	for j := 0; j < nsat; j++ {
		rng, e := r.GetBits(8)
		if e != nil {
			return h, towMS, nil, ErrMessageTooShort
		}
		roughMS[j] = float64(rng)
	}
	if widths.hasRate {
		for j := 0; j < nsat; j++ {
			ex, e := r.GetBits(4)
			if e != nil {
				return h, towMS, nil, ErrMessageTooShort
			}
			extInfo[j] = int(ex)
		}
	}
	for j := 0; j < nsat; j++ {
		frac, e := r.GetBits(10)
		if e != nil {
			return h, towMS, nil, ErrMessageTooShort
		}
		roughMS[j] += float64(frac) * p2_10
	}
	if widths.hasRate {
		for j := 0; j < nsat; j++ {
			rv, e := r.GetBitsSigned(14)
			if e != nil {
				return h, towMS, nil, ErrMessageTooShort
			}
			rate[j] = float64(rv)
		}
	}

	ncell := h.NCell
	psr := make([]float64, ncell) // light-ms
	cp := make([]float64, ncell)  // light-ms
	lock := make([]int, ncell)
	half := make([]bool, ncell)
	cnr := make([]float64, ncell)
	dop := make([]float64, ncell) // m/s

	for j := 0; j < ncell; j++ {
		v, e := r.GetBitsSigned(widths.pseudorangeBits)
		if e != nil {
			return h, towMS, nil, ErrMessageTooShort
		}
		psr[j] = float64(v) * widths.pseudorangeScale
	}
	for j := 0; j < ncell; j++ {
		v, e := r.GetBitsSigned(widths.phaseRangeBits)
		if e != nil {
			return h, towMS, nil, ErrMessageTooShort
		}
		cp[j] = float64(v) * widths.phaseRangeScale
	}
	for j := 0; j < ncell; j++ {
		v, e := r.GetBits(widths.lockBits)
		if e != nil {
			return h, towMS, nil, ErrMessageTooShort
		}
		lock[j] = int(v)
	}
	for j := 0; j < ncell; j++ {
		v, e := r.GetBits(1)
		if e != nil {
			return h, towMS, nil, ErrMessageTooShort
		}
		half[j] = v != 0
	}
	for j := 0; j < ncell; j++ {
		v, e := r.GetBits(widths.cnrBits)
		if e != nil {
			return h, towMS, nil, ErrMessageTooShort
		}
		cnr[j] = float64(v) * widths.cnrScale
	}
	if widths.hasRate {
		for j := 0; j < ncell; j++ {
			v, e := r.GetBitsSigned(15)
			if e != nil {
				return h, towMS, nil, ErrMessageTooShort
			}
			dop[j] = float64(v) * 0.0001
		}
	}

	sigTable := signalTable(sys)
	messageType := msmMessageType(sys, subtype)
	obsList := make([]SatObs, 0, nsat)
	cellIdx := 0
	for i, satMaskBit := range h.Sats {
		prn := satMaskBit
		if sys == SystemSBAS {
			prn += 19 // mask bit 1 is S20 (PRN 120)
		}

		glonassK := 0
		glonassKKnown := false
		if sys == SystemGLONASS {
			if extInfo[i] < 14 {
				// channel number travels as extended info on MSM5/7
				glonassK = extInfo[i] - 7
				glonassKKnown = true
				if freqTable != nil {
					freqTable.Set(satMaskBit, glonassK)
				}
			} else if freqTable != nil {
				glonassK, glonassKKnown = freqTable.Get(satMaskBit)
			}
		}

		var freqs []FreqObs
		for k := range h.Sigs {
			if !h.CellMask[i*nsig+k] {
				continue
			}
			j := cellIdx
			cellIdx++

			entry := sigTable[h.Sigs[k]-1]
			if entry.code == "" {
				continue
			}
			wavelength, wOK := entry.wavelength(glonassK, glonassKKnown)
			if !wOK {
				// GLONASS signal with no usable frequency slot
				continue
			}

			var fobs FreqObs
			fobs.Code = entry.code
			if psr[j] > msmPsrInvalid {
				fobs.Pseudorange = (roughMS[i] + psr[j]) * rangeMS
				fobs.PseudorangeValid = true
			}
			if cp[j] > msmPhInvalid {
				fobs.CarrierPhase = (roughMS[i] + cp[j]) * rangeMS / wavelength
				fobs.CarrierPhaseValid = true
				fobs.LockTimeIndicator = lock[j]
				if widths.lockBits == 10 {
					fobs.LockTimeSeconds = msmExtendedLockSeconds(lock[j])
				} else {
					fobs.LockTimeSeconds = msmLockSeconds(lock[j])
				}
				fobs.LockTimeValid = true
				if half[j] {
					fobs.LLI |= 2
				}
			}
			fobs.SNR = cnr[j]
			fobs.SNRValid = true
			if widths.hasRate && dop[j] > msmDopInvalid {
				fobs.Doppler = -(dop[j] + rate[i]) / wavelength
				fobs.DopplerValid = true
			}

			freqs = append(freqs, fobs)
		}
		if len(freqs) == 0 {
			continue
		}
		obsList = append(obsList, SatObs{
			PRN:         PRN{System: sys, Number: prn},
			MessageType: messageType,
			Freqs:       freqs,
		})
	}

	return h, towMS, obsList, nil
}

// msmMessageType recovers the RTCM message number from a constellation and
// MSM subtype (GPS 107x, GLONASS 108x, Galileo 109x, SBAS 110x, QZSS 111x,
// BeiDou 112x, IRNSS 113x).
func msmMessageType(sys System, subtype int) int {
	base := 1070
	switch sys {
	case SystemGLONASS:
		base = 1080
	case SystemGalileo:
		base = 1090
	case SystemSBAS:
		base = 1100
	case SystemQZSS:
		base = 1110
	case SystemBeiDou:
		base = 1120
	case SystemIRNSS:
		base = 1130
	}
	return base + subtype
}
