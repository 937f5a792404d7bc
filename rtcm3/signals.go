package rtcm3

// Carrier frequencies (Hz) per GNSS band.
const (
	freqL1    = 1.57542e9  // L1/E1/B1C
	freqL2    = 1.22760e9  // L2
	freqL5    = 1.17645e9  // L5/E5a/B2a
	freqE6    = 1.27875e9  // E6/L6
	freqE5b   = 1.20714e9  // E5b/B2I/B2b
	freqE5ab  = 1.191795e9 // E5a+b/B2ab
	freqS     = 2.492028e9 // S-band (IRNSS)
	freqB1I   = 1.561098e9 // BeiDou B1I
	freqB3    = 1.26852e9  // BeiDou B3

	glonassG1Base = 1.60200e9  // GLONASS G1 base
	glonassG1Step = 0.56250e6  // GLONASS G1 step per frequency number
	glonassG2Base = 1.24600e9  // GLONASS G2 base
	glonassG2Step = 0.43750e6  // GLONASS G2 step per frequency number
)

// bandKind tags how a signal's carrier frequency is resolved. GLONASS
// signals can't be resolved from the signal table alone: the actual
// frequency depends on the satellite's frequency slot, known only at
// decode time.
type bandKind int

const (
	bandNone bandKind = iota
	bandFixed
	bandGloL1
	bandGloL2
)

type sigEntry struct {
	code string
	kind bandKind
	freq float64 // meaningful iff kind == bandFixed
}

func fixed(code string, freq float64) sigEntry { return sigEntry{code: code, kind: bandFixed, freq: freq} }
func gloL1(code string) sigEntry               { return sigEntry{code: code, kind: bandGloL1} }
func gloL2(code string) sigEntry               { return sigEntry{code: code, kind: bandGloL2} }

// MSM signal ID tables, 32 entries each, indexed by (signal-mask bit - 1).
// An empty code means "reserved/unknown": callers must skip these entries.
var msmSignalsGPS = [32]sigEntry{
	{}, fixed("1C", freqL1), fixed("1P", freqL1), fixed("1W", freqL1), {}, {}, {}, fixed("2C", freqL2),
	fixed("2P", freqL2), fixed("2W", freqL2), {}, {}, {}, {}, fixed("2S", freqL2), fixed("2L", freqL2),
	fixed("2X", freqL2), {}, {}, {}, {}, fixed("5I", freqL5), fixed("5Q", freqL5), fixed("5X", freqL5),
	{}, {}, {}, {}, {}, fixed("1S", freqL1), fixed("1L", freqL1), fixed("1X", freqL1),
}

var msmSignalsGLONASS = [32]sigEntry{
	{}, gloL1("1C"), gloL1("1P"), {}, {}, {}, {}, gloL2("2C"),
	gloL2("2P"), {}, {}, {}, {}, {}, {}, {},
	{}, {}, {}, {}, {}, {}, {}, {},
	{}, {}, {}, {}, {}, {}, {}, {},
}

var msmSignalsGalileo = [32]sigEntry{
	{}, fixed("1C", freqL1), fixed("1A", freqL1), fixed("1B", freqL1), fixed("1X", freqL1), fixed("1Z", freqL1), {}, fixed("6C", freqE6),
	fixed("6A", freqE6), fixed("6B", freqE6), fixed("6X", freqE6), fixed("6Z", freqE6), {}, fixed("7I", freqE5b), fixed("7Q", freqE5b), fixed("7X", freqE5b),
	{}, fixed("8I", freqE5ab), fixed("8Q", freqE5ab), fixed("8X", freqE5ab), {}, fixed("5I", freqL5), fixed("5Q", freqL5), fixed("5X", freqL5),
	{}, {}, {}, {}, {}, {}, {}, {},
}

var msmSignalsQZSS = [32]sigEntry{
	{}, fixed("1C", freqL1), {}, {}, {}, {}, {}, {},
	fixed("6S", freqE6), fixed("6L", freqE6), fixed("6X", freqE6), {}, {}, {}, fixed("2S", freqL2), fixed("2L", freqL2),
	fixed("2X", freqL2), {}, {}, {}, {}, fixed("5I", freqL5), fixed("5Q", freqL5), fixed("5X", freqL5),
	{}, {}, {}, {}, {}, fixed("1S", freqL1), fixed("1L", freqL1), fixed("1X", freqL1),
}

var msmSignalsSBAS = [32]sigEntry{
	{}, fixed("1C", freqL1), {}, {}, {}, {}, {}, {},
	{}, {}, {}, {}, {}, {}, {}, {},
	{}, {}, {}, {}, {}, fixed("5I", freqL5), fixed("5Q", freqL5), fixed("5X", freqL5),
	{}, {}, {}, {}, {}, {}, {}, {},
}

var msmSignalsBeiDou = [32]sigEntry{
	{}, fixed("2I", freqB1I), fixed("2Q", freqB1I), fixed("2X", freqB1I), {}, {}, {}, fixed("6I", freqB3),
	fixed("6Q", freqB3), fixed("6X", freqB3), {}, {}, {}, fixed("7I", freqE5b), fixed("7Q", freqE5b), fixed("7X", freqE5b),
	{}, {}, {}, {}, {}, fixed("5D", freqL5), fixed("5P", freqL5), fixed("5X", freqL5),
	{}, {}, {}, {}, {}, fixed("1D", freqL1), fixed("1P", freqL1), fixed("1X", freqL1),
}

var msmSignalsIRNSS = [32]sigEntry{
	{}, {}, {}, {}, {}, {}, {}, {},
	{}, {}, {}, {}, {}, {}, {}, {},
	{}, {}, {}, {}, {}, fixed("5A", freqL5), {}, {},
	{}, {}, {}, {}, {}, {}, {}, {},
}

func signalTable(sys System) [32]sigEntry {
	switch sys {
	case SystemGPS:
		return msmSignalsGPS
	case SystemGLONASS:
		return msmSignalsGLONASS
	case SystemGalileo:
		return msmSignalsGalileo
	case SystemQZSS:
		return msmSignalsQZSS
	case SystemSBAS:
		return msmSignalsSBAS
	case SystemBeiDou:
		return msmSignalsBeiDou
	case SystemIRNSS:
		return msmSignalsIRNSS
	default:
		return [32]sigEntry{}
	}
}

// wavelength resolves a signal table entry to a wavelength in meters. For
// GLONASS entries it needs the satellite's frequency number k (as stored by
// FreqTable, or the ext-info field of an MSM5/7 header); ok is false if a
// GLONASS signal's slot is unknown.
func (e sigEntry) wavelength(glonassK int, glonassKKnown bool) (float64, bool) {
	switch e.kind {
	case bandFixed:
		return CLight / e.freq, true
	case bandGloL1:
		if !glonassKKnown {
			return 0, false
		}
		return CLight / (glonassG1Base + glonassG1Step*float64(glonassK)), true
	case bandGloL2:
		if !glonassKKnown {
			return 0, false
		}
		return CLight / (glonassG2Base + glonassG2Step*float64(glonassK)), true
	default:
		return 0, false
	}
}

// legacyWavelength resolves the wavelength used by the legacy (non-MSM)
// GPS/SBAS/GLONASS L1/L2 observation decoders.
func legacyWavelength(sys System, band int, glonassK int, glonassKKnown bool) (float64, bool) {
	switch sys {
	case SystemGLONASS:
		switch band {
		case 0:
			if !glonassKKnown {
				return 0, false
			}
			return CLight / (glonassG1Base + glonassG1Step*float64(glonassK)), true
		case 1:
			if !glonassKKnown {
				return 0, false
			}
			return CLight / (glonassG2Base + glonassG2Step*float64(glonassK)), true
		}
		return 0, false
	default: // GPS/SBAS
		if band == 0 {
			return CLight / freqL1, true
		}
		return CLight / freqL2, true
	}
}
