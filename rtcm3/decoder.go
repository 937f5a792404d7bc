package rtcm3

import (
	"fmt"
	"math"

	"github.com/fxb-rtcm/rtcm3dec/framer"
)

// maxDiagnostics bounds the in-decoder ring of recent diagnostic strings.
const maxDiagnostics = 64

// Decoder consumes one RTCM 3 byte stream and produces observation epochs,
// ephemerides, and station metadata. It is single-instance and
// non-reentrant per stream: the caller supplies bytes serially through
// Decode and drains the result lists between calls.
//
// Several decoders may share one *FreqTable so GLONASS frequency slots
// learned on one station's stream resolve MSM wavelengths on another's.
type Decoder struct {
	// Opt holds space-separated decoder options ("-STA=1234"). It is read
	// on every frame, so it may be changed between Decode calls.
	Opt string

	// Logger receives level-gated diagnostics. Defaults to NopLogger.
	Logger Logger

	// FreqTable is the GLONASS frequency-slot table, written by
	// 1010/1012/1020 and MSM extended info, read by MSM wavelength
	// resolution. NewDecoder installs a private table; assign a shared one
	// before the first Decode call to pool slots across streams.
	FreqTable *FreqTable

	// SSR, when non-nil, receives the raw payload of every SSR correction
	// message (1057-1068, 1240-1270, 4076). Nil drops them.
	SSR SSRSink

	// Ephemeris sinks. A nil sink drops that constellation's ephemerides.
	// QZSS and IRNSS ephemerides share the GPS record shape and are routed
	// to OnGPSEphemeris.
	OnGPSEphemeris     func(GPSEphemeris)
	OnGLOEphemeris     func(GLOEphemeris)
	OnGalileoEphemeris func(GalileoEphemeris)
	OnSBASEphemeris    func(SBASEphemeris)
	OnBDSEphemeris     func(BDSEphemeris)

	// ObsList is the queue of flushed observation epochs, one inner slice
	// per epoch. The caller drains it between Decode calls.
	ObsList [][]SatObs

	// TypeList records the message number of every successfully framed
	// message, decoded or not.
	TypeList []int

	// ARP is the most recently decoded antenna reference point;
	// AntennaPositions appends each decoded one unless it equals the last
	// entry (only consecutive duplicates are skipped).
	ARP              StationARP
	ARPValid         bool
	AntennaPositions []StationARP

	// AntennaDescriptors and ReceiverDescriptors accumulate decoded
	// 1007/1008/1033 metadata, consecutive duplicates suppressed.
	AntennaDescriptors  []AntennaInfo
	ReceiverDescriptors []AntennaInfo

	framer framer.Framer

	currentTime Time
	currentObs  []SatObs
	ref         Time // most recently resolved epoch or seed time

	staID    int
	staIDSet bool

	lockState map[lockKey]int
	lastEph   map[PRN]int

	diags     [maxDiagnostics]string
	diagStart int
	diagCount int

	produced bool // set when the current Decode call emitted something
}

type lockKey struct {
	prn  PRN
	code string
}

// NewDecoder returns a ready-to-use decoder with a private GLONASS
// frequency table and no logging.
func NewDecoder() *Decoder {
	return &Decoder{
		Logger:    NopLogger{},
		FreqTable: NewFreqTable(),
		lockState: make(map[lockKey]int),
		lastEph:   make(map[PRN]int),
	}
}

// SetReferenceTime seeds the decoder's rollover reference, used to resolve
// truncated week and day-of-week fields before the first full epoch has
// been seen. Streams that begin with ephemerides benefit; observation-first
// streams resolve it on their own.
func (d *Decoder) SetReferenceTime(t Time) { d.ref = t }

// StationID returns the station ID the stream has been locked to, or -1 if
// no frame has established one yet.
func (d *Decoder) StationID() int {
	if !d.staIDSet {
		return -1
	}
	return d.staID
}

// Diagnostics returns the most recent diagnostic strings, oldest first.
// The ring holds at most maxDiagnostics entries.
func (d *Decoder) Diagnostics() []string {
	out := make([]string, 0, d.diagCount)
	for i := 0; i < d.diagCount; i++ {
		out = append(out, d.diags[(d.diagStart+i)%maxDiagnostics])
	}
	return out
}

// Decode appends data to the internal frame buffer and processes every
// complete frame found. It returns true when at least one observation
// epoch, ephemeris, or metadata record was produced during this call.
// Partial trailing bytes and a partially accumulated epoch are carried
// over to the next call.
func (d *Decoder) Decode(data []byte) bool {
	if d.Logger == nil {
		d.Logger = NopLogger{}
	}
	if d.lockState == nil {
		d.lockState = make(map[lockKey]int)
	}
	d.produced = false
	for _, fr := range d.framer.Feed(data) {
		d.TypeList = append(d.TypeList, fr.MessageID)
		ok, err := d.dispatch(fr.MessageID, fr.Payload)
		if err != nil {
			d.diagf("rtcm3 %d: %v", fr.MessageID, err)
			continue
		}
		if ok {
			d.produced = true
		}
	}
	return d.produced
}

// diagf logs through the Logger and records the line in the diagnostics
// ring so callers without a logger can still see why frames were skipped.
func (d *Decoder) diagf(format string, args ...any) {
	d.Logger.Tracef(2, format, args...)
	s := fmt.Sprintf(format, args...)
	idx := (d.diagStart + d.diagCount) % maxDiagnostics
	d.diags[idx] = s
	if d.diagCount < maxDiagnostics {
		d.diagCount++
	} else {
		d.diagStart = (d.diagStart + 1) % maxDiagnostics
	}
}

// testStationID enforces station consistency: the first frame's station ID
// locks the stream, an optional -STA=nnn filter overrides it, and a frame
// from a different station resets tracking and is skipped.
func (d *Decoder) testStationID(staID int) bool {
	if want, ok := optIntValue(d.Opt, "-STA="); ok {
		if staID != want {
			return false
		}
		d.staID, d.staIDSet = staID, true
		return true
	}
	if !d.staIDSet {
		d.staID, d.staIDSet = staID, true
		return true
	}
	if staID != d.staID {
		d.diagf("rtcm3: station id changed %d -> %d, resetting", d.staID, staID)
		d.staIDSet = false
		return false
	}
	return true
}

// refTime returns the decoder's current rollover reference.
func (d *Decoder) refTime() Time { return d.ref }

// timeFromTOW resolves a GPS-style millisecond-of-week stamp against the
// reference time, picking the week that lands nearest to it.
func (d *Decoder) timeFromTOW(towMS float64) Time {
	week, haveRef := gpsWeekOf(d.ref)
	if !haveRef {
		return NewGPSTime(0, uint32(towMS))
	}
	t := NewGPSTime(week, uint32(towMS))
	switch diff := t.Sub(d.ref); {
	case diff < -302400.0:
		t = NewGPSTime(week+1, uint32(towMS))
	case diff > 302400.0:
		t = NewGPSTime(week-1, uint32(towMS))
	}
	return t
}

// timeFromBDTTOW resolves a BeiDou millisecond-of-week stamp the same way,
// on the BDT week line.
func (d *Decoder) timeFromBDTTOW(towMS float64) Time {
	week, haveRef := bdtWeekOf(d.ref)
	if !haveRef {
		return NewBDTTime(0, uint32(towMS))
	}
	t := NewBDTTime(week, uint32(towMS))
	switch diff := t.Sub(d.ref); {
	case diff < -302400.0:
		t = NewBDTTime(week+1, uint32(towMS))
	case diff > 302400.0:
		t = NewBDTTime(week-1, uint32(towMS))
	}
	return t
}

// stageObs runs the shared epoch accumulator: flush on epoch change, stage
// the new observations, flush again if the sync flag is clear. It returns
// true when at least one epoch list was emitted.
func (d *Decoder) stageObs(t Time, sync bool, obs []SatObs) bool {
	flushed := false
	if d.currentTime.Valid() && !d.currentTime.Equal(t) {
		flushed = d.flushEpoch() || flushed
	}
	d.currentTime = t
	d.ref = t
	for _, o := range obs {
		o.Time = t
		d.trackLoss(&o)
		if !o.Empty() {
			d.currentObs = append(d.currentObs, o)
		}
	}
	if !sync {
		flushed = d.flushEpoch() || flushed
		d.currentTime = Time{}
	}
	return flushed
}

// flushEpoch appends the staged epoch to ObsList. Empty epochs are dropped.
func (d *Decoder) flushEpoch() bool {
	if len(d.currentObs) == 0 {
		return false
	}
	d.ObsList = append(d.ObsList, d.currentObs)
	d.currentObs = nil
	return true
}

// trackLoss maintains the per-satellite, per-band loss-of-lock state: a
// lock-time indicator lower than the previous epoch's means the receiver
// lost lock in between, which sets bit 0 of the band's LLI.
func (d *Decoder) trackLoss(o *SatObs) {
	for i := range o.Freqs {
		f := &o.Freqs[i]
		if !f.LockTimeValid {
			continue
		}
		key := lockKey{prn: o.PRN, code: f.Code}
		if prev, seen := d.lockState[key]; seen && f.LockTimeIndicator < prev {
			f.LLI |= 1
		}
		d.lockState[key] = f.LockTimeIndicator
	}
}

// acceptLegacyGPS stages a decoded 1002/1004 batch.
func (d *Decoder) acceptLegacyGPS(h legacyHeader, towMS float64, obs []SatObs) bool {
	if !d.testStationID(h.StationID) {
		return false
	}
	return d.stageObs(d.timeFromTOW(towMS), h.Sync, obs)
}

// acceptLegacyGLONASS stages a decoded 1010/1012 batch.
func (d *Decoder) acceptLegacyGLONASS(h legacyHeader, todMS float64, obs []SatObs) bool {
	if !d.testStationID(h.StationID) {
		return false
	}
	return d.stageObs(NewGLONASSTime(uint32(todMS), d.ref), h.Sync, obs)
}

// acceptMSM stages a decoded MSM batch, converting the header time per
// constellation (GPS-style TOW, GLONASS time of day, or BDT TOW).
func (d *Decoder) acceptMSM(sys System, h msmHeader, towMS float64, obs []SatObs) bool {
	if !d.testStationID(h.StationID) {
		return false
	}
	var t Time
	switch sys {
	case SystemGLONASS:
		t = NewGLONASSTime(uint32(towMS), d.ref)
	case SystemBeiDou:
		t = d.timeFromBDTTOW(towMS)
	default:
		t = d.timeFromTOW(towMS)
	}
	return d.stageObs(t, h.Sync, obs)
}

// appendARP records a decoded antenna reference point, keeping ARP as the
// latest and AntennaPositions free of consecutive duplicates.
func (d *Decoder) appendARP(arp StationARP) {
	d.ARP = arp
	d.ARPValid = true
	if n := len(d.AntennaPositions); n > 0 && sameARP(d.AntennaPositions[n-1], arp) {
		return
	}
	d.AntennaPositions = append(d.AntennaPositions, arp)
}

func sameARP(a, b StationARP) bool {
	return a.StationID == b.StationID &&
		math.Abs(a.Pos[0]-b.Pos[0]) < 1e-4 &&
		math.Abs(a.Pos[1]-b.Pos[1]) < 1e-4 &&
		math.Abs(a.Pos[2]-b.Pos[2]) < 1e-4 &&
		a.HasHeight == b.HasHeight &&
		math.Abs(a.Height-b.Height) < 1e-4
}

// appendAntenna records a decoded 1007/1008/1033 descriptor, suppressing a
// repeat of the previous entry, and splits the receiver fields of 1033
// into the receiver history.
func (d *Decoder) appendAntenna(info AntennaInfo) {
	n := len(d.AntennaDescriptors)
	if n == 0 || !sameAntenna(d.AntennaDescriptors[n-1], info) {
		d.AntennaDescriptors = append(d.AntennaDescriptors, info)
	}
	if info.ReceiverType == "" && info.Firmware == "" && info.ReceiverSerial == "" {
		return
	}
	m := len(d.ReceiverDescriptors)
	if m == 0 || !sameReceiver(d.ReceiverDescriptors[m-1], info) {
		d.ReceiverDescriptors = append(d.ReceiverDescriptors, info)
	}
}

func sameAntenna(a, b AntennaInfo) bool {
	return a.StationID == b.StationID && a.Descriptor == b.Descriptor &&
		a.SerialNumber == b.SerialNumber && a.SetupID == b.SetupID
}

func sameReceiver(a, b AntennaInfo) bool {
	return a.StationID == b.StationID && a.ReceiverType == b.ReceiverType &&
		a.Firmware == b.Firmware && a.ReceiverSerial == b.ReceiverSerial
}

// Ephemeris routing. QZSS and IRNSS share the GPS record shape and sink.
// Unless the -EPHALL option is set, a repeat broadcast with an unchanged
// issue-of-data is decoded but not re-emitted.

func (d *Decoder) shouldEmitEph(prn PRN, iod int) bool {
	if hasOpt(d.Opt, "-EPHALL") {
		return true
	}
	if d.lastEph == nil {
		d.lastEph = make(map[PRN]int)
	}
	if prev, seen := d.lastEph[prn]; seen && prev == iod {
		return false
	}
	d.lastEph[prn] = iod
	return true
}

func (d *Decoder) onGPSEphemeris(eph GPSEphemeris) {
	d.ref = latest(d.ref, eph.Toe)
	if d.OnGPSEphemeris != nil && d.shouldEmitEph(eph.PRN, eph.IODE) {
		d.OnGPSEphemeris(eph)
	}
}

func (d *Decoder) onQZSSEphemeris(eph GPSEphemeris)  { d.onGPSEphemeris(eph) }
func (d *Decoder) onIRNSSEphemeris(eph GPSEphemeris) { d.onGPSEphemeris(eph) }

func (d *Decoder) onGLOEphemeris(geph GLOEphemeris) {
	if d.OnGLOEphemeris != nil && d.shouldEmitEph(geph.PRN, geph.IOD) {
		d.OnGLOEphemeris(geph)
	}
}

func (d *Decoder) onGalileoEphemeris(eph GalileoEphemeris) {
	d.ref = latest(d.ref, eph.Toe)
	if d.OnGalileoEphemeris != nil && d.shouldEmitEph(eph.PRN, eph.IODNav) {
		d.OnGalileoEphemeris(eph)
	}
}

func (d *Decoder) onSBASEphemeris(eph SBASEphemeris) {
	if d.OnSBASEphemeris != nil {
		d.OnSBASEphemeris(eph)
	}
}

func (d *Decoder) onBDSEphemeris(eph BDSEphemeris) {
	d.ref = latest(d.ref, eph.Toe)
	if d.OnBDSEphemeris != nil && d.shouldEmitEph(eph.PRN, eph.IODE) {
		d.OnBDSEphemeris(eph)
	}
}

// latest keeps the reference time monotone: an ephemeris Toe only advances
// it, never rewinds it.
func latest(a, b Time) Time {
	if !a.Valid() {
		return b
	}
	if b.Valid() && b.Sub(a) > 0 {
		return b
	}
	return a
}
