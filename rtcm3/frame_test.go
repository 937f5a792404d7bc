package rtcm3

import "github.com/fxb-rtcm/rtcm3dec/crc24q"

// bitWriter is the test-side mirror of bitreader: it packs MSB-first bit
// fields into a growing byte slice so tests can assemble message payloads
// the same way a caster would.
type bitWriter struct {
	buf []byte
	pos int
}

func (w *bitWriter) putBits(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		if w.pos%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v&(1<<uint(i)) != 0 {
			w.buf[w.pos/8] |= 1 << uint(7-w.pos%8)
		}
		w.pos++
	}
}

func (w *bitWriter) putBitsSigned(v int64, n int) {
	w.putBits(uint64(v)&((1<<uint(n))-1), n)
}

// padTo zero-fills the payload out to exactly n bytes.
func (w *bitWriter) padTo(n int) {
	for len(w.buf) < n {
		w.buf = append(w.buf, 0)
	}
	w.pos = n * 8
}

// sealFrame wraps a payload in the 0xD3 framing with a valid CRC-24Q.
func sealFrame(payload []byte) []byte {
	out := make([]byte, 3+len(payload)+3)
	out[0] = 0xD3
	out[1] = byte((len(payload) >> 8) & 0x03)
	out[2] = byte(len(payload) & 0xFF)
	copy(out[3:], payload)
	crc := crc24q.Compute(out, 3+len(payload))
	out[3+len(payload)] = byte(crc >> 16)
	out[3+len(payload)+1] = byte(crc >> 8)
	out[3+len(payload)+2] = byte(crc)
	return out
}

// sat1004 is one satellite block of a 1004 test frame, in raw field units.
type sat1004 struct {
	prn     int
	code1   int
	pr1     uint64 // 0.02 m ticks
	ppr1    int64  // 0.0005 m ticks, 0x80000 = invalid
	lock1   int
	amb     uint64
	cnr1    uint64 // 0.25 dB-Hz ticks
	code2   int
	pr21    int64 // 0.02 m ticks, 0x2000 = invalid
	ppr2    int64
	lock2   int
	cnr2    uint64
}

func buildType1004(staid int, towMS uint32, sync bool, sats []sat1004) []byte {
	var w bitWriter
	w.putBits(1004, 12)
	w.putBits(uint64(staid), 12)
	w.putBits(uint64(towMS), 30)
	if sync {
		w.putBits(1, 1)
	} else {
		w.putBits(0, 1)
	}
	w.putBits(uint64(len(sats)), 5)
	w.putBits(0, 4)
	for _, s := range sats {
		w.putBits(uint64(s.prn), 6)
		w.putBits(uint64(s.code1), 1)
		w.putBits(s.pr1, 24)
		w.putBitsSigned(s.ppr1, 20)
		w.putBits(uint64(s.lock1), 7)
		w.putBits(s.amb, 8)
		w.putBits(s.cnr1, 8)
		w.putBits(uint64(s.code2), 2)
		w.putBitsSigned(s.pr21, 14)
		w.putBitsSigned(s.ppr2, 20)
		w.putBits(uint64(s.lock2), 7)
		w.putBits(s.cnr2, 8)
	}
	return sealFrame(w.buf)
}

type sat1012 struct {
	prn   int
	code1 int
	fcn   int // frequency number -7..13
	pr1   uint64
	ppr1  int64
	lock1 int
	amb   uint64
	cnr1  uint64
	code2 int
	pr21  int64
	ppr2  int64
	lock2 int
	cnr2  uint64
}

func buildType1012(staid int, todMS uint32, sync bool, sats []sat1012) []byte {
	var w bitWriter
	w.putBits(1012, 12)
	w.putBits(uint64(staid), 12)
	w.putBits(uint64(todMS), 27)
	if sync {
		w.putBits(1, 1)
	} else {
		w.putBits(0, 1)
	}
	w.putBits(uint64(len(sats)), 5)
	w.putBits(0, 4)
	for _, s := range sats {
		w.putBits(uint64(s.prn), 6)
		w.putBits(uint64(s.code1), 1)
		w.putBits(uint64(s.fcn+7), 5)
		w.putBits(s.pr1, 25)
		w.putBitsSigned(s.ppr1, 20)
		w.putBits(uint64(s.lock1), 7)
		w.putBits(s.amb, 7)
		w.putBits(s.cnr1, 8)
		w.putBits(uint64(s.code2), 2)
		w.putBitsSigned(s.pr21, 14)
		w.putBitsSigned(s.ppr2, 20)
		w.putBits(uint64(s.lock2), 7)
		w.putBits(s.cnr2, 8)
	}
	return sealFrame(w.buf)
}

// gpsEphRaw holds the raw field values of a 1019 test frame. Only the
// fields the tests assert on carry interesting values; everything else
// stays zero.
type gpsEphRaw struct {
	prn   int
	week  int
	sva   int
	code  int
	iode  int
	toc   uint64 // 16 s units
	af0   int64  // 2^-31 s units
	iodc  int
	ecc   uint64 // 2^-33 units
	sqrtA uint64 // 2^-19 m^1/2 units
	toe   uint64 // 16 s units
	svh   int
}

func buildType1019(e gpsEphRaw) []byte {
	var w bitWriter
	w.putBits(1019, 12)
	w.putBits(uint64(e.prn), 6)
	w.putBits(uint64(e.week), 10)
	w.putBits(uint64(e.sva), 4)
	w.putBits(uint64(e.code), 2)
	w.putBitsSigned(0, 14) // idot
	w.putBits(uint64(e.iode), 8)
	w.putBits(e.toc, 16)
	w.putBitsSigned(0, 8)  // af2
	w.putBitsSigned(0, 16) // af1
	w.putBitsSigned(e.af0, 22)
	w.putBits(uint64(e.iodc), 10)
	w.putBitsSigned(0, 16) // crs
	w.putBitsSigned(0, 16) // delta n
	w.putBitsSigned(0, 32) // m0
	w.putBitsSigned(0, 16) // cuc
	w.putBits(e.ecc, 32)
	w.putBitsSigned(0, 16) // cus
	w.putBits(e.sqrtA, 32)
	w.putBits(e.toe, 16)
	w.putBitsSigned(0, 16) // cic
	w.putBitsSigned(0, 32) // omega0
	w.putBitsSigned(0, 16) // cis
	w.putBitsSigned(0, 32) // i0
	w.putBitsSigned(0, 16) // crc
	w.putBitsSigned(0, 32) // omega
	w.putBitsSigned(0, 24) // omegadot
	w.putBitsSigned(0, 8)  // tgd
	w.putBits(uint64(e.svh), 6)
	w.putBits(0, 1) // L2 P data flag
	w.putBits(0, 1) // fit interval
	w.padTo(61)
	return sealFrame(w.buf)
}

// gloEphRaw holds the raw 1020 fields the tests vary; position, velocity
// and acceleration are given in raw sign-magnitude ticks.
type gloEphRaw struct {
	prn  int
	fcn  int // frequency number -7..13
	bn   int
	tb   uint64
	pos  [3]int64 // 2^-11 km ticks
	vel  [3]int64 // 2^-20 km/s ticks
	tauN int64    // 2^-30 s ticks
}

func signMagnitude(v int64, n int) uint64 {
	if v < 0 {
		return 1<<uint(n-1) | uint64(-v)
	}
	return uint64(v)
}

func buildType1020(e gloEphRaw) []byte {
	var w bitWriter
	w.putBits(1020, 12)
	w.putBits(uint64(e.prn), 6)
	w.putBits(uint64(e.fcn+7), 5)
	w.putBits(0, 2+2) // almanac health + P1
	w.putBits(10, 5)  // tk hours
	w.putBits(30, 6)  // tk minutes
	w.putBits(0, 1)   // tk 30s
	w.putBits(uint64(e.bn), 1)
	w.putBits(0, 1) // P2
	w.putBits(e.tb, 7)
	for i := 0; i < 3; i++ {
		w.putBits(signMagnitude(e.vel[i], 24), 24)
		w.putBits(signMagnitude(e.pos[i], 27), 27)
		w.putBits(0, 5) // acceleration
	}
	w.putBits(0, 1)                        // P3
	w.putBits(0, 11)                       // gamma
	w.putBits(0, 3)                        // P + ln
	w.putBits(signMagnitude(e.tauN, 22), 22)
	w.putBits(0, 5) // delta tau
	w.putBits(0, 5) // En (age)
	w.padTo(45)
	return sealFrame(w.buf)
}

// msm7Sat / msm7Cell hold the raw MSM7 satellite- and signal-section
// fields for buildMSM7.
type msm7Sat struct {
	maskBit int // 1-64
	rrInt   uint64
	extInfo uint64
	rrFrac  uint64 // 1/1024 ms ticks
	rate    int64  // m/s ticks
}

type msm7Cell struct {
	psr  int64 // 2^-29 ms ticks
	cp   int64 // 2^-31 ms ticks
	lock uint64
	half uint64
	cnr  uint64 // 2^-4 dB-Hz ticks
	dop  int64  // 0.0001 m/s ticks
}

func buildMSM7(msgType, staid int, towMS uint32, sync bool, sats []msm7Sat, sigBits []int, cellMask []bool, cells []msm7Cell) []byte {
	var w bitWriter
	w.putBits(uint64(msgType), 12)
	w.putBits(uint64(staid), 12)
	if msgType >= 1081 && msgType <= 1087 {
		w.putBits(0, 3)
		w.putBits(uint64(towMS), 27)
	} else {
		w.putBits(uint64(towMS), 30)
	}
	if sync {
		w.putBits(1, 1)
	} else {
		w.putBits(0, 1)
	}
	w.putBits(0, 3)             // IOD
	w.putBits(0, 7+2+2+1+3)     // session indicators
	var satMask uint64
	for _, s := range sats {
		satMask |= 1 << uint(64-s.maskBit)
	}
	w.putBits(satMask, 64)
	var sigMask uint64
	for _, b := range sigBits {
		sigMask |= 1 << uint(32-b)
	}
	w.putBits(sigMask, 32)
	for _, c := range cellMask {
		if c {
			w.putBits(1, 1)
		} else {
			w.putBits(0, 1)
		}
	}
	for _, s := range sats {
		w.putBits(s.rrInt, 8)
	}
	for _, s := range sats {
		w.putBits(s.extInfo, 4)
	}
	for _, s := range sats {
		w.putBits(s.rrFrac, 10)
	}
	for _, s := range sats {
		w.putBitsSigned(s.rate, 14)
	}
	for _, c := range cells {
		w.putBitsSigned(c.psr, 20)
	}
	for _, c := range cells {
		w.putBitsSigned(c.cp, 24)
	}
	for _, c := range cells {
		w.putBits(c.lock, 10)
	}
	for _, c := range cells {
		w.putBits(c.half, 1)
	}
	for _, c := range cells {
		w.putBits(c.cnr, 10)
	}
	for _, c := range cells {
		w.putBitsSigned(c.dop, 15)
	}
	return sealFrame(w.buf)
}
