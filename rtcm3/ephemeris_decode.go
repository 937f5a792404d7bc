package rtcm3

import (
	"math"

	"github.com/fxb-rtcm/rtcm3dec/bitreader"
)

// resolveWeekRollover folds a 10-bit (or wider) truncated week number back
// onto the continuous week line, choosing the 1024-multiple nearest
// refFull. It works directly in week numbers because this package has no
// wall clock of its own: the caller's most recently resolved Time stands
// in for "now".
func resolveWeekRollover(raw, refFull int, haveRef bool) int {
	if !haveRef {
		return raw
	}
	base := refFull - refFull%1024
	w := base + raw
	if w < refFull-512 {
		w += 1024
	} else if w > refFull+512 {
		w -= 1024
	}
	return w
}

func gpsWeekOf(t Time) (int, bool) {
	if !t.Valid() {
		return 0, false
	}
	return int(math.Floor(t.sec / 604800.0)), true
}

func bdtWeekOf(t Time) (int, bool) {
	if !t.Valid() {
		return 0, false
	}
	return int(math.Floor((t.sec-bdtToGPSLeapOffset)/604800.0)) - bdtToGPSWeekOffset, true
}

// decodeGPSEphemeris decodes message 1019 (GPS) against a reference time
// used only to resolve the truncated 10-bit week field.
func decodeGPSEphemeris(payload []byte, ref Time) (GPSEphemeris, error) {
	return decodeGPSFamily(payload, ref, SystemGPS)
}

// decodeQZSSEphemeris decodes message 1044.
func decodeQZSSEphemeris(payload []byte, ref Time) (GPSEphemeris, error) {
	return decodeGPSFamily(payload, ref, SystemQZSS)
}

func decodeGPSFamily(payload []byte, ref Time, sys System) (GPSEphemeris, error) {
	r := bitreader.New(payload)
	var eph GPSEphemeris
	var sqrtA, toc, toe float64
	var rawWeek, prn int

	if err := r.Skip(12); err != nil {
		return eph, ErrMessageTooShort
	}

	switch sys {
	case SystemQZSS:
		v, e := r.GetBits(4)
		if e != nil {
			return eph, ErrMessageTooShort
		}
		prn = int(v)
		toc, _ = r.GetFloat(16, 16.0)
		eph.Af2, _ = r.GetFloatSigned(8, p2_55)
		eph.Af1, _ = r.GetFloatSigned(16, p2_43)
		eph.Af0, _ = r.GetFloatSigned(22, p2_31)
		iode, _ := r.GetBits(8)
		eph.IODE = int(iode)
		eph.Crs, _ = r.GetFloatSigned(16, p2_5)
		eph.DeltaN, _ = r.GetFloatSigned(16, p2_43*SC2RAD)
		eph.M0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
		eph.Cuc, _ = r.GetFloatSigned(16, p2_29)
		eph.Ecc, _ = r.GetFloat(32, p2_33)
		eph.Cus, _ = r.GetFloatSigned(16, p2_29)
		sqrtA, _ = r.GetFloat(32, p2_19)
		toe, _ = r.GetFloat(16, 16.0)
		eph.Cic, _ = r.GetFloatSigned(16, p2_29)
		eph.OMEGA0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
		eph.Cis, _ = r.GetFloatSigned(16, p2_29)
		eph.I0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
		eph.Crc, _ = r.GetFloatSigned(16, p2_5)
		eph.Omega, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
		eph.OMEGADot, _ = r.GetFloatSigned(24, p2_43*SC2RAD)
		eph.IDOT, _ = r.GetFloatSigned(14, p2_43*SC2RAD)
		code, _ := r.GetBits(2)
		eph.Code = int(code)
		w, _ := r.GetBits(10)
		rawWeek = int(w)
		sva, _ := r.GetBits(4)
		eph.SVAccur = float64(sva)
		svh, _ := r.GetBits(6)
		eph.SVHealth = int(svh)
		eph.TGD, _ = r.GetFloatSigned(8, p2_31)
		iodc, e2 := r.GetBits(10)
		if e2 != nil {
			return eph, ErrMessageTooShort
		}
		eph.IODC = int(iodc)
		eph.Fit = 2.0
		if fitFlag, _ := r.GetBits(1); fitFlag > 0 {
			eph.Fit = 0.0
		}
		eph.Flag = 1

	default: // GPS
		v, e := r.GetBits(6)
		if e != nil {
			return eph, ErrMessageTooShort
		}
		prn = int(v)
		w, e2 := r.GetBits(10)
		if e2 != nil {
			return eph, ErrMessageTooShort
		}
		rawWeek = int(w)
		sva, _ := r.GetBits(4)
		eph.SVAccur = float64(sva)
		code, _ := r.GetBits(2)
		eph.Code = int(code)
		eph.IDOT, _ = r.GetFloatSigned(14, p2_43*SC2RAD)
		iode, _ := r.GetBits(8)
		eph.IODE = int(iode)
		toc, _ = r.GetFloat(16, 16.0)
		eph.Af2, _ = r.GetFloatSigned(8, p2_55)
		eph.Af1, _ = r.GetFloatSigned(16, p2_43)
		eph.Af0, _ = r.GetFloatSigned(22, p2_31)
		iodc, _ := r.GetBits(10)
		eph.IODC = int(iodc)
		eph.Crs, _ = r.GetFloatSigned(16, p2_5)
		eph.DeltaN, _ = r.GetFloatSigned(16, p2_43*SC2RAD)
		eph.M0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
		eph.Cuc, _ = r.GetFloatSigned(16, p2_29)
		eph.Ecc, _ = r.GetFloat(32, p2_33)
		eph.Cus, _ = r.GetFloatSigned(16, p2_29)
		sqrtA, _ = r.GetFloat(32, p2_19)
		toe, _ = r.GetFloat(16, 16.0)
		eph.Cic, _ = r.GetFloatSigned(16, p2_29)
		eph.OMEGA0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
		eph.Cis, _ = r.GetFloatSigned(16, p2_29)
		eph.I0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
		eph.Crc, _ = r.GetFloatSigned(16, p2_5)
		eph.Omega, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
		eph.OMEGADot, _ = r.GetFloatSigned(24, p2_43*SC2RAD)
		eph.TGD, _ = r.GetFloatSigned(8, p2_31)
		svh, _ := r.GetBits(6)
		eph.SVHealth = int(svh)
		flag, e3 := r.GetBits(1)
		if e3 != nil {
			return eph, ErrMessageTooShort
		}
		eph.Flag = int(flag)
		eph.Fit = 4.0
		if fitFlag, _ := r.GetBits(1); fitFlag > 0 {
			eph.Fit = 0.0
		}
	}

	if sqrtA < 1000.0 {
		return eph, ErrImplausibleOrbit
	}

	eph.PRN = PRN{System: sys, Number: prn}
	eph.SqrtA = sqrtA
	refWeek, haveRef := gpsWeekOf(ref)
	week := resolveWeekRollover(rawWeek, refWeek, haveRef)
	eph.WeekGPS = week
	eph.Toc = NewGPSTime(week, uint32(toc*1000))
	eph.Toe = NewGPSTime(week, uint32(toe*1000))
	return eph, nil
}

// decodeGLOEphemeris decodes message 1020.
func decodeGLOEphemeris(payload []byte, ref Time) (GLOEphemeris, error) {
	r := bitreader.New(payload)
	var geph GLOEphemeris

	if err := r.Skip(12); err != nil {
		return geph, ErrMessageTooShort
	}
	prn, err := r.GetBits(6)
	if err != nil {
		return geph, ErrMessageTooShort
	}
	frq, _ := r.GetBits(5)
	geph.FreqNum = int(frq) - 7
	if err := r.Skip(2 + 2); err != nil {
		return geph, ErrMessageTooShort
	}
	tkH, _ := r.GetBits(5)
	tkM, _ := r.GetBits(6)
	tkS, _ := r.GetBits(1)
	bn, _ := r.GetBits(1)
	if err := r.Skip(1); err != nil {
		return geph, ErrMessageTooShort
	}
	tb, err := r.GetBits(7)
	if err != nil {
		return geph, ErrMessageTooShort
	}

	velRaw0, _ := r.GetBitsSignMagnitude(24)
	geph.Vel[0] = float64(velRaw0) * p2_20 * 1e3
	posRaw0, err := r.GetBitsSignMagnitude(27)
	if err != nil {
		return geph, ErrMessageTooShort
	}
	geph.Pos[0] = float64(posRaw0) * p2_11 * 1e3
	accRaw0, _ := r.GetBitsSignMagnitude(5)
	geph.Acc[0] = float64(accRaw0) * p2_30 * 1e3
	velRaw1, _ := r.GetBitsSignMagnitude(24)
	geph.Vel[1] = float64(velRaw1) * p2_20 * 1e3
	posRaw1, _ := r.GetBitsSignMagnitude(27)
	geph.Pos[1] = float64(posRaw1) * p2_11 * 1e3
	accRaw1, _ := r.GetBitsSignMagnitude(5)
	geph.Acc[1] = float64(accRaw1) * p2_30 * 1e3
	velRaw2, _ := r.GetBitsSignMagnitude(24)
	geph.Vel[2] = float64(velRaw2) * p2_20 * 1e3
	posRaw2, _ := r.GetBitsSignMagnitude(27)
	geph.Pos[2] = float64(posRaw2) * p2_11 * 1e3
	accRaw2, err := r.GetBitsSignMagnitude(5)
	if err != nil {
		return geph, ErrMessageTooShort
	}
	geph.Acc[2] = float64(accRaw2) * p2_30 * 1e3
	if err := r.Skip(1); err != nil {
		return geph, ErrMessageTooShort
	}
	gammaRaw, _ := r.GetBitsSignMagnitude(11)
	geph.GammaN = float64(gammaRaw) * p2_40
	if err := r.Skip(3); err != nil {
		return geph, ErrMessageTooShort
	}
	tauRaw, _ := r.GetBitsSignMagnitude(22)
	geph.TauN = float64(tauRaw) * p2_30
	deltaTauRaw, _ := r.GetBitsSignMagnitude(5)
	geph.DeltaTau = float64(deltaTauRaw) * p2_30
	age, err := r.GetBits(5)
	if err != nil {
		return geph, ErrMessageTooShort
	}
	geph.AgeDays = int(age)
	geph.Health = int(bn)
	geph.IOD = int(tb)

	norm := math.Sqrt(geph.Pos[0]*geph.Pos[0] + geph.Pos[1]*geph.Pos[1] + geph.Pos[2]*geph.Pos[2])
	velNorm := math.Sqrt(geph.Vel[0]*geph.Vel[0] + geph.Vel[1]*geph.Vel[1] + geph.Vel[2]*geph.Vel[2])
	if norm < 1.0 || velNorm < 1.0 {
		return geph, ErrImplausibleOrbit
	}

	geph.PRN = PRN{System: SystemGLONASS, Number: int(prn)}

	tkSeconds := float64(tkH)*3600.0 + float64(tkM)*60.0 + float64(tkS)*30.0
	geph.MessageFrame = NewGLONASSTime(uint32(tkSeconds*1000), ref)
	toeSeconds := float64(tb) * 900.0
	geph.Toe = NewGLONASSTime(uint32(toeSeconds*1000), ref)

	return geph, nil
}

// decodeIRNSSEphemeris decodes message 1041 (NavIC/IRNSS).
func decodeIRNSSEphemeris(payload []byte, ref Time) (GPSEphemeris, error) {
	r := bitreader.New(payload)
	var eph GPSEphemeris
	var toc, sqrtA float64
	var rawWeek, prn int

	if err := r.Skip(12); err != nil {
		return eph, ErrMessageTooShort
	}
	v, err := r.GetBits(6)
	if err != nil {
		return eph, ErrMessageTooShort
	}
	prn = int(v)
	w, _ := r.GetBits(10)
	rawWeek = int(w)
	eph.Af0, _ = r.GetFloatSigned(22, p2_31)
	eph.Af1, _ = r.GetFloatSigned(16, p2_43)
	eph.Af2, _ = r.GetFloatSigned(8, p2_55)
	sva, _ := r.GetBits(4)
	eph.SVAccur = float64(sva)
	tc, _ := r.GetFloat(16, 16.0)
	toc = tc
	eph.TGD, _ = r.GetFloatSigned(8, p2_31)
	eph.DeltaN, _ = r.GetFloatSigned(22, p2_41IRNSS*SC2RAD)
	iode, _ := r.GetBits(8)
	eph.IODE = int(iode)
	if err := r.Skip(10); err != nil { // reserved
		return eph, ErrMessageTooShort
	}
	l5sflag, err := r.GetBits(2)
	if err != nil {
		return eph, ErrMessageTooShort
	}
	eph.L5Flag = int(l5sflag>>1) & 1
	eph.SFlag = int(l5sflag) & 1
	eph.SVHealth = eph.L5Flag*2 + eph.SFlag
	eph.Cuc, _ = r.GetFloatSigned(15, p2_28)
	eph.Cus, _ = r.GetFloatSigned(15, p2_28)
	eph.Cic, _ = r.GetFloatSigned(15, p2_28)
	eph.Cis, _ = r.GetFloatSigned(15, p2_28)
	eph.Crc, _ = r.GetFloatSigned(15, 0.0625)
	eph.Crs, _ = r.GetFloatSigned(15, 0.0625)
	eph.IDOT, _ = r.GetFloatSigned(14, p2_43*SC2RAD)
	eph.M0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
	toe, _ := r.GetFloat(16, 16.0)
	eph.Ecc, _ = r.GetFloat(32, p2_33)
	sqrtA, _ = r.GetFloat(32, p2_19)
	eph.OMEGA0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
	eph.Omega, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
	eph.OMEGADot, _ = r.GetFloatSigned(22, p2_41IRNSS*SC2RAD)
	eph.I0, err = r.GetFloatSigned(32, p2_31*SC2RAD)
	if err != nil {
		return eph, ErrMessageTooShort
	}

	if sqrtA < 1000.0 {
		return eph, ErrImplausibleOrbit
	}

	eph.PRN = PRN{System: SystemIRNSS, Number: prn}
	eph.SqrtA = sqrtA
	eph.IODC = eph.IODE
	refWeek, haveRef := gpsWeekOf(ref)
	week := resolveWeekRollover(rawWeek, refWeek, haveRef)
	eph.WeekGPS = week
	eph.Toc = NewGPSTime(week, uint32(toc*1000))
	eph.Toe = NewGPSTime(week, uint32(toe*1000))
	return eph, nil
}

// p2_41IRNSS is 2^-41, used only by the IRNSS mean-motion-difference and
// rate-of-RAAN fields (wider than the GPS/QZSS P2_43 scale for the same
// quantities).
const p2_41IRNSS = 1.0 / 2199023255552

// decodeBDSEphemeris decodes message 1042 (BeiDou).
func decodeBDSEphemeris(payload []byte, ref Time) (BDSEphemeris, error) {
	r := bitreader.New(payload)
	var eph BDSEphemeris
	var toc, sqrtA float64
	var rawWeek, prn int

	if err := r.Skip(12); err != nil {
		return eph, ErrMessageTooShort
	}
	v, err := r.GetBits(6)
	if err != nil {
		return eph, ErrMessageTooShort
	}
	prn = int(v)
	w, _ := r.GetBits(13)
	rawWeek = int(w)
	urai, _ := r.GetBits(4)
	eph.URAI = int(urai)
	eph.IDOT, _ = r.GetFloatSigned(14, p2_43*SC2RAD)
	iode, _ := r.GetBits(5)
	eph.IODE = int(iode)
	tc, _ := r.GetFloat(17, 8.0)
	toc = tc
	eph.Af2, _ = r.GetFloatSigned(11, p2_66)
	eph.Af1, _ = r.GetFloatSigned(22, p2_50BDS)
	eph.Af0, _ = r.GetFloatSigned(24, p2_33)
	iodc, _ := r.GetBits(5)
	eph.IODC = int(iodc)
	eph.Crs, _ = r.GetFloatSigned(18, p2_6)
	eph.DeltaN, _ = r.GetFloatSigned(16, p2_43*SC2RAD)
	eph.M0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
	eph.Cuc, _ = r.GetFloatSigned(18, p2_31)
	eph.Ecc, _ = r.GetFloat(32, p2_33)
	eph.Cus, _ = r.GetFloatSigned(18, p2_31)
	sqrtA, _ = r.GetFloat(32, p2_19)
	toe, _ := r.GetFloat(17, 8.0)
	eph.Cic, _ = r.GetFloatSigned(18, p2_31)
	eph.OMEGA0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
	eph.Cis, _ = r.GetFloatSigned(18, p2_31)
	eph.I0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
	eph.Crc, _ = r.GetFloatSigned(18, p2_6)
	eph.Omega, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
	eph.OMEGADot, _ = r.GetFloatSigned(24, p2_43*SC2RAD)
	eph.TGD1, _ = r.GetFloatSigned(10, 1e-10)
	eph.TGD2, _ = r.GetFloatSigned(10, 1e-10)
	svh, err := r.GetBits(1)
	if err != nil {
		return eph, ErrMessageTooShort
	}
	eph.SVH = int(svh)

	if sqrtA < 1000.0 {
		return eph, ErrImplausibleOrbit
	}

	eph.PRN = PRN{System: SystemBeiDou, Number: prn}
	eph.SqrtA = sqrtA
	refWeek, haveRef := bdtWeekOf(ref)
	week := resolveWeekRollover(rawWeek, refWeek, haveRef)
	eph.WeekBDT = week
	eph.Toc = NewBDTTime(week, uint32(toc*1000))
	eph.Toe = NewBDTTime(week, uint32(toe*1000))
	return eph, nil
}

// p2_50BDS is 2^-50, used by BeiDou's clock-drift-rate field.
const p2_50BDS = 1.0 / 1125899906842624

// galileoWeekOffset is the fixed translation from GST (Galileo System Time)
// week to the continuous GPS-like week line this package uses everywhere
// else. Unlike GPS/BeiDou, the 12-bit Galileo week field is wide enough to
// apply the offset directly, with no rollover disambiguation against a
// reference time.
const galileoWeekOffset = 1024

// decodeGalileoEphemeris decodes message 1045 (F/NAV) or 1046 (I/NAV).
func decodeGalileoEphemeris(payload []byte, navType string) (GalileoEphemeris, error) {
	r := bitreader.New(payload)
	var eph GalileoEphemeris
	var toc, sqrtA float64

	if err := r.Skip(12); err != nil {
		return eph, ErrMessageTooShort
	}
	prn, err := r.GetBits(6)
	if err != nil {
		return eph, ErrMessageTooShort
	}
	week, _ := r.GetBits(12)
	iode, _ := r.GetBits(10)
	eph.IODNav = int(iode)
	sisa, _ := r.GetBits(8)
	eph.SISA = float64(sisa)
	eph.IDOT, _ = r.GetFloatSigned(14, p2_43*SC2RAD)
	tc, _ := r.GetFloat(14, 60.0)
	toc = tc
	eph.Af2, _ = r.GetFloatSigned(6, p2_59)
	eph.Af1, _ = r.GetFloatSigned(21, p2_46)
	eph.Af0, _ = r.GetFloatSigned(31, p2_34)
	eph.Crs, _ = r.GetFloatSigned(16, p2_5)
	eph.DeltaN, _ = r.GetFloatSigned(16, p2_43*SC2RAD)
	eph.M0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
	eph.Cuc, _ = r.GetFloatSigned(16, p2_29)
	eph.Ecc, _ = r.GetFloat(32, p2_33)
	eph.Cus, _ = r.GetFloatSigned(16, p2_29)
	sqrtA, _ = r.GetFloat(32, p2_19)
	toe, _ := r.GetFloat(14, 60.0)
	eph.Cic, _ = r.GetFloatSigned(16, p2_29)
	eph.OMEGA0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
	eph.Cis, _ = r.GetFloatSigned(16, p2_29)
	eph.I0, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
	eph.Crc, _ = r.GetFloatSigned(16, p2_5)
	eph.Omega, _ = r.GetFloatSigned(32, p2_31*SC2RAD)
	eph.OMEGADot, _ = r.GetFloatSigned(24, p2_43*SC2RAD)
	eph.BGDe1e5a, _ = r.GetFloatSigned(10, p2_32Gal)

	if navType == "INAV" {
		eph.BGDe1e5b, _ = r.GetFloatSigned(10, p2_32Gal)
		e5bhs, _ := r.GetBits(2)
		e5bdvs, _ := r.GetBits(1)
		e1hs, _ := r.GetBits(2)
		e1dvs, err := r.GetBits(1)
		if err != nil {
			return eph, ErrMessageTooShort
		}
		eph.E5bHS, eph.E5bDVS, eph.E1BHS, eph.E1BDVS = int(e5bhs), int(e5bdvs), int(e1hs), int(e1dvs)
		if eph.E5bHS != eph.E1BHS {
			return eph, ErrHealthMismatch
		}
	} else {
		e5ahs, _ := r.GetBits(2)
		e5advs, err := r.GetBits(1)
		if err != nil {
			return eph, ErrMessageTooShort
		}
		eph.E5aHS, eph.E5aDVS = int(e5ahs), int(e5advs)
	}

	if sqrtA < 1000.0 {
		return eph, ErrImplausibleOrbit
	}
	if navType == "INAV" {
		zeroA := math.Abs(eph.BGDe1e5a) < 1e-9
		zeroB := math.Abs(eph.BGDe1e5b) < 1e-9
		if zeroA != zeroB {
			return eph, ErrHealthMismatch
		}
	}

	eph.PRN = PRN{System: SystemGalileo, Number: int(prn)}
	eph.SqrtA = sqrtA
	eph.NAVType = navType
	eph.WeekGAL = int(week) + galileoWeekOffset
	eph.Toc = NewGPSTime(eph.WeekGAL, uint32(toc*1000))
	eph.Toe = NewGPSTime(eph.WeekGAL, uint32(toe*1000))
	return eph, nil
}

// p2_32Gal is 2^-32, the BGD scale for both Galileo BGD fields.
const p2_32Gal = 1.0 / 4294967296

// decodeSBASEphemeris decodes message 1043, an ECEF
// position/velocity/acceleration record like GLONASS 1020 but on the
// WGS-84 frame, per RTCM 10403.3 §4.7.1.9.
func decodeSBASEphemeris(payload []byte) (SBASEphemeris, error) {
	r := bitreader.New(payload)
	var eph SBASEphemeris

	if err := r.Skip(12); err != nil {
		return eph, ErrMessageTooShort
	}
	prn, err := r.GetBits(6)
	if err != nil {
		return eph, ErrMessageTooShort
	}
	iodn, _ := r.GetBits(8)
	eph.IODN = int(iodn)
	tocRaw, _ := r.GetBits(13) // time of day, 16 s units
	ura, _ := r.GetBits(4)
	eph.URA = float64(ura)
	eph.Pos[0], _ = r.GetFloatSigned(30, 0.08)
	eph.Pos[1], _ = r.GetFloatSigned(30, 0.08)
	eph.Pos[2], _ = r.GetFloatSigned(25, 0.4)
	eph.Vel[0], _ = r.GetFloatSigned(17, 0.000625)
	eph.Vel[1], _ = r.GetFloatSigned(17, 0.000625)
	eph.Vel[2], _ = r.GetFloatSigned(18, 0.004)
	eph.Acc[0], _ = r.GetFloatSigned(10, 0.0000125)
	eph.Acc[1], _ = r.GetFloatSigned(10, 0.0000125)
	eph.Acc[2], _ = r.GetFloatSigned(10, 0.0000625)
	eph.Af0, _ = r.GetFloatSigned(12, p2_31)
	eph.Af1, err = r.GetFloatSigned(8, p2_40)
	if err != nil {
		return eph, ErrMessageTooShort
	}

	norm := math.Sqrt(eph.Pos[0]*eph.Pos[0] + eph.Pos[1]*eph.Pos[1] + eph.Pos[2]*eph.Pos[2])
	if norm < 1.0 {
		return eph, ErrImplausibleOrbit
	}

	eph.PRN = PRN{System: SystemSBAS, Number: int(prn) + 20}
	eph.Toe = NewGPSTime(0, uint32(tocRaw)*16000)
	return eph, nil
}
