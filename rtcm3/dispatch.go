package rtcm3

// ephPayloadSize gives the exact payload length in bytes each ephemeris
// message must have; frames of any other size are rejected without decode.
var ephPayloadSize = map[int]int{
	1019: 61, // GPS
	1020: 45, // GLONASS
	1041: 61, // IRNSS
	1042: 64, // BeiDou
	1043: 29, // SBAS
	1044: 61, // QZSS
	1045: 62, // Galileo F/NAV
	1046: 63, // Galileo I/NAV
}

// dispatch routes one framed payload to the decoder matching its message
// ID. It returns false (with no error) for message IDs this package
// recognizes but does not decode (SSR, proprietary, non-extended legacy
// observation types), and for unknown IDs outright — every framed ID is
// counted into TypeList before dispatch runs.
func (d *Decoder) dispatch(messageID int, payload []byte) (bool, error) {
	if size, isEph := ephPayloadSize[messageID]; isEph && len(payload) != size {
		return false, ErrMessageWrongSize
	}

	switch messageID {
	case 1001, 1003, 1009, 1011:
		// L1-only / non-extended variants carry no ambiguity field, so a
		// full pseudorange cannot be reconstructed
		d.diagf("rtcm3 %d: partial data ignored", messageID)
		return false, nil

	case 1002:
		h, towMS, obs, err := decodeType1002(payload)
		if err != nil {
			return false, err
		}
		return d.acceptLegacyGPS(h, towMS, obs), nil
	case 1004:
		h, towMS, obs, err := decodeType1004(payload)
		if err != nil {
			return false, err
		}
		return d.acceptLegacyGPS(h, towMS, obs), nil
	case 1010:
		h, todMS, obs, err := decodeType1010(payload, d.FreqTable)
		if err != nil {
			return false, err
		}
		return d.acceptLegacyGLONASS(h, todMS, obs), nil
	case 1012:
		h, todMS, obs, err := decodeType1012(payload, d.FreqTable)
		if err != nil {
			return false, err
		}
		return d.acceptLegacyGLONASS(h, todMS, obs), nil

	case 1005:
		arp, err := decodeType1005(payload)
		if err != nil {
			return false, err
		}
		if !d.testStationID(arp.StationID) {
			return false, nil
		}
		d.appendARP(arp)
		return true, nil
	case 1006:
		arp, err := decodeType1006(payload)
		if err != nil {
			return false, err
		}
		if !d.testStationID(arp.StationID) {
			return false, nil
		}
		d.appendARP(arp)
		return true, nil
	case 1007:
		info, err := decodeType1007(payload)
		if err != nil {
			return false, err
		}
		if !d.testStationID(info.StationID) {
			return false, nil
		}
		d.appendAntenna(info)
		return true, nil
	case 1008:
		info, err := decodeType1008(payload)
		if err != nil {
			return false, err
		}
		if !d.testStationID(info.StationID) {
			return false, nil
		}
		d.appendAntenna(info)
		return true, nil
	case 1033:
		info, err := decodeType1033(payload)
		if err != nil {
			return false, err
		}
		if !d.testStationID(info.StationID) {
			return false, nil
		}
		d.appendAntenna(info)
		return true, nil

	case 1019:
		eph, err := decodeGPSEphemeris(payload, d.refTime())
		if err != nil {
			return false, err
		}
		d.onGPSEphemeris(eph)
		return true, nil
	case 1020:
		geph, err := decodeGLOEphemeris(payload, d.refTime())
		if err != nil {
			return false, err
		}
		if d.FreqTable != nil {
			d.FreqTable.Set(geph.PRN.Number, geph.FreqNum)
		}
		d.onGLOEphemeris(geph)
		return true, nil
	case 1041:
		eph, err := decodeIRNSSEphemeris(payload, d.refTime())
		if err != nil {
			return false, err
		}
		d.onIRNSSEphemeris(eph)
		return true, nil
	case 1042:
		eph, err := decodeBDSEphemeris(payload, d.refTime())
		if err != nil {
			return false, err
		}
		d.onBDSEphemeris(eph)
		return true, nil
	case 1043:
		eph, err := decodeSBASEphemeris(payload)
		if err != nil {
			return false, err
		}
		d.onSBASEphemeris(eph)
		return true, nil
	case 1044:
		eph, err := decodeQZSSEphemeris(payload, d.refTime())
		if err != nil {
			return false, err
		}
		d.onQZSSEphemeris(eph)
		return true, nil
	case 1045:
		eph, err := decodeGalileoEphemeris(payload, "FNAV")
		if err != nil {
			return false, err
		}
		d.onGalileoEphemeris(eph)
		return true, nil
	case 1046:
		eph, err := decodeGalileoEphemeris(payload, "INAV")
		if err != nil {
			return false, err
		}
		d.onGalileoEphemeris(eph)
		return true, nil
	}

	if sys, subtype, ok := msmRoute(messageID); ok {
		h, towMS, obs, err := decodeMSM(payload, sys, subtype, d.FreqTable)
		if err == ErrPartialMSMData {
			// the header's epoch time and sync flag still count
			d.diagf("rtcm3 %d: partial data ignored", messageID)
			return d.acceptMSM(sys, h, towMS, nil), nil
		}
		if err != nil {
			return false, err
		}
		return d.acceptMSM(sys, h, towMS, obs), nil
	}

	if isSSRRange(messageID) {
		if d.SSR != nil {
			d.SSR.Handle(messageID, payload)
		}
		return false, nil
	}

	return false, nil
}

// msmRoute maps an RTCM message ID in 1071-1137 to its constellation and
// MSM subtype (1-7), one 10-wide block per constellation (GPS 107x,
// GLONASS 108x, Galileo 109x, SBAS 110x, QZSS 111x, BeiDou 112x, IRNSS
// 113x). The SBAS block follows the published 1101-1107 range.
func msmRoute(messageID int) (System, int, bool) {
	blocks := []struct {
		base int
		sys  System
	}{
		{1070, SystemGPS},
		{1080, SystemGLONASS},
		{1090, SystemGalileo},
		{1100, SystemSBAS},
		{1110, SystemQZSS},
		{1120, SystemBeiDou},
		{1130, SystemIRNSS},
	}
	for _, b := range blocks {
		if messageID > b.base && messageID <= b.base+7 {
			return b.sys, messageID - b.base, true
		}
	}
	return SystemUnknown, 0, false
}

// isSSRRange reports whether messageID falls in one of the RTCM SSR
// correction blocks routed to the SSR sink instead of decoded here
// (1057-1068 GPS/GLONASS SSR, 1240-1270 multi-GNSS SSR, 4076 IGS SSR).
func isSSRRange(messageID int) bool {
	switch {
	case messageID >= 1057 && messageID <= 1068:
		return true
	case messageID >= 1240 && messageID <= 1270:
		return true
	case messageID == 4076:
		return true
	}
	return false
}
