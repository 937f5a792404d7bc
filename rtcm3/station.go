package rtcm3

import "github.com/fxb-rtcm/rtcm3dec/bitreader"

// arpScale converts the 0.1mm ARP coordinate unit to meters.
const arpScale = 0.0001

// StationARP is a decoded antenna reference point (messages 1005/1006):
// ECEF position in meters, plus height above the ARP for 1006.
type StationARP struct {
	StationID int
	ITRF      int
	Pos       [3]float64 // ECEF x,y,z, meters
	HasHeight bool
	Height    float64 // meters, valid iff HasHeight
}

// decodeType1005 decodes message 1005 (ARP without antenna height). The
// 38-bit ECEF fields exceed a 32-bit word; bitreader.GetBitsSigned reads
// them in one call.
func decodeType1005(payload []byte) (StationARP, error) {
	var arp StationARP
	r := bitreader.New(payload)
	if err := r.Skip(12); err != nil {
		return arp, ErrMessageTooShort
	}
	staid, err := r.GetBits(12)
	if err != nil {
		return arp, ErrMessageTooShort
	}
	itrf, _ := r.GetBits(6)
	if err := r.Skip(4); err != nil {
		return arp, ErrMessageTooShort
	}
	x, _ := r.GetBitsSigned(38)
	if err := r.Skip(2); err != nil {
		return arp, ErrMessageTooShort
	}
	y, _ := r.GetBitsSigned(38)
	if err := r.Skip(2); err != nil {
		return arp, ErrMessageTooShort
	}
	z, err := r.GetBitsSigned(38)
	if err != nil {
		return arp, ErrMessageTooShort
	}

	arp.StationID = int(staid)
	arp.ITRF = int(itrf)
	arp.Pos = [3]float64{float64(x) * arpScale, float64(y) * arpScale, float64(z) * arpScale}
	return arp, nil
}

// decodeType1006 decodes message 1006 (ARP with antenna height).
func decodeType1006(payload []byte) (StationARP, error) {
	var arp StationARP
	r := bitreader.New(payload)
	if err := r.Skip(12); err != nil {
		return arp, ErrMessageTooShort
	}
	staid, err := r.GetBits(12)
	if err != nil {
		return arp, ErrMessageTooShort
	}
	itrf, _ := r.GetBits(6)
	if err := r.Skip(4); err != nil {
		return arp, ErrMessageTooShort
	}
	x, _ := r.GetBitsSigned(38)
	if err := r.Skip(2); err != nil {
		return arp, ErrMessageTooShort
	}
	y, _ := r.GetBitsSigned(38)
	if err := r.Skip(2); err != nil {
		return arp, ErrMessageTooShort
	}
	z, _ := r.GetBitsSigned(38)
	anth, err := r.GetBits(16)
	if err != nil {
		return arp, ErrMessageTooShort
	}

	arp.StationID = int(staid)
	arp.ITRF = int(itrf)
	arp.Pos = [3]float64{float64(x) * arpScale, float64(y) * arpScale, float64(z) * arpScale}
	arp.HasHeight = true
	arp.Height = float64(anth) * arpScale
	return arp, nil
}

// AntennaInfo is a decoded antenna/receiver descriptor (messages
// 1007/1008/1033). Fields absent from the message's shape stay zero-value
// ("" for strings).
type AntennaInfo struct {
	StationID    int
	Descriptor   string
	SetupID      int
	SerialNumber string // populated by 1008/1033 only

	// ReceiverType/Firmware/ReceiverSerial are populated by 1033 only.
	ReceiverType   string
	Firmware       string
	ReceiverSerial string
}

// maxDescriptorLen bounds the length-prefixed ASCII fields: wider than the
// RTCM standard's 31-char antenna descriptor to tolerate the
// receiver-descriptor/firmware/serial fields 1033 can carry.
const maxDescriptorLen = 264

func readDescriptor(r *bitreader.Reader) (string, error) {
	n, err := r.GetBits(8)
	if err != nil {
		return "", ErrMessageTooShort
	}
	if int(n) > maxDescriptorLen {
		return "", ErrMessageTooShort
	}
	buf := make([]byte, n)
	for i := range buf {
		b, err := r.GetBits(8)
		if err != nil {
			return "", ErrMessageTooShort
		}
		buf[i] = byte(b)
	}
	return string(buf), nil
}

// decodeType1007 decodes message 1007 (antenna descriptor, no serial number).
func decodeType1007(payload []byte) (AntennaInfo, error) {
	var info AntennaInfo
	r := bitreader.New(payload)
	if err := r.Skip(12); err != nil {
		return info, ErrMessageTooShort
	}
	staid, err := r.GetBits(12)
	if err != nil {
		return info, ErrMessageTooShort
	}
	des, err := readDescriptor(r)
	if err != nil {
		return info, err
	}
	setup, err := r.GetBits(8)
	if err != nil {
		return info, ErrMessageTooShort
	}

	info.StationID = int(staid)
	info.Descriptor = des
	info.SetupID = int(setup)
	return info, nil
}

// decodeType1008 decodes message 1008 (antenna descriptor + serial number).
func decodeType1008(payload []byte) (AntennaInfo, error) {
	var info AntennaInfo
	r := bitreader.New(payload)
	if err := r.Skip(12); err != nil {
		return info, ErrMessageTooShort
	}
	staid, err := r.GetBits(12)
	if err != nil {
		return info, ErrMessageTooShort
	}
	des, err := readDescriptor(r)
	if err != nil {
		return info, err
	}
	setup, err := r.GetBits(8)
	if err != nil {
		return info, ErrMessageTooShort
	}
	sno, err := readDescriptor(r)
	if err != nil {
		return info, err
	}

	info.StationID = int(staid)
	info.Descriptor = des
	info.SetupID = int(setup)
	info.SerialNumber = sno
	return info, nil
}

// decodeType1033 decodes message 1033 (antenna + receiver + firmware +
// receiver-serial descriptor, all length-prefixed ASCII).
func decodeType1033(payload []byte) (AntennaInfo, error) {
	var info AntennaInfo
	r := bitreader.New(payload)
	if err := r.Skip(12); err != nil {
		return info, ErrMessageTooShort
	}
	staid, err := r.GetBits(12)
	if err != nil {
		return info, ErrMessageTooShort
	}
	des, err := readDescriptor(r)
	if err != nil {
		return info, err
	}
	setup, err := r.GetBits(8)
	if err != nil {
		return info, ErrMessageTooShort
	}
	sno, err := readDescriptor(r)
	if err != nil {
		return info, err
	}
	rec, err := readDescriptor(r)
	if err != nil {
		return info, err
	}
	ver, err := readDescriptor(r)
	if err != nil {
		return info, err
	}
	rsn, err := readDescriptor(r)
	if err != nil {
		return info, err
	}

	info.StationID = int(staid)
	info.Descriptor = des
	info.SetupID = int(setup)
	info.SerialNumber = sno
	info.ReceiverType = rec
	info.Firmware = ver
	info.ReceiverSerial = rsn
	return info, nil
}
