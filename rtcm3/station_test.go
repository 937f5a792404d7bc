package rtcm3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putDescriptor(w *bitWriter, s string) {
	w.putBits(uint64(len(s)), 8)
	for _, b := range []byte(s) {
		w.putBits(uint64(b), 8)
	}
}

func buildType1005(staid int, x, y, z int64) []byte {
	var w bitWriter
	w.putBits(1005, 12)
	w.putBits(uint64(staid), 12)
	w.putBits(0, 6) // ITRF year
	w.putBits(0, 4) // GPS/GLO/GAL indicators + reference-station flag
	w.putBitsSigned(x, 38)
	w.putBits(0, 2)
	w.putBitsSigned(y, 38)
	w.putBits(0, 2)
	w.putBitsSigned(z, 38)
	return sealFrame(w.buf)
}

func buildType1006(staid int, x, y, z int64, heightTenthMM uint64) []byte {
	var w bitWriter
	w.putBits(1006, 12)
	w.putBits(uint64(staid), 12)
	w.putBits(0, 6)
	w.putBits(0, 4)
	w.putBitsSigned(x, 38)
	w.putBits(0, 2)
	w.putBitsSigned(y, 38)
	w.putBits(0, 2)
	w.putBitsSigned(z, 38)
	w.putBits(heightTenthMM, 16)
	return sealFrame(w.buf)
}

func buildType1008(staid int, descriptor string, setup int, serial string) []byte {
	var w bitWriter
	w.putBits(1008, 12)
	w.putBits(uint64(staid), 12)
	putDescriptor(&w, descriptor)
	w.putBits(uint64(setup), 8)
	putDescriptor(&w, serial)
	return sealFrame(w.buf)
}

func buildType1033(staid int, antenna, antSerial, receiver, firmware, recvSerial string) []byte {
	var w bitWriter
	w.putBits(1033, 12)
	w.putBits(uint64(staid), 12)
	putDescriptor(&w, antenna)
	w.putBits(0, 8) // setup id
	putDescriptor(&w, antSerial)
	putDescriptor(&w, receiver)
	putDescriptor(&w, firmware)
	putDescriptor(&w, recvSerial)
	return sealFrame(w.buf)
}

func TestDecodeAntennaReferencePoint(t *testing.T) {
	d := NewDecoder()
	// 0.1 mm units; one negative coordinate exercises the 38-bit sign
	ok := d.Decode(buildType1005(2003, 40000000000, -32000000000, 48000000000))
	require.True(t, ok)
	require.True(t, d.ARPValid)
	assert.Equal(t, 2003, d.ARP.StationID)
	assert.InDelta(t, 4000000.0, d.ARP.Pos[0], 1e-6)
	assert.InDelta(t, -3200000.0, d.ARP.Pos[1], 1e-6)
	assert.InDelta(t, 4800000.0, d.ARP.Pos[2], 1e-6)
	assert.False(t, d.ARP.HasHeight)
	assert.Len(t, d.AntennaPositions, 1)
}

func TestDecodeARPWithHeight(t *testing.T) {
	d := NewDecoder()
	ok := d.Decode(buildType1006(7, 1000000, 2000000, 3000000, 15432))
	require.True(t, ok)
	require.True(t, d.ARP.HasHeight)
	assert.InDelta(t, 1.5432, d.ARP.Height, 1e-9)
}

func TestARPDuplicatesSuppressed(t *testing.T) {
	d := NewDecoder()
	raw := buildType1005(7, 100, 200, 300)
	d.Decode(raw)
	d.Decode(raw)
	assert.Len(t, d.AntennaPositions, 1)

	d.Decode(buildType1005(7, 101, 200, 300))
	assert.Len(t, d.AntennaPositions, 2)
}

func TestDecodeAntennaDescriptor(t *testing.T) {
	d := NewDecoder()
	ok := d.Decode(buildType1008(12, "TRM59800.00     SCIS", 0, "5217353901"))
	require.True(t, ok)
	require.Len(t, d.AntennaDescriptors, 1)
	info := d.AntennaDescriptors[0]
	assert.Equal(t, 12, info.StationID)
	assert.Equal(t, "TRM59800.00     SCIS", info.Descriptor)
	assert.Equal(t, "5217353901", info.SerialNumber)
	assert.Empty(t, d.ReceiverDescriptors)
}

func TestDecodeReceiverDescriptor(t *testing.T) {
	d := NewDecoder()
	ok := d.Decode(buildType1033(12, "LEIAR25.R4      LEIT", "725187", "LEICA GR50", "4.31", "1830763"))
	require.True(t, ok)
	require.Len(t, d.AntennaDescriptors, 1)
	require.Len(t, d.ReceiverDescriptors, 1)
	rcv := d.ReceiverDescriptors[0]
	assert.Equal(t, "LEICA GR50", rcv.ReceiverType)
	assert.Equal(t, "4.31", rcv.Firmware)
	assert.Equal(t, "1830763", rcv.ReceiverSerial)
}

func TestDescriptorDuplicatesSuppressed(t *testing.T) {
	d := NewDecoder()
	raw := buildType1008(12, "JAV_RINGANT_G3T NONE", 0, "00123")
	d.Decode(raw)
	d.Decode(raw)
	assert.Len(t, d.AntennaDescriptors, 1)

	d.Decode(buildType1008(12, "JAV_RINGANT_G3T NONE", 0, "00124"))
	assert.Len(t, d.AntennaDescriptors, 2)
}

func TestDescriptorOverlongRejected(t *testing.T) {
	var w bitWriter
	w.putBits(1008, 12)
	w.putBits(1, 12)
	w.putBits(255, 8) // length byte far beyond what the payload holds
	d := NewDecoder()
	ok := d.Decode(sealFrame(w.buf))
	assert.False(t, ok)
	assert.Empty(t, d.AntennaDescriptors)
}
