package rtcm3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalTablesHaveNoCodeOnReservedEntries(t *testing.T) {
	for _, sys := range []System{SystemGPS, SystemGLONASS, SystemGalileo, SystemQZSS, SystemSBAS, SystemBeiDou, SystemIRNSS} {
		table := signalTable(sys)
		for i, entry := range table {
			if entry.code == "" {
				assert.Equal(t, bandNone, entry.kind, "sys %c bit %d", sys, i+1)
				continue
			}
			require.Len(t, entry.code, 2, "sys %c bit %d", sys, i+1)
			if sys == SystemGLONASS {
				assert.NotEqual(t, bandFixed, entry.kind, "sys %c bit %d", sys, i+1)
			} else {
				assert.Equal(t, bandFixed, entry.kind, "sys %c bit %d", sys, i+1)
				assert.Positive(t, entry.freq, "sys %c bit %d", sys, i+1)
			}
		}
	}
}

func TestFixedWavelength(t *testing.T) {
	table := signalTable(SystemGPS)
	wl, ok := table[1].wavelength(0, false) // bit 2, L1 C/A
	require.True(t, ok)
	assert.InDelta(t, CLight/freqL1, wl, 1e-12)
}

func TestGLONASSWavelengthPerSlot(t *testing.T) {
	table := signalTable(SystemGLONASS)
	l1 := table[1] // "1C"
	l2 := table[7] // "2C"

	for k := -7; k <= 13; k++ {
		wl, ok := l1.wavelength(k, true)
		require.True(t, ok)
		assert.InDelta(t, CLight/(glonassG1Base+glonassG1Step*float64(k)), wl, 1e-12, "k=%d", k)

		wl, ok = l2.wavelength(k, true)
		require.True(t, ok)
		assert.InDelta(t, CLight/(glonassG2Base+glonassG2Step*float64(k)), wl, 1e-12, "k=%d", k)
	}
}

func TestGLONASSWavelengthUnknownSlot(t *testing.T) {
	table := signalTable(SystemGLONASS)
	_, ok := table[1].wavelength(0, false)
	assert.False(t, ok)
}

func TestLegacyWavelength(t *testing.T) {
	wl, ok := legacyWavelength(SystemGPS, 0, 0, false)
	require.True(t, ok)
	assert.InDelta(t, CLight/freqL1, wl, 1e-12)

	wl, ok = legacyWavelength(SystemGPS, 1, 0, false)
	require.True(t, ok)
	assert.InDelta(t, CLight/freqL2, wl, 1e-12)

	_, ok = legacyWavelength(SystemGLONASS, 0, 0, false)
	assert.False(t, ok)

	wl, ok = legacyWavelength(SystemGLONASS, 1, 5, true)
	require.True(t, ok)
	assert.InDelta(t, CLight/(glonassG2Base+glonassG2Step*5), wl, 1e-12)
}

func TestMSMRoute(t *testing.T) {
	cases := []struct {
		id      int
		sys     System
		subtype int
	}{
		{1071, SystemGPS, 1},
		{1077, SystemGPS, 7},
		{1084, SystemGLONASS, 4},
		{1095, SystemGalileo, 5},
		{1106, SystemSBAS, 6},
		{1117, SystemQZSS, 7},
		{1124, SystemBeiDou, 4},
		{1137, SystemIRNSS, 7},
	}
	for _, c := range cases {
		sys, subtype, ok := msmRoute(c.id)
		require.True(t, ok, "id %d", c.id)
		assert.Equal(t, c.sys, sys, "id %d", c.id)
		assert.Equal(t, c.subtype, subtype, "id %d", c.id)
	}

	for _, id := range []int{1070, 1078, 1080, 1100, 1138, 1230} {
		_, _, ok := msmRoute(id)
		assert.False(t, ok, "id %d", id)
	}
}
