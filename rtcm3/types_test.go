package rtcm3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeZeroValueInvalid(t *testing.T) {
	var zero Time
	assert.False(t, zero.Valid())
	assert.True(t, zero.Equal(Time{}))
	assert.False(t, zero.Equal(NewGPSTime(0, 0)))
}

func TestGPSTimeDistinguishesUnsetFromZero(t *testing.T) {
	t0 := NewGPSTime(0, 0)
	assert.True(t, t0.Valid())
	assert.True(t, t0.Equal(NewGPSTime(0, 0)))
}

func TestBDTTimeAlignsWithGPSScale(t *testing.T) {
	// BDT week 0 began 1356 GPS weeks after the GPS epoch, 14 s behind GPST
	bdt := NewBDTTime(0, 0)
	gps := NewGPSTime(1356, 14000)
	assert.True(t, bdt.Equal(gps))
}

func TestGLONASSTimeDayDisambiguation(t *testing.T) {
	// reference late in a GPS day; a tk just past UTC midnight (03:00 Moscow)
	// must land on the following UTC day, not 24h earlier
	ref := NewGPSTime(2200, 86300*1000)
	tk := NewGLONASSTime(3*3600*1000+30*1000, ref) // 00:00:30 UTC
	assert.InDelta(t, 130.0, tk.Sub(ref), 1e-6)

	// and one just before UTC midnight stays on the same UTC day
	tk2 := NewGLONASSTime((3*3600-30)*1000, ref)
	assert.InDelta(t, 70.0, tk2.Sub(ref), 1e-6)
}

func TestTimeEqualTolerance(t *testing.T) {
	a := NewGPSTime(100, 500000)
	b := NewGPSTime(100, 500000)
	assert.True(t, a.Equal(b))
	c := NewGPSTime(100, 500001)
	assert.False(t, a.Equal(c))
}

func TestSatObsEmpty(t *testing.T) {
	var obs SatObs
	assert.True(t, obs.Empty())
	obs.Freqs = append(obs.Freqs, FreqObs{Code: "1C"})
	assert.False(t, obs.Empty())
}

func TestResolveWeekRollover(t *testing.T) {
	// raw 10-bit weeks fold onto the continuous line nearest the reference
	assert.Equal(t, 2148, resolveWeekRollover(100, 2100, true))
	assert.Equal(t, 1023, resolveWeekRollover(1023, 1020, true))
	assert.Equal(t, 2047, resolveWeekRollover(1023, 2100, true))
	assert.Equal(t, 2048, resolveWeekRollover(0, 2100, true))
	assert.Equal(t, 7, resolveWeekRollover(7, 0, false))
}
