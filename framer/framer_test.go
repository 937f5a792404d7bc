package framer_test

import (
	"math/rand"
	"testing"

	"github.com/fxb-rtcm/rtcm3dec/crc24q"
	"github.com/fxb-rtcm/rtcm3dec/framer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFrame constructs a valid RTCM3 frame carrying an arbitrary payload
// whose first 12 bits encode messageID.
func buildFrame(messageID int, extraPayload []byte) []byte {
	payload := make([]byte, 2+len(extraPayload))
	payload[0] = byte(messageID >> 4)
	payload[1] = byte((messageID & 0xF) << 4)
	copy(payload[2:], extraPayload)

	length := len(payload)
	out := make([]byte, 3+length+3)
	out[0] = 0xD3
	out[1] = byte((length >> 8) & 0x03)
	out[2] = byte(length & 0xFF)
	copy(out[3:], payload)

	crc := crc24q.Compute(out, 3+length)
	out[3+length] = byte(crc >> 16)
	out[3+length+1] = byte(crc >> 8)
	out[3+length+2] = byte(crc)
	return out
}

func TestFeedSingleFrame(t *testing.T) {
	var f framer.Framer
	raw := buildFrame(1004, []byte{0x11, 0x22, 0x33})
	frames := f.Feed(raw)
	require.Len(t, frames, 1)
	assert.Equal(t, 1004, frames[0].MessageID)
}

func TestFeedResyncsOverGarbage(t *testing.T) {
	var f framer.Framer
	raw := buildFrame(1019, []byte{0xAA, 0xBB})
	input := append([]byte{0xFF, 0xFF, 0xD3, 0xFC}, raw...) // junk including a false preamble
	frames := f.Feed(input)
	require.Len(t, frames, 1)
	assert.Equal(t, 1019, frames[0].MessageID)
}

func TestFeedChunkingIndependence(t *testing.T) {
	raw1 := buildFrame(1077, []byte{1, 2, 3, 4})
	raw2 := buildFrame(1020, []byte{5, 6})
	full := append(append([]byte{}, raw1...), raw2...)

	var whole framer.Framer
	wholeFrames := whole.Feed(full)

	var byteAtATime framer.Framer
	var stepped []framer.Frame
	for _, b := range full {
		stepped = append(stepped, byteAtATime.Feed([]byte{b})...)
	}

	require.Len(t, wholeFrames, 2)
	require.Len(t, stepped, 2)
	for i := range wholeFrames {
		assert.Equal(t, wholeFrames[i].MessageID, stepped[i].MessageID)
		assert.Equal(t, wholeFrames[i].Payload, stepped[i].Payload)
	}
}

func TestFeedRandomChunking(t *testing.T) {
	raw1 := buildFrame(1005, []byte{9, 9, 9, 9, 9})
	raw2 := buildFrame(1012, []byte{1, 1})
	raw3 := buildFrame(1045, []byte{2, 2, 2})
	full := append(append(append([]byte{}, raw1...), raw2...), raw3...)

	rng := rand.New(rand.NewSource(42))
	var f framer.Framer
	var got []framer.Frame
	for len(full) > 0 {
		n := 1 + rng.Intn(len(full))
		got = append(got, f.Feed(full[:n])...)
		full = full[n:]
	}
	require.Len(t, got, 3)
	assert.Equal(t, []int{1005, 1012, 1045}, []int{got[0].MessageID, got[1].MessageID, got[2].MessageID})
}

func TestFeedCRCMismatchResyncs(t *testing.T) {
	var f framer.Framer
	raw := buildFrame(1007, []byte{1, 2})
	corrupted := append([]byte{}, raw...)
	corrupted[len(corrupted)-1] ^= 0xFF // break the trailing CRC byte
	good := buildFrame(1008, []byte{3, 4})
	frames := f.Feed(append(corrupted, good...))
	require.Len(t, frames, 1)
	assert.Equal(t, 1008, frames[0].MessageID)
}

func TestFeedNeedsMoreBytes(t *testing.T) {
	var f framer.Framer
	raw := buildFrame(1033, []byte{1, 2, 3})
	frames := f.Feed(raw[:len(raw)-1])
	assert.Empty(t, frames)
	assert.Positive(t, f.Pending())

	frames = f.Feed(raw[len(raw)-1:])
	require.Len(t, frames, 1)
	assert.Equal(t, 1033, frames[0].MessageID)
}

func TestBufferCap(t *testing.T) {
	var f framer.Framer
	// a preamble followed by a length field declaring a frame far larger
	// than what follows: the framer can never complete it and must not
	// grow its buffer past MaxBuffer while waiting.
	huge := make([]byte, framer.MaxBuffer+500)
	huge[0] = 0xD3
	huge[1] = 0x03
	huge[2] = 0xFF
	f.Feed(huge)
	assert.LessOrEqual(t, f.Pending(), framer.MaxBuffer)
}
