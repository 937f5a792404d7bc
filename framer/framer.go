// Package framer scans an append-only byte stream for 0xD3-prefixed RTCM 3
// frames, validates their length and CRC-24Q, and yields one message
// payload at a time. Partial trailing bytes are preserved across calls to
// Feed, so the stream may arrive in arbitrary chunks.
package framer

import "github.com/fxb-rtcm/rtcm3dec/crc24q"

// MaxBuffer bounds the framer's internal buffer. A single RTCM 3 frame can
// be at most 1023+6 bytes, so 2048 always holds at least one full frame's
// worth of slack for resync.
const MaxBuffer = 2048

const preamble = 0xD3

// Frame is one successfully validated RTCM 3 message.
type Frame struct {
	// MessageID is the 12-bit RTCM message number (first 12 bits of Payload).
	MessageID int
	// Payload is the length-L message body, excluding the 3-byte header and
	// the trailing 3-byte CRC. It is a copy, independent of the framer's
	// internal buffer, and stays valid after later calls to Feed.
	Payload []byte
}

// Framer holds the resync state for one byte stream. The zero value is
// ready to use.
type Framer struct {
	buf []byte
}

// Feed appends data to the framer's internal buffer (capped at MaxBuffer,
// dropping the oldest unparsed bytes if data would overflow it) and
// extracts every complete, CRC-valid frame currently available. Bytes that
// don't yet form a full frame are preserved for the next call.
func (f *Framer) Feed(data []byte) []Frame {
	f.buf = append(f.buf, data...)
	if over := len(f.buf) - MaxBuffer; over > 0 {
		f.buf = f.buf[over:]
	}

	var frames []Frame
	for {
		fr, consumed, ok := f.tryExtract()
		if consumed > 0 {
			f.buf = f.buf[consumed:]
		}
		if ok {
			frames = append(frames, fr)
			continue
		}
		if consumed == 0 {
			break // need more bytes
		}
		// dropped garbage or a corrupt frame: rescan what remains
	}
	return frames
}

// tryExtract looks for one frame at the front of f.buf. It returns the
// number of bytes to drop from the front of the buffer regardless of
// whether a frame was found (1 byte on resync, L+6 bytes on success, 0 when
// more data is needed).
func (f *Framer) tryExtract() (Frame, int, bool) {
	buf := f.buf
	if len(buf) == 0 {
		return Frame{}, 0, false
	}
	// scan for the preamble byte
	idx := -1
	for i, b := range buf {
		if b == preamble {
			idx = i
			break
		}
	}
	if idx < 0 {
		// nothing left to resync on; drop everything we scanned
		return Frame{}, len(buf), false
	}
	if idx > 0 {
		// drop the garbage before the preamble and retry against what's left
		return Frame{}, idx, false
	}
	if len(buf) < 3 {
		return Frame{}, 0, false // need more bytes for the length field
	}
	if buf[1]&0xFC != 0 {
		// the 6 bits between preamble and length are reserved and must be
		// zero; anything else is a false preamble
		return Frame{}, 1, false
	}
	length := (int(buf[1]&0x03) << 8) | int(buf[2])
	total := length + 6
	if len(buf) < total {
		return Frame{}, 0, false // need more bytes for the full frame
	}
	headerAndPayload := length + 3
	want := crc24q.Compute(buf, headerAndPayload)
	got := (uint32(buf[headerAndPayload]) << 16) | (uint32(buf[headerAndPayload+1]) << 8) | uint32(buf[headerAndPayload+2])
	if want != got {
		// CRC mismatch: resync by advancing one byte past the preamble
		return Frame{}, 1, false
	}

	payload := make([]byte, length)
	copy(payload, buf[3:3+length])
	messageID := 0
	if length >= 2 {
		messageID = (int(payload[0]) << 4) | (int(payload[1]) >> 4)
	}
	return Frame{MessageID: messageID, Payload: payload}, total, true
}

// Pending returns the number of bytes currently buffered but not yet
// resolved into a frame or discarded.
func (f *Framer) Pending() int { return len(f.buf) }
