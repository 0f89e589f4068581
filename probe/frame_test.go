package probe

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	frame, err := encodeFrame(opWrite16, 0x0004, []byte{0xff, 0x0f})
	if err != nil {
		t.Fatal(err)
	}

	op, addr, payload, err := decodeFrame(frame)
	if err != nil {
		t.Fatal(err)
	}
	if op != opWrite16 {
		t.Errorf("op = %#02x", op)
	}
	if addr != 0x0004 {
		t.Errorf("addr = %#04x", addr)
	}
	if !bytes.Equal(payload, []byte{0xff, 0x0f}) {
		t.Errorf("payload = %#v", payload)
	}
}

func TestFrameCorruptionDetected(t *testing.T) {
	frame, err := encodeFrame(opRead8, 0x0005, nil)
	if err != nil {
		t.Fatal(err)
	}

	frame[2] ^= 0x01
	if _, _, _, err := decodeFrame(frame); !errors.Is(err, errCRC) {
		t.Errorf("got %v want %v", err, errCRC)
	}

	if _, _, _, err := decodeFrame(frame[:3]); !errors.Is(err, errFrameSize) {
		t.Errorf("truncated: got %v want %v", err, errFrameSize)
	}
}

func TestFrameSizeLimit(t *testing.T) {
	if _, err := encodeFrame(opWrite8, 0, make([]byte, maxFrameSize)); !errors.Is(err, errFrameSize) {
		t.Errorf("got %v want %v", err, errFrameSize)
	}
}

func TestResponseStatusMapping(t *testing.T) {
	testCases := []struct {
		status uint8
		want   error
	}{
		{statusOK, nil},
		{statusParse, errParse},
		{statusExecution, errExecution},
		{0x42, errStatus},
	}

	for _, tc := range testCases {
		resp := encodeResponse(tc.status, nil)
		if _, err := decodeResponse(resp); !errors.Is(err, tc.want) {
			t.Errorf("status %#02x: got %v want %v", tc.status, err, tc.want)
		}
	}
}
