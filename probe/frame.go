package probe

import (
	"encoding/binary"
	"errors"

	"github.com/snksoft/crc"
)

// Monitor opcodes. The high bit distinguishes writes from reads.
const (
	opRead8   = 0x01
	opRead16  = 0x02
	opWrite8  = 0x81
	opWrite16 = 0x82
)

// Monitor status codes, the first byte of every response.
const (
	statusOK        = 0x00
	statusParse     = 0x03
	statusExecution = 0x0f
)

const (
	// cmdOverhead is size, opcode, two address bytes and the crc.
	cmdOverhead = 6
	// respOverhead is size, status and the crc.
	respOverhead = 4

	maxFrameSize = 64
)

var (
	errFrameSize = errors.New("probe: bad frame size")
	errCRC       = errors.New("probe: crc mismatch")

	errParse     = errors.New("probe: monitor could not parse command")
	errExecution = errors.New("probe: command execution failed")
	errStatus    = errors.New("probe: unknown monitor status")
)

func checksum(b []byte) uint16 {
	return uint16(crc.CalculateCRC(crc.XMODEM, b))
}

// encodeFrame builds a command frame: size, opcode, little endian address,
// payload and a CRC-16/XMODEM trailer over everything before it.
func encodeFrame(op uint8, addr uint16, payload []byte) ([]byte, error) {
	size := cmdOverhead + len(payload)
	if size > maxFrameSize {
		return nil, errFrameSize
	}

	b := make([]byte, 0, size)
	b = append(b, uint8(size), op)
	b = binary.LittleEndian.AppendUint16(b, addr)
	b = append(b, payload...)
	return binary.LittleEndian.AppendUint16(b, checksum(b)), nil
}

// decodeFrame parses a command frame and returns opcode, address and
// payload. Used by monitor implementations and tests.
func decodeFrame(b []byte) (op uint8, addr uint16, payload []byte, err error) {
	if len(b) < cmdOverhead || int(b[0]) != len(b) {
		return 0, 0, nil, errFrameSize
	}
	body, trailer := b[:len(b)-2], b[len(b)-2:]
	if checksum(body) != binary.LittleEndian.Uint16(trailer) {
		return 0, 0, nil, errCRC
	}
	return b[1], binary.LittleEndian.Uint16(b[2:4]), body[4:], nil
}

// encodeResponse builds a response frame for the given status and payload.
func encodeResponse(status uint8, payload []byte) []byte {
	size := respOverhead + len(payload)
	b := make([]byte, 0, size)
	b = append(b, uint8(size), status)
	b = append(b, payload...)
	return binary.LittleEndian.AppendUint16(b, checksum(b))
}

// decodeResponse validates a response frame and maps its status code to an
// error. On success it returns the payload.
func decodeResponse(b []byte) ([]byte, error) {
	if len(b) < respOverhead || int(b[0]) != len(b) {
		return nil, errFrameSize
	}
	body, trailer := b[:len(b)-2], b[len(b)-2:]
	if checksum(body) != binary.LittleEndian.Uint16(trailer) {
		return nil, errCRC
	}

	switch b[1] {
	case statusOK:
		return body[2:], nil
	case statusParse:
		return nil, errParse
	case statusExecution:
		return nil, errExecution
	default:
		return nil, errStatus
	}
}
