package dccp

import (
	"fmt"

	"github.com/gaukas/dccp/internal/utils"
	"golang.org/x/crypto/cryptobyte"
)

// Bit layout of the two packed bytes in the generic header. Byte 5 holds
// CCVal in bits 4-7 and CsCov in bits 0-3; byte 8 holds X in bit 0 and Type
// in bits 1-4.
const (
	ccvalShift = 4
	typeShift  = 1
	nibbleMask = 0x0f
	xMask      = 0x01
)

func splitCCValCsCov(b uint8) (ccval, cscov uint8) {
	return (b >> ccvalShift) & nibbleMask, b & nibbleMask
}

func splitXType(b uint8) (x bool, rawType uint8) {
	return b&xMask == 1, (b >> typeShift) & nibbleMask
}

// DecodeGenericHeader reads the generic header starting at b[offset] and
// returns it along with the offset of the first byte after it (offset+12 or
// offset+16, depending on the X bit).
func DecodeGenericHeader(b []byte, offset int) (GenericHeader, int, error) {
	var gh GenericHeader

	if offset < 0 || offset > len(b) || len(b)-offset < GenericHeaderLength {
		return gh, offset, fmt.Errorf("%w: generic header needs %d bytes, %d available",
			ErrTooShort, GenericHeaderLength, available(b, offset))
	}

	s := cryptobyte.String(b[offset:])
	var ccvalCsCov, xType uint8
	if !s.ReadUint16(&gh.SourcePort) ||
		!s.ReadUint16(&gh.DestPort) ||
		!s.ReadUint8(&gh.DataOffset) ||
		!s.ReadUint8(&ccvalCsCov) ||
		!s.ReadUint16(&gh.Checksum) ||
		!s.ReadUint8(&xType) {
		return GenericHeader{}, offset, fmt.Errorf("%w: generic header", ErrTooShort)
	}
	gh.CCVal, gh.CsCov = splitCCValCsCov(ccvalCsCov)

	var rawType uint8
	gh.ExtendedSequence, rawType = splitXType(xType)
	gh.PacketType = packetTypeFromRaw(rawType)

	if !gh.ExtendedSequence {
		var seq uint32
		if !s.ReadUint24(&seq) {
			return GenericHeader{}, offset, fmt.Errorf("%w: 24-bit sequence number", ErrTooShort)
		}
		gh.SequenceNumber = uint64(seq)
		return gh, offset + GenericHeaderLength, nil
	}

	var seq []byte
	if !s.Skip(1) || // reserved
		!s.ReadBytes(&seq, 6) {
		return GenericHeader{}, offset, fmt.Errorf("%w: extended generic header needs %d bytes, %d available",
			ErrTooShort, ExtendedGenericHeaderLength, available(b, offset))
	}
	gh.SequenceNumber = utils.BigEndianUint(seq)

	return gh, offset + ExtendedGenericHeaderLength, nil
}

func available(b []byte, offset int) int {
	if offset < 0 || offset > len(b) {
		return 0
	}
	return len(b) - offset
}
