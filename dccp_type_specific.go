package dccp

import (
	"fmt"

	"github.com/gaukas/dccp/internal/utils"
	"golang.org/x/crypto/cryptobyte"
)

// TypeSpecificLength returns the number of bytes the sub-header of packet
// type t occupies after the generic header.
func TypeSpecificLength(t PacketType) int {
	switch t {
	case PacketTypeRequest:
		return 4 // service code
	case PacketTypeResponse:
		return ackSlotLength + 4 // ack, service code
	case PacketTypeReset:
		return ackSlotLength + 4 // ack, reset code, reset data
	case PacketTypeAck, PacketTypeDataAck, PacketTypeCloseReq, PacketTypeClose,
		PacketTypeSync, PacketTypeSyncAck:
		return ackSlotLength
	case PacketTypeData, PacketTypeInvalid:
		return 0
	default:
		return 0
	}
}

// DecodeTypeSpecificHeader reads the sub-header of packet type t starting at
// b[offset] and returns it with the offset of the first byte after it.
//
// PacketTypeInvalid consumes nothing and returns a sub-header whose
// ParseError() is ErrUnknownPacketType; that is not treated as a failure.
func DecodeTypeSpecificHeader(b []byte, offset int, t PacketType) (TypeSpecificHeader, int, error) {
	tsh := TypeSpecificHeader{PacketType: t}

	if !t.Valid() {
		tsh.PacketType = PacketTypeInvalid
		tsh.parseError = fmt.Errorf("%w: no sub-header decoded", ErrUnknownPacketType)
		return tsh, offset, nil
	}

	need := TypeSpecificLength(t)
	if offset < 0 || offset > len(b) || available(b, offset) < need {
		return TypeSpecificHeader{}, offset, fmt.Errorf("%w: %s sub-header needs %d bytes, %d available",
			ErrTooShort, t, need, available(b, offset))
	}
	s := cryptobyte.String(b[offset : offset+need])

	if t.HasAck() {
		var err error
		if tsh.AckNumber, err = readAckSlot(&s); err != nil {
			return TypeSpecificHeader{}, offset, err
		}
	}

	switch t {
	case PacketTypeRequest, PacketTypeResponse:
		if !s.ReadUint32(&tsh.ServiceCode) {
			return TypeSpecificHeader{}, offset, fmt.Errorf("%w: service code", ErrTooShort)
		}
	case PacketTypeReset:
		var code uint8
		var data []byte
		if !s.ReadUint8(&code) || !s.ReadBytes(&data, len(tsh.ResetData)) {
			return TypeSpecificHeader{}, offset, fmt.Errorf("%w: reset code", ErrTooShort)
		}
		tsh.ResetCode = ResetCode(code)
		copy(tsh.ResetData[:], data)
	case PacketTypeData:
		// empty sub-header
	case PacketTypeAck, PacketTypeDataAck, PacketTypeCloseReq, PacketTypeClose,
		PacketTypeSync, PacketTypeSyncAck:
		// ack only
	}

	return tsh, offset + need, nil
}

// readAckSlot reads the 8-byte acknowledgement slot. The top 2 bytes are
// reserved and discarded without being checked.
func readAckSlot(s *cryptobyte.String) (uint64, error) {
	var ack []byte
	if !s.Skip(2) || !s.ReadBytes(&ack, 6) {
		return 0, fmt.Errorf("%w: acknowledgement number", ErrTooShort)
	}
	return utils.BigEndianUint(ack), nil
}
