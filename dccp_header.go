package dccp

import "fmt"

// The DCCP generic header takes one of two shapes depending on X, the
// Extended Sequence Numbers bit. With X=1 the sequence number is 48 bits and
// the generic header is 16 bytes:
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|          Source Port          |           Dest Port           |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|  Data Offset  | CCVal | CsCov |           Checksum            |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	| Res | Type  |X|   Reserved    |  Sequence Number (high bits)  .
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	.                  Sequence Number (low bits)                   |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//
// With X=0 only the low 24 bits of the sequence number follow the type byte
// and the generic header is 12 bytes.
const (
	GenericHeaderLength         = 12
	ExtendedGenericHeaderLength = 16

	ackSlotLength = 8 // always 8 bytes, only the low 48 bits are used
)

// PacketType is the 4-bit Type field of the generic header.
type PacketType uint8

const (
	PacketTypeRequest PacketType = iota
	PacketTypeResponse
	PacketTypeData
	PacketTypeAck
	PacketTypeDataAck
	PacketTypeCloseReq
	PacketTypeClose
	PacketTypeReset
	PacketTypeSync
	PacketTypeSyncAck
	PacketTypeInvalid
)

var packetTypeNames = [...]string{
	PacketTypeRequest:  "DCCP-Request",
	PacketTypeResponse: "DCCP-Response",
	PacketTypeData:     "DCCP-Data",
	PacketTypeAck:      "DCCP-Ack",
	PacketTypeDataAck:  "DCCP-DataAck",
	PacketTypeCloseReq: "DCCP-CloseReq",
	PacketTypeClose:    "DCCP-Close",
	PacketTypeReset:    "DCCP-Reset",
	PacketTypeSync:     "DCCP-Sync",
	PacketTypeSyncAck:  "DCCP-SyncAck",
	PacketTypeInvalid:  "DCCP-Invalid",
}

// packetTypeFromRaw maps the raw Type nibble onto PacketType. Reserved values
// 10-15 all collapse into PacketTypeInvalid.
func packetTypeFromRaw(raw uint8) PacketType {
	if raw >= uint8(PacketTypeInvalid) {
		return PacketTypeInvalid
	}
	return PacketType(raw)
}

func (t PacketType) String() string {
	if t > PacketTypeInvalid {
		return fmt.Sprintf("DCCP-Invalid(%d)", uint8(t))
	}
	return packetTypeNames[t]
}

// Valid reports whether t is one of the ten defined packet types.
func (t PacketType) Valid() bool {
	return t < PacketTypeInvalid
}

// HasAck reports whether packets of type t carry an Acknowledgement Number
// slot after the generic header.
func (t PacketType) HasAck() bool {
	switch t {
	case PacketTypeResponse, PacketTypeAck, PacketTypeDataAck, PacketTypeCloseReq,
		PacketTypeClose, PacketTypeReset, PacketTypeSync, PacketTypeSyncAck:
		return true
	default:
		return false
	}
}

// GenericHeader is the fixed prefix shared by every DCCP packet.
type GenericHeader struct {
	SourcePort       uint16     `json:"source_port"`
	DestPort         uint16     `json:"dest_port"`
	DataOffset       uint8      `json:"data_offset"` // in 32-bit words
	CCVal            uint8      `json:"ccval"`       // bits 4-7 of byte 5
	CsCov            uint8      `json:"cscov"`       // bits 0-3 of byte 5
	Checksum         uint16     `json:"checksum"`    // not verified
	ExtendedSequence bool       `json:"x"`
	PacketType       PacketType `json:"type"`
	SequenceNumber   uint64     `json:"seq"`
}

// Length returns the number of bytes the generic header occupies on the wire.
func (gh GenericHeader) Length() int {
	if gh.ExtendedSequence {
		return ExtendedGenericHeaderLength
	}
	return GenericHeaderLength
}

// ChecksumCoverage returns how many bytes of a packetLen-byte packet the
// Checksum field covers, as selected by CsCov (RFC 4340 section 9.2). A zero
// CsCov covers the whole packet; otherwise the header plus (CsCov-1)*4 bytes of
// application data.
func (gh GenericHeader) ChecksumCoverage(packetLen int) (int, error) {
	if gh.CsCov == 0 {
		return packetLen, nil
	}
	cov := int(gh.DataOffset)*4 + (int(gh.CsCov)-1)*4
	if cov > packetLen {
		return 0, fmt.Errorf("%w: cscov %d needs %d bytes, packet has %d", ErrInvalidChecksumCoverage, gh.CsCov, cov, packetLen)
	}
	return cov, nil
}

// TypeSpecificHeader holds the sub-header following the generic header. Which
// fields are meaningful is decided by PacketType:
//
//	Request                                   ServiceCode
//	Response                                  AckNumber, ServiceCode
//	Reset                                     AckNumber, ResetCode, ResetData
//	Ack, DataAck, CloseReq, Close, Sync(Ack)  AckNumber
//	Data                                      (none)
//	Invalid                                   (none), ParseError set
type TypeSpecificHeader struct {
	PacketType  PacketType `json:"type"`
	AckNumber   uint64     `json:"ack,omitempty"` // 48-bit
	ServiceCode uint32     `json:"service_code,omitempty"`
	ResetCode   ResetCode  `json:"reset_code,omitempty"`
	ResetData   [3]byte    `json:"reset_data,omitempty"`

	parseError error
}

// ParseError returns the error attached to an undecodable sub-header, if any.
// It is only set for PacketTypeInvalid.
func (tsh TypeSpecificHeader) ParseError() error {
	return tsh.parseError
}

// Header is a decoded DCCP header. It is built by DecodeHeader and not meant
// to be modified afterwards.
type Header struct {
	GenericHeader
	TypeSpecific TypeSpecificHeader `json:"type_specific"`

	optionsOffset int
}

// HeaderLength returns DataOffset*4, the offset at which the payload begins.
func (h *Header) HeaderLength() int {
	return int(h.DataOffset) * 4
}

// OptionsOffset returns the offset right after the generic and type-specific
// headers, where the options region begins.
func (h *Header) OptionsOffset() int {
	return h.optionsOffset
}

// Options returns the options region of b, the buffer h was decoded from.
func (h *Header) Options(b []byte) []byte {
	end := h.HeaderLength()
	if end > len(b) {
		end = len(b)
	}
	if h.optionsOffset >= end {
		return nil
	}
	return b[h.optionsOffset:end]
}

// Payload returns the application data of b, the buffer h was decoded from.
func (h *Header) Payload(b []byte) []byte {
	if h.HeaderLength() >= len(b) {
		return nil
	}
	return b[h.HeaderLength():]
}

// DecodeHeader decodes the generic header, then the type-specific header, of
// the DCCP packet starting at b[0]. On error no header is returned.
//
// A packet of unknown type still decodes: its generic header is filled in and
// TypeSpecific.ParseError() reports ErrUnknownPacketType.
func DecodeHeader(b []byte) (*Header, error) {
	gh, off, err := DecodeGenericHeader(b, 0)
	if err != nil {
		return nil, err
	}

	// checked before reading the sub-header, a header declaring itself
	// shorter than its own fields is malformed regardless of buffer length
	required := off + TypeSpecificLength(gh.PacketType)
	if int(gh.DataOffset)*4 < required {
		return nil, fmt.Errorf("%w: data offset %d (%d bytes), %s needs %d bytes",
			ErrInvalidDataOffset, gh.DataOffset, int(gh.DataOffset)*4, gh.PacketType, required)
	}

	tsh, off, err := DecodeTypeSpecificHeader(b, off, gh.PacketType)
	if err != nil {
		return nil, err
	}

	if int(gh.DataOffset)*4 > len(b) {
		return nil, fmt.Errorf("%w: data offset %d (%d bytes) runs past %d-byte buffer",
			ErrTooShort, gh.DataOffset, int(gh.DataOffset)*4, len(b))
	}

	return &Header{
		GenericHeader: gh,
		TypeSpecific:  tsh,
		optionsOffset: off,
	}, nil
}
