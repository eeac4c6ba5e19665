package dccp

import "errors"

var (
	ErrTooShort                = errors.New("not enough bytes for DCCP header")
	ErrInvalidDataOffset       = errors.New("DCCP data offset shorter than required header")
	ErrUnknownPacketType       = errors.New("unknown DCCP packet type")
	ErrInvalidChecksumCoverage = errors.New("DCCP checksum coverage exceeds packet length")
	ErrNotDCCP                 = errors.New("packet is not a DCCP segment")
)
