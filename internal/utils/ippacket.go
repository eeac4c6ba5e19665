package utils

import (
	"errors"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

var ErrNotIPPacket = errors.New("packet is neither IPv4 nor IPv6")

// IPPacket is the part of an IP datagram the transport decoders care about.
type IPPacket struct {
	Version  uint8
	Protocol layers.IPProtocol
	SrcIP    net.IP
	DstIP    net.IP
	Payload  []byte
}

// ParseIPPacket parses the IP packet, picking IPv4 or IPv6 from the version
// nibble. IPv6 extension headers are not walked: Protocol is the Next Header
// of the fixed header.
func ParseIPPacket(buf []byte) (*IPPacket, error) {
	if len(buf) == 0 {
		return nil, ErrNotIPPacket
	}

	switch buf[0] >> 4 {
	case 4:
		var ip4 *layers.IPv4 = &layers.IPv4{}
		if err := ip4.DecodeFromBytes(buf, gopacket.NilDecodeFeedback); err != nil {
			return nil, err
		}
		return &IPPacket{
			Version:  4,
			Protocol: ip4.Protocol,
			SrcIP:    ip4.SrcIP,
			DstIP:    ip4.DstIP,
			Payload:  ip4.Payload,
		}, nil
	case 6:
		var ip6 *layers.IPv6 = &layers.IPv6{}
		if err := ip6.DecodeFromBytes(buf, gopacket.NilDecodeFeedback); err != nil {
			return nil, err
		}
		return &IPPacket{
			Version:  6,
			Protocol: ip6.NextHeader,
			SrcIP:    ip6.SrcIP,
			DstIP:    ip6.DstIP,
			Payload:  ip6.Payload,
		}, nil
	default:
		return nil, ErrNotIPPacket
	}
}
