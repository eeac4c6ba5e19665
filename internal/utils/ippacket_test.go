package utils

import (
	"errors"
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

func serialize(t *testing.T, l ...gopacket.SerializableLayer) []byte {
	t.Helper()
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, l...); err != nil {
		t.Fatalf("gopacket.SerializeLayers error: %v", err)
	}
	return buf.Bytes()
}

func TestParseIPPacket(t *testing.T) {
	payload := []byte{0x00, 0x50, 0x27, 0x0f}

	t.Run("IPv4", func(t *testing.T) {
		raw := serialize(t, &layers.IPv4{
			Version:  4,
			IHL:      5,
			TTL:      64,
			Protocol: layers.IPProtocol(33),
			SrcIP:    net.IPv4(192, 0, 2, 1),
			DstIP:    net.IPv4(198, 51, 100, 7),
		}, gopacket.Payload(payload))

		ip, err := ParseIPPacket(raw)
		if err != nil {
			t.Fatal(err)
		}
		if ip.Version != 4 {
			t.Errorf("ip.Version = %d, want 4", ip.Version)
		}
		if ip.Protocol != 33 {
			t.Errorf("ip.Protocol = %d, want 33", ip.Protocol)
		}
		if !ip.SrcIP.Equal(net.IPv4(192, 0, 2, 1)) || !ip.DstIP.Equal(net.IPv4(198, 51, 100, 7)) {
			t.Errorf("ip addresses = %v -> %v", ip.SrcIP, ip.DstIP)
		}
		if string(ip.Payload) != string(payload) {
			t.Errorf("ip.Payload = %x, want %x", ip.Payload, payload)
		}
	})

	t.Run("IPv6", func(t *testing.T) {
		raw := serialize(t, &layers.IPv6{
			Version:    6,
			HopLimit:   64,
			NextHeader: layers.IPProtocol(33),
			SrcIP:      net.ParseIP("2001:db8::1"),
			DstIP:      net.ParseIP("2001:db8::2"),
		}, gopacket.Payload(payload))

		ip, err := ParseIPPacket(raw)
		if err != nil {
			t.Fatal(err)
		}
		if ip.Version != 6 {
			t.Errorf("ip.Version = %d, want 6", ip.Version)
		}
		if ip.Protocol != 33 {
			t.Errorf("ip.Protocol = %d, want 33", ip.Protocol)
		}
		if string(ip.Payload) != string(payload) {
			t.Errorf("ip.Payload = %x, want %x", ip.Payload, payload)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		for _, raw := range [][]byte{nil, {0x00}, {0x20, 0x01}} {
			if _, err := ParseIPPacket(raw); !errors.Is(err, ErrNotIPPacket) {
				t.Errorf("ParseIPPacket(%x) error = %v, want %v", raw, err, ErrNotIPPacket)
			}
		}
	})
}
