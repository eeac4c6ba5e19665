package dccp_test

import (
	"bytes"
	"errors"
	"net"
	"testing"

	. "github.com/gaukas/dccp"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

func serializeIPv4(t *testing.T, proto layers.IPProtocol, segment []byte) []byte {
	t.Helper()
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	err := gopacket.SerializeLayers(buf, opts, &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: proto,
		SrcIP:    net.IPv4(192, 0, 2, 1),
		DstIP:    net.IPv4(198, 51, 100, 7),
	}, gopacket.Payload(segment))
	if err != nil {
		t.Fatalf("gopacket.SerializeLayers error: %v", err)
	}
	return buf.Bytes()
}

func TestDCCPDecodeFromBytes(t *testing.T) {
	options := []byte{0x00, 0x00, 0x00, 0x00}
	b := buildPacket(true, uint8(PacketTypeDataAck), 7, 42, ackSlot(41), append(append([]byte{}, options...), "data"...))

	var d DCCP
	if err := d.DecodeFromBytes(b, gopacket.NilDecodeFeedback); err != nil {
		t.Fatal(err)
	}
	if d.Header.PacketType != PacketTypeDataAck || d.Header.TypeSpecific.AckNumber != 41 {
		t.Errorf("d.Header = %+v", d.Header)
	}
	if len(d.LayerContents()) != 28 {
		t.Errorf("len(d.LayerContents()) = %d, want 28", len(d.LayerContents()))
	}
	if string(d.LayerPayload()) != "data" {
		t.Errorf("d.LayerPayload() = %q, want %q", d.LayerPayload(), "data")
	}
	if !bytes.Equal(d.Options(), options) {
		t.Errorf("d.Options() = %x, want %x", d.Options(), options)
	}
	if d.NextLayerType() != gopacket.LayerTypePayload {
		t.Errorf("d.NextLayerType() = %v", d.NextLayerType())
	}
	if !d.CanDecode().Contains(LayerTypeDCCP) {
		t.Errorf("d.CanDecode() does not contain %v", LayerTypeDCCP)
	}
}

func TestDCCPLayerFromIPv4(t *testing.T) {
	raw := serializeIPv4(t, IPProtocolDCCP, scenarioB)

	packet := gopacket.NewPacket(raw, layers.LayerTypeIPv4, gopacket.Default)
	if errLayer := packet.ErrorLayer(); errLayer != nil {
		t.Fatalf("packet.ErrorLayer() = %v", errLayer.Error())
	}
	l := packet.Layer(LayerTypeDCCP)
	if l == nil {
		t.Fatalf("no %v layer in %v", LayerTypeDCCP, packet)
	}
	d, ok := l.(*DCCP)
	if !ok {
		t.Fatalf("layer is %T, want *DCCP", l)
	}
	if d.Header.SourcePort != 80 || d.Header.TypeSpecific.ServiceCode != 0x1234 {
		t.Errorf("d.Header = %+v", d.Header)
	}
}

func TestDCCPLayerTruncated(t *testing.T) {
	packet := gopacket.NewPacket(scenarioB[:14], LayerTypeDCCP, gopacket.Default)
	errLayer := packet.ErrorLayer()
	if errLayer == nil {
		t.Fatal("packet.ErrorLayer() = nil, want decode error")
	}
	if !errors.Is(errLayer.Error(), ErrTooShort) {
		t.Errorf("packet.ErrorLayer().Error() = %v, want %v", errLayer.Error(), ErrTooShort)
	}
	if !packet.Metadata().Truncated {
		t.Error("packet.Metadata().Truncated = false, want true")
	}
}
