package dccp

import (
	"errors"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// IPProtocolDCCP is the IP protocol number assigned to DCCP.
const IPProtocolDCCP layers.IPProtocol = 33

// LayerTypeDCCP is the gopacket layer type of a DCCP header.
var LayerTypeDCCP = gopacket.RegisterLayerType(2033, gopacket.LayerTypeMetadata{
	Name:    "DCCP",
	Decoder: gopacket.DecodeFunc(decodeDCCP),
})

func init() {
	// let IPv4/IPv6 hand their payload to the DCCP layer
	layers.IPProtocolMetadata[IPProtocolDCCP] = layers.EnumMetadata{
		DecodeWith: gopacket.DecodeFunc(decodeDCCP),
		Name:       "DCCP",
		LayerType:  LayerTypeDCCP,
	}
}

// DCCP is a gopacket layer wrapping a decoded Header. Contents covers the
// whole header including options, Payload the application data.
type DCCP struct {
	layers.BaseLayer
	Header Header
}

// Interface guards
var (
	_ gopacket.Layer         = (*DCCP)(nil)
	_ gopacket.DecodingLayer = (*DCCP)(nil)
)

// LayerType implements gopacket.Layer.
func (d *DCCP) LayerType() gopacket.LayerType {
	return LayerTypeDCCP
}

// CanDecode implements gopacket.DecodingLayer.
func (d *DCCP) CanDecode() gopacket.LayerClass {
	return LayerTypeDCCP
}

// NextLayerType implements gopacket.DecodingLayer.
func (d *DCCP) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypePayload
}

// DecodeFromBytes implements gopacket.DecodingLayer. A header that runs past
// data marks the packet as truncated.
func (d *DCCP) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	h, err := DecodeHeader(data)
	if err != nil {
		if errors.Is(err, ErrTooShort) {
			df.SetTruncated()
		}
		return err
	}

	d.Header = *h
	d.Contents = data[:h.HeaderLength()]
	d.Payload = data[h.HeaderLength():]
	return nil
}

// Options returns the options region of the decoded header.
func (d *DCCP) Options() []byte {
	return d.Header.Options(d.Contents)
}

func decodeDCCP(data []byte, p gopacket.PacketBuilder) error {
	d := &DCCP{}
	if err := d.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(d)
	return p.NextDecoder(gopacket.LayerTypePayload)
}
