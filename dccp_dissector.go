package dccp

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/gaukas/dccp/internal/utils"
	"go.uber.org/zap"
)

// Segment is a DCCP segment dissected out of an IP datagram.
type Segment struct {
	IPVersion uint8          `json:"ip_version,omitempty"`
	SrcIP     net.IP         `json:"src_ip,omitempty"`
	DstIP     net.IP         `json:"dst_ip,omitempty"`
	Header    *Header        `json:"header"`
	Options   utils.Uint8Arr `json:"options,omitempty"`
	Payload   []byte         `json:"payload,omitempty"`
}

// DissectorStats counts the outcome of every dissected packet.
type DissectorStats struct {
	Decoded     uint64 `json:"decoded"`
	UnknownType uint64 `json:"unknown_type"`
	Truncated   uint64 `json:"truncated"`
	Malformed   uint64 `json:"malformed"`
	NotDCCP     uint64 `json:"not_dccp"`
}

// Dissector feeds raw packets to the header decoder and reports what it
// finds. It is safe for concurrent use.
type Dissector struct {
	logger atomic.Pointer[zap.Logger]

	decoded     atomic.Uint64
	unknownType atomic.Uint64
	truncated   atomic.Uint64
	malformed   atomic.Uint64
	notDCCP     atomic.Uint64
}

// NewDissector creates a new Dissector that does not log.
func NewDissector() *Dissector {
	return NewDissectorWithLogger(nil)
}

// NewDissectorWithLogger creates a new Dissector logging to logger.
func NewDissectorWithLogger(logger *zap.Logger) *Dissector {
	d := &Dissector{}
	d.SetLogger(logger)
	return d
}

// SetLogger sets the logger. A nil logger disables logging.
func (d *Dissector) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d.logger.Store(logger)
}

// DissectIPPacket unwraps an IPv4 or IPv6 datagram and dissects the DCCP
// segment it carries. Datagrams of any other protocol yield ErrNotDCCP.
func (d *Dissector) DissectIPPacket(p []byte) (*Segment, error) {
	ip, err := utils.ParseIPPacket(p)
	if err != nil {
		d.notDCCP.Add(1)
		d.logger.Load().Debug("failed to parse IP packet", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNotDCCP, err)
	}
	if ip.Protocol != IPProtocolDCCP {
		d.notDCCP.Add(1)
		return nil, fmt.Errorf("%w: IP protocol %d", ErrNotDCCP, uint8(ip.Protocol))
	}

	seg, err := d.DissectSegment(ip.SrcIP, ip.DstIP, ip.Payload)
	if err != nil {
		return nil, err
	}
	seg.IPVersion = ip.Version
	return seg, nil
}

// DissectSegment decodes a bare DCCP segment. src and dst are only used for
// reporting and may be nil.
func (d *Dissector) DissectSegment(src, dst net.IP, p []byte) (*Segment, error) {
	logger := d.logger.Load().With(zap.Stringer("src", src), zap.Stringer("dst", dst))

	h, err := DecodeHeader(p)
	if err != nil {
		if errors.Is(err, ErrTooShort) {
			d.truncated.Add(1)
			logger.Debug("truncated DCCP packet", zap.Int("len", len(p)), zap.Error(err))
		} else {
			d.malformed.Add(1)
			logger.Warn("malformed DCCP header", zap.Int("len", len(p)), zap.Error(err))
		}
		return nil, err
	}

	if perr := h.TypeSpecific.ParseError(); perr != nil {
		d.unknownType.Add(1)
		logger.Debug("DCCP packet of unknown type",
			zap.Uint16("sport", h.SourcePort),
			zap.Uint16("dport", h.DestPort),
			zap.Uint64("seq", h.SequenceNumber),
			zap.Error(perr),
		)
	} else {
		d.decoded.Add(1)
	}

	seg := &Segment{
		SrcIP:  src,
		DstIP:  dst,
		Header: h,
	}
	if opts := h.Options(p); len(opts) > 0 {
		seg.Options = append(utils.Uint8Arr(nil), opts...)
	}
	if payload := h.Payload(p); len(payload) > 0 {
		seg.Payload = append([]byte(nil), payload...)
	}

	logger.Debug("dissected DCCP packet",
		zap.Stringer("type", h.PacketType),
		zap.Uint16("sport", h.SourcePort),
		zap.Uint16("dport", h.DestPort),
		zap.Uint64("seq", h.SequenceNumber),
		zap.Int("header_len", h.HeaderLength()),
	)

	return seg, nil
}

// Stats returns a snapshot of the counters.
func (d *Dissector) Stats() DissectorStats {
	return DissectorStats{
		Decoded:     d.decoded.Load(),
		UnknownType: d.unknownType.Load(),
		Truncated:   d.truncated.Load(),
		Malformed:   d.malformed.Load(),
		NotDCCP:     d.notDCCP.Load(),
	}
}
