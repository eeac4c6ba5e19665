package dccp

import "fmt"

// ResetCode is the Reset Code field of a DCCP-Reset sub-header.
type ResetCode uint8

const (
	ResetCodeUnspecified ResetCode = iota
	ResetCodeClosed
	ResetCodeAborted
	ResetCodeNoConnection
	ResetCodePacketError
	ResetCodeOptionError
	ResetCodeMandatoryError
	ResetCodeConnectionRefused
	ResetCodeBadServiceCode
	ResetCodeTooBusy
	ResetCodeBadInitCookie
	ResetCodeAggressionPenalty
)

var resetCodeNames = [...]string{
	ResetCodeUnspecified:       "unspecified",
	ResetCodeClosed:            "closed",
	ResetCodeAborted:           "aborted",
	ResetCodeNoConnection:      "no_connection",
	ResetCodePacketError:       "packet_error",
	ResetCodeOptionError:       "option_error",
	ResetCodeMandatoryError:    "mandatory_error",
	ResetCodeConnectionRefused: "connection_refused",
	ResetCodeBadServiceCode:    "bad_service_code",
	ResetCodeTooBusy:           "too_busy",
	ResetCodeBadInitCookie:     "bad_init_cookie",
	ResetCodeAggressionPenalty: "aggression_penalty",
}

func (c ResetCode) String() string {
	switch {
	case int(c) < len(resetCodeNames):
		return resetCodeNames[c]
	case c.IsCCIDSpecific():
		return fmt.Sprintf("ccid_specific(%d)", uint8(c))
	default:
		return fmt.Sprintf("reserved(%d)", uint8(c))
	}
}

// IsReserved reports whether c falls in the reserved range 12-127.
func (c ResetCode) IsReserved() bool {
	return c > ResetCodeAggressionPenalty && c < 128
}

// IsCCIDSpecific reports whether c falls in the CCID-specific range 128-255.
func (c ResetCode) IsCCIDSpecific() bool {
	return c >= 128
}
