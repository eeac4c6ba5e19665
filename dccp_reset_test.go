package dccp_test

import (
	"testing"

	. "github.com/gaukas/dccp"
)

var mapResetCodes = map[ResetCode]struct {
	name         string
	reserved     bool
	ccidSpecific bool
}{
	ResetCodeUnspecified:       {name: "unspecified"},
	ResetCodeConnectionRefused: {name: "connection_refused"},
	ResetCodeAggressionPenalty: {name: "aggression_penalty"},
	12:                         {name: "reserved(12)", reserved: true},
	127:                        {name: "reserved(127)", reserved: true},
	128:                        {name: "ccid_specific(128)", ccidSpecific: true},
	255:                        {name: "ccid_specific(255)", ccidSpecific: true},
}

func TestResetCode(t *testing.T) {
	for code, want := range mapResetCodes {
		if code.String() != want.name {
			t.Errorf("ResetCode(%d).String() = %q, want %q", uint8(code), code.String(), want.name)
		}
		if code.IsReserved() != want.reserved {
			t.Errorf("ResetCode(%d).IsReserved() = %t, want %t", uint8(code), code.IsReserved(), want.reserved)
		}
		if code.IsCCIDSpecific() != want.ccidSpecific {
			t.Errorf("ResetCode(%d).IsCCIDSpecific() = %t, want %t", uint8(code), code.IsCCIDSpecific(), want.ccidSpecific)
		}
	}
}
