package utils

import "strconv"

// Uint8Arr redefines how []uint8 is marshalled to JSON so that option bytes
// show up as a list of numbers instead of a base64 string.
type Uint8Arr []uint8

func (u Uint8Arr) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, 2+4*len(u))
	out = append(out, '[')
	for i, v := range u {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	}
	return append(out, ']'), nil
}
