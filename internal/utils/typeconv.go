package utils

// BigEndianUint assembles up to 8 bytes in network byte order into a uint64.
// Used for the 24-bit and 48-bit fields that have no fixed-size decoder.
func BigEndianUint(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
