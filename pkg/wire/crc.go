package wire

// crcPoly is the reflected form of polynomial 0x31.
const crcPoly byte = 0x8C

// Checksum calculates the CRC-8 of p the way cockpit firmware does:
// bit-serial, LSB first, initial value 0, no final xor.
func Checksum(p []byte) byte {
	var crc byte
	for _, b := range p {
		crc = addToChecksum(crc, b)
	}
	return crc
}

func addToChecksum(crc, b byte) byte {
	for i := 0; i < 8; i++ {
		odd := (b^crc)&1 == 1
		crc >>= 1
		b >>= 1
		if odd {
			crc ^= crcPoly
		}
	}
	return crc
}
