package game

import (
	"math/rand"
	"time"
)

// Crockford's base32 alphabet, as used by TypeID
const handIDAlphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// NewHandID generates a sortable 26-character hand identifier: a UUIDv7
// (48-bit millisecond timestamp plus random bits) encoded as base32.
// Hand IDs correlate events, history and logs for one hand.
func NewHandID(rng *rand.Rand) string {
	var uuid [16]byte

	now := time.Now().UnixMilli()
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	for i := 6; i < 16; i++ {
		if rng != nil {
			uuid[i] = byte(rng.Intn(256))
		} else {
			uuid[i] = byte(rand.Intn(256))
		}
	}

	// Version 7, variant 10
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encodeBase32(uuid)
}

// encodeBase32 encodes 128 bits as a 26-character base32 string
func encodeBase32(data [16]byte) string {
	result := make([]byte, 26)
	for i := 0; i < 26; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if byteIndex < 16 {
			if bitIndex <= 3 {
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}
		result[i] = handIDAlphabet[value]
	}
	return string(result)
}
