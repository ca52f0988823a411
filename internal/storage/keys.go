package storage

import "encoding/binary"

// SeqKey is the single key of the rent sequence counter inside BucketSeq.
var SeqKey = []byte("rent_seq")

// Uint64Key encodes an id as a fixed-width big-endian key so that byte order
// equals numeric order.
func Uint64Key(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// KeyUint64 decodes a key produced by Uint64Key. Short keys decode as zero.
func KeyUint64(key []byte) uint64 {
	if len(key) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(key)
}
