package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ticketry/ticketry/core"
)

// Key prefixes for different data types
const (
	chunkPrefix       = "knchnk"
	chunkSourcePrefix = "knsrc"
	recordPrefix      = "procrec"
	recordDatePrefix  = "procrecd"
)

// makeChunkKey generates a key for a knowledge chunk by ID.
func makeChunkKey(id core.ID) []byte {
	prefix := chunkPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeChunkSourceKey generates a composite key for the source-document index.
// Format: prefix:sourceDocId:chunkId
func makeChunkSourceKey(sourceDocId string, id core.ID) []byte {
	prefix := chunkSourcePrefix + ":" + sourceDocId + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChunkSourceKey generates a partial key for source-document queries.
// Format: prefix:sourceDocId:
func makePartialChunkSourceKey(sourceDocId string) []byte {
	return []byte(chunkSourcePrefix + ":" + sourceDocId + ":")
}

// makeRecordKey generates a key for a processing record by ticket id.
func makeRecordKey(ticketId string) []byte {
	return []byte(fmt.Sprintf("%s:%s", recordPrefix, ticketId))
}

// makeRecordDateKey generates a composite key for the finished-at index.
// Format: prefix:timestamp:ticketId
func makeRecordDateKey(timestamp time.Time, ticketId string) []byte {
	prefix := recordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8+len(ticketId))
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	copy(buf[offset:], ticketId)
	return buf
}

// makePartialRecordDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialRecordDateKey(timestamp time.Time) []byte {
	prefix := recordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
