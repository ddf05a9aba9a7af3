package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cafecito/beansack/core"
)

// Key prefixes for the stored record families and their indices.
const (
	beanPrefix        = "bean"
	beanUpdatedPrefix = "beanupd"
	beanClusterPrefix = "beanclu"
	chatterPrefix     = "chat"
	chatterURLPrefix  = "chaturl"
	chatterIDSeq      = "chatseq"
)

// makeBeanKey generates the primary key for a bean by ID.
func makeBeanKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", beanPrefix, id))
}

// makeBeanUpdatedKey generates a composite key for the update-time index.
// Format: prefix:timestamp:id, both fixed-width BigEndian so lexicographic
// order matches chronological order.
func makeBeanUpdatedKey(updated time.Time, id core.ID) []byte {
	prefix := []byte(beanUpdatedPrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(updated.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialBeanUpdatedKey generates a partial key for range scans on the
// update-time index.
func makePartialBeanUpdatedKey(updated time.Time) []byte {
	prefix := []byte(beanUpdatedPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(updated.UnixMicro()))
	return buf
}

// makeBeanClusterKey generates a composite key for the cluster index.
// Format: prefix:clusterID:id
func makeBeanClusterKey(clusterID string, id core.ID) []byte {
	prefix := []byte(beanClusterPrefix + ":" + clusterID + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialBeanClusterKey generates the scan prefix for one cluster.
func makePartialBeanClusterKey(clusterID string) []byte {
	return []byte(beanClusterPrefix + ":" + clusterID + ":")
}

// makeChatterKey generates the primary key for a chatter snapshot by its
// sequence number.
func makeChatterKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s:%d", chatterPrefix, seq))
}

// makeChatterURLKey generates a composite key for the per-bean chatter
// index. Format: prefix:beanID:seq
func makeChatterURLKey(beanID core.ID, seq uint64) []byte {
	prefix := []byte(chatterURLPrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(beanID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makePartialChatterURLKey generates the scan prefix for one bean's chatter.
func makePartialChatterURLKey(beanID core.ID) []byte {
	prefix := []byte(chatterURLPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(beanID))
	return buf
}
