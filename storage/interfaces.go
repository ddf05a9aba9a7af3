package storage

import (
	"context"
	"time"

	"github.com/cafecito/beansack/core"
)

// BeanRepository provides operations over stored beans. Implementations must
// be safe for concurrent use.
//
// Scan methods stream records through a callback inside a single read
// transaction. Returning an error from the callback stops the scan and
// surfaces the error; the sentinel ErrStopScan stops it cleanly.
type BeanRepository interface {
	// StoreBeans stores the beans that are not already present, keyed by
	// URL hash. Existing URLs are skipped, never overwritten. Updated is
	// stamped on each stored bean. Returns the beans actually stored.
	StoreBeans(ctx context.Context, beans ...*core.Bean) ([]*core.Bean, error)

	// UpdateEmbedding backfills the embedding vector of a stored bean.
	// Returns ErrNotFound if the bean doesn't exist.
	UpdateEmbedding(ctx context.Context, id core.ID, vector []float32) error

	// GetBean retrieves a single bean by ID.
	// Returns ErrNotFound if the bean doesn't exist.
	GetBean(ctx context.Context, id core.ID) (*core.Bean, error)

	// ScanBeans streams every stored bean. Records that fail to
	// deserialize are logged and skipped; they never abort the scan.
	ScanBeans(ctx context.Context, fn func(*core.Bean) error) error

	// ScanUpdatedSince streams beans whose Updated time is at or after
	// the cutoff, using the update-time index.
	ScanUpdatedSince(ctx context.Context, cutoff time.Time, fn func(*core.Bean) error) error

	// ScanCluster streams the beans of one story cluster.
	ScanCluster(ctx context.Context, clusterID string, fn func(*core.Bean) error) error

	// DeleteOld removes beans whose Updated time is before the cutoff,
	// along with their index entries. Returns the number deleted.
	DeleteOld(ctx context.Context, cutoff time.Time) (int, error)

	// Distinct returns the sorted distinct values of a field across all
	// stored beans. Supported fields: "source", "kind", "tag".
	Distinct(ctx context.Context, field string) ([]string, error)

	// Close releases repository resources.
	Close() error
}

// ChatterRepository stores social-engagement snapshots. Snapshots are
// append-only; consolidation into per-bean stats happens at query time.
type ChatterRepository interface {
	// AddChatters appends engagement snapshots.
	AddChatters(ctx context.Context, chatters ...*core.Chatter) error

	// ScanChatters streams every stored snapshot.
	ScanChatters(ctx context.Context, fn func(*core.Chatter) error) error

	// GetChatters retrieves all snapshots recorded for a bean URL.
	GetChatters(ctx context.Context, url string) ([]*core.Chatter, error)

	// DeleteOld removes snapshots whose Updated time is before the
	// cutoff. Returns the number deleted.
	DeleteOld(ctx context.Context, cutoff time.Time) (int, error)

	// Close releases repository resources.
	Close() error
}
