package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/storage"
	"github.com/dgraph-io/badger/v4"
)

// ChatterRepository implements storage.ChatterRepository for BadgerDB.
// Snapshots are append-only under sequence keys, with a per-bean index so
// the engagement history of one URL is a prefix scan.
type ChatterRepository struct {
	backend *Backend
	seq     *badger.Sequence
	logger  *slog.Logger
}

var _ storage.ChatterRepository = (*ChatterRepository)(nil)

// NewChatterRepository creates a new ChatterRepository.
func NewChatterRepository(backend *Backend) (*ChatterRepository, error) {
	seq, err := backend.GetSequence(chatterIDSeq)
	if err != nil {
		return nil, err
	}

	return &ChatterRepository{
		backend: backend,
		seq:     seq,
		logger:  slog.Default().With("component", "chatter-repository"),
	}, nil
}

// Close releases the sequence.
func (r *ChatterRepository) Close() error {
	return r.seq.Release()
}

// AddChatters appends engagement snapshots.
func (r *ChatterRepository) AddChatters(ctx context.Context, chatters ...*core.Chatter) error {
	now := time.Now().UTC()

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chatter := range chatters {
			if chatter.URL == "" {
				return core.ErrEmptyURL
			}
			if chatter.Updated.IsZero() {
				chatter.Updated = now
			}

			seq, err := r.seq.Next()
			if err != nil {
				return err
			}
			// sequences hand out 0 on first call; skip it so key and
			// index values never collide with the zero value
			if seq == 0 {
				seq, err = r.seq.Next()
				if err != nil {
					return err
				}
			}

			if err := tx.Set(makeChatterKey(seq), storage.MarshalChatter(chatter)); err != nil {
				return err
			}
			beanID := core.IDFromURL(chatter.URL)
			if err := tx.Set(makeChatterURLKey(beanID, seq), storage.MarshalID(core.ID(seq))); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ScanChatters streams every stored snapshot. Undecodable records are logged
// and skipped.
func (r *ChatterRepository) ScanChatters(ctx context.Context, fn func(*core.Chatter) error) error {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chatterPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			var chatter *core.Chatter
			err := item.Value(func(val []byte) error {
				var err error
				chatter, err = storage.UnmarshalChatter(val)
				return err
			})
			if err != nil {
				r.logger.Warn("skipping undecodable chatter record", "key", string(item.Key()), "err", err)
				continue
			}

			if err := fn(chatter); err != nil {
				return err
			}
		}
		return nil
	}, false)

	if errors.Is(err, storage.ErrStopScan) {
		return nil
	}
	return err
}

// DeleteOld removes snapshots whose Updated time is before the cutoff,
// along with their per-bean index entries.
func (r *ChatterRepository) DeleteOld(ctx context.Context, cutoff time.Time) (int, error) {
	var deleted int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		type victim struct {
			key []byte
			url string
			seq uint64
		}
		var victims []victim

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chatterPrefix + ":")
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			var chatter *core.Chatter
			if err := item.Value(func(val []byte) error {
				var err error
				chatter, err = storage.UnmarshalChatter(val)
				return err
			}); err != nil {
				r.logger.Warn("skipping undecodable chatter record", "key", string(item.Key()), "err", err)
				continue
			}
			if !chatter.Updated.Before(cutoff) {
				continue
			}

			var seq uint64
			if _, err := fmt.Sscanf(string(item.Key()), chatterPrefix+":%d", &seq); err != nil {
				continue
			}
			victims = append(victims, victim{key: item.KeyCopy(nil), url: chatter.URL, seq: seq})
		}
		iter.Close()

		for _, v := range victims {
			if err := tx.Delete(v.key); err != nil {
				return err
			}
			if err := tx.Delete(makeChatterURLKey(core.IDFromURL(v.url), v.seq)); err != nil {
				return err
			}
			deleted++
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// GetChatters retrieves all snapshots recorded for a bean URL.
func (r *ChatterRepository) GetChatters(ctx context.Context, url string) ([]*core.Chatter, error) {
	var results []*core.Chatter

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialChatterURLKey(core.IDFromURL(url))
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var seq core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				seq, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			item, err := tx.Get(makeChatterKey(uint64(seq)))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			var chatter *core.Chatter
			err = item.Value(func(val []byte) error {
				var err error
				chatter, err = storage.UnmarshalChatter(val)
				return err
			})
			if err != nil {
				r.logger.Warn("skipping undecodable chatter record", "seq", uint64(seq), "err", err)
				continue
			}
			results = append(results, chatter)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}
