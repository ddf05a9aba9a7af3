// Copyright 2025 Cafecito Works
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/storage"
	"github.com/dgraph-io/badger/v4"
)

// BeanRepository implements storage.BeanRepository for BadgerDB.
type BeanRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.BeanRepository = (*BeanRepository)(nil)

// NewBeanRepository creates a new BeanRepository.
func NewBeanRepository(backend *Backend) *BeanRepository {
	return &BeanRepository{
		backend: backend,
		logger:  slog.Default().With("component", "bean-repository"),
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *BeanRepository) Close() error {
	return nil
}

// StoreBeans stores the beans that are not already present. Beans whose URL
// hash is already stored are skipped untouched, so re-ingesting a feed never
// clobbers cluster assignments or backfilled embeddings.
func (r *BeanRepository) StoreBeans(ctx context.Context, beans ...*core.Bean) ([]*core.Bean, error) {
	var stored []*core.Bean
	now := time.Now().UTC()

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, bean := range beans {
			if err := core.ValidateBean(bean); err != nil {
				return err
			}

			id := core.IDFromURL(bean.URL)
			key := makeBeanKey(id)

			if _, err := tx.Get(key); err == nil {
				continue
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			bean.Updated = now
			if err := tx.Set(key, storage.MarshalBean(bean)); err != nil {
				return err
			}
			if err := tx.Set(makeBeanUpdatedKey(bean.Updated, id), storage.MarshalID(id)); err != nil {
				return err
			}
			if bean.ClusterID != "" {
				if err := tx.Set(makeBeanClusterKey(bean.ClusterID, id), storage.MarshalID(id)); err != nil {
					return err
				}
			}
			stored = append(stored, bean)
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return stored, nil
}

// UpdateEmbedding backfills the embedding vector of a stored bean. The
// Updated stamp is left alone; embedding backfill is not an external touch.
func (r *BeanRepository) UpdateEmbedding(ctx context.Context, id core.ID, vector []float32) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeBeanKey(id)
		bean, err := r.readBean(tx, key)
		if err != nil {
			return err
		}
		if bean == nil {
			return storage.ErrNotFound
		}

		bean.Embedding = vector
		if err := tx.Set(key, storage.MarshalBean(bean)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetBean retrieves a single bean by ID.
func (r *BeanRepository) GetBean(ctx context.Context, id core.ID) (*core.Bean, error) {
	var result *core.Bean
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readBean(tx, makeBeanKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ScanBeans streams every stored bean through fn. A record that fails to
// deserialize is logged and skipped; one corrupt record must not blank out
// an entire result set.
func (r *BeanRepository) ScanBeans(ctx context.Context, fn func(*core.Bean) error) error {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(beanPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			var bean *core.Bean
			err := item.Value(func(val []byte) error {
				var err error
				bean, err = storage.UnmarshalBean(val)
				return err
			})
			if err != nil {
				r.logger.Warn("skipping undecodable bean record", "key", string(item.Key()), "err", err)
				continue
			}

			if err := fn(bean); err != nil {
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

// ScanUpdatedSince streams beans updated at or after the cutoff, walking the
// update-time index instead of the full record space.
func (r *BeanRepository) ScanUpdatedSince(ctx context.Context, cutoff time.Time, fn func(*core.Bean) error) error {
	prefix := []byte(beanUpdatedPrefix + ":")

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(makePartialBeanUpdatedKey(cutoff)); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}

			bean, err := r.readIndexedBean(tx, iter.Item())
			if err != nil {
				return err
			}
			if bean == nil {
				continue
			}
			if err := fn(bean); err != nil {
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

// ScanCluster streams the beans of one story cluster.
func (r *BeanRepository) ScanCluster(ctx context.Context, clusterID string, fn func(*core.Bean) error) error {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialBeanClusterKey(clusterID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			bean, err := r.readIndexedBean(tx, iter.Item())
			if err != nil {
				return err
			}
			if bean == nil {
				continue
			}
			if err := fn(bean); err != nil {
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

// DeleteOld removes beans whose Updated time is before the cutoff, along
// with their index entries.
func (r *BeanRepository) DeleteOld(ctx context.Context, cutoff time.Time) (int, error) {
	prefix := []byte(beanUpdatedPrefix + ":")
	end := makePartialBeanUpdatedKey(cutoff)

	var deleted int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Collect victims first; deleting under an open iterator is
		// not safe.
		type victim struct {
			indexKey []byte
			id       core.ID
		}
		var victims []victim

		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) || bytes.Compare(key, end) >= 0 {
				break
			}

			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				iter.Close()
				return err
			}
			victims = append(victims, victim{indexKey: iter.Item().KeyCopy(nil), id: id})
		}
		iter.Close()

		for _, v := range victims {
			bean, err := r.readBean(tx, makeBeanKey(v.id))
			if err != nil {
				return err
			}
			if bean != nil && bean.ClusterID != "" {
				if err := tx.Delete(makeBeanClusterKey(bean.ClusterID, v.id)); err != nil {
					return err
				}
			}
			if err := tx.Delete(makeBeanKey(v.id)); err != nil {
				return err
			}
			if err := tx.Delete(v.indexKey); err != nil {
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

// Distinct returns the sorted distinct values of a field across all stored
// beans. Supported fields: "source", "kind", "tag".
func (r *BeanRepository) Distinct(ctx context.Context, field string) ([]string, error) {
	var extract func(*core.Bean) []string
	switch field {
	case "source":
		extract = func(b *core.Bean) []string { return []string{b.Source} }
	case "kind":
		extract = func(b *core.Bean) []string { return []string{string(b.Kind)} }
	case "tag":
		extract = func(b *core.Bean) []string { return b.Tags }
	default:
		return nil, fmt.Errorf("%w: unsupported distinct field %q", core.ErrInvalidParameter, field)
	}

	seen := make(map[string]bool)
	err := r.ScanBeans(ctx, func(b *core.Bean) error {
		for _, v := range extract(b) {
			if v != "" {
				seen[v] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	slices.Sort(values)
	return values, nil
}

// readBean reads and deserializes a bean, returning nil when absent.
func (r *BeanRepository) readBean(tx *badger.Txn, key []byte) (*core.Bean, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var bean *core.Bean
	err = item.Value(func(val []byte) error {
		var err error
		bean, err = storage.UnmarshalBean(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bean, nil
}

// readIndexedBean resolves an index entry to its bean. A dangling index
// entry or an undecodable record yields nil after a warning.
func (r *BeanRepository) readIndexedBean(tx *badger.Txn, item *badger.Item) (*core.Bean, error) {
	var id core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		r.logger.Warn("skipping undecodable index entry", "key", string(item.Key()), "err", err)
		return nil, nil
	}

	bean, err := r.readBean(tx, makeBeanKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrSerializationFailed) {
			r.logger.Warn("skipping undecodable bean record", "id", uint64(id), "err", err)
			return nil, nil
		}
		return nil, err
	}
	return bean, nil
}
