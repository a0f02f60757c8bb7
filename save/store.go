// Package save persists character snapshots in a BoltDB file.
package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"

	"ebiten-arpg/logging"
)

const snapshotBucket = "snapshots"

// DefaultSlot is the slot the pause menu saves to
const DefaultSlot = "quicksave"

// ErrNotFound is returned when a slot holds no snapshot
var ErrNotFound = errors.New("save not found")

// Store provides a BoltDB-backed snapshot store.
type Store struct {
	db  *bbolt.DB
	log *logrus.Entry
}

// SlotInfo summarises a stored snapshot for menus
type SlotInfo struct {
	Slot    string
	SavedAt time.Time
	Depth   int
	Level   int
}

// Open opens a BoltDB-backed store at the provided path, creating it and
// its directory as needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("save path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open save db: %w", err)
	}

	store := &Store{db: db, log: logging.For("save")}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put writes snap to slot, replacing what was there. A snapshot without an
// ID or timestamp gets them here; the stored copy is returned.
func (s *Store) Put(ctx context.Context, slot string, snap Snapshot) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	if s == nil || s.db == nil {
		return Snapshot{}, fmt.Errorf("save store is not open")
	}
	if strings.TrimSpace(slot) == "" {
		return Snapshot{}, fmt.Errorf("save slot is required")
	}

	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal snapshot: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		return bucket.Put([]byte(slot), payload)
	})
	if err != nil {
		return Snapshot{}, err
	}

	s.log.WithFields(logrus.Fields{
		"slot":  slot,
		"id":    snap.ID,
		"depth": snap.Depth,
	}).Info("game saved")
	return snap, nil
}

// Get fetches the snapshot in slot.
func (s *Store) Get(ctx context.Context, slot string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	if s == nil || s.db == nil {
		return Snapshot{}, fmt.Errorf("save store is not open")
	}

	var snap Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		payload := bucket.Get([]byte(slot))
		if payload == nil {
			return fmt.Errorf("slot %q: %w", slot, ErrNotFound)
		}
		if err := json.Unmarshal(payload, &snap); err != nil {
			return fmt.Errorf("unmarshal snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// List returns every stored slot, most recent first.
func (s *Store) List(ctx context.Context) ([]SlotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("save store is not open")
	}

	var infos []SlotInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		return bucket.ForEach(func(k, v []byte) error {
			var snap Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				s.log.WithError(err).WithField("slot", string(k)).Warn("unreadable save skipped")
				return nil
			}
			infos = append(infos, SlotInfo{
				Slot:    string(k),
				SavedAt: snap.SavedAt,
				Depth:   snap.Depth,
				Level:   snap.Level,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].SavedAt.After(infos[j].SavedAt)
	})
	return infos, nil
}

// Delete removes slot. Deleting an empty slot reports ErrNotFound.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("save store is not open")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		if bucket.Get([]byte(slot)) == nil {
			return fmt.Errorf("slot %q: %w", slot, ErrNotFound)
		}
		return bucket.Delete([]byte(slot))
	})
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(snapshotBucket))
		if err != nil {
			return fmt.Errorf("create snapshot bucket: %w", err)
		}
		return nil
	})
}
