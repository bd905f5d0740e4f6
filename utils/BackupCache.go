package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const backupBucket = "backups"

// BackupCache tracks which documents already have a .backup sibling, so
// repeated fix runs never overwrite the pristine copy with an already
// patched one. The manifest survives across runs in a bbolt file next to
// the site.
type BackupCache struct {
	path string
}

func NewBackupCache(root string) *BackupCache {
	return &BackupCache{path: filepath.Join(root, ".sitepatch-backups.db")}
}

// Ensure takes a .backup copy of path unless one was already recorded or
// is sitting on disk. Returns true when a new backup was written.
func (c *BackupCache) Ensure(path string) (bool, error) {
	db, err := bbolt.Open(c.path, 0666, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return false, fmt.Errorf("failed to open backup manifest: %w", err)
	}
	defer db.Close()

	known := false
	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(backupBucket))
		if b == nil {
			return nil
		}
		known = b.Get([]byte(path)) != nil
		return nil
	})
	if err != nil {
		return false, err
	}

	backupPath := path + ".backup"
	if known {
		return false, nil
	}
	if _, err := os.Stat(backupPath); err == nil {
		// Backup from a pre-manifest run; record it and move on.
		return false, c.record(db, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := CopyFile(path, backupPath, info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, c.record(db, path)
}

func (c *BackupCache) record(db *bbolt.DB, path string) error {
	return db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(backupBucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		return b.Put([]byte(path), []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}
