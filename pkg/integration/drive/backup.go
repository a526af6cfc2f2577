package drive

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jkrogh/fokus/pkg/db"
)

// Backup mirrors changed vault markdown files to a Google Drive folder on an
// interval. Upload state is tracked in the drive_sync table so unchanged
// files are skipped.
type Backup struct {
	service   DriveAPI
	repo      *db.Repository
	vaultPath string
	interval  time.Duration
	stopCh    chan struct{}
}

// NewBackup creates a new Drive backup service.
func NewBackup(service DriveAPI, repo *db.Repository, vaultPath string, interval time.Duration) *Backup {
	return &Backup{
		service:   service,
		repo:      repo,
		vaultPath: vaultPath,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic backup loop.
func (b *Backup) Start() error {
	// Run once immediately
	if err := b.BackupOnce(context.Background()); err != nil {
		log.Printf("Drive backup initial error: %v", err)
	}

	go func() {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := b.BackupOnce(context.Background()); err != nil {
					log.Printf("Drive backup error: %v", err)
				}
			case <-b.stopCh:
				return
			}
		}
	}()
	return nil
}

// Stop stops the backup loop.
func (b *Backup) Stop() {
	close(b.stopCh)
}

// BackupOnce uploads every new or modified markdown file once.
func (b *Backup) BackupOnce(ctx context.Context) error {
	return filepath.Walk(b.vaultPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		// Skip hidden dirs (.git etc.)
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".md") {
			return nil
		}

		relPath, err := filepath.Rel(b.vaultPath, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		rec, err := b.repo.GetDriveSyncByLocalPath(relPath)
		if err != nil {
			log.Printf("Drive backup: db error for %s: %v", relPath, err)
			return nil
		}

		modTime := info.ModTime().Truncate(time.Second)

		switch {
		case rec == nil:
			fileID, err := b.service.UploadFile(ctx, path, relPath, "")
			if err != nil {
				log.Printf("Drive backup: upload %s: %v", relPath, err)
				return nil
			}
			if err := b.repo.UpsertDriveSync(relPath, fileID, modTime); err != nil {
				log.Printf("Drive backup: record sync %s: %v", relPath, err)
			}
		case modTime.After(rec.ModifiedAt):
			if _, err := b.service.UploadFile(ctx, path, relPath, rec.DriveFileID); err != nil {
				log.Printf("Drive backup: re-upload %s: %v", relPath, err)
				return nil
			}
			if err := b.repo.UpsertDriveSync(relPath, rec.DriveFileID, modTime); err != nil {
				log.Printf("Drive backup: record sync %s: %v", relPath, err)
			}
		}

		return nil
	})
}
