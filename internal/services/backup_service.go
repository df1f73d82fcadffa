package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/config"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/logger"
	"github.com/Thiago-2004/ateneo-padel-reservas/pkg/apperrors"
)

type BackupService interface {
	// Run snapshots the database into the backups directory and returns the
	// path of the main backup file.
	Run() (string, error)
}

// FileBackupService copies the SQLite database file, plus its -wal and -shm
// sidecars when present. With WAL mode enabled the sidecars can hold commits
// not yet checkpointed into the main file, so a backup without them could be
// stale.
type FileBackupService struct{}

func NewBackupService() BackupService {
	return &FileBackupService{}
}

func (s *FileBackupService) Run() (string, error) {
	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Database.BackupsDir, 0o755); err != nil {
		return "", apperrors.InternalError(err)
	}

	stamp := time.Now().UTC().Format("2006-01-02T15-04-05Z")
	dest := filepath.Join(cfg.Database.BackupsDir, fmt.Sprintf("backup-%s.db", stamp))

	if err := copyFile(cfg.Database.Path, dest); err != nil {
		return "", apperrors.InternalError(err)
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		src := cfg.Database.Path + suffix
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := copyFile(src, dest+suffix); err != nil {
			return "", apperrors.InternalError(err)
		}
	}

	logger.Info("database backup created", "path", dest)
	return dest, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
