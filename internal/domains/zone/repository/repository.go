package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks -mock_names=Zone=MockRepository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"tzbot/config"
	"tzbot/infras/otel"
	"tzbot/infras/s3"
	"tzbot/internal/domains/zone/model"
	"tzbot/shared/constant"
)

const (
	fileMode          = 0o644
	dirMode           = 0o755
	backupContentType = constant.ContentTypeJSON
)

type Zone interface {
	// Load never fails: a missing, empty or corrupt file reads as an empty snapshot.
	Load(ctx context.Context) model.Snapshot
	// Save replaces the file with snapshot. Errors wrap model.ErrPersistenceWriteFailed.
	Save(ctx context.Context, snapshot model.Snapshot) error
}

type repositoryImpl struct {
	path      string
	backup    s3.S3
	backupDir string
	otel      otel.Otel
}

func New(cfg *config.Config, backup s3.S3, otel otel.Otel) Zone {
	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), dirMode); err != nil {
		log.Warn().Err(err).Str(constant.LogFieldPath, cfg.Store.Path).Msg("Failed to create zones directory")
	}

	return NewWithPath(cfg.Store.Path, cfg.Backup.S3.Directory, backup, otel)
}

// NewWithPath stores the snapshot at path and, when backup is enabled, mirrors
// it to backupDir in the bucket.
func NewWithPath(path, backupDir string, backup s3.S3, otel otel.Otel) Zone {
	return &repositoryImpl{
		path:      path,
		backup:    backup,
		backupDir: backupDir,
		otel:      otel,
	}
}

func (r *repositoryImpl) Load(ctx context.Context) model.Snapshot {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Load")
	defer scope.End()

	scope.SetAttribute(constant.LogFieldPath, r.path)

	snapshot, err := r.read()
	if err != nil {
		scope.TraceError(err)

		if errors.Is(err, fs.ErrNotExist) {
			log.Info().Str(constant.LogFieldPath, r.path).Msg("No zones file yet, starting empty")
		} else {
			log.Error().Err(err).Str(constant.LogFieldPath, r.path).Msg("Failed to read zones file, starting empty")
		}

		return model.Snapshot{}
	}

	log.Info().Str(constant.LogFieldPath, r.path).Int("guilds", len(snapshot.Data)).Msg("Loaded zones")

	return snapshot
}

func (r *repositoryImpl) read() (model.Snapshot, error) {
	var snapshot model.Snapshot

	data, err := os.ReadFile(r.path)
	if err != nil {
		return snapshot, fmt.Errorf("%w: %w", model.ErrPersistenceUnreadable, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return snapshot, fmt.Errorf("%w: file is empty", model.ErrPersistenceUnreadable)
	}

	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %w", model.ErrPersistenceUnreadable, err)
	}

	return snapshot, nil
}

func (r *repositoryImpl) Save(ctx context.Context, snapshot model.Snapshot) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		constant.LogFieldPath: r.path,
		"guilds":              len(snapshot.Data),
	})

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrPersistenceWriteFailed, err)
	}

	if err = writeFileAtomic(r.path, data); err != nil {
		log.Error().Err(err).Str(constant.LogFieldPath, r.path).Msg("Failed to write zones file")

		return fmt.Errorf("%w: %w", model.ErrPersistenceWriteFailed, err)
	}

	r.upload(ctx, data)

	return nil
}

// upload mirrors the saved file to the backup bucket. The local file is the
// source of truth, so a failed upload is only logged.
func (r *repositoryImpl) upload(ctx context.Context, data []byte) {
	if !r.backup.Enabled() {
		return
	}

	key, err := r.backup.UploadFileBytes(ctx, r.backupDir, filepath.Base(r.path), backupContentType, data)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to back up zones file")

		return
	}

	log.Debug().Str("key", key).Msg("Backed up zones file")
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()

	return d.Sync()
}

// writeFileAtomic writes data to a temporary file next to dst, fsyncs it and
// renames it over dst, so readers see either the old file or the new one.
func writeFileAtomic(dst string, data []byte) (err error) {
	dir := filepath.Dir(dst)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err = tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()

		return err
	}

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return err
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()

		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	if err = os.Rename(tmpName, dst); err != nil {
		return err
	}

	if serr := syncDir(dir); serr != nil {
		log.Debug().Err(serr).Str(constant.LogFieldPath, dir).Msg("Failed to sync zones directory")
	}

	return nil
}
