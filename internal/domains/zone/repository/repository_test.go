package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tzbot/config"
	"tzbot/infras/otel/mocks"
	s3Mocks "tzbot/infras/s3/mocks"
	"tzbot/internal/domains/zone/model"
	"tzbot/internal/domains/zone/repository"
)

func newRepo(t *testing.T, path string) repository.Zone {
	t.Helper()

	ctrl := gomock.NewController(t)
	backup := s3Mocks.NewMockS3(ctrl)
	backup.EXPECT().Enabled().Return(false).AnyTimes()

	return repository.NewWithPath(path, "backups", backup, mocks.NewOtel())
}

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{Data: []model.GuildRecord{
		{
			GuildID: 123456789012345678,
			Entries: []model.Entry{
				{Person: "Alice", Timezone: "US/Eastern"},
				{Person: "Bob", Timezone: "Europe/London"},
				{Person: "Alice", Timezone: "US/Eastern"},
			},
		},
		{
			GuildID: 952651810546540606,
			Entries: []model.Entry{
				{Person: "the Americans", Timezone: "US/Eastern"},
			},
		},
	}}
}

func TestRepository_LoadUnreadable(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "empty file", content: ptr("")},
		{name: "whitespace only", content: ptr("  \n")},
		{name: "not json", content: ptr("zones")},
		{name: "truncated json", content: ptr(`{"data":[[1,[["Alice","US/Eas`)},
		{name: "wrong shape", content: ptr(`{"data":{"1":[]}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "zones.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			snapshot := newRepo(t, path).Load(context.Background())

			assert.Empty(t, snapshot.Data)
		})
	}
}

func TestRepository_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "zones.json")
	repo := newRepo(t, path)

	want := sampleSnapshot()
	require.NoError(t, repo.Save(ctx, want))

	assert.Equal(t, want, repo.Load(ctx))
	assert.Equal(t, want, newRepo(t, path).Load(ctx))
}

func TestRepository_SaveWritesFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.json")
	repo := newRepo(t, path)

	snapshot := model.Snapshot{Data: []model.GuildRecord{{
		GuildID: 123456789012345678,
		Entries: []model.Entry{
			{Person: "Alice", Timezone: "US/Eastern"},
			{Person: "Bob", Timezone: "Europe/London"},
		},
	}}}
	require.NoError(t, repo.Save(context.Background(), snapshot))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[[123456789012345678,[["Alice","US/Eastern"],["Bob","Europe/London"]]]]}`, string(data))
}

func TestRepository_SaveReplacesAndLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "zones.json")
	repo := newRepo(t, path)

	require.NoError(t, os.WriteFile(path, []byte("corrupt"), 0o644))
	require.NoError(t, repo.Save(ctx, sampleSnapshot()))
	require.NoError(t, repo.Save(ctx, model.Snapshot{}))

	assert.Empty(t, repo.Load(ctx).Data)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "zones.json", files[0].Name())
}

func TestRepository_SaveFailure(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "missing", "zones.json")
	repo := newRepo(t, path)

	err := repo.Save(ctx, sampleSnapshot())

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrPersistenceWriteFailed)
	assert.NoFileExists(t, path)
}

func TestRepository_SaveUploadsBackup(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "zones.json")

	ctrl := gomock.NewController(t)
	backup := s3Mocks.NewMockS3(ctrl)
	repo := repository.NewWithPath(path, "backups", backup, mocks.NewOtel())

	var uploaded []byte

	backup.EXPECT().Enabled().Return(true).Times(2)
	backup.EXPECT().
		UploadFileBytes(gomock.Any(), "backups", "zones.json", "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _ string, data []byte) (string, error) {
			uploaded = data

			return "backups/zones.json", nil
		})
	backup.EXPECT().
		UploadFileBytes(gomock.Any(), "backups", "zones.json", "application/json", gomock.Any()).
		Return("", errors.New("bucket unavailable"))

	require.NoError(t, repo.Save(ctx, sampleSnapshot()))

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, onDisk, uploaded)

	assert.NoError(t, repo.Save(ctx, sampleSnapshot()))
}

func TestNew_CreatesStoreDirectory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Path = filepath.Join(t.TempDir(), "state", "zones.json")

	ctrl := gomock.NewController(t)
	backup := s3Mocks.NewMockS3(ctrl)
	backup.EXPECT().Enabled().Return(false)

	repo := repository.New(cfg, backup, mocks.NewOtel())

	require.NoError(t, repo.Save(context.Background(), sampleSnapshot()))
	assert.FileExists(t, cfg.Store.Path)
}

func ptr(s string) *string {
	return &s
}
