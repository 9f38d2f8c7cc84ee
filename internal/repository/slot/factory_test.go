package slot

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbportal/internal/config"
)

func TestOpen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		cfg     func(t *testing.T) Config
		want    any
		wantErr string
	}{
		{
			name: "default is memory",
			cfg:  func(t *testing.T) Config { return Config{} },
			want: &MemoryStore{},
		},
		{
			name: "file",
			cfg:  func(t *testing.T) Config { return Config{Backend: BackendFile, DataDir: t.TempDir()} },
			want: &FileStore{},
		},
		{
			name: "sqlite",
			cfg:  func(t *testing.T) Config { return Config{Backend: BackendSQLite, DataDir: t.TempDir()} },
			want: &SQLiteStore{},
		},
		{
			name: "badger",
			cfg:  func(t *testing.T) Config { return Config{Backend: BackendBadger, DataDir: t.TempDir()} },
			want: &BadgerStore{},
		},
		{
			name:    "file without directory",
			cfg:     func(t *testing.T) Config { return Config{Backend: BackendFile} },
			wantErr: "requires a data directory",
		},
		{
			name:    "postgres without url",
			cfg:     func(t *testing.T) Config { return Config{Backend: BackendPostgres} },
			wantErr: "requires DATABASE_URL",
		},
		{
			name:    "s3 without bucket",
			cfg:     func(t *testing.T) Config { return Config{Backend: BackendS3} },
			wantErr: "requires a bucket",
		},
		{
			name:    "unknown backend",
			cfg:     func(t *testing.T) Config { return Config{Backend: "etcd"} },
			wantErr: "unsupported slot backend: etcd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(t.Context(), tt.cfg(t), logger)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { store.Close() })
			assert.IsType(t, tt.want, store)
		})
	}
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		SlotBackend: BackendS3,
		DataDir:     "/var/lib/kb",
		TablePrefix: "test_",
		S3Bucket:    "kb-docs",
		S3Region:    "eu-west-1",
		S3Prefix:    "portal",
	}

	got := FromConfig(cfg)
	assert.Equal(t, Config{
		Backend:     BackendS3,
		DataDir:     "/var/lib/kb",
		TablePrefix: "test_",
		S3Bucket:    "kb-docs",
		S3Region:    "eu-west-1",
		S3Prefix:    "portal",
	}, got)
}
