package slot

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"kbportal/internal/config"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
	"kbportal/internal/repository/postgres"
)

// Backend names accepted by Open
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendBadger   = "badger"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config selects and configures a slot backend
type Config struct {
	Backend     string
	DataDir     string // file, badger, sqlite
	DatabaseURL string // postgres
	TablePrefix string // postgres
	S3Bucket    string
	S3Region    string
	S3Endpoint  string // optional, for MinIO/localstack
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
}

// FromConfig picks the slot settings out of the process configuration
func FromConfig(cfg *config.Config) Config {
	return Config{
		Backend:     cfg.SlotBackend,
		DataDir:     cfg.DataDir,
		DatabaseURL: cfg.DatabaseURL,
		TablePrefix: cfg.TablePrefix,
		S3Bucket:    cfg.S3Bucket,
		S3Region:    cfg.S3Region,
		S3Endpoint:  cfg.S3Endpoint,
		S3Prefix:    cfg.S3Prefix,
		S3AccessKey: cfg.S3AccessKey,
		S3SecretKey: cfg.S3SecretKey,
	}
}

// Open creates the slot store named by cfg.Backend
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (docsysRepo.KeyValueStore, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		logger.Warn("using in-memory slot store, documents will not survive a restart")
		return NewMemoryStore(), nil

	case BackendFile:
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("file slot store requires a data directory")
		}
		return NewFileStore(cfg.DataDir)

	case BackendBadger:
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("badger slot store requires a data directory")
		}
		return NewBadgerStore(filepath.Join(cfg.DataDir, "badger"))

	case BackendSQLite:
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("sqlite slot store requires a data directory")
		}
		return NewSQLiteStore(filepath.Join(cfg.DataDir, "kb.db"))

	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres slot store requires DATABASE_URL")
		}
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store := postgres.NewSlotStore(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		})
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil

	case BackendS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 slot store requires a bucket")
		}
		client, err := newS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix), nil

	default:
		return nil, fmt.Errorf("unsupported slot backend: %s", cfg.Backend)
	}
}

func newS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	region := "us-east-1"
	if cfg.S3Region != "" {
		region = cfg.S3Region
	}

	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(region))
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	if cfg.S3Endpoint != "" {
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true // MinIO and localstack need path-style addressing
		}), nil
	}
	return s3.NewFromConfig(awsCfg), nil
}
