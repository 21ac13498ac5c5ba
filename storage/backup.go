package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"papernet/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Backup sichert die Graph-Datenbank komprimiert in einen S3-Bucket und rotiert alte Sicherungen.
type Backup struct {
	Config *config.Config
	DB     *gorm.DB
	Store  ObjectStore
	Logger *zap.Logger
	Now    func() time.Time
}

// NewBackup erstellt einen Backup-Job.
func NewBackup(cfg *config.Config, db *gorm.DB, store ObjectStore, logger *zap.Logger) *Backup {
	return &Backup{
		Config: cfg,
		DB:     db,
		Store:  store,
		Logger: logger,
		Now:    time.Now,
	}
}

// Run erstellt einen Snapshot, lädt ihn hoch und löscht überzählige Sicherungen.
// Gibt den Objekt-Key des neuen Backups zurück.
func (b *Backup) Run(ctx context.Context) (string, error) {
	data, ext, err := b.snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}

	key := fmt.Sprintf("%sbackup-%s.%s.gz", b.Config.BackupPrefix, b.Now().UTC().Format("2006-01-02T15-04-05Z"), ext)
	_, err = b.Store.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.Config.BackupBucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	b.Logger.Info("Backup uploaded",
		zap.String("bucket", b.Config.BackupBucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)))

	if err := b.rotate(ctx); err != nil {
		return key, fmt.Errorf("rotate: %w", err)
	}
	return key, nil
}

func (b *Backup) snapshot(ctx context.Context) ([]byte, string, error) {
	if b.Config.DBDriver == config.DriverPostgres {
		data, err := dumpPostgres(ctx, b.Config)
		return data, "sql", err
	}
	data, err := SnapshotSQLite(ctx, b.DB)
	return data, "db", err
}

// SnapshotSQLite schreibt mit VACUUM INTO eine konsistente Kopie und gibt sie gzip-komprimiert zurück.
func SnapshotSQLite(ctx context.Context, db *gorm.DB) ([]byte, error) {
	dir, err := os.MkdirTemp("", "papernet-backup-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "snapshot.db")
	if err := db.WithContext(ctx).Exec("VACUUM INTO ?", path).Error; err != nil {
		return nil, fmt.Errorf("vacuum into: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return compress(f)
}

func dumpPostgres(ctx context.Context, cfg *config.Config) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "pg_dump",
		"-h", cfg.DBHost,
		"-p", strconv.Itoa(cfg.DBPort),
		"-U", cfg.DBUser,
		"-d", cfg.DBName,
		"-w", // Passwort kommt über PGPASSWORD
	)
	cmd.Env = append(os.Environ(), fmt.Sprintf("PGPASSWORD=%s", cfg.DBPassword))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	data, err := compress(stdout)
	if err != nil {
		_ = cmd.Wait()
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func compress(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := io.Copy(zw, r); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Backup) rotate(ctx context.Context) error {
	var objects []types.Object
	p := s3.NewListObjectsV2Paginator(b.Store, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.Config.BackupBucket),
		Prefix: aws.String(b.Config.BackupPrefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		objects = append(objects, page.Contents...)
	}

	if len(objects) <= b.Config.BackupKeep {
		return nil
	}

	sort.Slice(objects, func(i, j int) bool {
		return aws.ToTime(objects[i].LastModified).After(aws.ToTime(objects[j].LastModified))
	})

	for _, obj := range objects[b.Config.BackupKeep:] {
		b.Logger.Info("Deleting old backup", zap.String("key", aws.ToString(obj.Key)))
		_, err := b.Store.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(b.Config.BackupBucket),
			Key:    obj.Key,
		})
		if err != nil {
			b.Logger.Warn("Failed to delete old backup", zap.String("key", aws.ToString(obj.Key)), zap.Error(err))
		}
	}
	return nil
}
