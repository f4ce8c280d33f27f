package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrArchiveDisabled is returned by history queries when no archive is configured.
var ErrArchiveDisabled = errors.New("report archive is disabled")

const reportTimeLayout = "20060102T150405.000Z"

// Archive stores sync reports as JSON objects, one per run.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
	keep   int
	logger *zap.Logger
}

// NewArchive creates an archive under bucket/prefix that retains the newest keep reports.
func NewArchive(client storage.Client, bucket, prefix string, keep int, logger *zap.Logger) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		keep:   keep,
		logger: logger,
	}
}

// objectName orders lexically by start time.
func (a *Archive) objectName(report *reconcile.Report) string {
	return path.Join(a.prefix, report.StartedAt.UTC().Format(reportTimeLayout)+".json")
}

// Save uploads the report and prunes reports beyond the retention count.
func (a *Archive) Save(ctx context.Context, report *reconcile.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	name := a.objectName(report)
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload report %s: %w", name, err)
	}

	a.logger.Debug("Archived sync report", zap.String("object", name))
	return a.prune(ctx)
}

// List returns up to limit reports, newest first. A limit <= 0 returns all.
func (a *Archive) List(ctx context.Context, limit int) ([]reconcile.Report, error) {
	keys, err := a.keys(ctx)
	if err != nil {
		return nil, err
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	reports := make([]reconcile.Report, 0, len(keys))
	for _, key := range keys {
		report, err := a.read(ctx, key)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (a *Archive) read(ctx context.Context, key string) (*reconcile.Report, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get report %s: %w", key, err)
	}
	defer obj.Close()

	var report reconcile.Report
	if err := json.NewDecoder(obj).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", key, err)
	}
	return &report, nil
}

func (a *Archive) keys(ctx context.Context) ([]string, error) {
	var keys []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    a.prefix + "/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

func (a *Archive) prune(ctx context.Context) error {
	if a.keep <= 0 {
		return nil
	}

	keys, err := a.keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) <= a.keep {
		return nil
	}

	sort.Strings(keys)
	for _, key := range keys[:len(keys)-a.keep] {
		if err := a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove report %s: %w", key, err)
		}
		a.logger.Debug("Pruned sync report", zap.String("object", key))
	}
	return nil
}
