package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// snapshotTimeFormat names archived snapshots. UTC, filename safe, and
// lexicographic order matches chronological order.
const snapshotTimeFormat = "20060102T150405Z"

// DefaultKeepSnapshots bounds the archive size per feed.
const DefaultKeepSnapshots = 30

// ErrInvalidSnapshotName is returned for names that could escape the feed prefix.
var ErrInvalidSnapshotName = errors.New("invalid snapshot name")

// Snapshot describes one archived feed download.
type Snapshot struct {
	// Name is the snapshot file name within the feed's prefix.
	Name string `json:"name"`
	// Size is the object size in bytes.
	Size int64 `json:"size"`
	// LastModified is when the snapshot was stored.
	LastModified time.Time `json:"last_modified"`
}

// Archiver stores raw supplier feed downloads under feeds/<id>/<timestamp>.csv
// and keeps the newest snapshots per feed, pruning the rest.
type Archiver struct {
	client Client
	bucket string
	keep   int
	logg   *zap.Logger
	now    func() time.Time
}

// NewArchiver creates an Archiver on top of a storage client.
func NewArchiver(client Client, bucket string, logg *zap.Logger) *Archiver {
	if logg == nil {
		logg = zap.NewNop()
	}
	return &Archiver{
		client: client,
		bucket: bucket,
		keep:   DefaultKeepSnapshots,
		logg:   logg,
		now:    time.Now,
	}
}

// EnsureBucket creates the snapshot bucket when it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", a.bucket, err)
	}
	return nil
}

// Archive stores one raw feed download and prunes snapshots beyond the
// retention count. Prune failures are logged, never returned.
func (a *Archiver) Archive(ctx context.Context, feedID uint, data []byte) (string, error) {
	name := a.now().UTC().Format(snapshotTimeFormat) + ".csv"
	object := feedPrefix(feedID) + name

	_, err := a.client.PutObject(ctx, a.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive snapshot %s: %w", object, err)
	}

	a.prune(ctx, feedID)
	return name, nil
}

// List returns the archived snapshots for a feed, newest first.
func (a *Archiver) List(ctx context.Context, feedID uint) ([]Snapshot, error) {
	prefix := feedPrefix(feedID)

	var snaps []Snapshot
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots for feed %d: %w", feedID, obj.Err)
		}
		snaps = append(snaps, Snapshot{
			Name:         strings.TrimPrefix(obj.Key, prefix),
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	// Timestamp names sort chronologically, so reverse name order is newest first.
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Name > snaps[j].Name })
	return snaps, nil
}

// Open streams one archived snapshot. The caller closes the reader.
func (a *Archiver) Open(ctx context.Context, feedID uint, name string) (io.ReadCloser, error) {
	if !validSnapshotName(name) {
		return nil, ErrInvalidSnapshotName
	}
	return a.client.GetObject(ctx, a.bucket, feedPrefix(feedID)+name, minio.GetObjectOptions{})
}

// Remove deletes one archived snapshot.
func (a *Archiver) Remove(ctx context.Context, feedID uint, name string) error {
	if !validSnapshotName(name) {
		return ErrInvalidSnapshotName
	}
	return a.client.RemoveObject(ctx, a.bucket, feedPrefix(feedID)+name, minio.RemoveObjectOptions{})
}

// prune removes the oldest snapshots past the retention count.
func (a *Archiver) prune(ctx context.Context, feedID uint) {
	snaps, err := a.List(ctx, feedID)
	if err != nil {
		a.logg.Warn("Snapshot prune listing failed", zap.Uint("feed_id", feedID), zap.Error(err))
		return
	}
	if len(snaps) <= a.keep {
		return
	}

	prefix := feedPrefix(feedID)
	stale := snaps[a.keep:]

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, s := range stale {
		objectsCh <- minio.ObjectInfo{Key: prefix + s.Name}
	}
	close(objectsCh)

	for rmErr := range a.client.RemoveObjects(ctx, a.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		a.logg.Warn("Snapshot prune failed", zap.String("object", rmErr.ObjectName), zap.Error(rmErr.Err))
	}
}

func feedPrefix(feedID uint) string {
	return fmt.Sprintf("feeds/%d/", feedID)
}

// validSnapshotName rejects path separators so a request parameter cannot
// reach outside the feed's prefix.
func validSnapshotName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, "/\\") && !strings.Contains(name, "..")
}
