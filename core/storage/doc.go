// Package storage provides the feed snapshot archive on top of object storage.
//
// The Client interface narrows the MinIO Go client to the handful of bucket
// and object operations the archive needs, which keeps the archiver usable
// against AWS S3 or a self-hosted MinIO and easy to mock in tests (see
// core/storage/mocks).
//
// # Archiver
//
// The Archiver stores every successfully fetched supplier feed as
// feeds/<feed_id>/<timestamp>.csv and keeps the newest snapshots per feed.
// Archiving is best-effort from the caller's point of view: the sync run
// never fails because a snapshot could not be stored.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	archiver := storage.NewArchiver(client, config.Bucket, logg)
//	err = archiver.EnsureBucket(ctx)
//	name, err := archiver.Archive(ctx, feedID, rawCSV)
package storage
