// Package storage wraps the MinIO client for the s3:// asset source.
//
// Client is the subset of operations the toolkit needs: the fetcher reads
// objects with GetObject, and the integrity checks use BucketExists,
// ListObjects and PutObject. ObjectExists and PrefixExists answer presence
// questions with a single-key listing. core/storage/mocks holds a testify mock
// of Client.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	ok, err := storage.ObjectExists(ctx, client, cfg.Storage.Bucket, "textures/bark.png")
package storage
