// Package storage abstracts where uploaded files live. Profile images go
// through it so deployments can point STORAGE_DISK at S3 without touching
// the upload code.
//
// Two drivers are available out of the box:
//   - "local"  local filesystem (default)
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	// boot once (e.g. in internal/server/server.go):
//	storage.Connect()
//
//	// default disk
//	storage.Put("profiles/photo.jpg", data)
//	url := storage.URL("profiles/photo.jpg")
package storage

import "io"

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// URL returns the public URL for path. The local driver points at the
	// app's /storage/ file server; S3 returns the bucket URL.
	URL(path string) string
}
