// Package storage keeps uploaded x-ray images.
package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"
	"time"
)

var ErrNoObject = errors.New("storage: no object")

// Store persists image bytes under a key chosen by the caller.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// ObjectKey names an upload "<YYYYMMDDHHMMSS>_<id>_<original name>". The id
// keeps two uploads of the same file in the same second apart. Directory
// parts of the client supplied name are dropped.
func ObjectKey(now time.Time, id, filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), `\`, "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return now.Format("20060102150405") + "_" + id + "_" + name
}

func contentTypeFor(key string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(key))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
