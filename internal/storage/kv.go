// Package storage provides the persistence layer: a small key/value
// contract where every logical entity is one JSON-serialized record under
// one key, written read-modify-write after each mutation.  The session and
// catalog stores hydrate from it at startup and flush to it on change.
package storage

import "errors"

// ErrNotFound is returned by Get when no record exists under the key.
var ErrNotFound = errors.New("record not found")

// Well-known record keys.  Comment sequences use one key per video.
const (
	KeySessionUser  = "session.user"
	KeyCatalogItems = "catalog.items"
)

// CommentsKey returns the record key holding the comment sequence of one video.
func CommentsKey(videoID string) string { return "catalog.comments." + videoID }

// KV persists JSON-encoded records.  Implementations must treat the value
// as opaque bytes.
type KV interface {
	// Get returns the record stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Put stores value under key, replacing any previous record.
	Put(key string, value []byte) error
	// Delete removes the record under key.  Deleting a missing key is not
	// an error.
	Delete(key string) error
}
