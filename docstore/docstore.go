// Package docstore persists report documents. The rest of the application only
// sees the Store interface, so the backing technology (MongoDB or an embedded
// SQLite file) is picked from the database URL at startup.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store is the narrow capability the application needs from a document database.
type Store interface {
	// InsertOne writes doc into collection and returns the generated document id.
	InsertOne(ctx context.Context, collection string, doc any) (string, error)
	// ListCollectionNames returns the names of all collections holding documents.
	ListCollectionNames(ctx context.Context) ([]string, error)
	// Name returns the logical database name.
	Name() string
	Close(ctx context.Context) error
}

var (
	// ErrEmptyURL is returned by Open when no database URL is configured.
	ErrEmptyURL = errors.New("docstore: database url is empty")
	// ErrNotFound is returned when a document lookup has no match.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrEmptyCollection is returned when a write names no collection.
	ErrEmptyCollection = errors.New("docstore: empty collection name")
)

// Open picks a backend from the URL scheme:
//
//	mongodb://... or mongodb+srv://...  -> MongoStore
//	sqlite://<path>                      -> SQLiteStore
func Open(ctx context.Context, rawURL, dbName string) (Store, error) {
	switch {
	case rawURL == "":
		return nil, ErrEmptyURL
	case strings.HasPrefix(rawURL, "mongodb://"), strings.HasPrefix(rawURL, "mongodb+srv://"):
		return NewMongoStore(ctx, rawURL, dbName)
	case strings.HasPrefix(rawURL, "sqlite://"):
		return NewSQLiteStore(strings.TrimPrefix(rawURL, "sqlite://"), dbName)
	default:
		return nil, fmt.Errorf("docstore: unsupported database url scheme %q", scheme(rawURL))
	}
}

// scheme returns the part before "://" so credentials never end up in errors.
func scheme(rawURL string) string {
	if s, _, ok := strings.Cut(rawURL, "://"); ok {
		return s
	}
	return ""
}
