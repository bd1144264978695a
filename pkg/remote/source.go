package remote

import (
	"context"
	"time"
)

// Row is a single translation override as stored remotely.
type Row struct {
	Key       string    `json:"key"`
	Locale    string    `json:"locale"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Source is the read contract of an override store.
//
// Rows returns every row for locale; an unknown locale yields no rows and no
// error. LatestUpdate returns the newest UpdatedAt for locale and false when
// the locale has no rows.
type Source interface {
	Rows(ctx context.Context, locale string) ([]Row, error)
	LatestUpdate(ctx context.Context, locale string) (time.Time, bool, error)
}

// Pinger is implemented by sources that can report their own connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
