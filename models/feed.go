package models

import "time"

// ChangeFlag is the per-feed classification from the most recent check cycle
type ChangeFlag string

const (
	// FlagChanged means the top entry differs from the stored one
	FlagChanged ChangeFlag = "changed"
	// FlagUnchanged means the top entry matches the stored one
	FlagUnchanged ChangeFlag = "unchanged"
)

// Model for one subscribed RSS/Atom source.
// ETag and LastModified are conditional-fetch hints captured opportunistically from
// responses; an empty string and a zero time mean the server never sent them. They
// are not used for the change decision, which compares LastPostTitle/LastPostLink
// against the current top entry.
type Feed struct {
	ID            int64      `db:"feed_id"`
	Title         string     `db:"feed_title"`
	RSS           string     `db:"feed_rss"`
	SiteURL       string     `db:"feed_site_url"`
	ETag          string     `db:"feed_etag"`
	LastModified  time.Time  `db:"feed_last_modified"`
	ChangeFlag    ChangeFlag `db:"feed_change_flag"`
	LastPostTitle string     `db:"feed_last_post_title"`
	LastPostLink  string     `db:"feed_last_post_link"`
}

// Tombstoned returns true if the feed has been marked for deletion.
// Deleting a feed clears its RSS address; the structural removal happens in the
// next Prune pass.
func (f Feed) Tombstoned() bool {
	return f.RSS == ""
}
