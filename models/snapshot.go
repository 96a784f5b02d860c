package models

import "time"

// Entry is one article from a feed
type Entry struct {
	Title string
	Link  string
}

// SnapshotFeed is the record produced for one feed by a check cycle: the feed's
// identity at the time of the check, its classification, and all current entries,
// newest first. FeedID is a soft reference: the feed may have been renamed or
// deleted since, in which case the record is still viewable on its own but can't
// be cross-referenced for flag updates.
type SnapshotFeed struct {
	FeedID     int64
	Title      string
	RSS        string
	ChangeFlag ChangeFlag
	Entries    []Entry
}

// Snapshot is the point-in-time result of the most recent check cycle. It fully
// replaces any earlier snapshot; there is no incremental merge.
type Snapshot struct {
	CheckedAt time.Time
	Feeds     []SnapshotFeed
}

// FeedByID returns the snapshot record for a feed, or nil if the feed wasn't part
// of the check cycle
func (s *Snapshot) FeedByID(id int64) *SnapshotFeed {
	for i := range s.Feeds {
		if s.Feeds[i].FeedID == id {
			return &s.Feeds[i]
		}
	}
	return nil
}
