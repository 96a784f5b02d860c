package feeds

import (
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/wizardkids/ida/models"
)

// Unreachable records a feed whose fetch failed during a check cycle.
// Unreachable feeds are reported to the user separately and never written to the
// snapshot, so they can't be mistaken for unchanged feeds.
type Unreachable struct {
	FeedID int64
	Title  string
	RSS    string
	Err    error
}

// CheckFeed fetches one feed and classifies it.
// The current top entry's (title, link) pair is compared to the stored pair: any
// difference means changed, and the stored pair is updated to the new top entry.
// On unchanged, the record's title/link stay untouched. The conditional-fetch
// hints from the response are written back only when the feed changed, so an
// unchanged feed's record stays byte-for-byte identical.
// The returned record lists all current entries, newest first, regardless of the
// classification: the reader derives per-entry read state from the ledger, not
// from the change flag.
func (c *Checker) CheckFeed(feed *models.Feed) (models.SnapshotFeed, error) {
	c.log.Printf("Checking feed %d (%s)\n", feed.ID, feed.RSS)

	posts, info, err := c.RequestFeed(feed.RSS)
	if err != nil {
		c.log.Printf("Error while fetching feed %d: %s\n", feed.ID, err)
		return models.SnapshotFeed{}, err
	}

	entries := collectEntries(posts)

	// A feed with zero entries is valid but contributes no comparison basis
	if len(entries) == 0 {
		feed.ChangeFlag = models.FlagUnchanged
	} else if entries[0].Title != feed.LastPostTitle || entries[0].Link != feed.LastPostLink {
		feed.ChangeFlag = models.FlagChanged
		feed.LastPostTitle = entries[0].Title
		feed.LastPostLink = entries[0].Link
		if info.ETag != "" {
			feed.ETag = info.ETag
		}
		if !info.LastModified.IsZero() {
			feed.LastModified = info.LastModified
		}
	} else {
		feed.ChangeFlag = models.FlagUnchanged
	}

	return models.SnapshotFeed{
		FeedID:     feed.ID,
		Title:      feed.Title,
		RSS:        feed.RSS,
		ChangeFlag: feed.ChangeFlag,
		Entries:    entries,
	}, nil
}

// CheckAll runs the Change Detector over every feed in the catalog, strictly one
// at a time in catalog order, and assembles the snapshot.
// The catalog is mutated in place (change flags, last-post pairs). The snapshot is
// returned complete or not at all: on cancellation mid-cycle the error is returned
// and no partial snapshot is produced.
func (c *Checker) CheckAll(catalog *models.Catalog) (models.Snapshot, []Unreachable, error) {
	c.log.Println("Started checking feeds")

	snapshot := models.Snapshot{}
	bad := []Unreachable{}

	for _, ref := range catalog.AllFeeds() {
		// If the context was canceled, return without a snapshot
		if err := c.ctx.Err(); err != nil {
			return models.Snapshot{}, nil, err
		}

		// Tombstoned feeds are waiting for the next prune pass
		if ref.Feed.Tombstoned() {
			continue
		}

		feed := catalog.FeedByID(ref.Feed.ID)
		if feed == nil {
			// Catalog changed under us; best effort, skip
			continue
		}

		record, err := c.CheckFeed(feed)
		if err != nil {
			bad = append(bad, Unreachable{
				FeedID: feed.ID,
				Title:  feed.Title,
				RSS:    feed.RSS,
				Err:    err,
			})
			continue
		}
		snapshot.Feeds = append(snapshot.Feeds, record)
	}

	snapshot.CheckedAt = time.Now().UTC()

	c.log.Printf("Done checking feeds: %d checked, %d unreachable\n", len(snapshot.Feeds), len(bad))

	return snapshot, bad, nil
}

// collectEntries converts the parsed feed into snapshot entries, preserving the
// document order (newest first for nearly every feed in the wild)
func collectEntries(posts *gofeed.Feed) []models.Entry {
	if posts == nil || len(posts.Items) == 0 {
		return nil
	}
	entries := make([]models.Entry, 0, len(posts.Items))
	for _, item := range posts.Items {
		if item == nil {
			continue
		}
		entries = append(entries, models.Entry{
			Title: item.Title,
			Link:  item.Link,
		})
	}
	return entries
}
