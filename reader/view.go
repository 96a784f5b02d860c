package reader

import (
	"github.com/wizardkids/ida/models"
	"github.com/wizardkids/ida/utils"
)

// ArticleItem is one row in the article listing. Number is 1-based and contiguous
// over all of the feed's entries, independent of the read-display filter, so the
// number-to-article mapping stays stable while the filter is toggled mid-session.
type ArticleItem struct {
	Number int
	Title  string
	Link   string
	Read   bool
}

// FeedView is the article-listing state for one selected feed
type FeedView struct {
	session  *Session
	FeedID   int64
	Title    string
	record   *models.SnapshotFeed
	showRead bool
}

// Entries returns every entry of the feed with its stable number and read state.
// The read-display filter is a presentation concern: callers use ShowRead to
// decide what to print, the numbering never shifts.
func (v *FeedView) Entries() []ArticleItem {
	if v.record == nil {
		return nil
	}
	items := make([]ArticleItem, 0, len(v.record.Entries))
	for i, e := range v.record.Entries {
		items = append(items, ArticleItem{
			Number: i + 1,
			Title:  e.Title,
			Link:   e.Link,
			Read:   v.session.ledger.Contains(utils.Fingerprint(e.Link)),
		})
	}
	return items
}

// UnreadCount returns the number of entries not yet marked read
func (v *FeedView) UnreadCount() int {
	if v.record == nil {
		return 0
	}
	return v.session.unreadCount(v.record)
}

// ShowRead reports whether read articles should be listed too
func (v *FeedView) ShowRead() bool {
	return v.showRead
}

// ToggleShowRead flips the read-display filter
func (v *FeedView) ToggleShowRead() {
	v.showRead = !v.showRead
}

// MarkRead marks one article or an inclusive range ("3" or "3-7") as read.
// Marking an already-read article is a no-op.
func (v *FeedView) MarkRead(selection string) error {
	numbers, err := ParseSelection(selection, v.entryCount())
	if err != nil {
		return err
	}
	for _, n := range numbers {
		v.session.ledger.Add(utils.Fingerprint(v.record.Entries[n-1].Link))
	}
	return nil
}

// MarkUnread marks one article or an inclusive range as unread.
// Marking an already-unread article is a no-op.
func (v *FeedView) MarkUnread(selection string) error {
	numbers, err := ParseSelection(selection, v.entryCount())
	if err != nil {
		return err
	}
	for _, n := range numbers {
		v.session.ledger.Remove(utils.Fingerprint(v.record.Entries[n-1].Link))
	}
	return nil
}

// Open marks the numbered article as read and opens its link in the external
// viewer, best effort. The link is returned either way.
func (v *FeedView) Open(number int) (string, error) {
	count := v.entryCount()
	if number < 1 || number > count {
		return "", &InvalidSelectionError{Min: 1, Max: count}
	}
	link := v.record.Entries[number-1].Link

	if v.session.opener != nil {
		if err := v.session.opener(link); err != nil {
			// Not fatal: the article is still marked read
			v.session.log.Println("Could not open link:", err)
		}
	}

	v.session.ledger.Add(utils.Fingerprint(link))
	return link, nil
}

// ClearChangeFlag resets the feed's change flag in the catalog to unchanged.
// Used when the user has read everything and declines to un-read. If the feed is
// no longer in the catalog the snapshot record is an orphan and there is nothing
// to update.
func (v *FeedView) ClearChangeFlag() {
	feed := v.session.catalog.FeedByID(v.FeedID)
	if feed == nil {
		return
	}
	feed.ChangeFlag = models.FlagUnchanged
}

func (v *FeedView) entryCount() int {
	if v.record == nil {
		return 0
	}
	return len(v.record.Entries)
}
