package reader

import (
	"log"
	"os"

	"github.com/wizardkids/ida/models"
	"github.com/wizardkids/ida/utils"
)

// LinkOpener opens a URL in an external viewer. Failures are non-fatal: the
// read-state mutation proceeds whether or not the viewer could be launched.
type LinkOpener func(url string) error

// FeedItem is one row in the feed-selection listing
type FeedItem struct {
	Number  int
	Group   string
	FeedID  int64
	Title   string
	Flagged bool
}

// Session resolves the unread view over one snapshot: it lists feeds, computes
// unread articles against the ledger, and applies read/unread toggles.
// The catalog and ledger values are shared with the caller, which persists them
// when the session ends.
type Session struct {
	log      *log.Logger
	catalog  *models.Catalog
	snapshot *models.Snapshot
	ledger   *models.Ledger
	opener   LinkOpener
}

// NewSession creates a session over the given state. The opener may be nil, in
// which case selected articles are only marked read.
func NewSession(catalog *models.Catalog, snapshot *models.Snapshot, ledger *models.Ledger, opener LinkOpener) *Session {
	return &Session{
		log:      log.New(os.Stdout, "reader: ", log.Ldate|log.Ltime|log.LUTC),
		catalog:  catalog,
		snapshot: snapshot,
		ledger:   ledger,
		opener:   opener,
	}
}

// FeedList returns all feeds across all groups, numbered continuously from 1.
// A feed is flagged if its change flag is set or if it has any unread entries in
// the snapshot: the union of both signals, not the change flag alone.
func (s *Session) FeedList() []FeedItem {
	refs := s.catalog.AllFeeds()
	items := make([]FeedItem, 0, len(refs))
	for i, ref := range refs {
		flagged := ref.Feed.ChangeFlag == models.FlagChanged
		if !flagged {
			if record := s.snapshot.FeedByID(ref.Feed.ID); record != nil {
				flagged = s.unreadCount(record) > 0
			}
		}
		items = append(items, FeedItem{
			Number:  i + 1,
			Group:   ref.Group,
			FeedID:  ref.Feed.ID,
			Title:   ref.Feed.Title,
			Flagged: flagged,
		})
	}
	return items
}

// SelectFeed enters the article-listing state for the numbered feed.
// A feed that wasn't part of the last check cycle yields a view with no entries.
func (s *Session) SelectFeed(number int) (*FeedView, error) {
	refs := s.catalog.AllFeeds()
	if number < 1 || number > len(refs) {
		return nil, &InvalidSelectionError{Min: 1, Max: len(refs)}
	}
	ref := refs[number-1]

	return &FeedView{
		session:  s,
		FeedID:   ref.Feed.ID,
		Title:    ref.Feed.Title,
		record:   s.snapshot.FeedByID(ref.Feed.ID),
		showRead: false,
	}, nil
}

// unreadCount counts the entries of a snapshot record whose link fingerprint is
// not in the ledger
func (s *Session) unreadCount(record *models.SnapshotFeed) int {
	n := 0
	for _, e := range record.Entries {
		if !s.ledger.Contains(utils.Fingerprint(e.Link)) {
			n++
		}
	}
	return n
}
