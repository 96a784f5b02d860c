package models

import (
	"errors"

	"github.com/wizardkids/ida/utils"
)

// DefaultGroup is the reserved group that always exists and cannot be renamed or
// deleted
const DefaultGroup = "Default"

// Errors returned by catalog operations
var (
	ErrGroupImmutable = errors.New("the Default group cannot be renamed or deleted")
	ErrGroupNotEmpty  = errors.New("group still contains feeds")
	ErrGroupNotFound  = errors.New("group not found")
	ErrDuplicateGroup = errors.New("a group with that name already exists")
	ErrFeedNotFound   = errors.New("feed not found")
)

// Group is a named bucket of feeds, in stable order
type Group struct {
	Name  string
	Feeds []Feed
}

// Catalog is the full subscription state: every group and every feed, plus the
// counter used to assign feed IDs. Feed IDs are stable for the life of the feed;
// titles are display attributes and may change without breaking snapshot or ledger
// references.
type Catalog struct {
	NextFeedID int64
	Groups     []Group
}

// FeedRef is a feed together with the group it belongs to, as returned by AllFeeds
type FeedRef struct {
	Group string
	Feed  Feed
}

// NewCatalog returns a catalog containing only an empty Default group
func NewCatalog() Catalog {
	return Catalog{
		NextFeedID: 1,
		Groups:     []Group{{Name: DefaultGroup}},
	}
}

// groupIndex finds a group by name (case- and Unicode-insensitive)
func (c *Catalog) groupIndex(name string) int {
	for i := range c.Groups {
		if utils.EqualNames(c.Groups[i].Name, name) {
			return i
		}
	}
	return -1
}

// ensureDefault makes sure the Default group exists, in first position
func (c *Catalog) ensureDefault() {
	if c.groupIndex(DefaultGroup) >= 0 {
		return
	}
	c.Groups = append([]Group{{Name: DefaultGroup}}, c.Groups...)
}

// AddFeed inserts a feed into a group, creating the group if it doesn't exist.
// An empty group name means Default. The feed is assigned a new stable ID, which is
// also returned with the stored copy.
func (c *Catalog) AddFeed(group string, feed Feed) Feed {
	c.ensureDefault()
	if group == "" {
		group = DefaultGroup
	}

	feed.ID = c.NextFeedID
	c.NextFeedID++
	if feed.ChangeFlag == "" {
		feed.ChangeFlag = FlagUnchanged
	}

	i := c.groupIndex(group)
	if i < 0 {
		c.Groups = append(c.Groups, Group{Name: group})
		i = len(c.Groups) - 1
	}
	c.Groups[i].Feeds = append(c.Groups[i].Feeds, feed)

	return feed
}

// RemoveFeed tombstones a feed by clearing its RSS address. The entry stays in
// place until the next Prune pass, so numbering held by a caller mid-iteration
// stays valid.
func (c *Catalog) RemoveFeed(id int64) error {
	f := c.FeedByID(id)
	if f == nil {
		return ErrFeedNotFound
	}
	f.RSS = ""
	return nil
}

// SetRSS re-points a feed at a new RSS address, keeping everything else about the
// feed intact. The stored last-post pair is not reset: if the new address serves
// different content, the next check flags the feed as changed.
// An empty address is rejected, since that would tombstone the feed; use RemoveFeed
// for deletion.
func (c *Catalog) SetRSS(id int64, rss string) error {
	if rss == "" {
		return errors.New("the RSS address cannot be empty")
	}
	f := c.FeedByID(id)
	if f == nil {
		return ErrFeedNotFound
	}
	f.RSS = rss
	return nil
}

// Prune purges tombstoned feeds and empty groups other than Default.
// Running it twice yields the same catalog as running it once.
func (c *Catalog) Prune() {
	c.ensureDefault()

	groups := c.Groups[:0]
	for _, g := range c.Groups {
		feeds := g.Feeds[:0]
		for _, f := range g.Feeds {
			if !f.Tombstoned() {
				feeds = append(feeds, f)
			}
		}
		g.Feeds = feeds
		if len(g.Feeds) == 0 && !utils.EqualNames(g.Name, DefaultGroup) {
			continue
		}
		groups = append(groups, g)
	}
	c.Groups = groups
}

// MoveFeed relocates a feed to another group. If no group matches the target name
// (compared case-insensitively), the feed goes to Default.
func (c *Catalog) MoveFeed(id int64, target string) error {
	c.ensureDefault()

	var moved *Feed
	for gi := range c.Groups {
		g := &c.Groups[gi]
		for fi := range g.Feeds {
			if g.Feeds[fi].ID == id {
				f := g.Feeds[fi]
				moved = &f
				g.Feeds = append(g.Feeds[:fi], g.Feeds[fi+1:]...)
				break
			}
		}
		if moved != nil {
			break
		}
	}
	if moved == nil {
		return ErrFeedNotFound
	}

	i := c.groupIndex(target)
	if i < 0 {
		i = c.groupIndex(DefaultGroup)
	}
	c.Groups[i].Feeds = append(c.Groups[i].Feeds, *moved)
	return nil
}

// RenameGroup changes the name of a group. The Default group is immutable, and the
// new name must not collide with an existing group.
func (c *Catalog) RenameGroup(name, newName string) error {
	if utils.EqualNames(name, DefaultGroup) || utils.EqualNames(newName, DefaultGroup) {
		return ErrGroupImmutable
	}
	i := c.groupIndex(name)
	if i < 0 {
		return ErrGroupNotFound
	}
	if j := c.groupIndex(newName); j >= 0 && j != i {
		return ErrDuplicateGroup
	}
	c.Groups[i].Name = newName
	return nil
}

// DeleteGroup removes an empty group. The Default group is immutable, and a group
// that still contains feeds must be emptied first.
func (c *Catalog) DeleteGroup(name string) error {
	if utils.EqualNames(name, DefaultGroup) {
		return ErrGroupImmutable
	}
	i := c.groupIndex(name)
	if i < 0 {
		return ErrGroupNotFound
	}
	if len(c.Groups[i].Feeds) > 0 {
		return ErrGroupNotEmpty
	}
	c.Groups = append(c.Groups[:i], c.Groups[i+1:]...)
	return nil
}

// FeedByID returns a pointer to the feed with the given ID, or nil if it's not in
// the catalog. The pointer is valid until the catalog is structurally modified.
func (c *Catalog) FeedByID(id int64) *Feed {
	for gi := range c.Groups {
		for fi := range c.Groups[gi].Feeds {
			if c.Groups[gi].Feeds[fi].ID == id {
				return &c.Groups[gi].Feeds[fi]
			}
		}
	}
	return nil
}

// AllFeeds returns every feed in catalog order: groups in stored order, feeds in
// stored order within each group. This is the ordering used for continuous
// numbering in listings.
func (c *Catalog) AllFeeds() []FeedRef {
	refs := make([]FeedRef, 0, c.Len())
	for _, g := range c.Groups {
		for _, f := range g.Feeds {
			refs = append(refs, FeedRef{Group: g.Name, Feed: f})
		}
	}
	return refs
}

// Len returns the total number of feeds across all groups
func (c *Catalog) Len() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Feeds)
	}
	return n
}

// GroupNames returns the group names in stored order
func (c *Catalog) GroupNames() []string {
	names := make([]string, len(c.Groups))
	for i, g := range c.Groups {
		names[i] = g.Name
	}
	return names
}
