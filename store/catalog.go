package store

import (
	"database/sql"
	"fmt"

	"github.com/wizardkids/ida/models"
)

// Row in the feeds table: a feed plus its position in the catalog
type feedRow struct {
	models.Feed
	GroupName string `db:"group_name"`
	Position  int    `db:"feed_position"`
}

// LoadCatalog reads the persisted catalog. If nothing has been persisted yet, it
// fails soft and returns a catalog containing only an empty Default group.
func (s *Store) LoadCatalog() (models.Catalog, error) {
	meta := &struct {
		NextFeedID int64 `db:"next_feed_id"`
	}{}
	err := s.db.Get(meta, "SELECT next_feed_id FROM catalog_meta WHERE ROWID = 0")
	if err != nil {
		if err == sql.ErrNoRows {
			// No catalog has ever been saved
			return models.NewCatalog(), nil
		}
		s.log.Println("Error querying the database:", err)
		return models.Catalog{}, fmt.Errorf("loading catalog: %w", err)
	}

	catalog := models.Catalog{
		NextFeedID: meta.NextFeedID,
	}

	groups := []struct {
		Name string `db:"group_name"`
	}{}
	err = s.db.Select(&groups, "SELECT group_name FROM groups ORDER BY group_position")
	if err != nil {
		s.log.Println("Error querying the database:", err)
		return models.Catalog{}, fmt.Errorf("loading catalog: %w", err)
	}

	rows := []feedRow{}
	err = s.db.Select(&rows, "SELECT * FROM feeds ORDER BY feed_position")
	if err != nil {
		s.log.Println("Error querying the database:", err)
		return models.Catalog{}, fmt.Errorf("loading catalog: %w", err)
	}

	for _, g := range groups {
		group := models.Group{Name: g.Name}
		for _, r := range rows {
			if r.GroupName == g.Name {
				group.Feeds = append(group.Feeds, r.Feed)
			}
		}
		catalog.Groups = append(catalog.Groups, group)
	}

	return catalog, nil
}

// SaveCatalog persists the full catalog, replacing whatever was stored before
func (s *Store) SaveCatalog(catalog *models.Catalog) error {
	tx, err := s.db.Beginx()
	if err != nil {
		s.log.Println("Error starting a transaction:", err)
		return fmt.Errorf("saving catalog: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM catalog_meta",
		"DELETE FROM groups",
		"DELETE FROM feeds",
	} {
		if _, err = tx.Exec(stmt); err != nil {
			s.log.Println("Error querying the database:", err)
			return fmt.Errorf("saving catalog: %w", err)
		}
	}

	_, err = tx.Exec("INSERT OR REPLACE INTO catalog_meta (ROWID, next_feed_id) VALUES (0, ?)", catalog.NextFeedID)
	if err != nil {
		s.log.Println("Error querying the database:", err)
		return fmt.Errorf("saving catalog: %w", err)
	}

	pos := 0
	for gi, g := range catalog.Groups {
		_, err = tx.Exec("INSERT INTO groups (group_position, group_name) VALUES (?, ?)", gi, g.Name)
		if err != nil {
			s.log.Println("Error querying the database:", err)
			return fmt.Errorf("saving catalog: %w", err)
		}
		for _, f := range g.Feeds {
			_, err = tx.Exec(
				`INSERT INTO feeds (feed_id, group_name, feed_position, feed_title, feed_rss, feed_site_url,
					feed_etag, feed_last_modified, feed_change_flag, feed_last_post_title, feed_last_post_link)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				f.ID, g.Name, pos, f.Title, f.RSS, f.SiteURL,
				f.ETag, f.LastModified, f.ChangeFlag, f.LastPostTitle, f.LastPostLink,
			)
			if err != nil {
				s.log.Println("Error querying the database:", err)
				return fmt.Errorf("saving catalog: %w", err)
			}
			pos++
		}
	}

	err = tx.Commit()
	if err != nil {
		s.log.Println("Error while committing the transaction:", err)
		return fmt.Errorf("saving catalog: %w", err)
	}

	return nil
}
