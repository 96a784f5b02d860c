package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/wizardkids/ida/models"
)

// LoadSnapshot reads the snapshot written by the most recent check cycle.
// Returns ErrNoSnapshot if no check has ever been run.
func (s *Store) LoadSnapshot() (models.Snapshot, error) {
	meta := &struct {
		CheckedAt time.Time `db:"checked_at"`
	}{}
	err := s.db.Get(meta, "SELECT checked_at FROM snapshot_meta WHERE ROWID = 0")
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Snapshot{}, ErrNoSnapshot
		}
		s.log.Println("Error querying the database:", err)
		return models.Snapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}

	snapshot := models.Snapshot{
		CheckedAt: meta.CheckedAt,
	}

	feeds := []struct {
		Position   int               `db:"feed_position"`
		FeedID     int64             `db:"feed_id"`
		Title      string            `db:"feed_title"`
		RSS        string            `db:"feed_rss"`
		ChangeFlag models.ChangeFlag `db:"change_flag"`
	}{}
	err = s.db.Select(&feeds, "SELECT * FROM snapshot_feeds ORDER BY feed_position")
	if err != nil {
		s.log.Println("Error querying the database:", err)
		return models.Snapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}

	entries := []struct {
		FeedPosition  int    `db:"feed_position"`
		EntryPosition int    `db:"entry_position"`
		Title         string `db:"entry_title"`
		Link          string `db:"entry_link"`
	}{}
	err = s.db.Select(&entries, "SELECT * FROM snapshot_entries ORDER BY feed_position, entry_position")
	if err != nil {
		s.log.Println("Error querying the database:", err)
		return models.Snapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}

	for _, f := range feeds {
		sf := models.SnapshotFeed{
			FeedID:     f.FeedID,
			Title:      f.Title,
			RSS:        f.RSS,
			ChangeFlag: f.ChangeFlag,
		}
		for _, e := range entries {
			if e.FeedPosition == f.Position {
				sf.Entries = append(sf.Entries, models.Entry{Title: e.Title, Link: e.Link})
			}
		}
		snapshot.Feeds = append(snapshot.Feeds, sf)
	}

	return snapshot, nil
}

// SaveSnapshot persists the result of a check cycle, replacing any prior snapshot
func (s *Store) SaveSnapshot(snapshot *models.Snapshot) error {
	tx, err := s.db.Beginx()
	if err != nil {
		s.log.Println("Error starting a transaction:", err)
		return fmt.Errorf("saving snapshot: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM snapshot_meta",
		"DELETE FROM snapshot_feeds",
		"DELETE FROM snapshot_entries",
	} {
		if _, err = tx.Exec(stmt); err != nil {
			s.log.Println("Error querying the database:", err)
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}

	_, err = tx.Exec("INSERT OR REPLACE INTO snapshot_meta (ROWID, checked_at) VALUES (0, ?)", snapshot.CheckedAt)
	if err != nil {
		s.log.Println("Error querying the database:", err)
		return fmt.Errorf("saving snapshot: %w", err)
	}

	for fi, f := range snapshot.Feeds {
		_, err = tx.Exec(
			"INSERT INTO snapshot_feeds (feed_position, feed_id, feed_title, feed_rss, change_flag) VALUES (?, ?, ?, ?, ?)",
			fi, f.FeedID, f.Title, f.RSS, f.ChangeFlag,
		)
		if err != nil {
			s.log.Println("Error querying the database:", err)
			return fmt.Errorf("saving snapshot: %w", err)
		}
		for ei, e := range f.Entries {
			_, err = tx.Exec(
				"INSERT INTO snapshot_entries (feed_position, entry_position, entry_title, entry_link) VALUES (?, ?, ?, ?)",
				fi, ei, e.Title, e.Link,
			)
			if err != nil {
				s.log.Println("Error querying the database:", err)
				return fmt.Errorf("saving snapshot: %w", err)
			}
		}
	}

	err = tx.Commit()
	if err != nil {
		s.log.Println("Error while committing the transaction:", err)
		return fmt.Errorf("saving snapshot: %w", err)
	}

	return nil
}
