package migrations

import (
	"database/sql"
	"fmt"

	"github.com/wizardkids/ida/db"
)

func V2() error {
	DB := db.GetDB()

	// Get the version
	res := &struct {
		Version int
	}{}
	err := DB.Get(res, "SELECT * FROM migrations WHERE ROWID = 0")
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	version := res.Version

	// Update to version 2 if needed
	if version < 2 {
		fmt.Println("Migrating database to version 2")
		sqlStmt := `
CREATE TABLE IF NOT EXISTS snapshot_meta (
	checked_at timestamp not null
);
CREATE TABLE IF NOT EXISTS snapshot_feeds (
	feed_position integer primary key,
	feed_id integer not null,
	feed_title text not null,
	feed_rss text not null,
	change_flag text not null
);
CREATE TABLE IF NOT EXISTS snapshot_entries (
	feed_position integer not null,
	entry_position integer not null,
	entry_title text not null,
	entry_link text not null
);
CREATE INDEX IF NOT EXISTS snapshot_entries_feed_position ON snapshot_entries (feed_position);
INSERT OR REPLACE INTO migrations (ROWID, version) VALUES (0, 2);
`

		_, err := DB.Exec(sqlStmt)
		if err != nil {
			return err
		}
	}
	return nil
}
