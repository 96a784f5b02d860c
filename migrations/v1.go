package migrations

import (
	log "github.com/sirupsen/logrus"

	"github.com/wizardkids/ida/db"
)

func V1() error {
	DB := db.GetDB()
	sqlStmt := `
CREATE TABLE IF NOT EXISTS migrations (
	version integer not null
);
CREATE TABLE IF NOT EXISTS catalog_meta (
	next_feed_id integer not null
);
CREATE TABLE IF NOT EXISTS groups (
	group_position integer primary key,
	group_name text not null
);
CREATE UNIQUE INDEX IF NOT EXISTS groups_group_name ON groups (group_name);
CREATE TABLE IF NOT EXISTS feeds (
	feed_id integer primary key,
	group_name text not null,
	feed_position integer not null,
	feed_title text not null,
	feed_rss text not null,
	feed_site_url text not null default "",
	feed_etag text not null default "",
	feed_last_modified timestamp not null,
	feed_change_flag text not null default "unchanged",
	feed_last_post_title text not null default "",
	feed_last_post_link text not null default ""
);
CREATE INDEX IF NOT EXISTS feeds_group_name ON feeds (group_name);
CREATE TABLE IF NOT EXISTS read_ledger (
	fingerprint text primary key
) WITHOUT ROWID;
`

	_, err := DB.Exec(sqlStmt)
	if err != nil {
		log.Error("Query error", err)
		return err
	}
	return nil
}
