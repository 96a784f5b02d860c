package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"

	"github.com/wizardkids/ida/db"
	"github.com/wizardkids/ida/migrations"
	"github.com/wizardkids/ida/models"
)

// testStore opens a fresh sqlite database in a temporary folder and runs the
// migrations on it
func testStore(t *testing.T) *Store {
	t.Helper()

	viper.Set("DBPath", filepath.Join(t.TempDir(), "ida.db"))
	conn := db.ConnectDB()
	t.Cleanup(func() {
		conn.Close()
	})
	migrations.Migrate()

	return New(conn)
}

func TestLoadCatalogEmptyDatabase(t *testing.T) {
	s := testStore(t)

	// Nothing has ever been saved: fail soft with a fresh catalog
	catalog, err := s.LoadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(models.NewCatalog(), catalog); diff != "" {
		t.Fatalf("Catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	s := testStore(t)

	catalog := models.NewCatalog()
	catalog.AddFeed("", models.Feed{
		Title:         "Example Blog",
		RSS:           "http://x/feed",
		SiteURL:       "http://x",
		ETag:          `"abc123"`,
		LastModified:  time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		ChangeFlag:    models.FlagChanged,
		LastPostTitle: "B",
		LastPostLink:  "http://x/b",
	})
	catalog.AddFeed("News", models.Feed{Title: "Daily News", RSS: "http://news/feed"})
	catalog.AddFeed("News", models.Feed{Title: "Other News", RSS: "http://other/feed"})
	// A tombstoned feed persists too until the next prune
	catalog.AddFeed("Tech", models.Feed{Title: "Gadgets", RSS: "http://tech/feed"})
	if err := catalog.RemoveFeed(4); err != nil {
		t.Fatal(err)
	}

	if err := s.SaveCatalog(&catalog); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(catalog, loaded); diff != "" {
		t.Fatalf("Catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveCatalogReplaces(t *testing.T) {
	s := testStore(t)

	first := models.NewCatalog()
	first.AddFeed("Old", models.Feed{Title: "Old Feed", RSS: "http://old/feed"})
	if err := s.SaveCatalog(&first); err != nil {
		t.Fatal(err)
	}

	second := models.NewCatalog()
	second.AddFeed("", models.Feed{Title: "New Feed", RSS: "http://new/feed"})
	if err := s.SaveCatalog(&second); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(second, loaded); diff != "" {
		t.Fatalf("Expected the second save to fully replace the first (-want +got):\n%s", diff)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	s := testStore(t)

	_, err := s.LoadSnapshot()
	if !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("Expected ErrNoSnapshot, got %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := testStore(t)

	snapshot := models.Snapshot{
		CheckedAt: time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC),
		Feeds: []models.SnapshotFeed{
			{
				FeedID:     1,
				Title:      "Example Blog",
				RSS:        "http://x/feed",
				ChangeFlag: models.FlagChanged,
				Entries: []models.Entry{
					{Title: "B", Link: "http://x/b"},
					{Title: "A", Link: "http://x/a"},
				},
			},
			{
				FeedID:     2,
				Title:      "Daily News",
				RSS:        "http://news/feed",
				ChangeFlag: models.FlagUnchanged,
				// A feed can legitimately have no entries in the snapshot
			},
		},
	}

	if err := s.SaveSnapshot(&snapshot); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(snapshot, loaded); diff != "" {
		t.Fatalf("Snapshot mismatch (-want +got):\n%s", diff)
	}

	// Saving again replaces wholesale
	snapshot.Feeds = snapshot.Feeds[:1]
	if err := s.SaveSnapshot(&snapshot); err != nil {
		t.Fatal(err)
	}
	loaded, err = s.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Feeds) != 1 {
		t.Fatalf("Expected 1 feed after the second save, got %d", len(loaded.Feeds))
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	s := testStore(t)

	// Empty table loads as an empty ledger
	ledger, err := s.LoadLedger()
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 0 {
		t.Fatalf("Expected an empty ledger, got %d fingerprints", ledger.Len())
	}

	ledger.Add("96883114")
	ledger.Add("56710798")
	ledger.Add("96883114")
	if err := s.SaveLedger(ledger); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadLedger()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ledger.Fingerprints(), loaded.Fingerprints()); diff != "" {
		t.Fatalf("Ledger mismatch (-want +got):\n%s", diff)
	}

	// Removals survive the round trip
	loaded.Remove("96883114")
	if err := s.SaveLedger(loaded); err != nil {
		t.Fatal(err)
	}
	final, err := s.LoadLedger()
	if err != nil {
		t.Fatal(err)
	}
	if final.Len() != 1 || !final.Contains("56710798") {
		t.Fatalf("Expected exactly 56710798 after the removal, got %v", final.Fingerprints())
	}
}

func TestSaveLedgerError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM read_ledger").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	s := New(sqlx.NewDb(mockDB, "sqlmock"))
	saveErr := s.SaveLedger(models.NewLedger())
	if saveErr == nil {
		t.Fatal("Expected an error when the database write fails")
	}
	if got := saveErr.Error(); got != "saving ledger: disk I/O error" {
		t.Fatalf("Expected the wrapped database error, got %q", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
