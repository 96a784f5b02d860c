package store

import (
	"fmt"

	"github.com/wizardkids/ida/models"
)

// LoadLedger reads the persisted read-state ledger. An empty table simply yields
// an empty ledger.
func (s *Store) LoadLedger() (*models.Ledger, error) {
	fingerprints := []string{}
	err := s.db.Select(&fingerprints, "SELECT fingerprint FROM read_ledger")
	if err != nil {
		s.log.Println("Error querying the database:", err)
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	ledger := models.NewLedger()
	for _, fp := range fingerprints {
		ledger.Add(fp)
	}
	return ledger, nil
}

// SaveLedger persists the full ledger, replacing whatever was stored before.
// The ledger is a set, so what's written is already deduplicated.
func (s *Store) SaveLedger(ledger *models.Ledger) error {
	tx, err := s.db.Beginx()
	if err != nil {
		s.log.Println("Error starting a transaction:", err)
		return fmt.Errorf("saving ledger: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM read_ledger"); err != nil {
		s.log.Println("Error querying the database:", err)
		return fmt.Errorf("saving ledger: %w", err)
	}

	for _, fp := range ledger.Fingerprints() {
		if _, err = tx.Exec("INSERT INTO read_ledger (fingerprint) VALUES (?)", fp); err != nil {
			s.log.Println("Error querying the database:", err)
			return fmt.Errorf("saving ledger: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		s.log.Println("Error while committing the transaction:", err)
		return fmt.Errorf("saving ledger: %w", err)
	}

	return nil
}
