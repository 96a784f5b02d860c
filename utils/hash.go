package utils

import (
	"crypto/sha256"
	"math/big"
)

// Modulus that bounds fingerprints to 8 decimal digits
var fingerprintMod = big.NewInt(100_000_000)

// Fingerprint returns a compact, deterministic identifier for a string, such as an
// article's link. The SHA-256 digest is interpreted as a big integer and reduced
// modulo 10^8, then rendered in decimal. Collisions are possible but negligible at
// the scale of a personal reading list, and storing fingerprints instead of full
// links keeps the read ledger small.
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	n := new(big.Int).SetBytes(sum[:])
	return n.Mod(n, fingerprintMod).String()
}
