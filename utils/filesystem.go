package utils

import (
	"os"
)

// PathExists returns true if the path exists on disk
func PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

// EnsureFolder creates a folder, and any missing parents, if it doesn't exist
// already. Used to set up the data folder holding the database on first run.
func EnsureFolder(path string) error {
	exists, err := PathExists(path)
	if err != nil {
		return err
	}
	if !exists {
		return os.MkdirAll(path, os.ModePerm)
	}
	return nil
}
