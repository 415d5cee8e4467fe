//go:build prod

package database

import (
	"log"

	"github.com/adrg/xdg"
)

// GetDefaultDBPath returns the database path for production mode.
// In production, the database lives in the user's XDG data directory.
func GetDefaultDBPath() string {
	return dataFile("storyloom.db")
}

func GetDefaultBoltPath() string {
	return dataFile("storyloom.bolt")
}

func dataFile(name string) string {
	path, err := xdg.DataFile("storyloom/" + name)
	if err != nil {
		log.Printf("Warning: Failed to resolve data dir: %v. Using fallback.", err)
		return name
	}
	return path
}

func IsDevelopment() bool {
	return false
}
