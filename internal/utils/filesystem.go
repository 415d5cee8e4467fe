package utils

import (
	"os"
	"path/filepath"
	"strings"
)

func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// FileExt returns the lower-cased extension of path without the dot.
func FileExt(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
