package utils

import (
	"fmt"
	"os"
)

func DeleteFileIfExists(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to check if file exists at path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %s is a directory, not a file", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file at path %s: %w", path, err)
	}
	return nil
}

// CopyFile duplicates src to dst with the given permissions. Used for
// the one-time .backup copies taken before a page is first mutated.
func CopyFile(src, dst string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
