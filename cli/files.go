package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// collectSQLFiles expands the given paths: directories are walked recursively
// for .sql files, plain files are taken as-is. The result is sorted so runs
// are reproducible regardless of argument order.
func collectSQLFiles(paths []string) ([]string, error) {
	seen := map[string]bool{}

	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true

			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(entry string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				// Skip hidden directories like .git
				if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}

				return nil
			}

			if strings.EqualFold(filepath.Ext(entry), ".sql") {
				add(entry)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}

	sort.Strings(files)

	return files, nil
}
