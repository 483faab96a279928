package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Discover returns the partitions in dir matching pattern, sorted by path.
func Discover(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("corpus directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus directory %s is not a directory", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("corpus pattern %q: %w", pattern, err)
	}

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		st, err := os.Stat(match)
		if err != nil || st.IsDir() {
			continue
		}
		paths = append(paths, match)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: nothing matches %s in %s", ErrNoPartitions, pattern, dir)
	}
	sort.Strings(paths)
	return paths, nil
}
