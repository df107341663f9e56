package fileset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"drvaudit/internal/scan"
)

// maxFileBytes is the per-file size limit; anything larger is machine
// generated, not reviewable driver code.
const maxFileBytes = 1 << 20 // 1MB

// Options filters which files a walk returns.
type Options struct {
	Include []string
	Exclude []string
}

// Walk collects the C sources and headers under each root, applying the
// include then exclude glob filters. A root naming a file directly is taken
// as-is when it passes the filters. Results use forward slashes and come
// back sorted and deduplicated.
func Walk(roots []string, opts Options) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.ToSlash(path)
		if seen[path] {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
		if !info.IsDir() {
			if keep(filepath.ToSlash(root), info.Size(), opts) {
				add(root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Dot directories hold tooling state, never sources.
				if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return err
			}
			if keep(filepath.ToSlash(path), fi.Size(), opts) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func keep(path string, size int64, opts Options) bool {
	if scan.KindOf(path) == scan.KindOther {
		return false
	}
	if size > maxFileBytes {
		return false
	}
	if len(opts.Include) > 0 && !MatchesAny(path, opts.Include) {
		return false
	}
	if MatchesAny(path, opts.Exclude) {
		return false
	}
	return true
}

// MatchesAny reports whether path matches any of the glob patterns. A
// pattern with a "**/" prefix also matches against the bare filename and
// the stripped pattern, since filepath.Match has no recursive wildcard.
func MatchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		clean := strings.TrimPrefix(pattern, "**/")
		if clean != pattern {
			matched, err = filepath.Match(clean, filepath.Base(path))
			if err == nil && matched {
				return true
			}
			matched, err = filepath.Match(clean, path)
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}
