package filesystem

import (
	"path/filepath"
	"strings"
)

// isHidden returns true if any component of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// relativeTo returns path relative to root, or path itself if it is not below root.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// within returns true if path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// skipped returns true if path lies in any of the skip directories.
func skipped(path string, skipDirs []string) bool {
	for _, dir := range skipDirs {
		if dir != "" && within(path, dir) {
			return true
		}
	}
	return false
}

// absAll returns cleaned absolute forms of paths. Paths that cannot be
// made absolute are cleaned only.
func absAll(paths []string) []string {
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			result = append(result, abs)
			continue
		}
		result = append(result, filepath.Clean(p))
	}
	return result
}
