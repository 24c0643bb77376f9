package picker

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// walkBatchSize is how many paths accumulate before a batch is
// emitted to the main loop.
const walkBatchSize = 64

// ListDirectory returns the entries of a single directory, directories
// first, each directory suffixed with a separator.
func ListDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += string(filepath.Separator)
		}
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		di := strings.HasSuffix(out[i], string(filepath.Separator))
		dj := strings.HasSuffix(out[j], string(filepath.Separator))
		if di != dj {
			return di
		}
		return out[i] < out[j]
	})
	return out, nil
}

// WalkRepository streams every file under root, honoring ignore files
// and skipping VCS metadata. Paths are emitted relative to root in
// batches; emit returning false stops the walk (cooperative
// cancellation). cancelled is polled between directories.
func WalkRepository(root string, cancelled func() bool, emit func(batch []string) bool) error {
	ignores := newIgnoreStack()
	batch := make([]string, 0, walkBatchSize)

	flush := func() bool {
		if len(batch) == 0 {
			return true
		}
		out := make([]string, len(batch))
		copy(out, batch)
		batch = batch[:0]
		return emit(out)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if rel == "." {
			ignores.push(path, rel)
			return nil
		}
		if d.IsDir() {
			if cancelled != nil && cancelled() {
				return fs.SkipAll
			}
			name := d.Name()
			if name == ".git" || name == ".hg" || name == ".svn" {
				return fs.SkipDir
			}
			if ignores.matches(rel, true) {
				return fs.SkipDir
			}
			ignores.push(path, rel)
			return nil
		}
		if ignores.matches(rel, false) {
			return nil
		}
		batch = append(batch, rel)
		if len(batch) >= walkBatchSize {
			if !flush() {
				return fs.SkipAll
			}
		}
		return nil
	})
	flush()
	return err
}

// ignoreStack holds the patterns of every ignore file seen on the way
// down the tree.
type ignoreStack struct {
	rules []ignoreRule
}

type ignoreRule struct {
	base    string // directory the ignore file lives in, relative to root
	pattern string
	dirOnly bool
}

func newIgnoreStack() *ignoreStack { return &ignoreStack{} }

// push loads .gitignore / .ignore files from a directory.
func (s *ignoreStack) push(dir, rel string) {
	if rel == "." {
		rel = ""
	}
	for _, name := range []string{".gitignore", ".ignore"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
				continue
			}
			dirOnly := strings.HasSuffix(line, "/")
			line = strings.Trim(line, "/")
			if line == "" {
				continue
			}
			s.rules = append(s.rules, ignoreRule{base: rel, pattern: line, dirOnly: dirOnly})
		}
	}
}

// matches reports whether a relative path is ignored.
func (s *ignoreStack) matches(rel string, isDir bool) bool {
	name := filepath.Base(rel)
	for _, r := range s.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if r.base != "" && !strings.HasPrefix(rel, r.base+string(filepath.Separator)) {
			continue
		}
		if ok, _ := filepath.Match(r.pattern, name); ok {
			return true
		}
		if r.pattern == name {
			return true
		}
	}
	return false
}
