// Package scan expands content globs against a project tree.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of patterns expanded at once.
const DefaultConcurrency = 4

// NormalizePattern strips a leading "!" (exclusion) and "./" prefix from a
// content pattern and converts it to slash form.
func NormalizePattern(pattern string) (string, bool) {
	p := strings.TrimSpace(pattern)
	exclude := strings.HasPrefix(p, "!")
	if exclude {
		p = strings.TrimSpace(p[1:])
	}
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p, exclude
}

// ValidatePattern reports whether pattern is a usable content glob.
func ValidatePattern(pattern string) error {
	p, _ := NormalizePattern(pattern)
	if p == "" {
		return fmt.Errorf("empty pattern")
	}
	if !doublestar.ValidatePattern(p) {
		return fmt.Errorf("%w: %q", doublestar.ErrBadPattern, pattern)
	}
	return nil
}

// PatternResult holds the expansion of a single pattern.
type PatternResult struct {
	Pattern string   // As written in the configuration
	Exclude bool     // Negated pattern, subtracted from the union
	Outside bool     // Literal directory prefix lies outside the root
	Files   []string // Slash-separated paths relative to the root, "../" for outside matches
	Bytes   int64
	Err     error // Pattern could not be expanded
}

// Empty reports whether the pattern matched nothing.
func (p PatternResult) Empty() bool {
	return len(p.Files) == 0
}

// Result is the outcome of scanning all content patterns.
type Result struct {
	Root     string
	Patterns []PatternResult
	Files    []string // Union of include matches minus exclusions, sorted
	Bytes    int64
}

// EmptyPatterns returns the include patterns that matched no files.
func (r *Result) EmptyPatterns() []string {
	var out []string
	for _, p := range r.Patterns {
		if !p.Exclude && p.Err == nil && p.Empty() {
			out = append(out, p.Pattern)
		}
	}
	return out
}

// Scanner expands content patterns over a filesystem.
type Scanner struct {
	fsys        fs.FS
	root        string
	concurrency int
	logger      *slog.Logger
}

// New creates a scanner rooted at the given directory.
func New(root string, logger *slog.Logger) *Scanner {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return NewFS(os.DirFS(root), root, logger)
}

// NewFS creates a scanner over an arbitrary filesystem.
func NewFS(fsys fs.FS, root string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		fsys:        fsys,
		root:        root,
		concurrency: DefaultConcurrency,
		logger:      logger,
	}
}

// SetConcurrency sets the maximum number of patterns expanded in parallel.
func (s *Scanner) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	s.concurrency = n
}

// Scan expands every pattern. Patterns that match nothing are reported in
// the result, not as errors; only context cancellation fails the scan.
func (s *Scanner) Scan(ctx context.Context, patterns []string) (*Result, error) {
	results := make([]PatternResult, len(patterns))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, pattern := range patterns {
		i, pattern := i, pattern
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.expand(pattern)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Root: s.root, Patterns: results}

	included := make(map[string]int64)
	for _, pr := range results {
		if pr.Exclude || pr.Err != nil {
			continue
		}
		for _, f := range pr.Files {
			if _, ok := included[f]; !ok {
				included[f] = s.size(f)
			}
		}
	}
	for _, pr := range results {
		if !pr.Exclude {
			continue
		}
		for _, f := range pr.Files {
			delete(included, f)
		}
	}

	for f, size := range included {
		res.Files = append(res.Files, f)
		res.Bytes += size
	}
	sort.Strings(res.Files)

	for _, p := range res.EmptyPatterns() {
		s.logger.Warn("content pattern matched no files", "pattern", p, "root", s.root)
	}
	return res, nil
}

// expand matches a single pattern. Patterns whose literal prefix leaves the
// root, absolute or starting with "..", are matched on the OS filesystem from
// that prefix.
func (s *Scanner) expand(pattern string) PatternResult {
	p, exclude := NormalizePattern(pattern)
	pr := PatternResult{Pattern: pattern, Exclude: exclude}

	if p == "" {
		pr.Err = fmt.Errorf("empty pattern")
		return pr
	}
	if escapes(p) {
		p = path.Join(filepath.ToSlash(s.root), p)
		if !path.IsAbs(p) && !filepath.IsAbs(p) {
			pr.Outside = true
			return s.expandOutside(pr, p)
		}
	}
	if path.IsAbs(p) || filepath.IsAbs(p) {
		rel, ok := s.relative(p)
		if !ok {
			pr.Outside = true
			return s.expandOutside(pr, p)
		}
		p = rel
	}

	matches, err := doublestar.Glob(s.fsys, p, doublestar.WithFilesOnly())
	if err != nil {
		pr.Err = err
		return pr
	}
	sort.Strings(matches)
	pr.Files = matches
	for _, m := range matches {
		pr.Bytes += s.size(m)
	}

	s.logger.Debug("expanded content pattern", "pattern", pattern, "files", len(matches))
	return pr
}

// expandOutside globs p from its literal base directory and names the
// matches relative to the root.
func (s *Scanner) expandOutside(pr PatternResult, p string) PatternResult {
	base, rest := doublestar.SplitPattern(p)
	dir := filepath.FromSlash(base)

	matches, err := doublestar.Glob(os.DirFS(dir), rest, doublestar.WithFilesOnly())
	if err != nil {
		pr.Err = err
		return pr
	}
	for _, m := range matches {
		full := filepath.Join(dir, filepath.FromSlash(m))
		name := filepath.ToSlash(full)
		if rel, err := filepath.Rel(s.root, full); err == nil && s.root != "" {
			name = filepath.ToSlash(rel)
		}
		pr.Files = append(pr.Files, name)
		pr.Bytes += s.size(name)
	}
	sort.Strings(pr.Files)

	s.logger.Debug("expanded content pattern outside the project root",
		"pattern", pr.Pattern, "base", base, "files", len(pr.Files))
	return pr
}

// escapes reports whether a relative pattern climbs out of the root.
func escapes(p string) bool {
	return p == ".." || strings.HasPrefix(p, "../")
}

// relative rewrites an absolute pattern relative to the scanner root.
// The literal directory prefix of the pattern must lie inside the root.
func (s *Scanner) relative(p string) (string, bool) {
	if s.root == "" {
		return "", false
	}
	base, rest := doublestar.SplitPattern(p)
	rel, err := filepath.Rel(s.root, filepath.FromSlash(base))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return rest, true
	}
	return rel + "/" + rest, true
}

func (s *Scanner) size(name string) int64 {
	var info fs.FileInfo
	var err error
	switch {
	case path.IsAbs(name) || filepath.IsAbs(name):
		info, err = os.Stat(filepath.FromSlash(name))
	case escapes(name):
		info, err = os.Stat(filepath.Join(s.root, filepath.FromSlash(name)))
	default:
		info, err = fs.Stat(s.fsys, name)
	}
	if err != nil {
		return 0
	}
	return info.Size()
}
