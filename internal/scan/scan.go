// Package scan walks directory roots and loads the units the analyzer
// consumes. It is the only place in the repo that reads source trees;
// the analysis core itself never touches the filesystem.
package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"codescope/internal/parser"
)

// hardReadCap bounds what Scan will pull into memory per file. The
// analyzer applies its own configured ceiling with a diagnostic; this
// cap just avoids slurping huge binaries during the walk.
const hardReadCap = 10 << 20

var sourceExtensions = map[string]bool{
	".go": true, ".py": true,
	".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".ts": true, ".tsx": true,
	".java": true, ".rs": true,
	".css": true, ".scss": true, ".html": true, ".htm": true,
	".rb": true, ".php": true, ".c": true, ".h": true, ".cpp": true,
	".cs": true, ".kt": true, ".swift": true, ".sh": true,
}

var auxiliaryExtensions = map[string]bool{
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".xml": true,
}

var specialNames = map[string]bool{
	"dockerfile": true, "makefile": true, "go.mod": true,
	"requirements.txt": true, ".dockerignore": true,
}

// Options configures a scan.
type Options struct {
	Roots        []string
	ExcludeDirs  []string
	ExcludeFiles []string

	// ExcludePaths are exact file paths that are never scanned, such as
	// the tool's own report and history outputs when they sit inside a
	// scanned root. Empty entries are ignored.
	ExcludePaths []string
}

// DefaultExcludeDirs are skipped unless overridden.
func DefaultExcludeDirs() []string {
	return []string{".git", "node_modules", "vendor", "__pycache__", ".venv", "dist", "build", "target"}
}

// Scan walks each root and returns the units in walk order, which is
// lexical per directory and therefore stable for a given tree.
func Scan(opts Options) ([]parser.Unit, error) {
	dirGlobs, err := compileGlobs(opts.ExcludeDirs)
	if err != nil {
		return nil, fmt.Errorf("exclude dirs: %w", err)
	}
	fileGlobs, err := compileGlobs(opts.ExcludeFiles)
	if err != nil {
		return nil, fmt.Errorf("exclude files: %w", err)
	}
	excludePaths := make(map[string]bool, len(opts.ExcludePaths))
	for _, p := range opts.ExcludePaths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			excludePaths[abs] = true
		}
	}

	roots := append([]string(nil), opts.Roots...)
	sort.Strings(roots)

	var units []parser.Unit
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}
			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}
			if len(excludePaths) > 0 {
				if abs, err := filepath.Abs(path); err == nil && excludePaths[abs] {
					return nil
				}
			}
			if !interesting(base) {
				return nil
			}
			if info, err := d.Info(); err == nil && info.Size() > hardReadCap {
				slog.Debug("skipping oversized file during scan", "path", path, "size", info.Size())
				return nil
			}
			content, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("failed to read file", "path", path, "error", err)
				return nil
			}
			rel := path
			if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
				rel = filepath.ToSlash(r)
			}
			units = append(units, parser.Unit{Path: rel, Content: content})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %q: %w", root, err)
		}
	}
	return units, nil
}

func interesting(base string) bool {
	lower := strings.ToLower(base)
	if specialNames[lower] {
		return true
	}
	ext := filepath.Ext(lower)
	return sourceExtensions[ext] || auxiliaryExtensions[ext]
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
