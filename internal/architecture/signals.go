package architecture

import (
	"path"
	"strings"

	"codescope/internal/parser"
	"codescope/internal/shared/util"
)

// Signals are the lowercased naming facts the pattern indicators probe.
// Built once per run from the unit paths so every indicator sees the same
// view of the tree.
type Signals struct {
	Dirs      []string
	Files     []string
	Entities  []string
	Endpoints int

	dirSet   map[string]bool
	combined string
}

// BuildSignals derives folder and file naming signals from the raw unit
// set, collects entity names from the structural model, and probes any
// OpenAPI documents among the units. model may be nil.
func BuildSignals(units []parser.Unit, model *parser.Model) *Signals {
	dirSet := make(map[string]bool)
	fileSet := make(map[string]bool)

	for _, u := range units {
		p := strings.ToLower(util.NormalizePatternPath(u.Path))
		fileSet[path.Base(p)] = true
		dir := path.Dir(p)
		for dir != "." && dir != "/" && dir != "" {
			dirSet[path.Base(dir)] = true
			dir = path.Dir(dir)
		}
	}

	var entities []string
	if model != nil {
		entities = make([]string, 0, len(model.Entities))
		for _, e := range model.Entities {
			entities = append(entities, strings.ToLower(e.Name))
		}
	}

	s := &Signals{
		Dirs:     util.SortedStringKeys(dirSet),
		Files:    util.SortedStringKeys(fileSet),
		Entities: entities,
		dirSet:   dirSet,
	}
	s.combined = strings.Join(s.Dirs, " ") + " " + strings.Join(s.Files, " ")
	s.Endpoints = probeEndpoints(units)
	return s
}

// HasDir reports whether any directory segment contains the substring.
func (s *Signals) HasDir(sub string) bool {
	if s.dirSet[sub] {
		return true
	}
	for _, d := range s.Dirs {
		if strings.Contains(d, sub) {
			return true
		}
	}
	return false
}

// CountDirs counts directory segments containing the substring.
func (s *Signals) CountDirs(sub string) int {
	n := 0
	for _, d := range s.Dirs {
		if strings.Contains(d, sub) {
			n++
		}
	}
	return n
}

// CountFiles counts file names containing any of the keywords.
func (s *Signals) CountFiles(keywords ...string) int {
	n := 0
	for _, f := range s.Files {
		for _, kw := range keywords {
			if strings.Contains(f, kw) {
				n++
				break
			}
		}
	}
	return n
}

// CountEntitySuffix counts extracted entities whose name ends with the
// suffix.
func (s *Signals) CountEntitySuffix(suffix string) int {
	n := 0
	for _, e := range s.Entities {
		if strings.HasSuffix(e, suffix) {
			n++
		}
	}
	return n
}

// HasAny reports whether any keyword appears anywhere in the tree's
// combined naming string.
func (s *Signals) HasAny(keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s.combined, kw) {
			return true
		}
	}
	return false
}

// MatchedOf returns the subset of names that match some directory
// segment, in the order given.
func (s *Signals) MatchedOf(names ...string) []string {
	var out []string
	for _, n := range names {
		if s.HasDir(n) {
			out = append(out, n)
		}
	}
	return out
}
