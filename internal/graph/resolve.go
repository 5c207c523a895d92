package graph

import (
	"path"
	"regexp"
	"strings"

	"codescope/internal/parser"
	"codescope/internal/shared/util"
)

// moduleID maps a unit path to its canonical module id. Index files
// (__init__.py, index.js, mod.rs) collapse to their directory; Go units
// collapse to their package directory.
func moduleID(unitPath string, lang parser.Language) string {
	p := util.NormalizePatternPath(unitPath)
	ext := path.Ext(p)
	base := strings.TrimSuffix(path.Base(p), ext)
	dir := path.Dir(p)
	if dir == "." {
		dir = ""
	}

	switch lang {
	case parser.LangGo:
		if dir == "" {
			return base
		}
		return dir
	case parser.LangPython:
		if base == "__init__" {
			if dir == "" {
				return base
			}
			return dir
		}
	case parser.LangJavaScript, parser.LangTypeScript:
		if base == "index" && dir != "" {
			return dir
		}
	case parser.LangRust:
		if (base == "mod" || base == "lib") && dir != "" {
			return dir
		}
	}

	return path.Join(dir, base)
}

// resolver classifies raw import strings against the set of known module
// ids. Resolution is project-topology-specific; parsing stays
// language-specific.
type resolver struct {
	ids      map[string]bool // module id -> exists
	suffixes map[string][]string
}

func newResolver(ids map[string]bool) *resolver {
	r := &resolver{
		ids:      ids,
		suffixes: make(map[string][]string),
	}
	// Index every path suffix of each id so namespace-style imports
	// (go package paths, java packages, rust crate paths) can be matched
	// without knowing the project root prefix.
	for id := range ids {
		segs := strings.Split(id, "/")
		for i := 0; i < len(segs); i++ {
			suffix := strings.Join(segs[i:], "/")
			r.suffixes[suffix] = append(r.suffixes[suffix], id)
		}
	}
	return r
}

// bySuffix returns the module id matching the given path suffix, if the
// match is unambiguous.
func (r *resolver) bySuffix(p string) (string, bool) {
	if r.ids[p] {
		return p, true
	}
	matches := r.suffixes[p]
	if len(matches) == 1 {
		return matches[0], true
	}
	return "", false
}

var identifierPath = regexp.MustCompile(`^[\w@][\w\-./@]*$`)

// resolve classifies one import and, for internal imports, returns the
// target module id.
func (r *resolver) resolve(imp parser.Import, lang parser.Language) (KindInternalExternal, string) {
	raw := strings.TrimSpace(imp.Raw)
	if raw == "" {
		return KindUnresolved, ""
	}

	switch lang {
	case parser.LangGo:
		return r.resolveGo(raw)
	case parser.LangPython:
		return r.resolvePython(imp, raw)
	case parser.LangJavaScript, parser.LangTypeScript, parser.LangCSS, parser.LangHTML:
		return r.resolvePathLike(imp, raw)
	case parser.LangJava:
		return r.resolveJava(raw)
	case parser.LangRust:
		return r.resolveRust(imp, raw)
	default:
		return r.resolveFallback(imp, raw)
	}
}

func (r *resolver) resolveGo(raw string) (KindInternalExternal, string) {
	if id, ok := r.bySuffix(raw); ok {
		return KindInternal, id
	}
	// Also try with the first segment (module prefix) stripped.
	if idx := strings.Index(raw, "/"); idx > 0 {
		if id, ok := r.bySuffix(raw[idx+1:]); ok {
			return KindInternal, id
		}
	}
	if goStdlib[raw] {
		return KindExternal, raw
	}
	// A bare single-segment name that is neither stdlib nor a known
	// module is most likely an internal package we failed to map.
	if !strings.Contains(raw, "/") && !strings.Contains(raw, ".") {
		return KindUnresolved, raw
	}
	return KindExternal, raw
}

func (r *resolver) resolvePython(imp parser.Import, raw string) (KindInternalExternal, string) {
	if imp.Relative {
		dots := 0
		for dots < len(raw) && raw[dots] == '.' {
			dots++
		}
		rest := strings.ReplaceAll(raw[dots:], ".", "/")

		base := path.Dir(util.NormalizePatternPath(imp.Unit))
		if base == "." {
			base = ""
		}
		for i := 1; i < dots; i++ {
			base = path.Dir(base)
			if base == "." {
				base = ""
			}
		}

		candidate := path.Join(base, rest)
		if id, ok := r.bySuffix(candidate); ok {
			return KindInternal, id
		}
		// Relative imports cannot be external; the target is simply
		// outside the analyzed set.
		return KindUnresolved, ""
	}

	candidate := strings.ReplaceAll(raw, ".", "/")
	if id, ok := r.bySuffix(candidate); ok {
		return KindInternal, id
	}
	if pythonStdlib[strings.SplitN(raw, ".", 2)[0]] {
		return KindExternal, strings.SplitN(raw, ".", 2)[0]
	}
	if identifierPath.MatchString(raw) {
		return KindExternal, strings.SplitN(raw, ".", 2)[0]
	}
	return KindUnresolved, ""
}

func (r *resolver) resolvePathLike(imp parser.Import, raw string) (KindInternalExternal, string) {
	if imp.Relative || strings.HasPrefix(raw, "/") {
		base := path.Dir(util.NormalizePatternPath(imp.Unit))
		if base == "." {
			base = ""
		}
		joined := util.NormalizePatternPath(path.Join(base, strings.TrimPrefix(raw, "/")))
		joined = strings.TrimSuffix(joined, path.Ext(joined))

		candidates := []string{joined, path.Join(joined, "index")}
		if path.Base(joined) == "index" {
			// An explicit ./lib/index import targets the module that
			// already collapsed to its directory id.
			candidates = append(candidates, path.Dir(joined))
		}
		for _, candidate := range candidates {
			if id, ok := r.bySuffix(candidate); ok {
				return KindInternal, id
			}
		}
		return KindUnresolved, ""
	}

	if strings.Contains(raw, "://") {
		return KindExternal, raw
	}

	// Bare specifier: package name is the first segment, or the first two
	// for scoped packages.
	segs := strings.Split(raw, "/")
	name := segs[0]
	if strings.HasPrefix(name, "@") && len(segs) > 1 {
		name = segs[0] + "/" + segs[1]
	}
	if identifierPath.MatchString(name) {
		return KindExternal, name
	}
	return KindUnresolved, ""
}

func (r *resolver) resolveJava(raw string) (KindInternalExternal, string) {
	candidate := strings.ReplaceAll(strings.TrimSuffix(raw, ".*"), ".", "/")
	if id, ok := r.bySuffix(candidate); ok {
		return KindInternal, id
	}
	segs := strings.SplitN(raw, ".", 3)
	if len(segs) >= 2 {
		return KindExternal, segs[0] + "." + segs[1]
	}
	return KindExternal, raw
}

func (r *resolver) resolveRust(imp parser.Import, raw string) (KindInternalExternal, string) {
	segs := strings.Split(raw, "::")
	if imp.Relative {
		// crate:: / self:: / super:: paths resolve inside the project.
		rest := segs[1:]
		if len(rest) == 0 {
			return KindUnresolved, ""
		}
		candidate := strings.Join(rest, "/")
		for len(rest) > 0 {
			if id, ok := r.bySuffix(candidate); ok {
				return KindInternal, id
			}
			rest = rest[:len(rest)-1]
			candidate = strings.Join(rest, "/")
		}
		return KindUnresolved, ""
	}
	if rustStdlib[segs[0]] {
		return KindExternal, segs[0]
	}
	if id, ok := r.bySuffix(strings.Join(segs, "/")); ok {
		return KindInternal, id
	}
	return KindExternal, segs[0]
}

func (r *resolver) resolveFallback(imp parser.Import, raw string) (KindInternalExternal, string) {
	if imp.Relative {
		return r.resolvePathLike(imp, raw)
	}
	candidate := strings.ReplaceAll(raw, ".", "/")
	if id, ok := r.bySuffix(candidate); ok {
		return KindInternal, id
	}
	if identifierPath.MatchString(raw) {
		return KindExternal, strings.SplitN(raw, "/", 2)[0]
	}
	return KindUnresolved, ""
}
