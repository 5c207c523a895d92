package architecture

import (
	"log/slog"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gobwas/glob"

	"codescope/internal/parser"
)

var specFileGlobs = []glob.Glob{
	glob.MustCompile("**openapi*.{json,yaml,yml}", '/'),
	glob.MustCompile("**swagger*.{json,yaml,yml}", '/'),
	glob.MustCompile("**api-spec*.{json,yaml,yml}", '/'),
}

// probeEndpoints parses OpenAPI documents found among the units and
// returns the total number of declared paths. Documents that fail to
// parse count as zero; an API spec with a syntax error is not a reason
// to abort pattern detection.
func probeEndpoints(units []parser.Unit) int {
	total := 0
	for _, u := range units {
		if !looksLikeSpec(u.Path) {
			continue
		}
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(u.Content)
		if err != nil || doc == nil || doc.Paths == nil {
			slog.Debug("skipping unparseable api document", "path", u.Path, "error", err)
			continue
		}
		total += doc.Paths.Len()
	}
	return total
}

func looksLikeSpec(p string) bool {
	lower := strings.ToLower(p)
	for _, g := range specFileGlobs {
		if g.Match(lower) {
			return true
		}
	}
	return false
}
