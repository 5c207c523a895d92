package graph

import (
	"encoding/json"
	"encoding/xml"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"codescope/internal/parser"
)

// DeclaredDependency is a dependency declared in a build manifest,
// as opposed to one observed in import statements.
type DeclaredDependency struct {
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	Source   string `json:"source"`
	Manifest string `json:"manifest"`
}

var requirementLine = regexp.MustCompile(`^([A-Za-z0-9._-]+)\s*(?:\[[^\]]*\])?\s*((?:==|>=|<=|~=|!=|>|<)\s*[^\s;#]+)?`)

// parseManifests scans the raw unit set for known build manifests and
// collects their declared dependencies. Malformed manifests are skipped;
// a broken package.json is a finding for the quality pass, not a reason
// to abort the graph.
func parseManifests(units []parser.Unit) []DeclaredDependency {
	var out []DeclaredDependency
	for _, u := range units {
		base := path.Base(u.Path)
		switch base {
		case "requirements.txt":
			out = append(out, parseRequirements(u)...)
		case "package.json":
			out = append(out, parsePackageJSON(u)...)
		case "go.mod":
			out = append(out, parseGoMod(u)...)
		case "pom.xml":
			out = append(out, parsePomXML(u)...)
		case "pyproject.toml":
			out = append(out, parsePyproject(u)...)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Manifest != out[j].Manifest {
			return out[i].Manifest < out[j].Manifest
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Source < out[j].Source
	})
	return out
}

func parseRequirements(u parser.Unit) []DeclaredDependency {
	var deps []DeclaredDependency
	for _, line := range strings.Split(string(u.Content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		m := requirementLine.FindStringSubmatch(line)
		if m == nil || m[1] == "" {
			continue
		}
		deps = append(deps, DeclaredDependency{
			Name:     m[1],
			Version:  strings.TrimSpace(m[2]),
			Source:   "pip",
			Manifest: u.Path,
		})
	}
	return deps
}

func parsePackageJSON(u parser.Unit) []DeclaredDependency {
	var doc struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(u.Content, &doc); err != nil {
		return nil
	}
	var deps []DeclaredDependency
	for name, version := range doc.Dependencies {
		deps = append(deps, DeclaredDependency{Name: name, Version: version, Source: "npm", Manifest: u.Path})
	}
	for name, version := range doc.DevDependencies {
		deps = append(deps, DeclaredDependency{Name: name, Version: version, Source: "npm-dev", Manifest: u.Path})
	}
	return deps
}

func parseGoMod(u parser.Unit) []DeclaredDependency {
	var deps []DeclaredDependency
	inBlock := false
	for _, line := range strings.Split(string(u.Content), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "require ("):
			inBlock = true
			continue
		case inBlock && line == ")":
			inBlock = false
			continue
		case strings.HasPrefix(line, "require "):
			line = strings.TrimPrefix(line, "require ")
		case !inBlock:
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || strings.HasPrefix(fields[0], "//") {
			continue
		}
		source := "gomod"
		if len(fields) > 2 && strings.Contains(line, "// indirect") {
			source = "gomod-indirect"
		}
		deps = append(deps, DeclaredDependency{
			Name:     fields[0],
			Version:  fields[1],
			Source:   source,
			Manifest: u.Path,
		})
	}
	return deps
}

func parsePomXML(u parser.Unit) []DeclaredDependency {
	var doc struct {
		Dependencies struct {
			Dependency []struct {
				GroupID    string `xml:"groupId"`
				ArtifactID string `xml:"artifactId"`
				Version    string `xml:"version"`
			} `xml:"dependency"`
		} `xml:"dependencies"`
	}
	if err := xml.Unmarshal(u.Content, &doc); err != nil {
		return nil
	}
	var deps []DeclaredDependency
	for _, d := range doc.Dependencies.Dependency {
		if d.ArtifactID == "" {
			continue
		}
		name := d.ArtifactID
		if d.GroupID != "" {
			name = d.GroupID + ":" + d.ArtifactID
		}
		deps = append(deps, DeclaredDependency{
			Name:     name,
			Version:  d.Version,
			Source:   "maven",
			Manifest: u.Path,
		})
	}
	return deps
}

func parsePyproject(u parser.Unit) []DeclaredDependency {
	var doc struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(u.Content, &doc); err != nil {
		return nil
	}
	var deps []DeclaredDependency
	for _, line := range doc.Project.Dependencies {
		m := requirementLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil || m[1] == "" {
			continue
		}
		deps = append(deps, DeclaredDependency{
			Name:     m[1],
			Version:  strings.TrimSpace(m[2]),
			Source:   "pyproject",
			Manifest: u.Path,
		})
	}
	for name := range doc.Tool.Poetry.Dependencies {
		if strings.EqualFold(name, "python") {
			continue
		}
		deps = append(deps, DeclaredDependency{Name: name, Source: "poetry", Manifest: u.Path})
	}
	return deps
}
