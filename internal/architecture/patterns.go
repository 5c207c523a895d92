package architecture

import (
	"fmt"
	"strings"
)

type indicatorKind int

const (
	kindDir indicatorKind = iota
	kindFile
	kindOther
)

// Indicator is one weighted piece of evidence for a pattern. Probe
// returns whether the indicator is satisfied and the justification
// string to report.
type Indicator struct {
	Kind   indicatorKind
	Weight float64
	Probe  func(s *Signals) (bool, string)
}

// Pattern is a declarative pattern hypothesis. MinDirs is the minimum
// number of satisfied directory indicators before the pattern is
// considered at all.
type Pattern struct {
	Name        string
	Description string
	MinDirs     int
	Indicators  []Indicator
}

func dirIndicator(weight float64, names ...string) Indicator {
	return Indicator{
		Kind:   kindDir,
		Weight: weight,
		Probe: func(s *Signals) (bool, string) {
			matched := s.MatchedOf(names...)
			if len(matched) == 0 {
				return false, ""
			}
			return true, "directories: " + strings.Join(matched, ", ")
		},
	}
}

func fileIndicator(weight float64, min int, keywords ...string) Indicator {
	return Indicator{
		Kind:   kindFile,
		Weight: weight,
		Probe: func(s *Signals) (bool, string) {
			n := s.CountFiles(keywords...)
			if n < min {
				return false, ""
			}
			return true, fmt.Sprintf("%d matching file(s)", n)
		},
	}
}

func nameIndicator(weight float64, label string, keywords ...string) Indicator {
	return Indicator{
		Kind:   kindOther,
		Weight: weight,
		Probe: func(s *Signals) (bool, string) {
			if !s.HasAny(keywords...) {
				return false, ""
			}
			return true, label
		},
	}
}

func dirCountIndicator(weight float64, sub string, min int, label string) Indicator {
	return Indicator{
		Kind:   kindDir,
		Weight: weight,
		Probe: func(s *Signals) (bool, string) {
			n := s.CountDirs(sub)
			if n < min {
				return false, ""
			}
			return true, fmt.Sprintf(label, n)
		},
	}
}

func entitySuffixIndicator(weight float64, suffix string) Indicator {
	return Indicator{
		Kind:   kindOther,
		Weight: weight,
		Probe: func(s *Signals) (bool, string) {
			n := s.CountEntitySuffix(suffix)
			if n == 0 {
				return false, ""
			}
			return true, fmt.Sprintf("%d %s-suffixed type(s)", n, suffix)
		},
	}
}

func endpointIndicator(weight float64, min int) Indicator {
	return Indicator{
		Kind:   kindOther,
		Weight: weight,
		Probe: func(s *Signals) (bool, string) {
			if s.Endpoints < min {
				return false, ""
			}
			return true, fmt.Sprintf("%d API endpoint(s) declared", s.Endpoints)
		},
	}
}

// patterns is evaluated in declaration order; that order is also the
// tie break when two patterns score the same confidence.
var patterns = []Pattern{
	{
		Name:        "Simple Modular Structure",
		Description: "pragmatic modular layout (src, utils, lib)",
		MinDirs:     1,
		Indicators: []Indicator{
			dirIndicator(0.3, "src"),
			dirIndicator(0.15, "utils"),
			dirIndicator(0.15, "lib"),
			dirIndicator(0.15, "core"),
			dirIndicator(0.1, "helpers"),
			dirIndicator(0.1, "config"),
			dirIndicator(0.1, "common"),
			dirIndicator(0.1, "shared"),
		},
	},
	{
		Name:        "Feature-Based Architecture",
		Description: "organized by functional features or modules",
		MinDirs:     1,
		Indicators: []Indicator{
			dirIndicator(0.5, "features"),
			dirIndicator(0.5, "modules"),
			dirIndicator(0.4, "packages"),
			dirIndicator(0.4, "apps"),
		},
	},
	{
		Name:        "Basic Layered Architecture",
		Description: "separation into basic layers (services, models, routes)",
		MinDirs:     2,
		Indicators: []Indicator{
			dirIndicator(0.25, "services"),
			dirIndicator(0.2, "routes"),
			dirIndicator(0.2, "api"),
			dirIndicator(0.2, "models"),
			dirIndicator(0.15, "database", "db"),
			dirIndicator(0.1, "middleware"),
			dirIndicator(0.1, "validators"),
			dirIndicator(0.1, "schemas"),
			fileIndicator(0.2, 1, "service", "model", "route", "controller"),
		},
	},
	{
		Name:        "Frontend Standard Structure",
		Description: "conventional frontend project layout",
		MinDirs:     1,
		Indicators: []Indicator{
			dirIndicator(0.3, "components"),
			dirIndicator(0.25, "pages"),
			dirIndicator(0.25, "views"),
			dirIndicator(0.15, "hooks"),
			dirIndicator(0.15, "store", "redux"),
			dirIndicator(0.1, "styles"),
			dirIndicator(0.1, "assets"),
			dirIndicator(0.1, "public", "static"),
			fileIndicator(0.2, 1, ".jsx", ".tsx", ".vue", ".svelte", "component", ".css", ".scss"),
		},
	},
	{
		Name:        "Backend Standard Structure",
		Description: "conventional backend project layout",
		MinDirs:     2,
		Indicators: []Indicator{
			dirIndicator(0.25, "controllers"),
			dirIndicator(0.25, "routes"),
			dirIndicator(0.2, "api"),
			dirIndicator(0.2, "models"),
			dirIndicator(0.15, "middleware"),
			dirIndicator(0.15, "database"),
			dirIndicator(0.1, "migrations"),
			dirIndicator(0.1, "validators"),
			dirIndicator(0.1, "auth"),
			fileIndicator(0.2, 1, "server", "app.py", "main.py", "index.js", "app.js"),
		},
	},
	{
		Name:        "MVC (Model-View-Controller)",
		Description: "clear separation between model, view and controller",
		MinDirs:     2,
		Indicators: []Indicator{
			dirIndicator(0.3, "models", "model"),
			dirIndicator(0.3, "views", "view"),
			dirIndicator(0.3, "controllers", "controller"),
			fileIndicator(0.1, 1, "controller", "model", "view"),
		},
	},
	{
		Name:        "Clean Architecture",
		Description: "layers with dependencies pointing at the domain",
		MinDirs:     3,
		Indicators: []Indicator{
			dirIndicator(0.25, "domain"),
			dirIndicator(0.25, "application"),
			dirIndicator(0.25, "infrastructure"),
			dirIndicator(0.25, "usecases", "use_cases"),
			dirIndicator(0.2, "entities"),
			dirIndicator(0.15, "presentation"),
			fileIndicator(0.2, 1, "port", "adapter", "gateway", "boundary"),
		},
	},
	{
		Name:        "Domain-Driven Design",
		Description: "organized around business domains",
		MinDirs:     3,
		Indicators: []Indicator{
			dirIndicator(0.3, "domain"),
			dirIndicator(0.2, "entities"),
			dirIndicator(0.2, "valueobjects", "value_objects"),
			dirIndicator(0.2, "aggregates"),
			dirIndicator(0.1, "repositories"),
			dirIndicator(0.1, "services"),
			dirIndicator(0.1, "factories"),
			fileIndicator(0.2, 1, "entity", "valueobject", "aggregate", "specification"),
		},
	},
	{
		Name:        "Hexagonal Architecture",
		Description: "ports and adapters around an isolated core",
		MinDirs:     2,
		Indicators: []Indicator{
			dirIndicator(0.4, "ports"),
			dirIndicator(0.4, "adapters"),
			dirIndicator(0.2, "inbound", "outbound"),
			dirIndicator(0.2, "primary", "secondary"),
			fileIndicator(0.2, 1, "port", "adapter", "inbound", "outbound"),
		},
	},
	{
		Name:        "Monorepo Structure",
		Description: "multiple projects in a single repository",
		MinDirs:     1,
		Indicators: []Indicator{
			dirIndicator(0.5, "packages"),
			dirIndicator(0.5, "apps"),
			dirIndicator(0.4, "libs"),
			dirIndicator(0.3, "projects"),
		},
	},
	{
		Name:        "Repository Pattern",
		Description: "data access hidden behind repository abstractions",
		Indicators: []Indicator{
			fileIndicator(0.4, 1, "repository"),
			fileIndicator(0.2, 3, "repository"),
			fileIndicator(0.3, 1, "irepository", "repository_interface", "base_repository"),
			entitySuffixIndicator(0.2, "repository"),
			nameIndicator(0.1, "repositories directory organized", "repositor"),
		},
	},
	{
		Name:        "Microservices",
		Description: "independent, separately deployable services",
		Indicators: []Indicator{
			dirCountIndicator(0.3, "service", 2, "%d service roots"),
			dirCountIndicator(0.2, "service", 3, "%d service roots (three or more)"),
			nameIndicator(0.3, "container tooling present", "docker-compose", "dockerfile", "kubernetes", "k8s", ".dockerignore"),
			nameIndicator(0.2, "gateway or proxy layer", "gateway", "proxy"),
			endpointIndicator(0.2, 1),
		},
	},
	{
		Name:        "Event-Driven Architecture",
		Description: "components communicating through asynchronous events",
		Indicators: []Indicator{
			fileIndicator(0.3, 1, "event", "handler", "listener", "subscriber", "publisher", "consumer"),
			fileIndicator(0.2, 3, "event", "handler", "listener", "subscriber", "publisher", "consumer"),
			nameIndicator(0.3, "message broker references", "kafka", "rabbitmq", "pubsub", "eventbus", "messagebus"),
			nameIndicator(0.2, "event-oriented layout", "event"),
		},
	},
}
