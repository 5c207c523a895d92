package architecture

import "strings"

var typeLabels = []struct {
	keyword string
	label   string
}{
	{"Microservices", "Distributed Architecture"},
	{"Monorepo", "Monorepo Multi-Project"},
	{"Event-Driven", "Event-Driven Architecture"},
	{"MVC", "Traditional MVC Architecture"},
	{"Feature-Based", "Feature-Based Modular Architecture"},
	{"Frontend Standard", "Frontend Application Structure"},
	{"Backend Standard", "Backend API Structure"},
	{"Simple Modular", "Simple Modular Structure"},
}

var domainCentric = []string{"Clean Architecture", "Hexagonal", "Domain-Driven"}

var complexPatterns = []string{"Clean Architecture", "Domain-Driven", "Hexagonal", "Microservices", "Event-Driven"}

var simplePatterns = []string{"Simple Modular", "Basic Layered", "Frontend Standard", "Backend Standard"}

func classifyType(detected []Detected) string {
	if len(detected) == 0 {
		return "Unclassified"
	}
	for _, d := range detected {
		for _, dc := range domainCentric {
			if strings.Contains(d.Name, dc) {
				return "Domain-Centric Architecture"
			}
		}
	}
	primary := detected[0].Name
	for _, tl := range typeLabels {
		if strings.Contains(primary, tl.keyword) {
			return tl.label
		}
	}
	for _, d := range detected {
		if strings.Contains(d.Name, "Layered") {
			return "Layered Architecture"
		}
	}
	return "Custom/Mixed Architecture"
}

func assessComplexity(detected []Detected) string {
	if len(detected) == 0 {
		return "Unknown"
	}
	primary := detected[0]

	hasComplex := false
	for _, d := range detected {
		for _, cp := range complexPatterns {
			if strings.Contains(d.Name, cp) {
				hasComplex = true
			}
		}
	}
	isSimple := false
	for _, sp := range simplePatterns {
		if strings.Contains(primary.Name, sp) {
			isSimple = true
		}
	}

	switch {
	case hasComplex && primary.Confidence > 0.7:
		return "High (Enterprise-level)"
	case hasComplex || len(detected) >= 4:
		return "Medium-High (Structured)"
	case len(detected) >= 2 && primary.Confidence > 0.6:
		return "Medium (Organized)"
	case isSimple:
		return "Low-Medium (Simple & Pragmatic)"
	default:
		return "Low (Basic)"
	}
}
