package graph

import (
	"testing"

	"codescope/internal/parser"
)

func testResolver(ids ...string) *resolver {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return newResolver(m)
}

func TestResolveGo(t *testing.T) {
	r := testResolver("internal/graph", "internal/parser", "cmd/app")

	cases := []struct {
		raw  string
		kind KindInternalExternal
		tgt  string
	}{
		{"internal/graph", KindInternal, "internal/graph"},
		{"codescope/internal/parser", KindInternal, "internal/parser"},
		{"fmt", KindExternal, "fmt"},
		{"github.com/gobwas/glob", KindExternal, "github.com/gobwas/glob"},
		{"widgets", KindUnresolved, "widgets"},
	}
	for _, tc := range cases {
		kind, tgt := r.resolve(parser.Import{Unit: "cmd/app/main.go", Raw: tc.raw}, parser.LangGo)
		if kind != tc.kind || tgt != tc.tgt {
			t.Errorf("resolveGo(%q) = (%s, %q), want (%s, %q)", tc.raw, kind, tgt, tc.kind, tc.tgt)
		}
	}
}

func TestResolvePythonRelative(t *testing.T) {
	r := testResolver("app/models", "app/util/text")

	cases := []struct {
		unit string
		raw  string
		kind KindInternalExternal
		tgt  string
	}{
		{"app/views.py", ".models", KindInternal, "app/models"},
		{"app/util/html.py", "..models", KindInternal, "app/models"},
		{"app/views.py", ".missing", KindUnresolved, ""},
	}
	for _, tc := range cases {
		imp := parser.Import{Unit: tc.unit, Raw: tc.raw, Relative: true}
		kind, tgt := r.resolve(imp, parser.LangPython)
		if kind != tc.kind || tgt != tc.tgt {
			t.Errorf("resolvePython(%q from %q) = (%s, %q), want (%s, %q)",
				tc.raw, tc.unit, kind, tgt, tc.kind, tc.tgt)
		}
	}
}

func TestResolvePythonAbsolute(t *testing.T) {
	r := testResolver("app/models")

	kind, tgt := r.resolve(parser.Import{Unit: "main.py", Raw: "app.models"}, parser.LangPython)
	if kind != KindInternal || tgt != "app/models" {
		t.Errorf("dotted internal = (%s, %q), want (internal, app/models)", kind, tgt)
	}

	kind, tgt = r.resolve(parser.Import{Unit: "main.py", Raw: "os.path"}, parser.LangPython)
	if kind != KindExternal || tgt != "os" {
		t.Errorf("stdlib = (%s, %q), want (external, os)", kind, tgt)
	}

	kind, tgt = r.resolve(parser.Import{Unit: "main.py", Raw: "requests"}, parser.LangPython)
	if kind != KindExternal || tgt != "requests" {
		t.Errorf("third-party = (%s, %q), want (external, requests)", kind, tgt)
	}
}

func TestResolvePathLike(t *testing.T) {
	r := testResolver("src/components/button", "src/lib")

	cases := []struct {
		unit     string
		raw      string
		relative bool
		kind     KindInternalExternal
		tgt      string
	}{
		{"src/app.ts", "./components/button", true, KindInternal, "src/components/button"},
		{"src/components/form.tsx", "../lib/index", true, KindInternal, "src/lib"},
		{"src/app.ts", "./missing", true, KindUnresolved, ""},
		{"src/app.ts", "react", false, KindExternal, "react"},
		{"src/app.ts", "@scope/pkg/sub", false, KindExternal, "@scope/pkg"},
		{"src/app.ts", "https://cdn.example.com/x.js", false, KindExternal, "https://cdn.example.com/x.js"},
	}
	for _, tc := range cases {
		imp := parser.Import{Unit: tc.unit, Raw: tc.raw, Relative: tc.relative}
		kind, tgt := r.resolve(imp, parser.LangTypeScript)
		if kind != tc.kind || tgt != tc.tgt {
			t.Errorf("resolvePathLike(%q) = (%s, %q), want (%s, %q)", tc.raw, kind, tgt, tc.kind, tc.tgt)
		}
	}
}

func TestResolveJava(t *testing.T) {
	r := testResolver("com/acme/service/Billing")

	kind, tgt := r.resolve(parser.Import{Unit: "com/acme/Main.java", Raw: "com.acme.service.Billing"}, parser.LangJava)
	if kind != KindInternal || tgt != "com/acme/service/Billing" {
		t.Errorf("internal = (%s, %q)", kind, tgt)
	}

	kind, tgt = r.resolve(parser.Import{Unit: "com/acme/Main.java", Raw: "org.slf4j.Logger"}, parser.LangJava)
	if kind != KindExternal || tgt != "org.slf4j" {
		t.Errorf("external = (%s, %q), want (external, org.slf4j)", kind, tgt)
	}
}

func TestResolveRust(t *testing.T) {
	r := testResolver("src/net", "src/net/tcp")

	kind, tgt := r.resolve(parser.Import{Unit: "src/main.rs", Raw: "crate::net::tcp", Relative: true}, parser.LangRust)
	if kind != KindInternal || tgt != "src/net/tcp" {
		t.Errorf("crate path = (%s, %q)", kind, tgt)
	}

	// Trailing item names shrink until a module matches.
	kind, tgt = r.resolve(parser.Import{Unit: "src/main.rs", Raw: "crate::net::tcp::Listener", Relative: true}, parser.LangRust)
	if kind != KindInternal || tgt != "src/net/tcp" {
		t.Errorf("crate item path = (%s, %q)", kind, tgt)
	}

	kind, tgt = r.resolve(parser.Import{Unit: "src/main.rs", Raw: "std::io"}, parser.LangRust)
	if kind != KindExternal || tgt != "std" {
		t.Errorf("stdlib = (%s, %q)", kind, tgt)
	}

	kind, tgt = r.resolve(parser.Import{Unit: "src/main.rs", Raw: "serde::Deserialize"}, parser.LangRust)
	if kind != KindExternal || tgt != "serde" {
		t.Errorf("crate dep = (%s, %q)", kind, tgt)
	}
}
