package parser

import (
	"testing"
)

func TestShallowExtractEntities(t *testing.T) {
	src := []byte(`# handle one entry
def handle(entry)
  if entry
    save(entry)
  end
end

def other(x)
  x
end
`)
	result := UnitResult{Source: SourceUnit{Path: "worker.rb"}}
	NewShallowExtractor().Extract(Unit{Path: "worker.rb", Content: src}, &result)

	if len(result.Entities) != 2 {
		t.Fatalf("entities = %v", result.Entities)
	}

	handle := result.Entities[0]
	if handle.Name != "handle" || handle.Kind != KindFunction {
		t.Errorf("first entity = %+v", handle)
	}
	if !handle.HasDoc {
		t.Error("leading comment not treated as doc")
	}
	// One if inside the body.
	if handle.Complexity != 2 {
		t.Errorf("handle complexity = %d, want 2", handle.Complexity)
	}
	if handle.EndLine != 7 {
		t.Errorf("handle end line = %d, want boundary before next def", handle.EndLine)
	}

	if result.Entities[1].Name != "other" || result.Entities[1].HasDoc {
		t.Errorf("second entity = %+v", result.Entities[1])
	}
}

func TestShallowExtractImports(t *testing.T) {
	src := []byte(`#include <stdio.h>
#include "local.h"

int main(void) { return 0; }
`)
	result := UnitResult{Source: SourceUnit{Path: "main.c"}}
	NewShallowExtractor().Extract(Unit{Path: "main.c", Content: src}, &result)

	if len(result.Imports) != 2 {
		t.Fatalf("imports = %v", result.Imports)
	}
	if result.Imports[0].Raw != "stdio.h" || result.Imports[0].Line != 1 {
		t.Errorf("first import = %+v", result.Imports[0])
	}
	if result.Imports[1].Raw != "local.h" {
		t.Errorf("second import = %+v", result.Imports[1])
	}
}

func TestShallowRequireImport(t *testing.T) {
	src := []byte(`const _ = require('lodash')
`)
	result := UnitResult{Source: SourceUnit{Path: "legacy.cjs.txt"}}
	NewShallowExtractor().Extract(Unit{Path: "legacy.cjs.txt", Content: src}, &result)

	if len(result.Imports) != 1 || result.Imports[0].Raw != "lodash" {
		t.Errorf("imports = %v", result.Imports)
	}
}
