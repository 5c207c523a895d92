package graph

import "strings"

// Compact standard-library tables used during import classification. Only
// names that commonly appear in imports are listed; an unknown name still
// classifies as external, it just won't match a stdlib fast path.

var goStdlibList = []string{
	"bufio", "bytes", "context", "crypto", "database/sql", "embed",
	"encoding/json", "encoding/xml", "errors", "flag", "fmt", "io", "io/fs",
	"log", "log/slog", "math", "math/rand", "net", "net/http", "net/url",
	"os", "os/exec", "path", "path/filepath", "reflect", "regexp", "runtime",
	"sort", "strconv", "strings", "sync", "sync/atomic", "testing", "time",
	"unicode", "unsafe",
}

var pythonStdlibList = []string{
	"abc", "argparse", "asyncio", "collections", "contextlib", "copy",
	"dataclasses", "datetime", "enum", "functools", "glob", "hashlib",
	"http", "importlib", "inspect", "io", "itertools", "json", "logging",
	"math", "os", "pathlib", "pickle", "random", "re", "shutil", "socket",
	"sqlite3", "string", "subprocess", "sys", "tempfile", "threading",
	"time", "typing", "unittest", "urllib", "uuid", "warnings",
}

var rustStdlibList = []string{
	"std", "core", "alloc", "proc_macro", "test",
}

var (
	goStdlib     = map[string]bool{}
	pythonStdlib = map[string]bool{}
	rustStdlib   = map[string]bool{}
)

func init() {
	for _, name := range goStdlibList {
		goStdlib[name] = true
		// Base name too: log/slog -> slog.
		parts := strings.Split(name, "/")
		goStdlib[parts[len(parts)-1]] = true
	}
	for _, name := range pythonStdlibList {
		pythonStdlib[name] = true
	}
	for _, name := range rustStdlibList {
		rustStdlib[name] = true
	}
}
