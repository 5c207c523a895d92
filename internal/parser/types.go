package parser

// Language identifies a supported source dialect. Anything else is handled
// by the shallow extractor and reported as unknown.
type Language string

const (
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangRust       Language = "rust"
	LangCSS        Language = "css"
	LangHTML       Language = "html"
	LangUnknown    Language = "unknown"
)

// Unit is the caller-supplied input: one file with its raw content already
// loaded. The core never touches the filesystem.
type Unit struct {
	Path         string
	LanguageHint string
	Content      []byte
}

// SourceUnit is the analyzed counterpart of a Unit. Immutable once built.
type SourceUnit struct {
	Path     string    `json:"path"`
	Language Language  `json:"language"`
	Size     int       `json:"size"`
	Lines    int       `json:"lines"`
	Stats    LineStats `json:"stats"`
	IsTest   bool      `json:"is_test"`
}

// LineStats breaks a unit's line count down by kind.
type LineStats struct {
	Code    int `json:"code"`
	Blank   int `json:"blank"`
	Comment int `json:"comment"`
}

type EntityKind int

const (
	KindFunction EntityKind = iota
	KindClass
	KindMethod
)

func (k EntityKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Entity is a function, class, or method extracted from a SourceUnit.
// Complexity follows McCabe: decision points + 1, never below 1.
type Entity struct {
	Name       string     `json:"name"`
	Qualified  string     `json:"qualified"`
	Kind       EntityKind `json:"kind"`
	Unit       string     `json:"unit"`
	StartLine  int        `json:"start_line"`
	EndLine    int        `json:"end_line"`
	Params     []string   `json:"params,omitempty"`
	HasDoc     bool       `json:"has_doc"`
	Complexity int        `json:"complexity"`
	Calls      []string   `json:"calls,omitempty"`
}

// Import is a raw reference from one unit to a module. Classification into
// internal/external happens later in the graph package; parsing only records
// the string as written.
type Import struct {
	Unit     string `json:"unit"`
	Raw      string `json:"raw"`
	Line     int    `json:"line"`
	Relative bool   `json:"relative,omitempty"`
}

// DiagStage tags the pipeline stage that produced a diagnostic.
type DiagStage string

const (
	StageSize    DiagStage = "size"
	StageParse   DiagStage = "parse"
	StageShallow DiagStage = "shallow"
)

type Diagnostic struct {
	Unit    string    `json:"unit"`
	Stage   DiagStage `json:"stage"`
	Message string    `json:"message"`
}

// UnitResult holds everything extracted from a single unit.
type UnitResult struct {
	Source      SourceUnit
	Entities    []Entity
	Imports     []Import
	Diagnostics []Diagnostic
}

// Model is the structural model of the whole input set, in input order.
type Model struct {
	Units       []SourceUnit `json:"units"`
	Entities    []Entity     `json:"entities"`
	Imports     []Import     `json:"imports"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}
