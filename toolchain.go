package pipegen

// Toolchain is one entry of the language catalog: the setup action for a
// language family plus its defaults. The catalog is process-wide, read-only
// data with no lifecycle beyond init.
type Toolchain struct {
	// ID is the canonical language identifier aliases normalize to.
	ID string
	// SetupAction is the workflow action that installs the toolchain.
	SetupAction string
	// DisplayName labels generated setup steps.
	DisplayName string
	// VersionKey is the `with:` key carrying the toolchain version.
	// Empty means the setup action takes no version input.
	VersionKey string
	// DefaultVersion is used when the component pins no version.
	DefaultVersion string
	// Cache is the dependency-cache hint passed to the setup action.
	Cache string
	// Distribution is an extra `with:` input some setup actions require
	// (the Java action refuses to run without one).
	Distribution string
}

// Canonical language identifiers.
const (
	LangNode      = "nodejs"
	LangJava      = "java"
	LangPython    = "python"
	LangDocker    = "docker"
	LangStatic    = "static"
	LangExtension = "extension"
)

var toolchains = map[string]Toolchain{
	LangNode: {
		ID:             LangNode,
		SetupAction:    "actions/setup-node@v4",
		DisplayName:    "Node.js",
		VersionKey:     "node-version",
		DefaultVersion: "20",
		Cache:          "npm",
	},
	LangJava: {
		ID:             LangJava,
		SetupAction:    "actions/setup-java@v4",
		DisplayName:    "Java",
		VersionKey:     "java-version",
		DefaultVersion: "17",
		Cache:          "maven",
		Distribution:   "temurin",
	},
	LangPython: {
		ID:             LangPython,
		SetupAction:    "actions/setup-python@v5",
		DisplayName:    "Python",
		VersionKey:     "python-version",
		DefaultVersion: "3.12",
		Cache:          "pip",
	},
	LangDocker: {
		ID:          LangDocker,
		SetupAction: "docker/setup-buildx-action@v3",
		DisplayName: "Docker Buildx",
	},
	LangStatic: {
		ID:             LangStatic,
		SetupAction:    "actions/setup-node@v4",
		DisplayName:    "Node.js",
		VersionKey:     "node-version",
		DefaultVersion: "20",
		Cache:          "npm",
	},
	LangExtension: {
		ID:             LangExtension,
		SetupAction:    "actions/setup-node@v4",
		DisplayName:    "Node.js",
		VersionKey:     "node-version",
		DefaultVersion: "20",
		Cache:          "npm",
	},
}

// aliases maps accepted language spellings to canonical identifiers.
var aliases = map[string]string{
	"node":        LangNode,
	"nodejs":      LangNode,
	"javascript":  LangNode,
	"typescript":  LangNode,
	"java":        LangJava,
	"kotlin":      LangJava,
	"python":      LangPython,
	"python3":     LangPython,
	"docker":      LangDocker,
	"container":   LangDocker,
	"static":      LangStatic,
	"static-site": LangStatic,
	"react":       LangStatic,
	"vue":         LangStatic,
	"angular":     LangStatic,
	"extension":   LangExtension,
	"vscode":      LangExtension,
}

// LookupToolchain resolves a language spelling (canonical or alias) to its
// catalog entry. The boolean reports whether the language is supported.
func LookupToolchain(language string) (Toolchain, bool) {
	id, ok := aliases[language]
	if !ok {
		return Toolchain{}, false
	}
	tc, ok := toolchains[id]
	return tc, ok
}

// SupportedLanguage reports whether the catalog recognizes the spelling.
func SupportedLanguage(language string) bool {
	_, ok := LookupToolchain(language)
	return ok
}
