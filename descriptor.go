// Package pipegen compiles a declarative project description into a CI
// workflow definition: a directed acyclic graph of jobs with explicit
// dependencies, toolchain setup steps and optional deployment stages.
//
// Generation is a pure function of the Descriptor. The same Descriptor
// always yields byte-identical workflow text, so the output can be
// committed to a repository and diffed on every edit.
package pipegen

// Architecture selects the job-graph topology generated for a project.
type Architecture string

const (
	Monolith      Architecture = "MONOLITH"
	Microservices Architecture = "MICROSERVICES"
	Fullstack     Architecture = "FULLSTACK"
	Extension     Architecture = "EXTENSION"
)

// DeployStrategy selects the deploy-step template appended to the graph.
// DeployNone is a first-class value meaning "no deploy job".
type DeployStrategy string

const (
	DeployNone       DeployStrategy = "NONE"
	DeployStaging    DeployStrategy = "STAGING"
	DeployProduction DeployStrategy = "PRODUCTION"
	DeployDocker     DeployStrategy = "DOCKER"
	DeployAWSLambda  DeployStrategy = "AWS_LAMBDA"
)

// Component is one buildable unit of a project, bound to a toolchain.
// Name doubles as the component's identifier and must be unique within
// a Descriptor. BuildCommand and TestCommand are passed through verbatim;
// an empty command means the phase is skipped for this component.
type Component struct {
	Name         string `json:"name"`
	Language     string `json:"language"`
	Directory    string `json:"directory,omitempty"`
	BuildCommand string `json:"build_command,omitempty"`
	TestCommand  string `json:"test_command,omitempty"`
	// Version pins the toolchain version. Empty means the catalog default.
	Version string `json:"version,omitempty"`
	// Main marks the component whose job gates deployment in FULLSTACK
	// graphs. Ignored by the other architectures.
	Main bool `json:"main,omitempty"`
	// DependsOn lists component names that must build first. Only
	// FULLSTACK topologies turn these into needs edges.
	DependsOn []string `json:"depends_on,omitempty"`
}

// EnvVar is one environment variable injected into deploy-phase steps.
// Environment variables are carried as an ordered list rather than a map:
// duplicate names must be detectable (a map would silently collapse them)
// and rendering must follow declaration order.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Descriptor is one generation request. Component order is preserved into
// generated job and step order. Callers should treat a Descriptor that
// passed Validate as immutable.
type Descriptor struct {
	ProjectName    string         `json:"project_name"`
	Architecture   Architecture   `json:"architecture"`
	DeployStrategy DeployStrategy `json:"deploy_strategy"`
	Components     []Component    `json:"components"`
	Environment    []EnvVar       `json:"environment,omitempty"`
}
