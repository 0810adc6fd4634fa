package pipegen

import "fmt"

// arity bounds per architecture. max 0 means unbounded.
var arity = map[Architecture]struct{ min, max int }{
	Monolith:      {min: 1},
	Microservices: {min: 2},
	Fullstack:     {min: 1},
	Extension:     {min: 1, max: 1},
}

var deployStrategies = map[DeployStrategy]bool{
	DeployNone:       true,
	DeployStaging:    true,
	DeployProduction: true,
	DeployDocker:     true,
	DeployAWSLambda:  true,
}

// Validate checks the descriptor in a fixed order and fails fast with a
// ConfigError identifying the first offending field. A descriptor that
// passes Validate is safe to hand to BuildGraph; no partial state escapes
// a failed validation.
func (d *Descriptor) Validate() error {
	if d.ProjectName == "" {
		return configErr(CodeEmptyProjectName, "project_name", "must not be empty")
	}
	if _, ok := arity[d.Architecture]; !ok {
		return configErr(CodeInvalidArchitecture, "architecture", "unknown tag %q", string(d.Architecture))
	}
	if !deployStrategies[d.DeployStrategy] {
		return configErr(CodeInvalidDeployStrategy, "deploy_strategy", "unknown tag %q", string(d.DeployStrategy))
	}
	if len(d.Components) == 0 {
		return configErr(CodeNoComponents, "components", "at least one component is required")
	}
	bounds := arity[d.Architecture]
	if len(d.Components) < bounds.min || (bounds.max > 0 && len(d.Components) > bounds.max) {
		return configErr(CodeArityMismatch, "components",
			"architecture %s does not admit %d component(s)", d.Architecture, len(d.Components))
	}
	if err := d.validateComponents(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(d.Environment))
	for _, ev := range d.Environment {
		if seen[ev.Name] {
			return configErr(CodeDuplicateEnvKey, "environment", "duplicate key %q", ev.Name)
		}
		seen[ev.Name] = true
	}
	return nil
}

func (d *Descriptor) validateComponents() error {
	names := make(map[string]bool, len(d.Components))
	for i, c := range d.Components {
		field := fmt.Sprintf("components[%d]", i)
		if c.Name == "" {
			return configErr(CodeInvalidComponentName, field+".name", "must not be empty")
		}
		if names[c.Name] {
			return configErr(CodeDuplicateComponent, field+".name", "duplicate component %q", c.Name)
		}
		names[c.Name] = true
		if !SupportedLanguage(c.Language) {
			return configErr(CodeUnsupportedLanguage, field+".language",
				"component %q uses unsupported language %q", c.Name, c.Language)
		}
	}
	for i, c := range d.Components {
		for _, dep := range c.DependsOn {
			if !names[dep] {
				return configErr(CodeUnresolvedDependency, fmt.Sprintf("components[%d].depends_on", i),
					"component %q depends on unknown component %q", c.Name, dep)
			}
			if dep == c.Name {
				return configErr(CodeDependencyCycle, fmt.Sprintf("components[%d].depends_on", i),
					"component %q depends on itself", c.Name)
			}
		}
	}
	return d.validateAcyclicDependencies()
}

// validateAcyclicDependencies runs a three-color DFS over the declared
// component dependencies.
func (d *Descriptor) validateAcyclicDependencies() error {
	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)

	adj := make(map[string][]string, len(d.Components))
	state := make(map[string]int, len(d.Components))
	for _, c := range d.Components {
		adj[c.Name] = c.DependsOn
		state[c.Name] = unvisited
	}

	var dfs func(name string) bool
	dfs = func(name string) bool {
		state[name] = visiting
		for _, next := range adj[name] {
			switch state[next] {
			case visiting:
				return true
			case unvisited:
				if dfs(next) {
					return true
				}
			}
		}
		state[name] = visited
		return false
	}

	for _, c := range d.Components {
		if state[c.Name] == unvisited {
			if dfs(c.Name) {
				return configErr(CodeDependencyCycle, "components",
					"component dependencies contain a cycle involving %q", c.Name)
			}
		}
	}
	return nil
}
