package pipegen

import (
	"fmt"
	"strings"
)

const checkoutAction = "actions/checkout@v4"
const uploadArtifactAction = "actions/upload-artifact@v4"

func checkoutStep() Step {
	return Step{Name: "Checkout", Uses: checkoutAction}
}

// setupStep expands a component's language into its toolchain setup step.
// The catalog was consulted during validation, so a miss here is an
// internal-consistency defect, never a user error.
func setupStep(c Component) (Step, error) {
	tc, ok := LookupToolchain(c.Language)
	if !ok {
		return Step{}, internalErr("assembler", "no catalog entry for language %q (component %q)", c.Language, c.Name)
	}
	step := Step{
		Name: fmt.Sprintf("Set up %s for %s", tc.DisplayName, c.Name),
		Uses: tc.SetupAction,
	}
	if tc.VersionKey != "" {
		version := c.Version
		if version == "" {
			version = tc.DefaultVersion
		}
		step.With = append(step.With, Param{Key: tc.VersionKey, Value: version})
	}
	if tc.Distribution != "" {
		step.With = append(step.With, Param{Key: "distribution", Value: tc.Distribution})
	}
	if tc.Cache != "" {
		step.With = append(step.With, Param{Key: "cache", Value: tc.Cache})
	}
	return step, nil
}

// commandStep emits a component's verbatim shell command as one run step.
func commandStep(name, command, directory string) Step {
	return Step{Name: name, Run: command, WorkingDirectory: directory}
}

// phaseSteps expands one component's phase into setup plus command. verb is
// the step-name prefix ("Test" or "Build"). An empty command means the phase
// is omitted entirely for the component, setup included.
func phaseSteps(c Component, verb, command string) ([]Step, error) {
	if command == "" {
		return nil, nil
	}
	setup, err := setupStep(c)
	if err != nil {
		return nil, err
	}
	return []Step{setup, commandStep(verb+" "+c.Name, command, c.Directory)}, nil
}

// packageSteps emits the fixed packaging and artifact-publication steps
// that terminate an EXTENSION job.
func packageSteps(c Component) []Step {
	path := "*.vsix"
	if c.Directory != "" {
		path = c.Directory + "/*.vsix"
	}
	return []Step{
		{
			Name:             "Package extension",
			Run:              "npx --yes @vscode/vsce package",
			WorkingDirectory: c.Directory,
		},
		{
			Name: "Upload packaged extension",
			Uses: uploadArtifactAction,
			With: []Param{
				{Key: "name", Value: c.Name + "-package"},
				{Key: "path", Value: path},
			},
		},
	}
}

// matrixSteps builds the single templated step list a MICROSERVICES matrix
// job runs once per component. Setup steps are emitted once per distinct
// toolchain, guarded by the matrix language field; command steps are
// guarded against empty commands so skipped phases stay skipped per entry.
func matrixSteps(components []Component) ([]Step, error) {
	steps := []Step{checkoutStep()}

	seen := make(map[string]bool)
	for _, c := range components {
		tc, ok := LookupToolchain(c.Language)
		if !ok {
			return nil, internalErr("assembler", "no catalog entry for language %q (component %q)", c.Language, c.Name)
		}
		if seen[tc.ID] {
			continue
		}
		seen[tc.ID] = true

		step := Step{
			Name: "Set up " + tc.DisplayName,
			Uses: tc.SetupAction,
			If:   fmt.Sprintf("matrix.language == '%s'", tc.ID),
		}
		if tc.VersionKey != "" {
			step.With = append(step.With, Param{Key: tc.VersionKey, Value: "${{ matrix.version }}"})
		}
		if tc.Distribution != "" {
			step.With = append(step.With, Param{Key: "distribution", Value: tc.Distribution})
		}
		if tc.Cache != "" {
			step.With = append(step.With, Param{Key: "cache", Value: tc.Cache})
		}
		steps = append(steps, step)
	}

	steps = append(steps,
		Step{
			Name:             "Test ${{ matrix.component }}",
			Run:              "${{ matrix.test_command }}",
			If:               "matrix.test_command != ''",
			WorkingDirectory: "${{ matrix.directory }}",
		},
		Step{
			Name:             "Build ${{ matrix.component }}",
			Run:              "${{ matrix.build_command }}",
			If:               "matrix.build_command != ''",
			WorkingDirectory: "${{ matrix.directory }}",
		},
	)
	return steps, nil
}

// deploySteps resolves a deploy strategy to its fixed step template. The
// descriptor's environment variables are injected into every deploy step
// in declaration order.
func deploySteps(strategy DeployStrategy, projectName string, env []EnvVar) ([]Step, error) {
	params := make([]Param, 0, len(env))
	for _, ev := range env {
		params = append(params, Param{Key: ev.Name, Value: ev.Value})
	}

	var steps []Step
	switch strategy {
	case DeployStaging:
		steps = []Step{
			checkoutStep(),
			{Name: "Deploy to staging", Run: "./scripts/deploy.sh staging"},
		}
	case DeployProduction:
		steps = []Step{
			checkoutStep(),
			{Name: "Deploy to production", Run: "./scripts/deploy.sh production"},
		}
	case DeployDocker:
		steps = []Step{
			checkoutStep(),
			{
				Name: "Log in to container registry",
				Uses: "docker/login-action@v3",
				With: []Param{
					{Key: "username", Value: "${{ secrets.DOCKER_USERNAME }}"},
					{Key: "password", Value: "${{ secrets.DOCKER_PASSWORD }}"},
				},
			},
			{
				Name: "Build and push image",
				Uses: "docker/build-push-action@v6",
				With: []Param{
					{Key: "push", Value: "true"},
					{Key: "tags", Value: slug(projectName) + ":latest"},
				},
			},
		}
	case DeployAWSLambda:
		steps = []Step{
			checkoutStep(),
			{
				Name: "Configure AWS credentials",
				Uses: "aws-actions/configure-aws-credentials@v4",
				With: []Param{
					{Key: "aws-access-key-id", Value: "${{ secrets.AWS_ACCESS_KEY_ID }}"},
					{Key: "aws-secret-access-key", Value: "${{ secrets.AWS_SECRET_ACCESS_KEY }}"},
					{Key: "aws-region", Value: "${{ secrets.AWS_REGION }}"},
				},
			},
			{
				Name: "Update Lambda function",
				Run:  fmt.Sprintf("aws lambda update-function-code --function-name %s --zip-file fileb://function.zip", slug(projectName)),
			},
		}
	default:
		return nil, internalErr("assembler", "no deploy template for strategy %q", string(strategy))
	}

	if len(params) > 0 {
		for i := range steps {
			steps[i].Env = params
		}
	}
	return steps, nil
}

// slug lowercases a project name and replaces spaces so it is usable as an
// image tag or function name.
func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
