package pipegen

// BuildGraph turns a validated descriptor into its job graph. The mapping
// is deterministic and total: no randomness, no wall-clock reads, and job
// and step order always follow the descriptor's declared component order.
// The descriptor must have passed Validate.
func BuildGraph(d *Descriptor) (*JobGraph, []Warning, error) {
	g := &JobGraph{Workflow: d.ProjectName + " CI"}

	var warnings []Warning
	var err error
	switch d.Architecture {
	case Monolith:
		err = buildMonolith(d, g)
	case Microservices:
		err = buildMicroservices(d, g)
	case Fullstack:
		err = buildFullstack(d, g)
	case Extension:
		warnings, err = buildExtension(d, g)
	default:
		err = internalErr("topology", "no builder for architecture %q", string(d.Architecture))
	}
	if err != nil {
		return nil, nil, err
	}
	return g, warnings, nil
}

// buildMonolith emits the fixed test -> build chain. Both jobs set up every
// component's toolchain in declaration order, so one job may install several
// runtimes. A deploy job is chained after build when a strategy is set.
func buildMonolith(d *Descriptor, g *JobGraph) error {
	test := Job{ID: "test", Steps: []Step{checkoutStep()}}
	for _, c := range d.Components {
		steps, err := phaseSteps(c, "Test", c.TestCommand)
		if err != nil {
			return err
		}
		test.Steps = append(test.Steps, steps...)
	}

	build := Job{ID: "build", Needs: []string{"test"}, Steps: []Step{checkoutStep()}}
	for _, c := range d.Components {
		steps, err := phaseSteps(c, "Build", c.BuildCommand)
		if err != nil {
			return err
		}
		build.Steps = append(build.Steps, steps...)
	}

	g.Jobs = append(g.Jobs, test, build)
	return appendDeployJob(d, g, []string{"build"})
}

// buildMicroservices emits one templated job fanned out over a matrix of
// component names. Matrix instantiations are independent by construction;
// the deploy job takes a single needs edge on the matrix job, which the CI
// host resolves to "all instantiations finished".
func buildMicroservices(d *Descriptor, g *JobGraph) error {
	job := Job{ID: "build"}
	for _, c := range d.Components {
		tc, ok := LookupToolchain(c.Language)
		if !ok {
			return internalErr("topology", "no catalog entry for language %q (component %q)", c.Language, c.Name)
		}
		version := c.Version
		if version == "" {
			version = tc.DefaultVersion
		}
		directory := c.Directory
		if directory == "" {
			directory = "."
		}
		job.Matrix = append(job.Matrix, c.Name)
		job.MatrixInclude = append(job.MatrixInclude, MatrixEntry{
			Component:    c.Name,
			Directory:    directory,
			Language:     tc.ID,
			Version:      version,
			TestCommand:  c.TestCommand,
			BuildCommand: c.BuildCommand,
		})
	}

	steps, err := matrixSteps(d.Components)
	if err != nil {
		return err
	}
	job.Steps = steps

	g.Jobs = append(g.Jobs, job)
	return appendDeployJob(d, g, []string{"build"})
}

// buildFullstack emits one `<component>-build` job per component with
// explicit needs edges from declared dependencies. The deploy job waits on
// the jobs of main-marked components, or on every job when none is marked.
func buildFullstack(d *Descriptor, g *JobGraph) error {
	for _, c := range d.Components {
		job := Job{ID: c.Name + "-build"}
		for _, dep := range c.DependsOn {
			job.Needs = append(job.Needs, dep+"-build")
		}

		setup, err := setupStep(c)
		if err != nil {
			return err
		}
		job.Steps = []Step{checkoutStep(), setup}
		if c.TestCommand != "" {
			job.Steps = append(job.Steps, commandStep("Test "+c.Name, c.TestCommand, c.Directory))
		}
		if c.BuildCommand != "" {
			job.Steps = append(job.Steps, commandStep("Build "+c.Name, c.BuildCommand, c.Directory))
		}
		g.Jobs = append(g.Jobs, job)
	}

	return appendDeployJob(d, g, fullstackGates(d))
}

// fullstackGates picks the needs set for the fullstack deploy job: the
// main-marked component jobs, widened with any job their needs edges do not
// transitively cover, so deploy never starts before every component job has
// succeeded. With no main-marked component, every job gates deploy.
func fullstackGates(d *Descriptor) []string {
	var mains []string
	for _, c := range d.Components {
		if c.Main {
			mains = append(mains, c.Name+"-build")
		}
	}
	if len(mains) == 0 {
		gates := make([]string, 0, len(d.Components))
		for _, c := range d.Components {
			gates = append(gates, c.Name+"-build")
		}
		return gates
	}

	deps := make(map[string][]string, len(d.Components))
	for _, c := range d.Components {
		for _, dep := range c.DependsOn {
			deps[c.Name+"-build"] = append(deps[c.Name+"-build"], dep+"-build")
		}
	}
	covered := make(map[string]bool, len(d.Components))
	var cover func(id string)
	cover = func(id string) {
		if covered[id] {
			return
		}
		covered[id] = true
		for _, dep := range deps[id] {
			cover(dep)
		}
	}
	for _, id := range mains {
		cover(id)
	}

	gates := mains
	for _, c := range d.Components {
		if id := c.Name + "-build"; !covered[id] {
			gates = append(gates, id)
		}
	}
	return gates
}

// buildExtension emits the single packaging job. Packaging architectures
// are terminal: a deploy strategy other than NONE is accepted but ignored
// with a warning, never an error.
func buildExtension(d *Descriptor, g *JobGraph) ([]Warning, error) {
	c := d.Components[0]
	setup, err := setupStep(c)
	if err != nil {
		return nil, err
	}

	job := Job{ID: "package", Steps: []Step{checkoutStep(), setup}}
	if c.TestCommand != "" {
		job.Steps = append(job.Steps, commandStep("Test "+c.Name, c.TestCommand, c.Directory))
	}
	if c.BuildCommand != "" {
		job.Steps = append(job.Steps, commandStep("Build "+c.Name, c.BuildCommand, c.Directory))
	}
	job.Steps = append(job.Steps, packageSteps(c)...)
	g.Jobs = append(g.Jobs, job)

	var warnings []Warning
	if d.DeployStrategy != DeployNone {
		warnings = append(warnings, Warning{
			Code:    WarnPackageOnlyDeployIgnored,
			Message: "deploy strategy " + string(d.DeployStrategy) + " is ignored for EXTENSION pipelines",
		})
	}
	return warnings, nil
}

// appendDeployJob adds the deploy job gated on the given job ids, unless
// the strategy is NONE.
func appendDeployJob(d *Descriptor, g *JobGraph, needs []string) error {
	if d.DeployStrategy == DeployNone {
		return nil
	}
	steps, err := deploySteps(d.DeployStrategy, d.ProjectName, d.Environment)
	if err != nil {
		return err
	}
	g.Jobs = append(g.Jobs, Job{ID: "deploy", Needs: needs, Steps: steps})
	return nil
}
