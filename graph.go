package pipegen

// Param is one ordered key/value pair in a step's `with:` or `env:` block.
// Ordered slices keep rendering deterministic.
type Param struct {
	Key   string
	Value string
}

// Step is one concrete workflow step. Exactly one of Uses or Run is set.
type Step struct {
	Name             string
	Uses             string
	Run              string
	If               string
	WorkingDirectory string
	With             []Param
	Env              []Param
}

// MatrixEntry is one fan-out instantiation of a matrix job, carrying the
// per-component fields its steps reference.
type MatrixEntry struct {
	Component    string
	Directory    string
	Language     string
	Version      string
	TestCommand  string
	BuildCommand string
}

// Job is one node of the workflow graph.
type Job struct {
	ID    string
	Needs []string
	Steps []Step
	// Matrix is the fan-out axis (component names) for matrix jobs.
	Matrix []string
	// MatrixInclude carries the per-entry fields backing Matrix.
	MatrixInclude []MatrixEntry
}

// JobGraph is the compiler's intermediate output: an ordered list of jobs
// with explicit needs edges. Job order follows the descriptor's declared
// component order, so two builds of the same descriptor are identical.
type JobGraph struct {
	Workflow string
	Jobs     []Job
}

// job returns the job with the given id, or nil.
func (g *JobGraph) job(id string) *Job {
	for i := range g.Jobs {
		if g.Jobs[i].ID == id {
			return &g.Jobs[i]
		}
	}
	return nil
}

// Validate checks the graph invariants the serializer relies on: every
// needs reference resolves to a job in the graph, and the needs relation is
// acyclic. A violation is a defect in the topology builder, reported as an
// InternalError rather than a ConfigError.
func (g *JobGraph) Validate() error {
	ids := make(map[string]bool, len(g.Jobs))
	for _, j := range g.Jobs {
		if ids[j.ID] {
			return internalErr("graph", "duplicate job id %q", j.ID)
		}
		ids[j.ID] = true
	}
	adj := make(map[string][]string, len(g.Jobs))
	for _, j := range g.Jobs {
		for _, need := range j.Needs {
			if !ids[need] {
				return internalErr("graph", "job %q needs unknown job %q", j.ID, need)
			}
			adj[need] = append(adj[need], j.ID)
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)

	state := make(map[string]int, len(g.Jobs))
	var dfs func(id string) bool
	dfs = func(id string) bool {
		state[id] = visiting
		for _, next := range adj[id] {
			switch state[next] {
			case visiting:
				return true
			case unvisited:
				if dfs(next) {
					return true
				}
			}
		}
		state[id] = visited
		return false
	}

	for _, j := range g.Jobs {
		if state[j.ID] == unvisited {
			if dfs(j.ID) {
				return internalErr("graph", "needs relation contains a cycle")
			}
		}
	}

	return nil
}
