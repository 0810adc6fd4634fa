package pipegen

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalWorkflow renders a job graph as GitHub-Actions workflow YAML.
// The document is assembled from an explicit node tree, never from Go maps,
// so key order is exactly the order stored in the graph and the output is
// byte-identical across runs. Graph invariants are re-checked before
// rendering; a violation surfaces as an InternalError.
func MarshalWorkflow(g *JobGraph) ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	doc := mapping(
		str("name"), str(g.Workflow),
		str("on"), mapping(
			str("push"), mapping(str("branches"), flowSeq(str("main"))),
			str("pull_request"), mapping(str("branches"), flowSeq(str("main"))),
		),
		str("jobs"), jobsNode(g),
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("pipegen: encode workflow: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("pipegen: encode workflow: %w", err)
	}
	return buf.Bytes(), nil
}

func jobsNode(g *JobGraph) *yaml.Node {
	jobs := mapping()
	for i := range g.Jobs {
		j := &g.Jobs[i]
		jobs.Content = append(jobs.Content, str(j.ID), jobNode(j))
	}
	return jobs
}

func jobNode(j *Job) *yaml.Node {
	node := mapping(str("runs-on"), str("ubuntu-latest"))

	if len(j.Needs) > 0 {
		needs := flowSeq()
		for _, n := range j.Needs {
			needs.Content = append(needs.Content, str(n))
		}
		node.Content = append(node.Content, str("needs"), needs)
	}

	if len(j.Matrix) > 0 {
		axis := flowSeq()
		for _, name := range j.Matrix {
			axis.Content = append(axis.Content, str(name))
		}
		include := seq()
		for _, e := range j.MatrixInclude {
			include.Content = append(include.Content, mapping(
				str("component"), str(e.Component),
				str("directory"), str(e.Directory),
				str("language"), str(e.Language),
				str("version"), str(e.Version),
				str("test_command"), str(e.TestCommand),
				str("build_command"), str(e.BuildCommand),
			))
		}
		node.Content = append(node.Content,
			str("strategy"), mapping(
				str("matrix"), mapping(
					str("component"), axis,
					str("include"), include,
				),
			),
		)
	}

	steps := seq()
	for i := range j.Steps {
		steps.Content = append(steps.Content, stepNode(&j.Steps[i]))
	}
	node.Content = append(node.Content, str("steps"), steps)
	return node
}

func stepNode(s *Step) *yaml.Node {
	node := mapping(str("name"), str(s.Name))
	if s.Uses != "" {
		node.Content = append(node.Content, str("uses"), str(s.Uses))
	}
	if s.Run != "" {
		node.Content = append(node.Content, str("run"), str(s.Run))
	}
	if s.If != "" {
		node.Content = append(node.Content, str("if"), str(s.If))
	}
	if s.WorkingDirectory != "" {
		node.Content = append(node.Content, str("working-directory"), str(s.WorkingDirectory))
	}
	if len(s.With) > 0 {
		node.Content = append(node.Content, str("with"), paramsNode(s.With))
	}
	if len(s.Env) > 0 {
		node.Content = append(node.Content, str("env"), paramsNode(s.Env))
	}
	return node
}

func paramsNode(params []Param) *yaml.Node {
	node := mapping()
	for _, p := range params {
		node.Content = append(node.Content, str(p.Key), str(p.Value))
	}
	return node
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func mapping(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: pairs}
}

func seq(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

func flowSeq(items ...*yaml.Node) *yaml.Node {
	n := seq(items...)
	n.Style = yaml.FlowStyle
	return n
}
