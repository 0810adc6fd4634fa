package main

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/meikuraledutech/pipegen"
)

var validate = validator.New()

// generateRequest is the wire payload for pipeline generation. The project
// name comes from the URL. Payload shape is checked here; the semantic
// rules (tag sets, arity, dependencies) belong to the descriptor.
type generateRequest struct {
	Architecture   string             `json:"architecture"`
	DeployStrategy string             `json:"deploy_strategy"`
	Components     []componentPayload `json:"components" validate:"required,min=1,dive"`
	Environment    []envPayload       `json:"environment" validate:"dive"`
}

type componentPayload struct {
	Name         string   `json:"name" validate:"required"`
	Language     string   `json:"language" validate:"required"`
	Directory    string   `json:"directory"`
	BuildCommand string   `json:"build_command"`
	TestCommand  string   `json:"test_command"`
	Version      string   `json:"version"`
	Main         bool     `json:"main"`
	DependsOn    []string `json:"depends_on"`
}

type envPayload struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value"`
}

func (r *generateRequest) descriptor(project string) *pipegen.Descriptor {
	d := &pipegen.Descriptor{
		ProjectName:    project,
		Architecture:   pipegen.Architecture(r.Architecture),
		DeployStrategy: pipegen.DeployStrategy(r.DeployStrategy),
	}
	for _, c := range r.Components {
		d.Components = append(d.Components, pipegen.Component{
			Name:         c.Name,
			Language:     c.Language,
			Directory:    c.Directory,
			BuildCommand: c.BuildCommand,
			TestCommand:  c.TestCommand,
			Version:      c.Version,
			Main:         c.Main,
			DependsOn:    c.DependsOn,
		})
	}
	for _, ev := range r.Environment {
		d.Environment = append(d.Environment, pipegen.EnvVar{Name: ev.Name, Value: ev.Value})
	}
	return d
}

// newApp wires the HTTP routes over a lifecycle manager.
func newApp(store pipegen.Store) *fiber.App {
	manager := pipegen.NewManager(store)
	app := fiber.New()

	// ── Schema ────────────────────────────────────────────────────────
	app.Post("/schema", func(c fiber.Ctx) error {
		if err := store.CreateSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema created"})
	})

	app.Delete("/schema", func(c fiber.Ctx) error {
		if err := store.DropSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema dropped"})
	})

	// ── Pipeline lifecycle ────────────────────────────────────────────
	app.Post("/projects/:project/pipeline", func(c fiber.Ctx) error {
		var req generateRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		result, err := manager.Generate(c.Context(), req.descriptor(c.Params("project")))
		if err != nil {
			return configError(c, err)
		}
		return c.Status(201).JSON(result)
	})

	app.Get("/projects/:project/pipeline", func(c fiber.Ctx) error {
		cfg, err := manager.Active(c.Context(), c.Params("project"))
		if err != nil {
			return configError(c, err)
		}
		return c.JSON(cfg)
	})

	app.Get("/projects/:project/pipeline/workflow", func(c fiber.Ctx) error {
		cfg, err := manager.Active(c.Context(), c.Params("project"))
		if err != nil {
			return configError(c, err)
		}
		c.Set("Content-Type", "text/yaml; charset=utf-8")
		return c.SendString(cfg.Workflow)
	})

	app.Get("/projects/:project/pipeline/history", func(c fiber.Ctx) error {
		configs, err := manager.History(c.Context(), c.Params("project"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(configs)
	})

	app.Delete("/projects/:project/pipeline", func(c fiber.Ctx) error {
		if err := manager.Delete(c.Context(), c.Params("project")); err != nil {
			return configError(c, err)
		}
		return c.SendStatus(204)
	})

	return app
}

// configError maps core errors to HTTP statuses: descriptor problems are
// the caller's to fix (422), a missing active record is 404, anything else
// is a server fault.
func configError(c fiber.Ctx, err error) error {
	var cfgErr *pipegen.ConfigError
	if errors.As(err, &cfgErr) {
		return c.Status(422).JSON(fiber.Map{
			"error": cfgErr.Error(),
			"code":  cfgErr.Code,
			"field": cfgErr.Field,
		})
	}
	if errors.Is(err, pipegen.ErrNoActiveConfiguration) {
		return c.Status(404).JSON(fiber.Map{"error": "no active configuration"})
	}
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}
