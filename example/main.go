package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meikuraledutech/pipegen"
	"github.com/meikuraledutech/pipegen/memory"
	"github.com/meikuraledutech/pipegen/postgres"
)

func main() {
	ctx := context.Background()

	// The walkthrough runs against the in-memory store by default and
	// against postgres when DATABASE_URL is set.
	var store pipegen.Store = memory.New()
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer pool.Close()
		store = postgres.New(pool)
	}

	if err := store.CreateSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	manager := pipegen.NewManager(store)

	// ── Monolith with two toolchains and a staging deploy ─────────────
	shop := &pipegen.Descriptor{
		ProjectName:    "webshop",
		Architecture:   pipegen.Monolith,
		DeployStrategy: pipegen.DeployStaging,
		Components: []pipegen.Component{
			{Name: "web", Language: "node", Directory: "web", TestCommand: "npm test", BuildCommand: "npm run build"},
			{Name: "api", Language: "java", Directory: "api", TestCommand: "mvn test", BuildCommand: "mvn package"},
		},
		Environment: []pipegen.EnvVar{
			{Name: "APP_ENV", Value: "staging"},
		},
	}

	result, err := manager.Generate(ctx, shop)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	fmt.Println("── webshop workflow ──")
	fmt.Println(result.Configuration.Workflow)

	// ── Regenerate: the first record is superseded, not deleted ───────
	shop.DeployStrategy = pipegen.DeployProduction
	if _, err := manager.Generate(ctx, shop); err != nil {
		log.Fatalf("regenerate: %v", err)
	}

	history, err := manager.History(ctx, "webshop")
	if err != nil {
		log.Fatalf("history: %v", err)
	}
	fmt.Printf("── webshop history (%d records) ──\n", len(history))
	for _, cfg := range history {
		fmt.Printf("  %s active=%v deploy=%s\n", cfg.ID, cfg.Active, cfg.Descriptor.DeployStrategy)
	}

	// ── Microservices fan-out ─────────────────────────────────────────
	platform := &pipegen.Descriptor{
		ProjectName:    "platform",
		Architecture:   pipegen.Microservices,
		DeployStrategy: pipegen.DeployDocker,
		Components: []pipegen.Component{
			{Name: "user-service", Language: "node", Directory: "services/user", TestCommand: "npm test", BuildCommand: "npm run build"},
			{Name: "auth-service", Language: "python", Directory: "services/auth", TestCommand: "pytest", BuildCommand: "python -m build"},
		},
	}
	out, _, err := pipegen.Generate(platform)
	if err != nil {
		log.Fatalf("generate platform: %v", err)
	}
	fmt.Println("── platform workflow ──")
	fmt.Println(string(out))

	// ── Extension packaging: deploy strategies are ignored ────────────
	ext := &pipegen.Descriptor{
		ProjectName:    "sidekick",
		Architecture:   pipegen.Extension,
		DeployStrategy: pipegen.DeployStaging,
		Components: []pipegen.Component{
			{Name: "sidekick", Language: "typescript", TestCommand: "npm test", BuildCommand: "npm run compile"},
		},
	}
	_, warnings, err := pipegen.Generate(ext)
	if err != nil {
		log.Fatalf("generate sidekick: %v", err)
	}
	fmt.Println("── sidekick warnings ──")
	printJSON(warnings)

	// ── Delete: the active record is deactivated, history remains ─────
	if err := manager.Delete(ctx, "webshop"); err != nil {
		log.Fatalf("delete: %v", err)
	}
	if _, err := manager.Active(ctx, "webshop"); err != nil {
		fmt.Printf("webshop after delete: %v\n", err)
	}
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
