package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/pipegen/memory"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	return newApp(memory.New())
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func monolithPayload() map[string]any {
	return map[string]any{
		"architecture":    "MONOLITH",
		"deploy_strategy": "STAGING",
		"components": []map[string]any{
			{"name": "web", "language": "node", "test_command": "npm test", "build_command": "npm run build"},
		},
		"environment": []map[string]any{
			{"name": "APP_ENV", "value": "staging"},
		},
	}
}

func TestGeneratePipeline(t *testing.T) {
	app := testApp(t)

	resp := doJSON(t, app, "POST", "/projects/webshop/pipeline", monolithPayload())
	require.Equal(t, 201, resp.StatusCode)

	body := decodeBody(t, resp)
	cfg, ok := body["configuration"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "webshop", cfg["project"])
	assert.Equal(t, true, cfg["active"])
	assert.Contains(t, cfg["workflow"], "jobs:")
	assert.Contains(t, cfg["workflow"], "run: npm run build")
}

func TestGeneratePipeline_InvalidBody(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("POST", "/projects/webshop/pipeline", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGeneratePipeline_MissingComponents(t *testing.T) {
	app := testApp(t)

	payload := monolithPayload()
	delete(payload, "components")
	resp := doJSON(t, app, "POST", "/projects/webshop/pipeline", payload)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGeneratePipeline_InvalidArchitecture(t *testing.T) {
	app := testApp(t)

	payload := monolithPayload()
	payload["architecture"] = "SERVERLESS"
	resp := doJSON(t, app, "POST", "/projects/webshop/pipeline", payload)
	require.Equal(t, 422, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_ARCHITECTURE", body["code"])
	assert.Equal(t, "architecture", body["field"])
}

func TestGeneratePipeline_WarningsInResponse(t *testing.T) {
	app := testApp(t)

	payload := map[string]any{
		"architecture":    "EXTENSION",
		"deploy_strategy": "STAGING",
		"components": []map[string]any{
			{"name": "sidekick", "language": "typescript", "build_command": "npm run compile"},
		},
	}
	resp := doJSON(t, app, "POST", "/projects/sidekick/pipeline", payload)
	require.Equal(t, 201, resp.StatusCode)

	body := decodeBody(t, resp)
	warnings, ok := body["warnings"].([]any)
	require.True(t, ok)
	require.Len(t, warnings, 1)
	warning := warnings[0].(map[string]any)
	assert.Equal(t, "PACKAGE_ONLY_DEPLOY_IGNORED", warning["code"])
}

func TestGetActivePipeline(t *testing.T) {
	app := testApp(t)

	resp := doJSON(t, app, "GET", "/projects/webshop/pipeline", nil)
	assert.Equal(t, 404, resp.StatusCode)

	doJSON(t, app, "POST", "/projects/webshop/pipeline", monolithPayload())

	resp = doJSON(t, app, "GET", "/projects/webshop/pipeline", nil)
	require.Equal(t, 200, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "webshop", body["project"])
}

func TestGetWorkflowText(t *testing.T) {
	app := testApp(t)
	doJSON(t, app, "POST", "/projects/webshop/pipeline", monolithPayload())

	resp := doJSON(t, app, "GET", "/projects/webshop/pipeline/workflow", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/yaml")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "name: webshop CI")
}

func TestPipelineHistory(t *testing.T) {
	app := testApp(t)
	doJSON(t, app, "POST", "/projects/webshop/pipeline", monolithPayload())

	payload := monolithPayload()
	payload["deploy_strategy"] = "PRODUCTION"
	doJSON(t, app, "POST", "/projects/webshop/pipeline", payload)

	resp := doJSON(t, app, "GET", "/projects/webshop/pipeline/history", nil)
	require.Equal(t, 200, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(raw, &history))
	require.Len(t, history, 2)
	assert.Equal(t, true, history[0]["active"])
	assert.Equal(t, false, history[1]["active"])
}

func TestDeletePipeline(t *testing.T) {
	app := testApp(t)
	doJSON(t, app, "POST", "/projects/webshop/pipeline", monolithPayload())

	resp := doJSON(t, app, "DELETE", "/projects/webshop/pipeline", nil)
	assert.Equal(t, 204, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", "/projects/webshop/pipeline", nil)
	assert.Equal(t, 404, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/projects/webshop/pipeline", nil)
	assert.Equal(t, 404, resp.StatusCode)
}
