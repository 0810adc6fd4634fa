package pipegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupToolchain_Aliases(t *testing.T) {
	cases := map[string]string{
		"node":       LangNode,
		"nodejs":     LangNode,
		"javascript": LangNode,
		"typescript": LangNode,
		"java":       LangJava,
		"kotlin":     LangJava,
		"python":     LangPython,
		"docker":     LangDocker,
		"container":  LangDocker,
		"react":      LangStatic,
		"vue":        LangStatic,
		"extension":  LangExtension,
	}
	for spelling, want := range cases {
		tc, ok := LookupToolchain(spelling)
		require.True(t, ok, "spelling %q", spelling)
		assert.Equal(t, want, tc.ID, "spelling %q", spelling)
	}
}

func TestLookupToolchain_Unsupported(t *testing.T) {
	_, ok := LookupToolchain("cobol")
	assert.False(t, ok)
	assert.False(t, SupportedLanguage(""))
}

func TestSetupStep_DefaultVersion(t *testing.T) {
	step, err := setupStep(Component{Name: "web", Language: "node"})
	require.NoError(t, err)

	assert.Equal(t, "actions/setup-node@v4", step.Uses)
	assert.Equal(t, []Param{
		{Key: "node-version", Value: "20"},
		{Key: "cache", Value: "npm"},
	}, step.With)
}

func TestSetupStep_PinnedVersion(t *testing.T) {
	step, err := setupStep(Component{Name: "web", Language: "node", Version: "22"})
	require.NoError(t, err)
	assert.Equal(t, Param{Key: "node-version", Value: "22"}, step.With[0])
}

func TestSetupStep_JavaDistribution(t *testing.T) {
	step, err := setupStep(Component{Name: "api", Language: "java"})
	require.NoError(t, err)

	assert.Equal(t, "actions/setup-java@v4", step.Uses)
	assert.Equal(t, []Param{
		{Key: "java-version", Value: "17"},
		{Key: "distribution", Value: "temurin"},
		{Key: "cache", Value: "maven"},
	}, step.With)
}

func TestSetupStep_DockerTakesNoVersion(t *testing.T) {
	step, err := setupStep(Component{Name: "svc", Language: "container", Version: "27"})
	require.NoError(t, err)
	assert.Equal(t, "docker/setup-buildx-action@v3", step.Uses)
	assert.Empty(t, step.With)
}

func TestSetupStep_CatalogMissIsInternal(t *testing.T) {
	// Validation guarantees the language is known; a miss here is a
	// defect, not a user error.
	_, err := setupStep(Component{Name: "svc", Language: "cobol"})
	var internal *InternalError
	require.ErrorAs(t, err, &internal)
}
