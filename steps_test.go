package pipegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploySteps_Staging(t *testing.T) {
	steps, err := deploySteps(DeployStaging, "webshop", nil)
	require.NoError(t, err)

	require.Len(t, steps, 2)
	assert.Equal(t, checkoutAction, steps[0].Uses)
	assert.Equal(t, "./scripts/deploy.sh staging", steps[1].Run)
	assert.Empty(t, steps[1].Env)
}

func TestDeploySteps_Production(t *testing.T) {
	steps, err := deploySteps(DeployProduction, "webshop", nil)
	require.NoError(t, err)
	assert.Equal(t, "./scripts/deploy.sh production", steps[1].Run)
}

func TestDeploySteps_Docker(t *testing.T) {
	steps, err := deploySteps(DeployDocker, "Web Shop", nil)
	require.NoError(t, err)

	require.Len(t, steps, 3)
	assert.Equal(t, "docker/login-action@v3", steps[1].Uses)
	assert.Equal(t, "docker/build-push-action@v6", steps[2].Uses)
	// The project name is slugged into the image tag.
	assert.Contains(t, steps[2].With, Param{Key: "tags", Value: "web-shop:latest"})
}

func TestDeploySteps_AWSLambda(t *testing.T) {
	steps, err := deploySteps(DeployAWSLambda, "webshop", nil)
	require.NoError(t, err)

	require.Len(t, steps, 2)
	assert.Equal(t, "aws-actions/configure-aws-credentials@v4", steps[1].Uses)
	assert.Contains(t, steps[1].Run, "aws lambda update-function-code")
	assert.Contains(t, steps[1].Run, "--function-name webshop")
}

func TestDeploySteps_EnvironmentInjectedIntoEveryStep(t *testing.T) {
	env := []EnvVar{
		{Name: "APP_ENV", Value: "staging"},
		{Name: "REGION", Value: "eu-west-1"},
	}
	steps, err := deploySteps(DeployStaging, "webshop", env)
	require.NoError(t, err)

	want := []Param{
		{Key: "APP_ENV", Value: "staging"},
		{Key: "REGION", Value: "eu-west-1"},
	}
	for _, s := range steps {
		assert.Equal(t, want, s.Env, "step %q", s.Name)
	}
}

func TestDeploySteps_NoneHasNoTemplate(t *testing.T) {
	_, err := deploySteps(DeployNone, "webshop", nil)
	var internal *InternalError
	require.ErrorAs(t, err, &internal)
}

func TestPackageSteps_ArtifactPath(t *testing.T) {
	steps := packageSteps(Component{Name: "sidekick", Directory: "ext"})
	require.Len(t, steps, 2)
	assert.Equal(t, "ext", steps[0].WorkingDirectory)
	assert.Contains(t, steps[1].With, Param{Key: "path", Value: "ext/*.vsix"})

	steps = packageSteps(Component{Name: "sidekick"})
	assert.Contains(t, steps[1].With, Param{Key: "name", Value: "sidekick-package"})
	assert.Contains(t, steps[1].With, Param{Key: "path", Value: "*.vsix"})
}

func TestPhaseSteps_EmptyCommandEmitsNothing(t *testing.T) {
	steps, err := phaseSteps(Component{Name: "web", Language: "node"}, "Test", "")
	require.NoError(t, err)
	assert.Nil(t, steps)
}

func TestMatrixSteps_CommandGuards(t *testing.T) {
	components := []Component{
		{Name: "a", Language: "node"},
		{Name: "b", Language: "python"},
	}
	steps, err := matrixSteps(components)
	require.NoError(t, err)

	var test, build *Step
	for i := range steps {
		switch steps[i].Name {
		case "Test ${{ matrix.component }}":
			test = &steps[i]
		case "Build ${{ matrix.component }}":
			build = &steps[i]
		}
	}
	require.NotNil(t, test)
	require.NotNil(t, build)
	// Empty commands stay skipped per matrix entry via the if guards.
	assert.Equal(t, "matrix.test_command != ''", test.If)
	assert.Equal(t, "matrix.build_command != ''", build.If)
	assert.Equal(t, "${{ matrix.directory }}", test.WorkingDirectory)
}
