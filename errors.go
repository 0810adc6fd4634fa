package pipegen

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveConfiguration is returned by stores when a project has no
	// active configuration to fetch or deactivate.
	ErrNoActiveConfiguration = errors.New("pipegen: no active configuration for project")
)

// ConfigErrorCode identifies which validation rule a descriptor violated.
type ConfigErrorCode string

const (
	CodeEmptyProjectName      ConfigErrorCode = "EMPTY_PROJECT_NAME"
	CodeInvalidArchitecture   ConfigErrorCode = "INVALID_ARCHITECTURE"
	CodeInvalidDeployStrategy ConfigErrorCode = "INVALID_DEPLOY_STRATEGY"
	CodeNoComponents          ConfigErrorCode = "NO_COMPONENTS"
	CodeArityMismatch         ConfigErrorCode = "ARCHITECTURE_ARITY_MISMATCH"
	CodeInvalidComponentName  ConfigErrorCode = "INVALID_COMPONENT_NAME"
	CodeDuplicateComponent    ConfigErrorCode = "DUPLICATE_COMPONENT"
	CodeUnsupportedLanguage   ConfigErrorCode = "UNSUPPORTED_LANGUAGE"
	CodeUnresolvedDependency  ConfigErrorCode = "UNRESOLVED_DEPENDENCY"
	CodeDependencyCycle       ConfigErrorCode = "DEPENDENCY_CYCLE"
	CodeDuplicateEnvKey       ConfigErrorCode = "DUPLICATE_ENVIRONMENT_KEY"
)

// ConfigError reports a caller-input problem found during descriptor
// validation. Field names the first offending field. Validation fails fast,
// so a descriptor produces at most one ConfigError per attempt.
type ConfigError struct {
	Code   ConfigErrorCode `json:"code"`
	Field  string          `json:"field"`
	Detail string          `json:"detail,omitempty"`
}

func (e *ConfigError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("pipegen: invalid descriptor: %s: %s (%s)", e.Field, e.Detail, e.Code)
	}
	return fmt.Sprintf("pipegen: invalid descriptor: %s (%s)", e.Field, e.Code)
}

func configErr(code ConfigErrorCode, field, format string, args ...any) *ConfigError {
	return &ConfigError{Code: code, Field: field, Detail: fmt.Sprintf(format, args...)}
}

// InternalError reports an internal-consistency defect: a toolchain lookup
// that fails after validation passed, or a malformed job graph reaching the
// serializer. It is never caused by caller input and must fail loudly.
type InternalError struct {
	Stage  string
	Detail string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("pipegen: internal consistency error in %s: %s", e.Stage, e.Detail)
}

func internalErr(stage, format string, args ...any) *InternalError {
	return &InternalError{Stage: stage, Detail: fmt.Sprintf(format, args...)}
}

// Warning codes attached to a successful generation.
const (
	WarnPackageOnlyDeployIgnored = "PACKAGE_ONLY_DEPLOY_IGNORED"
)

// Warning is a non-fatal note attached to a successful result. Warnings
// never block generation.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
