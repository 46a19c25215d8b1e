package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrProjection indicates a model member that cannot be projected.
	ErrProjection = errors.New("polygen: invalid model member")
	// ErrInvalidConfig indicates an invalid configuration choice.
	ErrInvalidConfig = errors.New("polygen: invalid configuration")
	// ErrTemplateCopy indicates a template that could not be copied.
	ErrTemplateCopy = errors.New("polygen: template copy failed")
	// ErrGenerationFailed indicates a generation failure.
	ErrGenerationFailed = errors.New("polygen: generation failed")
)

// ProjectionError is returned when an entity or configuration composite
// declares a member the projector cannot turn into a declaration.
type ProjectionError struct {
	Module    string
	Composite string // entity or service name
	Member    string
	Message   string
}

// Error implements the error interface.
func (e *ProjectionError) Error() string {
	var b strings.Builder
	b.WriteString("polygen: projection error")
	if e.Module != "" {
		b.WriteString(" in module ")
		b.WriteString(e.Module)
	}
	if e.Composite != "" {
		b.WriteString(" on ")
		b.WriteString(e.Composite)
	}
	if e.Member != "" {
		b.WriteString(" member ")
		b.WriteString(e.Member)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ProjectionError.
func (e *ProjectionError) Is(target error) bool {
	return target == ErrProjection
}

// NewProjectionError creates a new ProjectionError.
func NewProjectionError(module, composite, member, message string) *ProjectionError {
	return &ProjectionError{
		Module:    module,
		Composite: composite,
		Member:    member,
		Message:   message,
	}
}

// ConfigError represents an invalid configuration choice.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("polygen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("polygen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// TemplateCopyError records a template that could not be rendered or written.
// These failures are logged and skipped unless generation runs strict.
type TemplateCopyError struct {
	Template string
	Target   string
	Cause    error
}

// Error implements the error interface.
func (e *TemplateCopyError) Error() string {
	var b strings.Builder
	b.WriteString("polygen: unable to copy template ")
	b.WriteString(e.Template)
	if e.Target != "" {
		b.WriteString(" to ")
		b.WriteString(e.Target)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *TemplateCopyError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for TemplateCopyError.
func (e *TemplateCopyError) Is(target error) bool {
	return target == ErrTemplateCopy
}

// GenerationError represents a fatal generation error.
type GenerationError struct {
	Phase   string // "application", "buildtool", "modules", etc.
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("polygen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsProjectionError reports whether the error is a ProjectionError.
func IsProjectionError(err error) bool {
	var projErr *ProjectionError
	return errors.As(err, &projErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsTemplateCopyError reports whether the error is a TemplateCopyError.
func IsTemplateCopyError(err error) bool {
	var copyErr *TemplateCopyError
	return errors.As(err, &copyErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
