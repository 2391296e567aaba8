package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeEntity represents missing-entity errors (researcher, project, publication)
	ErrorTypeEntity ErrorType = "entity"
	// ErrorTypeValidation represents malformed-input errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeCache represents result-cache errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// ErrType returns the error category. Promoted to every typed wrapper that
// embeds BaseError, so classification works without listing concrete types.
func (e *BaseError) ErrType() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Entity Errors

// ErrResearcherNotFound is returned when a researcher ID resolves to no entity
type ErrResearcherNotFound struct {
	*BaseError
	ResearcherID string
}

func NewResearcherNotFound(researcherID string) *ErrResearcherNotFound {
	return &ErrResearcherNotFound{
		BaseError:    NewBaseError(ErrorTypeEntity, fmt.Sprintf("researcher not found: %s", researcherID), nil),
		ResearcherID: researcherID,
	}
}

// ErrProjectNotFound is returned when a project ID resolves to no entity
type ErrProjectNotFound struct {
	*BaseError
	ProjectID string
}

func NewProjectNotFound(projectID string) *ErrProjectNotFound {
	return &ErrProjectNotFound{
		BaseError: NewBaseError(ErrorTypeEntity, fmt.Sprintf("project not found: %s", projectID), nil),
		ProjectID: projectID,
	}
}

// ErrPublicationNotFound is returned when a publication ID resolves to no entity
type ErrPublicationNotFound struct {
	*BaseError
	PublicationID string
}

func NewPublicationNotFound(publicationID string) *ErrPublicationNotFound {
	return &ErrPublicationNotFound{
		BaseError:     NewBaseError(ErrorTypeEntity, fmt.Sprintf("publication not found: %s", publicationID), nil),
		PublicationID: publicationID,
	}
}

// Validation Errors

// ErrInvalidThreshold is returned when a numeric threshold is out of range
type ErrInvalidThreshold struct {
	*BaseError
	Field string
	Value float64
}

func NewInvalidThreshold(field string, value float64, reason string) *ErrInvalidThreshold {
	return &ErrInvalidThreshold{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("invalid %s (%g): %s", field, value, reason), nil),
		Field:     field,
		Value:     value,
	}
}

// ErrMissingField is returned when a required entity attribute is absent
type ErrMissingField struct {
	*BaseError
	Entity string
	Field  string
}

func NewMissingField(entity, field string) *ErrMissingField {
	return &ErrMissingField{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("%s has no %s", entity, field), nil),
		Entity:    entity,
		Field:     field,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph traversal query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Operation string
}

func NewGraphQueryFailed(operation string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", operation), err),
		Operation: operation,
	}
}

// Cache Errors

// ErrCacheUnavailable is returned when the result cache cannot be opened
type ErrCacheUnavailable struct {
	*BaseError
	Dir string
}

func NewCacheUnavailable(dir string, err error) *ErrCacheUnavailable {
	return &ErrCacheUnavailable{
		BaseError: NewBaseError(ErrorTypeCache, fmt.Sprintf("cache unavailable: %s", dir), err),
		Dir:       dir,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if typed, ok := err.(interface{ ErrType() ErrorType }); ok {
			return typed.ErrType() == errType
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// IsNotFound checks if an error reports a missing entity
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeEntity)
}

// IsValidation checks if an error reports malformed input
func IsValidation(err error) bool {
	return IsErrorType(err, ErrorTypeValidation)
}
