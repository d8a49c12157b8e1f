package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by stores when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrorCode classifies sync failures. Codes are part of the result contract
// and are matched by callers, so values must stay stable.
type ErrorCode string

const (
	ErrCodeServiceNotConfigured ErrorCode = "SERVICE_NOT_CONFIGURED"
	ErrCodeCampaignSetNotFound  ErrorCode = "CAMPAIGN_SET_NOT_FOUND"
	ErrCodeNoAdapter            ErrorCode = "NO_ADAPTER"
	ErrCodeCreateFailed         ErrorCode = "CREATE_FAILED"
	ErrCodeCreateException      ErrorCode = "CREATE_EXCEPTION"
	ErrCodeUpdateFailed         ErrorCode = "UPDATE_FAILED"
	ErrCodeUpdateException      ErrorCode = "UPDATE_EXCEPTION"
	ErrCodeDeleteFailed         ErrorCode = "DELETE_FAILED"
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeParentNotSynced      ErrorCode = "PARENT_NOT_SYNCED"
	ErrCodeCircuitOpen          ErrorCode = "CIRCUIT_OPEN"
	ErrCodeFetchFailed          ErrorCode = "FETCH_FAILED"
)

type EntityType string

const (
	EntityCampaign EntityType = "campaign"
	EntityAdGroup  EntityType = "adGroup"
	EntityAd       EntityType = "ad"
	EntityKeyword  EntityType = "keyword"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	Field      string     `json:"field"`
	Code       string     `json:"code"`
	Message    string     `json:"message"`
}

// SyncError is an entity-level or structural sync failure.
type SyncError struct {
	Code        ErrorCode    `json:"code"`
	EntityType  EntityType   `json:"entityType,omitempty"`
	EntityID    string       `json:"entityId,omitempty"`
	Platform    Platform     `json:"platform,omitempty"`
	Message     string       `json:"message"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

func (e *SyncError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Code))
	if e.EntityID != "" {
		fmt.Fprintf(&sb, " %s %s", e.EntityType, e.EntityID)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// IsCode reports whether err is a *SyncError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *SyncError
	return errors.As(err, &se) && se.Code == code
}

// DiffSyncResult aggregates the outcome of applying one diff. Entity-level
// failures are collected in Errors; they never abort the batch.
type DiffSyncResult struct {
	Success bool        `json:"success"`
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Removed int         `json:"removed"`
	Skipped int         `json:"skipped"`
	Errors  []SyncError `json:"errors"`
}

// Add records a prepared error, e.g. a validation failure with field errors.
func (r *DiffSyncResult) Add(err SyncError) {
	r.Errors = append(r.Errors, err)
}

// AddError records an entity-level failure.
func (r *DiffSyncResult) AddError(code ErrorCode, entityType EntityType, entityID string, platform Platform, msg string) {
	r.Add(SyncError{
		Code:       code,
		EntityType: entityType,
		EntityID:   entityID,
		Platform:   platform,
		Message:    msg,
	})
}

// Finalize sets Success from the collected errors.
func (r *DiffSyncResult) Finalize() {
	r.Success = len(r.Errors) == 0
}

// ErrorsFor returns the errors recorded against one entity.
func (r *DiffSyncResult) ErrorsFor(entityID string) []SyncError {
	var out []SyncError
	for _, e := range r.Errors {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out
}
