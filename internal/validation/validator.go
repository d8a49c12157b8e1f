// Package validation runs the pre-flight checks on a campaign tree before
// anything is sent to a platform.
//
// Field rules are declared with `validate` struct tags on the domain types.
// A "required" failure is dropped when the target platform fills the field
// in by itself (see platform.DefaultsResolver). Without a platform context
// every declared rule is enforced.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"campaign_sync/internal/domain"
	"campaign_sync/internal/platform"
)

// Field error codes.
const (
	CodeRequiredField = "REQUIRED_FIELD"
	CodeInvalidValue  = "INVALID_VALUE"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator instance. Field names are
// reported by their json name.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Result holds all field errors found in one validation run.
type Result struct {
	Errors []domain.FieldError
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// ForEntity returns the errors of one entity.
func (r Result) ForEntity(entityID string) []domain.FieldError {
	var out []domain.FieldError
	for _, e := range r.Errors {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out
}

// Err returns nil for a valid result, otherwise a VALIDATION_FAILED
// *domain.SyncError carrying the field errors.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}

	first := r.Errors[0]
	return &domain.SyncError{
		Code:        domain.ErrCodeValidationFailed,
		EntityType:  first.EntityType,
		EntityID:    first.EntityID,
		Message:     strings.Join(msgs, "; "),
		FieldErrors: r.Errors,
	}
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
}

type Validator struct {
	defaults *platform.DefaultsResolver
}

func New(defaults *platform.DefaultsResolver) *Validator {
	return &Validator{defaults: defaults}
}

// ValidateCampaign validates a campaign and its whole subtree against
// platformName. Pass "" for the strictest rule set.
func (v *Validator) ValidateCampaign(c *domain.Campaign, platformName string) Result {
	var res Result
	res.merge(v.ValidateEntity(domain.EntityCampaign, c.ID, c, platformName))

	for i := range c.AdGroups {
		g := &c.AdGroups[i]
		res.merge(v.ValidateEntity(domain.EntityAdGroup, g.ID, g, platformName))

		for j := range g.Ads {
			res.merge(v.ValidateEntity(domain.EntityAd, g.Ads[j].ID, &g.Ads[j], platformName))
		}
		for j := range g.Keywords {
			res.merge(v.ValidateEntity(domain.EntityKeyword, g.Keywords[j].ID, &g.Keywords[j], platformName))
		}
	}

	return res
}

// ValidateCampaigns validates each campaign against its own platform.
func (v *Validator) ValidateCampaigns(campaigns []domain.Campaign) Result {
	var res Result
	for i := range campaigns {
		res.merge(v.ValidateCampaign(&campaigns[i], campaigns[i].Platform))
	}
	return res
}

// ValidateEntity validates a single struct without descending into its
// children.
func (v *Validator) ValidateEntity(entityType domain.EntityType, entityID string, entity any, platformName string) Result {
	err := getValidator().Struct(entity)
	if err == nil {
		return Result{}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Errors: []domain.FieldError{{
			EntityType: entityType,
			EntityID:   entityID,
			Code:       CodeInvalidValue,
			Message:    err.Error(),
		}}}
	}

	var res Result
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())

		if fe.Tag() == "required" && v.defaults.HasDefault(platformName, entityType, field) {
			continue
		}

		res.Errors = append(res.Errors, domain.FieldError{
			EntityType: entityType,
			EntityID:   entityID,
			Field:      field,
			Code:       errorCode(fe.Tag()),
			Message:    message(entityType, field, fe),
		})
	}
	return res
}

// fieldPath drops the root struct name: "Campaign.budget.amount" becomes
// "budget.amount".
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}

func errorCode(tag string) string {
	if tag == "required" {
		return CodeRequiredField
	}
	return CodeInvalidValue
}

func message(entityType domain.EntityType, field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s %s is required", entityType, field)
	case "oneof":
		return fmt.Sprintf("%s %s must be one of [%s], got %v", entityType, field, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s %s must be greater than %s", entityType, field, fe.Param())
	case "len":
		return fmt.Sprintf("%s %s must be %s characters long", entityType, field, fe.Param())
	case "url":
		return fmt.Sprintf("%s %s must be a valid URL", entityType, field)
	default:
		return fmt.Sprintf("%s %s failed %s validation", entityType, field, fe.Tag())
	}
}
