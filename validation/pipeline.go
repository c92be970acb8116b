package validation

import (
	"context"
	"fmt"
)

// Field names as they appear on the wire.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"

	// FieldSchema is the pseudo-field reported when the submission is
	// missing one of the expected credential fields entirely.
	FieldSchema = "data_schema"
)

const (
	schemaInvalidMessage  = "Data schema is invalid"
	usernameUniqueMessage = "Usernames must be unique!"
	emailUniqueMessage    = "Emails must be unique!"
)

// Rule sets per field. Order is the order failures are reported in.
var (
	usernameRules = []string{RuleDoesExist, RuleIsBetween3And20, RuleHasNoWhiteSpace, RuleIsAlphaNumeric}
	emailRules    = []string{RuleDoesExist, RuleIsEmail, RuleIsBelow150}
	passwordRules = []string{RuleDoesExist, RuleIsBetween8And20, RuleHasNoWhiteSpace, RuleHasOneNumber, RuleHasOneSpecialCharacter, RuleHasUpperCase, RuleHasLowerCase}
)

// Submission carries the credential fields of a registration or update
// request. A nil pointer means the field was absent from the request, which
// is distinct from an empty string.
type Submission struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UniquenessChecker answers whether a username or email is already taken.
// Implemented by the user store.
type UniquenessChecker interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// FieldResult is the per-field wire shape of a validation failure.
type FieldResult struct {
	Property      string   `json:"property"`
	IsValid       bool     `json:"is_valid"`
	ErrorMessages []Result `json:"error_messages"`
}

// Report aggregates the failing fields of one submission. A submission with
// no failures yields an empty report.
type Report struct {
	Fields []FieldResult `json:"fields"`
}

// Valid reports whether the submission passed every check.
func (r Report) Valid() bool {
	return len(r.Fields) == 0
}

// Field returns the result for the named property, if it failed.
func (r Report) Field(property string) (FieldResult, bool) {
	for _, f := range r.Fields {
		if f.Property == property {
			return f, true
		}
	}
	return FieldResult{}, false
}

// Exemption names the values belonging to the record under update.
// Uniqueness checks skip a submitted value that matches its exemption, so a
// record can be re-saved under its own username or email.
type Exemption struct {
	Username string
	Email    string
}

// Pipeline validates credential submissions: shape rules per field, then
// store-backed uniqueness for username and email. All failures are
// collected; validation never stops at the first bad rule.
type Pipeline struct {
	store UniquenessChecker
}

// NewPipeline creates a credential validation pipeline backed by the store.
func NewPipeline(store UniquenessChecker) *Pipeline {
	return &Pipeline{store: store}
}

// Validate checks a full registration submission. Every expected field must
// be present: a nil field contributes a single schema-level failure and
// makes the submission invalid regardless of the other fields. Uniqueness
// failures are appended to a field's result independently of its shape
// failures. The error return is reserved for store faults.
func (p *Pipeline) Validate(ctx context.Context, sub Submission) (Report, error) {
	var report Report
	schemaComplete := sub.Username != nil && sub.Email != nil && sub.Password != nil

	if sub.Username != nil {
		failures := applyRules(sub.Username, usernameRules)
		taken, err := p.store.ExistsByUsername(ctx, *sub.Username)
		if err != nil {
			return Report{}, fmt.Errorf("validation: username uniqueness check: %w", err)
		}
		if taken {
			failures = append(failures, Result{Code: CodeInvalid, Message: usernameUniqueMessage})
		}
		report.add(FieldUsername, failures)
	}

	if sub.Email != nil {
		failures := applyRules(sub.Email, emailRules)
		taken, err := p.store.ExistsByEmail(ctx, *sub.Email)
		if err != nil {
			return Report{}, fmt.Errorf("validation: email uniqueness check: %w", err)
		}
		if taken {
			failures = append(failures, Result{Code: CodeInvalid, Message: emailUniqueMessage})
		}
		report.add(FieldEmail, failures)
	}

	if sub.Password != nil {
		report.add(FieldPassword, applyRules(sub.Password, passwordRules))
	}

	if !schemaComplete {
		report.add(FieldSchema, []Result{{Code: CodeInvalid, Message: schemaInvalidMessage}})
	}
	return report, nil
}

// ValidatePartial checks only the fields present in the submission; absent
// fields are untouched rather than a schema failure. Submitted values that
// match the exemption skip their uniqueness check, so an update that keeps
// a field unchanged does not collide with the record itself.
func (p *Pipeline) ValidatePartial(ctx context.Context, sub Submission, exempt Exemption) (Report, error) {
	var report Report

	if sub.Username != nil {
		failures := applyRules(sub.Username, usernameRules)
		if *sub.Username != exempt.Username {
			taken, err := p.store.ExistsByUsername(ctx, *sub.Username)
			if err != nil {
				return Report{}, fmt.Errorf("validation: username uniqueness check: %w", err)
			}
			if taken {
				failures = append(failures, Result{Code: CodeInvalid, Message: usernameUniqueMessage})
			}
		}
		report.add(FieldUsername, failures)
	}

	if sub.Email != nil {
		failures := applyRules(sub.Email, emailRules)
		if *sub.Email != exempt.Email {
			taken, err := p.store.ExistsByEmail(ctx, *sub.Email)
			if err != nil {
				return Report{}, fmt.Errorf("validation: email uniqueness check: %w", err)
			}
			if taken {
				failures = append(failures, Result{Code: CodeInvalid, Message: emailUniqueMessage})
			}
		}
		report.add(FieldEmail, failures)
	}

	if sub.Password != nil {
		report.add(FieldPassword, applyRules(sub.Password, passwordRules))
	}
	return report, nil
}

// applyRules runs every rule and returns only the failures.
func applyRules(value *string, names []string) []Result {
	var failures []Result
	for _, name := range names {
		if res := IsValid(value, name); !res.Valid() {
			failures = append(failures, res)
		}
	}
	return failures
}

// add appends a field result when it has failures; clean fields are not
// reported.
func (r *Report) add(property string, failures []Result) {
	if len(failures) == 0 {
		return
	}
	r.Fields = append(r.Fields, FieldResult{
		Property:      property,
		IsValid:       false,
		ErrorMessages: failures,
	})
}
