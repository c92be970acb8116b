// Package validation checks user credential fields against named rules and
// aggregates the results into a per-field report.
//
// Two layers:
//
//   - IsValid applies a single named rule to a single value and returns a
//     coded result (200 valid, 400 invalid).
//   - Pipeline runs the full rule set for a credential submission
//     (username, email, password), appends store-backed uniqueness checks,
//     and reports every failing rule per field rather than stopping at the
//     first.
//
// The package also exposes ValidateStruct for tag-based validation of
// configuration structs at boot.
package validation
