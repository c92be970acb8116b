package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Result codes mirror HTTP status semantics: 200 for a passing rule, 400
// for a failing one.
const (
	CodeValid   = 200
	CodeInvalid = 400
)

// Result is the outcome of applying one rule to one value.
type Result struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

// Valid reports whether the rule passed.
func (r Result) Valid() bool {
	return r.Code == CodeValid
}

// Rule names. Ranges are encoded in the name; the registry is fixed at
// compile time.
const (
	RuleDoesExist              = "DoesExist"
	RuleIsEmail                = "IsEmail"
	RuleIsBetween3And20        = "IsBetween3-20"
	RuleIsBetween8And20        = "IsBetween8-20"
	RuleIsBelow150             = "IsBelow150"
	RuleIsAlphaNumeric         = "IsAlphaNumeric"
	RuleHasNoWhiteSpace        = "HasNoWhiteSpace"
	RuleHasUpperCase           = "HasUpperCase"
	RuleHasLowerCase           = "HasLowerCase"
	RuleHasOneNumber           = "HasOneNumber"
	RuleHasOneSpecialCharacter = "HasOneSpecialCharacter"
)

const (
	validMessage    = "Valid!"
	requiredMessage = "This field is required!"
)

var (
	upperCasePattern    = regexp.MustCompile(`[A-Z]`)
	lowerCasePattern    = regexp.MustCompile(`[a-z]`)
	numberPattern       = regexp.MustCompile(`[0-9]`)
	whiteSpacePattern   = regexp.MustCompile(`\s`)
	alphaNumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]*$`)
)

// specialCharacters is the accepted special-character set for passwords.
const specialCharacters = "!@#$%^&*)}[|/.+=(]?_~`-;:"

// rule pairs a predicate with the message reported when it fails.
type rule struct {
	check   func(string) bool
	message string
}

var rules = map[string]rule{
	RuleDoesExist:              {func(v string) bool { return len(v) > 0 }, requiredMessage},
	RuleIsEmail:                {isEmail, "Invalid Email Address!"},
	RuleIsBetween3And20:        {lengthBetween(3, 20), "This field must be between 3 and 20 characters long!"},
	RuleIsBetween8And20:        {lengthBetween(8, 20), "This field must be between 8 and 20 characters long!"},
	RuleIsBelow150:             {lengthBetween(1, 150), "This field must have less than 150 characters!"},
	RuleIsAlphaNumeric:         {alphaNumericPattern.MatchString, "This field must be alphanumeric!"},
	RuleHasNoWhiteSpace:        {hasNoWhiteSpace, "No whitespace is allowed!"},
	RuleHasUpperCase:           {upperCasePattern.MatchString, "An uppercase letter is required!"},
	RuleHasLowerCase:           {lowerCasePattern.MatchString, "A lowercase letter is required!"},
	RuleHasOneNumber:           {numberPattern.MatchString, "A number is required!"},
	RuleHasOneSpecialCharacter: {hasSpecialCharacter, "A special character is required!"},
}

// IsValid applies the named rule to the value. A nil value always fails as
// a missing required field, regardless of the rule. An unknown rule name is
// a programming error and panics.
func IsValid(value *string, name string) Result {
	r, ok := rules[name]
	if !ok {
		panic(fmt.Sprintf("validation: unknown rule %q", name))
	}
	if value == nil {
		return Result{Code: CodeInvalid, Message: requiredMessage}
	}
	if r.check(*value) {
		return Result{Code: CodeValid, Message: validMessage}
	}
	return Result{Code: CodeInvalid, Message: r.message}
}

// lengthBetween bounds the length in characters, not bytes.
func lengthBetween(min, max int) func(string) bool {
	return func(v string) bool {
		n := utf8.RuneCountInString(v)
		return n >= min && n <= max
	}
}

func hasNoWhiteSpace(v string) bool {
	return !whiteSpacePattern.MatchString(v)
}

func hasSpecialCharacter(v string) bool {
	return strings.ContainsAny(v, specialCharacters)
}

// isEmail accepts addresses that parse under RFC 5322 address grammar as a
// bare address (no display name) and do not end with a dot.
func isEmail(v string) bool {
	trimmed := strings.TrimSpace(v)
	if strings.HasSuffix(trimmed, ".") {
		return false
	}
	addr, err := mail.ParseAddress(v)
	if err != nil {
		return false
	}
	return addr.Address == trimmed
}
