package validation

import "testing"

func strptr(s string) *string { return &s }

func TestNilValueAlwaysFailsAsRequired(t *testing.T) {
	for _, rule := range []string{RuleDoesExist, RuleIsEmail, RuleHasUpperCase} {
		res := IsValid(nil, rule)
		if res.Valid() {
			t.Fatalf("%s: nil value must fail", rule)
		}
		if res.Message != "This field is required!" {
			t.Fatalf("%s: unexpected message %q", rule, res.Message)
		}
		if res.Code != CodeInvalid {
			t.Fatalf("%s: expected code %d, got %d", rule, CodeInvalid, res.Code)
		}
	}
}

func TestUnknownRulePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown rule")
		}
	}()
	IsValid(strptr("x"), "NoSuchRule")
}

func TestRules(t *testing.T) {
	cases := []struct {
		rule  string
		value string
		valid bool
	}{
		{RuleDoesExist, "x", true},
		{RuleDoesExist, "", false},

		{RuleIsEmail, "user@example.com", true},
		{RuleIsEmail, "not-an-email", false},
		{RuleIsEmail, "user@example.com.", false}, // trailing dot
		{RuleIsEmail, "User <user@example.com>", false},
		{RuleIsEmail, "", false},

		{RuleIsBetween3And20, "abc", true},
		{RuleIsBetween3And20, "ab", false},
		{RuleIsBetween3And20, "abcdefghijklmnopqrst", true},
		{RuleIsBetween3And20, "abcdefghijklmnopqrstu", false},

		{RuleIsBetween8And20, "12345678", true},
		{RuleIsBetween8And20, "1234567", false},

		{RuleIsBelow150, "a", true},
		{RuleIsBelow150, "", false},

		{RuleIsAlphaNumeric, "abc123", true},
		{RuleIsAlphaNumeric, "abc_123", false},
		{RuleIsAlphaNumeric, "abc 123", false},

		{RuleHasNoWhiteSpace, "nospace", true},
		{RuleHasNoWhiteSpace, "has space", false},
		{RuleHasNoWhiteSpace, "has\ttab", false},

		{RuleHasUpperCase, "Abc", true},
		{RuleHasUpperCase, "abc", false},

		{RuleHasLowerCase, "aBC", true},
		{RuleHasLowerCase, "ABC", false},

		{RuleHasOneNumber, "abc1", true},
		{RuleHasOneNumber, "abc", false},

		{RuleHasOneSpecialCharacter, "abc!", true},
		{RuleHasOneSpecialCharacter, "abc$", true},
		{RuleHasOneSpecialCharacter, "abc", false},
	}

	for _, tc := range cases {
		res := IsValid(strptr(tc.value), tc.rule)
		if res.Valid() != tc.valid {
			t.Errorf("%s(%q): expected valid=%v, got %+v", tc.rule, tc.value, tc.valid, res)
		}
	}
}

func TestResultCodes(t *testing.T) {
	ok := IsValid(strptr("user@example.com"), RuleIsEmail)
	if ok.Code != CodeValid || ok.Message != "Valid!" {
		t.Fatalf("unexpected passing result: %+v", ok)
	}

	bad := IsValid(strptr("nope"), RuleIsEmail)
	if bad.Code != CodeInvalid || bad.Message != "Invalid Email Address!" {
		t.Fatalf("unexpected failing result: %+v", bad)
	}
}
