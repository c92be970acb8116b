package database

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsNotFoundError(t *testing.T) {
	if !IsNotFoundError(gorm.ErrRecordNotFound) {
		t.Error("expected record-not-found to match")
	}
	if !IsNotFoundError(fmt.Errorf("find: %w", gorm.ErrRecordNotFound)) {
		t.Error("expected wrapped record-not-found to match")
	}
	if IsNotFoundError(gorm.ErrDuplicatedKey) {
		t.Error("duplicated key is not a not-found error")
	}
	if IsNotFoundError(nil) {
		t.Error("nil is not a not-found error")
	}
}

func TestIsDuplicateError(t *testing.T) {
	if !IsDuplicateError(gorm.ErrDuplicatedKey) {
		t.Error("expected duplicated-key to match")
	}
	if !IsDuplicateError(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)) {
		t.Error("expected wrapped duplicated-key to match")
	}
	if IsDuplicateError(errors.New("constraint failed")) {
		t.Error("untranslated errors must not match")
	}
	if IsDuplicateError(nil) {
		t.Error("nil is not a duplicate error")
	}
}
