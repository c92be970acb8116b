package users

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiTONELOC/web-app-auth-server/auth/jwt"
	"github.com/iiTONELOC/web-app-auth-server/auth/password"
	apperrors "github.com/iiTONELOC/web-app-auth-server/errors"
	"github.com/iiTONELOC/web-app-auth-server/logger"
	"github.com/iiTONELOC/web-app-auth-server/validation"
)

// stubHasher stands in for the PBKDF2 hasher so tests stay fast. It keeps
// the tag contract: untagged stored hashes are an unsupported format.
type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (string, string, error) {
	return password.HashTag + "stub:" + plaintext, "stub-salt", nil
}

func (stubHasher) Verify(plaintext, hash, salt string) (bool, error) {
	if !strings.Contains(hash, password.HashTag) {
		return false, password.ErrUnsupportedHash
	}
	return hash == password.HashTag+"stub:"+plaintext, nil
}

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	tokens, err := jwt.NewService(&jwt.Config{Secret: "test-secret"})
	require.NoError(t, err)

	store := NewMemoryStore()
	return NewService(store, stubHasher{}, tokens, logger.NewDefault("users-test")), store
}

func strptr(s string) *string { return &s }

func validSubmission() validation.Submission {
	return validation.Submission{
		Username: strptr("alice1"),
		Email:    strptr("alice@example.com"),
		Password: strptr("Sup3r$ecret"),
	}
}

func appErrCode(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Code
}

func TestRegister(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validSubmission())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice1", user.Username)

	stored, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, password.HashTag))
	assert.NotEqual(t, "Sup3r$ecret", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordSalt)
}

func TestRegisterValidationFailure(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validation.Submission{
		Username: strptr("ab"),
		Email:    strptr("bad"),
		Password: strptr("short"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidationFailure, appErrCode(t, err))

	appErr, _ := apperrors.AsAppError(err)
	assert.Contains(t, appErr.Details, "fields")
}

func TestRegisterSchemaMismatch(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validation.Submission{
		Username: strptr("alice1"),
		Email:    strptr("alice@example.com"),
		// Password absent
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSchemaMismatch, appErrCode(t, err))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validSubmission())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validSubmission())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidationFailure, appErrCode(t, err))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validSubmission())
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "alice1", "Sup3r$ecret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	claims, err := svc.tokens.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "alice1", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validSubmission())
	require.NoError(t, err)

	_, _, wrongPass := svc.Login(ctx, "alice1", "Wr0ng$ecret")
	_, _, unknownUser := svc.Login(ctx, "nobody", "Sup3r$ecret")

	require.Error(t, wrongPass)
	require.Error(t, unknownUser)
	assert.Equal(t, apperrors.ErrCodeAuthenticationFailure, appErrCode(t, wrongPass))
	assert.Equal(t, apperrors.ErrCodeAuthenticationFailure, appErrCode(t, unknownUser))
	assert.Equal(t, wrongPass.Error(), unknownUser.Error())
}

func TestLoginUnsupportedStoredHash(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validSubmission())
	require.NoError(t, err)

	// Corrupt the stored hash: strip the tag.
	stored, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	stored.PasswordHash = strings.ReplaceAll(stored.PasswordHash, password.HashTag, "")
	require.NoError(t, store.Replace(ctx, stored))

	_, _, err = svc.Login(ctx, "alice1", "Sup3r$ecret")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnsupportedHashFormat, appErrCode(t, err))
}

func TestUpdateChangedFieldsOnly(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validSubmission())
	require.NoError(t, err)
	originalHash := mustFind(t, store, user.ID).PasswordHash

	// Resubmitting the same username must not trip its own uniqueness.
	updated, err := svc.Update(ctx, user.ID, validation.Submission{
		Username: strptr("alice1"),
		Email:    strptr("new@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, originalHash, mustFind(t, store, user.ID).PasswordHash)

	// A password change goes through the hashing path.
	_, err = svc.Update(ctx, user.ID, validation.Submission{
		Password: strptr("N3w$ecret!pw"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, mustFind(t, store, user.ID).PasswordHash)
}

func TestUpdateRejectsTakenUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validSubmission())
	require.NoError(t, err)
	bob, err := svc.Register(ctx, validation.Submission{
		Username: strptr("bob22"),
		Email:    strptr("bob@example.com"),
		Password: strptr("B0b$ecret!"),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob.ID, validation.Submission{Username: strptr("alice1")})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidationFailure, appErrCode(t, err))
}

func TestDeleteAndExists(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validSubmission())
	require.NoError(t, err)

	exists, err := svc.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, svc.Delete(ctx, user.ID))

	exists, err = svc.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	err = svc.Delete(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErrCode(t, err))
}

func TestListReturnsAllAccounts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validSubmission())
	require.NoError(t, err)
	_, err = svc.Register(ctx, validation.Submission{
		Username: strptr("bob22"),
		Email:    strptr("bob@example.com"),
		Password: strptr("B0b$ecret!"),
	})
	require.NoError(t, err)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	names := []string{users[0].Username, users[1].Username}
	assert.ElementsMatch(t, []string{"alice1", "bob22"}, names)
}

func mustFind(t *testing.T, store Store, id string) *User {
	t.Helper()
	user, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	return user
}
