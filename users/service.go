package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iiTONELOC/web-app-auth-server/auth/jwt"
	"github.com/iiTONELOC/web-app-auth-server/auth/password"
	apperrors "github.com/iiTONELOC/web-app-auth-server/errors"
	"github.com/iiTONELOC/web-app-auth-server/logger"
	"github.com/iiTONELOC/web-app-auth-server/validation"
)

// Service implements account operations over a Store. All credential
// mutations pass through the validation pipeline and the password hasher;
// the service never persists or returns plaintext passwords.
type Service struct {
	store    Store
	hasher   password.Hasher
	tokens   *jwt.Service
	pipeline *validation.Pipeline
	log      *logger.Logger
}

// NewService wires the account service.
func NewService(store Store, hasher password.Hasher, tokens *jwt.Service, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		pipeline: validation.NewPipeline(store),
		log:      log.WithComponent("users"),
	}
}

// Register validates the submission, hashes the password, and inserts the
// account. Validation failures return an AppError carrying the full
// per-field report in its details.
func (s *Service) Register(ctx context.Context, sub validation.Submission) (*User, error) {
	report, err := s.pipeline.Validate(ctx, sub)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if !report.Valid() {
		return nil, reportError(report)
	}

	hash, salt, err := s.hasher.Hash(*sub.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Username:     *sub.Username,
		Email:        *sub.Email,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, user); err != nil {
		// A concurrent registration can slip past the pipeline's advisory
		// check; the unique index reports it here.
		if errors.Is(err, ErrDuplicate) {
			return nil, apperrors.ValidationFailure("Usernames and emails must be unique!")
		}
		return nil, apperrors.DatabaseError(err)
	}

	s.log.Info("User registered", logger.Fields(
		logger.FieldUserID, user.ID,
		logger.FieldUsername, user.Username,
	))
	return user, nil
}

// Login verifies the credentials and issues a bearer token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, plaintext string) (*User, string, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", apperrors.Unauthorized()
		}
		return nil, "", apperrors.DatabaseError(err)
	}

	ok, err := s.hasher.Verify(plaintext, user.PasswordHash, user.PasswordSalt)
	if err != nil {
		if errors.Is(err, password.ErrUnsupportedHash) {
			s.log.Error("Stored credential has an unsupported hash format", logger.Fields(
				logger.FieldUserID, user.ID,
			))
			return nil, "", apperrors.UnsupportedHashFormat()
		}
		return nil, "", apperrors.Internal(err)
	}
	if !ok {
		return nil, "", apperrors.Unauthorized()
	}

	token, err := s.tokens.Issue(jwt.Claims{
		UserID: user.ID,
		Name:   user.Username,
		Email:  user.Email,
	}, 0)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}

	s.log.Info("User logged in", logger.Fields(logger.FieldUserID, user.ID))
	return user, token, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.DatabaseError(err)
	}
	return user, nil
}

// List returns every account.
func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return users, nil
}

// Update applies the changed fields to the account. Only fields present in
// the submission are validated and written; the record's own username and
// email are exempt from uniqueness so an unchanged field can be resubmitted.
// A password change goes through the full hashing path.
func (s *Service) Update(ctx context.Context, id string, sub validation.Submission) (*User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.DatabaseError(err)
	}

	report, err := s.pipeline.ValidatePartial(ctx, sub, validation.Exemption{
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if !report.Valid() {
		return nil, reportError(report)
	}

	if sub.Username != nil {
		user.Username = *sub.Username
	}
	if sub.Email != nil {
		user.Email = *sub.Email
	}
	if sub.Password != nil {
		hash, salt, hashErr := s.hasher.Hash(*sub.Password)
		if hashErr != nil {
			return nil, apperrors.Internal(hashErr)
		}
		user.PasswordHash = hash
		user.PasswordSalt = salt
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.store.Replace(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, apperrors.ValidationFailure("Usernames and emails must be unique!")
		}
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.DatabaseError(err)
	}

	s.log.Info("User updated", logger.Fields(logger.FieldUserID, user.ID))
	return user, nil
}

// Delete removes the account.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.NotFound("user")
		}
		return apperrors.DatabaseError(err)
	}
	s.log.Info("User deleted", logger.Fields(logger.FieldUserID, id))
	return nil
}

// Exists reports whether the account with the given id is still present.
// Used by the gatekeeper's zero-trust re-check.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.store.FindByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// reportError wraps a failing validation report in the matching AppError.
// A schema-level failure outranks field failures.
func reportError(report validation.Report) *apperrors.AppError {
	var appErr *apperrors.AppError
	if _, schema := report.Field(validation.FieldSchema); schema {
		appErr = apperrors.SchemaMismatch()
	} else {
		appErr = apperrors.ValidationFailure("")
	}
	return appErr.WithDetail("fields", report.Fields)
}
