package logics

import (
	"strings"

	"greenhouse-server/internal/auth"
	"greenhouse-server/internal/models"
	"greenhouse-server/internal/repositories"
	"greenhouse-server/internal/utils"
	apperrors "greenhouse-server/pkg/errors"

	"gorm.io/gorm"
)

// UserService handles user-related business logic
type UserService struct{}

// NewUserService creates a new instance of UserService
func NewUserService() *UserService {
	return &UserService{}
}

// userPreloads expands each user's owned greenhouses and the greenhouse
// behind every assignment, matching the users list contract.
func userPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("OwnedGreenhouses").Preload("Assignments.Greenhouse")
}

// ListUsers returns all users with their greenhouse relations expanded.
func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := userPreloads(repositories.DBS.Postgres).Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	return users, nil
}

// GetUserByID retrieves a user by id.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := repositories.DBS.Postgres.First(&user, "id = ?", id).Error; err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "user not found", err)
		}
		return nil, apperrors.Wrap(err, "failed to load user")
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := repositories.DBS.Postgres.First(&user, "email = ?", email).Error; err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "user not found", err)
		}
		return nil, apperrors.Wrap(err, "failed to load user")
	}
	return &user, nil
}

// ResolveRole maps a user id to its stored role with a point lookup.
// A missing row or a lookup failure yields the empty role, which every
// caller must treat as non-admin.
func (s *UserService) ResolveRole(userID string) models.Role {
	if userID == "" {
		return ""
	}
	var user models.User
	if err := repositories.DBS.Postgres.Select("role").First(&user, "id = ?", userID).Error; err != nil {
		return ""
	}
	return user.Role
}

// CreateUser creates a user record. A plaintext password, when given,
// is hashed before storage.
func (s *UserService) CreateUser(name, email, password string, role models.Role) (*models.User, error) {
	if email == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "email is required", nil)
	}
	if role == "" {
		role = models.RoleUser
	}

	id, err := utils.GenerateUniqueID("U")
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:    id,
		Name:  name,
		Email: strings.ToLower(email),
		Role:  role,
	}

	if password != "" {
		hashed, err := auth.HashPassword(password)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to hash password")
		}
		user.HashedPassword = hashed
	}

	if err := repositories.DBS.Postgres.Create(&user).Error; err != nil {
		if apperrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewAppError(apperrors.ErrConflict, "user already exists", err)
		}
		return nil, apperrors.Wrap(err, "failed to create user")
	}

	return s.getExpanded(user.ID)
}

// RegisterUser self-registers a credential account with the default role.
func (s *UserService) RegisterUser(name, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "email and password are required", nil)
	}

	if _, err := s.GetUserByEmail(strings.ToLower(email)); err == nil {
		return nil, apperrors.NewAppError(apperrors.ErrConflict, "user already exists", nil)
	}

	return s.CreateUser(name, email, password, models.RoleUser)
}

// ProvisionExternalUser idempotently creates a user for an
// identity-provider subject. An existing row is returned untouched.
func (s *UserService) ProvisionExternalUser(externalID, email, name string) (*models.User, bool, error) {
	if externalID == "" {
		return nil, false, apperrors.NewAppError(apperrors.ErrInvalidArgument, "external id is required", nil)
	}

	var existing models.User
	err := repositories.DBS.Postgres.First(&existing, "external_id = ?", externalID).Error
	if err == nil {
		return &existing, false, nil
	}
	if !apperrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperrors.Wrap(err, "failed to look up external user")
	}

	id, err := utils.GenerateUniqueID("U")
	if err != nil {
		return nil, false, err
	}

	user := models.User{
		ID:         id,
		Name:       name,
		Email:      strings.ToLower(email),
		Role:       models.RoleUser,
		ExternalID: &externalID,
	}
	if err := repositories.DBS.Postgres.Create(&user).Error; err != nil {
		// A concurrent webhook delivery may have won the race; re-read.
		var winner models.User
		if lookupErr := repositories.DBS.Postgres.First(&winner, "external_id = ?", externalID).Error; lookupErr == nil {
			return &winner, false, nil
		}
		return nil, false, apperrors.Wrap(err, "failed to provision user")
	}

	return &user, true, nil
}

// UpdateUser applies a partial update and returns the expanded record.
func (s *UserService) UpdateUser(id string, updates models.UserUpdate) (*models.User, error) {
	if _, err := s.GetUserByID(id); err != nil {
		return nil, err
	}

	updateMap := make(map[string]interface{})
	if updates.Name != nil {
		updateMap["name"] = *updates.Name
	}
	if updates.Email != nil {
		updateMap["email"] = strings.ToLower(*updates.Email)
	}
	if updates.Role != nil {
		updateMap["role"] = *updates.Role
	}
	if updates.Password != nil && *updates.Password != "" {
		hashed, err := auth.HashPassword(*updates.Password)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to hash password")
		}
		updateMap["hashed_password"] = hashed
	}

	if len(updateMap) > 0 {
		if err := repositories.DBS.Postgres.Model(&models.User{}).
			Where("id = ?", id).
			Updates(updateMap).Error; err != nil {
			if apperrors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.NewAppError(apperrors.ErrConflict, "email already in use", err)
			}
			return nil, apperrors.Wrap(err, "failed to update user")
		}
	}

	return s.getExpanded(id)
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(id string) error {
	if _, err := s.GetUserByID(id); err != nil {
		return err
	}
	if err := repositories.DBS.Postgres.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return nil
}

func (s *UserService) getExpanded(id string) (*models.User, error) {
	var user models.User
	if err := userPreloads(repositories.DBS.Postgres).First(&user, "id = ?", id).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to reload user")
	}
	return &user, nil
}

// Global instance of UserService
var UserSvc = NewUserService()
