package logics_test

import (
	"testing"

	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/models"
	apperrors "greenhouse-server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterUser(t *testing.T) {
	setupTestDB(t)

	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := logics.UserSvc.RegisterUser("Mina", "mina@farm.test", "correct horse battery")
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.Equal(t, "U", user.ID[:1])
		assert.Len(t, user.ID, 12)

		stored, err := logics.UserSvc.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, stored.HashedPassword)
		assert.NotEqual(t, "correct horse battery", stored.HashedPassword)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := logics.UserSvc.RegisterUser("Mina Again", "mina@farm.test", "another password")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrConflict, errCode(err))
	})

	t.Run("email is normalized to lower case", func(t *testing.T) {
		_, err := logics.UserSvc.RegisterUser("Shouty", "MINA@FARM.TEST", "yet another one")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrConflict, errCode(err))
	})
}

func TestUserService_ResolveRole(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "U00000000001", "admin@farm.test", models.RoleAdmin)
	worker := seedUser(t, db, "U00000000002", "worker@farm.test", models.RoleUser)

	t.Run("returns stored role", func(t *testing.T) {
		assert.Equal(t, models.RoleAdmin, logics.UserSvc.ResolveRole(admin.ID))
		assert.Equal(t, models.RoleUser, logics.UserSvc.ResolveRole(worker.ID))
	})

	t.Run("missing user resolves to empty role", func(t *testing.T) {
		assert.Equal(t, models.Role(""), logics.UserSvc.ResolveRole("U99999999999"))
	})

	t.Run("empty id resolves to empty role", func(t *testing.T) {
		assert.Equal(t, models.Role(""), logics.UserSvc.ResolveRole(""))
	})

	t.Run("role change takes effect on next resolution", func(t *testing.T) {
		role := models.RoleAdmin
		_, err := logics.UserSvc.UpdateUser(worker.ID, models.UserUpdate{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, logics.UserSvc.ResolveRole(worker.ID))
	})
}

func TestUserService_ProvisionExternalUser(t *testing.T) {
	setupTestDB(t)

	t.Run("creates user on first delivery", func(t *testing.T) {
		user, created, err := logics.UserSvc.ProvisionExternalUser("user_2abcDEF", "clerk@farm.test", "Clerk User")
		require.NoError(t, err)
		assert.True(t, created)
		require.NotNil(t, user.ExternalID)
		assert.Equal(t, "user_2abcDEF", *user.ExternalID)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("replayed delivery returns the existing row", func(t *testing.T) {
		first, _, err := logics.UserSvc.ProvisionExternalUser("user_2abcDEF", "clerk@farm.test", "Clerk User")
		require.NoError(t, err)

		again, created, err := logics.UserSvc.ProvisionExternalUser("user_2abcDEF", "changed@farm.test", "Changed Name")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, "clerk@farm.test", again.Email)

		users, err := logics.UserSvc.ListUsers()
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("empty external id is rejected", func(t *testing.T) {
		_, _, err := logics.UserSvc.ProvisionExternalUser("", "no@farm.test", "Nobody")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrInvalidArgument, errCode(err))
	})
}

func TestUserService_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "U00000000001", "worker@farm.test", models.RoleUser)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		updated, err := logics.UserSvc.UpdateUser(user.ID, models.UserUpdate{Name: strPtr("New Name")})
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, "worker@farm.test", updated.Email)
		assert.Equal(t, models.RoleUser, updated.Role)
	})

	t.Run("repeating the same update is idempotent", func(t *testing.T) {
		first, err := logics.UserSvc.UpdateUser(user.ID, models.UserUpdate{Name: strPtr("Same Name")})
		require.NoError(t, err)
		second, err := logics.UserSvc.UpdateUser(user.ID, models.UserUpdate{Name: strPtr("Same Name")})
		require.NoError(t, err)
		assert.Equal(t, first.Name, second.Name)
		assert.Equal(t, first.Email, second.Email)
	})

	t.Run("updating to a taken email conflicts", func(t *testing.T) {
		seedUser(t, db, "U00000000002", "taken@farm.test", models.RoleUser)

		_, err := logics.UserSvc.UpdateUser(user.ID, models.UserUpdate{Email: strPtr("taken@farm.test")})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrConflict, errCode(err))
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		updated, err := logics.UserSvc.UpdateUser(user.ID, models.UserUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "Same Name", updated.Name)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, logics.UserSvc.DeleteUser(user.ID))

		_, err := logics.UserSvc.GetUserByID(user.ID)
		assert.Equal(t, apperrors.ErrNotFound, errCode(err))

		err = logics.UserSvc.DeleteUser(user.ID)
		assert.Equal(t, apperrors.ErrNotFound, errCode(err))
	})
}

func TestUserService_ListUsersExpandsRelations(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "U00000000001", "owner@farm.test", models.RoleAdmin)
	gh := seedGreenhouse(t, db, "G00000000001", "North house")
	require.NoError(t, db.Model(gh).Update("owner_id", owner.ID).Error)

	_, err := logics.AssignmentSvc.CreateAssignment(logics.CreateAssignmentInput{
		UserID:       owner.ID,
		GreenhouseID: gh.ID,
		Title:        "Inspect vents",
	})
	require.NoError(t, err)

	users, err := logics.UserSvc.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)

	require.Len(t, users[0].OwnedGreenhouses, 1)
	assert.Equal(t, gh.ID, users[0].OwnedGreenhouses[0].ID)

	require.Len(t, users[0].Assignments, 1)
	require.NotNil(t, users[0].Assignments[0].Greenhouse)
	assert.Equal(t, gh.ID, users[0].Assignments[0].Greenhouse.ID)
}
