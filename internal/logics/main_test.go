package logics_test

import (
	"testing"

	"greenhouse-server/configs"
	"greenhouse-server/internal/models"
	"greenhouse-server/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB wires an in-memory database into the global repository
// handle so the services under test run against real SQL.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	configs.Logger = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, repositories.AutoMigrateInOrder(db))

	repositories.DBS.Postgres = db
	t.Cleanup(func() {
		repositories.DBS.Postgres = nil
	})

	return db
}

// seedUser inserts a user row directly, bypassing the service layer.
func seedUser(t *testing.T, db *gorm.DB, id, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		ID:    id,
		Name:  "Test " + id,
		Email: email,
		Role:  role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedGreenhouse inserts a greenhouse row directly.
func seedGreenhouse(t *testing.T, db *gorm.DB, id, name string) *models.Greenhouse {
	t.Helper()
	greenhouse := &models.Greenhouse{
		ID:   id,
		Name: name,
	}
	require.NoError(t, db.Create(greenhouse).Error)
	return greenhouse
}
