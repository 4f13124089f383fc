package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"greenhouse-server/configs"
	"greenhouse-server/internal/controllers"
	"greenhouse-server/internal/models"
	"greenhouse-server/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

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
	t.Cleanup(func() { repositories.DBS.Postgres = nil })

	return db
}

const testWebhookSecret = "whsec_test_0123456789"

func postWebhook(t *testing.T, secret, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/user-created", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if secret != "" {
		req.Header.Set(controllers.WebhookSecretHeader, secret)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, controllers.UserCreatedHandler(c))
	return rec
}

func TestUserCreatedHandler(t *testing.T) {
	db := setupTestDB(t)

	prev := configs.Configs.Secrets.WebhookSecret
	configs.Configs.Secrets.WebhookSecret = testWebhookSecret
	t.Cleanup(func() { configs.Configs.Secrets.WebhookSecret = prev })

	payload := `{"data":{"id":"user_2abcDEF","first_name":"Clerk","last_name":"User","email_addresses":[{"email_address":"clerk@farm.test"}]}}`

	t.Run("missing secret is rejected", func(t *testing.T) {
		rec := postWebhook(t, "", payload)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		rec := postWebhook(t, "whsec_wrong", payload)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("first delivery provisions the user", func(t *testing.T) {
		rec := postWebhook(t, testWebhookSecret, payload)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var user models.User
		require.NoError(t, db.First(&user, "external_id = ?", "user_2abcDEF").Error)
		assert.Equal(t, "clerk@farm.test", user.Email)
		assert.Equal(t, "Clerk User", user.Name)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("replayed delivery is idempotent", func(t *testing.T) {
		rec := postWebhook(t, testWebhookSecret, payload)
		assert.Equal(t, http.StatusOK, rec.Code)

		var count int64
		require.NoError(t, db.Model(&models.User{}).Where("external_id = ?", "user_2abcDEF").Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("payload without id is rejected", func(t *testing.T) {
		rec := postWebhook(t, testWebhookSecret, `{"data":{"first_name":"No","last_name":"ID"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
