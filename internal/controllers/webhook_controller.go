package controllers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"greenhouse-server/configs"
	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// WebhookSecretHeader carries the shared secret on provisioning calls.
const WebhookSecretHeader = "X-Webhook-Secret"

// UserCreatedPayload mirrors the identity provider's user.created event.
type UserCreatedPayload struct {
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// UserCreatedHandler provisions a local user row for an identity-provider
// account. Deliveries are retried by the provider, so the handler is
// idempotent on the external id: a replay returns the existing row.
// POST /webhooks/user-created
func UserCreatedHandler(c echo.Context) error {
	secret := configs.Configs.Secrets.WebhookSecret
	got := c.Request().Header.Get(WebhookSecretHeader)
	if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid webhook secret"})
	}

	payload := new(UserCreatedPayload)
	if err := c.Bind(payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if payload.Data.ID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user id is required"})
	}

	email := ""
	if len(payload.Data.EmailAddresses) > 0 {
		email = payload.Data.EmailAddresses[0].EmailAddress
	}
	name := strings.TrimSpace(payload.Data.FirstName + " " + payload.Data.LastName)

	user, created, err := logics.UserSvc.ProvisionExternalUser(payload.Data.ID, email, name)
	if err != nil {
		return renderError(c, err)
	}

	if created {
		configs.Logger.Info("Provisioned user from webhook",
			zap.String("user_id", user.ID),
			zap.String("external_id", payload.Data.ID))
		_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeUserProvisioned, map[string]string{"external_id": payload.Data.ID}, &user.ID)
		return c.JSON(http.StatusCreated, user)
	}

	return c.JSON(http.StatusOK, user)
}
