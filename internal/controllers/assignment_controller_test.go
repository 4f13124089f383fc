package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"greenhouse-server/internal/controllers"
	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeIdentity injects a caller id the way the token middleware would.
func fakeIdentity(userID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", userID)
			return next(c)
		}
	}
}

func seedAssignmentFixture(t *testing.T, db *gorm.DB) (admin, owner, other *models.User, assignment *models.Assignment) {
	t.Helper()

	admin = seedUser(t, db, "U00000000001", "admin@farm.test", models.RoleAdmin)
	owner = seedUser(t, db, "U00000000002", "owner@farm.test", models.RoleUser)
	other = seedUser(t, db, "U00000000003", "other@farm.test", models.RoleUser)
	gh := &models.Greenhouse{ID: "G00000000001", Name: "North house"}
	require.NoError(t, db.Create(gh).Error)

	var err error
	assignment, err = logics.AssignmentSvc.CreateAssignment(logics.CreateAssignmentInput{
		UserID:       owner.ID,
		GreenhouseID: gh.ID,
		Title:        "Prune vines",
	})
	require.NoError(t, err)
	return admin, owner, other, assignment
}

func putAssignment(t *testing.T, callerID, assignmentID, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	ac := controllers.NewAssignmentController(logics.AssignmentSvc, logics.UserSvc)
	e.PUT("/api/assignments/:id", ac.UpdateAssignment, fakeIdentity(callerID))

	req := httptest.NewRequest(http.MethodPut, "/api/assignments/"+assignmentID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAssignmentController_UpdateAssignment(t *testing.T) {
	t.Run("assignee updates own status", func(t *testing.T) {
		db := setupTestDB(t)
		_, owner, _, assignment := seedAssignmentFixture(t, db)

		rec := putAssignment(t, owner.ID, assignment.ID, `{"status":"IN_PROGRESS","notes":"started"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		fresh, err := logics.AssignmentSvc.GetAssignmentByID(assignment.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, fresh.Status)
		assert.Equal(t, "started", fresh.Notes)
	})

	t.Run("assignee touching admin fields is forbidden", func(t *testing.T) {
		db := setupTestDB(t)
		_, owner, _, assignment := seedAssignmentFixture(t, db)

		rec := putAssignment(t, owner.ID, assignment.ID, `{"title":"Renamed"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		fresh, err := logics.AssignmentSvc.GetAssignmentByID(assignment.ID)
		require.NoError(t, err)
		assert.Equal(t, "Prune vines", fresh.Title)
	})

	t.Run("non-assignee non-admin is forbidden", func(t *testing.T) {
		db := setupTestDB(t)
		_, _, other, assignment := seedAssignmentFixture(t, db)

		rec := putAssignment(t, other.ID, assignment.ID, `{"status":"CANCELLED"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin updates any field of any assignment", func(t *testing.T) {
		db := setupTestDB(t)
		admin, _, other, assignment := seedAssignmentFixture(t, db)

		rec := putAssignment(t, admin.ID, assignment.ID, `{"title":"Reassigned work","user_id":"`+other.ID+`"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		fresh, err := logics.AssignmentSvc.GetAssignmentByID(assignment.ID)
		require.NoError(t, err)
		assert.Equal(t, "Reassigned work", fresh.Title)
		assert.Equal(t, other.ID, fresh.UserID)
	})

	t.Run("role is read from the database, not the request", func(t *testing.T) {
		db := setupTestDB(t)
		admin, _, _, assignment := seedAssignmentFixture(t, db)

		// Demote the admin; the next request must be treated as non-admin.
		require.NoError(t, db.Model(admin).Update("role", models.RoleUser).Error)

		rec := putAssignment(t, admin.ID, assignment.ID, `{"title":"Sneaky rename"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("completion via own path stamps completed_at", func(t *testing.T) {
		db := setupTestDB(t)
		_, owner, _, assignment := seedAssignmentFixture(t, db)

		rec := putAssignment(t, owner.ID, assignment.ID, `{"status":"COMPLETED"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		fresh, err := logics.AssignmentSvc.GetAssignmentByID(assignment.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, fresh.Status)
		assert.NotNil(t, fresh.CompletedAt)
	})
}
