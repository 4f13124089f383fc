package logics_test

import (
	"testing"
	"time"

	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/models"
	apperrors "greenhouse-server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func statusPtr(s models.AssignmentStatus) *models.AssignmentStatus { return &s }

func TestAssignmentService_CreateAssignment(t *testing.T) {
	db := setupTestDB(t)
	worker := seedUser(t, db, "U00000000001", "worker@farm.test", models.RoleUser)
	gh := seedGreenhouse(t, db, "G00000000001", "North house")

	t.Run("defaults priority and status", func(t *testing.T) {
		assignment, err := logics.AssignmentSvc.CreateAssignment(logics.CreateAssignmentInput{
			UserID:       worker.ID,
			GreenhouseID: gh.ID,
			Title:        "Check irrigation",
		})
		require.NoError(t, err)
		assert.Equal(t, models.PriorityMedium, assignment.Priority)
		assert.Equal(t, models.StatusPending, assignment.Status)
		assert.Nil(t, assignment.CompletedAt)
		assert.Equal(t, "A", assignment.ID[:1])
		require.NotNil(t, assignment.User)
		assert.Equal(t, worker.ID, assignment.User.ID)
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		_, err := logics.AssignmentSvc.CreateAssignment(logics.CreateAssignmentInput{
			UserID:       "U99999999999",
			GreenhouseID: gh.ID,
			Title:        "Ghost task",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrNotFound, errCode(err))
	})

	t.Run("rejects unknown greenhouse", func(t *testing.T) {
		_, err := logics.AssignmentSvc.CreateAssignment(logics.CreateAssignmentInput{
			UserID:       worker.ID,
			GreenhouseID: "G99999999999",
			Title:        "Ghost task",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrNotFound, errCode(err))
	})
}

func TestAssignmentService_CompletionTimestamp(t *testing.T) {
	db := setupTestDB(t)
	worker := seedUser(t, db, "U00000000001", "worker@farm.test", models.RoleUser)
	gh := seedGreenhouse(t, db, "G00000000001", "North house")

	assignment, err := logics.AssignmentSvc.CreateAssignment(logics.CreateAssignmentInput{
		UserID:       worker.ID,
		GreenhouseID: gh.ID,
		Title:        "Harvest tomatoes",
	})
	require.NoError(t, err)

	t.Run("moving to COMPLETED stamps completed_at", func(t *testing.T) {
		updated, err := logics.AssignmentSvc.UpdateAssignment(assignment.ID, models.AssignmentUpdate{
			Status: statusPtr(models.StatusCompleted),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, updated.Status)
		require.NotNil(t, updated.CompletedAt)
		assert.WithinDuration(t, time.Now(), *updated.CompletedAt, time.Minute)
	})

	t.Run("repeating COMPLETED keeps the original timestamp", func(t *testing.T) {
		before, err := logics.AssignmentSvc.GetAssignmentByID(assignment.ID)
		require.NoError(t, err)
		require.NotNil(t, before.CompletedAt)

		time.Sleep(15 * time.Millisecond)
		updated, err := logics.AssignmentSvc.UpdateAssignment(assignment.ID, models.AssignmentUpdate{
			Status: statusPtr(models.StatusCompleted),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
		assert.True(t, before.CompletedAt.Equal(*updated.CompletedAt), "completed_at moved on a repeated COMPLETED update")
	})

	t.Run("caller-supplied completed_at wins", func(t *testing.T) {
		want := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
		updated, err := logics.AssignmentSvc.UpdateAssignment(assignment.ID, models.AssignmentUpdate{
			Status:      statusPtr(models.StatusCompleted),
			CompletedAt: &want,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
		assert.WithinDuration(t, want, *updated.CompletedAt, time.Second)
	})

	t.Run("leaving COMPLETED clears completed_at", func(t *testing.T) {
		updated, err := logics.AssignmentSvc.UpdateAssignment(assignment.ID, models.AssignmentUpdate{
			Status: statusPtr(models.StatusInProgress),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, updated.Status)
		assert.Nil(t, updated.CompletedAt)
	})

	t.Run("update without status leaves completed_at untouched", func(t *testing.T) {
		_, err := logics.AssignmentSvc.UpdateAssignment(assignment.ID, models.AssignmentUpdate{
			Status: statusPtr(models.StatusCompleted),
		})
		require.NoError(t, err)

		updated, err := logics.AssignmentSvc.UpdateAssignment(assignment.ID, models.AssignmentUpdate{
			Notes: strPtr("ripe rows 3-5 only"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, updated.Status)
		assert.NotNil(t, updated.CompletedAt)
		assert.Equal(t, "ripe rows 3-5 only", updated.Notes)
	})
}

func TestAssignmentService_UpdateOwnAssignment(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "U00000000001", "owner@farm.test", models.RoleUser)
	other := seedUser(t, db, "U00000000002", "other@farm.test", models.RoleUser)
	gh := seedGreenhouse(t, db, "G00000000001", "North house")

	assignment, err := logics.AssignmentSvc.CreateAssignment(logics.CreateAssignmentInput{
		UserID:       owner.ID,
		GreenhouseID: gh.ID,
		Title:        "Prune vines",
	})
	require.NoError(t, err)

	t.Run("assignee may update status and notes", func(t *testing.T) {
		updated, err := logics.AssignmentSvc.UpdateOwnAssignment(assignment.ID, owner.ID, models.AssignmentUpdate{
			Status: statusPtr(models.StatusInProgress),
			Notes:  strPtr("started on row 1"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, updated.Status)
		assert.Equal(t, "started on row 1", updated.Notes)
	})

	t.Run("assignee may not touch admin fields", func(t *testing.T) {
		_, err := logics.AssignmentSvc.UpdateOwnAssignment(assignment.ID, owner.ID, models.AssignmentUpdate{
			Title: strPtr("Renamed task"),
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrUnauthorized, errCode(err))

		fresh, err := logics.AssignmentSvc.GetAssignmentByID(assignment.ID)
		require.NoError(t, err)
		assert.Equal(t, "Prune vines", fresh.Title)
	})

	t.Run("non-assignee is rejected even for owner fields", func(t *testing.T) {
		_, err := logics.AssignmentSvc.UpdateOwnAssignment(assignment.ID, other.ID, models.AssignmentUpdate{
			Status: statusPtr(models.StatusCancelled),
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrUnauthorized, errCode(err))
	})

	t.Run("missing assignment yields not found", func(t *testing.T) {
		_, err := logics.AssignmentSvc.UpdateOwnAssignment("A99999999999", owner.ID, models.AssignmentUpdate{
			Status: statusPtr(models.StatusCancelled),
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrNotFound, errCode(err))
	})
}

func TestAssignmentService_DeleteAssignment(t *testing.T) {
	db := setupTestDB(t)
	worker := seedUser(t, db, "U00000000001", "worker@farm.test", models.RoleUser)
	gh := seedGreenhouse(t, db, "G00000000001", "North house")

	assignment, err := logics.AssignmentSvc.CreateAssignment(logics.CreateAssignmentInput{
		UserID:       worker.ID,
		GreenhouseID: gh.ID,
		Title:        "Weed beds",
	})
	require.NoError(t, err)

	require.NoError(t, logics.AssignmentSvc.DeleteAssignment(assignment.ID))

	_, err = logics.AssignmentSvc.GetAssignmentByID(assignment.ID)
	assert.Equal(t, apperrors.ErrNotFound, errCode(err))

	err = logics.AssignmentSvc.DeleteAssignment(assignment.ID)
	assert.Equal(t, apperrors.ErrNotFound, errCode(err))

	list, err := logics.AssignmentSvc.ListAssignments()
	require.NoError(t, err)
	assert.Empty(t, list)
}

// errCode extracts the application error code for assertions.
func errCode(err error) string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr.Code()
	}
	return ""
}
