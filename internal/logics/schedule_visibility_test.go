package logics_test

import (
	"testing"
	"time"

	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleSchedules(t *testing.T) {
	schedules := []models.FertilizerSchedule{
		{ID: "S00000000001", GreenhouseID: "G00000000001"},
		{ID: "S00000000002", GreenhouseID: "G00000000001"},
		{ID: "S00000000003", GreenhouseID: "G00000000002"},
	}
	assignments := []models.Assignment{
		{ID: "A00000000001", UserID: "U00000000001", GreenhouseID: "G00000000001"},
		{ID: "A00000000002", UserID: "U00000000002", GreenhouseID: "G00000000002"},
	}

	t.Run("user sees schedules of assigned greenhouses only", func(t *testing.T) {
		visible := logics.VisibleSchedules(schedules, assignments, "U00000000001")
		require.Len(t, visible, 2)
		assert.Equal(t, "S00000000001", visible[0].ID)
		assert.Equal(t, "S00000000002", visible[1].ID)

		visible = logics.VisibleSchedules(schedules, assignments, "U00000000002")
		require.Len(t, visible, 1)
		assert.Equal(t, "S00000000003", visible[0].ID)
	})

	t.Run("user with no assignments sees nothing", func(t *testing.T) {
		visible := logics.VisibleSchedules(schedules, assignments, "U00000000003")
		assert.Empty(t, visible)
	})

	t.Run("other users' assignments are ignored", func(t *testing.T) {
		onlyOthers := []models.Assignment{
			{ID: "A00000000003", UserID: "U00000000009", GreenhouseID: "G00000000001"},
		}
		visible := logics.VisibleSchedules(schedules, onlyOthers, "U00000000001")
		assert.Empty(t, visible)
	})

	t.Run("input order is preserved", func(t *testing.T) {
		reversed := []models.FertilizerSchedule{schedules[2], schedules[1], schedules[0]}
		both := []models.Assignment{
			{ID: "A1", UserID: "U1", GreenhouseID: "G00000000001"},
			{ID: "A2", UserID: "U1", GreenhouseID: "G00000000002"},
		}
		visible := logics.VisibleSchedules(reversed, both, "U1")
		require.Len(t, visible, 3)
		assert.Equal(t, "S00000000003", visible[0].ID)
		assert.Equal(t, "S00000000002", visible[1].ID)
		assert.Equal(t, "S00000000001", visible[2].ID)
	})

	t.Run("duplicate assignments to the same greenhouse do not duplicate schedules", func(t *testing.T) {
		dup := []models.Assignment{
			{ID: "A1", UserID: "U1", GreenhouseID: "G00000000001"},
			{ID: "A2", UserID: "U1", GreenhouseID: "G00000000001"},
		}
		visible := logics.VisibleSchedules(schedules, dup, "U1")
		assert.Len(t, visible, 2)
	})
}

func TestListSchedulesForUser(t *testing.T) {
	db := setupTestDB(t)

	admin := seedUser(t, db, "U00000000001", "admin@farm.test", models.RoleAdmin)
	worker := seedUser(t, db, "U00000000002", "worker@farm.test", models.RoleUser)
	gh1 := seedGreenhouse(t, db, "G00000000001", "North house")
	gh2 := seedGreenhouse(t, db, "G00000000002", "South house")

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, ghID := range []string{gh1.ID, gh1.ID, gh2.ID} {
		_, err := logics.ScheduleSvc.CreateSchedule(logics.CreateScheduleInput{
			Description:  "spring feeding",
			StartDate:    start.AddDate(0, 0, i),
			Items:        "NPK 10-10-10",
			GreenhouseID: ghID,
			CreatedByID:  admin.ID,
		})
		require.NoError(t, err)
	}

	_, err := logics.AssignmentSvc.CreateAssignment(logics.CreateAssignmentInput{
		UserID:       worker.ID,
		GreenhouseID: gh1.ID,
		Title:        "Water the beds",
	})
	require.NoError(t, err)

	t.Run("assigned user sees matching schedules", func(t *testing.T) {
		visible, err := logics.ScheduleSvc.ListSchedulesForUser(worker.ID)
		require.NoError(t, err)
		require.Len(t, visible, 2)
		for _, sched := range visible {
			assert.Equal(t, gh1.ID, sched.GreenhouseID)
		}
	})

	t.Run("unassigned user sees nothing", func(t *testing.T) {
		visible, err := logics.ScheduleSvc.ListSchedulesForUser(admin.ID)
		require.NoError(t, err)
		assert.Empty(t, visible)
	})
}
