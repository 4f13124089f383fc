package logics

import (
	"greenhouse-server/internal/models"
)

// VisibleSchedules projects the schedules a user should see: those whose
// greenhouse appears in at least one of the user's assignments. Order of
// the input schedule list is preserved. A user with no assignments sees
// nothing.
func VisibleSchedules(schedules []models.FertilizerSchedule, assignments []models.Assignment, userID string) []models.FertilizerSchedule {
	greenhouseIDs := make(map[string]struct{})
	for _, a := range assignments {
		if a.UserID == userID {
			greenhouseIDs[a.GreenhouseID] = struct{}{}
		}
	}

	visible := make([]models.FertilizerSchedule, 0, len(schedules))
	for _, sched := range schedules {
		if _, ok := greenhouseIDs[sched.GreenhouseID]; ok {
			visible = append(visible, sched)
		}
	}
	return visible
}

// ListSchedulesForUser returns the schedules visible to the given user
// based on their greenhouse assignments, ordered by start date.
func (s *ScheduleService) ListSchedulesForUser(userID string) ([]models.FertilizerSchedule, error) {
	assignments, err := AssignmentSvc.ListAssignmentsForUser(userID)
	if err != nil {
		return nil, err
	}

	schedules, err := s.ListSchedules()
	if err != nil {
		return nil, err
	}

	return VisibleSchedules(schedules, assignments, userID), nil
}
