package service

import "fmt"

// Schedules returns the schedule of studentID, or of the caller when
// studentID is empty. Only admins may read another student's schedule.
func (s *Service) Schedules(
	caller *Identity,
	studentID string,
) (
	[]Schedule,
	error,
) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	if studentID == "" {
		studentID = caller.ID
	}
	if studentID != caller.ID && !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	schedules, err := s.scheduleStore.ListSchedules(studentID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list schedules: %v", ErrInternal, err)
	}
	return schedules, nil
}

// SyncCourses replaces course definitions in the store.
func (s *Service) SyncCourses(courses []Course) error {
	if err := s.scheduleStore.UpsertCourses(courses); err != nil {
		return fmt.Errorf("%w: failed to sync courses: %v", ErrInternal, err)
	}
	return nil
}
