package api

import (
	"net/http"
	"time"
)

type ScheduleResponse struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	CourseID   string    `json:"course_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	CourseName string    `json:"course_name"`
	TeacherID  string    `json:"teacher_id"`
	Room       string    `json:"room"`
}

func (a *API) Schedules() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := r.URL.Query().Get("studentId")

		schedules, err := a.service.Schedules(identity(r.Context()), studentID)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		response := make([]ScheduleResponse, 0, len(schedules))
		for _, s := range schedules {
			response = append(response, ScheduleResponse{
				ID:         s.ID,
				StudentID:  s.StudentID,
				CourseID:   s.CourseID,
				StartTime:  s.StartTime,
				EndTime:    s.EndTime,
				Status:     s.Status,
				CourseName: s.CourseName,
				TeacherID:  s.TeacherID,
				Room:       s.Room,
			})
		}
		returnJson(response, w)
	}
}
