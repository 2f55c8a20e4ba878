package database

import (
	"fmt"
	"time"

	"git.sr.ht/~jakintosh/tutor/internal/service"
)

func (s *SQLiteStore) UpsertCourses(
	courses []service.Course,
) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("couldn't begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, course := range courses {
		_, err := tx.Exec(`
			INSERT INTO courses (id, name, teacher_id, room)
			VALUES (?1, ?2, ?3, ?4)
			ON CONFLICT (id) DO UPDATE SET
				name=excluded.name,
				teacher_id=excluded.teacher_id,
				room=excluded.room;`,
			course.ID,
			course.Name,
			course.TeacherID,
			course.Room,
		)
		if err != nil {
			return fmt.Errorf("couldn't upsert course '%s': %v", course.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("couldn't commit courses: %v", err)
	}
	return nil
}

func (s *SQLiteStore) InsertSchedule(
	schedule *service.Schedule,
) error {
	_, err := s.db.Exec(`
		INSERT INTO schedules (id, student_id, course_id, start_time, end_time, status)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6);`,
		schedule.ID,
		schedule.StudentID,
		schedule.CourseID,
		schedule.StartTime.UTC().Format(time.RFC3339),
		schedule.EndTime.UTC().Format(time.RFC3339),
		schedule.Status,
	)
	if err != nil {
		return fmt.Errorf("couldn't insert into schedules: %v", err)
	}
	return nil
}

func (s *SQLiteStore) ListSchedules(
	studentID string,
) (
	[]service.Schedule,
	error,
) {
	rows, err := s.db.Query(`
		SELECT s.id, s.student_id, s.course_id, s.start_time, s.end_time, s.status,
		       c.name, COALESCE(c.teacher_id, ''), COALESCE(c.room, '')
		FROM schedules s
		JOIN courses c ON s.course_id = c.id
		WHERE s.student_id=?1
		ORDER BY s.start_time;`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't query schedules: %v", err)
	}
	defer rows.Close()

	schedules := []service.Schedule{}
	for rows.Next() {
		var (
			schedule service.Schedule
			start    string
			end      string
		)
		err := rows.Scan(
			&schedule.ID,
			&schedule.StudentID,
			&schedule.CourseID,
			&start,
			&end,
			&schedule.Status,
			&schedule.CourseName,
			&schedule.TeacherID,
			&schedule.Room,
		)
		if err != nil {
			return nil, fmt.Errorf("couldn't scan schedule: %v", err)
		}
		if schedule.StartTime, err = time.Parse(time.RFC3339, start); err != nil {
			return nil, fmt.Errorf("schedule '%s' has bad start_time: %v", schedule.ID, err)
		}
		if schedule.EndTime, err = time.Parse(time.RFC3339, end); err != nil {
			return nil, fmt.Errorf("schedule '%s' has bad end_time: %v", schedule.ID, err)
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("couldn't iterate schedules: %v", err)
	}
	return schedules, nil
}
