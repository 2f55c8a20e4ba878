package service

import "time"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

type User struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	Role         string
}

type Course struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TeacherID string `json:"teacher_id"`
	Room      string `json:"room"`
}

type Schedule struct {
	ID         string
	StudentID  string
	CourseID   string
	StartTime  time.Time
	EndTime    time.Time
	Status     string
	CourseName string
	TeacherID  string
	Room       string
}

// UserStore handles persistence of user accounts
type UserStore interface {
	InsertUser(user *User) error
	GetUser(username string) (*User, error)
	UpdatePasswordHash(userID string, hash string) error
	ListUsers() ([]User, error)
}

// ScheduleStore handles persistence of courses and schedules
type ScheduleStore interface {
	UpsertCourses(courses []Course) error
	InsertSchedule(schedule *Schedule) error
	ListSchedules(studentID string) ([]Schedule, error)
}
