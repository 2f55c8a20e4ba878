// Package resources loads course definitions from disk and keeps them in sync
// with the store while the server runs.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.sr.ht/~jakintosh/tutor/internal/service"
	"go.uber.org/zap"
)

// SyncFunc receives the full set of courses after every load.
type SyncFunc func(courses []service.Course) error

type CourseCatalog struct {
	dir   string
	sync  SyncFunc
	log   *zap.Logger
	delay time.Duration
}

func NewCourseCatalog(
	dir string,
	sync SyncFunc,
	log *zap.Logger,
) *CourseCatalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &CourseCatalog{
		dir:   dir,
		sync:  sync,
		log:   log.Named("courses"),
		delay: reloadDelay,
	}
}

// Load reads every course definition and hands them to the sync func.
// Unreadable files are skipped and logged.
func (c *CourseCatalog) Load() error {
	courses, err := LoadCourses(c.dir, c.log)
	if err != nil {
		return err
	}
	if err := c.sync(courses); err != nil {
		return fmt.Errorf("failed to sync courses: %w", err)
	}
	c.log.Info("loaded courses", zap.String("dir", c.dir), zap.Int("count", len(courses)))
	return nil
}

// Watch reloads the catalog whenever the directory changes, until ctx is done.
func (c *CourseCatalog) Watch(ctx context.Context) error {
	return watchDir(ctx, c.dir, c.delay, func() {
		if err := c.Load(); err != nil {
			c.log.Error("course reload failed", zap.Error(err))
		}
	}, c.log)
}

// LoadCourses parses each *.json file in dir as one course. A course without
// an id takes the file name stem. Later files win on duplicate ids.
func LoadCourses(
	dir string,
	log *zap.Logger,
) (
	[]service.Course,
	error,
) {
	if log == nil {
		log = zap.NewNop()
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read course defs dir: %v", err)
	}

	byID := make(map[string]service.Course)
	for _, file := range files {
		name := file.Name()
		if !file.Type().IsRegular() || filepath.Ext(name) != ".json" {
			continue
		}
		course, err := loadCourse(filepath.Join(dir, name))
		if err != nil {
			log.Warn("skipping course def", zap.String("file", name), zap.Error(err))
			continue
		}
		if course.ID == "" {
			course.ID = strings.TrimSuffix(name, ".json")
		}

		if _, ok := byID[course.ID]; ok {
			log.Warn("duplicate course definition; overwriting", zap.String("id", course.ID))
		}
		byID[course.ID] = *course
	}

	courses := make([]service.Course, 0, len(byID))
	for _, course := range byID {
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].ID < courses[j].ID
	})
	return courses, nil
}

func loadCourse(path string) (*service.Course, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %v", path, err)
	}

	course := &service.Course{}
	if err := json.Unmarshal(file, course); err != nil {
		return nil, fmt.Errorf("failed to parse json of '%s': %v", path, err)
	}
	if course.Name == "" {
		return nil, fmt.Errorf("course in '%s' has no name", path)
	}
	return course, nil
}
