package core

import (
	"context"
	"fmt"
	"strings"

	"studyhelp.app/backend/internal/store"
)

// CatalogService manages the course catalog and the disciplines of each
// course.
type CatalogService struct {
	courses *store.CourseStore
}

func NewCatalogService(courses *store.CourseStore) *CatalogService {
	return &CatalogService{courses: courses}
}

func (s *CatalogService) ListCourses(ctx context.Context) ([]store.Course, error) {
	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		disciplines, err := s.courses.ListDisciplines(ctx, courses[i].ID)
		if err != nil {
			return nil, err
		}
		courses[i].Disciplines = disciplines
	}
	return courses, nil
}

func (s *CatalogService) GetCourse(ctx context.Context, courseID string) (*store.Course, error) {
	c, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: course %s", ErrNotFound, courseID)
	}
	disciplines, err := s.courses.ListDisciplines(ctx, courseID)
	if err != nil {
		return nil, err
	}
	c.Disciplines = disciplines
	return c, nil
}

func (s *CatalogService) CreateCourse(ctx context.Context, courseID, name string) (store.Course, error) {
	name, err := requireName(courseID, name)
	if err != nil {
		return store.Course{}, err
	}
	if err := s.courses.CreateCourse(ctx, courseID, name); err != nil {
		return store.Course{}, err
	}
	return store.Course{ID: courseID, Name: name, Disciplines: []store.Discipline{}}, nil
}

func (s *CatalogService) UpdateCourse(ctx context.Context, courseID, name string) (store.Course, error) {
	name, err := requireName(courseID, name)
	if err != nil {
		return store.Course{}, err
	}
	if err := s.courses.UpdateCourse(ctx, courseID, name); err != nil {
		return store.Course{}, mapNotFound(err)
	}
	return store.Course{ID: courseID, Name: name}, nil
}

func (s *CatalogService) DeleteCourse(ctx context.Context, courseID string) error {
	return s.courses.DeleteCourse(ctx, courseID)
}

func (s *CatalogService) ListDisciplines(ctx context.Context, courseID string) ([]store.Discipline, error) {
	return s.courses.ListDisciplines(ctx, courseID)
}

func (s *CatalogService) GetDiscipline(ctx context.Context, courseID, disciplineID string) (*store.Discipline, error) {
	d, err := s.courses.GetDiscipline(ctx, courseID, disciplineID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: discipline %s/%s", ErrNotFound, courseID, disciplineID)
	}
	return d, nil
}

func (s *CatalogService) CreateDiscipline(ctx context.Context, courseID, disciplineID, name string) (store.Discipline, error) {
	name, err := requireName(disciplineID, name)
	if err != nil {
		return store.Discipline{}, err
	}
	if err := s.courses.CreateDiscipline(ctx, courseID, disciplineID, name); err != nil {
		return store.Discipline{}, err
	}
	return store.Discipline{ID: disciplineID, Name: name}, nil
}

func (s *CatalogService) UpdateDiscipline(ctx context.Context, courseID, disciplineID, name string) (store.Discipline, error) {
	name, err := requireName(disciplineID, name)
	if err != nil {
		return store.Discipline{}, err
	}
	if err := s.courses.UpdateDiscipline(ctx, courseID, disciplineID, name); err != nil {
		return store.Discipline{}, mapNotFound(err)
	}
	return store.Discipline{ID: disciplineID, Name: name}, nil
}

func (s *CatalogService) DeleteDiscipline(ctx context.Context, courseID, disciplineID string) error {
	return s.courses.DeleteDiscipline(ctx, courseID, disciplineID)
}

func requireName(id, name string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: id is required", ErrInvalidArgument)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	return name, nil
}
