package store

import (
	"context"
	"errors"
	"fmt"

	"studyhelp.app/backend/internal/docstore"
)

const (
	coursesCollection        = "courses"
	disciplinesSubcollection = "disciplines"
)

func disciplinesPath(courseID string) string {
	return docstore.Path(coursesCollection, courseID, disciplinesSubcollection)
}

// CourseStore keeps courses and, as a subcollection of each course, its
// disciplines.
type CourseStore struct {
	db docstore.Store
}

func NewCourseStore(db docstore.Store) *CourseStore {
	return &CourseStore{db: db}
}

func (s *CourseStore) ListCourses(ctx context.Context) ([]Course, error) {
	docs, err := s.db.Query(ctx, coursesCollection, docstore.Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	courses := make([]Course, 0, len(docs))
	for _, d := range docs {
		courses = append(courses, decodeCourse(d))
	}
	return courses, nil
}

func (s *CourseStore) GetCourse(ctx context.Context, courseID string) (*Course, error) {
	doc, err := s.db.Get(ctx, coursesCollection, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course %s: %w", courseID, err)
	}
	if doc == nil {
		return nil, nil
	}
	c := decodeCourse(*doc)
	return &c, nil
}

func (s *CourseStore) CreateCourse(ctx context.Context, courseID, name string) error {
	if err := s.db.Set(ctx, coursesCollection, courseID, map[string]any{"id": courseID, "name": name}, false); err != nil {
		return fmt.Errorf("failed to create course %s: %w", courseID, err)
	}
	return nil
}

func (s *CourseStore) UpdateCourse(ctx context.Context, courseID, name string) error {
	return s.update(ctx, coursesCollection, courseID, name)
}

// DeleteCourse removes the course together with its disciplines.
func (s *CourseStore) DeleteCourse(ctx context.Context, courseID string) error {
	disciplines, err := s.ListDisciplines(ctx, courseID)
	if err != nil {
		return err
	}
	for _, d := range disciplines {
		if err := s.DeleteDiscipline(ctx, courseID, d.ID); err != nil {
			return err
		}
	}
	if err := s.db.Delete(ctx, coursesCollection, courseID); err != nil {
		return fmt.Errorf("failed to delete course %s: %w", courseID, err)
	}
	return nil
}

func (s *CourseStore) ListDisciplines(ctx context.Context, courseID string) ([]Discipline, error) {
	docs, err := s.db.Query(ctx, disciplinesPath(courseID), docstore.Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to list disciplines of course %s: %w", courseID, err)
	}
	disciplines := make([]Discipline, 0, len(docs))
	for _, d := range docs {
		disciplines = append(disciplines, decodeDiscipline(d))
	}
	return disciplines, nil
}

func (s *CourseStore) GetDiscipline(ctx context.Context, courseID, disciplineID string) (*Discipline, error) {
	doc, err := s.db.Get(ctx, disciplinesPath(courseID), disciplineID)
	if err != nil {
		return nil, fmt.Errorf("failed to get discipline %s/%s: %w", courseID, disciplineID, err)
	}
	if doc == nil {
		return nil, nil
	}
	d := decodeDiscipline(*doc)
	return &d, nil
}

func (s *CourseStore) CreateDiscipline(ctx context.Context, courseID, disciplineID, name string) error {
	err := s.db.Set(ctx, disciplinesPath(courseID), disciplineID, map[string]any{"id": disciplineID, "name": name}, false)
	if err != nil {
		return fmt.Errorf("failed to create discipline %s/%s: %w", courseID, disciplineID, err)
	}
	return nil
}

func (s *CourseStore) UpdateDiscipline(ctx context.Context, courseID, disciplineID, name string) error {
	return s.update(ctx, disciplinesPath(courseID), disciplineID, name)
}

func (s *CourseStore) DeleteDiscipline(ctx context.Context, courseID, disciplineID string) error {
	if err := s.db.Delete(ctx, disciplinesPath(courseID), disciplineID); err != nil {
		return fmt.Errorf("failed to delete discipline %s/%s: %w", courseID, disciplineID, err)
	}
	return nil
}

func (s *CourseStore) update(ctx context.Context, collection, id, name string) error {
	err := s.db.Update(ctx, collection, id, map[string]any{"name": name})
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	return nil
}

func decodeCourse(d docstore.Document) Course {
	id := stringField(d.Data, "id")
	if id == "" {
		id = d.ID
	}
	return Course{ID: id, Name: stringField(d.Data, "name"), Disciplines: []Discipline{}}
}

func decodeDiscipline(d docstore.Document) Discipline {
	id := stringField(d.Data, "id")
	if id == "" {
		id = d.ID
	}
	return Discipline{ID: id, Name: stringField(d.Data, "name")}
}
