// Package memory provides in-memory implementations of the storage
// repositories. They follow the same contract as package sqlstore and
// back the HTTP handler tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

// StudentStore keeps students in a map keyed by id.
type StudentStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]types.Student
}

var _ storage.StudentRepository = (*StudentStore)(nil)

func NewStudentStore() *StudentStore {
	return &StudentStore{nextID: 1, rows: make(map[int64]types.Student)}
}

func (s *StudentStore) FindByID(_ context.Context, id int64) (types.Student, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.rows[id]
	return st, ok, nil
}

func (s *StudentStore) FindByLastName(_ context.Context, lastName string) (types.Student, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.sorted() {
		if st.LastName == lastName {
			return st, true, nil
		}
	}
	return types.Student{}, false, nil
}

func (s *StudentStore) List(_ context.Context) ([]types.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted(), nil
}

func (s *StudentStore) Insert(_ context.Context, st types.Student) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.ID = s.nextID
	s.nextID++
	s.rows[st.ID] = st
	return st.ID, nil
}

func (s *StudentStore) Update(_ context.Context, st types.Student) (storage.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[st.ID]; !ok {
		return storage.NotFound, nil
	}
	s.rows[st.ID] = st
	return storage.Applied, nil
}

func (s *StudentStore) Delete(_ context.Context, id int64) (storage.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return storage.NotFound, nil
	}
	delete(s.rows, id)
	return storage.Applied, nil
}

// sorted returns the rows ordered by id. Callers hold the lock.
func (s *StudentStore) sorted() []types.Student {
	out := make([]types.Student, 0, len(s.rows))
	for _, st := range s.rows {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CourseStore keeps courses in a map keyed by id.
type CourseStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]types.Course
}

var _ storage.CourseRepository = (*CourseStore)(nil)

func NewCourseStore() *CourseStore {
	return &CourseStore{nextID: 1, rows: make(map[int64]types.Course)}
}

func (s *CourseStore) FindByID(_ context.Context, id int64) (types.Course, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.rows[id]
	return c, ok, nil
}

func (s *CourseStore) FindByName(_ context.Context, name string) (types.Course, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.sorted() {
		if c.Name == name {
			return c, true, nil
		}
	}
	return types.Course{}, false, nil
}

func (s *CourseStore) ListNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.rows))
	for _, c := range s.sorted() {
		names = append(names, c.Name)
	}
	return names, nil
}

func (s *CourseStore) Insert(_ context.Context, c types.Course) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextID
	s.nextID++
	s.rows[c.ID] = c
	return c.ID, nil
}

func (s *CourseStore) Update(_ context.Context, c types.Course) (storage.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[c.ID]; !ok {
		return storage.NotFound, nil
	}
	s.rows[c.ID] = c
	return storage.Applied, nil
}

func (s *CourseStore) Delete(_ context.Context, id int64) (storage.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return storage.NotFound, nil
	}
	delete(s.rows, id)
	return storage.Applied, nil
}

func (s *CourseStore) sorted() []types.Course {
	out := make([]types.Course, 0, len(s.rows))
	for _, c := range s.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
