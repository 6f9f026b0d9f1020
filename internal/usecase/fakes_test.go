package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/repository"
)

// memoryStore is an in-memory stand-in for the SQL repositories.
type memoryStore struct {
	mu        sync.Mutex
	nextID    int64
	courses   map[int64]entity.Course
	questions map[int64][]entity.CourseQuestion
	users     map[string]entity.User

	lastListQuery *repository.ListCourseQuery
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		courses:   map[int64]entity.Course{},
		questions: map[int64][]entity.CourseQuestion{},
		users:     map[string]entity.User{},
	}
}

type memCourses struct{ *memoryStore }
type memQuestions struct{ *memoryStore }
type memUsers struct{ *memoryStore }

func (m memCourses) Create(_ context.Context, c *entity.Course) (*entity.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	out := *c
	out.ID = m.nextID
	m.courses[out.ID] = out
	return &out, nil
}

func (m memCourses) Update(_ context.Context, c *entity.Course) (*entity.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[c.ID]; !ok {
		return nil, entity.ErrCourseNotFound
	}
	m.courses[c.ID] = *c
	out := *c
	return &out, nil
}

func (m memCourses) GetByID(_ context.Context, id int64) (*entity.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[id]
	if !ok {
		return nil, entity.ErrCourseNotFound
	}
	c.QuestionCount = int64(len(m.questions[id]))
	return &c, nil
}

func (m memCourses) List(_ context.Context, q *repository.ListCourseQuery) ([]entity.Course, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastListQuery = q
	out := make([]entity.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m memCourses) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return entity.ErrCourseNotFound
	}
	delete(m.courses, id)
	delete(m.questions, id)
	return nil
}

func (m memQuestions) ListByCourse(_ context.Context, courseID int64) ([]entity.CourseQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]entity.CourseQuestion(nil), m.questions[courseID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m memQuestions) AddToCourse(_ context.Context, q *entity.CourseQuestion) (*entity.CourseQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[q.CourseID]; !ok {
		return nil, entity.ErrCourseNotFound
	}
	m.nextID++
	out := *q
	out.QuestionID = m.nextID
	if out.SortOrder <= 0 {
		out.SortOrder = int32(len(m.questions[q.CourseID]) + 1)
	}
	m.questions[q.CourseID] = append(m.questions[q.CourseID], out)
	return &out, nil
}

func (m memQuestions) Update(_ context.Context, q *entity.CourseQuestion) (*entity.CourseQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.questions[q.CourseID] {
		if existing.QuestionID == q.QuestionID {
			out := *q
			if out.SortOrder <= 0 {
				out.SortOrder = existing.SortOrder
			}
			m.questions[q.CourseID][i] = out
			return &out, nil
		}
	}
	return nil, entity.ErrQuestionNotFound
}

func (m memQuestions) RemoveFromCourse(_ context.Context, courseID, questionID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.questions[courseID]
	for i, q := range list {
		if q.QuestionID == questionID {
			m.questions[courseID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return entity.ErrQuestionNotFound
}

func (m memQuestions) Reorder(_ context.Context, courseID int64, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.questions[courseID]
	if len(ids) != len(list) {
		return entity.ErrInvalidReorder
	}
	pos := make(map[int64]int32, len(ids))
	for i, id := range ids {
		pos[id] = int32(i + 1)
	}
	for i := range list {
		order, ok := pos[list[i].QuestionID]
		if !ok {
			return entity.ErrInvalidReorder
		}
		list[i].SortOrder = order
	}
	return nil
}

func (m memUsers) FindByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return &u, nil
}

func (m memUsers) Create(_ context.Context, u *entity.User) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	out := *u
	return &out, nil
}

func (m memUsers) Update(_ context.Context, u *entity.User) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return nil, entity.ErrUserNotFound
	}
	m.users[u.ID] = *u
	out := *u
	return &out, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }
