package usecase

import (
	"context"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/samber/lo"

	"github.com/eslsoft/keymantra/internal/dictation"
	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/repository"
	"github.com/eslsoft/keymantra/internal/timer"
)

// DictationSettings tunes practice sessions.
type DictationSettings struct {
	AdvanceDelay time.Duration
	SessionTTL   time.Duration
}

// PracticeSession is a learner's run through one course.
type PracticeSession struct {
	ID       string
	OwnerID  string
	CourseID int64

	controller *dictation.Controller

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *PracticeSession) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *PracticeSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// DictationUsecase runs server-side practice sessions. Sessions live in
// memory and are only visible to the owner that started them.
type DictationUsecase interface {
	Start(ctx context.Context, ownerID string, courseID int64) (*PracticeSession, dictation.View, error)
	Input(ctx context.Context, ownerID, sessionID, text string, caret int) (dictation.View, error)
	MoveCaret(ctx context.Context, ownerID, sessionID string, caret int) (dictation.View, error)
	Submit(ctx context.Context, ownerID, sessionID string, composing bool) (dictation.View, error)
	Next(ctx context.Context, ownerID, sessionID string) (dictation.View, error)
	Previous(ctx context.Context, ownerID, sessionID string) (dictation.View, error)
	Get(ctx context.Context, ownerID, sessionID string) (*PracticeSession, dictation.View, error)
	End(ctx context.Context, ownerID, sessionID string) error
	// EvictIdle closes sessions untouched for longer than the session TTL and
	// returns how many were removed.
	EvictIdle(now time.Time) int
	// CloseAll ends every session, for shutdown.
	CloseAll()
}

type dictationUsecase struct {
	courses   repository.CourseRepository
	questions repository.QuestionRepository
	settings  DictationSettings

	clock func() time.Time
	sched timer.Scheduler
	newID func() (string, error)

	mu       sync.RWMutex
	sessions map[string]*PracticeSession
}

func NewDictationUsecase(courses repository.CourseRepository, questions repository.QuestionRepository, settings DictationSettings) DictationUsecase {
	if settings.AdvanceDelay <= 0 {
		settings.AdvanceDelay = dictation.DefaultAdvanceDelay
	}
	if settings.SessionTTL <= 0 {
		settings.SessionTTL = 30 * time.Minute
	}
	return &dictationUsecase{
		courses:   courses,
		questions: questions,
		settings:  settings,
		clock:     time.Now,
		sched:     timer.Real(),
		newID:     func() (string, error) { return gonanoid.New() },
		sessions:  make(map[string]*PracticeSession),
	}
}

func (u *dictationUsecase) Start(ctx context.Context, ownerID string, courseID int64) (*PracticeSession, dictation.View, error) {
	if courseID <= 0 {
		return nil, dictation.View{}, entity.ErrInvalidCourseID
	}
	if _, err := u.courses.GetByID(ctx, courseID); err != nil {
		return nil, dictation.View{}, err
	}
	id, err := u.newID()
	if err != nil {
		return nil, dictation.View{}, err
	}

	ctrl := dictation.NewController(
		dictation.WithAdvanceDelay(u.settings.AdvanceDelay),
		dictation.WithScheduler(u.sched),
	)
	view, err := ctrl.Load(ctx, u.fetcher(courseID))
	if err != nil {
		ctrl.Close()
		return nil, dictation.View{}, err
	}

	session := &PracticeSession{
		ID:         id,
		OwnerID:    ownerID,
		CourseID:   courseID,
		controller: ctrl,
		lastSeen:   u.clock(),
	}
	u.mu.Lock()
	u.sessions[id] = session
	u.mu.Unlock()
	return session, view, nil
}

func (u *dictationUsecase) fetcher(courseID int64) dictation.Fetcher {
	return func(ctx context.Context) ([]dictation.Question, error) {
		rows, err := u.questions.ListByCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		return DictationQuestions(rows), nil
	}
}

// DictationQuestions converts stored course questions into engine questions.
func DictationQuestions(rows []entity.CourseQuestion) []dictation.Question {
	return lo.Map(rows, func(row entity.CourseQuestion, _ int) dictation.Question {
		return dictation.Question{
			ID:        row.QuestionID,
			SortOrder: row.SortOrder,
			Title:     row.Title,
			Answer:    row.AnswerContent,
		}
	})
}

func (u *dictationUsecase) Input(ctx context.Context, ownerID, sessionID, text string, caret int) (dictation.View, error) {
	return u.with(ctx, ownerID, sessionID, func(c *dictation.Controller) dictation.View {
		return c.Input(text, caret)
	})
}

func (u *dictationUsecase) MoveCaret(ctx context.Context, ownerID, sessionID string, caret int) (dictation.View, error) {
	return u.with(ctx, ownerID, sessionID, func(c *dictation.Controller) dictation.View {
		return c.MoveCaret(caret)
	})
}

func (u *dictationUsecase) Submit(ctx context.Context, ownerID, sessionID string, composing bool) (dictation.View, error) {
	return u.with(ctx, ownerID, sessionID, func(c *dictation.Controller) dictation.View {
		return c.Submit(composing)
	})
}

func (u *dictationUsecase) Next(ctx context.Context, ownerID, sessionID string) (dictation.View, error) {
	return u.with(ctx, ownerID, sessionID, (*dictation.Controller).Next)
}

func (u *dictationUsecase) Previous(ctx context.Context, ownerID, sessionID string) (dictation.View, error) {
	return u.with(ctx, ownerID, sessionID, (*dictation.Controller).Previous)
}

func (u *dictationUsecase) Get(ctx context.Context, ownerID, sessionID string) (*PracticeSession, dictation.View, error) {
	session, err := u.lookup(ctx, ownerID, sessionID)
	if err != nil {
		return nil, dictation.View{}, err
	}
	return session, session.controller.View(), nil
}

func (u *dictationUsecase) End(ctx context.Context, ownerID, sessionID string) error {
	if _, err := u.lookup(ctx, ownerID, sessionID); err != nil {
		return err
	}
	u.mu.Lock()
	session, ok := u.sessions[sessionID]
	delete(u.sessions, sessionID)
	u.mu.Unlock()
	if !ok {
		return entity.ErrSessionNotFound
	}
	session.controller.Close()
	return nil
}

func (u *dictationUsecase) EvictIdle(now time.Time) int {
	cutoff := now.Add(-u.settings.SessionTTL)
	var evicted []*PracticeSession

	u.mu.Lock()
	for id, session := range u.sessions {
		if session.idleSince().Before(cutoff) {
			evicted = append(evicted, session)
			delete(u.sessions, id)
		}
	}
	u.mu.Unlock()

	for _, session := range evicted {
		session.controller.Close()
	}
	return len(evicted)
}

func (u *dictationUsecase) CloseAll() {
	u.mu.Lock()
	sessions := u.sessions
	u.sessions = make(map[string]*PracticeSession)
	u.mu.Unlock()
	for _, session := range sessions {
		session.controller.Close()
	}
}

func (u *dictationUsecase) with(ctx context.Context, ownerID, sessionID string, fn func(*dictation.Controller) dictation.View) (dictation.View, error) {
	session, err := u.lookup(ctx, ownerID, sessionID)
	if err != nil {
		return dictation.View{}, err
	}
	return fn(session.controller), nil
}

// lookup resolves a session for its owner and refreshes its idle timer.
// Sessions of other owners are reported as missing.
func (u *dictationUsecase) lookup(ctx context.Context, ownerID, sessionID string) (*PracticeSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.mu.RLock()
	session, ok := u.sessions[sessionID]
	u.mu.RUnlock()
	if !ok || session.OwnerID != ownerID {
		return nil, entity.ErrSessionNotFound
	}
	session.touch(u.clock())
	return session, nil
}
