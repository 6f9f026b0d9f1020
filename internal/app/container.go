package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/keymantra/internal/infrastructure/scheduler"
	"github.com/eslsoft/keymantra/internal/infrastructure/server"
	"github.com/eslsoft/keymantra/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Logger    *logrus.Logger
	Server    *server.Server
	Scheduler *scheduler.Scheduler
	Dictation usecase.DictationUsecase
}

// Tools aggregates what the offline commands need: course management and
// bundle import/export, without the HTTP stack.
type Tools struct {
	Logger  *logrus.Logger
	Courses usecase.CourseUsecase
}
