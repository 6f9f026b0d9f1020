//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/keymantra/api/keymantra/v1/keymantrav1connect"
	"github.com/eslsoft/keymantra/internal/adapter/connectrpc"
	"github.com/eslsoft/keymantra/internal/adapter/repository"
	"github.com/eslsoft/keymantra/internal/infrastructure/auth"
	"github.com/eslsoft/keymantra/internal/infrastructure/config"
	"github.com/eslsoft/keymantra/internal/infrastructure/database"
	"github.com/eslsoft/keymantra/internal/infrastructure/scheduler"
	"github.com/eslsoft/keymantra/internal/infrastructure/server"
	"github.com/eslsoft/keymantra/internal/usecase"
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	repository.NewCourseRepository,
	repository.NewQuestionRepository,
	repository.NewUserRepository,
)

var usecaseSet = wire.NewSet(
	provideDictationSettings,
	usecase.NewCourseUsecase,
	usecase.NewUserUsecase,
	usecase.NewDictationUsecase,
)

var serviceSet = wire.NewSet(
	connectrpc.NewCourseServiceServer,
	connectrpc.NewDictationServiceServer,
	connectrpc.NewUserServiceServer,
	wire.Bind(new(keymantrav1connect.CourseServiceHandler), new(*connectrpc.CourseServiceServer)),
	wire.Bind(new(keymantrav1connect.DictationServiceHandler), new(*connectrpc.DictationServiceServer)),
	wire.Bind(new(keymantrav1connect.UserServiceHandler), new(*connectrpc.UserServiceServer)),
)

var serverSet = wire.NewSet(
	server.NewLogger,
	auth.NewVerifier,
	server.NewServer,
	scheduler.New,
	wire.Bind(new(scheduler.Evictor), new(usecase.DictationUsecase)),
)

// Initialize builds the application container using Wire.
func Initialize(cfg *config.Config) (*Container, func(), error) {
	wire.Build(
		databaseSet,
		repositorySet,
		usecaseSet,
		serviceSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server", "Scheduler", "Dictation"),
	)
	return nil, nil, nil
}

// InitializeTools builds the dependencies of the offline commands.
func InitializeTools(cfg *config.Config) (*Tools, func(), error) {
	wire.Build(
		server.NewLogger,
		databaseSet,
		repository.NewCourseRepository,
		repository.NewQuestionRepository,
		usecase.NewCourseUsecase,
		wire.Struct(new(Tools), "Logger", "Courses"),
	)
	return nil, nil, nil
}
