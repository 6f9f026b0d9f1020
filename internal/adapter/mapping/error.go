package mapping

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/pkg/filterexpr"
)

// ToConnectError translates domain errors into Connect status errors.
// Errors that already carry a Connect code pass through unchanged.
func ToConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &connectErr):
		return err
	case errors.Is(err, entity.ErrInvalidCourseID),
		errors.Is(err, entity.ErrInvalidCourseName),
		errors.Is(err, entity.ErrInvalidQuestionID),
		errors.Is(err, entity.ErrInvalidQuestionTitle),
		errors.Is(err, entity.ErrInvalidUserID),
		errors.Is(err, filterexpr.ErrInvalidFilter),
		errors.Is(err, filterexpr.ErrInvalidOrder):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, entity.ErrCourseNotFound),
		errors.Is(err, entity.ErrQuestionNotFound),
		errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrSessionNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, entity.ErrDuplicateCourseQuestion):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, entity.ErrInvalidReorder):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, entity.ErrUnauthenticated):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
