package connectrpc

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/infrastructure/auth"
	"github.com/eslsoft/keymantra/internal/repository"
)

func convertPagination(p *v1.PaginationRequest) repository.Pagination {
	return repository.Pagination{PageNo: p.GetPageNo(), PageSize: p.GetPageSize()}
}

func requireMsg[T any](req *connect.Request[T], what string) (*T, error) {
	if req == nil || req.Msg == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New(what+" payload required"))
	}
	return req.Msg, nil
}

func currentIdentity(ctx context.Context) (entity.Identity, error) {
	id, ok := auth.IdentityFrom(ctx)
	if !ok {
		return entity.Identity{}, connect.NewError(connect.CodeUnauthenticated, entity.ErrUnauthenticated)
	}
	return id, nil
}
