package connectrpc

import (
	"context"

	"connectrpc.com/connect"

	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
	"github.com/eslsoft/keymantra/api/keymantra/v1/keymantrav1connect"
	"github.com/eslsoft/keymantra/internal/adapter/mapping"
	"github.com/eslsoft/keymantra/internal/usecase"
)

var _ keymantrav1connect.UserServiceHandler = (*UserServiceServer)(nil)

type UserServiceServer struct {
	uc usecase.UserUsecase
}

func NewUserServiceServer(uc usecase.UserUsecase) *UserServiceServer {
	return &UserServiceServer{uc: uc}
}

// SyncUser upserts the caller's profile from the verified token.
func (s *UserServiceServer) SyncUser(ctx context.Context, _ *connect.Request[v1.Empty]) (*connect.Response[v1.SyncUserResponse], error) {
	id, err := currentIdentity(ctx)
	if err != nil {
		return nil, err
	}
	user, created, err := s.uc.Sync(ctx, id)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&v1.SyncUserResponse{User: mapping.ToPbUser(user), Created: created}), nil
}
