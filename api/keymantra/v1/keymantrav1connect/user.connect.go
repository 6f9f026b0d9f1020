package keymantrav1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
)

// UserServiceName is the fully-qualified name of the UserService service.
const UserServiceName = "keymantra.v1.UserService"

const UserServiceSyncUserProcedure = "/keymantra.v1.UserService/SyncUser"

// UserServiceHandler is implemented by the user service server.
type UserServiceHandler interface {
	SyncUser(context.Context, *connect.Request[v1.Empty]) (*connect.Response[v1.SyncUserResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service implementation.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	routes := map[string]http.Handler{
		UserServiceSyncUserProcedure: connect.NewUnaryHandler(UserServiceSyncUserProcedure, svc.SyncUser, opts...),
	}
	return "/" + UserServiceName + "/", routeHandler(routes)
}

// UserServiceClient calls UserService over HTTP.
type UserServiceClient struct {
	syncUser *connect.Client[v1.Empty, v1.SyncUserResponse]
}

func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &UserServiceClient{
		syncUser: connect.NewClient[v1.Empty, v1.SyncUserResponse](httpClient, baseURL+UserServiceSyncUserProcedure, clientOptions(opts)...),
	}
}

func (c *UserServiceClient) SyncUser(ctx context.Context, req *connect.Request[v1.Empty]) (*connect.Response[v1.SyncUserResponse], error) {
	return c.syncUser.CallUnary(ctx, req)
}
