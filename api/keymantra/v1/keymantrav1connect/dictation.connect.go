package keymantrav1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
)

// DictationServiceName is the fully-qualified name of the DictationService service.
const DictationServiceName = "keymantra.v1.DictationService"

const (
	DictationServiceStartSessionProcedure = "/keymantra.v1.DictationService/StartSession"
	DictationServiceInputProcedure        = "/keymantra.v1.DictationService/Input"
	DictationServiceMoveCaretProcedure    = "/keymantra.v1.DictationService/MoveCaret"
	DictationServiceSubmitProcedure       = "/keymantra.v1.DictationService/Submit"
	DictationServiceNextProcedure         = "/keymantra.v1.DictationService/Next"
	DictationServicePreviousProcedure     = "/keymantra.v1.DictationService/Previous"
	DictationServiceGetSessionProcedure   = "/keymantra.v1.DictationService/GetSession"
	DictationServiceEndSessionProcedure   = "/keymantra.v1.DictationService/EndSession"
)

// DictationServiceHandler is implemented by the dictation service server.
type DictationServiceHandler interface {
	StartSession(context.Context, *connect.Request[v1.StartSessionRequest]) (*connect.Response[v1.SessionResponse], error)
	Input(context.Context, *connect.Request[v1.InputRequest]) (*connect.Response[v1.SessionView], error)
	MoveCaret(context.Context, *connect.Request[v1.MoveCaretRequest]) (*connect.Response[v1.SessionView], error)
	Submit(context.Context, *connect.Request[v1.SubmitRequest]) (*connect.Response[v1.SessionView], error)
	Next(context.Context, *connect.Request[v1.SessionRequest]) (*connect.Response[v1.SessionView], error)
	Previous(context.Context, *connect.Request[v1.SessionRequest]) (*connect.Response[v1.SessionView], error)
	GetSession(context.Context, *connect.Request[v1.SessionRequest]) (*connect.Response[v1.SessionResponse], error)
	EndSession(context.Context, *connect.Request[v1.SessionRequest]) (*connect.Response[v1.Empty], error)
}

// NewDictationServiceHandler builds an HTTP handler from the service implementation.
func NewDictationServiceHandler(svc DictationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	routes := map[string]http.Handler{
		DictationServiceStartSessionProcedure: connect.NewUnaryHandler(DictationServiceStartSessionProcedure, svc.StartSession, opts...),
		DictationServiceInputProcedure:        connect.NewUnaryHandler(DictationServiceInputProcedure, svc.Input, opts...),
		DictationServiceMoveCaretProcedure:    connect.NewUnaryHandler(DictationServiceMoveCaretProcedure, svc.MoveCaret, opts...),
		DictationServiceSubmitProcedure:       connect.NewUnaryHandler(DictationServiceSubmitProcedure, svc.Submit, opts...),
		DictationServiceNextProcedure:         connect.NewUnaryHandler(DictationServiceNextProcedure, svc.Next, opts...),
		DictationServicePreviousProcedure:     connect.NewUnaryHandler(DictationServicePreviousProcedure, svc.Previous, opts...),
		DictationServiceGetSessionProcedure:   connect.NewUnaryHandler(DictationServiceGetSessionProcedure, svc.GetSession, opts...),
		DictationServiceEndSessionProcedure:   connect.NewUnaryHandler(DictationServiceEndSessionProcedure, svc.EndSession, opts...),
	}
	return "/" + DictationServiceName + "/", routeHandler(routes)
}

// DictationServiceClient calls DictationService over HTTP.
type DictationServiceClient struct {
	startSession *connect.Client[v1.StartSessionRequest, v1.SessionResponse]
	input        *connect.Client[v1.InputRequest, v1.SessionView]
	moveCaret    *connect.Client[v1.MoveCaretRequest, v1.SessionView]
	submit       *connect.Client[v1.SubmitRequest, v1.SessionView]
	next         *connect.Client[v1.SessionRequest, v1.SessionView]
	previous     *connect.Client[v1.SessionRequest, v1.SessionView]
	getSession   *connect.Client[v1.SessionRequest, v1.SessionResponse]
	endSession   *connect.Client[v1.SessionRequest, v1.Empty]
}

func NewDictationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *DictationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &DictationServiceClient{
		startSession: connect.NewClient[v1.StartSessionRequest, v1.SessionResponse](httpClient, baseURL+DictationServiceStartSessionProcedure, opts...),
		input:        connect.NewClient[v1.InputRequest, v1.SessionView](httpClient, baseURL+DictationServiceInputProcedure, opts...),
		moveCaret:    connect.NewClient[v1.MoveCaretRequest, v1.SessionView](httpClient, baseURL+DictationServiceMoveCaretProcedure, opts...),
		submit:       connect.NewClient[v1.SubmitRequest, v1.SessionView](httpClient, baseURL+DictationServiceSubmitProcedure, opts...),
		next:         connect.NewClient[v1.SessionRequest, v1.SessionView](httpClient, baseURL+DictationServiceNextProcedure, opts...),
		previous:     connect.NewClient[v1.SessionRequest, v1.SessionView](httpClient, baseURL+DictationServicePreviousProcedure, opts...),
		getSession:   connect.NewClient[v1.SessionRequest, v1.SessionResponse](httpClient, baseURL+DictationServiceGetSessionProcedure, opts...),
		endSession:   connect.NewClient[v1.SessionRequest, v1.Empty](httpClient, baseURL+DictationServiceEndSessionProcedure, opts...),
	}
}

func (c *DictationServiceClient) StartSession(ctx context.Context, req *connect.Request[v1.StartSessionRequest]) (*connect.Response[v1.SessionResponse], error) {
	return c.startSession.CallUnary(ctx, req)
}

func (c *DictationServiceClient) Input(ctx context.Context, req *connect.Request[v1.InputRequest]) (*connect.Response[v1.SessionView], error) {
	return c.input.CallUnary(ctx, req)
}

func (c *DictationServiceClient) MoveCaret(ctx context.Context, req *connect.Request[v1.MoveCaretRequest]) (*connect.Response[v1.SessionView], error) {
	return c.moveCaret.CallUnary(ctx, req)
}

func (c *DictationServiceClient) Submit(ctx context.Context, req *connect.Request[v1.SubmitRequest]) (*connect.Response[v1.SessionView], error) {
	return c.submit.CallUnary(ctx, req)
}

func (c *DictationServiceClient) Next(ctx context.Context, req *connect.Request[v1.SessionRequest]) (*connect.Response[v1.SessionView], error) {
	return c.next.CallUnary(ctx, req)
}

func (c *DictationServiceClient) Previous(ctx context.Context, req *connect.Request[v1.SessionRequest]) (*connect.Response[v1.SessionView], error) {
	return c.previous.CallUnary(ctx, req)
}

func (c *DictationServiceClient) GetSession(ctx context.Context, req *connect.Request[v1.SessionRequest]) (*connect.Response[v1.SessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *DictationServiceClient) EndSession(ctx context.Context, req *connect.Request[v1.SessionRequest]) (*connect.Response[v1.Empty], error) {
	return c.endSession.CallUnary(ctx, req)
}
