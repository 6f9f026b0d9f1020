package connectrpc

import (
	"context"

	"connectrpc.com/connect"

	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
	"github.com/eslsoft/keymantra/api/keymantra/v1/keymantrav1connect"
	"github.com/eslsoft/keymantra/internal/adapter/mapping"
	"github.com/eslsoft/keymantra/internal/dictation"
	"github.com/eslsoft/keymantra/internal/usecase"
)

var _ keymantrav1connect.DictationServiceHandler = (*DictationServiceServer)(nil)

// DictationServiceServer exposes practice sessions. Every call is scoped to
// the authenticated subject.
type DictationServiceServer struct {
	uc usecase.DictationUsecase
}

func NewDictationServiceServer(uc usecase.DictationUsecase) *DictationServiceServer {
	return &DictationServiceServer{uc: uc}
}

func (s *DictationServiceServer) StartSession(ctx context.Context, req *connect.Request[v1.StartSessionRequest]) (*connect.Response[v1.SessionResponse], error) {
	msg, err := requireMsg(req, "session")
	if err != nil {
		return nil, err
	}
	id, err := currentIdentity(ctx)
	if err != nil {
		return nil, err
	}
	session, view, err := s.uc.Start(ctx, id.Subject, msg.CourseId)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(sessionResponse(session, view)), nil
}

func (s *DictationServiceServer) Input(ctx context.Context, req *connect.Request[v1.InputRequest]) (*connect.Response[v1.SessionView], error) {
	msg, err := requireMsg(req, "input")
	if err != nil {
		return nil, err
	}
	return s.run(ctx, func(owner string) (dictation.View, error) {
		return s.uc.Input(ctx, owner, msg.SessionId, msg.Text, int(msg.Caret))
	})
}

func (s *DictationServiceServer) MoveCaret(ctx context.Context, req *connect.Request[v1.MoveCaretRequest]) (*connect.Response[v1.SessionView], error) {
	msg, err := requireMsg(req, "caret")
	if err != nil {
		return nil, err
	}
	return s.run(ctx, func(owner string) (dictation.View, error) {
		return s.uc.MoveCaret(ctx, owner, msg.SessionId, int(msg.Caret))
	})
}

func (s *DictationServiceServer) Submit(ctx context.Context, req *connect.Request[v1.SubmitRequest]) (*connect.Response[v1.SessionView], error) {
	msg, err := requireMsg(req, "submit")
	if err != nil {
		return nil, err
	}
	return s.run(ctx, func(owner string) (dictation.View, error) {
		return s.uc.Submit(ctx, owner, msg.SessionId, msg.Composing)
	})
}

func (s *DictationServiceServer) Next(ctx context.Context, req *connect.Request[v1.SessionRequest]) (*connect.Response[v1.SessionView], error) {
	msg, err := requireMsg(req, "session")
	if err != nil {
		return nil, err
	}
	return s.run(ctx, func(owner string) (dictation.View, error) {
		return s.uc.Next(ctx, owner, msg.SessionId)
	})
}

func (s *DictationServiceServer) Previous(ctx context.Context, req *connect.Request[v1.SessionRequest]) (*connect.Response[v1.SessionView], error) {
	msg, err := requireMsg(req, "session")
	if err != nil {
		return nil, err
	}
	return s.run(ctx, func(owner string) (dictation.View, error) {
		return s.uc.Previous(ctx, owner, msg.SessionId)
	})
}

func (s *DictationServiceServer) GetSession(ctx context.Context, req *connect.Request[v1.SessionRequest]) (*connect.Response[v1.SessionResponse], error) {
	msg, err := requireMsg(req, "session")
	if err != nil {
		return nil, err
	}
	id, err := currentIdentity(ctx)
	if err != nil {
		return nil, err
	}
	session, view, err := s.uc.Get(ctx, id.Subject, msg.SessionId)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(sessionResponse(session, view)), nil
}

func (s *DictationServiceServer) EndSession(ctx context.Context, req *connect.Request[v1.SessionRequest]) (*connect.Response[v1.Empty], error) {
	msg, err := requireMsg(req, "session")
	if err != nil {
		return nil, err
	}
	id, err := currentIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.uc.End(ctx, id.Subject, msg.SessionId); err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&v1.Empty{}), nil
}

func (s *DictationServiceServer) run(ctx context.Context, fn func(owner string) (dictation.View, error)) (*connect.Response[v1.SessionView], error) {
	id, err := currentIdentity(ctx)
	if err != nil {
		return nil, err
	}
	view, err := fn(id.Subject)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbSessionView(view)), nil
}

func sessionResponse(session *usecase.PracticeSession, view dictation.View) *v1.SessionResponse {
	return &v1.SessionResponse{
		SessionId: session.ID,
		CourseId:  session.CourseID,
		View:      mapping.ToPbSessionView(view),
	}
}
