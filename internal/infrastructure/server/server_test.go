package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
	"github.com/eslsoft/keymantra/api/keymantra/v1/keymantrav1connect"
	"github.com/eslsoft/keymantra/internal/adapter/connectrpc"
	"github.com/eslsoft/keymantra/internal/infrastructure/auth"
	"github.com/eslsoft/keymantra/internal/infrastructure/config"
)

type stubUsers struct{ err error }

func (s stubUsers) SyncUser(ctx context.Context, _ *connect.Request[v1.Empty]) (*connect.Response[v1.SyncUserResponse], error) {
	if s.err != nil {
		return nil, s.err
	}
	id, _ := auth.IdentityFrom(ctx)
	return connect.NewResponse(&v1.SyncUserResponse{User: &v1.User{Id: id.Subject}}), nil
}

func newTestServer(t *testing.T, users keymantrav1connect.UserServiceHandler) (*httptest.Server, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	cfg := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, CORSOrigins: "https://app.example.com"}}
	srv := NewServer(cfg, logger, nil,
		connectrpc.NewCourseServiceServer(nil),
		connectrpc.NewDictationServiceServer(nil),
		users,
	)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, hook
}

func TestServerRoutesAndLogs(t *testing.T) {
	ts, hook := newTestServer(t, stubUsers{})
	client := keymantrav1connect.NewUserServiceClient(ts.Client(), ts.URL)

	resp, err := client.SyncUser(context.Background(), connect.NewRequest(&v1.Empty{}))
	if err != nil {
		t.Fatalf("SyncUser: %v", err)
	}
	if resp.Msg.User.Id != auth.LocalSubject {
		t.Fatalf("expected local identity, got %q", resp.Msg.User.Id)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.InfoLevel || entry.Data["procedure"] != keymantrav1connect.UserServiceSyncUserProcedure {
		t.Fatalf("unexpected log entry: %+v", entry)
	}
}

func TestServerLogsClientErrorsAsWarnings(t *testing.T) {
	ts, hook := newTestServer(t, stubUsers{err: connect.NewError(connect.CodeNotFound, errors.New("gone"))})
	client := keymantrav1connect.NewUserServiceClient(ts.Client(), ts.URL)

	if _, err := client.SyncUser(context.Background(), connect.NewRequest(&v1.Empty{})); connect.CodeOf(err) != connect.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel || entry.Data["status"] != "not_found" {
		t.Fatalf("unexpected log entry: %+v", entry)
	}
}

func TestServerCORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t, stubUsers{})

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+keymantrav1connect.CourseServiceListCoursesProcedure, nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("allow origin = %q", got)
	}
}

func TestServerHealth(t *testing.T) {
	ts, _ := newTestServer(t, stubUsers{})
	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestDetermineLogLevel(t *testing.T) {
	cases := []struct {
		code connect.Code
		err  error
		want logrus.Level
	}{
		{0, nil, logrus.InfoLevel},
		{connect.CodeInvalidArgument, errors.New("x"), logrus.WarnLevel},
		{connect.CodeUnauthenticated, errors.New("x"), logrus.WarnLevel},
		{connect.CodeInternal, errors.New("x"), logrus.ErrorLevel},
	}
	for _, tc := range cases {
		if got := determineLogLevel(tc.code, tc.err); got != tc.want {
			t.Errorf("determineLogLevel(%v) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestFirstForwardedFor(t *testing.T) {
	h := http.Header{}
	h.Set("X-Forwarded-For", " , 10.0.0.1, 10.0.0.2")
	if got := firstForwardedFor(h); got != "10.0.0.1" {
		t.Fatalf("got %q", got)
	}
}

func TestResponseFieldsIgnoresFailedResponse(t *testing.T) {
	var failed *connect.Response[v1.SyncUserResponse]
	if fields := responseFields(failed, errors.New("boom")); len(fields) != 0 {
		t.Fatalf("expected no fields for a failed call, got %+v", fields)
	}

	ok := connect.NewResponse(&v1.SyncUserResponse{})
	ok.Header().Set("Content-Length", "42")
	if fields := responseFields(ok, nil); fields["response_bytes"] != 42 {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}
