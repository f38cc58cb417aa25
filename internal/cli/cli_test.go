package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodash/internal/logging"
	"studiodash/internal/workspace"
	"studiodash/internal/wsapi"
)

// newTestAPI serves demo workspaces owned by alice.
func newTestAPI(t *testing.T) (*wsapi.FakeServer, string) {
	t.Helper()
	fake := wsapi.NewFakeServer(wsapi.DemoWorkspaces("alice", time.Now())...)
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)
	return fake, srv.URL
}

// execute runs the root command in an empty directory so no config file is
// picked up.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--locale", "en"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func wsArgs(apiBase string, args ...string) []string {
	return append(args, "--api-base", apiBase, "--global-key", "alice")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "studiodash v"+Version)
	assert.Contains(t, out, "commit")
}

func TestConfigCommand_PrintsResolvedYAML(t *testing.T) {
	out, err := execute(t, "", "config", "--api-base", "http://example.test/api", "--request-timeout", "3s")
	require.NoError(t, err)
	assert.Contains(t, out, "api_base: http://example.test/api")
	assert.Contains(t, out, "request_timeout: 3s")
	assert.Contains(t, out, "cpu_limit: 2")
	assert.NotContains(t, out, "fileused")
}

func TestConfigCommand_InvalidFlag(t *testing.T) {
	_, err := execute(t, "", "config", "--api-base", "not a url")
	require.Error(t, err)
}

func TestWSList(t *testing.T) {
	_, base := newTestAPI(t)

	out, err := execute(t, "", wsArgs(base, "ws", "list")...)
	require.NoError(t, err)

	for _, want := range []string{"demo-online", "alice/webide", "teammate/api-gateway", "restore", "Collaborating"} {
		assert.Contains(t, out, want)
	}
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "demo-online"):
			assert.Contains(t, line, "stop delete")
		case strings.Contains(line, "demo-shared"):
			assert.NotContains(t, line, "stop", "only owners can stop")
		case strings.Contains(line, "demo-deleted"):
			assert.NotContains(t, line, "delete ")
		}
	}
}

func TestWSList_Empty(t *testing.T) {
	srv := httptest.NewServer(wsapi.NewFakeServer().Handler())
	t.Cleanup(srv.Close)

	out, err := execute(t, "", wsArgs(srv.URL, "ws", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "No workspaces yet")
}

func TestWSStop_Yes(t *testing.T) {
	fake, base := newTestAPI(t)

	out, err := execute(t, "", wsArgs(base, "ws", "stop", "demo-online", "--yes")...)
	require.NoError(t, err)
	assert.Contains(t, out, "alice/webide")
	assert.Contains(t, out, "Stopping...")
	assert.Contains(t, out, "ok", "the server message is shown after a stop")

	ws, _ := fake.Get("demo-online")
	assert.Equal(t, workspace.StatusOffline, ws.WorkingStatus)
}

func TestWSDelete_Prompt(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		deleted bool
	}{
		{name: "accepted", stdin: "y\n", deleted: true},
		{name: "accepted long form", stdin: "YES\n", deleted: true},
		{name: "declined", stdin: "n\n"},
		{name: "empty answer", stdin: "\n"},
		{name: "end of input", stdin: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, base := newTestAPI(t)

			out, err := execute(t, tt.stdin, wsArgs(base, "ws", "delete", "demo-offline")...)
			require.NoError(t, err)
			assert.Contains(t, out, "Delete? [y/N]")

			ws, _ := fake.Get("demo-offline")
			if tt.deleted {
				assert.Equal(t, workspace.StatusInvalid, ws.WorkingStatus)
				return
			}
			assert.Contains(t, out, "cancelled")
			assert.Equal(t, workspace.StatusOffline, ws.WorkingStatus)
			assert.Equal(t, []string{"GET /workspaces"}, fake.Calls())
		})
	}
}

func TestWSRestore(t *testing.T) {
	fake, base := newTestAPI(t)

	_, err := execute(t, "", wsArgs(base, "ws", "restore", "demo-deleted", "-y")...)
	require.NoError(t, err)

	ws, _ := fake.Get("demo-deleted")
	assert.Equal(t, workspace.StatusOffline, ws.WorkingStatus)
	assert.True(t, ws.DeleteTime.IsZero())
}

func TestWSAction_Errors(t *testing.T) {
	t.Run("not allowed", func(t *testing.T) {
		_, base := newTestAPI(t)
		_, err := execute(t, "", wsArgs(base, "ws", "stop", "demo-shared", "--yes")...)
		require.ErrorIs(t, err, workspace.ErrNotAllowed)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, base := newTestAPI(t)
		_, err := execute(t, "", wsArgs(base, "ws", "delete", "nope", "--yes")...)
		require.ErrorIs(t, err, ErrWorkspaceNotFound)
	})

	t.Run("logical failure", func(t *testing.T) {
		fake, base := newTestAPI(t)
		fake.FailNext(wsapi.CodeBadState, "quota exceeded")

		_, err := execute(t, "", wsArgs(base, "ws", "stop", "demo-online", "--yes")...)
		var logical *workspace.LogicalError
		require.ErrorAs(t, err, &logical)
		assert.Equal(t, wsapi.CodeBadState, logical.Code)
		assert.Equal(t, "quota exceeded", err.Error())
	})

	t.Run("transport failure", func(t *testing.T) {
		fake, base := newTestAPI(t)
		fake.FailStatus(http.StatusBadGateway)

		_, err := execute(t, "", wsArgs(base, "ws", "stop", "demo-online", "--yes")...)
		var status *wsapi.StatusError
		require.ErrorAs(t, err, &status)
	})
}

func TestWSOpen(t *testing.T) {
	t.Run("prints the workspace URL on the API origin", func(t *testing.T) {
		_, base := newTestAPI(t)
		out, err := execute(t, "", wsArgs(base, "ws", "open", "demo-online", "--print")...)
		require.NoError(t, err)
		assert.Contains(t, out, base+"/ws/demo-online")
	})

	t.Run("embedded uses the studio origin", func(t *testing.T) {
		_, base := newTestAPI(t)
		out, err := execute(t, "", wsArgs(base, "ws", "open", "demo-online", "--print",
			"--embedded", "--studio-origin", "https://studio.example.com")...)
		require.NoError(t, err)
		assert.Contains(t, out, "https://studio.example.com/ws/demo-online")
	})

	t.Run("stops the open workspace first", func(t *testing.T) {
		fake, base := newTestAPI(t)
		fake.SetOpened("demo-shared")

		out, err := execute(t, "", wsArgs(base, "ws", "open", "demo-offline", "--print", "--yes")...)
		require.NoError(t, err)
		assert.Contains(t, out, "Another workspace is already open")
		assert.Contains(t, out, base+"/ws/demo-offline")

		shared, _ := fake.Get("demo-shared")
		assert.Equal(t, workspace.StatusOffline, shared.WorkingStatus)
		assert.Contains(t, fake.Calls(), "POST /workspaces/demo-shared/quit")
	})

	t.Run("deleted workspaces cannot be opened", func(t *testing.T) {
		_, base := newTestAPI(t)
		_, err := execute(t, "", wsArgs(base, "ws", "open", "demo-deleted", "--print")...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "restore it first")
	})
}

func TestPromptMask_CancelCallsOnCancel(t *testing.T) {
	out := new(bytes.Buffer)
	m := newPromptMask(context.Background(), strings.NewReader("no\n"), out, false)

	var cancelled, confirmed bool
	m.ShowMask(workspace.ConfirmAction{
		Title:       "alice/webide",
		Message:     "Stop?",
		ConfirmText: "Stop",
		OnConfirm:   func(context.Context) error { confirmed = true; return nil },
		OnCancel:    func() { cancelled = true },
	})

	assert.True(t, cancelled)
	assert.False(t, confirmed)
	assert.True(t, m.cancelled)
	assert.Contains(t, out.String(), "Stop? [y/N]")
}

func TestPromptMask_KeepsConfirmError(t *testing.T) {
	boom := errors.New("boom")
	m := newPromptMask(context.Background(), strings.NewReader(""), io.Discard, true)
	m.ShowMask(workspace.ConfirmAction{
		OnConfirm: func(context.Context) error { return boom },
		OnCancel:  func() { t.Fatal("unexpected cancel") },
	})
	assert.ErrorIs(t, m.err, boom)
}

func TestMockRouter(t *testing.T) {
	fake := wsapi.NewFakeServer(wsapi.DemoWorkspaces("alice", time.Now())...)
	srv := httptest.NewServer(newMockRouter(fake))
	t.Cleanup(srv.Close)

	client, err := wsapi.NewClient(wsapi.ClientConfig{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second})
	require.NoError(t, err)
	listing, err := client.ListWorkspaces(context.Background())
	require.NoError(t, err)
	assert.Len(t, listing.Workspaces, 4)

	resp, err := http.Get(srv.URL + "/ws/demo-online")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "alice/webide")
	assert.Contains(t, string(body), "Online")

	resp, err = http.Get(srv.URL + "/ws/demo-deleted")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeMock_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveMock(ctx, ln, newMockRouter(wsapi.NewFakeServer()), logging.Discard())
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/workspaces")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStudioRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	got, err := studioRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = studioRoot(file)
	assert.ErrorContains(t, err, "not a directory")

	_, err = studioRoot(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
