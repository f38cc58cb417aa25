package wsapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"studiodash/internal/workspace"
)

// Codes the fake server answers with for rejected actions.
const (
	CodeNotFound   = 404
	CodeBadState   = 1001
	fakeOKMessage  = "ok"
	fakeNotRunning = "workspace is not running"
	fakeNotDeleted = "workspace is not deleted"
	fakeDeleted    = "workspace is deleted"
	fakeNoSuchWS   = "workspace not found"
)

// FakeServer is an in-memory workspace service. It serves the same routes
// the Client calls and is used by tests and the mock-api command.
type FakeServer struct {
	mu         sync.Mutex
	spaces     map[string]workspace.Workspace
	order      []string
	opened     string
	now        func() time.Time
	failCode   int
	failMsg    string
	failStatus int
	calls      []string
}

// NewFakeServer returns a server holding seed.
func NewFakeServer(seed ...workspace.Workspace) *FakeServer {
	f := &FakeServer{spaces: map[string]workspace.Workspace{}, now: time.Now}
	for _, ws := range seed {
		f.Put(ws)
	}
	return f
}

// Put inserts or replaces a workspace.
func (f *FakeServer) Put(ws workspace.Workspace) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.spaces[ws.SpaceKey]; !ok {
		f.order = append(f.order, ws.SpaceKey)
	}
	f.spaces[ws.SpaceKey] = ws
}

// SetOpened marks spaceKey as the workspace currently open ("" for none).
func (f *FakeServer) SetOpened(spaceKey string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = spaceKey
}

// FailNext makes the next action answer with code and msg instead of
// running. code 0 clears it.
func (f *FakeServer) FailNext(code int, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failCode, f.failMsg = code, msg
}

// FailStatus makes the next request of any kind answer with HTTP status.
func (f *FakeServer) FailStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus = status
}

// Get returns the current state of spaceKey.
func (f *FakeServer) Get(spaceKey string) (workspace.Workspace, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ws, ok := f.spaces[spaceKey]
	return ws, ok
}

// Calls returns "METHOD route" for each request served, in order.
func (f *FakeServer) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Handler returns the chi router serving the API.
func (f *FakeServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(f.record)

	r.Route("/workspaces", func(r chi.Router) {
		r.Get("/", f.handleList)
		r.Route("/{key}", func(r chi.Router) {
			r.Delete("/", f.handleAction(f.deleteWS))
			r.Post("/quit", f.handleAction(f.quitWS))
			r.Post("/restore", f.handleAction(f.restoreWS))
		})
	})
	return r
}

func (f *FakeServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls = append(f.calls, r.Method+" "+r.URL.Path)
		status := f.failStatus
		f.failStatus = 0
		f.mu.Unlock()
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeServer) handleList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	out := listJSON{OpenedSpaceKey: f.opened, Workspaces: []workspaceJSON{}}
	keys := append([]string(nil), f.order...)
	for _, k := range keys {
		out.Workspaces = append(out.Workspaces, toJSON(f.spaces[k]))
	}
	f.mu.Unlock()

	// Most recently modified first, like the dashboard shows them.
	sort.SliceStable(out.Workspaces, func(i, j int) bool {
		return out.Workspaces[i].LastModifiedDate.Time().After(out.Workspaces[j].LastModifiedDate.Time())
	})
	writeEnvelope(w, 0, fakeOKMessage, out)
}

// mutation applies an action to ws and returns a non-zero code to reject it.
type mutation func(ws *workspace.Workspace) (int, string)

func (f *FakeServer) handleAction(m mutation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failCode != 0 {
			code, msg := f.failCode, f.failMsg
			f.failCode, f.failMsg = 0, ""
			writeEnvelope(w, code, msg, nil)
			return
		}
		ws, ok := f.spaces[key]
		if !ok {
			writeEnvelope(w, CodeNotFound, fakeNoSuchWS, nil)
			return
		}
		if code, msg := m(&ws); code != 0 {
			writeEnvelope(w, code, msg, nil)
			return
		}
		ws.LastModifiedDate = f.now()
		f.spaces[key] = ws
		if f.opened == key && ws.WorkingStatus != workspace.StatusOnline {
			f.opened = ""
		}
		writeEnvelope(w, 0, fakeOKMessage, nil)
	}
}

func (f *FakeServer) quitWS(ws *workspace.Workspace) (int, string) {
	if ws.WorkingStatus != workspace.StatusOnline {
		return CodeBadState, fakeNotRunning
	}
	ws.WorkingStatus = workspace.StatusOffline
	return 0, ""
}

func (f *FakeServer) deleteWS(ws *workspace.Workspace) (int, string) {
	if ws.WorkingStatus == workspace.StatusInvalid {
		return CodeBadState, fakeDeleted
	}
	ws.WorkingStatus = workspace.StatusInvalid
	ws.DeleteTime = f.now()
	return 0, ""
}

func (f *FakeServer) restoreWS(ws *workspace.Workspace) (int, string) {
	if ws.WorkingStatus != workspace.StatusInvalid {
		return CodeBadState, fakeNotDeleted
	}
	ws.WorkingStatus = workspace.StatusOffline
	ws.DeleteTime = time.Time{}
	return 0, ""
}

func writeEnvelope(w http.ResponseWriter, code int, msg string, data any) {
	env := struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Data any    `json:"data,omitempty"`
	}{code, msg, data}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(env)
}

// DemoWorkspaces returns a small fixture covering every card state, owned by
// owner.
func DemoWorkspaces(owner string, now time.Time) []workspace.Workspace {
	return []workspace.Workspace{
		{
			SpaceKey: "demo-online", OwnerName: owner, ProjectName: "webide",
			OwnerGlobalKey: owner, WorkingStatus: workspace.StatusOnline,
			CreateDate: now.Add(-72 * time.Hour), LastModifiedDate: now.Add(-10 * time.Minute),
		},
		{
			SpaceKey: "demo-offline", OwnerName: owner, ProjectName: "dashboard",
			OwnerGlobalKey: owner, WorkingStatus: workspace.StatusOffline,
			CreateDate: now.Add(-240 * time.Hour), LastModifiedDate: now.Add(-26 * time.Hour),
		},
		{
			SpaceKey: "demo-shared", OwnerName: "teammate", ProjectName: "api-gateway",
			OwnerGlobalKey: "teammate", WorkingStatus: workspace.StatusOnline, Collaborative: true,
			CreateDate: now.Add(-48 * time.Hour), LastModifiedDate: now.Add(-2 * time.Hour),
		},
		{
			SpaceKey: "demo-deleted", OwnerName: owner, ProjectName: "legacy",
			OwnerGlobalKey: owner, WorkingStatus: workspace.StatusInvalid,
			CreateDate: now.Add(-2000 * time.Hour), LastModifiedDate: now.Add(-300 * time.Hour),
			DeleteTime: now.Add(-120 * time.Hour),
		},
	}
}
