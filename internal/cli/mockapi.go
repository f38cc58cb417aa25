package cli

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"studiodash/internal/workspace"
	"studiodash/internal/wsapi"
)

// MockAPIOptions holds options for the mock-api command.
type MockAPIOptions struct {
	Addr  string
	Owner string
}

func newMockAPICommand() *cobra.Command {
	opts := &MockAPIOptions{}

	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve an in-memory workspace API for local use",
		Long: `Serve an in-memory workspace API seeded with demo workspaces.

Point the dashboard at it with --api-base and use the owner as --global-key.
Workspace URLs resolve to a small status page on the same server.`,
		Example: `  studiodash mock-api --owner alice &
  studiodash --api-base http://127.0.0.1:8787/api --global-key alice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := getEnv(cmd)
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", opts.Addr)
			if err != nil {
				return err
			}
			fake := wsapi.NewFakeServer(wsapi.DemoWorkspaces(opts.Owner, time.Now())...)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving workspace API on http://%s/api (owner %s)\n", ln.Addr(), opts.Owner)
			fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
			return serveMock(cmd.Context(), ln, newMockRouter(fake), e.log)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "127.0.0.1:8787", "Address to listen on")
	cmd.Flags().StringVar(&opts.Owner, "owner", "alice", "Global key owning the demo workspaces")
	return cmd
}

// newMockRouter mounts the fake API under /api and serves workspace pages
// under /ws/{key}.
func newMockRouter(fake *wsapi.FakeServer) http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
	)
	r.Mount("/api", fake.Handler())
	r.Get("/ws/{key}", workspacePage(fake))
	return r
}

var pageTmpl = template.Must(template.New("ws").Parse(`<!doctype html>
<title>{{.Owner}}/{{.Project}}</title>
<h1>{{.Owner}}/{{.Project}}</h1>
<p>Workspace <code>{{.Key}}</code> is {{.Status}}.</p>
`))

func workspacePage(fake *wsapi.FakeServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		ws, ok := fake.Get(key)
		if !ok || ws.WorkingStatus == workspace.StatusInvalid {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = pageTmpl.Execute(w, map[string]string{
			"Owner":   ws.OwnerName,
			"Project": ws.ProjectName,
			"Key":     ws.SpaceKey,
			"Status":  string(ws.WorkingStatus),
		})
	}
}

// serveMock serves h on ln until ctx is cancelled.
func serveMock(ctx context.Context, ln net.Listener, h http.Handler, log *slog.Logger) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: logRequests(h, log),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		log.Debug("shutting down mock API")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// logRequests writes one debug record per request.
func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug("mock api request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
