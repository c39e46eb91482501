package httpx

import (
	"bytes"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	homelib "github.com/homelib/homelib-api"
	"github.com/homelib/homelib-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth   *service.AuthService
	Books  *service.BookService
	IsDev  bool         // Development mode flag: serve templates and assets from disk
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth}
	bookHandlers := &BookHandlers{Svc: services.Books}

	registerAPIRoutes(mux, apiRoutes{
		Auth:     authHandlers,
		Books:    bookHandlers,
		Resolver: services.Auth,
	})

	// Static assets at /static
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	// UI routes with template renderer
	uiHandlers := setupUIHandlers(services)
	if uiHandlers != nil {
		registerUIRoutes(mux, uiHandlers, services.Auth)
	}

	// Wrap with NotFound handler and browser detection middleware
	handler := &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
	}

	return BrowserDetection()(handler)
}

// apiRoutes groups the JSON API wiring inputs.
type apiRoutes struct {
	Auth     *AuthHandlers
	Books    *BookHandlers
	Resolver AuthResolver
}

func registerAPIRoutes(mux *http.ServeMux, cfg apiRoutes) {
	mux.HandleFunc("POST /api/auth/register", cfg.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", cfg.Auth.Login)

	requireAuth := RequireAuth(cfg.Resolver)
	mux.Handle("POST /api/books", requireAuth(http.HandlerFunc(cfg.Books.Create)))
	mux.Handle("GET /api/books", requireAuth(http.HandlerFunc(cfg.Books.List)))
	mux.Handle("GET /api/books/{id}", requireAuth(http.HandlerFunc(cfg.Books.GetByID)))
	mux.Handle("PUT /api/books/{id}", requireAuth(http.HandlerFunc(cfg.Books.Update)))
	mux.Handle("DELETE /api/books/{id}", requireAuth(http.HandlerFunc(cfg.Books.Delete)))
}

// registerUIRoutes wires the browser-facing routes. Form posts for auth pages
// stay unwrapped; book pages require a session.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, resolver AuthResolver) {
	opt := OptionalAuth(resolver)
	wrap := RequireAuthBrowser(resolver)

	mux.Handle("GET /{$}", opt(http.HandlerFunc(h.Index)))
	mux.Handle("GET /login", opt(http.HandlerFunc(h.LoginForm)))
	mux.HandleFunc("POST /login", h.LoginSubmit)
	mux.Handle("GET /register", opt(http.HandlerFunc(h.RegisterForm)))
	mux.HandleFunc("POST /register", h.RegisterSubmit)
	mux.HandleFunc("GET /logout", h.Logout)

	mux.Handle("GET /books", wrap(http.HandlerFunc(h.BooksList)))
	mux.Handle("GET /books/new", wrap(http.HandlerFunc(h.BookNew)))
	mux.Handle("POST /books", wrap(http.HandlerFunc(h.BookCreate)))
	mux.Handle("GET /books/{id}/edit", wrap(http.HandlerFunc(h.BookEdit)))
	mux.Handle("POST /books/{id}", wrap(http.HandlerFunc(h.BookUpdate)))
	mux.Handle("POST /books/{id}/delete", wrap(http.HandlerFunc(h.BookDelete)))
}

// setupUIHandlers creates UI handlers with a template renderer.
// In dev mode (services.IsDev=true), templates are loaded from disk for hot reloading.
// In production mode, templates are loaded from the embedded FS.
func setupUIHandlers(services RouterServices) *UIHandlers {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(homelib.TemplateFS, "frontend/templates")
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			sub = os.DirFS(TemplatePathFromRoot)
		}
		templateFS = sub
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", err)
		}
		return nil
	}

	return &UIHandlers{
		T:      tr,
		Auth:   services.Auth,
		Books:  services.Books,
		Logger: services.Logger,
	}
}

// staticHandler serves /static/* assets from disk in dev mode and from the
// embedded FS in production.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}

	staticSub, err := fs.Sub(homelib.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticSub)))
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	// Serve the request through the mux, capturing status, headers, and body
	h.mux.ServeHTTP(cw, r)

	// If the mux didn't handle the request (404), use our custom handler
	if cw.status == http.StatusNotFound {
		// For missing static assets, preserve the default file server response
		if strings.HasPrefix(r.URL.Path, "/static/") {
			cw.flushTo(w)
			return
		}
		// API routes get a JSON 404
		if strings.HasPrefix(r.URL.Path, "/api/") {
			WriteError(w, ErrorParams{
				Code:    http.StatusNotFound,
				ErrCode: "not_found",
				Err:     errors.New("Not Found"),
			})
			return
		}
		if h.uiHandlers != nil {
			h.uiHandlers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	// Not a 404: write the captured response
	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		log.Printf("failed to write captured response: %v", err)
	}
}
