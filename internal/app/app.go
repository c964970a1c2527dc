package app

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-sprout/sprout"
	"github.com/jmoiron/nbted/internal/app/mcformat"
	"github.com/jmoiron/nbted/nbt"
	"github.com/jmoiron/nbted/snbt"
)

// App serves a web inspector over a directory of NBT files.
type App struct {
	Root    string
	Verbose int
	Store   *Store
	tpl     *template.Template
}

//go:embed templates/*.gohtml static/*
var templatesFS embed.FS

func New(root string, verbose int) (*App, error) {
	a := &App{Root: root, Verbose: verbose}
	store, err := NewStore(root)
	if err != nil {
		return nil, err
	}
	a.Store = store

	// Load templates from embedded FS
	sub, _ := fs.Sub(templatesFS, "templates")
	sh := sprout.New()
	funcs := sh.Build()
	funcs["mc"] = func(s string) template.HTML { return mcformat.Format(s) }
	funcs["kb"] = func(n int64) string { return fmt.Sprintf("%.1f KiB", float64(n)/1024) }
	tpl, err := template.New("base").Funcs(funcs).ParseFS(sub, "*.gohtml")
	if err != nil {
		return nil, err
	}
	a.tpl = tpl
	return a, nil
}

// Len returns the number of indexed files.
func (a *App) Len() int { return a.Store.Len() }

// reload rescans the store from disk.
func (a *App) reload() {
	if s, err := NewStore(a.Root); err == nil {
		a.Store = s
	}
}

func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if a.Verbose > 0 {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Static assets
	mime.AddExtensionType(".css", "text/css")
	staticFS, _ := fs.Sub(templatesFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/", a.index)
	r.Get("/reload", a.reloadHandler)
	r.Get("/file/*", a.fileDetail)

	return r
}

func (a *App) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.tpl.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (a *App) baseData(title string) map[string]any {
	return map[string]any{
		"Title":   title,
		"Root":    a.Root,
		"Entries": a.Store.Entries,
	}
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	entries := a.Store.Entries
	if q != "" {
		terms := strings.Fields(strings.ToLower(q))
		matched := make([]*Entry, 0, len(entries))
		for _, e := range entries {
			var values []string
			if d, err := a.Store.Load(e); err == nil {
				values = d.Strings()
			}
			if matchEntry(e, values, terms) {
				matched = append(matched, e)
			}
		}
		entries = matched
	}
	data := a.baseData("nbted")
	data["Matched"] = entries
	data["Query"] = q
	a.render(w, "index", data)
}

func (a *App) reloadHandler(w http.ResponseWriter, r *http.Request) {
	a.reload()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) fileDetail(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	e := a.Store.Entry(rel)
	if e == nil {
		http.NotFound(w, r)
		return
	}
	d, err := a.Store.Load(e)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	switch r.URL.Query().Get("format") {
	case "raw":
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(d.Raw)
		return
	case "json":
		out, err := nbt.JSON(d.File.Root, "  ")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(out)
		return
	}

	pretty, err := snbt.StringIndent(d.File.Root, "  ")
	if err != nil {
		slog.Error("stringify failed", "file", rel, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := a.baseData(e.Name)
	data["Entry"] = e
	data["File"] = d.File
	data["SNBT"] = pretty
	data["Strings"] = d.Strings()
	data["Definition"] = nbt.Definition(d.File.Root, defInterfaceName(e.Name))
	a.render(w, "view", data)
}

// defInterfaceName derives a TypeScript-ish interface name from a
// filename: "player_data.dat" -> "PlayerData".
func defInterfaceName(name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	if b.Len() == 0 {
		return "Root"
	}
	return b.String()
}
