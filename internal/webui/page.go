package webui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"news_monitor/internal/models"
)

// URLs the page talks to.
const (
	ListURL   = "/api/news"
	ExportURL = "/api/news/export"
	StaticURL = "/static/"
)

//go:embed templates/index.html.tmpl
var indexSource string

//go:embed static
var staticFiles embed.FS

var indexTmpl = template.Must(template.New("index").Parse(indexSource))

// clientState is the State handed over to app.js.
type clientState struct {
	Status    Status            `json:"status"`
	Items     []models.NewsItem `json:"items"`
	Error     string            `json:"error,omitempty"`
	UpdatedAt int64             `json:"updatedAt,omitempty"` // unix milliseconds
	Pending   int               `json:"pending"`
}

type pageData struct {
	View
	Initial      clientState
	ListURL      string
	ExportURL    string
	StaticURL    string
	ListError    string
	GenericError string
}

// Render writes the page for s; loc is used for dates rendered on the server.
func Render(w io.Writer, s State, loc *time.Location) error {
	initial := clientState{
		Status:  s.Status,
		Items:   s.Items,
		Error:   s.Err,
		Pending: s.Pending,
	}
	if initial.Items == nil {
		initial.Items = []models.NewsItem{}
	}
	if !s.UpdatedAt.IsZero() {
		initial.UpdatedAt = s.UpdatedAt.UnixMilli()
	}

	err := indexTmpl.Execute(w, pageData{
		View:         s.View(loc),
		Initial:      initial,
		ListURL:      ListURL,
		ExportURL:    ExportURL,
		StaticURL:    StaticURL,
		ListError:    ListErrorMessage,
		GenericError: GenericErrorMessage,
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// Static serves the embedded assets under StaticURL.
func Static() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix(StaticURL, http.FileServer(http.FS(sub)))
}
