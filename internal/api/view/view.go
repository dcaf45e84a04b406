// Package view renders the server-side HTML pages.
//
// Every page template under templates/ is parsed together with
// templates/layout.html and executed as "layout". Handlers pass a *Page;
// the renderer fills in the notices, identity and navigation for the
// current request before executing.
package view

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/core/domain"
)

//go:embed templates
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// NavSource supplies the classification links of the site navigation.
type NavSource interface {
	Classifications(ctx context.Context) ([]domain.Classification, error)
}

// Page is the data handed to every template.
type Page struct {
	Title    string
	Notices  []string
	Errors   domain.ValidationErrors
	Identity *domain.Claims
	Nav      []domain.Classification
	// Form holds the submitted values shown back on a re-rendered form.
	// Password fields are never part of it.
	Form any
	Data any
}

// LoggedIn reports whether the page is rendered for an authenticated account.
func (p *Page) LoggedIn() bool { return p.Identity != nil }

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
	nav   NavSource
	log   zerolog.Logger
}

// NewRenderer parses every embedded page. nav may be nil.
func NewRenderer(nav NavSource, log zerolog.Logger) (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template), nav: nav, log: log}

	err := fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == layoutFile || !strings.HasSuffix(path, ".html") {
			return nil
		}

		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		r.pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render executes the named page. data may be a *Page, a Page or nil.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}

	var page *Page
	switch d := data.(type) {
	case *Page:
		page = d
	case Page:
		page = &d
	case nil:
		page = &Page{}
	default:
		page = &Page{Data: d}
	}
	r.fill(c, page)

	return tmpl.ExecuteTemplate(w, "layout", page)
}

func (r *Renderer) fill(c echo.Context, page *Page) {
	page.Notices = append(page.Notices, middleware.Notices(c)...)
	if page.Identity == nil {
		if claims, ok := middleware.Identity(c); ok {
			page.Identity = claims
		}
	}
	if page.Nav == nil && r.nav != nil {
		nav, err := r.nav.Classifications(c.Request().Context())
		if err != nil {
			r.log.Warn().Err(err).Msg("navigation unavailable")
			return
		}
		page.Nav = nav
	}
}

var funcs = template.FuncMap{
	"usd":       usd,
	"thousands": func(n int) string { return thousands(int64(n)) },
	"stars":     stars,
	"date":      func(t time.Time) string { return t.Format("January 2, 2006") },
}

func stars(rating int) string {
	rating = max(0, min(rating, domain.MaxReviewRating))
	return strings.Repeat("★", rating) + strings.Repeat("☆", domain.MaxReviewRating-rating)
}

// usd formats an amount as whole US dollars, e.g. $25,999.
func usd(amount float64) string {
	return "$" + thousands(int64(amount+0.5))
}

func thousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
