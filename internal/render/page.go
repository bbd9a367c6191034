package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/arcanaland/showcase/internal/catalog"
	"github.com/arcanaland/showcase/internal/config"
	"github.com/arcanaland/showcase/internal/item"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.tmpl"))

// ContainerSelector is the element the filterable grid is attached to
const ContainerSelector = ".filtr-container"

var (
	textPolicy   = bluemonday.StrictPolicy()
	markupPolicy = bluemonday.UGCPolicy()
)

// Page is a rendered gallery ready to be written as HTML
type Page struct {
	Title      string
	Intro      template.HTML
	Categories []item.Category
	Assets     config.AssetsConfig

	grid   *Grid
	filter *FilterGrid
}

// BuildPage renders every item of c into a new page
func BuildPage(logger *zap.Logger, c *catalog.Catalog, assets config.AssetsConfig) (*Page, error) {
	intro, err := Markdown(c.Description)
	if err != nil {
		return nil, fmt.Errorf("render intro: %w", err)
	}

	page := &Page{
		Title:      c.Name,
		Intro:      intro,
		Categories: c.Categories(),
		Assets:     assets,
		grid:       NewGrid(),
		filter:     NewFilterGrid(ContainerSelector),
	}
	if page.Title == "" {
		page.Title = c.ID
	}

	if err := NewRenderer(logger).Render(c.Items(), c.Resolver(), page.grid, page.filter); err != nil {
		return nil, fmt.Errorf("render %s: %w", c.ID, err)
	}
	return page, nil
}

// Grid returns the page's card container
func (p *Page) Grid() *Grid {
	return p.grid
}

// Write writes the page as an HTML document
func (p *Page) Write(w io.Writer) error {
	if p.filter == nil || !p.filter.Initialized() {
		return errors.New("page has not been rendered")
	}
	return pageTemplate.Execute(w, p.view())
}

// Bytes returns the HTML document
func (p *Page) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type pageView struct {
	Title      string
	Intro      template.HTML
	Categories []item.Category
	Assets     config.AssetsConfig
	Selector   string
	Cards      []cardView
}

type cardView struct {
	ID            string
	Class         string
	Category      item.Category
	Href          string
	Label         string
	Image         string
	Lightbox      bool
	External      bool
	CaptionHidden bool
	HoverBound    bool
}

func (p *Page) view() pageView {
	v := pageView{
		Title:      p.Title,
		Intro:      p.Intro,
		Categories: p.Categories,
		Assets:     p.Assets,
		Selector:   p.filter.Selector,
	}
	for _, card := range p.grid.Cards() {
		v.Cards = append(v.Cards, cardView{
			ID:            card.ID,
			Class:         card.Class(),
			Category:      card.Category,
			Href:          card.Link.Href,
			Label:         PlainText(card.Link.Label),
			Image:         ImageURL(p.Assets.ImageBase, card.Link.Image),
			Lightbox:      card.Link.Kind == item.EmbeddedViewer && card.Link.Href != "",
			External:      card.Link.Kind == item.ExternalLink && card.Link.Href != "",
			CaptionHidden: !card.CaptionVisible,
			HoverBound:    card.HoverBound,
		})
	}
	return v
}

// ImageURL joins a relative thumbnail path onto base. Absolute paths and
// URLs are returned unchanged.
func ImageURL(base, image string) string {
	if base == "" || image == "" || strings.HasPrefix(image, "/") || strings.Contains(image, "://") {
		return image
	}
	return strings.TrimSuffix(base, "/") + "/" + image
}

// PlainText strips any markup from s
func PlainText(s string) string {
	return html.UnescapeString(textPolicy.Sanitize(s))
}

// Markdown converts md to sanitised HTML
func Markdown(md string) (template.HTML, error) {
	if md == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return template.HTML(markupPolicy.SanitizeBytes(buf.Bytes())), nil
}
