// Package render serializes a graph and embeds it into the self-contained
// HTML visualisation page.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/starford/vaultgraph/internal/models"
	"github.com/starford/vaultgraph/internal/storage"
)

// DefaultFile is the artifact file name written into the output directory.
const DefaultFile = "vault_graph.html"

const defaultD3URL = "https://d3js.org/d3.v5.min.js"

//go:embed templates/graph.html.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/graph.html.tmpl"))

// PageOptions tunes the HTML shell.
type PageOptions struct {
	Title string
	D3URL string
	// EventsURL, when set, makes the page reload on graph.updated server-sent events.
	EventsURL string
}

type pageData struct {
	Title     string
	D3URL     string
	EventsURL string
	Data      template.JS
}

// JSON serializes g. Nil slices are emitted as empty arrays.
func JSON(g *models.Graph) ([]byte, error) {
	out := *g
	if out.Nodes == nil {
		out.Nodes = []models.Node{}
	}
	if out.Links == nil {
		out.Links = []models.Edge{}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("render: marshal graph: %w", err)
	}
	return data, nil
}

// Page substitutes serialized graph data into the HTML shell.
func Page(w io.Writer, data []byte, opts PageOptions) error {
	if opts.Title == "" {
		opts.Title = "Vault Graph"
	}
	if opts.D3URL == "" {
		opts.D3URL = defaultD3URL
	}
	// json.Marshal escapes <, > and & so the payload cannot close the script element.
	err := pageTmpl.Execute(w, pageData{
		Title:     opts.Title,
		D3URL:     opts.D3URL,
		EventsURL: opts.EventsURL,
		Data:      template.JS(data),
	})
	if err != nil {
		return fmt.Errorf("render: execute template: %w", err)
	}
	return nil
}

// HTML serializes g and renders the page in one step.
func HTML(g *models.Graph, opts PageOptions) ([]byte, error) {
	data, err := JSON(g)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Page(&buf, data, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteArtifact renders g and atomically writes it to name within out.
func WriteArtifact(out storage.Provider, name string, g *models.Graph, opts PageOptions) error {
	if name == "" {
		name = DefaultFile
	}
	page, err := HTML(g, opts)
	if err != nil {
		return err
	}
	if err := out.Write(name, page); err != nil {
		return fmt.Errorf("render: write artifact: %w", err)
	}
	return nil
}
