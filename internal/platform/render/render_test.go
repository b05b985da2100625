// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render_test

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configurable-tables/internal/platform/render"
	"github.com/taibuivan/configurable-tables/internal/table"
)

func definition() *table.Definition {
	return table.Define("ContactTable").
		Add("name", &table.Column{Kind: table.KindText, Sortable: true}).
		Add("active", &table.Column{Kind: table.KindBoolean}).
		Add("joined", &table.Column{Kind: table.KindDate}).
		Options(table.Options{ContextName: "contact", EmptyMessage: "No contacts"}).
		MustBuild()
}

func TestHTMLRenderer_Embedded(t *testing.T) {
	renderer, err := render.New("")
	require.NoError(t, err)

	assert.True(t, renderer.Exists("tables/columns/default.html"))
	assert.True(t, renderer.Exists(render.TableTemplate))
	assert.True(t, renderer.Exists(render.PageTemplate))
	assert.False(t, renderer.Exists("tables/contact/name.html"))
}

func TestHTMLRenderer_RenderTable(t *testing.T) {
	renderer, err := render.New("")
	require.NoError(t, err)

	records := []any{
		map[string]any{"name": "<Ada>", "active": true, "joined": time.Now().Add(-2 * time.Hour)},
		map[string]any{"name": "Alan", "active": false},
	}
	tbl := definition().NewTable([]string{"name", "active", "joined"}, records)

	out, err := renderer.RenderString(render.TableTemplate, map[string]any{
		"table":    tbl,
		"query":    url.Values{"q": {"a"}},
		"order_by": "name",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "&lt;Ada&gt;")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "cell-boolean-yes")
	assert.Contains(t, out, "cell-boolean-no")
	assert.Contains(t, out, "order_by=-name")
	assert.NotContains(t, out, "<no value>")
}

func TestHTMLRenderer_Empty(t *testing.T) {
	renderer, err := render.New("")
	require.NoError(t, err)

	tbl := definition().NewTable([]string{"name"}, nil)
	out, err := renderer.RenderString(render.TableTemplate, map[string]any{"table": tbl, "query": url.Values{}})
	require.NoError(t, err)

	assert.Contains(t, out, "No contacts")
	assert.Contains(t, out, `colspan="1"`)
}

func TestHTMLRenderer_Override(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tables", "contact"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "tables", "contact", "name.html"),
		[]byte(`<b>{{ display .value }}</b>`),
		0o644,
	))

	renderer, err := render.New(dir)
	require.NoError(t, err)
	require.True(t, renderer.Exists("tables/contact/name.html"))

	cell := definition().NewTable([]string{"name"}, []any{map[string]any{"name": "Ada"}}).Rows()[0].Cells()[0]
	out, err := cell.Render(renderer, nil)
	require.NoError(t, err)
	assert.Equal(t, "<b>Ada</b>", out)
}
