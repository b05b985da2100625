// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tableview serves configurable tables over HTTP.

A [View] answers GET with a paginated, filtered and ordered page of a table,
shaped by the requester's stored configuration, and POST with an update of
that configuration followed by a redirect.

Pipeline (GET):

 1. Resolve the configuration (fetch, or create and backfill it).
 2. Resolve the page size and the sort token.
 3. Filter, then order the collection.
 4. Slice the requested page and project it into a [table.Table].
 5. Render HTML, or JSON when the client asks for it.
*/
package tableview

import (
	"context"
	"net/url"
	"strings"

	"github.com/taibuivan/configurable-tables/internal/platform/constants"
	"github.com/taibuivan/configurable-tables/internal/platform/ctxutil"
	"github.com/taibuivan/configurable-tables/internal/table"
	"github.com/taibuivan/configurable-tables/internal/tableconfig"
	"github.com/taibuivan/configurable-tables/pkg/pointer"
	"github.com/taibuivan/configurable-tables/pkg/slug"
)

// # Identity

// TableIdentity derives the persistence and URL name of a definition:
// "CustomerTable" becomes "customer".
func TableIdentity(definition *table.Definition) string {
	return strings.TrimSuffix(slug.FromIdentifier(definition.Name()), "-table")
}

// # Settings

// Settings are the per-view knobs. Zero values fall back to the definition.
type Settings struct {
	// Name overrides [TableIdentity].
	Name string

	// Title is the page heading; defaults to the humanized table name.
	Title string

	// Template overrides the page template.
	Template string

	// DefaultColumns overrides the definition's default columns.
	DefaultColumns []string

	// PageSize seeds new configurations and anonymous requests.
	PageSize int

	// FixedPageSize, when positive, ignores the stored page size.
	FixedPageSize int

	// OrderBy overrides the definition's default sort token.
	OrderBy string

	Filters FilterSet
}

// # Resolver

// Resolver computes the effective configuration of a request.
type Resolver struct {
	definition *table.Definition
	settings   Settings
	store      tableconfig.Repository
}

// NewResolver builds a resolver for definition.
func NewResolver(definition *table.Definition, settings Settings, store tableconfig.Repository) *Resolver {
	return &Resolver{definition: definition, settings: settings, store: store}
}

// TableName returns the configured name or the definition identity.
func (r *Resolver) TableName() string {
	if r.settings.Name != "" {
		return r.settings.Name
	}
	return TableIdentity(r.definition)
}

// DefaultColumns returns the default selection plus the always-visible columns.
func (r *Resolver) DefaultColumns() []string {
	columns := r.settings.DefaultColumns
	if columns == nil {
		columns = r.definition.DefaultColumns()
	}

	seen := make(map[string]bool, len(columns))
	var result []string
	for _, name := range append(append([]string(nil), columns...), r.definition.AlwaysVisible()...) {
		if !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	return result
}

// DefaultOrderBy returns the view or definition default sort token.
func (r *Resolver) DefaultOrderBy() string {
	if r.settings.OrderBy != "" {
		return r.settings.OrderBy
	}
	return r.definition.DefaultOrderBy()
}

// DefaultPageSize returns the page size seeding new configurations.
func (r *Resolver) DefaultPageSize() int {
	if r.settings.PageSize > 0 {
		return r.settings.PageSize
	}
	return constants.DefaultPageSize
}

/*
Configuration returns the requester's configuration.

Description: Authenticated requesters get their stored configuration, created
on first access with the default columns; the boolean reports that creation.
Anonymous requesters get a transient configuration that is never stored.

Returns:
  - *tableconfig.Configuration: The effective configuration
  - bool: true when the configuration was just created
  - error: Repository failures
*/
func (r *Resolver) Configuration(ctx context.Context) (*tableconfig.Configuration, bool, error) {
	seed := &tableconfig.Configuration{
		Name:       r.TableName(),
		TableClass: r.definition.Name(),
		Columns:    r.DefaultColumns(),
	}

	userID, ok := ctxutil.UserID(ctx)
	if !ok {
		seed.Limit = pointer.To(r.DefaultPageSize())
		return seed, false, nil
	}

	seed.UserID = userID
	return r.store.GetOrCreate(ctx, seed)
}

// SortOrder returns the effective sort token and whether it was translated
// from the stored configuration.
//
// An explicit "order_by" query parameter is used as given. Otherwise the stored
// token is translated to the sort key of its column, keeping a "-" prefix;
// a token naming no column is returned unchanged.
func (r *Resolver) SortOrder(query url.Values, configuration *tableconfig.Configuration) (string, bool) {
	if token := query.Get(constants.ParamOrderBy); token != "" {
		return token, false
	}

	token := pointer.Fallback(configuration.OrderBy, "")
	field, descending := ParseSortToken(token)
	if field == "" {
		return "", false
	}

	column, ok := r.definition.Lookup(field)
	if !ok {
		return token, true
	}

	if descending {
		return "-" + column.SortKey(), true
	}
	return column.SortKey(), true
}

// PageSize returns the effective page size.
func (r *Resolver) PageSize(configuration *tableconfig.Configuration) int {
	if r.settings.FixedPageSize > 0 {
		return r.settings.FixedPageSize
	}
	if limit := pointer.Fallback(configuration.Limit, 0); limit > 0 {
		return limit
	}
	return r.DefaultPageSize()
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return pointer.To(value)
}
