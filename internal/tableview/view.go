// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tableview

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/justinas/nosurf"

	"github.com/taibuivan/configurable-tables/internal/platform/apperr"
	"github.com/taibuivan/configurable-tables/internal/platform/constants"
	"github.com/taibuivan/configurable-tables/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/configurable-tables/internal/platform/request"
	"github.com/taibuivan/configurable-tables/internal/platform/respond"
	"github.com/taibuivan/configurable-tables/internal/table"
	"github.com/taibuivan/configurable-tables/internal/tableconfig"
	"github.com/taibuivan/configurable-tables/pkg/pagination"
	"github.com/taibuivan/configurable-tables/pkg/pointer"
)

// defaultPageTemplate renders a full table page.
const defaultPageTemplate = "pages/table.html"

// # View

// View is the HTTP handler of one configurable table.
type View struct {
	definition *table.Definition
	settings   Settings
	resolver   *Resolver
	source     Source
	store      tableconfig.Repository
	renderer   table.Renderer
}

/*
NewView assembles a table view.

Parameters:
  - definition: The table to display
  - source: Provides the base collection of each request
  - store: Persists configurations of authenticated requesters
  - renderer: Renders the page and cell templates
  - settings: Per-view overrides
*/
func NewView(definition *table.Definition, source Source, store tableconfig.Repository, renderer table.Renderer, settings Settings) *View {
	return &View{
		definition: definition,
		settings:   settings,
		resolver:   NewResolver(definition, settings, store),
		source:     source,
		store:      store,
		renderer:   renderer,
	}
}

// TableName returns the identity under which the view stores configurations.
func (view *View) TableName() string {
	return view.resolver.TableName()
}

// Definition returns the displayed table definition.
func (view *View) Definition() *table.Definition {
	return view.definition
}

// ServeHTTP dispatches GET/HEAD to [View.Get] and POST to [View.Post].
func (view *View) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	switch request.Method {
	case http.MethodGet, http.MethodHead:
		view.Get(writer, request)
	case http.MethodPost:
		view.Post(writer, request)
	default:
		writer.Header().Set("Allow", "GET, HEAD, POST")
		respond.Error(writer, request, apperr.MethodNotAllowed(request.Method))
	}
}

// # Display

/*
Get renders the current page of the table.

Description: The requester's configuration decides the visible columns, the
page size and the default order; query parameters may override the order
("order_by") and select the page ("page"). A page outside the available range
answers 404.
*/
func (view *View) Get(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	configuration, err := view.configuration(ctx)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	pageSize := view.resolver.PageSize(configuration)
	order, stored := view.resolver.SortOrder(query, configuration)
	filters := view.settings.Filters.Filters(query)

	collection := view.source(request)
	if len(filters) > 0 {
		collection = collection.Filter(filters)
	}
	if stored {
		collection = ApplyStoredOrdering(view.definition, collection, order)
	} else {
		collection = ApplyOrdering(view.definition, collection, order)
	}

	total, err := collection.Count(ctx)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, ok := pagination.ParsePage(query.Get(constants.ParamPage), pagination.TotalPages(pageSize, total))
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Page"))
		return
	}

	records, err := collection.Slice(ctx, pagination.Offset(page, pageSize), pageSize)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	meta := pagination.NewMeta(page, pageSize, total)
	instance := view.definition.NewTable(configuration.Columns, records)

	if requestutil.WantsJSON(request) {
		respond.Paginated(writer, view.document(instance, configuration, order, filters), meta)
		return
	}

	form := NewConfigurationForm(view.definition, view.TableName(), configuration)
	data := map[string]any{
		"title":                    view.title(),
		"table_name":               view.TableName(),
		"table":                    instance,
		"table_configuration_form": form,
		"configuration":            configuration,
		"object_list":              records,
		"page":                     meta,
		"filters":                  filters,
		"has_filters":              view.settings.Filters.Active(query),
		"order_by":                 order,
		"query":                    query,
		"request_path":             request.URL.Path,
		"form_action":              request.URL.RequestURI(),
		"csrf_token":               nosurf.Token(request),
	}

	body, err := view.renderer.RenderString(view.template(), data)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.HTML(writer, http.StatusOK, []byte(body))
}

// # Configuration Update

/*
Post applies a configuration form submission and redirects back.

Description: A valid submission is written onto the configuration and only
the changed fields are persisted; a changed page size also drops the "page"
parameter from the redirect target. Anonymous configurations are never
persisted. Invalid submissions are logged and ignored. The response is always
a 302 to the same path and remaining query.
*/
func (view *View) Post(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	configuration, err := view.configuration(ctx)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	form := NewConfigurationForm(view.definition, view.TableName(), configuration)

	var update tableconfig.Update
	values, err := requestutil.PostForm(writer, request)
	if err == nil {
		update, err = form.Bind(values)
	}

	if err != nil {
		logger.Info("table_configuration_invalid",
			slog.String("table", view.TableName()),
			slog.Any("errors", form.Errors),
		)
	} else {
		changed := configuration.Apply(update)

		if slices.Contains(changed, tableconfig.FieldLimit) {
			query.Del(constants.ParamPage)
		}

		if configuration.IsPersisted() && len(changed) > 0 {
			if err := view.store.UpdateFields(ctx, configuration, changed...); err != nil {
				respond.Error(writer, request, err)
				return
			}

			logger.Info("table_configuration_updated",
				slog.String("table", view.TableName()),
				slog.String("configuration_id", configuration.ID),
				slog.Any("fields", changed),
			)
		}
	}

	location := request.URL.Path
	if encoded := query.Encode(); encoded != "" {
		location += "?" + encoded
	}

	respond.Redirect(writer, request, location)
}

// # Helpers

// configuration resolves the requester's configuration and backfills the
// page size and sort order of a freshly created one.
func (view *View) configuration(ctx context.Context) (*tableconfig.Configuration, error) {
	configuration, created, err := view.resolver.Configuration(ctx)
	if err != nil {
		return nil, err
	}

	if !created {
		return configuration, nil
	}

	configuration.Limit = pointer.To(view.resolver.DefaultPageSize())
	configuration.OrderBy = optional(view.resolver.DefaultOrderBy())

	if err := view.store.UpdateFields(ctx, configuration, tableconfig.FieldLimit, tableconfig.FieldOrderBy); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).Info("table_configuration_created",
		slog.String("table", view.TableName()),
		slog.String("configuration_id", configuration.ID),
	)

	return configuration, nil
}

func (view *View) title() string {
	if view.settings.Title != "" {
		return view.settings.Title
	}
	return table.Humanize(view.TableName())
}

func (view *View) template() string {
	if view.settings.Template != "" {
		return view.settings.Template
	}
	return defaultPageTemplate
}

// # JSON Representation

// document is the JSON representation of a rendered page.
type document struct {
	Table         string                     `json:"table"`
	Columns       []*table.Column            `json:"columns"`
	Rows          []map[string]any           `json:"rows"`
	OrderBy       string                     `json:"order_by,omitempty"`
	Filters       map[string]any             `json:"filters"`
	Configuration *tableconfig.Configuration `json:"configuration"`
}

func (view *View) document(instance *table.Table, configuration *tableconfig.Configuration, order string, filters map[string]any) document {
	rows := make([]map[string]any, 0, instance.Len())
	for _, row := range instance.Rows() {
		values := make(map[string]any)
		for _, cell := range row.Cells() {
			if value, ok := cell.Value(); ok {
				values[cell.Column().Name] = value
			}
		}
		rows = append(rows, values)
	}

	return document{
		Table:         view.TableName(),
		Columns:       instance.Columns(),
		Rows:          rows,
		OrderBy:       order,
		Filters:       filters,
		Configuration: configuration,
	}
}
