// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers and cookie configuration.
  - Tables: Query parameter names and page size defaults shared by table views.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "configurable-tables"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "tables.app"

	// AccessTokenCookieName carries the JWT for browser sessions rendering HTML tables.
	AccessTokenCookieName = "access_token"

	// AccessTokenCookiePath scopes the access token cookie to the whole site.
	AccessTokenCookiePath = "/"

	// AccessTokenTTL is the lifetime of issued access tokens and their cookie.
	AccessTokenTTL = 1 * time.Hour

	// DefaultUserRole is the role claim of every account.
	DefaultUserRole = "member"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAccept        = "Accept"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaUsers  = "users"
	SchemaTables = "tables"
	SchemaDemo   = "demo"
)

// # Tables

const (
	// ParamPage is the query parameter holding the 1-indexed page number.
	ParamPage = "page"

	// ParamOrderBy is the query parameter holding an explicit sort token ("-name" for descending).
	ParamOrderBy = "order_by"

	// DefaultPageSize is used for anonymous requesters when the view sets none.
	DefaultPageSize = 20

	// DefaultEmptyMessage is shown when a table has no rows.
	DefaultEmptyMessage = "No results matching your current filters"

	// DefaultTemplateRoot prefixes the per-table template directory convention.
	DefaultTemplateRoot = "tables"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixTableConfiguration = "tables:configuration:"
)
