// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/configurable-tables/internal/platform/apperr"
	"github.com/taibuivan/configurable-tables/internal/platform/constants"
	"github.com/taibuivan/configurable-tables/internal/platform/validate"
)

// maxFormBytes caps the size of a url-encoded form body.
const maxFormBytes = 64 << 10

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
PostForm parses a url-encoded request body and returns only the body values
(query string parameters are not merged in).

Returns:
  - url.Values: Submitted form data
  - error: apperr.ValidationError if the body cannot be parsed
*/
func PostForm(writer http.ResponseWriter, request *http.Request) (url.Values, error) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxFormBytes)

	if err := request.ParseForm(); err != nil {
		return nil, apperr.ValidationError("Invalid form payload")
	}

	return request.PostForm, nil
}

/*
WantsJSON reports whether the client asked for a JSON representation.
*/
func WantsJSON(request *http.Request) bool {
	return strings.Contains(request.Header.Get(constants.HeaderAccept), "application/json")
}
