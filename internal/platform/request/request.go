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
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/anitoki/internal/platform/apperr"
	"github.com/taibuivan/anitoki/internal/platform/ctxutil"
	"github.com/taibuivan/anitoki/internal/platform/validate"
)

// maxBodyBytes caps JSON request bodies; every payload here is tiny.
const maxBodyBytes = 1 << 16

/*
DecodeJSON reads the request body and decodes it into the target structure.
Unknown fields are rejected.

Parameters:
  - writer: http.ResponseWriter (used to bound the body size)
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
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
Query returns the trimmed value of a query parameter.
*/
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
RequiredVisitorID returns the identifier of the current visitor.

Returns:
  - string: Visitor UUID
  - error: apperr.Unauthorized if the Visitor middleware attached none
*/
func RequiredVisitorID(request *http.Request) (string, error) {
	visitorID := ctxutil.GetVisitorID(request.Context())
	if visitorID == "" {
		return "", apperr.Unauthorized("Visitor identity required")
	}
	return visitorID, nil
}
