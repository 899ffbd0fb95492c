// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anitoki/internal/platform/apperr"
	"github.com/taibuivan/anitoki/internal/platform/respond"
	"github.com/taibuivan/anitoki/pkg/pagination"
)

/*
TestError maps application errors to their status and hides the text of
unexpected ones.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantText   string
	}{
		{"not found", apperr.NotFound("Schedule"), http.StatusNotFound, "NOT_FOUND", ""},
		{"upstream", apperr.Upstream("jikan", errors.New("502")), http.StatusBadGateway, "UPSTREAM_ERROR", ""},
		{"unexpected", errors.New("pgx: connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR", "pgx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			if tt.wantText != "" {
				assert.NotContains(t, body.Error, tt.wantText)
			}
		})
	}
}

/*
TestPaginated writes the page under data and its metadata under meta.
*/
func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []string{"Frieren"}, pagination.NewMeta(1, 24, 1))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":["Frieren"],"meta":{"page":1,"limit":24,"total":1,"total_pages":1}}`, recorder.Body.String())
}
