package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestUpstream_StatusTable — полная таблица статусов апстрима.
func TestUpstream_StatusTable(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name       string
		upstream   int
		wantStatus int
		wantMsg    string
	}{
		{"unauthorized", 401, 401, "Invalid API key configuration"},
		{"rate_limited", 429, 429, "API rate limit exceeded"},
		{"forbidden", 403, 403, "Access forbidden"},
		{"server_error", 500, 500, "Twitter API server error"},
		{"not_found", 404, 404, "HTTP error! status: 404"},
		{"bad_gateway", 502, 502, "HTTP error! status: 502"},
		{"unavailable", 503, 503, "HTTP error! status: 503"},
		{"redirect", 302, http.StatusBadGateway, "HTTP error! status: 302"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gotStatus, resp := ToHTTP(Upstream("Twitter", tc.upstream))
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantMsg, resp.Error)
			require.Equal(t, KindUpstream, resp.Code)
		})
	}
}

func TestUpstream_ProviderNameInServerError(t *testing.T) {
	t.Parallel()

	_, resp := ToHTTP(Upstream("Gemini", 500))
	require.Equal(t, "Gemini API server error", resp.Error)
}

func TestToHTTP_Kinds(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   Kind
		wantMsg    string
	}{
		{"validation", Validation("Invalid username parameter"), 400, KindValidation, "Invalid username parameter"},
		{"rate_limited", RateLimited(), 429, KindRateLimited, "Rate limit exceeded. Please try again later."},
		{"unauthorized", Unauthorized(), 401, KindUnauthorized, "Unauthorized access"},
		{"parse", Parse("Failed to parse analysis response", stderrors.New("bad json")), 500, KindParse, "Failed to parse analysis response"},
		{"timeout", Timeout(context.DeadlineExceeded), 504, KindTimeout, "Upstream request timed out"},
		{"internal", Internal("Failed to fetch tweets", stderrors.New("secret detail")), 500, KindInternal, "Failed to fetch tweets"},
		{"wrapped_domain", fmt.Errorf("svc: %w", Unauthorized()), 401, KindUnauthorized, "Unauthorized access"},
		{"bare_deadline", fmt.Errorf("do: %w", context.DeadlineExceeded), 504, KindTimeout, "Upstream request timed out"},
		{"bare_canceled", context.Canceled, StatusClientClosedRequest, KindCanceled, "canceled"},
		{"plain", stderrors.New("boom: secret"), 500, KindInternal, "internal error"},
		{"nil", nil, 500, KindInternal, "internal error"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Code)
			require.Equal(t, tc.wantMsg, resp.Error)
			require.NotContains(t, resp.Error, "secret")
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	require.Nil(t, Wrap(nil, "x"))

	dom := Validation("bad")
	require.Same(t, dom, Wrap(dom, "x"))

	e, ok := As(Wrap(context.DeadlineExceeded, "x"))
	require.True(t, ok)
	require.Equal(t, KindTimeout, e.Kind)

	e, ok = As(Wrap(stderrors.New("io"), "Failed to fetch user data"))
	require.True(t, ok)
	require.Equal(t, KindInternal, e.Kind)
	require.Equal(t, "Failed to fetch user data", e.Message)
	require.EqualError(t, e.Unwrap(), "io")
}

func TestWriteError_EnvelopeWithRequestIDAndDetails(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/gemini", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	rr := httptest.NewRecorder()

	WriteError(rr, req, Validation("Invalid chat data", "Message is required"))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "Invalid chat data", body.Error)
	require.Equal(t, KindValidation, body.Code)
	require.Equal(t, []string{"Message is required"}, body.Details)
	require.Equal(t, "rid-1", body.RequestID)
}
