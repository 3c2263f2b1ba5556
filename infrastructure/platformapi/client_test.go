package platformapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgError "github.com/postline/postline/pkg/error"
)

func TestAPIClientMapsStatusCodesToTypedErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad token"}`, pkgError.AuthError("")},
		{"forbidden", http.StatusForbidden, `{"error":"no scope"}`, pkgError.AuthError("")},
		{"server error", http.StatusInternalServerError, `oops`, pkgError.DeliveryError("")},
		{"rate limited", http.StatusTooManyRequests, `slow down`, pkgError.DeliveryError("")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := newAPIClient(2 * time.Second)
			err := client.getJSON(context.Background(), server.URL, nil, nil)
			require.Error(t, err)
			assert.IsType(t, tc.wantErr, err)
		})
	}
}

func TestAPIClientDecodesSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"ext-42"}`))
	}))
	defer server.Close()

	client := newAPIClient(2 * time.Second)
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, client.getJSON(context.Background(), server.URL, bearer("token-123"), &out))
	assert.Equal(t, "ext-42", out.ID)
}

func TestAPIClientRejectsMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := newAPIClient(2 * time.Second)
	var out map[string]any
	err := client.getJSON(context.Background(), server.URL, nil, &out)
	require.Error(t, err)
	assert.IsType(t, pkgError.DeliveryError(""), err)
}

func TestComposeCaption(t *testing.T) {
	assert.Equal(t, "hello\n\n#go #dev", composeCaption("hello", "#go #dev"))
	assert.Equal(t, "hello", composeCaption(" hello ", ""))
	assert.Equal(t, "#go", composeCaption("", "#go"))
	assert.Equal(t, "", composeCaption("", ""))
}
