package kommo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kommo-tools-be/internal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", logger.NewNopLogger())
}

func TestGetBuildsRequest(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotQuery map[string][]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"ok":true}`))
	})

	var out map[string]bool
	err := client.Get(context.Background(), "/leads", map[string]any{
		"limit": 10,
		"page":  1,
		"query": "acme",
		"skip":  nil,
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "/api/v4/leads", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, []string{"10"}, gotQuery["limit"])
	assert.Equal(t, []string{"acme"}, gotQuery["query"])
	assert.NotContains(t, gotQuery, "skip")
	assert.True(t, out["ok"])
}

func TestPostSerializesBody(t *testing.T) {
	var gotMethod string
	var gotBody []byte

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	})

	body := []map[string]any{{"entity_id": 42, "note_type": "common"}}
	err := client.Post(context.Background(), "/leads/notes", body, nil)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "common", decoded[0]["note_type"])
}

func TestPatchMethod(t *testing.T) {
	var gotMethod, gotPath string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":42}`))
	})

	err := client.Patch(context.Background(), "/leads/42", map[string]any{"name": "x"}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/v4/leads/42", gotPath)
}

func TestNoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	var out map[string]any
	err := client.Get(context.Background(), "/leads", nil, &out)

	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"rate limited", 429, `{}`, "Limite de requisições excedido. Aguarde."},
		{"bad request detail", 400, `{"detail":"campo inválido"}`, "Requisição inválida: campo inválido"},
		{"unprocessable title fallback", 422, `{"title":"Validation error"}`, "Dados inválidos: Validation error"},
		{"unauthorized", 401, `{}`, "Token expirado ou inválido. Gere um novo token no Kommo."},
		{"forbidden", 403, `{}`, "Acesso negado. Verifique as permissões."},
		{"not found", 404, `{}`, "Recurso não encontrado. Verifique o ID."},
		{"internal", 500, `{}`, "Erro interno do Kommo. Tente novamente."},
		{"bad gateway", 502, `{}`, "Kommo indisponível. Tente novamente."},
		{"maintenance", 503, `{}`, "Kommo em manutenção. Aguarde."},
		{"timeout", 504, `{}`, "Timeout. Tente novamente."},
		{"generic fallback", 418, `{"detail":"chá"}`, "Erro HTTP 418: chá"},
		{"unparseable error body", 400, `<html>oops</html>`, "Requisição inválida: "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			err := client.Get(context.Background(), "/leads", nil, nil)

			require.Error(t, err)
			var upstreamErr *Error
			require.ErrorAs(t, err, &upstreamErr)
			assert.Equal(t, tc.status, upstreamErr.Status)
			assert.Equal(t, tc.message, upstreamErr.Message)
			assert.Equal(t, tc.message, upstreamErr.Error())
		})
	}
}
