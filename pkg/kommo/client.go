package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kommo-tools-be/internal/pkg/logger"
)

// IClient is the surface tool handlers depend on. The Kommo REST API is
// consumed as a black box: callers provide the decoded shape via out.
type IClient interface {
	Get(ctx context.Context, endpoint string, params map[string]any, out any) error
	Post(ctx context.Context, endpoint string, body any, out any) error
	Patch(ctx context.Context, endpoint string, body any, out any) error
}

// Error is a non-2xx answer from Kommo, already translated to a
// caller-facing message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type Client struct {
	apiURL     string
	token      string
	httpClient *http.Client
	logger     logger.ILogger
}

func NewClient(baseURL, accessToken string, log logger.ILogger) *Client {
	return &Client{
		apiURL:     strings.TrimRight(baseURL, "/") + "/api/v4",
		token:      accessToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log,
	}
}

func (c *Client) Get(ctx context.Context, endpoint string, params map[string]any, out any) error {
	return c.request(ctx, http.MethodGet, endpoint, nil, params, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any, out any) error {
	return c.request(ctx, http.MethodPost, endpoint, body, nil, out)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any, out any) error {
	return c.request(ctx, http.MethodPatch, endpoint, body, nil, out)
}

func (c *Client) request(ctx context.Context, method, endpoint string, body any, params map[string]any, out any) error {
	target := c.apiURL + endpoint
	if len(params) > 0 {
		values := url.Values{}
		for key, value := range params {
			if value == nil {
				continue
			}
			values.Set(key, fmt.Sprintf("%v", value))
		}
		if encoded := values.Encode(); encoded != "" {
			target += "?" + encoded
		}
	}

	var reqBody io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPatch) {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("kommo: marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("kommo: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("kommo: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("kommo: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error bodies are best effort: an unparseable body means no detail.
		var errData struct {
			Detail string `json:"detail"`
			Title  string `json:"title"`
		}
		_ = json.Unmarshal(respBody, &errData)
		detail := errData.Detail
		if detail == "" {
			detail = errData.Title
		}

		c.logger.Warn("kommo", "Upstream request failed", map[string]interface{}{
			"method": method,
			"path":   endpoint,
			"status": resp.StatusCode,
		})
		return &Error{Status: resp.StatusCode, Message: statusMessage(resp.StatusCode, detail)}
	}

	c.logger.Debug("kommo", "Upstream request ok", map[string]interface{}{
		"method": method,
		"path":   endpoint,
		"status": resp.StatusCode,
	})

	// Some endpoints answer 204 No Content.
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("kommo: decode response: %w", err)
	}
	return nil
}

func statusMessage(status int, detail string) string {
	switch status {
	case 400:
		return fmt.Sprintf("Requisição inválida: %s", detail)
	case 401:
		return "Token expirado ou inválido. Gere um novo token no Kommo."
	case 403:
		return "Acesso negado. Verifique as permissões."
	case 404:
		return "Recurso não encontrado. Verifique o ID."
	case 422:
		return fmt.Sprintf("Dados inválidos: %s", detail)
	case 429:
		return "Limite de requisições excedido. Aguarde."
	case 500:
		return "Erro interno do Kommo. Tente novamente."
	case 502:
		return "Kommo indisponível. Tente novamente."
	case 503:
		return "Kommo em manutenção. Aguarde."
	case 504:
		return "Timeout. Tente novamente."
	default:
		return fmt.Sprintf("Erro HTTP %d: %s", status, detail)
	}
}
