package platformapi

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

	pkgError "github.com/postline/postline/pkg/error"
)

// apiClient is the shared HTTP plumbing for every platform adapter: one
// client with a hard timeout, JSON in/out, non-2xx mapped to typed errors.
type apiClient struct {
	http *http.Client
}

func newAPIClient(timeout time.Duration) *apiClient {
	return &apiClient{
		http: &http.Client{Timeout: timeout},
	}
}

func (c *apiClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return pkgError.DeliveryError(fmt.Sprintf("request to %s failed: %v", req.URL.Host, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return pkgError.DeliveryError(fmt.Sprintf("failed to read response from %s: %v", req.URL.Host, err))
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return pkgError.AuthError(fmt.Sprintf("%s returned status %d: %s", req.URL.Host, resp.StatusCode, truncate(body)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgError.DeliveryError(fmt.Sprintf("%s returned status %d: %s", req.URL.Host, resp.StatusCode, truncate(body)))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return pkgError.DeliveryError(fmt.Sprintf("unexpected response from %s: %v", req.URL.Host, err))
		}
	}
	return nil
}

func (c *apiClient) postJSON(ctx context.Context, endpoint string, headers map[string]string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return c.do(req, out)
}

func (c *apiClient) postForm(ctx context.Context, endpoint string, headers map[string]string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return c.do(req, out)
}

func (c *apiClient) getJSON(ctx context.Context, endpoint string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return c.do(req, out)
}

func truncate(body []byte) string {
	const max = 300
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// composeCaption joins the caption and hashtag columns the way every platform
// expects them: caption first, hashtags on their own trailing line.
func composeCaption(caption, hashtags string) string {
	caption = strings.TrimSpace(caption)
	hashtags = strings.TrimSpace(hashtags)
	switch {
	case caption == "":
		return hashtags
	case hashtags == "":
		return caption
	default:
		return caption + "\n\n" + hashtags
	}
}
