package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"codestreak/internal/modules/dashboard/domain"
	dashboardout "codestreak/internal/modules/dashboard/port/out"
	apperrors "codestreak/internal/platform/errors"
)

const initDataHeader = "X-Telegram-Init-Data"

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

type HTTPOptions struct {
	BaseURL string
	Token   string
	// Timeout bounds each request; zero leaves it to the caller's context.
	Timeout time.Duration
	Client  *http.Client
}

type HTTPGateway struct {
	base   *url.URL
	token  string
	client *http.Client
	gate   dashboardout.Gate
	log    *log.Logger
}

func NewHTTPGateway(opts HTTPOptions, gate dashboardout.Gate, logger *log.Logger) (*HTTPGateway, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parse base url %q: %w", opts.BaseURL, apperrors.ErrValidation)
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	if opts.Timeout > 0 {
		cp := *client
		cp.Timeout = opts.Timeout
		client = &cp
	}
	return &HTTPGateway{base: base, token: opts.Token, client: client, gate: gate, log: logger}, nil
}

func (g *HTTPGateway) Status(ctx context.Context, force bool) (domain.StatusSnapshot, error) {
	params := map[string]string{}
	if force {
		params["force"] = "1"
	}
	var body wireStatus
	if err := g.get(ctx, "/api/status", params, &body); err != nil {
		return domain.StatusSnapshot{}, err
	}
	return body.toDomain(), nil
}

func (g *HTTPGateway) History(ctx context.Context, days int) (domain.Week, error) {
	var body wireHistory
	if err := g.get(ctx, "/api/history", map[string]string{"days": strconv.Itoa(days)}, &body); err != nil {
		return domain.Week{}, err
	}
	return body.toDomain(), nil
}

func (g *HTTPGateway) SaveSettings(ctx context.Context, patch domain.SettingsPatch) error {
	var ack wireAck
	return g.post(ctx, "/api/settings", patchFromDomain(patch), nil, &ack)
}

func (g *HTTPGateway) get(ctx context.Context, path string, params map[string]string, into any) error {
	return g.do(ctx, http.MethodGet, path, params, nil, into)
}

func (g *HTTPGateway) post(ctx context.Context, path string, payload any, params map[string]string, into any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", path, err)
	}
	return g.do(ctx, http.MethodPost, path, params, raw, into)
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, params map[string]string, payload []byte, into any) error {
	if g.token == "" {
		return fmt.Errorf("%s %s: %w", method, path, apperrors.ErrMissingIdentity)
	}
	target := g.endpoint(path, params)
	call := func() error {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, body)
		if err != nil {
			return fmt.Errorf("build %s %s: %w", method, path, err)
		}
		req.Header.Set("Accept", "application/json")
		if method == http.MethodPost {
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(initDataHeader, g.token)
		}

		started := time.Now()
		g.log.Debug("request", "method", method, "path", path)
		resp, err := g.client.Do(req)
		if err != nil {
			g.log.Warn("request failed", "method", method, "path", path, "err", err)
			return fmt.Errorf("%s %s: %w: %v", method, path, apperrors.ErrTransport, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		if err != nil {
			g.log.Warn("read response failed", "method", method, "path", path, "err", err)
			return fmt.Errorf("%s %s: %w: %v", method, path, apperrors.ErrTransport, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			g.log.Warn("unexpected status", "method", method, "path", path, "status", resp.StatusCode)
			return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
		}
		if err := json.Unmarshal(raw, into); err != nil {
			g.log.Warn("undecodable response", "method", method, "path", path, "err", err)
			return fmt.Errorf("%s %s: %w: decode body: %v", method, path, apperrors.ErrRequestFailed, err)
		}
		g.log.Debug("response", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(started))
		return nil
	}
	if g.gate == nil {
		return call()
	}
	return g.gate.Do(call)
}

// endpoint joins path onto the base URL and merges the identity with the
// caller's parameters. Empty values are dropped.
func (g *HTTPGateway) endpoint(path string, params map[string]string) string {
	u := *g.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	q := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	q.Set("initData", g.token)
	u.RawQuery = q.Encode()
	return u.String()
}

// StatusError is a non-2xx response. It matches apperrors.ErrRequestFailed.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: request failed: status %d", e.Method, e.Path, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == apperrors.ErrRequestFailed
}
