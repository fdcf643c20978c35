package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 20 * time.Second

	maxBodyBytes = 1 << 20 // 1MB
)

var (
	ErrNilClient = errors.New("httpclient: nil client")
	// ErrTransport marca fallas de red (timeout, DNS, conexión rechazada).
	ErrTransport = errors.New("httpclient: transport error")
	// ErrDecode: 2xx con un body que no calza con el tipo esperado.
	ErrDecode = errors.New("httpclient: decode error")
)

// Timeouts por fase. En cero se usa DefaultTimeout.
type Timeouts struct {
	Connect time.Duration
	Read    time.Duration
	Write   time.Duration
}

func (t Timeouts) withDefaults() Timeouts {
	if t.Connect <= 0 {
		t.Connect = DefaultTimeout
	}
	if t.Read <= 0 {
		t.Read = DefaultTimeout
	}
	if t.Write <= 0 {
		t.Write = DefaultTimeout
	}
	return t
}

// Uniform aplica el mismo valor a las tres fases.
func Uniform(d time.Duration) Timeouts {
	return Timeouts{Connect: d, Read: d, Write: d}
}

// Client envuelve *http.Client con helpers JSON para los repositorios.
type Client struct {
	HTTP    *http.Client
	BaseURL string // si se define, los métodos aceptan paths relativos
}

// NewTransport arma un *http.Transport con los timeouts por fase:
// connect => dial + TLS, read => espera de headers de respuesta.
// write no tiene equivalente directo en net/http; se suma al timeout total.
func NewTransport(t Timeouts) *http.Transport {
	t = t.withDefaults()
	dialer := &net.Dialer{
		Timeout:   t.Connect,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   t.Connect,
		ResponseHeaderTimeout: t.Read,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          20,
	}
}

// New crea un Client con BaseURL, timeouts y un RoundTripper opcional.
// Si tr es nil se usa NewTransport(t).
func New(baseURL string, t Timeouts, tr http.RoundTripper) (*Client, error) {
	t = t.withDefaults()
	if tr == nil {
		tr = NewTransport(t)
	}

	c := &Client{
		HTTP: &http.Client{
			Timeout:   t.Connect + t.Read + t.Write,
			Transport: tr,
		},
	}

	if strings.TrimSpace(baseURL) == "" {
		return c, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// HTTPError representa una respuesta no-2xx (ya aplicado el fallback de path).
type HTTPError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// StatusOf devuelve el status de un *HTTPError envuelto en err, o 0.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// Response es la respuesta cruda (status + body ya leído).
type Response struct {
	StatusCode int
	Body       []byte
}

func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Do ejecuta el request y devuelve status + body sin interpretar.
// Solo falla por errores de armado o de transporte; un 4xx/5xx no es error aquí.
func (c *Client) Do(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
) (Response, error) {
	if c == nil || c.HTTP == nil {
		return Response{}, ErrNilClient
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return Response{}, err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return Response{}, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		// bytes.Reader => NewRequest setea GetBody y el fallback puede reenviar el body.
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return Response{}, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := readAtMost(resp.Body, maxBodyBytes)
	if err != nil {
		return Response{}, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	return Response{StatusCode: resp.StatusCode, Body: raw}, nil
}

// DoJSON hace un request JSON.
// - in: body a enviar (nil => sin body)
// - out: destino del decode (nil => ignora body)
// Retorna *HTTPError si el status no es 2xx.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	resp, err := c.Do(ctx, method, pathOrURL, headers, in)
	if err != nil {
		return err
	}

	if !resp.OK() {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       pathOrURL,
			Body:       strings.TrimSpace(string(resp.Body)),
		}
	}

	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: unmarshal json: %v", ErrDecode, err)
	}
	return nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = maxBodyBytes
	}
	return io.ReadAll(io.LimitReader(r, max))
}
