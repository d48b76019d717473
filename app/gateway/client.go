package gateway

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Client forwards validated requests to the backend service and relays the
// response verbatim. No business logic lives on this side.
type Client struct {
	base   string
	client *http.Client
}

func NewClient(base string) *Client {
	// A hung backend must not pin gateway connections forever.
	return &Client{base: base, client: &http.Client{Timeout: 30 * time.Second}}
}

// Forward replays the incoming request against the backend: same method, same
// path and query, the given body, and the sharer header when present.
func (cl *Client) Forward(c echo.Context, body []byte) error {
	in := c.Request()

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(in.Context(), in.Method, cl.base+in.URL.RequestURI(), rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if v := in.Header.Get(UserIDHeader); v != "" {
		req.Header.Set(UserIDHeader, v)
	}

	resp, err := cl.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = echo.MIMEApplicationJSON
	}
	return c.Blob(resp.StatusCode, ct, out)
}
