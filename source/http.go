package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/midbel/trendline"
)

// HTTP loads a dataset document from a remote endpoint.
type HTTP struct {
	URL      string
	Method   string
	Body     string
	Username string
	Password string
	Token    string
	Headers  http.Header
	Fields   trendline.FieldNames
}

func (h HTTP) Load(ctx context.Context) (trendline.Dataset, error) {
	method := h.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if h.Body != "" {
		body = strings.NewReader(h.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, h.URL, body)
	if err != nil {
		return trendline.Dataset{}, err
	}
	for k, vs := range h.Headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	switch {
	case h.Token != "":
		req.Header.Set("Authorization", "Bearer "+h.Token)
	case h.Username != "":
		req.SetBasicAuth(h.Username, h.Password)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return trendline.Dataset{}, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return trendline.Dataset{}, fmt.Errorf("%s: request does not end with success result code", h.URL)
	}
	return trendline.DecodeDataset(res.Body, h.Fields)
}
