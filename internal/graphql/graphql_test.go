package graphql

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	http "github.com/bogdanfinn/fhttp"
)

type fakeDoer struct {
	lastReq  *http.Request
	lastBody []byte
	status   int
	body     string
	err      error
}

func (d *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	d.lastReq = req
	if req.Body != nil {
		d.lastBody, _ = io.ReadAll(req.Body)
	}
	if d.err != nil {
		return nil, d.err
	}
	return &http.Response{
		StatusCode: d.status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(d.body)),
	}, nil
}

func TestQueryDecodesData(t *testing.T) {
	doer := &fakeDoer{status: 200, body: `{"data":{"search":{"hits":2}}}`}
	c := New(doer, "https://api.example.com/graphql")

	var out struct {
		Search struct {
			Hits int `json:"hits"`
		} `json:"search"`
	}
	headers := map[string]string{"Authorization": "Bearer tok"}
	if err := c.Query(context.Background(), "query Q { search { hits } }", map[string]any{"input": "x"}, headers, &out); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if out.Search.Hits != 2 {
		t.Fatalf("got %d hits, want 2", out.Search.Hits)
	}
	if got := doer.lastReq.Header.Get("Authorization"); got != "Bearer tok" {
		t.Fatalf("authorization header %q", got)
	}

	var sent struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.Unmarshal(doer.lastBody, &sent); err != nil {
		t.Fatalf("unmarshal sent body: %v", err)
	}
	if sent.Query == "" || sent.Variables["input"] != "x" {
		t.Fatalf("unexpected request body %s", doer.lastBody)
	}
}

func TestQuerySurfacesGraphQLErrors(t *testing.T) {
	doer := &fakeDoer{status: 200, body: `{"data":null,"errors":[{"message":"not authorized"}]}`}
	c := New(doer, "https://api.example.com/graphql")

	err := c.Query(context.Background(), "query Q { me }", nil, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "not authorized") {
		t.Fatalf("got %v, want graphql error mentioning not authorized", err)
	}
}

func TestQueryBadStatus(t *testing.T) {
	doer := &fakeDoer{status: 500, body: `boom`}
	c := New(doer, "https://api.example.com/graphql")

	err := c.Query(context.Background(), "query Q { me }", nil, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Fatalf("got %v, want status error", err)
	}
}
