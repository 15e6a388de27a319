package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/todos/api"
	"github.com/jacentio/todos/store"
	"github.com/jacentio/todos/store/storetest"
)

const testTable = "todos"

// clock is a manually advanced time source.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	router *api.Router
	client *storetest.Client
	clock  *clock
	logs   *bytes.Buffer
}

func newFixture(t *testing.T, opts ...api.Option) *fixture {
	t.Helper()
	client := storetest.NewClient()
	tbl := store.New(client, store.Config{TableName: testTable})
	clk := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	logs := &bytes.Buffer{}

	opts = append([]api.Option{
		api.WithClock(clk.Now),
		api.WithLogger(slog.New(slog.NewJSONHandler(logs, nil))),
	}, opts...)

	router := api.NewRouter(func(context.Context) (api.Store, error) {
		return tbl, nil
	}, opts...)

	return &fixture{router: router, client: client, clock: clk, logs: logs}
}

func (f *fixture) do(t *testing.T, method, resource string, id *string, body string) events.APIGatewayProxyResponse {
	t.Helper()
	req := events.APIGatewayProxyRequest{
		Resource:   resource,
		Path:       resource,
		HTTPMethod: method,
		Body:       body,
	}
	if id != nil {
		req.PathParameters = map[string]string{"id": *id}
		req.Path = "/todos/" + *id
	}
	resp, err := f.router.Handle(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func (f *fixture) create(t *testing.T, body string) map[string]any {
	t.Helper()
	resp := f.do(t, "POST", api.RouteTodos, nil, body)
	require.Equal(t, 201, resp.StatusCode, resp.Body)
	return decode(t, resp)
}

func decode(t *testing.T, resp events.APIGatewayProxyResponse) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out), resp.Body)
	return out
}

func ptr(s string) *string { return &s }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func listRequest(query map[string]string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		Resource:              api.RouteTodos,
		Path:                  api.RouteTodos,
		HTTPMethod:            "GET",
		QueryStringParameters: query,
	}
}
