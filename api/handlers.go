package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/todos/store"
	"github.com/jacentio/todos/todo"
)

// create handles POST /todos.
func (r *Router) create(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	in, err := todo.DecodeCreate(req.Body)
	if err != nil {
		return validationFailed(err)
	}

	tbl, err := r.store(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	item := todo.NewItem(r.newID(), in, r.now())
	if err := tbl.Put(ctx, item); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return jsonResponse(http.StatusCreated, item)
}

// list handles GET /todos. It reads one page bounded by the table's scan
// limit. With a status query parameter it reads the status index instead.
func (r *Router) list(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	tbl, err := r.store(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var items []todo.Item
	if status := req.QueryStringParameters["status"]; status != "" {
		items, err = tbl.QueryByStatus(ctx, status, 0)
	} else {
		items, err = tbl.Scan(ctx, 0)
	}
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if items == nil {
		items = []todo.Item{}
	}
	return jsonResponse(http.StatusOK, listBody{Items: items})
}

// get handles GET /todos/{id}.
func (r *Router) get(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := req.PathParameters["id"]
	if id == "" {
		return missingID(), nil
	}

	tbl, err := r.store(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	item, err := tbl.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundItem(), nil
	}
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return jsonResponse(http.StatusOK, item)
}

// update handles PUT /todos/{id}. An update with no fields still refreshes
// updated_at, and an unknown id is created rather than rejected.
// TODO: decide with product whether empty updates and unknown ids should be
// rejected (400 and 404) instead.
func (r *Router) update(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := req.PathParameters["id"]
	if id == "" {
		return missingID(), nil
	}

	in, err := todo.DecodeUpdate(req.Body)
	if err != nil {
		return validationFailed(err)
	}

	tbl, err := r.store(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if in.Empty() {
		r.logger.InfoContext(ctx, "update has no fields, refreshing updated_at only", "id", id)
	}
	attrs, err := tbl.Update(ctx, id, in, r.timestamp())
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return jsonResponse(http.StatusOK, attrs)
}

// delete handles DELETE /todos/{id}. Deleting an unknown id succeeds.
func (r *Router) delete(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := req.PathParameters["id"]
	if id == "" {
		return missingID(), nil
	}

	tbl, err := r.store(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := tbl.Delete(ctx, id); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return jsonResponse(http.StatusNoContent, struct{}{})
}
