package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/todos/todo"
)

// Headers carried by every response.
var responseHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "*",
	"Access-Control-Allow-Methods": "*",
}

type messageBody struct {
	Message string `json:"message"`
}

type internalErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type validationBody struct {
	Message string            `json:"message"`
	Errors  []todo.FieldError `json:"errors"`
}

type listBody struct {
	Items []todo.Item `json:"items"`
}

// headers returns a copy of the fixed response header set.
func headers() map[string]string {
	h := make(map[string]string, len(responseHeaders))
	for k, v := range responseHeaders {
		h[k] = v
	}
	return h
}

func jsonResponse(status int, body any) (events.APIGatewayProxyResponse, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers(),
		Body:       string(b),
	}, nil
}

// message builds a {"message": ...} response; the body always marshals.
func message(status int, msg string) events.APIGatewayProxyResponse {
	resp, _ := jsonResponse(status, messageBody{Message: msg})
	return resp
}

func notFoundRoute() events.APIGatewayProxyResponse {
	return message(http.StatusNotFound, "Not Found")
}

func notFoundItem() events.APIGatewayProxyResponse {
	return message(http.StatusNotFound, "Not found")
}

func missingID() events.APIGatewayProxyResponse {
	return message(http.StatusBadRequest, "Missing id")
}

func internalError(err error) events.APIGatewayProxyResponse {
	resp, _ := jsonResponse(http.StatusInternalServerError, internalErrorBody{
		Message: "Internal error",
		Error:   err.Error(),
	})
	return resp
}

// validationFailed renders a validation error as 400. Other errors are
// returned unchanged for the dispatcher.
func validationFailed(err error) (events.APIGatewayProxyResponse, error) {
	var verr *todo.ValidationError
	if !errors.As(err, &verr) {
		return events.APIGatewayProxyResponse{}, err
	}
	return jsonResponse(http.StatusBadRequest, validationBody{
		Message: "Validation failed",
		Errors:  verr.Fields,
	})
}
