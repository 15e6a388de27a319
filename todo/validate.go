package todo

import (
	"encoding/json"
	"errors"
	"strings"
)

// Validate checks presence and non-emptiness of the create fields.
func (c Create) Validate() error {
	verr := &ValidationError{}
	if c.Title == "" {
		verr.add("title", "must not be empty")
	}
	// status is the index hash key, which DynamoDB rejects when empty.
	if c.Status != nil && *c.Status == "" {
		verr.add("status", "must not be empty")
	}
	return verr.err()
}

// Validate checks the fields that are present. An update with no fields is
// accepted; only updated_at is touched in that case.
func (u Update) Validate() error {
	verr := &ValidationError{}
	if u.Title != nil && *u.Title == "" {
		verr.add("title", "must not be empty")
	}
	if u.Status != nil && *u.Status == "" {
		verr.add("status", "must not be empty")
	}
	return verr.err()
}

// DecodeCreate parses and validates a create request body.
func DecodeCreate(body string) (Create, error) {
	var in Create
	if err := decode(body, &in); err != nil {
		return Create{}, err
	}
	if err := in.Validate(); err != nil {
		return Create{}, err
	}
	return in, nil
}

// DecodeUpdate parses and validates an update request body.
func DecodeUpdate(body string) (Update, error) {
	var in Update
	if err := decode(body, &in); err != nil {
		return Update{}, err
	}
	if err := in.Validate(); err != nil {
		return Update{}, err
	}
	return in, nil
}

// decode unmarshals body into dst, treating an empty body as "{}" and
// reporting malformed JSON or mistyped fields as validation errors.
func decode(body string, dst any) error {
	if strings.TrimSpace(body) == "" {
		body = "{}"
	}
	err := json.Unmarshal([]byte(body), dst)
	if err == nil {
		return nil
	}

	verr := &ValidationError{}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		verr.add(typeErr.Field, "must be a "+typeErr.Type.String())
	} else {
		verr.add("body", "invalid JSON")
	}
	return verr
}
