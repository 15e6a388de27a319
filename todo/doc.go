// Package todo defines the todo item shapes exchanged with clients and stored
// in the table, together with input validation.
//
// # Shapes
//
//   - [Item] is the persisted record, keyed by ID.
//   - [Create] is the create request. Title is required; Status defaults to
//     [StatusPending].
//   - [Update] is the partial update request. A nil field means "leave
//     unchanged"; a JSON null is treated the same as an absent field.
//
// # Validation
//
// [DecodeCreate] and [DecodeUpdate] parse a raw JSON body (an empty body is
// treated as "{}") and validate it before any store call is made. Failures
// are returned as [*ValidationError], which unwraps to [ErrValidation]:
//
//	in, err := todo.DecodeCreate(body)
//	var verr *todo.ValidationError
//	if errors.As(err, &verr) {
//	    // verr.Fields lists each offending field
//	}
package todo
