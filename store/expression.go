package store

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/todos/todo"
)

// Attribute names written by the service.
const (
	attrID          = "id"
	attrTitle       = "title"
	attrDescription = "description"
	attrStatus      = "status"
	attrUpdatedAt   = "updated_at"
)

// updateExpr is a SET expression with its placeholder maps.
type updateExpr struct {
	Expression string
	Names      map[string]string
	Values     map[string]types.AttributeValue
}

// buildUpdate builds a SET expression touching only the fields present in u,
// plus updated_at which is always refreshed. Names are always aliased since
// "status" is a reserved word.
func buildUpdate(u todo.Update, updatedAt string) updateExpr {
	expr := updateExpr{
		Names:  map[string]string{},
		Values: map[string]types.AttributeValue{},
	}

	var setClauses []string
	set := func(attr, value string) {
		nameKey := "#" + attr
		valueKey := ":" + attr
		expr.Names[nameKey] = attr
		expr.Values[valueKey] = &types.AttributeValueMemberS{Value: value}
		setClauses = append(setClauses, nameKey+" = "+valueKey)
	}

	if u.Title != nil {
		set(attrTitle, *u.Title)
	}
	if u.Description != nil {
		set(attrDescription, *u.Description)
	}
	if u.Status != nil {
		set(attrStatus, *u.Status)
	}
	set(attrUpdatedAt, updatedAt)

	expr.Expression = "SET " + strings.Join(setClauses, ", ")
	return expr
}

// statusKeyCondition returns the key condition for querying the status index.
func statusKeyCondition(status string) (string, map[string]string, map[string]types.AttributeValue) {
	return "#status = :status",
		map[string]string{"#status": attrStatus},
		map[string]types.AttributeValue{":status": &types.AttributeValueMemberS{Value: status}}
}

// itemKey returns the primary key for an item id.
func itemKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrID: &types.AttributeValueMemberS{Value: id},
	}
}
