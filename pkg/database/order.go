package database

import (
	"github.com/shishobooks/stacks/pkg/sortmap"
	"github.com/uptrace/bun"
)

// ApplyOrder adds expanded sort terms to q in order. Columns come from a
// sortmap.Mapping, never from the request, and are quoted as identifiers.
func ApplyOrder(q *bun.SelectQuery, orders []sortmap.Order) *bun.SelectQuery {
	for _, o := range orders {
		if o.Descending {
			q = q.OrderExpr("? DESC", bun.Ident(o.Column))
		} else {
			q = q.OrderExpr("? ASC", bun.Ident(o.Column))
		}
	}
	return q
}
