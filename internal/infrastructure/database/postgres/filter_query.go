package postgres

import (
	"customer-service/internal/domain/customer"
	"fmt"
	"strings"
)

// buildFilterQuery renders the filter as a WHERE clause with positional
// arguments. An empty filter yields an empty clause.
func buildFilterQuery(f customer.Filter) (string, []any) {
	conds := f.Conditions()
	if len(conds) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	for i, c := range conds {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", c.Column, i+1))
		args = append(args, c.Value)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
