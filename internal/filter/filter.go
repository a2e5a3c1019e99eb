package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Knetic/govaluate"

	"adminui/internal/model"
)

// Criteria narrows the canonical list. Query is matched case-insensitively
// as a substring of the member name. Expr is an optional govaluate
// expression over id, name, email, role and checked.
type Criteria struct {
	Query string
	Expr  string
}

func (c Criteria) Empty() bool {
	return c.Query == "" && strings.TrimSpace(c.Expr) == ""
}

type Evaluator struct {
	c     Criteria
	query string
	expr  *govaluate.EvaluableExpression
}

var functions = map[string]govaluate.ExpressionFunction{
	"lower": func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, errors.New("lower takes one argument")
		}
		return strings.ToLower(fmt.Sprint(args[0])), nil
	},
	"contains": func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, errors.New("contains takes two arguments")
		}
		return strings.Contains(strings.ToLower(fmt.Sprint(args[0])), strings.ToLower(fmt.Sprint(args[1]))), nil
	},
}

func NewEvaluator(c Criteria) (*Evaluator, error) {
	e := &Evaluator{c: c, query: strings.ToLower(c.Query)}
	if strings.TrimSpace(c.Expr) != "" {
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(c.Expr, functions)
		if err != nil {
			return nil, fmt.Errorf("filter expression: %w", err)
		}
		e.expr = expr
	}
	return e, nil
}

func (e *Evaluator) Criteria() Criteria { return e.c }

func (e *Evaluator) Match(m model.Member) bool {
	if e == nil {
		return true
	}
	if e.query != "" && !strings.Contains(strings.ToLower(m.Name), e.query) {
		return false
	}
	if e.expr != nil {
		result, err := e.expr.Evaluate(m.Fields())
		if err != nil {
			return false
		}
		b, ok := result.(bool)
		if !ok || !b {
			return false
		}
	}
	return true
}

// Apply returns the matching members in their original order. The result
// shares no backing array with ms.
func (e *Evaluator) Apply(ms []model.Member) []model.Member {
	out := make([]model.Member, 0, len(ms))
	for _, m := range ms {
		if e.Match(m) {
			out = append(out, m)
		}
	}
	return out
}
