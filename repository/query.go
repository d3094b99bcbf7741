package repository

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Op is a comparison operator accepted by Criteria
type Op string

const (
	OpEq     Op = "="
	OpNe     Op = "<>"
	OpGt     Op = ">"
	OpGte    Op = ">="
	OpLt     Op = "<"
	OpLte    Op = "<="
	OpLike   Op = "LIKE"
	OpIn     Op = "IN"
	OpIsNull Op = "IS NULL"
)

var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)?$`)

// Predicate is one (column, operator, value) triple
type Predicate struct {
	Column string
	Op     Op
	Value  interface{}
}

// Criteria is a small composable WHERE builder. Predicates are ANDed in the
// order they were added; the optional free-text term becomes one OR group of
// LIKE predicates over the given columns. Values are always bound as parameters.
type Criteria struct {
	predicates  []Predicate
	text        string
	textColumns []string
}

// NewCriteria returns an empty criteria
func NewCriteria() *Criteria {
	return &Criteria{}
}

// Where adds a predicate. Nil values (including nil pointers) are skipped so
// optional filters can be passed straight through. Times are bound in UTC,
// the zone every timestamp column is stored in.
func (c *Criteria) Where(column string, op Op, value interface{}) *Criteria {
	if op != OpIsNull {
		v, ok := deref(value)
		if !ok {
			return c
		}
		if t, isTime := v.(time.Time); isTime {
			v = t.UTC()
		}
		value = v
	}
	c.predicates = append(c.predicates, Predicate{Column: column, Op: op, Value: value})
	return c
}

// Eq is shorthand for Where(column, OpEq, value)
func (c *Criteria) Eq(column string, value interface{}) *Criteria {
	return c.Where(column, OpEq, value)
}

// Text sets the free-text term matched case-insensitively against columns
func (c *Criteria) Text(text string, columns ...string) *Criteria {
	c.text = strings.TrimSpace(text)
	c.textColumns = columns
	return c
}

// Empty reports whether the criteria would not restrict the query at all
func (c *Criteria) Empty() bool {
	return c == nil || (len(c.predicates) == 0 && (c.text == "" || len(c.textColumns) == 0))
}

// Build lowers the criteria to a parameterized clause and its arguments in
// append order. An empty criteria yields an empty clause.
func (c *Criteria) Build() (string, []interface{}, error) {
	if c.Empty() {
		return "", nil, nil
	}

	var parts []string
	var args []interface{}

	for _, p := range c.predicates {
		if !columnPattern.MatchString(p.Column) {
			return "", nil, fmt.Errorf("invalid column %q", p.Column)
		}
		switch p.Op {
		case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpLike:
			parts = append(parts, fmt.Sprintf("%s %s ?", p.Column, p.Op))
			args = append(args, p.Value)
		case OpIn:
			parts = append(parts, fmt.Sprintf("%s IN ?", p.Column))
			args = append(args, p.Value)
		case OpIsNull:
			parts = append(parts, fmt.Sprintf("%s IS NULL", p.Column))
		default:
			return "", nil, fmt.Errorf("unsupported operator %q", p.Op)
		}
	}

	if c.text != "" && len(c.textColumns) > 0 {
		pattern := "%" + escapeLike(strings.ToLower(c.text)) + "%"
		ors := make([]string, 0, len(c.textColumns))
		for _, col := range c.textColumns {
			if !columnPattern.MatchString(col) {
				return "", nil, fmt.Errorf("invalid column %q", col)
			}
			ors = append(ors, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col))
			args = append(args, pattern)
		}
		parts = append(parts, "("+strings.Join(ors, " OR ")+")")
	}

	return strings.Join(parts, " AND "), args, nil
}

// Apply adds the built clause to a gorm query
func (c *Criteria) Apply(q *gorm.DB) (*gorm.DB, error) {
	clause, args, err := c.Build()
	if err != nil {
		return nil, err
	}
	if clause == "" {
		return q, nil
	}
	return q.Where(clause, args...), nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// deref unwraps pointers; ok is false for nil values
func deref(value interface{}) (interface{}, bool) {
	if value == nil {
		return nil, false
	}
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	return v.Interface(), true
}
