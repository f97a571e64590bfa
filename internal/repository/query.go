package repository

import "strings"

type Operator string

const (
	OpEq     Operator = "eq"
	OpILike  Operator = "ilike"
	OpGte    Operator = "gte"
	OpLte    Operator = "lte"
	OpIn     Operator = "in"
	OpSearch Operator = "search"
)

// Predicate is one condition of a Query. OpIn reads Values, OpSearch matches
// Value as a case-insensitive substring of any of Columns, every other
// operator compares Column with Value.
type Predicate struct {
	Op      Operator
	Column  string
	Columns []string
	Value   string
	Values  []string
}

type Order struct {
	Column string
	Desc   bool
}

type Query struct {
	Predicates []Predicate
	Orders     []Order
	Limit      int
}

func (q Query) Where(p Predicate) Query {
	q.Predicates = append(append([]Predicate(nil), q.Predicates...), p)
	return q
}

func (q Query) OrderBy(column string, desc bool) Query {
	q.Orders = append(append([]Order(nil), q.Orders...), Order{Column: column, Desc: desc})
	return q
}

func Eq(column, value string) Predicate {
	return Predicate{Op: OpEq, Column: column, Value: value}
}

// ILike matches value exactly, ignoring case. LIKE wildcards in value are
// escaped.
func ILike(column, value string) Predicate {
	return Predicate{Op: OpILike, Column: column, Value: EscapeLike(value)}
}

func Gte(column, value string) Predicate {
	return Predicate{Op: OpGte, Column: column, Value: value}
}

func Lte(column, value string) Predicate {
	return Predicate{Op: OpLte, Column: column, Value: value}
}

func In(column string, values []string) Predicate {
	return Predicate{Op: OpIn, Column: column, Values: values}
}

func Search(term string, columns ...string) Predicate {
	return Predicate{Op: OpSearch, Columns: columns, Value: EscapeLike(term)}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
