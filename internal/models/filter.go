package models

import "math"

// Operator is the comparison applied by a single FilterCriteria.
type Operator string

const (
	OperatorEqual              Operator = "Equal"
	OperatorNotEqual           Operator = "NotEqual"
	OperatorGreaterThan        Operator = "GreaterThan"
	OperatorGreaterThanOrEqual Operator = "GreaterThanOrEqual"
	OperatorLessThan           Operator = "LessThan"
	OperatorLessThanOrEqual    Operator = "LessThanOrEqual"
	OperatorContains           Operator = "Contains"
	OperatorStartsWith         Operator = "StartsWith"
	OperatorEndsWith           Operator = "EndsWith"
	OperatorIn                 Operator = "In"
	OperatorIsNull             Operator = "IsNull"
	OperatorIsNotNull          Operator = "IsNotNull"
)

// Operators lists every supported operator in canonical spelling.
var Operators = []Operator{
	OperatorEqual,
	OperatorNotEqual,
	OperatorGreaterThan,
	OperatorGreaterThanOrEqual,
	OperatorLessThan,
	OperatorLessThanOrEqual,
	OperatorContains,
	OperatorStartsWith,
	OperatorEndsWith,
	OperatorIn,
	OperatorIsNull,
	OperatorIsNotNull,
}

// FilterCriteria is one predicate term; a list of them is combined with AND.
type FilterCriteria struct {
	PropertyName string   `json:"PropertyName"`
	Operator     Operator `json:"Operator"`
	Value        string   `json:"Value"`
}

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// ListQuery carries everything the list endpoint accepts.
type ListQuery struct {
	Filters    []FilterCriteria
	SearchTerm string
	PageNumber int
	PageSize   int
	SortField  string
	SortOrder  SortOrder
}

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// MaxPageNumber is the largest page number whose offset still fits in an int.
func MaxPageNumber(pageSize int) int {
	if pageSize < 1 {
		return math.MaxInt
	}

	return (math.MaxInt-1)/pageSize + 1
}

func (q *ListQuery) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}
