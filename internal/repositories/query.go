package repository

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/entity-api/internal/models"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// likeEscaper keeps user input from acting as LIKE wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// lookupField resolves a property by Go field name, column name or JSON name, ignoring case.
func (r *entityRepository[T, K]) lookupField(name string) (*schema.Field, bool) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	for _, field := range r.schema.Fields {
		if field.DBName == "" {
			continue
		}

		jsonName, _, _ := strings.Cut(field.Tag.Get("json"), ",")

		if strings.EqualFold(field.Name, name) ||
			strings.EqualFold(field.DBName, name) ||
			(jsonName != "" && jsonName != "-" && strings.EqualFold(jsonName, name)) {
			return field, true
		}
	}

	return nil, false
}

func (r *entityRepository[T, K]) conditions(query *models.ListQuery) ([]clause.Expression, error) {

	var exprs []clause.Expression

	for _, criteria := range query.Filters {
		expr, err := r.criteriaExpression(criteria)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	if term := strings.TrimSpace(query.SearchTerm); term != "" {
		if expr := r.searchExpression(term); expr != nil {
			exprs = append(exprs, expr)
		}
	}

	return exprs, nil
}

func (r *entityRepository[T, K]) criteriaExpression(criteria models.FilterCriteria) (clause.Expression, error) {

	field, ok := r.lookupField(criteria.PropertyName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown property %q", ErrInvalidQuery, criteria.PropertyName)
	}

	column := clause.Column{Table: clause.CurrentTable, Name: field.DBName}

	switch criteria.Operator {
	case models.OperatorIsNull:
		return clause.Eq{Column: column, Value: nil}, nil
	case models.OperatorIsNotNull:
		return clause.Neq{Column: column, Value: nil}, nil
	case models.OperatorIn:
		var values []any
		for _, raw := range strings.Split(criteria.Value, ",") {
			value, err := convertValue(field, strings.TrimSpace(raw))
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return clause.IN{Column: column, Values: values}, nil
	case models.OperatorContains, models.OperatorStartsWith, models.OperatorEndsWith:
		if !isText(field) {
			return nil, fmt.Errorf("%w: %s only applies to text properties, %q is not one", ErrInvalidQuery, criteria.Operator, criteria.PropertyName)
		}
		pattern := likeEscaper.Replace(strings.ToLower(criteria.Value))
		switch criteria.Operator {
		case models.OperatorContains:
			pattern = "%" + pattern + "%"
		case models.OperatorStartsWith:
			pattern = pattern + "%"
		default:
			pattern = "%" + pattern
		}
		return likeLower(column, pattern), nil
	}

	value, err := convertValue(field, criteria.Value)
	if err != nil {
		return nil, err
	}

	switch criteria.Operator {
	case models.OperatorEqual, "":
		return clause.Eq{Column: column, Value: value}, nil
	case models.OperatorNotEqual:
		return clause.Neq{Column: column, Value: value}, nil
	case models.OperatorGreaterThan:
		return clause.Gt{Column: column, Value: value}, nil
	case models.OperatorGreaterThanOrEqual:
		return clause.Gte{Column: column, Value: value}, nil
	case models.OperatorLessThan:
		return clause.Lt{Column: column, Value: value}, nil
	case models.OperatorLessThanOrEqual:
		return clause.Lte{Column: column, Value: value}, nil
	}

	return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidQuery, criteria.Operator)
}

// searchExpression ORs a case-insensitive substring match over the searchable columns.
// Without any `search:"true"` tag every text column except the key is searched.
func (r *entityRepository[T, K]) searchExpression(term string) clause.Expression {

	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"

	var tagged, text []clause.Expression
	for _, field := range r.schema.Fields {
		if field.DBName == "" || field.PrimaryKey {
			continue
		}

		column := clause.Column{Table: clause.CurrentTable, Name: field.DBName}

		if field.Tag.Get("search") == "true" {
			tagged = append(tagged, likeLower(column, pattern))
		} else if isText(field) {
			text = append(text, likeLower(column, pattern))
		}
	}

	if len(tagged) == 0 {
		tagged = text
	}

	if len(tagged) == 0 {
		return nil
	}

	return clause.Or(tagged...)
}

func (r *entityRepository[T, K]) orderBy(query *models.ListQuery) (clause.OrderBy, error) {

	pk := clause.Column{Table: clause.CurrentTable, Name: r.schema.PrioritizedPrimaryField.DBName}
	desc := query.SortOrder == models.SortOrderDesc

	if strings.TrimSpace(query.SortField) == "" {
		return clause.OrderBy{Columns: []clause.OrderByColumn{{Column: pk, Desc: desc}}}, nil
	}

	field, ok := r.lookupField(query.SortField)
	if !ok {
		return clause.OrderBy{}, fmt.Errorf("%w: unknown sort field %q", ErrInvalidQuery, query.SortField)
	}

	columns := []clause.OrderByColumn{{Column: clause.Column{Table: clause.CurrentTable, Name: field.DBName}, Desc: desc}}
	if !field.PrimaryKey {
		// stable paging across equal sort values
		columns = append(columns, clause.OrderByColumn{Column: pk})
	}

	return clause.OrderBy{Columns: columns}, nil
}

func likeLower(column clause.Column, pattern string) clause.Expression {
	return clause.Expr{SQL: `LOWER(?) LIKE ? ESCAPE '\'`, Vars: []any{column, pattern}}
}

func isText(field *schema.Field) bool {
	t := field.FieldType
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.String
}

// convertValue turns a filter value into the Go type of the column it is compared with.
func convertValue(field *schema.Field, raw string) (any, error) {

	var (
		value any
		err   error
	)

	switch field.DataType {
	case schema.Bool:
		value, err = strconv.ParseBool(raw)
	case schema.Int:
		value, err = strconv.ParseInt(raw, 10, 64)
	case schema.Uint:
		value, err = strconv.ParseUint(raw, 10, 64)
	case schema.Float:
		value, err = strconv.ParseFloat(raw, 64)
	case schema.Time:
		value, err = time.Parse(time.RFC3339, raw)
	default:
		value = raw
	}

	if err != nil {
		return nil, fmt.Errorf("%w: value %q does not fit property %s", ErrInvalidQuery, raw, field.Name)
	}

	return value, nil
}
