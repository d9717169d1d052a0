// Package filter decodes the filters query parameter of list endpoints.
package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/entity-api/internal/models"
)

var (
	ErrMalformed       = errors.New("filters must be a JSON array of criteria")
	ErrMissingProperty = errors.New("filter criteria requires a PropertyName")
	ErrUnknownOperator = errors.New("unknown filter operator")
)

var operatorsByName = func() map[string]models.Operator {
	m := make(map[string]models.Operator, len(models.Operators))
	for _, op := range models.Operators {
		m[strings.ToLower(string(op))] = op
	}

	return m
}()

// Parse decodes raw into criteria. An empty string yields no criteria.
// Operators are matched case-insensitively; an empty operator means Equal.
func Parse(raw string) ([]models.FilterCriteria, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var criteria []models.FilterCriteria
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	for i := range criteria {
		c := &criteria[i]

		c.PropertyName = strings.TrimSpace(c.PropertyName)
		if c.PropertyName == "" {
			return nil, fmt.Errorf("%w (criteria #%d)", ErrMissingProperty, i)
		}

		op, err := ParseOperator(string(c.Operator))
		if err != nil {
			return nil, fmt.Errorf("criteria #%d: %w", i, err)
		}
		c.Operator = op
	}

	return criteria, nil
}

func ParseOperator(raw string) (models.Operator, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.OperatorEqual, nil
	}

	op, ok := operatorsByName[strings.ToLower(raw)]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownOperator, raw)
	}

	return op, nil
}
