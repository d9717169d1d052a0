package filter_test

import (
	"testing"

	"github.com/aaravmahajanofficial/entity-api/internal/filter"
	"github.com/aaravmahajanofficial/entity-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Empty input", func(t *testing.T) {
		criteria, err := filter.Parse("   ")
		require.NoError(t, err)
		assert.Nil(t, criteria)
	})

	t.Run("Well formed criteria keep their order", func(t *testing.T) {
		raw := `[{"PropertyName":"Name","Operator":"Equal","Value":"nightly"},{"PropertyName":"Priority","Operator":"GreaterThan","Value":"5"}]`

		criteria, err := filter.Parse(raw)

		require.NoError(t, err)
		assert.Equal(t, []models.FilterCriteria{
			{PropertyName: "Name", Operator: models.OperatorEqual, Value: "nightly"},
			{PropertyName: "Priority", Operator: models.OperatorGreaterThan, Value: "5"},
		}, criteria)
	})

	t.Run("Operator matched case-insensitively", func(t *testing.T) {
		criteria, err := filter.Parse(`[{"PropertyName":"name","Operator":"startswith","Value":"n"}]`)

		require.NoError(t, err)
		assert.Equal(t, models.OperatorStartsWith, criteria[0].Operator)
	})

	t.Run("Missing operator defaults to Equal", func(t *testing.T) {
		criteria, err := filter.Parse(`[{"PropertyName":"name","Value":"n"}]`)

		require.NoError(t, err)
		assert.Equal(t, models.OperatorEqual, criteria[0].Operator)
	})

	t.Run("Empty array", func(t *testing.T) {
		criteria, err := filter.Parse(`[]`)

		require.NoError(t, err)
		assert.Empty(t, criteria)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := filter.Parse(`[{"PropertyName":`)
		assert.ErrorIs(t, err, filter.ErrMalformed)
	})

	t.Run("Object instead of array", func(t *testing.T) {
		_, err := filter.Parse(`{"PropertyName":"name"}`)
		assert.ErrorIs(t, err, filter.ErrMalformed)
	})

	t.Run("Missing property name", func(t *testing.T) {
		_, err := filter.Parse(`[{"Operator":"Equal","Value":"x"}]`)
		assert.ErrorIs(t, err, filter.ErrMissingProperty)
	})

	t.Run("Unknown operator", func(t *testing.T) {
		_, err := filter.Parse(`[{"PropertyName":"name","Operator":"Like","Value":"x"}]`)
		assert.ErrorIs(t, err, filter.ErrUnknownOperator)
	})
}
