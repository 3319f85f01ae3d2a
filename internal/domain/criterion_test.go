package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCriterionLiteralDecoding(t *testing.T) {
	cases := []struct {
		name    string
		literal string
		op      Operator
		want    any
	}{
		{"bare word stays a string", "user", OpEqual, "user"},
		{"quoted string keeps quotes out", `"42"`, OpEqual, "42"},
		{"number", "42", OpEqual, float64(42)},
		{"boolean", "true", OpEqual, true},
		{"null", "null", OpEqual, nil},
		{"list for in", "[1,2,3]", OpIn, []any{float64(1), float64(2), float64(3)}},
		{"string list for in", `["a","b"]`, OpNotIn, []any{"a", "b"}},
		{"scalar for child_of", "7", OpChildOf, float64(7)},
		{"list for parent_of", "[7,8]", OpParentOf, []any{float64(7), float64(8)}},
		{"invalid json falls back to string", "[not json", OpEqual, "[not json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCriterion("f", string(tc.op), tc.literal)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Value)
		})
	}
}

func TestNewCriterionShapeViolations(t *testing.T) {
	cases := []struct {
		name    string
		op      string
		literal string
	}{
		{"scalar for in", "in", "notalist"},
		{"number for in", "in", "42"},
		{"scalar for not in", "not in", "admin"},
		{"list for equality", "=", "[1,2]"},
		{"list for like", "like", `["a"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCriterion("field", tc.op, tc.literal)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCriterion)

			var ice *InvalidCriterionError
			require.True(t, errors.As(err, &ice))
			assert.Equal(t, "field", ice.Field)
			assert.Equal(t, Operator(tc.op), ice.Operator)
			assert.NotEmpty(t, ice.Expected)
		})
	}
}

func TestNewCriterionUnknownOperator(t *testing.T) {
	_, err := NewCriterion("login", "equals", "user")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCriterion)
	assert.Contains(t, err.Error(), `"="`)
}

func TestNewCriterionDottedField(t *testing.T) {
	c, err := NewCriterion("partner_id.name", "ilike", "%smith%")
	require.NoError(t, err)
	assert.Equal(t, "partner_id.name", c.Field)
}

func TestOperatorsSortedAndComplete(t *testing.T) {
	ops := Operators()
	assert.Len(t, ops, 17)
	assert.Contains(t, ops, "=?")
	assert.Contains(t, ops, "child_of")
	assert.True(t, Operator("not ilike").Valid())
	assert.False(t, Operator("==").Valid())
}
