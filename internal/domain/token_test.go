package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTokensOrderAndRest(t *testing.T) {
	args := []string{
		"--limit", "5",
		"--or",
		"-d", "login", "=", "user",
		"--order", "name",
		"-d", "name", "=", "John Smith",
		"--offset", "2",
	}
	tokens, rest, err := ExtractTokens(args)
	require.NoError(t, err)

	require.Len(t, tokens, 3)
	assert.Equal(t, TokenLogic, tokens[0].Kind)
	assert.Equal(t, OpOr, tokens[0].Logic)
	assert.Equal(t, TokenCriterion, tokens[1].Kind)
	assert.Equal(t, "login", tokens[1].Criterion.Field)
	assert.Equal(t, "John Smith", tokens[2].Criterion.Value)

	assert.Equal(t, []string{"--limit", "5", "--order", "name", "--offset", "2"}, rest)
}

func TestExtractTokensShortFlags(t *testing.T) {
	tokens, rest, err := ExtractTokens([]string{"-o", "-d", "a", "=", "1", "-n", "-a"})
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Len(t, tokens, 4)
	assert.Equal(t, OpOr, tokens[0].Logic)
	assert.Equal(t, OpNot, tokens[2].Logic)
	assert.Equal(t, OpAnd, tokens[3].Logic)
}

func TestExtractTokensTruncatedDomain(t *testing.T) {
	_, _, err := ExtractTokens([]string{"-d", "login", "="})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedDomain)
}

func TestExtractTokensUnknownOperator(t *testing.T) {
	_, _, err := ExtractTokens([]string{"-d", "login", "~=", "user"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCriterion)
}

func TestExtractTokensStopsAtTerminator(t *testing.T) {
	tokens, rest, err := ExtractTokens([]string{"-d", "a", "=", "1", "--", "-d", "b", "=", "2"})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, []string{"--", "-d", "b", "=", "2"}, rest)
}

func TestExtractTokensNoDomainFlags(t *testing.T) {
	tokens, rest, err := ExtractTokens([]string{"--limit", "10"})
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.Equal(t, []string{"--limit", "10"}, rest)
}
