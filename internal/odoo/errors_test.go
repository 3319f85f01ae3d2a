package odoo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRPCErrorNil(t *testing.T) {
	assert.NoError(t, parseRPCError(nil))
}

func TestParseRPCErrorFaultParsing(t *testing.T) {
	err := parseRPCError(errors.New("XML-RPC fault: <Fault 2: 'Access denied'>"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestParseRPCErrorClassification(t *testing.T) {
	cases := []struct {
		name     string
		message  string
		sentinel error
	}{
		{"missing model", "XML-RPC fault: <Fault 1: 'The model does not exist'>", ErrInvalidModel},
		{"unregistered model", "Model 'foo.bar' not found in registry", ErrInvalidModel},
		{"missing method", "XML-RPC fault: <Fault 1: 'Object has no method frobnicate'>", ErrInvalidMethod},
		{"missing attribute", "'res.users' object has no attribute 'frobnicate'", ErrInvalidMethod},
		{"access error", "XML-RPC fault: <Fault 3: 'AccessError: operation not allowed'>", ErrAccessDenied},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := parseRPCError(errors.New(tc.message))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)
		})
	}
}

func TestParseRPCErrorFallbackFault(t *testing.T) {
	err := parseRPCError(errors.New("XML-RPC fault: <Fault 100: 'something odd happened'>"))
	require.Error(t, err)

	var fault *FaultError
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, 100, fault.Code)
	assert.Equal(t, "something odd happened", fault.Message)
	assert.NotNil(t, fault.Unwrap())
}

func TestParseRPCErrorPlainError(t *testing.T) {
	err := parseRPCError(errors.New("connection refused"))
	require.Error(t, err)

	var fault *FaultError
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, 0, fault.Code)
	assert.Equal(t, "connection refused", fault.Message)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com", "db", "user", "pass")
	require.Error(t, err)

	_, err = New("http://localhost:8069", "db", "user", "pass")
	require.NoError(t, err)
}

func TestOptionsToRPC(t *testing.T) {
	var nilOpts *Options
	assert.Empty(t, nilOpts.ToRPC())

	opts := &Options{
		Limit:   5,
		Offset:  2,
		Order:   "name asc",
		Context: Context{"lang": "en_US"},
		Extra:   map[string]interface{}{"count": true},
	}
	kwargs := opts.ToRPC()
	assert.Equal(t, 5, kwargs["limit"])
	assert.Equal(t, 2, kwargs["offset"])
	assert.Equal(t, "name asc", kwargs["order"])
	assert.Equal(t, Context{"lang": "en_US"}, kwargs["context"])
	assert.Equal(t, true, kwargs["count"])

	empty := &Options{}
	assert.Empty(t, empty.ToRPC(), "zero limit/offset must not be sent")
}
