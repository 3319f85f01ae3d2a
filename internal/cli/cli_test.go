package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilcreatore32/clo/internal/domain"
	"github.com/ilcreatore32/clo/internal/odoo"
)

func testApp() (*App, *bytes.Buffer) {
	app := New()
	var stderr bytes.Buffer
	app.stderr = &stderr
	return app, &stderr
}

func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	app, stderr := testApp()
	code := app.Execute(context.Background(), args)
	return code, stderr.String()
}

func TestDryRunSearchSucceedsOffline(t *testing.T) {
	code, _ := run(t,
		"search", "--dry-run", "--log", "OFF",
		"--or",
		"-d", "login", "=", "user",
		"-d", "name", "=", "John Smith",
	)
	assert.Equal(t, ExitOK, code)
}

func TestDryRunInterleavedFlags(t *testing.T) {
	code, _ := run(t,
		"search", "--dry-run", "--log", "OFF",
		"-d", "login", "=", "user",
		"--limit", "5",
		"-d", "active", "=", "true",
		"--order", "name",
	)
	assert.Equal(t, ExitOK, code)
}

func TestArityViolationExitsOne(t *testing.T) {
	code, stderr := run(t,
		"search", "--dry-run", "--log", "OFF",
		"--and",
		"-d", "login", "=", "user",
	)
	assert.Equal(t, ExitDomain, code)
	assert.Contains(t, stderr, "AND")
}

func TestShapeViolationExitsOne(t *testing.T) {
	code, stderr := run(t,
		"search", "--dry-run", "--log", "OFF",
		"-d", "login", "in", "notalist",
	)
	assert.Equal(t, ExitDomain, code)
	assert.Contains(t, stderr, "list")
}

func TestUnknownFlagExitsTwo(t *testing.T) {
	code, _ := run(t, "search", "--dry-run", "--bogus")
	assert.Equal(t, ExitUsage, code)
}

func TestCobraUsageFailuresExitTwo(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"bogus"}},
		{"unknown flag", []string{"read", "--bogus"}},
		{"missing required flag", []string{"read"}},
		{"missing topic", []string{"explain"}},
		{"bad flag value", []string{"find", "--limit", "many"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := run(t, tc.args...)
			assert.Equal(t, ExitUsage, code)
		})
	}
}

func TestDryRunCountAndFind(t *testing.T) {
	for _, action := range []string{"count", "find"} {
		code, _ := run(t,
			action, "--dry-run", "--log", "OFF",
			"-d", "active", "=", "true",
		)
		assert.Equal(t, ExitOK, code, action)
	}
}

func TestDryRunWriteParsesIDsAndValues(t *testing.T) {
	code, _ := run(t,
		"write", "--dry-run", "--log", "OFF",
		"--ids", "2,5,7",
		"--value", "name=Renamed",
		"--value", "active=false",
	)
	assert.Equal(t, ExitOK, code)
}

func TestParseIDs(t *testing.T) {
	app, _ := testApp()

	ids, err := app.parseIDs([]string{"2", "5", "7"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5, 7}, ids)

	_, err = app.parseIDs([]string{"two"})
	require.Error(t, err)
	assert.Equal(t, ExitUsage, exitCodeFor(err))

	_, err = app.parseIDs(nil)
	require.Error(t, err)
}

func TestParseIDsFromStdin(t *testing.T) {
	app, _ := testApp()
	app.stdin = strings.NewReader("2 5  7\n9\n")

	ids, err := app.parseIDs([]string{"-"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5, 7, 9}, ids)
}

func TestParseIDsFromStdinRejectsGarbage(t *testing.T) {
	app, _ := testApp()
	app.stdin = strings.NewReader("2 five")

	_, err := app.parseIDs([]string{"-"})
	require.Error(t, err)
}

func TestParseValues(t *testing.T) {
	data, err := parseValues([]string{
		"name=John Smith",
		"age=42",
		"active=true",
		"tag_ids=[1,2]",
		`note="42"`,
	})
	require.NoError(t, err)
	assert.Equal(t, odoo.Data{
		"name":    "John Smith",
		"age":     float64(42),
		"active":  true,
		"tag_ids": []any{float64(1), float64(2)},
		"note":    "42",
	}, data)

	_, err = parseValues([]string{"missingdelimiter"})
	require.Error(t, err)

	_, err = parseValues(nil)
	require.Error(t, err)
}

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"malformed domain", &domain.MalformedDomainError{Op: domain.OpAnd, Got: 1}, ExitDomain},
		{"invalid criterion", &domain.InvalidCriterionError{Field: "f", Operator: "in", Expected: "a list value"}, ExitDomain},
		{"usage", &UsageError{Err: errors.New("bad flag")}, ExitUsage},
		{"auth", odoo.ErrAuthenticationFailed, ExitAuth},
		{"invalid model", odoo.ErrInvalidModel, ExitFault},
		{"access denied", odoo.ErrAccessDenied, ExitFault},
		{"server fault", &odoo.FaultError{Code: 1, Message: "boom"}, ExitFault},
		{"transport", &odoo.FaultError{Code: 0, Message: "connection refused"}, ExitProtocol},
		{"cancelled", context.Canceled, ExitAborted},
		{"other", errors.New("boom"), ExitOperation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, exitCodeFor(tc.err))
		})
	}
}

func TestExplainStaticTopics(t *testing.T) {
	for _, topic := range []string{"domains", "logic"} {
		app, _ := testApp()
		var out bytes.Buffer
		app.out = &out

		code := app.Execute(context.Background(), []string{"explain", topic, "--log", "OFF"})
		assert.Equal(t, ExitOK, code, topic)
		assert.NotEmpty(t, out.String(), topic)
	}
}

func TestExplainRejectsUnknownTopic(t *testing.T) {
	code, _ := run(t, "explain", "nonsense")
	assert.Equal(t, ExitUsage, code)
}

func TestDryRunExplainNetworkTopics(t *testing.T) {
	for _, topic := range []string{"models", "fields"} {
		code, _ := run(t, "explain", topic, "--dry-run", "--log", "OFF")
		assert.Equal(t, ExitOK, code, topic)
	}
}

func TestDemoFlagPrintsCredentialDeclarations(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", srv.URL+"/web/login?dbname=demo_db&user=admin&key=s3cret")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/web/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	})

	app, _ := testApp()
	app.demoURL = srv.URL
	var out bytes.Buffer
	app.out = &out

	code := app.Execute(context.Background(), []string{"--demo", "--log", "OFF"})
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out.String(), "OD_INSTANCE=\""+srv.URL+"\"")
	assert.Contains(t, out.String(), `OD_DATABASE="demo_db"`)
	assert.Contains(t, out.String(), `OD_USERNAME="admin"`)
	assert.Contains(t, out.String(), `OD_PASSWORD="s3cret"`)
}
