package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ilcreatore32/clo/internal/odoo"
)

func unexpectedArgs(cmd *cobra.Command, args []string) error {
	return fmt.Errorf("unexpected argument(s) %q for %q", args, cmd.Name())
}

// parseIDs turns the --ids flag values into record IDs. A single "-" reads
// a whitespace-separated list from stdin, so one invocation's --raw search
// output pipes into the next.
func (a *App) parseIDs(raw []string) ([]int64, error) {
	if len(raw) == 1 && raw[0] == "-" {
		return a.readStdinIDs()
	}

	ids := make([]int64, 0, len(raw))
	for _, item := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(item), 10, 64)
		if err != nil {
			return nil, &UsageError{Err: fmt.Errorf("%q is not a valid record ID", item)}
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, &UsageError{Err: fmt.Errorf("at least one record ID is required")}
	}
	return ids, nil
}

func (a *App) readStdinIDs() ([]int64, error) {
	scanner := bufio.NewScanner(a.stdin)
	scanner.Split(bufio.ScanWords)

	var ids []int64
	for scanner.Scan() {
		id, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			return nil, &UsageError{Err: fmt.Errorf("%q from STDIN is not a valid record ID", scanner.Text())}
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading IDs from STDIN: %w", err)
	}
	if len(ids) == 0 {
		return nil, &UsageError{Err: fmt.Errorf("no record IDs received on STDIN")}
	}
	return ids, nil
}

// parseValues turns repeated --value FIELD=VALUE pairs into the assignment
// map for create and write. Values decode as JSON when possible, so
// numbers, booleans and lists keep their types; anything else is a string.
func parseValues(pairs []string) (odoo.Data, error) {
	if len(pairs) == 0 {
		return nil, &UsageError{Err: fmt.Errorf("at least one --value FIELD=VALUE pair is required")}
	}

	data := make(odoo.Data, len(pairs))
	for _, pair := range pairs {
		field, literal, found := strings.Cut(pair, "=")
		if !found || field == "" {
			return nil, &UsageError{Err: fmt.Errorf("%q is not a FIELD=VALUE pair", pair)}
		}
		var v any
		if err := json.Unmarshal([]byte(literal), &v); err != nil {
			v = literal
		}
		data[field] = v
	}
	return data, nil
}
