package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ilcreatore32/clo/internal/domain"
	"github.com/ilcreatore32/clo/internal/odoo"
	"github.com/ilcreatore32/clo/internal/output"
)

const domainUsage = `
Domain criteria filter the search. Each -d/--domain takes three values:

  -d FIELD OPERATOR VALUE

and criteria combine with the prefix logic flags --or/-o, --and/-a and
--not/-n; successive domains imply --and. Run "clo explain domains" and
"clo explain logic" for details.`

// parseDomainArgs handles the search-family commands, whose domain flags
// are interleaved with regular flags and carry fixed arities pflag cannot
// express. The domain tokens are extracted first, in order; the remaining
// arguments then go through the normal flag parser.
func (a *App) parseDomainArgs(cmd *cobra.Command, args []string) (domain.Expr, bool, error) {
	tokens, rest, err := domain.ExtractTokens(args)
	if err != nil {
		return nil, false, err
	}

	cmd.DisableFlagParsing = false
	if err := cmd.ParseFlags(rest); err != nil {
		return nil, false, &UsageError{Err: err}
	}
	if help, _ := cmd.Flags().GetBool("help"); help {
		return nil, true, cmd.Help()
	}
	if positional := cmd.Flags().Args(); len(positional) > 0 {
		return nil, false, &UsageError{Err: unexpectedArgs(cmd, positional)}
	}

	expr, err := domain.Compile(tokens)
	if err != nil {
		return nil, false, err
	}
	return expr, false, nil
}

func (a *App) searchCommand() *cobra.Command {
	var (
		offset int
		limit  int
		order  string
		raw    bool
	)

	cmd := &cobra.Command{
		Use:                "search [[-o|-n|-a] -d FIELD OPERATOR VALUE [-d ...]] [flags]",
		Short:              "Search for record IDs based on the search domain",
		Long:               "Searches for record IDs based on the search domain." + domainUsage,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, done, err := a.parseDomainArgs(cmd, args)
			if done || err != nil {
				return err
			}
			if err := a.setup(cmd); err != nil {
				return err
			}

			wire := domain.ToRPC(expr)
			opts := &odoo.Options{Offset: offset, Limit: limit, Order: order}
			if a.dryRun {
				a.logger.Debug("dry run",
					zap.String("action", "search"),
					zap.String("model", a.model),
					zap.Any("domain", wire),
					zap.Any("options", opts.ToRPC()),
				)
				return nil
			}

			client, err := a.connect()
			if err != nil {
				return err
			}
			defer client.Close()

			ids, err := client.Search(cmd.Context(), odoo.Model(a.model), wire, opts)
			if err != nil {
				return err
			}
			if raw {
				return output.RawIDs(a.out, ids)
			}
			return output.JSON(a.out, ids)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Number of results to ignore.")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records to return.")
	cmd.Flags().StringVar(&order, "order", "", "The field to sort the records by.")
	cmd.Flags().BoolVarP(&raw, "raw", "r", false,
		"Format output as space-separated IDs rather than pretty JSON.")
	return cmd
}

func (a *App) countCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:                "count [[-o|-n|-a] -d FIELD OPERATOR VALUE [-d ...]] [flags]",
		Short:              "Return the number of records matching the provided domain",
		Long:               "Returns the number of records in the current model matching the provided domain." + domainUsage,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, done, err := a.parseDomainArgs(cmd, args)
			if done || err != nil {
				return err
			}
			if err := a.setup(cmd); err != nil {
				return err
			}

			wire := domain.ToRPC(expr)
			opts := &odoo.Options{Limit: limit}
			if a.dryRun {
				a.logger.Debug("dry run",
					zap.String("action", "count"),
					zap.String("model", a.model),
					zap.Any("domain", wire),
				)
				return nil
			}

			client, err := a.connect()
			if err != nil {
				return err
			}
			defer client.Close()

			count, err := client.Count(cmd.Context(), odoo.Model(a.model), wire, opts)
			if err != nil {
				return err
			}
			return output.JSON(a.out, count)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records to count.")
	return cmd
}

func (a *App) findCommand() *cobra.Command {
	var (
		fields []string
		offset int
		limit  int
		order  string
		asCSV  bool
	)

	cmd := &cobra.Command{
		Use:                "find [[-o|-n|-a] -d FIELD OPERATOR VALUE [-d ...]] [flags]",
		Short:              "Combine search and read into one execution",
		Long:               "A shortcut that combines `search` and `read` into one execution." + domainUsage,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, done, err := a.parseDomainArgs(cmd, args)
			if done || err != nil {
				return err
			}
			if err := a.setup(cmd); err != nil {
				return err
			}

			wire := domain.ToRPC(expr)
			opts := &odoo.Options{Offset: offset, Limit: limit, Order: order}
			if a.dryRun {
				a.logger.Debug("dry run",
					zap.String("action", "find"),
					zap.String("model", a.model),
					zap.Any("domain", wire),
					zap.Strings("fields", fields),
					zap.Any("options", opts.ToRPC()),
				)
				return nil
			}

			client, err := a.connect()
			if err != nil {
				return err
			}
			defer client.Close()

			records, err := client.Find(cmd.Context(), odoo.Model(a.model), wire, odoo.Fields(fields), opts)
			if err != nil {
				return err
			}
			if asCSV {
				return output.CSV(a.out, records)
			}
			return output.JSON(a.out, records)
		},
	}

	cmd.Flags().StringSliceVarP(&fields, "fields", "f", nil,
		"Field names to return (default is all fields).")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of results to ignore.")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records to return.")
	cmd.Flags().StringVar(&order, "order", "", "The field to sort the records by.")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Output records in CSV format.")
	return cmd
}
