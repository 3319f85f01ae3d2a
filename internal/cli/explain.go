package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ilcreatore32/clo/internal/domain"
	"github.com/ilcreatore32/clo/internal/odoo"
)

const explainDomains = `DOMAINS

A domain is a set of criteria, each criterion being a throuple of
(FIELD, OPERATOR, VALUE) where:

FIELD     A field name of the current model, or a relationship traversal
          through a Many2one using dot-notation.

OPERATOR  An operator used to compare the FIELD with the value. Valid
          operators are:

            =, !=, >, >=, <, <=   Standard comparison operators.
            =?                    Unset or equals to (returns true if value
                                  is either None or False, otherwise behaves
                                  like "=").
            =[i]like              Matches FIELD against the value pattern. An
                                  underscore ("_") in the pattern matches any
                                  single character; a percent sign ("%")
                                  matches any string of zero or more
                                  characters. "=ilike" is case-insensitive.
            [not ][i]like         Matches (or inverse-matches) FIELD against
                                  the %value% pattern.
            [not ]in              Is - or is not - equal to any of the items
                                  from value; value should be a list, e.g.
                                  [1,2,3].
            child_of              Is a child (descendant) of a value record.
                                  Value can be one item or a list of items.
            parent_of             Is a parent (ascendant) of a value record.
                                  Value can be one item or a list of items.

VALUE     Variable type, must be comparable (through OPERATOR) to the named
          FIELD. Values are read as JSON when possible, plain strings
          otherwise.`

const explainLogic = `LOGIC

Domain criteria can be combined using logical operators in prefix form:

  clo search --or -d login = user -d name = "John Smith" -d email = u@d.com
    is equivalent to: login == "user" || name == "John Smith" || email == "u@d.com"

  clo search --not -d login = user
  clo search -d login '!=' user
    are equivalent to: login != "user". "--not" is generally unneeded, save
    for negating the OPERATOR, "child_of", or "parent_of".

  clo search --and -d login = user -d name = "John Smith"
    is equivalent to: login == "user" && name == "John Smith"; though,
    successive domains imply "--and".

AND and OR consume the two sub-expressions that follow them; NOT consumes
one. An operator still missing sub-expressions when the command line ends is
an error.`

func (a *App) explainCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:       "explain TOPIC",
		Short:     "Display documentation on a specified topic",
		ValidArgs: []string{"models", "domains", "logic", "fields"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}

			switch args[0] {
			case "domains":
				fmt.Fprintf(a.out, "%s\n", explainDomains)
				fmt.Fprintln(a.out)
				fmt.Fprintln(a.out, "Valid operators: "+domain.OperatorList())
				return nil
			case "logic":
				fmt.Fprintln(a.out, explainLogic)
				return nil
			case "models":
				return a.explainModels(cmd, verbose)
			case "fields":
				return a.explainFields(cmd)
			}
			return &UsageError{Err: fmt.Errorf("unknown topic %q", args[0])}
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "Display more details.")
	return cmd
}

// explainModels lists the queryable models of the instance from ir.model.
func (a *App) explainModels(cmd *cobra.Command, verbose bool) error {
	if a.dryRun {
		a.logger.Debug("dry run",
			zap.String("action", "explain"),
			zap.String("topic", "models"),
			zap.Bool("verbose", verbose),
		)
		return nil
	}

	client, err := a.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	fields := odoo.Fields{"model", "display_name"}
	if verbose {
		fields = append(fields, "info")
	}
	records, err := client.Find(cmd.Context(), odoo.ModelIrModel, odoo.Domain{}, fields, &odoo.Options{Order: "model asc"})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "MODELS")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "The following models are available to query:")
	fmt.Fprintln(a.out)

	pad := 0
	for _, rec := range records {
		if name, ok := rec["model"].(string); ok && len(name) > pad {
			pad = len(name)
		}
	}
	for _, rec := range records {
		name, _ := rec["model"].(string)
		info, _ := rec["display_name"].(string)
		if verbose {
			if extra, ok := rec["info"].(string); ok && extra != "" {
				info += " - " + strings.TrimSpace(extra)
			}
		}
		fmt.Fprintf(a.out, "  %-*s  %s\n", pad, name, info)
	}
	return nil
}

// explainFields renders a readable listing of the current model's
// exportable fields, with label, type, and help text.
func (a *App) explainFields(cmd *cobra.Command) error {
	if a.dryRun {
		a.logger.Debug("dry run",
			zap.String("action", "explain"),
			zap.String("topic", "fields"),
			zap.String("model", a.model),
		)
		return nil
	}

	client, err := a.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	meta, err := client.FieldsGet(cmd.Context(), odoo.Model(a.model),
		[]string{"string", "type", "help", "exportable"})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(meta))
	pad := 0
	for name, attrs := range meta {
		if exportable, ok := attrs["exportable"].(bool); ok && !exportable {
			continue
		}
		names = append(names, name)
		if len(name) > pad {
			pad = len(name)
		}
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "FIELDS")
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "The following fields apply to the `%s` model:\n", a.model)
	fmt.Fprintln(a.out)

	for _, name := range names {
		attrs := meta[name]
		label, _ := attrs["string"].(string)
		typ, _ := attrs["type"].(string)
		fmt.Fprintf(a.out, "  %-*s  %s  <%s>\n", pad, name, strings.TrimSpace(label), typ)
		if help, ok := attrs["help"].(string); ok && help != "" {
			for _, line := range strings.Split(strings.TrimSpace(help), "\n") {
				fmt.Fprintf(a.out, "  %-*s  %s\n", pad, "", strings.TrimSpace(line))
			}
		}
	}
	return nil
}
