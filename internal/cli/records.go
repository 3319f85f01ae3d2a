package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ilcreatore32/clo/internal/odoo"
	"github.com/ilcreatore32/clo/internal/output"
)

func (a *App) readCommand() *cobra.Command {
	var (
		rawIDs []string
		fields []string
		asCSV  bool
	)

	cmd := &cobra.Command{
		Use:   "read --ids ID [flags]",
		Short: "Retrieve the details for the records at the ID(s) specified",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			ids, err := a.parseIDs(rawIDs)
			if err != nil {
				return err
			}
			if a.dryRun {
				a.logger.Debug("dry run",
					zap.String("action", "read"),
					zap.String("model", a.model),
					zap.Int64s("ids", ids),
					zap.Strings("fields", fields),
				)
				return nil
			}

			client, err := a.connect()
			if err != nil {
				return err
			}
			defer client.Close()

			records, err := client.Read(cmd.Context(), odoo.Model(a.model), ids, odoo.Fields(fields))
			if err != nil {
				return err
			}
			if asCSV {
				return output.CSV(a.out, records)
			}
			return output.JSON(a.out, records)
		},
	}

	cmd.Flags().StringSliceVarP(&rawIDs, "ids", "i", nil,
		`The ID number(s) of the record(s) to perform the action on. Specifying "-" expects a space-separated list from STDIN.`)
	cmd.Flags().StringSliceVarP(&fields, "fields", "f", nil,
		"Field names to return (default is all fields).")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Output records in CSV format.")
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}

func (a *App) createCommand() *cobra.Command {
	var values []string

	cmd := &cobra.Command{
		Use:   "create --value FIELD=VALUE [flags]",
		Short: "Create new records in the current model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			data, err := parseValues(values)
			if err != nil {
				return err
			}
			if a.dryRun {
				a.logger.Debug("dry run",
					zap.String("action", "create"),
					zap.String("model", a.model),
					zap.Any("values", data),
				)
				return nil
			}

			client, err := a.connect()
			if err != nil {
				return err
			}
			defer client.Close()

			id, err := client.Create(cmd.Context(), odoo.Model(a.model), data)
			if err != nil {
				return err
			}
			return output.JSON(a.out, id)
		},
	}

	cmd.Flags().StringArrayVarP(&values, "value", "v", nil,
		"A FIELD=VALUE pair to assign on the new record. Repeatable.")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func (a *App) writeCommand() *cobra.Command {
	var (
		rawIDs []string
		values []string
	)

	cmd := &cobra.Command{
		Use:   "write --ids ID --value FIELD=VALUE [flags]",
		Short: "Update existing records in the current model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			ids, err := a.parseIDs(rawIDs)
			if err != nil {
				return err
			}
			data, err := parseValues(values)
			if err != nil {
				return err
			}
			if a.dryRun {
				a.logger.Debug("dry run",
					zap.String("action", "write"),
					zap.String("model", a.model),
					zap.Int64s("ids", ids),
					zap.Any("values", data),
				)
				return nil
			}

			client, err := a.connect()
			if err != nil {
				return err
			}
			defer client.Close()

			ok, err := client.Write(cmd.Context(), odoo.Model(a.model), ids, data)
			if err != nil {
				return err
			}
			return output.JSON(a.out, ok)
		},
	}

	cmd.Flags().StringSliceVarP(&rawIDs, "ids", "i", nil,
		`The ID number(s) of the record(s) to perform the action on. Specifying "-" expects a space-separated list from STDIN.`)
	cmd.Flags().StringArrayVarP(&values, "value", "v", nil,
		"A FIELD=VALUE pair to assign on the records. Repeatable.")
	_ = cmd.MarkFlagRequired("ids")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func (a *App) deleteCommand() *cobra.Command {
	var rawIDs []string

	cmd := &cobra.Command{
		Use:   "delete --ids ID [flags]",
		Short: "Delete the records from the current model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			ids, err := a.parseIDs(rawIDs)
			if err != nil {
				return err
			}
			if a.dryRun {
				a.logger.Debug("dry run",
					zap.String("action", "delete"),
					zap.String("model", a.model),
					zap.Int64s("ids", ids),
				)
				return nil
			}

			client, err := a.connect()
			if err != nil {
				return err
			}
			defer client.Close()

			ok, err := client.Delete(cmd.Context(), odoo.Model(a.model), ids)
			if err != nil {
				return err
			}
			return output.JSON(a.out, ok)
		},
	}

	cmd.Flags().StringSliceVarP(&rawIDs, "ids", "i", nil,
		`The ID number(s) of the record(s) to perform the action on. Specifying "-" expects a space-separated list from STDIN.`)
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}

func (a *App) fieldsCommand() *cobra.Command {
	var attributes []string

	cmd := &cobra.Command{
		Use:   "fields [flags]",
		Short: "Retrieve raw details of the fields available in the current model",
		Long: "Retrieves raw details of the fields available in the current model.\n" +
			"For user-friendly formatting, run `clo explain fields`.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			if a.dryRun {
				a.logger.Debug("dry run",
					zap.String("action", "fields"),
					zap.String("model", a.model),
					zap.Strings("attributes", attributes),
				)
				return nil
			}

			client, err := a.connect()
			if err != nil {
				return err
			}
			defer client.Close()

			fields, err := client.FieldsGet(cmd.Context(), odoo.Model(a.model), attributes)
			if err != nil {
				return err
			}
			return output.JSON(a.out, fields)
		},
	}

	cmd.Flags().StringSliceVarP(&attributes, "attributes", "a", nil,
		"Attribute(s) to return for each field, all if empty or not provided.")
	return cmd
}
