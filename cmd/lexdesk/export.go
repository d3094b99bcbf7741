package main

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"lexdesk/services"
	"lexdesk/services/i18n"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export listings to Excel",
	}
	cmd.PersistentFlags().StringP("output", "o", "", "output file (defaults to a dated name in the current directory)")
	cmd.PersistentFlags().Bool("force", false, "overwrite the output file")
	cmd.PersistentFlags().String("lang", i18n.DefaultLanguage, "language of the headers (es, en)")

	cmd.AddCommand(&cobra.Command{
		Use:   "cases",
		Short: "Export every case file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, "expedientes", func(ctx context.Context, a *app, sess *services.Session) (*bytes.Buffer, error) {
				return a.svc.Exports.ExportCases(ctx, sess)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clients",
		Short: "Export every client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, "clientes", func(ctx context.Context, a *app, sess *services.Session) (*bytes.Buffer, error) {
				return a.svc.Exports.ExportClients(ctx, sess)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "ledger [case-id]",
		Short: "Export the expenses, fees and payments of one case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCaseID(args[0])
			if err != nil {
				return err
			}
			return runExport(cmd, fmt.Sprintf("cuenta_%d", id), func(ctx context.Context, a *app, sess *services.Session) (*bytes.Buffer, error) {
				return a.svc.Exports.ExportCaseLedger(ctx, sess, id)
			})
		},
	})
	return cmd
}

func runExport(cmd *cobra.Command, prefix string, build func(context.Context, *app, *services.Session) (*bytes.Buffer, error)) error {
	output, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")
	lang, _ := cmd.Flags().GetString("lang")
	if output == "" {
		output = services.ExportFileName(prefix, time.Now())
	}

	return withSession(cmd, func(ctx context.Context, a *app, sess *services.Session) error {
		buf, err := build(i18n.WithLocale(ctx, lang), a, sess)
		if err != nil {
			return err
		}
		if err := writeOutput(output, buf.Bytes(), force); err != nil {
			return err
		}
		fmt.Printf("%s Wrote %s (%d bytes)\n", okMark, output, buf.Len())
		return nil
	})
}

func parseCaseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid case id %q", s)
	}
	return uint(id), nil
}
