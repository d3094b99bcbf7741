package main

import (
	"context"
	"fmt"

	"lexdesk/services"
	"lexdesk/services/i18n"

	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Printable reports",
	}
	caseCmd := &cobra.Command{
		Use:   "case [case-id]",
		Short: "Render the report of one case as PDF (or HTML with --html)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCaseID(args[0])
			if err != nil {
				return err
			}
			asHTML, _ := cmd.Flags().GetBool("html")
			output, _ := cmd.Flags().GetString("output")
			force, _ := cmd.Flags().GetBool("force")
			lang, _ := cmd.Flags().GetString("lang")
			if output == "" {
				ext := "pdf"
				if asHTML {
					ext = "html"
				}
				output = fmt.Sprintf("expediente_%d.%s", id, ext)
			}

			return withSession(cmd, func(ctx context.Context, a *app, sess *services.Session) error {
				ctx = i18n.WithLocale(ctx, lang)
				var data []byte
				if asHTML {
					html, err := a.svc.Reports.RenderCaseReportHTML(ctx, sess, id)
					if err != nil {
						return err
					}
					data = []byte(html)
				} else {
					if data, err = a.svc.Reports.RenderCaseReportPDF(ctx, sess, id); err != nil {
						return err
					}
				}
				if err := writeOutput(output, data, force); err != nil {
					return err
				}
				fmt.Printf("%s Wrote %s\n", okMark, output)
				return nil
			})
		},
	}
	caseCmd.Flags().Bool("html", false, "write HTML instead of PDF")
	caseCmd.Flags().StringP("output", "o", "", "output file")
	caseCmd.Flags().Bool("force", false, "overwrite the output file")
	caseCmd.Flags().String("lang", i18n.DefaultLanguage, "report language (es, en)")
	cmd.AddCommand(caseCmd)
	return cmd
}
