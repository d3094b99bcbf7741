package main

import (
	"context"
	"fmt"

	"lexdesk/models"
	"lexdesk/services"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func remindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Event reminder e-mails",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "send",
		Short: "Send every reminder that is due now",
		Long: `Mails the owner of each pending event whose reminder time has passed and
marks it sent. Run it from cron or a systemd timer; it does one pass and exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess *services.Session) error {
				if err := sess.Require(models.RoleAdmin); err != nil {
					return err
				}
				res, err := a.svc.Reminders.SendDue(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("%s %d due, %d sent, %d skipped\n", okMark, res.Due, res.Sent, res.Skipped)
				if res.Failed > 0 {
					fmt.Printf("%s %s\n", warnMark, color.New(color.FgRed).Sprintf("%d failed; they will be retried on the next run", res.Failed))
				}
				return nil
			})
		},
	})
	return cmd
}
