package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"lexdesk/models"
	"lexdesk/services"

	"github.com/spf13/cobra"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts (admin only)",
	}
	cmd.AddCommand(userCreateCmd(), userListCmd())
	return cmd
}

func userCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [username]",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fullName, _ := cmd.Flags().GetString("full-name")
			role, _ := cmd.Flags().GetString("role")
			email, _ := cmd.Flags().GetString("email")
			newPassword, _ := cmd.Flags().GetString("new-password")

			in := services.NewUser{
				Username: args[0],
				Password: newPassword,
				FullName: fullName,
				Role:     role,
			}
			if email != "" {
				in.Email = &email
			}

			return withSession(cmd, func(ctx context.Context, a *app, sess *services.Session) error {
				u, err := a.svc.Users.Create(ctx, sess, in)
				if err != nil {
					return fmt.Errorf("failed to create user: %w", err)
				}
				fmt.Printf("%s Created user %s (ID: %d)\n", okMark, u.Username, u.ID)
				fmt.Printf("  Name: %s\n", u.FullName)
				fmt.Printf("  Role: %s\n", u.Role)
				return nil
			})
		},
	}
	cmd.Flags().String("full-name", "", "full name (required)")
	cmd.Flags().String("role", models.RoleLawyer, "admin, lawyer or secretary")
	cmd.Flags().String("email", "", "e-mail address for event reminders")
	cmd.Flags().String("new-password", "", "password of the new account (required)")
	cmd.MarkFlagRequired("full-name")
	cmd.MarkFlagRequired("new-password")
	return cmd
}

func userListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess *services.Session) error {
				users, err := a.svc.Users.List(ctx, sess)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tROLE\tACTIVE")
				for _, u := range users {
					active := "yes"
					if !u.Active {
						active = "no"
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.FullName, u.Role, active)
				}
				return w.Flush()
			})
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the database and the default admin account",
		Long: `Creates the schema if needed and, when no user exists yet, the admin
account named by DEFAULT_ADMIN_USERNAME / DEFAULT_ADMIN_PASSWORD.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			created, err := services.SeedDefaultAdmin(ctx, a.svc.Repos.Users, a.cfg.DefaultAdminUsername, a.cfg.DefaultAdminPassword)
			if err != nil {
				return err
			}
			if created {
				fmt.Printf("%s Created admin account %q\n", okMark, a.cfg.DefaultAdminUsername)
				if !a.cfg.IsProduction() {
					fmt.Printf("%s Change its password before sharing the database\n", warnMark)
				}
				return nil
			}
			fmt.Printf("%s Users already exist, nothing to seed\n", okMark)
			return nil
		},
	}
}
