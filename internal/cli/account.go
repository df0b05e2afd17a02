package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Simatwa/house-rental-management-system/internal/app"
	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/models"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
	"github.com/Simatwa/house-rental-management-system/internal/validation"
)

func NewDashboardCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "dashboard",
		Short:         "Show your tenancy at a glance",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "dashboard", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				summary, err := a.Dashboard.Summary(ctx)
				if err != nil {
					return err
				}
				return f.Render(summary, func(w io.Writer) {
					renderDashboard(w, summary, a.Currency.Format)
				})
			})
		},
	}
}

func renderDashboard(w io.Writer, s *dtos.DashboardSummaryResponse, money func(float64) string) {
	fmt.Fprintf(w, "Welcome, %s\n\n", s.User.DisplayName())

	tw := newTable(w)
	fmt.Fprintf(tw, "Balance\t%s\n", s.FormattedBalance)
	if s.Unit != nil {
		fmt.Fprintf(tw, "Unit\t%s (%s), %s\n", s.Unit.Name, s.Unit.UnitGroup.Name, s.Unit.OccupiedStatus)
		fmt.Fprintf(tw, "Monthly rent\t%s\n", money(s.Unit.UnitGroup.MonthlyRent))
	}
	fmt.Fprintf(tw, "Unread messages\t%d (personal %d, group %d, community %d)\n", s.TotalUnread,
		s.UnreadCounts[models.KindPersonal], s.UnreadCounts[models.KindGroup], s.UnreadCounts[models.KindCommunity])
	if s.LatestConcern != nil {
		fmt.Fprintf(tw, "Latest concern\t#%d %s [%s]\n", s.LatestConcern.ID, s.LatestConcern.About, s.LatestConcern.Status)
	} else {
		fmt.Fprintf(tw, "Latest concern\t-\n")
	}
	if s.Feedback != nil {
		fmt.Fprintf(tw, "Your feedback\t%s\n", s.Feedback.Rate)
	} else {
		fmt.Fprintf(tw, "Your feedback\t-\n")
	}
	tw.Flush()

	if len(s.RecentTransactions) == 0 {
		return
	}
	fmt.Fprintln(w, "\nRecent transactions")
	renderTransactions(w, s.RecentTransactions, money)
}

func renderTransactions(w io.Writer, txs []models.Transaction, money func(float64) string) {
	tw := newTable(w)
	for _, t := range txs {
		sign := "-"
		if t.Type.Credit() {
			sign = "+"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s%s\t%s\t%s\n", t.CreatedAt.Date(), t.Type, sign, money(t.Amount), t.Means, orDash(t.Reference))
	}
	tw.Flush()
}

func NewUnitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "unit",
		Short:         "Show the unit you occupy",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "unit", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				unit, err := a.API.Unit(ctx)
				if err != nil {
					return err
				}
				return f.Render(unit, func(w io.Writer) {
					g := unit.UnitGroup
					tw := newTable(w)
					fmt.Fprintf(tw, "Unit\t%s (%s)\n", unit.Name, unit.AbbreviatedName)
					fmt.Fprintf(tw, "Status\t%s\n", unit.OccupiedStatus)
					fmt.Fprintf(tw, "Group\t%s (%s)\n", g.Name, g.AbbreviatedName)
					fmt.Fprintf(tw, "Monthly rent\t%s\n", a.Currency.Format(g.MonthlyRent))
					fmt.Fprintf(tw, "Deposit\t%s\n", a.Currency.Format(g.DepositAmount))
					for _, c := range g.Caretakers {
						name := strings.TrimSpace(c.FirstName + " " + c.LastName)
						fmt.Fprintf(tw, "Caretaker\t%s %s\n", orDash(name), orDash(c.PhoneNumber))
					}
					tw.Flush()
				})
			})
		},
	}
}

func NewHouseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "house",
		Short:         "Show your house, its communities and office",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "house", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				house, err := a.API.House(ctx)
				if err != nil {
					return err
				}
				return f.Render(house, func(w io.Writer) {
					fmt.Fprintf(w, "%s\n%s\n", house.Name, orDash(house.Address))
					if house.Office != nil {
						fmt.Fprintf(w, "\nOffice: %s, %s (%s)\n", house.Office.Name, house.Office.Address, orDash(house.Office.ContactNumber))
					}
					if len(house.Communities) > 0 {
						fmt.Fprintln(w, "\nCommunities")
						for _, c := range house.Communities {
							fmt.Fprintf(w, "  %s  %s\n", c.Name, orDash(c.SocialMediaLink))
						}
					}
				})
			})
		},
	}
}

type profileUpdateOptions struct {
	FirstName, LastName, Occupation, Phone, Emergency, Email string
}

func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "show",
		Short:         "Show your profile",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "profile show", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				p := a.Session.State().User
				return f.Render(p, func(w io.Writer) {
					tw := newTable(w)
					fmt.Fprintf(tw, "Username\t%s\n", p.Username)
					fmt.Fprintf(tw, "Name\t%s\n", p.DisplayName())
					fmt.Fprintf(tw, "Email\t%s\n", utils.ValOr(p.Email, "-"))
					fmt.Fprintf(tw, "Phone\t%s\n", utils.ValOr(p.PhoneNumber, "-"))
					fmt.Fprintf(tw, "Emergency contact\t%s\n", utils.ValOr(p.EmergencyContactNumber, "-"))
					fmt.Fprintf(tw, "Occupation\t%s\n", utils.ValOr(p.Occupation, "-"))
					fmt.Fprintf(tw, "Balance\t%s\n", a.Currency.Format(p.AccountBalance))
					fmt.Fprintf(tw, "Joined\t%s\n", p.DateJoined.Date())
					tw.Flush()
				})
			})
		},
	})

	upd := &profileUpdateOptions{}
	update := &cobra.Command{
		Use:           "update",
		Short:         "Change your personal details",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dtos.UpdateProfileRequest{}
			set := func(flag, value string) *string {
				if cmd.Flags().Changed(flag) {
					return utils.Ptr(value)
				}
				return nil
			}
			req.FirstName = set("first-name", upd.FirstName)
			req.LastName = set("last-name", upd.LastName)
			req.Occupation = set("occupation", upd.Occupation)
			req.PhoneNumber = set("phone", upd.Phone)
			req.EmergencyContactNumber = set("emergency-contact", upd.Emergency)
			req.Email = set("email", upd.Email)

			return runAuthed(rootOpts, cmd, "profile update", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				if req == (dtos.UpdateProfileRequest{}) {
					return usageError("nothing to update: pass at least one field flag")
				}
				if err := validation.Check(req); err != nil {
					return err
				}
				updated, err := a.API.UpdateProfile(ctx, req)
				if err != nil {
					return err
				}
				return f.Render(updated, func(w io.Writer) {
					fmt.Fprintln(w, "Profile updated.")
				})
			})
		},
	}
	update.Flags().StringVar(&upd.FirstName, "first-name", "", "first name")
	update.Flags().StringVar(&upd.LastName, "last-name", "", "last name")
	update.Flags().StringVar(&upd.Occupation, "occupation", "", "occupation")
	update.Flags().StringVar(&upd.Phone, "phone", "", "phone number, e.g. +254712345678")
	update.Flags().StringVar(&upd.Emergency, "emergency-contact", "", "emergency contact number")
	update.Flags().StringVar(&upd.Email, "email", "", "email address")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:           "check-username <username>",
		Short:         "Check whether a username is taken",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "profile check-username", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				fb, err := a.API.UsernameExists(ctx, args[0])
				if err != nil {
					return err
				}
				return f.Render(fb, func(w io.Writer) {
					fmt.Fprintln(w, feedbackDetail(fb.Detail))
				})
			})
		},
	})

	return cmd
}

func NewPasswordCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Recover a forgotten password",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "reset-request <username-or-email>",
		Short:         "Mail a password reset token",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "password reset-request", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				identity := strings.TrimSpace(args[0])
				if identity == "" {
					return usageError("Username or email is required")
				}
				fb, err := a.API.RequestPasswordReset(ctx, identity)
				if err != nil {
					return err
				}
				return f.Render(fb, func(w io.Writer) {
					fmt.Fprintln(w, feedbackDetail(fb.Detail))
				})
			})
		},
	})

	req := &dtos.ResetPasswordRequest{}
	reset := &cobra.Command{
		Use:           "reset",
		Short:         "Set a new password with a reset token",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "password reset", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				if err := validation.Check(req); err != nil {
					return err
				}
				fb, err := a.API.ResetPassword(ctx, *req)
				if err != nil {
					return err
				}
				return f.Render(fb, func(w io.Writer) {
					fmt.Fprintln(w, feedbackDetail(fb.Detail))
				})
			})
		},
	}
	reset.Flags().StringVarP(&req.Username, "username", "u", "", "username")
	reset.Flags().StringVar(&req.Token, "token", "", "reset token from the email")
	reset.Flags().StringVar(&req.NewPassword, "new-password", "", "new password")
	reset.Flags().StringVar(&req.ConfirmPassword, "confirm-password", "", "new password again")
	cmd.AddCommand(reset)

	return cmd
}
