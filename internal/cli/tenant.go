package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Simatwa/house-rental-management-system/internal/app"
	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/models"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
	"github.com/Simatwa/house-rental-management-system/internal/validation"
)

// ---------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------

type messageListOptions struct {
	Kind     string
	Unread   bool
	Read     bool
	Category string
}

func NewMessagesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Read personal, group and community messages",
	}

	opts := &messageListOptions{}
	list := &cobra.Command{
		Use:           "list",
		Short:         "List messages of one kind",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "messages list", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				kind, err := models.ParseMessageKind(opts.Kind)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid --kind", err)
				}
				filter := dtos.MessageFilter{Category: models.MessageCategory(opts.Category)}
				if filter.Category != "" && !filter.Category.Valid() {
					return usageError("unknown category %q", opts.Category)
				}
				switch {
				case opts.Unread && opts.Read:
					return usageError("--unread and --read are mutually exclusive")
				case opts.Unread:
					filter.IsRead = utils.Ptr(false)
				case opts.Read:
					filter.IsRead = utils.Ptr(true)
				}

				msgs, err := a.API.Messages(ctx, kind, filter)
				if err != nil {
					return err
				}
				if msgs == nil {
					msgs = []models.Message{}
				}
				return f.Render(msgs, func(w io.Writer) {
					renderMessages(w, msgs)
				})
			})
		},
	}
	list.Flags().StringVarP(&opts.Kind, "kind", "k", string(models.KindPersonal), "personal, group or community")
	list.Flags().BoolVar(&opts.Unread, "unread", false, "only unread messages")
	list.Flags().BoolVar(&opts.Read, "read", false, "only read messages")
	list.Flags().StringVar(&opts.Category, "category", "", "General, Payment, Maintenance, Promotion, Warning or Other")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:           "read <kind> <id>",
		Short:         "Mark a message as read",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "messages read", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				kind, err := models.ParseMessageKind(args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid kind", err)
				}
				id, err := parseID(args[1])
				if err != nil {
					return err
				}
				fb, err := a.API.MarkMessageRead(ctx, kind, id)
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

func renderMessages(w io.Writer, msgs []models.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages.")
		return
	}
	tw := newTable(w)
	for _, m := range msgs {
		b := m.Base()
		mark := " "
		if !b.IsRead {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s %d\t%s\t%s\t%s\n", mark, b.ID, b.CreatedAt.Date(), b.Category, b.Subject)
	}
	tw.Flush()
}

// ---------------------------------------------------------------------
// Concerns
// ---------------------------------------------------------------------

func NewConcernsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concerns",
		Short: "Raise and track maintenance concerns",
	}

	var status string
	list := &cobra.Command{
		Use:           "list",
		Short:         "List your concerns",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "concerns list", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				st := models.ConcernStatus(status)
				if st != "" && !st.Valid() {
					return usageError("unknown status %q", status)
				}
				concerns, err := a.API.Concerns(ctx, st)
				if err != nil {
					return err
				}
				if concerns == nil {
					concerns = []models.ShallowConcern{}
				}
				return f.Render(concerns, func(w io.Writer) {
					if len(concerns) == 0 {
						fmt.Fprintln(w, "No concerns.")
						return
					}
					tw := newTable(w)
					for _, c := range concerns {
						fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.CreatedAt.Date(), c.Status, c.About)
					}
					tw.Flush()
				})
			})
		},
	}
	list.Flags().StringVar(&status, "status", "", "Open, In Progress, Resolved or Closed")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:           "show <id>",
		Short:         "Show one concern",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "concerns show", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				c, err := a.API.Concern(ctx, id)
				if err != nil {
					return err
				}
				return f.Render(c, func(w io.Writer) {
					renderConcern(w, c)
				})
			})
		},
	})

	add := &dtos.NewConcernRequest{}
	addCmd := &cobra.Command{
		Use:           "add",
		Short:         "Raise a new concern",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "concerns add", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				if err := validation.Check(add); err != nil {
					return err
				}
				c, err := a.API.AddConcern(ctx, *add)
				if err != nil {
					return err
				}
				return f.Render(c, func(w io.Writer) {
					fmt.Fprintf(w, "Concern #%d raised.\n", c.ID)
				})
			})
		},
	}
	addCmd.Flags().StringVar(&add.About, "about", "", "short summary")
	addCmd.Flags().StringVar(&add.Details, "details", "", "full description")
	cmd.AddCommand(addCmd)

	var about, details string
	updateCmd := &cobra.Command{
		Use:           "update <id>",
		Short:         "Edit a concern",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dtos.UpdateConcernRequest{}
			if cmd.Flags().Changed("about") {
				req.About = utils.Ptr(about)
			}
			if cmd.Flags().Changed("details") {
				req.Details = utils.Ptr(details)
			}
			return runAuthed(rootOpts, cmd, "concerns update", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if req.About == nil && req.Details == nil {
					return usageError("nothing to update: pass --about and/or --details")
				}
				if err := validation.Check(req); err != nil {
					return err
				}
				c, err := a.API.UpdateConcern(ctx, id, req)
				if err != nil {
					return err
				}
				return f.Render(c, func(w io.Writer) {
					fmt.Fprintf(w, "Concern #%d updated.\n", c.ID)
				})
			})
		},
	}
	updateCmd.Flags().StringVar(&about, "about", "", "short summary")
	updateCmd.Flags().StringVar(&details, "details", "", "full description")
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:           "delete <id>",
		Short:         "Withdraw a concern",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "concerns delete", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				fb, err := a.API.DeleteConcern(ctx, id)
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

func renderConcern(w io.Writer, c *models.Concern) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Concern\t#%d\n", c.ID)
	fmt.Fprintf(tw, "About\t%s\n", c.About)
	fmt.Fprintf(tw, "Status\t%s\n", c.Status)
	fmt.Fprintf(tw, "Raised\t%s\n", c.CreatedAt.Date())
	fmt.Fprintf(tw, "Updated\t%s\n", c.UpdatedAt.Date())
	tw.Flush()
	fmt.Fprintf(w, "\n%s\n", c.Details)
	if c.Response != "" {
		fmt.Fprintf(w, "\nResponse: %s\n", c.Response)
	}
}

// ---------------------------------------------------------------------
// Feedback
// ---------------------------------------------------------------------

func NewFeedbackCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Review the service",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "show",
		Short:         "Show your feedback",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "feedback show", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				fb, err := a.API.Feedback(ctx)
				if isNotFound(err) {
					return f.Render(nil, func(w io.Writer) {
						fmt.Fprintln(w, "You have not left feedback yet.")
					})
				}
				if err != nil {
					return err
				}
				return f.Render(fb, func(w io.Writer) {
					fmt.Fprintf(w, "%s (%s)\n%s\n", fb.Rate, fb.UpdatedAt.Date(), fb.Message)
				})
			})
		},
	})

	for _, mode := range []string{"add", "update"} {
		req := &dtos.TenantFeedbackRequest{}
		var rate string
		sub := &cobra.Command{
			Use:           mode,
			Short:         map[string]string{"add": "Leave feedback", "update": "Change your feedback"}[mode],
			Args:          cobra.NoArgs,
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				req.Rate = models.FeedbackRate(rate)
				return runAuthed(rootOpts, cmd, "feedback "+mode, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
					if err := validation.Check(req); err != nil {
						return err
					}
					send := a.API.AddFeedback
					if mode == "update" {
						send = a.API.UpdateFeedback
					}
					fb, err := send(ctx, *req)
					if err != nil {
						return err
					}
					return f.Render(fb, func(w io.Writer) {
						fmt.Fprintln(w, "Feedback saved.")
					})
				})
			},
		}
		sub.Flags().StringVar(&req.Message, "message", "", "what you think of the service")
		sub.Flags().StringVar(&rate, "rate", "", "Excellent, Good, Average, Poor or Terrible")
		cmd.AddCommand(sub)
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "delete",
		Short:         "Remove your feedback",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "feedback delete", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				fb, err := a.API.DeleteFeedback(ctx)
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

// ---------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------

func NewTransactionsCommand(rootOpts *RootOptions) *cobra.Command {
	var means, txType string

	cmd := &cobra.Command{
		Use:           "transactions",
		Short:         "List your account transactions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "transactions", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				txs, err := a.Payments.Transactions(ctx, dtos.TransactionFilter{
					Means: models.TransactionMeans(means),
					Type:  models.TransactionType(txType),
				})
				if err != nil {
					return err
				}
				if txs == nil {
					txs = []models.Transaction{}
				}
				return f.Render(txs, func(w io.Writer) {
					if len(txs) == 0 {
						fmt.Fprintln(w, "No transactions.")
						return
					}
					renderTransactions(w, txs, a.Currency.Format)
				})
			})
		},
	}
	cmd.Flags().StringVar(&means, "means", "", "Cash, M-PESA, Bank or Other")
	cmd.Flags().StringVar(&txType, "type", "", "Deposit, Withdrawal, Rent Payment or Fee Payment")

	return cmd
}

func NewPayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Pay rent or top up your account",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "details",
		Short:         "Show where to send payments",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "pay details", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				opts, err := a.Payments.Options(ctx)
				if err != nil {
					return err
				}
				return f.Render(opts, func(w io.Writer) {
					tw := newTable(w)
					if opts.Mpesa != nil {
						fmt.Fprintf(tw, "%s\tpaybill %s\taccount %s\n", opts.Mpesa.Name, opts.Mpesa.PaybillNumber, opts.Mpesa.AccountNumber)
					}
					for _, o := range opts.Other {
						fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Name, orDash(o.AccountNumber), orDash(o.Details))
					}
					tw.Flush()
				})
			})
		},
	})

	req := &dtos.SendMpesaPopupRequest{}
	mpesa := &cobra.Command{
		Use:   "mpesa",
		Short: "Send an M-PESA payment prompt to your phone",
		Long: `Ask the rental API to push an M-PESA STK prompt for --amount to --phone.
The balance updates once the payment is confirmed on the phone.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "pay mpesa", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				fb, err := a.Payments.TopUp(ctx, *req)
				if err != nil {
					return err
				}
				return f.Render(fb, func(w io.Writer) {
					fmt.Fprintln(w, feedbackDetail(fb.Detail))
				})
			})
		},
	}
	mpesa.Flags().StringVar(&req.PhoneNumber, "phone", "", "phone number, e.g. +254712345678")
	mpesa.Flags().IntVar(&req.Amount, "amount", 0, "amount to pay")
	cmd.AddCommand(mpesa)

	return cmd
}
