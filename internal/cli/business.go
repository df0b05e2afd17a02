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
	"github.com/Simatwa/house-rental-management-system/internal/validation"
)

func NewListingsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "listings [term]",
		Short: "List houses and unit groups, optionally filtered",
		Long: `List every house and its unit groups. With a term, houses are kept when
their name contains it and unit groups when their name or abbreviation
does, ignoring case. The two are filtered independently.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")
			return run(rootOpts, cmd, "listings", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				a.Currency.Load(ctx, a.API)
				res, err := a.Listings.Search(ctx, term)
				if err != nil {
					return err
				}
				resp := dtos.ListingsResponse{Term: term, Houses: res.Houses, UnitGroups: res.UnitGroups}
				return f.Render(resp, func(w io.Writer) {
					renderListings(w, resp, a.Listings.Engine().Result().Houses, a.Currency.Format)
				})
			})
		},
	}
}

// renderListings prints matched houses, then unit groups under the house
// they belong to. all names houses whose groups matched without the house.
func renderListings(w io.Writer, resp dtos.ListingsResponse, all []models.House, money func(float64) string) {
	names := make(map[int]string, len(all))
	for _, h := range all {
		names[h.ID] = h.Name
	}

	fmt.Fprintf(w, "Houses (%d)\n", len(resp.Houses))
	tw := newTable(w)
	for _, h := range resp.Houses {
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", h.ID, h.Name, orDash(h.Address))
	}
	tw.Flush()

	fmt.Fprintf(w, "Unit groups (%d)\n", resp.UnitGroups.Count())
	for _, houseID := range resp.UnitGroups.Keys() {
		name := names[houseID]
		if name == "" {
			name = fmt.Sprintf("house %d", houseID)
		}
		fmt.Fprintf(w, "  %s\n", name)
		tw := newTable(w)
		for _, g := range resp.UnitGroups[houseID] {
			fmt.Fprintf(tw, "    %s\t%s\t%s/month\t%d of %d vacant\n",
				g.AbbreviatedName, g.Name, money(g.MonthlyRent), g.NumberOfVacantUnits, g.NumberOfUnits)
		}
		tw.Flush()
	}
}

func NewAboutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "about",
		Short:         "Show the business profile",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "about", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				about, err := a.API.About(ctx)
				if err != nil {
					return err
				}
				return f.Render(about, func(w io.Writer) {
					fmt.Fprintf(w, "%s (%s)\n", about.Name, about.ShortName)
					if about.Slogan != "" {
						fmt.Fprintf(w, "%s\n", about.Slogan)
					}
					fmt.Fprintln(w)
					fmt.Fprintln(w, about.Details)
					fmt.Fprintln(w)
					tw := newTable(w)
					fmt.Fprintf(tw, "Address\t%s\n", orDash(about.Address))
					fmt.Fprintf(tw, "Email\t%s\n", orDash(about.Email))
					fmt.Fprintf(tw, "Phone\t%s\n", orDash(about.PhoneNumber))
					fmt.Fprintf(tw, "Founded\t%s\n", about.FoundedIn.Date())
					tw.Flush()
				})
			})
		},
	}
}

func NewFAQsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "faqs",
		Short:         "List frequently asked questions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "faqs", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				faqs, err := a.API.FAQs(ctx)
				if err != nil {
					return err
				}
				return f.Render(faqs, func(w io.Writer) {
					for i, q := range faqs {
						fmt.Fprintf(w, "Q: %s\nA: %s\n", q.Question, q.Answer)
						if i < len(faqs)-1 {
							fmt.Fprintln(w)
						}
					}
				})
			})
		},
	}
}

func NewTestimonialsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "testimonials",
		Short:         "List published tenant testimonials",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "testimonials", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				items, err := a.API.Testimonials(ctx)
				if err != nil {
					return err
				}
				return f.Render(items, func(w io.Writer) {
					for _, t := range items {
						name := strings.TrimSpace(t.User.FirstName + " " + t.User.LastName)
						if name == "" {
							name = t.User.Username
						}
						fmt.Fprintf(w, "%s, %s [%s]\n  %s\n", name, t.SenderRole, t.Rate, t.Message)
					}
				})
			})
		},
	}
}

func NewGalleriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "galleries",
		Short:         "List gallery entries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "galleries", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				items, err := a.API.Galleries(ctx)
				if err != nil {
					return err
				}
				return f.Render(items, func(w io.Writer) {
					tw := newTable(w)
					for _, g := range items {
						fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Date.Date(), g.Title, orDash(g.LocationName))
					}
					tw.Flush()
				})
			})
		},
	}
}

var documentAliases = map[string]models.DocumentName{
	"terms":  models.DocumentTermsOfUse,
	"policy": models.DocumentPolicy,
}

func NewDocumentCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "document <terms|policy>",
		Short:         "Show the terms of service or the policy",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "document", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				name, ok := documentAliases[strings.ToLower(args[0])]
				if !ok {
					return usageError("unknown document %q: must be terms or policy", args[0])
				}
				doc, err := a.API.Document(ctx, name)
				if err != nil {
					return err
				}
				return f.Render(doc, func(w io.Writer) {
					fmt.Fprintf(w, "%s (updated %s)\n\n%s\n", doc.Name, doc.UpdatedAt.Date(), doc.Content)
				})
			})
		},
	}
}

func NewContactCommand(rootOpts *RootOptions) *cobra.Command {
	req := &dtos.NewVisitorMessageRequest{}

	cmd := &cobra.Command{
		Use:           "contact",
		Short:         "Send a message to the business",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "contact", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				if err := validation.Check(req); err != nil {
					return err
				}
				fb, err := a.API.SendVisitorMessage(ctx, *req)
				if err != nil {
					return err
				}
				return f.Render(fb, func(w io.Writer) {
					fmt.Fprintln(w, feedbackDetail(fb.Detail))
				})
			})
		},
	}

	cmd.Flags().StringVar(&req.Sender, "name", "", "your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "your email address")
	cmd.Flags().StringVar(&req.Body, "message", "", "the message")

	return cmd
}
