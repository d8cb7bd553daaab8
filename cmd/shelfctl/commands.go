package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shelf/internal/client"
	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/version"
)

func columnArg(s string) (domain.ColumnID, error) {
	col, ok := domain.ParseColumnID(s)
	if !ok {
		return "", fmt.Errorf("unknown column %q (want one of %v)", s, domain.ColumnIDs)
	}
	return col, nil
}

func newBoardCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the three columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				v, err := c.Board(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.json {
					return writeJSON(cmd, v)
				}
				renderBoard(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}
}

func newMoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "move <column> <book-id>",
		Short:     "File a book in a column, removing it from the others",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.ToRead), string(domain.Reading), string(domain.Read)},
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := columnArg(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(c *client.Client) error {
				v, err := c.Move(cmd.Context(), col, args[1])
				if err != nil {
					return err
				}
				if ctx.json {
					return writeJSON(cmd, v)
				}
				renderBoard(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}
}

func newUnfileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unfile <book-id>",
		Short: "Take a book off the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				if err := c.Unfile(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ %s removed from the board\n", args[0])
				return nil
			})
		},
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var draft domain.BookDraft
	var published string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create your own book and file it under To read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if published != "" {
				t, err := time.Parse("2006-01-02", published)
				if err != nil {
					return fmt.Errorf("--published: want YYYY-MM-DD: %w", err)
				}
				draft.Published = domain.PublishedOn(t.Day(), int(t.Month()), t.Year())
			}
			return ctx.withClient(func(c *client.Client) error {
				b, err := c.Create(cmd.Context(), draft)
				if err != nil {
					return err
				}
				if ctx.json {
					return writeJSON(cmd, b)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ %q added as %s\n", b.Title, b.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", "", "book title")
	cmd.Flags().StringVar(&draft.Author, "author", "", "book author")
	cmd.Flags().StringVar(&published, "published", "", "publication date, YYYY-MM-DD")
	cmd.Flags().IntVar(&draft.Pages, "pages", 0, "page count")
	cmd.Flags().StringVar(&draft.Description, "description", "", "short description")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <book-id>",
		Short: "Delete a book permanently",
		Long:  "Delete a book permanently. Your own books are erased, catalog books are hidden from the catalog.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				if err := c.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "🗑  %s deleted\n", args[0])
				return nil
			})
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search [term]",
		Short: "Search the books that are not on the board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			return ctx.withClient(func(c *client.Client) error {
				res, err := c.Search(cmd.Context(), term)
				if err != nil {
					return err
				}
				if ctx.json {
					return writeJSON(cmd, res)
				}
				if len(res.Books) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no books found")
					return nil
				}
				renderBooks(cmd.OutOrStdout(), res.Books)
				return nil
			})
		},
	}
}

func newRateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <book-id> <0-5> [comment]",
		Short: "Rate a book and optionally comment on it",
		Long:  "Rate a book and optionally comment on it. A rating of 0 without a comment clears the feedback.",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("rating must be a number: %w", err)
			}
			comments := ""
			if len(args) == 3 {
				comments = args[2]
			}
			return ctx.withClient(func(c *client.Client) error {
				fb, err := c.Rate(cmd.Context(), args[0], domain.Feedback{Rating: rating, Comments: comments})
				if err != nil {
					return err
				}
				if ctx.json {
					return writeJSON(cmd, fb)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "⭐ %s rated %d/%d\n", args[0], fb.Rating, domain.MaxRating)
				return nil
			})
		},
	}
}

func newNotificationsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show recent board notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				notes, err := c.Notifications(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if ctx.json {
					return writeJSON(cmd, notes)
				}
				for _, n := range notes {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %-7s  %s\n",
						n.At.Local().Format("15:04:05"), n.Level, n.Message)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of notifications")
	return cmd
}

func newReloadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask the server to reload the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				if err := c.Reload(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✅ catalog reload queued")
				return nil
			})
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
