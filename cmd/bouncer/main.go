// Command bouncer records and classifies reviews of venue door security.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	lg "github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/bouncer"
	"github.com/fwojciec/bouncer/clipboard"
	"github.com/fwojciec/bouncer/config"
	"github.com/fwojciec/bouncer/fs"
	"github.com/fwojciec/bouncer/gemini"
	"github.com/fwojciec/bouncer/heuristic"
	"github.com/fwojciec/bouncer/jsonl"
	"github.com/fwojciec/bouncer/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// cli holds state shared by all subcommands.
type cli struct {
	out     io.Writer
	verbose bool
	noColor bool
	logger  *zap.Logger
	cfg     config.Config
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "bouncer",
		Short:         "Rate and classify how venue door staff treat guests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if c.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger

			cfg, err := config.Load()
			if err != nil {
				c.logger.Warn("ignoring config file", zap.Error(err))
			}
			c.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		c.classifyCmd(),
		c.submitCmd(),
		c.showCmd(),
		c.rankCmd(),
		c.venuesCmd(),
		c.insightsCmd(),
		c.voteCmd(),
		c.tagVoteCmd(),
		c.tagStatsCmd(),
		c.reclassifyCmd(),
	)
	return root
}

// newApp wires the configured collaborators into an App.
func (c *cli) newApp(ctx context.Context) (*App, error) {
	classifier, err := c.newClassifier(ctx, true)
	if err != nil {
		return nil, err
	}

	renderer := lg.NewRenderer(c.out)
	if c.noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	theme := lipgloss.DarkTheme()
	if !renderer.HasDarkBackground() {
		theme = lipgloss.LightTheme()
	}

	return &App{
		Out:        c.out,
		Classifier: classifier,
		Reviews:    jsonl.NewReviewStore(c.cfg.ReviewsPath()),
		TagVotes:   jsonl.NewTagVoteStore(c.cfg.TagVotesPath()),
		Renderer:   lipgloss.NewRenderer(theme, renderer),
		Logger:     c.logger,
	}, nil
}

// newClassifier returns the heuristic classifier, or a cached Gemini
// classifier when the engine is gemini. With fallback set, Gemini failures
// are answered by the heuristic rules; those answers are never cached.
func (c *cli) newClassifier(ctx context.Context, fallback bool) (bouncer.Classifier, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	if c.cfg.Classifier.Engine != config.EngineGemini {
		return heuristic.NewClassifier(), nil
	}

	model := c.cfg.Classifier.Gemini.Model
	client, err := gemini.NewClient(ctx, c.cfg.Classifier.Gemini.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.logger.Debug("using gemini classifier", zap.String("model", model), zap.Bool("fallback", fallback))

	var classifier bouncer.Classifier = fs.NewClassifier(
		gemini.NewClassifier(client, model),
		c.cfg.Classifier.CacheDir,
		config.EngineGemini+"/"+model,
	)
	if fallback {
		classifier = heuristic.NewFallback(classifier, c.logger)
	}
	return classifier, nil
}

func addReviewFlags(cmd *cobra.Command, req *ReviewRequest) {
	cmd.Flags().StringVar(&req.Rating, "rating", "", "Rating: Good, Okay or Bad")
	cmd.Flags().StringArrayVar(&req.Tags, "tag", nil, "Behavior tag (repeatable)")
	cmd.Flags().StringVar(&req.Story, "story", "", "What happened at the door")
	cmd.Flags().BoolVar(&req.JSON, "json", false, "Print JSON")
}

func (c *cli) classifyCmd() *cobra.Command {
	var req ReviewRequest
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Preview the classification of a review without saving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.Classify(cmd.Context(), req)
		},
	}
	addReviewFlags(cmd, &req)
	return cmd
}

func (c *cli) submitCmd() *cobra.Command {
	var req ReviewRequest
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Classify and save a review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			if req.Copy {
				if cb, err := clipboard.New(); err == nil {
					app.Clipboard = cb
				}
			}
			return app.Submit(cmd.Context(), req)
		},
	}
	cmd.Flags().StringVar(&req.Venue, "venue", "", "Venue name")
	cmd.Flags().BoolVar(&req.Copy, "copy", false, "Copy the new review id to the clipboard")
	addReviewFlags(cmd, &req)
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <review-id>",
		Short: "Show a stored review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.Show(cmd.Context(), args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func (c *cli) rankCmd() *cobra.Command {
	var (
		rating string
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "List venues with the most reviews of a rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.Rank(cmd.Context(), rating, limit, asJSON)
		},
	}
	cmd.Flags().StringVar(&rating, "rating", string(bouncer.RatingGood), "Rating to rank by")
	cmd.Flags().IntVar(&limit, "limit", bouncer.DefaultRankLimit, "Maximum number of venues")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func (c *cli) venuesCmd() *cobra.Command {
	var req VenuesRequest
	cmd := &cobra.Command{
		Use:   "venues",
		Short: "Summarize reviews per venue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.Venues(cmd.Context(), req)
		},
	}
	cmd.Flags().StringVar(&req.Query, "query", "", "Only venues whose name contains this text")
	cmd.Flags().StringVar(&req.Sort, "sort", "", "Sort by good or bad count")
	cmd.Flags().StringVar(&req.Rating, "rating", "", "Only count reviews with this rating")
	cmd.Flags().StringVar(&req.Tag, "tag", "", "Only count reviews with this tag")
	cmd.Flags().BoolVar(&req.JSON, "json", false, "Print JSON")
	return cmd
}

func (c *cli) insightsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show an overview of all reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.Insights(cmd.Context(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func voteDelta(down bool) int {
	if down {
		return -1
	}
	return 1
}

func (c *cli) voteCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "vote <review-id>",
		Short: "Up-vote (or down-vote) a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.Vote(cmd.Context(), args[0], voteDelta(down))
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "Down-vote instead")
	return cmd
}

func (c *cli) tagVoteCmd() *cobra.Command {
	var (
		venue, tag, user string
		down             bool
	)
	cmd := &cobra.Command{
		Use:   "tag-vote",
		Short: "Agree (or disagree) that a tag describes a venue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.TagVote(cmd.Context(), venue, tag, user, voteDelta(down))
		},
	}
	cmd.Flags().StringVar(&venue, "venue", "", "Venue name")
	cmd.Flags().StringVar(&tag, "tag", "", "Behavior tag")
	cmd.Flags().StringVar(&user, "user", "", "Voting user id")
	cmd.Flags().BoolVar(&down, "down", false, "Vote against the tag")
	_ = cmd.MarkFlagRequired("venue")
	_ = cmd.MarkFlagRequired("tag")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func (c *cli) tagStatsCmd() *cobra.Command {
	var (
		venue  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "tag-stats",
		Short: "Show community tag votes for a venue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.TagStats(cmd.Context(), venue, asJSON)
		},
	}
	cmd.Flags().StringVar(&venue, "venue", "", "Venue name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	_ = cmd.MarkFlagRequired("venue")
	return cmd
}

func (c *cli) reclassifyCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "reclassify",
		Short: "Rerun the configured classifier over all stored reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := c.newClassifier(cmd.Context(), false)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = c.cfg.Reclassify.Workers
			}
			r := &Reclassifier{
				Reviews:    jsonl.NewReviewStore(c.cfg.ReviewsPath()),
				Classifier: classifier,
				Logger:     c.logger,
				Workers:    workers,
				MaxRetries: c.cfg.Reclassify.MaxRetries,
			}
			res, err := r.Run(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.out, "reclassified %d reviews (%d changed, %d skipped)\n",
				res.Total, res.Changed, res.Skipped)
			return err
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel workers (default from config)")
	return cmd
}
