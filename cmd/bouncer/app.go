package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/bouncer"
	"github.com/fwojciec/bouncer/lipgloss"
	"go.uber.org/zap"
)

// App encapsulates the command logic for testing.
type App struct {
	Out        io.Writer
	Classifier bouncer.Classifier
	Reviews    bouncer.ReviewStore
	TagVotes   bouncer.TagVoteStore
	Renderer   *lipgloss.Renderer
	Logger     *zap.Logger
	// Clipboard receives the id of submitted reviews when requested.
	Clipboard bouncer.Clipboard
	// Now returns the submission time. If nil, time.Now is used.
	Now func() time.Time
}

// ReviewRequest carries the raw fields of a review as typed by the user.
type ReviewRequest struct {
	Venue  string
	Rating string
	Tags   []string
	Story  string
	JSON   bool
	// Copy puts the id of a submitted review on the clipboard.
	Copy bool
}

// session fills a draft from req.
func (req ReviewRequest) session() (*bouncer.Session, error) {
	rating, err := bouncer.ParseRating(req.Rating)
	if err != nil {
		return nil, err
	}

	s := bouncer.NewSession()
	s.SetVenue(req.Venue)
	s.SetRating(rating)
	s.SetStory(req.Story)

	selected := bouncer.NewTagSet()
	for _, label := range req.Tags {
		tag, err := bouncer.ParseTag(label)
		if err != nil {
			return nil, err
		}
		if !selected.Has(tag) {
			selected[tag] = struct{}{}
			s.ToggleTag(tag)
		}
	}
	return s, nil
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) println(s string) error {
	_, err := fmt.Fprintln(a.Out, s)
	return err
}

// Classify previews the classification of a draft review.
func (a *App) Classify(ctx context.Context, req ReviewRequest) error {
	s, err := req.session()
	if err != nil {
		return err
	}

	result, err := s.Preview(ctx, a.Classifier)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	if req.JSON {
		return a.writeJSON(result)
	}
	return a.println(a.Renderer.RenderClassification(*result))
}

// Submit classifies and stores a review, then prints its id.
func (a *App) Submit(ctx context.Context, req ReviewRequest) error {
	s, err := req.session()
	if err != nil {
		return err
	}

	review, err := s.Finalize(ctx, a.Classifier, a.now())
	if err != nil {
		return err
	}
	if err := a.Reviews.Save(ctx, *review); err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	s.Reset()

	a.Logger.Info("review saved",
		zap.String("id", review.ID),
		zap.String("venue", review.Venue),
		zap.String("behavior", string(review.BehaviorType)),
		zap.Int("safety_score", review.SafetyScore))

	if req.Copy {
		a.copyID(review.ID)
	}

	if req.JSON {
		return a.writeJSON(review)
	}
	return a.println(review.ID)
}

// copyID is best-effort: the review is already stored.
func (a *App) copyID(id string) {
	if a.Clipboard == nil {
		a.Logger.Warn("clipboard unavailable, review id not copied")
		return
	}
	if err := a.Clipboard.Copy(id); err != nil {
		a.Logger.Warn("failed to copy review id", zap.Error(err))
	}
}

// Show prints the stored review with the given id.
func (a *App) Show(ctx context.Context, id string, asJSON bool) error {
	reviews, err := a.Reviews.List(ctx)
	if err != nil {
		return fmt.Errorf("list reviews: %w", err)
	}

	for _, review := range reviews {
		if review.ID != id {
			continue
		}
		if asJSON {
			return a.writeJSON(review)
		}
		return a.println(a.Renderer.RenderReview(review))
	}
	return fmt.Errorf("%w: %s", bouncer.ErrReviewNotFound, id)
}

// Rank prints the venues with the most reviews of the given rating.
func (a *App) Rank(ctx context.Context, rating string, limit int, asJSON bool) error {
	r, err := bouncer.ParseRating(rating)
	if err != nil {
		return err
	}
	if !r.IsValid() {
		return bouncer.ErrMissingRating
	}

	reviews, err := a.Reviews.List(ctx)
	if err != nil {
		return fmt.Errorf("list reviews: %w", err)
	}

	ranks := bouncer.TopVenuesByRating(reviews, r, limit)
	if asJSON {
		return a.writeJSON(ranks)
	}
	return a.println(a.Renderer.RenderRanks("Top "+string(r), ranks))
}

// VenuesRequest selects and orders the venue summary.
type VenuesRequest struct {
	Query  string
	Sort   string
	Rating string
	Tag    string
	JSON   bool
}

// Venues prints per-venue rating counts.
func (a *App) Venues(ctx context.Context, req VenuesRequest) error {
	var filter bouncer.ReviewFilter
	var err error
	if filter.Rating, err = bouncer.ParseRating(req.Rating); err != nil {
		return err
	}
	if req.Tag != "" {
		if filter.Tag, err = bouncer.ParseTag(req.Tag); err != nil {
			return err
		}
	}
	sortBy, err := bouncer.ParseRating(req.Sort)
	if err != nil {
		return err
	}

	reviews, err := a.Reviews.List(ctx)
	if err != nil {
		return fmt.Errorf("list reviews: %w", err)
	}

	venues := bouncer.SummarizeVenues(bouncer.FilterReviews(reviews, filter))
	venues = bouncer.FilterVenues(venues, req.Query)
	if sortBy != bouncer.RatingNone {
		venues = bouncer.SortVenues(venues, sortBy)
	}

	if req.JSON {
		return a.writeJSON(venues)
	}
	return a.println(a.Renderer.RenderVenues(venues))
}

// Insights prints an overview of all reviews.
func (a *App) Insights(ctx context.Context, asJSON bool) error {
	reviews, err := a.Reviews.List(ctx)
	if err != nil {
		return fmt.Errorf("list reviews: %w", err)
	}

	insights := bouncer.ComputeInsights(reviews)
	if asJSON {
		return a.writeJSON(insights)
	}
	return a.println(a.Renderer.RenderInsights(insights))
}

// Vote up- or down-votes a review and prints its new vote sum.
func (a *App) Vote(ctx context.Context, id string, delta int) error {
	sum, err := a.Reviews.Vote(ctx, id, delta)
	if err != nil {
		return err
	}
	a.Logger.Debug("review voted", zap.String("id", id), zap.Int("delta", delta), zap.Int("vote_sum", sum))
	_, err = fmt.Fprintf(a.Out, "%s %+d\n", id, sum)
	return err
}

// TagVote records a user's vote on a venue tag and prints the tag's net score.
func (a *App) TagVote(ctx context.Context, venue, label, userID string, delta int) error {
	tag, err := bouncer.ParseTag(label)
	if err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("tag vote: user id is required")
	}

	net, err := a.TagVotes.VoteTag(ctx, venue, tag, userID, delta)
	if err != nil {
		return err
	}
	a.Logger.Debug("tag voted",
		zap.String("venue", venue),
		zap.String("tag", string(tag)),
		zap.String("user", userID),
		zap.Int("net_score", net))
	_, err = fmt.Fprintf(a.Out, "%s %+d\n", tag, net)
	return err
}

// TagStats prints community tag votes for a venue.
func (a *App) TagStats(ctx context.Context, venue string, asJSON bool) error {
	stats, err := a.TagVotes.TagStats(ctx, venue)
	if err != nil {
		return fmt.Errorf("tag stats: %w", err)
	}
	if asJSON {
		return a.writeJSON(stats)
	}
	return a.println(a.Renderer.RenderTagStats(venue, stats))
}
