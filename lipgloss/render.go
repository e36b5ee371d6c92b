package lipgloss

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/bouncer"
)

// Renderer renders bouncer values as styled terminal text.
type Renderer struct {
	renderer *lipgloss.Renderer
	styles   bouncer.Styles
}

// NewRenderer creates a Renderer. If renderer is nil, the default lipgloss
// renderer is used.
func NewRenderer(theme bouncer.Theme, renderer *lipgloss.Renderer) *Renderer {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return &Renderer{renderer: renderer, styles: theme.Styles()}
}

// style creates a lipgloss style from a ColorPair.
func (r *Renderer) style(cp bouncer.ColorPair) lipgloss.Style {
	style := r.renderer.NewStyle()
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

func (r *Renderer) card(body string) string {
	return r.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(r.styles.Border.Foreground)).
		Padding(0, 1).
		Render(body)
}

func (r *Renderer) field(label, value string) string {
	return r.style(r.styles.Label).Render(fmt.Sprintf("%-9s", label)) + " " + value
}

// scoreBar draws the safety score as filled and empty pips.
func scoreBar(score int) string {
	score = min(max(score, 0), bouncer.MaxSafetyScore)
	return strings.Repeat("●", score) + strings.Repeat("○", bouncer.MaxSafetyScore-score)
}

func (r *Renderer) classificationLines(c bouncer.Classification) []string {
	tone := r.style(r.styles.ToneColor(c.Tone))
	return []string{
		r.field("Behavior", tone.Bold(true).Render(string(c.BehaviorType))),
		r.field("Safety", tone.Render(scoreBar(c.SafetyScore))+fmt.Sprintf(" %d/%d", c.SafetyScore, bouncer.MaxSafetyScore)),
		r.field("Tone", tone.Render(string(c.Tone))),
	}
}

// RenderClassification renders a classification preview as a bordered card.
func (r *Renderer) RenderClassification(c bouncer.Classification) string {
	return r.card(strings.Join(r.classificationLines(c), "\n"))
}

// tagLabel prefixes known tags with their emoji.
func tagLabel(t bouncer.Tag) string {
	if opt, ok := bouncer.LookupTag(string(t)); ok {
		return opt.Emoji + " " + string(opt.Label)
	}
	return string(t)
}

// RenderReview renders a stored review as a bordered card.
func (r *Renderer) RenderReview(review bouncer.Review) string {
	title := r.style(r.styles.Title).Bold(true).Padding(0, 1).Render(review.Venue)
	lines := []string{title, r.field("Rating", string(review.Rating))}
	lines = append(lines, r.classificationLines(review.Classification())...)

	if len(review.Tags) > 0 {
		labels := make([]string, len(review.Tags))
		for i, t := range review.Tags {
			labels[i] = tagLabel(t)
		}
		lines = append(lines, r.field("Tags", strings.Join(labels, ", ")))
	}
	if story := strings.TrimSpace(review.Story); story != "" {
		lines = append(lines, "", r.renderer.NewStyle().Width(60).Render(story))
	}

	muted := r.style(r.styles.Muted)
	lines = append(lines, "", muted.Render(fmt.Sprintf("%s · %s · votes %+d",
		review.ID, review.Timestamp.Format("2006-01-02 15:04"), review.VoteSum)))

	return r.card(strings.Join(lines, "\n"))
}

// RenderRanks renders a rating leaderboard. An empty list renders a
// placeholder line.
func (r *Renderer) RenderRanks(title string, ranks []bouncer.VenueRank) string {
	var b strings.Builder
	b.WriteString(r.style(r.styles.Title).Bold(true).Render(title))
	b.WriteString("\n")
	if len(ranks) == 0 {
		b.WriteString(r.style(r.styles.Muted).Render("No reviews yet"))
		return b.String()
	}
	muted := r.style(r.styles.Muted)
	for i, rank := range ranks {
		fmt.Fprintf(&b, "%2d. %s %s\n", i+1, rank.Venue, muted.Render(fmt.Sprintf("(%d)", rank.Count)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderVenues renders per-venue rating counts.
func (r *Renderer) RenderVenues(venues []bouncer.VenueCounts) string {
	if len(venues) == 0 {
		return r.style(r.styles.Muted).Render("No venues found")
	}

	width := 0
	for _, v := range venues {
		width = max(width, lipgloss.Width(v.Name))
	}

	good := r.style(r.styles.Positive)
	okay := r.style(r.styles.Mixed)
	bad := r.style(r.styles.Negative)
	muted := r.style(r.styles.Muted)

	lines := make([]string, len(venues))
	for i, v := range venues {
		pad := strings.Repeat(" ", width-lipgloss.Width(v.Name))
		lines[i] = fmt.Sprintf("%s%s  %s %s %s %s",
			v.Name, pad,
			good.Render(fmt.Sprintf("good %d", v.Good)),
			okay.Render(fmt.Sprintf("okay %d", v.Okay)),
			bad.Render(fmt.Sprintf("bad %d", v.Bad)),
			muted.Render(fmt.Sprintf("(%d total)", v.Total)),
		)
	}
	return strings.Join(lines, "\n")
}

// RenderInsights renders the insights overview as a bordered card.
func (r *Renderer) RenderInsights(in bouncer.Insights) string {
	tone := r.style(r.styles.ToneColor(bouncer.Tone(in.DominantTone)))
	if in.DominantTone == bouncer.NotAvailable {
		tone = r.style(r.styles.Muted)
	}
	lines := []string{
		r.style(r.styles.Title).Bold(true).Render("Insights"),
		r.field("Reviews", fmt.Sprint(in.TotalReviews)),
		r.field("Venue", in.MostReviewedVenue),
		r.field("Top tag", tagLabel(bouncer.Tag(in.MostFlaggedTag))),
		r.field("Tone", tone.Render(in.DominantTone)),
	}
	return r.card(strings.Join(lines, "\n"))
}

// RenderTagStats renders community tag votes for a venue.
func (r *Renderer) RenderTagStats(venue string, stats []bouncer.TagStat) string {
	var b strings.Builder
	b.WriteString(r.style(r.styles.Title).Bold(true).Render(venue))
	b.WriteString("\n")
	if len(stats) == 0 {
		b.WriteString(r.style(r.styles.Muted).Render("No tag votes yet"))
		return b.String()
	}
	muted := r.style(r.styles.Muted)
	for _, st := range stats {
		score := r.style(r.styles.Mixed)
		switch {
		case st.NetScore > 0:
			score = r.style(r.styles.Positive)
		case st.NetScore < 0:
			score = r.style(r.styles.Negative)
		}
		fmt.Fprintf(&b, "%s %s %s\n", score.Render(fmt.Sprintf("%+3d", st.NetScore)), tagLabel(st.Tag),
			muted.Render(fmt.Sprintf("(%d votes)", st.TotalVotes)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
