package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diplomas-2025/agro-market/internal/models"
)

type reviewForm struct {
	rating  int
	comment textinput.Model
}

func newReviewForm(mode cursor.Mode) *reviewForm {
	c := newInput(mode, "Comment: ", "what did you think?")
	c.CharLimit = 500
	return &reviewForm{rating: 5, comment: c}
}

func (f *reviewForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.comment, cmd = f.comment.Update(msg)
	return cmd
}

func (a *App) updateDetails(msg tea.KeyMsg) tea.Cmd {
	if a.review != nil {
		return a.updateReview(msg)
	}
	d := a.details
	if d == nil {
		return nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.Back):
		if a.nav.Back() {
			a.status = ""
			return a.enter()
		}
		return nil
	case key.Matches(msg, a.keys.Reload):
		return a.enter()
	case key.Matches(msg, a.keys.Plus):
		return a.run(kindAction, d.Increment, d.Message)
	case key.Matches(msg, a.keys.Minus):
		return a.run(kindAction, d.Decrement, d.Message)
	case key.Matches(msg, a.keys.Favorite):
		return a.run(kindAction, d.ToggleFavorite, d.Message)
	case key.Matches(msg, a.keys.Review):
		if d.CanReview() {
			a.review = newReviewForm(a.cursorMode)
			return a.review.comment.Focus()
		}
	}
	return nil
}

func (a *App) updateReview(msg tea.KeyMsg) tea.Cmd {
	f, d := a.review, a.details
	switch s := msg.String(); s {
	case "esc":
		a.review = nil
		return nil
	case "up", "right":
		f.rating = min(5, f.rating+1)
		return nil
	case "down", "left":
		f.rating = max(1, f.rating-1)
		return nil
	case "enter":
		rating, comment := f.rating, f.comment.Value()
		return a.run(kindReview, func(ctx context.Context) error { return d.AddReview(ctx, rating, comment) }, d.Message)
	default:
		// digits pick the rating directly when the comment is empty
		if n, err := strconv.Atoi(s); err == nil && f.comment.Value() == "" && n >= 1 && n <= 5 {
			f.rating = n
			return nil
		}
	}
	return f.update(msg)
}

func stars(n int) string {
	n = max(0, min(5, n))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func (a *App) viewDetails() string {
	d := a.details
	if d == nil || d.Loading() {
		return a.spinner.View() + " loading..."
	}
	p, ok := d.Product()
	if !ok {
		return mutedStyle.Render("Product is unavailable. Press esc to go back or r to retry.")
	}

	var b strings.Builder
	name := p.Name
	if p.Favorite {
		name += " ♥"
	}
	b.WriteString(titleStyle.Render(name) + "\n")
	b.WriteString(fmt.Sprintf("%s   stock %d   in cart %d\n", models.FormatPrice(p.Price), p.Stock, p.CountInCart))
	b.WriteString(mutedStyle.Render("image: "+p.ImageRef()) + "\n\n")
	if p.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(max(20, a.width-4)).Render(p.Description) + "\n\n")
	}

	reviews := d.Reviews()
	if len(reviews) == 0 {
		b.WriteString(mutedStyle.Render("No reviews yet.") + "\n")
	} else {
		b.WriteString(fmt.Sprintf("Rating %.1f (%d reviews)\n", d.AverageRating(), len(reviews)))
		for _, r := range reviews {
			b.WriteString(fmt.Sprintf("%s  %s  %s\n", stars(r.Rating), r.User.Username, mutedStyle.Render(r.CreatedAtDisplay())))
			b.WriteString("  " + r.Comment + "\n")
		}
	}

	if a.review != nil {
		form := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Your review"),
			"Rating:  "+stars(a.review.rating),
			a.review.comment.View(),
			mutedStyle.Render("←/→ rating · enter to post · esc to cancel"),
		)
		b.WriteString("\n" + boxStyle.Render(form))
	} else if d.CanReview() {
		b.WriteString("\n" + mutedStyle.Render("press w to write a review"))
	}
	return b.String()
}
