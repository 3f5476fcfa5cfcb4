package usecase

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
	"github.com/m-mizutani/pushbell/pkg/domain/model"
)

const (
	// Pushes with more commits than this are truncated
	maxListedCommits = 10
	// Commits listed when truncating, leaving room for the "+N more" line
	truncatedCommits = 9
)

// Formatter builds the notification text for a push event
type Formatter struct {
	markup interfaces.Markup
}

// NewFormatter creates a Formatter rendering with the given markup
func NewFormatter(markup interfaces.Markup) *Formatter {
	return &Formatter{markup: markup}
}

// Format renders a push event. shortLink is an optional shortened form of
// ev.LinkTarget(); when set it replaces the "Compare" link and, for single
// commit pushes, is appended as a link to the commit.
func (f *Formatter) Format(ev *model.PushEvent, shortLink string) *model.FormattedMessage {
	m := f.markup
	var b strings.Builder

	if ev.Actor.ProfileURL != "" {
		b.WriteString(m.Link(ev.Actor.ProfileURL, ev.Actor.Name))
	} else {
		b.WriteString(m.Bold(ev.Actor.Name))
	}

	total := len(ev.Commits)
	if total == 1 {
		b.WriteString(" pushed to ")
	} else {
		fmt.Fprintf(&b, " pushed %d commits to ", total)
	}

	if !ev.IsDefaultBranch() {
		b.WriteString("branch ")
		if ev.Repository.URL != "" {
			b.WriteString(m.Link(ev.Repository.TreeURL(ev.BranchPath()), ev.Branch()))
		} else {
			b.WriteString(m.Bold(ev.Branch()))
		}
		b.WriteString(" on ")
	}

	if ev.Repository.URL != "" {
		b.WriteString(m.Link(ev.Repository.URL, ev.Repository.FullName))
	} else {
		b.WriteString(m.Bold(ev.Repository.FullName))
	}

	shown := total
	if total > maxListedCommits {
		shown = truncatedCommits
	}
	for _, c := range ev.Commits[:shown] {
		b.WriteString("\n")
		b.WriteString(m.Link(c.URL, c.ShortID()))
		b.WriteString(" ")
		b.WriteString(m.Escape(c.Title()))
	}
	if shown < total {
		fmt.Fprintf(&b, "\n+%d more", total-shown)
	}

	switch {
	case shortLink != "":
		b.WriteString("\n")
		b.WriteString(m.Link(shortLink, stripScheme(shortLink)))
	case total > 1 && ev.Compare != "":
		b.WriteString("\n")
		b.WriteString(m.Link(ev.Compare, "Compare"))
	}

	return &model.FormattedMessage{
		Text:      b.String(),
		ParseMode: m.ParseMode(),
	}
}

func stripScheme(url string) string {
	if _, rest, found := strings.Cut(url, "://"); found {
		return rest
	}
	return url
}
