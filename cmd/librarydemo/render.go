package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginTop(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	detailStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)
)

func renderText(w io.Writer, steps []step) {
	for _, s := range steps {
		fmt.Fprintln(w, headingStyle.Render(s.Heading))

		if !s.Result.OK {
			fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("✗ %s (%s)", s.Result.Message, s.Result.Kind())))
			continue
		}

		fmt.Fprintln(w, successStyle.Render("✓ "+s.Result.Message))

		if lines := detailLines(s); len(lines) > 0 {
			fmt.Fprintln(w, detailStyle.Render(strings.Join(lines, "\n")))
		}
	}
}

func detailLines(s step) []string {
	lines := make([]string, 0)

	if s.Detail != nil && s.Result.Book != nil {
		lines = append(lines, s.Detail(*s.Result.Book))
	}

	if s.Detail != nil {
		for _, b := range s.Result.Books {
			lines = append(lines, s.Detail(b))
		}
	}

	for _, e := range s.Result.Events {
		lines = append(lines, fmt.Sprintf("%s  %s", e.HasOccurredAt().Format("15:04:05.000000"), e.EventType()))
	}

	return lines
}

func renderMetricNames(w io.Writer, names []string) {
	if len(names) == 0 {
		return
	}

	fmt.Fprintln(w, boxStyle.Render("metrics\n"+dimStyle.Render(strings.Join(names, "\n"))))
}

type stepView struct {
	Step    string      `json:"step"`
	OK      bool        `json:"ok"`
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
	Books   []bookView  `json:"books,omitempty"`
	Events  []eventView `json:"events,omitempty"`
}

type bookView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Year        int     `json:"year"`
	Copies      int     `json:"copies"`
	Status      string  `json:"status"`
	Kind        string  `json:"kind"`
	Format      string  `json:"format,omitempty"`
	SizeMB      float64 `json:"size_mb,omitempty"`
	Description string  `json:"description"`
}

type eventView struct {
	Type       string `json:"type"`
	OccurredAt string `json:"occurred_at"`
	IsError    bool   `json:"is_error,omitempty"`
}

func renderJSON(w io.Writer, steps []step) error {
	views := make([]stepView, 0, len(steps))

	for _, s := range steps {
		view := stepView{
			Step:    s.Heading,
			OK:      s.Result.OK,
			Message: s.Result.Message,
			Kind:    string(s.Result.Kind()),
		}

		if s.Result.Book != nil {
			view.Books = append(view.Books, toBookView(*s.Result.Book))
		}

		for _, b := range s.Result.Books {
			view.Books = append(view.Books, toBookView(b))
		}

		for _, e := range s.Result.Events {
			view.Events = append(view.Events, eventView{
				Type:       e.EventType(),
				OccurredAt: e.HasOccurredAt().Format("2006-01-02T15:04:05.000000Z07:00"),
				IsError:    e.IsErrorEvent(),
			})
		}

		views = append(views, view)
	}

	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(views)
}

func toBookView(b catalog.Book) bookView {
	view := bookView{
		ID:          b.ID().String(),
		Title:       b.Title(),
		Year:        b.Year(),
		Copies:      b.CopiesAvailable(),
		Status:      string(b.Status()),
		Kind:        string(b.Kind()),
		Description: b.Describe(),
	}

	if b.Author() != nil {
		view.Author = b.Author().FullName()
	}

	if details, ok := b.Electronic(); ok {
		view.Format = details.Format
		view.SizeMB = details.SizeMB
	}

	return view
}
