package view

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	tuitheme "github.com/glabrego/rickmorty-cli/internal/tui/theme"
)

func Toolbar(inDetail, filtering bool) string {
	if filtering {
		return "type to filter | backspace: delete | enter: keep filter | esc: clear filter"
	}
	if inDetail {
		return "j/k scroll | l like | o open | y copy image | d dark mode | esc back | ? help"
	}
	return "j/k move | enter details | n/p page | / filter | l like | d dark mode | r retry | ? help | q quit"
}

// HelpLines lists every key binding for the help overlay.
func HelpLines() []string {
	return []string{
		"Characters",
		"  j/k, up/down      move the cursor",
		"  g/G               first/last row",
		"  pgup/pgdown       jump a screen",
		"  enter             open character details",
		"  n, right          next page",
		"  p, left           previous page",
		"  /                 filter the current page by name",
		"  ctrl+l            clear the filter",
		"  N                 toggle row numbers",
		"  r                 retry the last failed load",
		"",
		"Anywhere",
		"  l                 like or unlike the selected character",
		"  d                 toggle dark mode",
		"  o                 open the first episode (or character) link",
		"  y                 copy the portrait URL",
		"  esc, backspace    back",
		"  ?                 toggle this help",
		"  q, ctrl+c         quit",
	}
}

// PageLabel renders "Page X of Y". Before the first load Y is unknown.
func PageLabel(page, totalPages int) string {
	if totalPages <= 0 {
		return fmt.Sprintf("Page %d", page)
	}
	return fmt.Sprintf("Page %d of %d", page, totalPages)
}

type FooterParams struct {
	Page        int
	TotalPages  int
	TotalCount  int
	Shown       int
	LikedCount  int
	HasPrevious bool
	HasNext     bool
	Query       string
	Dark        bool
}

func Footer(p FooterParams, th tuitheme.Theme) string {
	prev := th.MetaLabel.Render("‹ prev")
	if p.HasPrevious {
		prev = th.MetaValue.Render("‹ prev")
	}
	next := th.MetaLabel.Render("next ›")
	if p.HasNext {
		next = th.MetaValue.Render("next ›")
	}

	parts := []string{
		prev + " " + th.Count.Render(PageLabel(p.Page, p.TotalPages)) + " " + next,
		th.MetaValue.Render(humanize.Comma(int64(p.TotalCount)) + " characters"),
		th.MetaValue.Render(fmt.Sprintf("%d shown", p.Shown)),
		th.Liked.Render("♥") + " " + th.MetaValue.Render(fmt.Sprintf("%d liked", p.LikedCount)),
	}
	if q := strings.TrimSpace(p.Query); q != "" {
		parts = append(parts, th.MetaLabel.Render("filter")+" "+th.MetaValue.Render(fmt.Sprintf("%q", q)))
	}
	mode := "light"
	if p.Dark {
		mode = "dark"
	}
	parts = append(parts, th.ModePill.Render(mode))
	return strings.Join(parts, " • ")
}

// Message is the status line: a colored state label then the text to show.
func Message(loading, failed bool, status, errMsg string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if failed {
		state = "error"
	}
	main := "Ready"
	switch {
	case status != "":
		main = status
	case failed && errMsg != "":
		main = errMsg
	case loading:
		main = "Loading..."
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "error":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
