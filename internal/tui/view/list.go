package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/glabrego/rickmorty-cli/internal/catalog"
	tuitheme "github.com/glabrego/rickmorty-cli/internal/tui/theme"
)

const NoCharactersFound = "No characters found"

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type CharacterLineParams struct {
	Character   catalog.Character
	Liked       bool
	ShowNumbers bool
	VisiblePos  int
	Active      bool
	Width       int
}

// RenderCharacterLine draws one list row: cursor, status dot, name on the
// left and "status - species" plus the like marker on the right.
func RenderCharacterLine(p CharacterLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}

	prefix := fmt.Sprintf("  %s %s ", cursorMarker, th.StatusDot(p.Character.Status))
	if p.ShowNumbers {
		prefix = fmt.Sprintf("  %s%3d. %s ", cursorMarker, p.VisiblePos+1, th.StatusDot(p.Character.Status))
	}
	right := th.MetaValue.Render(StatusLabel(p.Character)) + " " + th.LikeMarker(p.Liked)

	available := p.Width - visibleLen(prefix) - 1 - visibleLen(right)
	if available < 1 {
		available = 1
	}
	name := strings.TrimSpace(p.Character.Name)
	if name == "" {
		name = "(unnamed)"
	}
	name = truncateRunes(name, available)

	gap := p.Width - visibleLen(prefix) - visibleLen(name) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+th.Name.Render(name)+strings.Repeat(" ", gap)+right)
}

// StatusLabel is the "Alive - Human" summary shown on cards.
func StatusLabel(c catalog.Character) string {
	status := strings.TrimSpace(c.Status)
	if status == "" {
		status = "unknown"
	}
	species := strings.TrimSpace(c.Species)
	if species == "" {
		return status
	}
	return status + " - " + species
}

type ListRenderInput struct {
	Records []catalog.Character
	Start   int
	End     int
	Cursor  int
	Query   string

	RenderLine func(index int, active bool) string
}

// RenderListBody draws rows [Start, End) or the empty-result message.
func RenderListBody(in ListRenderInput, th tuitheme.Theme) string {
	if len(in.Records) == 0 {
		if strings.TrimSpace(in.Query) != "" {
			return "  " + th.Muted.Render(NoCharactersFound) + "\n"
		}
		return ""
	}
	if in.Start < 0 || in.Start >= in.End {
		return ""
	}
	end := min(in.End, len(in.Records))

	var b strings.Builder
	for i := in.Start; i < end; i++ {
		b.WriteString(in.RenderLine(i, i == in.Cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
