package tui

import (
	"strings"

	"github.com/glabrego/rickmorty-cli/internal/browse"
	"github.com/glabrego/rickmorty-cli/internal/detail"
	tuistate "github.com/glabrego/rickmorty-cli/internal/tui/state"
	tuiview "github.com/glabrego/rickmorty-cli/internal/tui/view"
)

const appTitle = "Rick and Morty Characters"

func (m Model) View() string {
	th := m.theme
	var b strings.Builder
	if !m.inDetail {
		b.WriteString(clearPortraitSequence(m.inlineImages))
	}

	mode := "list"
	switch {
	case m.showHelp:
		mode = "help"
	case m.inDetail:
		mode = "detail"
	}
	b.WriteString(th.Title.Render(appTitle) + " " + th.ModePill.Render(mode) + "\n")

	switch {
	case m.showHelp:
		b.WriteString(th.MetaLabel.Render("? or esc to close") + "\n\n")
		b.WriteString(strings.Join(tuiview.HelpLines(), "\n"))
		b.WriteString("\n")
	case m.inDetail:
		b.WriteString(th.MetaLabel.Render(tuiview.Toolbar(true, false)) + "\n\n")
		b.WriteString(tuiview.RenderDetailLines(m.detailLines(), m.detailTop, m.detailBodyHeight()))
	default:
		b.WriteString(th.MetaLabel.Render(tuiview.Toolbar(false, m.filtering)) + "\n\n")
		if line := m.filterLine(); line != "" {
			b.WriteString(line + "\n")
		}
		b.WriteString(m.listBody())
	}

	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) filterLine() string {
	if !m.filtering && m.list.FilterQuery() == "" {
		return ""
	}
	text := m.list.FilterQuery()
	if m.filtering {
		text = m.filterInput + "_"
	}
	return m.theme.Section.Render("Filter:") + " " + m.theme.MetaValue.Render(text)
}

func (m Model) listBody() string {
	records := m.list.Records()
	if len(records) == 0 {
		switch m.list.Status() {
		case browse.StatusIdle, browse.StatusLoading:
			return "Loading characters...\n"
		case browse.StatusFailed:
			return "Could not load characters.\n"
		}
	}

	cursor := tuistate.ClampCursor(m.cursor, len(records))
	start, end := tuistate.CenteredWindow(len(records), cursor, m.listBodyHeight())
	return tuiview.RenderListBody(tuiview.ListRenderInput{
		Records: records,
		Start:   start,
		End:     end,
		Cursor:  cursor,
		Query:   m.list.FilterQuery(),
		RenderLine: func(i int, active bool) string {
			return tuiview.RenderCharacterLine(tuiview.CharacterLineParams{
				Character:   records[i],
				Liked:       m.isLiked(records[i].ID),
				ShowNumbers: m.showNumbers,
				VisiblePos:  i,
				Active:      active,
				Width:       m.contentWidth(),
			}, m.theme)
		},
	}, m.theme)
}

func (m Model) detailParams() tuiview.DetailParams {
	status, summary, err := m.enricher.State()
	return tuiview.DetailParams{
		Character: m.detailChar,
		Liked:     m.isLiked(m.detailChar.ID),
		Episode:   tuiview.EpisodeState{Status: status, Summary: summary, Err: err},
		BaseURL:   m.baseURL,
	}
}

func (m Model) detailLines() []string {
	id := m.detailChar.ID
	preview := tuiview.InlineImagePreviewState{
		Enabled: m.inlineImages,
		Loading: m.portraitLoading[id],
		Raw:     m.portraits[id],
		Err:     m.portraitErr[id],
	}
	return tuiview.DetailLines(m.detailParams(), m.contentWidth()-4, 2, wrapText, preview)
}

func (m Model) messagePanel() string {
	loading := m.list.Status() == browse.StatusLoading
	if m.inDetail {
		if status, _, _ := m.enricher.State(); status == detail.StatusLoading {
			loading = true
		}
	}
	failed := m.list.Status() == browse.StatusFailed
	return tuiview.Message(loading, failed, m.status, m.list.ErrMessage(), m.theme)
}

func (m Model) footer() string {
	return tuiview.Footer(tuiview.FooterParams{
		Page:        m.list.CurrentPage(),
		TotalPages:  m.list.TotalPages(),
		TotalCount:  m.list.TotalCount(),
		Shown:       len(m.list.Records()),
		LikedCount:  m.likedCount(),
		HasPrevious: m.list.HasPrevious(),
		HasNext:     m.list.HasNext(),
		Query:       m.list.FilterQuery(),
		Dark:        m.theme.Dark,
	}, m.theme)
}
