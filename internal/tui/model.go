package tui

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/glabrego/rickmorty-cli/internal/browse"
	"github.com/glabrego/rickmorty-cli/internal/catalog"
	"github.com/glabrego/rickmorty-cli/internal/detail"
	"github.com/glabrego/rickmorty-cli/internal/logging"
	"github.com/glabrego/rickmorty-cli/internal/tui/actions"
	"github.com/glabrego/rickmorty-cli/internal/tui/platform"
	tuistate "github.com/glabrego/rickmorty-cli/internal/tui/state"
	tuitheme "github.com/glabrego/rickmorty-cli/internal/tui/theme"
	tuiview "github.com/glabrego/rickmorty-cli/internal/tui/view"
)

type Service = actions.Service

type DarkModeStore interface {
	Get() bool
	Toggle() (bool, error)
	Subscribe(fn func(bool)) func()
}

type LikeStore interface {
	IsLiked(characterID string) bool
	ToggleLiked(characterID string) (bool, error)
	LikedIDs() ([]string, error)
	Subscribe(fn func(id string, liked bool)) func()
}

type Options struct {
	BaseURL      string
	FetchTimeout time.Duration
	InlineImages bool
	Logger       *zap.Logger
}

type clearStatusMsg struct {
	id int
}

type Model struct {
	service  Service
	darkMode DarkModeStore
	likes    LikeStore
	log      *zap.Logger

	list     *browse.Controller
	enricher *detail.Enricher
	theme    tuitheme.Theme
	liked    map[string]bool

	cursor      int
	selectedID  int
	inDetail    bool
	detailChar  catalog.Character
	detailTop   int
	showHelp    bool
	showNumbers bool
	filtering   bool
	filterInput string

	width    int
	height   int
	status   string
	statusID int

	baseURL      string
	fetchTimeout time.Duration
	openURLFn    func(string) error
	copyURLFn    func(string) error

	inlineImages    bool
	renderImageFn   func(context.Context, string, int) (string, error)
	portraits       map[int]string
	portraitErr     map[int]string
	portraitLoading map[int]bool

	events chan tea.Msg
	unsubs []func()
}

func NewModel(service Service, darkMode DarkModeStore, likes LikeStore, opts Options) Model {
	m := Model{
		service:         service,
		darkMode:        darkMode,
		likes:           likes,
		log:             logging.OrNop(opts.Logger),
		list:            browse.NewController(),
		enricher:        detail.NewEnricher(),
		liked:           make(map[string]bool),
		baseURL:         opts.BaseURL,
		fetchTimeout:    opts.FetchTimeout,
		openURLFn:       platform.OpenInBrowser,
		copyURLFn:       platform.CopyToClipboard,
		inlineImages:    opts.InlineImages,
		renderImageFn:   renderPortrait,
		portraits:       make(map[int]string),
		portraitErr:     make(map[int]string),
		portraitLoading: make(map[int]bool),
		events:          make(chan tea.Msg, 32),
	}

	dark := false
	if darkMode != nil {
		dark = darkMode.Get()
		m.unsubs = append(m.unsubs, darkMode.Subscribe(func(v bool) {
			m.publish(actions.DarkModeChangedMsg{Dark: v})
		}))
	}
	m.theme = tuitheme.For(dark)

	if likes != nil {
		ids, err := likes.LikedIDs()
		if err != nil {
			m.log.Warn("load liked characters failed", zap.Error(err))
		}
		for _, id := range ids {
			m.liked[id] = true
		}
		m.unsubs = append(m.unsubs, likes.Subscribe(func(id string, v bool) {
			m.publish(actions.LikeChangedMsg{CharacterID: id, Liked: v})
		}))
	}
	return m
}

func renderPortrait(ctx context.Context, imageURL string, width int) (string, error) {
	return tuiview.RenderPortrait(ctx, &http.Client{Timeout: 8 * time.Second}, imageURL, width)
}

// publish never blocks the store that is notifying. A dropped event only
// delays a redraw; the toggled messages carry the same state.
func (m Model) publish(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
		m.log.Debug("preference event dropped")
	}
}

// Close detaches the model from the preference stores.
func (m Model) Close() {
	for _, unsub := range m.unsubs {
		unsub()
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{actions.WaitForPreferenceChange(m.events)}
	if m.service != nil {
		req, _ := m.list.GoToPage(1)
		cmds = append(cmds, actions.FetchPageCmd(m.service, req, m.fetchTimeout))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case actions.PageLoadedMsg:
		if !m.list.Apply(msg.Response) {
			m.log.Debug("stale page response dropped", zap.Int("page", msg.Response.Page), zap.Uint64("seq", msg.Response.Seq))
			return m, nil
		}
		if msg.Response.Err != nil {
			m.status = ""
			return m, nil
		}
		m.cursor = 0
		m.restoreSelection()
		m.status = ""
		return m, nil
	case actions.EpisodeLoadedMsg:
		if !m.enricher.Apply(msg.Response) {
			m.log.Debug("stale episode response dropped", zap.Int("character_id", msg.Response.CharacterID))
		}
		return m, nil
	// Notifications can trail a toggle made in this loop, so the store's
	// current value wins over the one carried by the message.
	case actions.DarkModeChangedMsg:
		if m.darkMode != nil {
			m.theme = tuitheme.For(m.darkMode.Get())
		}
		return m, actions.WaitForPreferenceChange(m.events)
	case actions.LikeChangedMsg:
		if m.likes != nil {
			m.liked[msg.CharacterID] = m.likes.IsLiked(msg.CharacterID)
		}
		return m, actions.WaitForPreferenceChange(m.events)
	case actions.PortraitLoadedMsg:
		delete(m.portraitLoading, msg.CharacterID)
		if msg.Err != nil {
			m.portraitErr[msg.CharacterID] = msg.Err.Error()
			return m, nil
		}
		delete(m.portraitErr, msg.CharacterID)
		m.portraits[msg.CharacterID] = msg.Raw
		return m, nil
	case actions.OpenURLSuccessMsg:
		m.status = msg.Status
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case actions.OpenURLErrorMsg:
		m.status = msg.Err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "esc":
			m.showHelp = false
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.inDetail {
		return m.handleDetailKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.moveCursorBy(-1)
	case "down", "j":
		m.moveCursorBy(1)
	case "g":
		m.moveCursorTo(0)
	case "G":
		m.moveCursorTo(len(m.list.Records()) - 1)
	case "pgup", "ctrl+b":
		m.moveCursorBy(-tuistate.PageStep(m.height, m.status != ""))
	case "pgdown", "ctrl+f":
		m.moveCursorBy(tuistate.PageStep(m.height, m.status != ""))
	case "enter":
		return m.openDetail()
	case "n", "right":
		req, ok := m.list.NextPage()
		return m, m.fetchPage(req, ok)
	case "p", "left":
		req, ok := m.list.PreviousPage()
		return m, m.fetchPage(req, ok)
	case "r":
		req, ok := m.list.Retry()
		if !ok {
			req, ok = m.list.GoToPage(m.list.CurrentPage())
		}
		return m, m.fetchPage(req, ok)
	case "/":
		m.filtering = true
		m.filterInput = m.list.FilterQuery()
	case "ctrl+l":
		m.applyFilter("")
	case "N":
		m.showNumbers = !m.showNumbers
	case "l":
		if c, ok := m.currentCharacter(); ok {
			cmd := m.toggleLike(c)
			return m, cmd
		}
	case "d":
		cmd := m.toggleDarkMode()
		return m, cmd
	case "o":
		if c, ok := m.currentCharacter(); ok {
			return m.openLink(c.URL)
		}
	case "y":
		if c, ok := m.currentCharacter(); ok {
			return m.copyImageURL(c)
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.closeDetail()
		return m, nil
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.detailTop > 0 {
			m.detailTop--
		}
	case "down", "j":
		maxTop := tuiview.DetailMaxTop(len(m.detailLines()), m.detailBodyHeight())
		if m.detailTop < maxTop {
			m.detailTop++
		}
	case "l":
		cmd := m.toggleLike(m.detailChar)
		return m, cmd
	case "d":
		cmd := m.toggleDarkMode()
		return m, cmd
	case "o":
		links := tuiview.DetailLinks(m.detailParams())
		if len(links) == 0 {
			return m, nil
		}
		return m.openLink(links[0].URL)
	case "y":
		return m.copyImageURL(m.detailChar)
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.filtering = false
		m.applyFilter("")
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyBackspace:
		if m.filterInput != "" {
			_, size := utf8.DecodeLastRuneInString(m.filterInput)
			m.applyFilter(m.filterInput[:len(m.filterInput)-size])
		}
	case tea.KeySpace:
		m.applyFilter(m.filterInput + " ")
	case tea.KeyRunes:
		m.applyFilter(m.filterInput + string(msg.Runes))
	}
	return m, nil
}

func (m *Model) applyFilter(q string) {
	m.filterInput = q
	m.list.SetFilter(q)
	m.restoreSelection()
}

func (m Model) fetchPage(req browse.Request, ok bool) tea.Cmd {
	if !ok || m.service == nil {
		return nil
	}
	return actions.FetchPageCmd(m.service, req, m.fetchTimeout)
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	c, ok := m.currentCharacter()
	if !ok {
		return m, nil
	}
	m.inDetail = true
	m.detailChar = c
	m.detailTop = 0
	m.selectedID = c.ID

	var cmds []tea.Cmd
	if req, ok := m.enricher.Open(c); ok && m.service != nil {
		cmds = append(cmds, actions.FetchEpisodeCmd(m.service, req, m.fetchTimeout))
	}
	if cmd := m.ensurePortraitCmd(c); cmd != nil {
		cmds = append(cmds, cmd)
	}
	switch len(cmds) {
	case 0:
		return m, nil
	case 1:
		return m, cmds[0]
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) closeDetail() {
	m.inDetail = false
	m.detailTop = 0
	m.enricher.Close()
}

func (m *Model) ensurePortraitCmd(c catalog.Character) tea.Cmd {
	if !m.inlineImages || m.renderImageFn == nil || strings.TrimSpace(c.Image) == "" {
		return nil
	}
	if _, ok := m.portraits[c.ID]; ok {
		return nil
	}
	if m.portraitLoading[c.ID] {
		return nil
	}
	m.portraitLoading[c.ID] = true
	delete(m.portraitErr, c.ID)
	return actions.PortraitCmd(c.ID, c.Image, min(m.contentWidth(), 60), m.renderImageFn)
}

// clearPortraitSequence removes kitty images left behind by the detail
// screen; plain text redraws do not erase them.
func clearPortraitSequence(inline bool) string {
	if !inline || !tuiview.SupportsKittyGraphics() {
		return ""
	}
	return tuiview.ClearKittyGraphicsSequence()
}

// toggleLike writes through to the store from the update loop, so
// repeated presses apply in key order.
func (m *Model) toggleLike(c catalog.Character) tea.Cmd {
	if m.likes == nil {
		return nil
	}
	id := strconv.Itoa(c.ID)
	liked, err := m.likes.ToggleLiked(id)
	m.liked[id] = liked
	switch {
	case err != nil:
		m.status = "Could not save like: " + err.Error()
	case liked:
		m.status = "Liked " + c.Name
	default:
		m.status = "Unliked " + c.Name
	}
	m.statusID++
	return clearStatusCmd(m.statusID, 3*time.Second)
}

func (m *Model) toggleDarkMode() tea.Cmd {
	if m.darkMode == nil {
		return nil
	}
	dark, err := m.darkMode.Toggle()
	m.theme = tuitheme.For(dark)
	switch {
	case err != nil:
		m.status = "Could not save dark mode: " + err.Error()
	case dark:
		m.status = "Dark mode: on"
	default:
		m.status = "Dark mode: off"
	}
	m.statusID++
	return clearStatusCmd(m.statusID, 3*time.Second)
}

func (m Model) openLink(raw string) (tea.Model, tea.Cmd) {
	link, err := platform.ValidateLink(raw)
	if err != nil {
		m.status = err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	}
	return m, actions.OpenURLCmd(link, m.openURLFn, m.copyURLFn)
}

func (m Model) copyImageURL(c catalog.Character) (tea.Model, tea.Cmd) {
	link, err := platform.ValidateLink(c.Image)
	if err != nil {
		m.status = "Character has no image URL"
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	}
	return m, actions.CopyURLCmd(link, m.copyURLFn)
}

func (m Model) currentCharacter() (catalog.Character, bool) {
	records := m.list.Records()
	if len(records) == 0 {
		return catalog.Character{}, false
	}
	return records[tuistate.ClampCursor(m.cursor, len(records))], true
}

func (m *Model) moveCursorBy(delta int) {
	m.moveCursorTo(m.cursor + delta)
}

func (m *Model) moveCursorTo(pos int) {
	records := m.list.Records()
	m.cursor = tuistate.ClampCursor(pos, len(records))
	if len(records) > 0 {
		m.selectedID = records[m.cursor].ID
	}
}

// restoreSelection keeps the cursor on the previously selected character
// when it is still visible, and clamps it otherwise.
func (m *Model) restoreSelection() {
	records := m.list.Records()
	if idx := tuistate.IndexOfCharacter(records, m.selectedID); idx >= 0 {
		m.cursor = idx
		return
	}
	m.moveCursorTo(m.cursor)
}

func (m Model) isLiked(id int) bool {
	return m.liked[strconv.Itoa(id)]
}

func (m Model) likedCount() int {
	n := 0
	for _, v := range m.liked {
		if v {
			n++
		}
	}
	return n
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width - 1
	}
	return 100
}

func (m Model) listBodyHeight() int {
	if m.height > 0 {
		used := 8
		if m.filtering || m.list.FilterQuery() != "" {
			used++
		}
		if h := m.height - used; h > 3 {
			return h
		}
	}
	return 20
}

func (m Model) detailBodyHeight() int {
	if m.height > 0 {
		if h := m.height - 7; h > 3 {
			return h
		}
	}
	return 16
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	out := make([]string, 0, 2)
	line := ""
	for _, word := range words {
		for utf8.RuneCountInString(word) > width {
			if line != "" {
				out = append(out, line)
				line = ""
			}
			runes := []rune(word)
			out = append(out, string(runes[:width]))
			word = string(runes[width:])
		}
		if line == "" {
			line = word
			continue
		}
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width {
			line += " " + word
			continue
		}
		out = append(out, line)
		line = word
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}
