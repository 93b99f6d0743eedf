package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/fiets-cli/internal/app"
	"github.com/glabrego/fiets-cli/internal/fiets"
	"github.com/glabrego/fiets-cli/internal/logging"
	"github.com/glabrego/fiets-cli/internal/pager"
	tuiactions "github.com/glabrego/fiets-cli/internal/tui/actions"
	tuiplatform "github.com/glabrego/fiets-cli/internal/tui/platform"
	tuistate "github.com/glabrego/fiets-cli/internal/tui/state"
	tuitheme "github.com/glabrego/fiets-cli/internal/tui/theme"
	tuiview "github.com/glabrego/fiets-cli/internal/tui/view"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenFilters
	screenForm
)

func (s screen) String() string {
	switch s {
	case screenDetail:
		return "detail"
	case screenFilters:
		return "filters"
	case screenForm:
		return "form"
	default:
		return "list"
	}
}

type clearStatusMsg struct {
	id int
}

type Options struct {
	// RequestTimeout bounds each server call; zero leaves it unbounded.
	RequestTimeout time.Duration
	Compact        bool
	Logger         logging.Logger
}

type Model struct {
	service        tuiactions.Service
	session        *pager.Session
	logger         logging.Logger
	requestTimeout time.Duration
	theme          tuitheme.Theme
	keys           keyMap
	help           help.Model
	spinner        spinner.Model

	screen       screen
	formReturn   screen
	showHelp     bool
	cursor       int
	detailTop    int
	filters      []fiets.Filter
	filterCursor int
	form         filterFormModel
	alert        string
	width        int
	height       int
	loading      bool
	status       string
	statusID     int
	statusTTL    time.Duration
	err          error
	compact      bool
	openURLFn    func(string) error
	copyURLFn    func(string) error
}

func NewModel(service tuiactions.Service, startup app.Startup, opts Options) (Model, error) {
	session, err := pager.NewSession(startup.Page)
	if err != nil {
		return Model{}, fmt.Errorf("start session: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	th := tuitheme.Default()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = th.StateLoad

	m := Model{
		service:        service,
		session:        session,
		logger:         logger.With("component", "tui"),
		requestTimeout: opts.RequestTimeout,
		theme:          th,
		keys:           defaultKeyMap(),
		help:           help.New(),
		spinner:        sp,
		filters:        startup.Filters,
		statusTTL:      3 * time.Second,
		compact:        opts.Compact,
		openURLFn:      tuiplatform.OpenURLInBrowser,
		copyURLFn:      tuiplatform.CopyURLToClipboard,
	}
	if startup.FiltersErr != nil {
		m.err = fmt.Errorf("filters unavailable: %w", startup.FiltersErr)
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.titleCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case CountsPolledMsg:
		m.session.Unread.Set(msg.Counts.UnreadCount)
		return m, m.titleCmd()
	case CountsFailedMsg:
		m.alert = "Could not refresh the unread count: " + msg.Err.Error()
		return m, nil
	case tuiactions.MarkReadDoneMsg:
		if msg.Err != nil {
			m.logger.Error("mark read request failed", "posts", msg.IDs, "err", msg.Err)
			m.alert = fmt.Sprintf("Could not mark %d posts read: %v", len(msg.IDs), msg.Err)
		}
		return m, nil
	case tuiactions.BookmarkToggledMsg:
		m.loading = false
		m.err = nil
		m.session.ApplyBookmarkToggled(msg.PostID, msg.Action)
		m.status = "Bookmark added"
		if msg.Action == pager.BookmarkRemove {
			m.status = "Bookmark removed"
		}
		cmd := m.flashStatus()
		return m, cmd
	case tuiactions.BookmarkFailedMsg:
		m.loading = false
		m.logger.Error("bookmark toggle failed", "post", msg.PostID, "action", msg.Action, "err", msg.Err)
		verb := "add the bookmark"
		if msg.Action == pager.BookmarkRemove {
			verb = "remove the bookmark"
		}
		m.alert = fmt.Sprintf("Could not %s: %v", verb, msg.Err)
		return m, nil
	case tuiactions.ReloadSuccessMsg:
		return m.applyReload(msg)
	case tuiactions.ReloadErrorMsg:
		m.loading = false
		m.status = ""
		m.err = msg.Err
		return m, nil
	case tuiactions.FiltersLoadedMsg:
		m.loading = false
		m.err = nil
		m.filters = msg.Filters
		m.filterCursor = tuistate.ClampCursor(m.filterCursor, len(m.filters))
		return m, nil
	case tuiactions.FiltersLoadErrorMsg:
		m.loading = false
		m.alert = "Could not load filters: " + msg.Err.Error()
		return m, nil
	case tuiactions.FilterSavedMsg:
		m.loading = false
		m.err = nil
		m.screen = m.formReturn
		m.status = "Filter added"
		if msg.Mode == pager.FilterEditing {
			m.status = "Filter saved"
		}
		cmd := m.flashStatus()
		if m.screen == screenFilters {
			load := m.startLoading(tuiactions.LoadFiltersCmd(m.service, m.requestTimeout))
			return m, tea.Batch(cmd, load)
		}
		return m, cmd
	case tuiactions.FilterSaveErrorMsg:
		m.loading = false
		m.alert = "Could not save filter: " + msg.Err.Error()
		return m, nil
	case tuiactions.FilterDeletedMsg:
		m.loading = false
		m.status = fmt.Sprintf("Deleted filter #%d", msg.ID)
		cmd := m.flashStatus()
		load := m.startLoading(tuiactions.LoadFiltersCmd(m.service, m.requestTimeout))
		return m, tea.Batch(cmd, load)
	case tuiactions.FilterDeleteErrorMsg:
		m.loading = false
		m.alert = fmt.Sprintf("Could not delete filter #%d: %v", msg.ID, msg.Err)
		return m, nil
	case tuiactions.OpenURLSuccessMsg:
		m.err = nil
		m.status = msg.Status
		cmd := m.flashStatus()
		return m, cmd
	case tuiactions.OpenURLErrorMsg:
		m.status = msg.Err.Error()
		cmd := m.flashStatus()
		return m, cmd
	case tuiactions.PreferenceSaveErrorMsg:
		m.err = msg.Err
		m.status = "Could not persist UI preferences"
		return m, nil
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			m.alert = ""
		}
		return m, nil
	}
	if m.screen == screenForm {
		return m.handleFormKey(msg)
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.screen {
	case screenDetail:
		return m.handleDetailKey(msg)
	case screenFilters:
		return m.handleFiltersKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := len(m.session.Window.VisiblePage())
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor = tuistate.ClampCursor(m.cursor-1, size)
	case key.Matches(msg, m.keys.Down):
		m.cursor = tuistate.ClampCursor(m.cursor+1, size)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = tuistate.ClampCursor(size-1, size)
	case key.Matches(msg, m.keys.PageUp):
		m.cursor = tuistate.ClampCursor(m.cursor-m.pageStep(), size)
	case key.Matches(msg, m.keys.PageDown):
		m.cursor = tuistate.ClampCursor(m.cursor+m.pageStep(), size)
	case key.Matches(msg, m.keys.Open):
		if _, ok := m.currentPost(); ok {
			m.screen = screenDetail
			m.detailTop = 0
		}
	case key.Matches(msg, m.keys.MarkRead):
		return m.markPageRead()
	case key.Matches(msg, m.keys.Bookmark):
		return m.toggleBookmarkCurrent()
	case key.Matches(msg, m.keys.AddFilter):
		return m.openAddFilterForm()
	case key.Matches(msg, m.keys.Filters):
		return m.openFilters()
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Browser):
		return m.openCurrentURL()
	case key.Matches(msg, m.keys.Copy):
		return m.copyCurrentURL()
	case key.Matches(msg, m.keys.Compact):
		m.compact = !m.compact
		m.err = nil
		m.status = "Compact mode: off"
		if m.compact {
			m.status = "Compact mode: on"
		}
		if m.service == nil {
			return m, nil
		}
		return m, tuiactions.SavePreferencesCmd(m.service, app.UIPreferences{Compact: m.compact})
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := len(m.session.Window.VisiblePage())
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = screenList
		m.detailTop = 0
	case key.Matches(msg, m.keys.Up):
		if m.detailTop > 0 {
			m.detailTop--
		}
	case key.Matches(msg, m.keys.Down):
		post, ok := m.currentPost()
		if !ok {
			return m, nil
		}
		maxTop := tuistate.MaxScrollTop(len(tuiview.DetailLines(post, m.contentWidth())), m.bodyHeight())
		if m.detailTop < maxTop {
			m.detailTop++
		}
	case msg.String() == "[":
		if m.cursor > 0 {
			m.cursor--
			m.detailTop = 0
		}
	case msg.String() == "]":
		if m.cursor < size-1 {
			m.cursor++
			m.detailTop = 0
		}
	case key.Matches(msg, m.keys.MarkRead):
		return m.markPageRead()
	case key.Matches(msg, m.keys.Bookmark):
		return m.toggleBookmarkCurrent()
	case key.Matches(msg, m.keys.AddFilter):
		return m.openAddFilterForm()
	case key.Matches(msg, m.keys.Browser):
		return m.openCurrentURL()
	case key.Matches(msg, m.keys.Copy):
		return m.copyCurrentURL()
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}
	return m, nil
}

func (m Model) handleFiltersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = screenList
	case key.Matches(msg, m.keys.Up):
		m.filterCursor = tuistate.ClampCursor(m.filterCursor-1, len(m.filters))
	case key.Matches(msg, m.keys.Down):
		m.filterCursor = tuistate.ClampCursor(m.filterCursor+1, len(m.filters))
	case key.Matches(msg, m.keys.Open):
		if len(m.filters) == 0 {
			return m, nil
		}
		return m.openForm(pager.NewEditFilterForm(m.filters[m.filterCursor]))
	case key.Matches(msg, m.keys.Delete):
		if len(m.filters) == 0 || m.service == nil {
			return m, nil
		}
		id := m.filters[m.filterCursor].ID
		cmd := m.startLoading(tuiactions.DeleteFilterCmd(m.service, id, m.requestTimeout))
		return m, cmd
	case key.Matches(msg, m.keys.Reload):
		if m.service == nil {
			return m, nil
		}
		cmd := m.startLoading(tuiactions.LoadFiltersCmd(m.service, m.requestTimeout))
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.screen = m.formReturn
		return m, nil
	}
	form, cmd, submit := m.form.update(msg)
	m.form = form
	if !submit || m.service == nil {
		return m, cmd
	}
	save := m.startLoading(tuiactions.SaveFilterCmd(m.service, m.form.Value(), m.requestTimeout))
	return m, tea.Batch(cmd, save)
}

// markPageRead runs the optimistic mark-read: the request is dispatched and
// the window advances at once. A failed request only raises an alert.
func (m Model) markPageRead() (tea.Model, tea.Cmd) {
	if !m.session.MarkRead.Enabled() {
		m.status = tuiview.NoMorePosts
		cmd := m.flashStatus()
		return m, cmd
	}
	var dispatch tea.Cmd
	service, timeout := m.service, m.requestTimeout
	batch, ok := m.session.MarkRead.MarkCurrentPageRead(pager.DispatcherFunc(func(ids []int64) {
		if service != nil {
			dispatch = tuiactions.MarkReadCmd(service, ids, timeout)
		}
	}))
	if !ok {
		return m, nil
	}
	m.logger.Info("page marked read", "posts", batch.IDs, "remaining", batch.Remaining, "state", batch.State)
	m.cursor = 0
	m.detailTop = 0
	m.screen = screenList
	m.err = nil
	m.status = fmt.Sprintf("Marked %d posts read", len(batch.IDs))
	flash := m.flashStatus()
	return m, tea.Batch(dispatch, m.titleCmd(), flash)
}

func (m Model) toggleBookmarkCurrent() (tea.Model, tea.Cmd) {
	post, ok := m.currentPost()
	if !ok {
		return m, nil
	}
	href, action, err := m.session.BookmarkTarget(post.ID)
	if err != nil {
		m.status = err.Error()
		cmd := m.flashStatus()
		return m, cmd
	}
	if m.service == nil {
		return m, nil
	}
	cmd := m.startLoading(tuiactions.ToggleBookmarkCmd(m.service, post.ID, href, action, m.requestTimeout))
	return m, cmd
}

func (m Model) openAddFilterForm() (tea.Model, tea.Cmd) {
	post, ok := m.currentPost()
	if !ok {
		return m, nil
	}
	return m.openForm(pager.NewAddFilterForm(post))
}

// openForm replaces whatever form was open with one for the new target.
func (m Model) openForm(form pager.FilterForm) (tea.Model, tea.Cmd) {
	m.formReturn = m.screen
	m.screen = screenForm
	m.form = newFilterFormModel(form)
	return m, m.form.urlInput.Focus()
}

func (m Model) openFilters() (tea.Model, tea.Cmd) {
	m.screen = screenFilters
	m.filterCursor = tuistate.ClampCursor(m.filterCursor, len(m.filters))
	if m.service == nil {
		return m, nil
	}
	cmd := m.startLoading(tuiactions.LoadFiltersCmd(m.service, m.requestTimeout))
	return m, cmd
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.service == nil {
		return m, nil
	}
	m.status = ""
	m.err = nil
	cmd := m.startLoading(tuiactions.ReloadCmd(m.service, m.requestTimeout))
	return m, cmd
}

// applyReload swaps in a fresh session built from the reloaded page. This is
// the only way back from an exhausted window.
func (m Model) applyReload(msg tuiactions.ReloadSuccessMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	session, err := pager.NewSession(msg.Startup.Page)
	if err != nil {
		m.alert = "Could not use the reloaded page: " + err.Error()
		return m, nil
	}
	anchorID := m.anchorPostID()
	m.session = session
	if msg.Startup.FiltersErr == nil {
		m.filters = msg.Startup.Filters
	}
	visible := session.Window.VisiblePage()
	m.cursor = tuistate.RestoreCursor(visible, anchorID, m.cursor)
	m.detailTop = 0
	if m.screen == screenDetail && len(visible) == 0 {
		m.screen = screenList
	}
	m.err = nil
	m.status = fmt.Sprintf("Reloaded %d posts in %dms", session.Window.Len(), msg.Duration.Milliseconds())
	flash := m.flashStatus()
	return m, tea.Batch(m.titleCmd(), flash)
}

func (m Model) openCurrentURL() (tea.Model, tea.Cmd) {
	post, ok := m.currentPost()
	if !ok {
		return m, nil
	}
	url, err := tuiplatform.ValidatePostURL(post.URL)
	if err != nil {
		m.status = err.Error()
		cmd := m.flashStatus()
		return m, cmd
	}
	return m, tuiactions.OpenURLCmd(url, m.openURLFn, m.copyURLFn)
}

func (m Model) copyCurrentURL() (tea.Model, tea.Cmd) {
	post, ok := m.currentPost()
	if !ok {
		return m, nil
	}
	url, err := tuiplatform.ValidatePostURL(post.URL)
	if err != nil {
		m.status = err.Error()
		cmd := m.flashStatus()
		return m, cmd
	}
	return m, tuiactions.CopyURLCmd(url, m.copyURLFn)
}

func (m *Model) startLoading(cmd tea.Cmd) tea.Cmd {
	m.loading = true
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) flashStatus() tea.Cmd {
	m.statusID++
	id := m.statusID
	return tea.Tick(m.statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) titleCmd() tea.Cmd {
	return tea.SetWindowTitle(m.session.Unread.Title())
}

func (m Model) currentPost() (fiets.Post, bool) {
	visible := m.session.Window.VisiblePage()
	if len(visible) == 0 {
		return fiets.Post{}, false
	}
	return visible[tuistate.ClampCursor(m.cursor, len(visible))], true
}

func (m Model) anchorPostID() int64 {
	if post, ok := m.currentPost(); ok {
		return post.ID
	}
	return 0
}

func (m Model) pageStep() int {
	return tuistate.PageStep(m.height, m.status != "" || m.err != nil)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) View() string {
	var b strings.Builder
	unread, hasUnread := m.session.Unread.Total()
	bookmarks, hasBookmarks := m.session.Bookmarks.Count()
	b.WriteString(tuiview.Header(m.session.Unread.Title(), optional(unread, hasUnread), optional(bookmarks, hasBookmarks), m.theme))
	b.WriteString("\n\n")

	visible := m.session.Window.VisiblePage()
	switch {
	case m.alert != "":
		b.WriteString(tuiview.Alert(m.alert, m.contentWidth(), m.theme))
		b.WriteString("\n")
	case m.showHelp:
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
		b.WriteString("\n")
	case m.screen == screenForm:
		b.WriteString(m.form.view(m.theme))
	case m.screen == screenFilters:
		b.WriteString(m.theme.Section.Render("Filters"))
		b.WriteString("\n")
		b.WriteString(tuiview.RenderFilterList(m.filters, m.filterCursor, m.contentWidth(), m.theme))
		b.WriteString(m.theme.MetaLabel.Render("enter: edit | x: delete | r: reload | esc: back"))
		b.WriteString("\n")
	case m.screen == screenDetail:
		post, ok := m.currentPost()
		if !ok {
			b.WriteString(tuiview.NoMorePosts + "\n")
			break
		}
		lines := tuiview.DetailLines(post, m.contentWidth())
		b.WriteString(tuiview.RenderDetailLines(lines, m.detailTop, m.bodyHeight()))
	default:
		cursor := tuistate.ClampCursor(m.cursor, len(visible))
		start, end := tuistate.CenteredWindow(len(visible), cursor, m.bodyHeight())
		b.WriteString(tuiview.RenderPostList(visible, start, end, cursor, m.contentWidth(), m.compact, m.theme))
		b.WriteString("\n")
		b.WriteString(tuiview.MarkReadButton(m.session.MarkRead.Label(), m.session.MarkRead.Enabled(), m.theme))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	warning := ""
	if m.err != nil {
		warning = m.err.Error()
	}
	spin := ""
	if m.loading {
		spin = m.spinner.View()
	}
	b.WriteString(tuiview.Message(m.loading, m.err != nil, m.status, warning, spin, m.theme))
	b.WriteString("\n")
	b.WriteString(tuiview.Footer(m.screen.String(), len(visible), m.session.Window.Len(), m.session.Window.PageSize(), m.theme))
	b.WriteString("\n")
	if !m.showHelp {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
		b.WriteString("\n")
	}
	return b.String()
}

func optional(n int, ok bool) *int {
	if !ok {
		return nil
	}
	return &n
}
