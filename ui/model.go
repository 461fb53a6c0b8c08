package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/galtui/gallery"
	"github.com/qyinm/galtui/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const closeLabel = "[x] close"

type cacheClearSource interface {
	ClearCache()
}

// Model is the main TUI model
type Model struct {
	source     types.CatalogSource
	controller *gallery.Controller
	surface    *surface
	list       list.Model
	search     textinput.Model
	spinner    spinner.Model
	help       help.Model
	keys       keyMap
	pages      []types.PageContext
	width      int
	height     int
	loading    bool
	requestID  int
	err        error
	statusMsg  string
	showHelp   bool
	copy       func(string) error
}

// NewModel creates a new Model reading from source. The first load
// starts from Init.
func NewModel(source types.CatalogSource, opts gallery.Options) Model {
	s := &surface{}
	controller := gallery.NewController(source, gallery.Surface{Container: s, Modal: s}, opts)

	// Create list with custom thumbnail delegate
	l := list.New([]list.Item{}, ThumbnailDelegate{}, 0, 0)
	l.Title = "Gallery"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = TitleStyle

	// Create search input
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "search tags"
	in.PromptStyle = SearchPromptStyle
	in.TextStyle = SearchTextStyle

	// Create spinner
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	// Create help
	h := help.New()
	h.Styles.ShortKey = HelpKeyStyle
	h.Styles.ShortDesc = HelpDescStyle
	h.Styles.FullKey = HelpKeyStyle
	h.Styles.FullDesc = HelpDescStyle

	return Model{
		source:     source,
		controller: controller,
		surface:    s,
		list:       l,
		search:     in,
		spinner:    sp,
		help:       h,
		keys:       keys,
		loading:    true,
		requestID:  1,
		statusMsg:  "Loading...",
		copy:       clipboard.WriteAll,
	}
}

// Controller returns the gallery controller behind the model
func (m Model) Controller() *gallery.Controller { return m.controller }

// Init starts the first catalog load
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchCatalog(m.controller, m.requestID), m.spinner.Tick)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogMsg:
		if msg.requestID != m.requestID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.controller.ReportLoadError(msg.err)
			m.err = msg.err
			m.statusMsg = "Could not load the catalog"
			return m, nil
		}
		m.err = nil
		view := m.controller.Apply(msg.catalog)
		m.pages = pagesFor(msg.catalog, view.Page)
		m.syncList()
		m.statusMsg = fmt.Sprintf("%d images", len(view.Rendered))
		return m, nil

	case CatalogChangedMsg:
		cmd := m.reload(true)
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			m.statusMsg = "Copy failed: " + msg.err.Error()
		} else {
			m.statusMsg = "Copied " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}
	if m.controller.Modal().IsOpen() {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.list.SelectedItem().(thumbItem); ok {
			m.controller.Activate(item.thumb.Index)
		}
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		cmd := m.switchPage(1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevPage):
		cmd := m.switchPage(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.reload(true)
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.resizePanes()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applySearch()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.controller.Key(gallery.KeyCancel)
	case key.Matches(msg, m.keys.Prev):
		m.controller.Key(gallery.KeyPrev)
		m.selectCurrent()
	case key.Matches(msg, m.keys.Next):
		m.controller.Key(gallery.KeyNext)
		m.selectCurrent()
	case key.Matches(msg, m.keys.Close):
		m.controller.Click(gallery.TargetClose)
	case key.Matches(msg, m.keys.Copy):
		if src := m.controller.Modal().Source(); src != "" {
			return m, copyPath(m.copy, src)
		}
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.controller.Modal().IsOpen() {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	m.controller.Click(m.hitTest(msg.X, msg.Y))
	return m, nil
}

// hitTest maps a screen cell to the modal element under it.
func (m Model) hitTest(x, y int) gallery.Target {
	x0, y0, w, h := m.modalRect()
	if x < x0 || x >= x0+w || y < y0 || y >= y0+h {
		return gallery.TargetBackdrop
	}
	// the close control sits at the right end of the first content row
	closeEnd := x0 + w - 1 - ModalStyle.GetPaddingRight()
	if y == y0+1 && x >= closeEnd-lipgloss.Width(closeLabel) && x < closeEnd {
		return gallery.TargetClose
	}
	return gallery.TargetContent
}

// modalRect returns the position and size of the centered modal box.
func (m Model) modalRect() (x, y, w, h int) {
	box := m.modalBox()
	w, h = lipgloss.Width(box), lipgloss.Height(box)
	return (m.width - w) / 2, (m.height - h) / 2, w, h
}

// reload starts a new fetch; responses to older requests are dropped.
func (m *Model) reload(clearCache bool) tea.Cmd {
	if clearCache {
		if clearable, ok := m.source.(cacheClearSource); ok {
			clearable.ClearCache()
		}
	}
	m.requestID++
	m.loading = true
	m.statusMsg = "Loading..."
	return tea.Batch(fetchCatalog(m.controller, m.requestID), m.spinner.Tick)
}

// switchPage navigates to the neighbouring page of the tab bar.
func (m *Model) switchPage(delta int) tea.Cmd {
	if len(m.pages) == 0 {
		return nil
	}
	current := m.controller.Page()
	idx := 0
	for i, p := range m.pages {
		if p == current {
			idx = i
			break
		}
	}
	next := m.pages[((idx+delta)%len(m.pages)+len(m.pages))%len(m.pages)]
	m.controller.Navigate(gallery.PagePath(next))
	return m.reload(false)
}

func (m *Model) applySearch() {
	m.controller.Search(m.search.Value())
	m.syncList()
}

// syncList copies the visible thumbnails of the surface into the list.
func (m *Model) syncList() {
	if !m.surface.dirty {
		return
	}
	thumbs := m.surface.visibleThumbs()
	items := make([]list.Item, len(thumbs))
	for i, t := range thumbs {
		items[i] = thumbItem{thumb: t}
	}
	m.list.SetItems(items)
	if m.list.Index() >= len(items) {
		m.list.ResetSelected()
	}
	m.surface.dirty = false
}

// selectCurrent moves the list cursor to the image shown by the modal.
func (m *Model) selectCurrent() {
	idx := m.controller.Modal().Index()
	for i, it := range m.list.Items() {
		if t, ok := it.(thumbItem); ok && t.thumb.Index == idx {
			m.list.Select(i)
			return
		}
	}
}

// View renders the current view
func (m Model) View() string {
	if m.controller.Modal().IsOpen() {
		box := m.modalBox()
		if m.width == 0 || m.height == 0 {
			return box
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
			lipgloss.WithWhitespaceChars("░"),
			lipgloss.WithWhitespaceForeground(DraculaComment))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabBar(),
		m.searchBar(),
		m.list.View(),
		m.statusBar(),
		m.helpView(),
	)
}

func (m Model) tabBar() string {
	current := m.controller.Page()
	tabs := make([]string, 0, len(m.pages))
	for _, p := range m.pages {
		if p == current {
			tabs = append(tabs, ActiveTabStyle.Render(pageTitle(p)))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(pageTitle(p)))
		}
	}
	if len(tabs) == 0 {
		tabs = append(tabs, ActiveTabStyle.Render(pageTitle(current)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) searchBar() string {
	if m.search.Focused() || m.search.Value() != "" {
		return m.search.View()
	}
	return StatusBarStyle.Render("press / to search tags")
}

func (m Model) statusBar() string {
	if m.loading {
		return m.spinner.View() + StatusBarStyle.Render(" Loading catalog...")
	}
	if m.err != nil {
		return ErrorStyle.Render("Error: " + m.err.Error())
	}
	parts := []string{m.statusMsg, "page: " + string(m.controller.Page())}
	view := m.controller.View()
	if view.Term != "" {
		parts = append(parts, fmt.Sprintf("%d match %q", len(view.VisibleIndexes()), view.Term))
	}
	return StatusBarStyle.Render(strings.Join(parts, " · "))
}

func (m Model) helpView() string {
	if m.showHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// modalBox renders the full-image viewer.
func (m Model) modalBox() string {
	thumb, ok := m.controller.Current()
	if !ok {
		return ""
	}
	inner := m.modalInnerWidth()

	// position among the images the user can step through
	visible := m.controller.View().VisibleIndexes()
	pos := 0
	for i, idx := range visible {
		if idx == thumb.Index {
			pos = i + 1
			break
		}
	}
	title := fmt.Sprintf("Image %d of %d", pos, len(visible))
	if pos == 0 {
		title = fmt.Sprintf("Image %d (hidden by search)", thumb.Index+1)
	}
	gap := inner - lipgloss.Width(title) - lipgloss.Width(closeLabel)
	if gap < 1 {
		gap = 1
	}
	header := ModalTitleStyle.Render(title) + strings.Repeat(" ", gap) + ModalCloseStyle.Render(closeLabel)

	tags := make([]string, 0, len(thumb.Entry.Tags()))
	for _, tag := range thumb.Entry.Tags() {
		tags = append(tags, ModalTagStyle.Render(tag))
	}
	tagLine := StatusBarStyle.Render("(untagged)")
	if len(tags) > 0 {
		tagLine = lipgloss.NewStyle().Width(inner).Render(strings.Join(tags, " "))
	}

	category := thumb.Entry.Category()
	if category == "" {
		category = "-"
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		ModalPathStyle.Render(fit(m.controller.Modal().Source(), inner)),
		"",
		tagLine,
		"",
		StatusBarStyle.Render(fit("category: "+category, inner)),
		StatusBarStyle.Render(fit("thumbnail: "+thumb.Thumb, inner)),
		"",
		ModalCounterStyle.Render("←/→ navigate · esc close · y copy path"),
	)
	return ModalStyle.Width(inner + ModalStyle.GetHorizontalPadding()).Render(body)
}

func (m Model) modalInnerWidth() int {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 32 {
		w = 32
	}
	return w
}

// resizePanes adjusts the dimensions of the list based on window size
func (m *Model) resizePanes() {
	// Reserve space for tab bar, search bar, status bar and help
	reserved := 3
	if m.showHelp {
		reserved += len(m.keys.FullHelp()[0])
	} else {
		reserved++
	}
	availableHeight := m.height - reserved
	if availableHeight < 0 {
		availableHeight = 0
	}

	m.list.SetSize(m.width, availableHeight)
	m.help.Width = m.width
	m.search.Width = m.width - lipgloss.Width(m.search.Prompt) - 1
}

// pagesFor lists the homepage followed by the catalog's categories, plus
// the current page when the catalog does not know it.
func pagesFor(catalog types.Catalog, current types.PageContext) []types.PageContext {
	pages := []types.PageContext{types.Homepage}
	for _, p := range catalog.Categories() {
		if p != types.Homepage {
			pages = append(pages, p)
		}
	}
	for _, p := range pages {
		if p == current {
			return pages
		}
	}
	return append(pages, current)
}

func pageTitle(p types.PageContext) string {
	return cases.Title(language.English).String(string(p))
}
