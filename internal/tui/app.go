package tui

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/mittens/internal/deck"
	"github.com/mmcdole/mittens/internal/likes"
	"github.com/mmcdole/mittens/internal/search"
	"github.com/mmcdole/mittens/internal/tui/components"
	"github.com/mmcdole/mittens/internal/tui/styles"
)

// Tab is one of the screens on the bottom navigation bar
type Tab int

const (
	TabSwipe Tab = iota
	TabLiked
	TabBreeds
)

var tabNames = []string{"Swipe", "Liked", "Breeds"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "?"
}

// ChromeHeight is the status line plus the navigation bar
const ChromeHeight = 2

// Model is the main Bubble Tea model for the application
type Model struct {
	Tab   Tab
	Ready bool

	// Services
	Deck   *deck.Deck
	Liked  *likes.Paginator
	Breeds *search.Service
	logger *slog.Logger

	// Dimensions
	Width  int
	Height int

	// Swipe
	deckLoading bool
	swiping     bool

	// Liked
	likedState  likes.State
	grid        components.Grid
	likedLoaded bool
	likedDirty  bool // A like succeeded since the last refresh

	// Breeds
	breedInput     textinput.Model
	breedResults   []search.Result
	breedCursor    int
	breedQuery     string // Query of the newest remote request; older results are dropped
	breedSearching bool
	breedErr       string

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	ShowHelp     bool
}

// NewModel creates a new application model
func NewModel(d *deck.Deck, liked *likes.Paginator, breeds *search.Service, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "search breeds..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	state := liked.State()
	state.Loading = true

	return Model{
		Tab:         TabSwipe,
		Deck:        d,
		Liked:       liked,
		Breeds:      breeds,
		logger:      logger,
		deckLoading: true,
		likedState:  state,
		grid:        components.NewGrid(),
		breedInput:  ti,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadDeckCmd(m.Deck, m.Breeds),
		LoadLikedCmd(m.Liked),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case DeckReadyMsg:
		m.deckLoading = false
		if msg.Err != nil {
			return m, m.setStatus(ErrMsg{Err: msg.Err, Context: "loading cats"}.Error(), true)
		}
		m.logger.Info("deck ready", "breeds", msg.Breeds, "cards", msg.Cards)
		if msg.BreedErr != nil {
			return m, m.setStatus(msg.BreedErr.Error(), true)
		}
		return m, nil

	case DeckFilledMsg:
		m.deckLoading = false
		if msg.Err != nil {
			return m, m.setStatus(ErrMsg{Err: msg.Err, Context: "loading cats"}.Error(), true)
		}
		return m, nil

	case SwipeResultMsg:
		return m.handleSwipeResult(msg)

	case LikedStateMsg:
		m.likedState = msg.State
		m.likedLoaded = true
		m.grid.SetItems(msg.State.Items)
		return m, nil

	case BreedResultsMsg:
		if msg.Query != m.breedQuery {
			m.logger.Debug("dropping stale breed results", "query", msg.Query, "current", m.breedQuery)
			return m, nil
		}
		m.breedSearching = false
		if msg.Err != nil {
			m.breedErr = msg.Err.Error()
			return m, nil
		}
		m.breedErr = ""
		m.setBreedResults(msg.Results)
		return m, nil

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleSwipeResult(msg SwipeResultMsg) (tea.Model, tea.Cmd) {
	m.swiping = false
	r := msg.Result

	var cmds []tea.Cmd
	switch {
	case errors.Is(r.Err, deck.ErrEmpty):
		cmds = append(cmds, m.setStatus("No cats to swipe yet", true))
	case r.Err != nil:
		cmds = append(cmds, m.setStatus(ErrMsg{Err: r.Err, Context: "sending vote"}.Error(), true))
	case msg.Liked && r.FavoriteErr != nil:
		cmds = append(cmds, m.setStatus("Liked, but "+r.FavoriteErr.Error(), true))
	case r.RefillErr != nil:
		cmds = append(cmds, m.setStatus(ErrMsg{Err: r.RefillErr, Context: "fetching cats"}.Error(), true))
	case msg.Liked:
		cmds = append(cmds, m.setStatus("Liked ♥", false))
	}
	if msg.Liked && r.OK() {
		m.likedDirty = true
	}

	// The refill behind the action may have failed and left the deck empty
	if m.Deck.Remaining() == 0 && !m.deckLoading {
		m.deckLoading = true
		cmds = append(cmds, FillDeckCmd(m.Deck))
	}
	return m, tea.Batch(cmds...)
}

// handleKeyMsg routes keys to the breed input while it has focus, then
// global bindings, then the active tab
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.breedInput.Focused() {
		return m.handleBreedInput(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = !m.ShowHelp
		return m, nil
	case key.Matches(msg, Keys.NextTab):
		return m.switchTab((m.Tab + 1) % Tab(len(tabNames)))
	case key.Matches(msg, Keys.PrevTab):
		return m.switchTab((m.Tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	case key.Matches(msg, Keys.Swipe):
		return m.switchTab(TabSwipe)
	case key.Matches(msg, Keys.Liked):
		return m.switchTab(TabLiked)
	case key.Matches(msg, Keys.Breeds):
		return m.switchTab(TabBreeds)
	}

	switch m.Tab {
	case TabSwipe:
		return m.handleSwipeKeys(msg)
	case TabLiked:
		return m.handleLikedKeys(msg)
	case TabBreeds:
		return m.handleBreedKeys(msg)
	}
	return m, nil
}

// switchTab activates t and starts whatever load the tab is missing
func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.Tab = t
	m.ShowHelp = false

	switch t {
	case TabLiked:
		if m.likedDirty && !m.likedState.Loading {
			m.likedDirty = false
			m.likedState.Loading = true
			return m, RefreshLikedCmd(m.Liked)
		}
		if !m.likedLoaded && !m.likedState.Loading {
			m.likedState.Loading = true
			return m, LoadLikedCmd(m.Liked)
		}
	case TabBreeds:
		if len(m.breedResults) == 0 && m.breedQuery == "" && !m.breedSearching {
			m.breedSearching = true
			return m, SearchBreedsCmd(m.Breeds, "")
		}
	}
	return m, nil
}

func (m Model) handleSwipeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Like):
		if m.swiping || m.Deck.Remaining() == 0 {
			return m, nil
		}
		m.swiping = true
		return m, LikeCmd(m.Deck)
	case key.Matches(msg, Keys.Dislike):
		if m.swiping || m.Deck.Remaining() == 0 {
			return m, nil
		}
		m.swiping = true
		return m, DislikeCmd(m.Deck)
	case key.Matches(msg, Keys.Refresh):
		if m.deckLoading {
			return m, nil
		}
		m.deckLoading = true
		return m, FillDeckCmd(m.Deck)
	}
	return m, nil
}

func (m Model) handleLikedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Refresh):
		if m.likedState.Loading {
			return m, nil
		}
		m.likedDirty = false
		m.likedState.Loading = true
		return m, RefreshLikedCmd(m.Liked)
	case key.Matches(msg, Keys.Up):
		m.grid.MoveUp()
	case key.Matches(msg, Keys.Down):
		m.grid.MoveDown()
	case key.Matches(msg, Keys.Left):
		m.grid.MoveLeft()
	case key.Matches(msg, Keys.Right):
		m.grid.MoveRight()
	case key.Matches(msg, Keys.Home):
		m.grid.Home()
		return m, nil
	case key.Matches(msg, Keys.End):
		m.grid.End()
	default:
		return m, nil
	}
	return m.maybeLoadMore()
}

// maybeLoadMore requests the next page once the cursor reaches the last row
func (m Model) maybeLoadMore() (tea.Model, tea.Cmd) {
	if m.grid.Len() == 0 || !m.grid.AtLastRow() {
		return m, nil
	}
	if m.likedState.Loading || !m.likedState.HasMore {
		return m, nil
	}
	m.likedState.Loading = true
	return m, LoadMoreLikedCmd(m.Liked)
}

func (m Model) handleBreedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Filter):
		m.breedInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, Keys.Enter):
		return m.searchRemote()
	case key.Matches(msg, Keys.Escape):
		m.breedInput.SetValue("")
		m.breedQuery = ""
		m.breedSearching = false
		m.breedErr = ""
		m.setBreedResults(m.localBreeds(""))
	case key.Matches(msg, Keys.Up):
		if m.breedCursor > 0 {
			m.breedCursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.breedCursor < len(m.breedResults)-1 {
			m.breedCursor++
		}
	}
	return m, nil
}

// handleBreedInput filters the local index as the user types; enter asks
// the provider
func (m Model) handleBreedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.breedInput.Blur()
		return m, nil
	case "enter":
		m.breedInput.Blur()
		return m.searchRemote()
	}

	var cmd tea.Cmd
	m.breedInput, cmd = m.breedInput.Update(msg)

	// Typing supersedes any provider search still in flight
	m.breedQuery = m.breedInput.Value()
	m.breedSearching = false
	m.breedErr = ""
	m.setBreedResults(m.localBreeds(m.breedQuery))
	return m, cmd
}

func (m Model) searchRemote() (tea.Model, tea.Cmd) {
	m.breedQuery = m.breedInput.Value()
	m.breedSearching = true
	m.breedErr = ""
	return m, SearchBreedsCmd(m.Breeds, m.breedQuery)
}

// localBreeds ranks the local index, listing everything for an empty query
func (m Model) localBreeds(query string) []search.Result {
	if query == "" {
		breeds := m.Breeds.Breeds()
		results := make([]search.Result, len(breeds))
		for i, b := range breeds {
			results[i] = search.Result{Breed: b}
		}
		return results
	}
	return m.Breeds.FilterLocal(query)
}

func (m *Model) setBreedResults(results []search.Result) {
	m.breedResults = results
	if m.breedCursor >= len(results) {
		m.breedCursor = max(0, len(results)-1)
	}
}

// setStatus shows a message and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusDuration)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	// One header line above the grid
	m.grid.SetSize(m.Width, max(1, m.Height-ChromeHeight-1))
}
