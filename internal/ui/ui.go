package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CatalogView ViewState = iota
	LikedView
	PlaylistListView
	PlaylistDetailView
	InviteListView
)

// Flows bundles the workflows the TUI drives.
type Flows struct {
	Catalog   *tasks.CatalogFlow
	Likes     *tasks.LikeFlow
	Playlists *tasks.PlaylistFlow
	Invites   *tasks.InviteFlow
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	flows    Flows
	notifier *StatusNotifier

	width  int
	height int

	catalogList  list.Model
	likedList    list.Model
	playlistList list.Model
	detailList   list.Model
	inviteList   list.Model

	detail *models.PlaylistDetail
	status statusMsg
	err    error

	help help.Model
	keys keyMap
}

type catalogFetchedMsg struct {
	musics []models.Music
	err    error
}

type likedFetchedMsg struct {
	musics []models.Music
	err    error
}

type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

type detailFetchedMsg struct {
	detail *models.PlaylistDetail
	err    error
}

type invitesFetchedMsg struct {
	invites []models.CollaboratorInvite
	err     error
}

// mutationDoneMsg reports a completed like toggle or invite resolution. The
// user-facing outcome already went through the status notifier; the message
// only triggers the re-fetch of the views the mutation invalidated.
type mutationDoneMsg struct {
	view ViewState
}

// NewModel creates a new TUI model with the provided workflows. The notifier
// must be the one wired into the workflows' dependencies.
func NewModel(ctx context.Context, flows Flows, notifier *StatusNotifier) *Model {
	return &Model{
		ctx:      ctx,
		view:     CatalogView,
		flows:    flows,
		notifier: notifier,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init starts the TUI on the catalog view.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCatalog(), m.waitForStatus())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.catalogList, &m.likedList, &m.playlistList, &m.detailList, &m.inviteList} {
			l.SetSize(msg.Width-4, msg.Height-6)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case statusMsg:
		m.status = msg
		return m, m.waitForStatus()

	case catalogFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.musics))
		for i, music := range msg.musics {
			items[i] = musicItem{music: music}
		}
		m.catalogList = m.newList("Catalog", items)
		return m, nil

	case likedFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.musics))
		for i, music := range msg.musics {
			items[i] = musicItem{music: music}
		}
		m.likedList = m.newList("Liked Tracks", items)
		return m, nil

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = m.newList("My Playlists", items)
		return m, nil

	case detailFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		m.err = nil
		m.detail = msg.detail
		items := make([]list.Item, len(msg.detail.Musics))
		for i, track := range msg.detail.Musics {
			items[i] = playlistTrackItem{track: track}
		}
		m.detailList = m.newList(fmt.Sprintf("Tracks in '%s'", msg.detail.Name), items)
		m.view = PlaylistDetailView
		return m, nil

	case invitesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.invites))
		for i, invite := range msg.invites {
			items[i] = inviteItem{invite: invite}
		}
		m.inviteList = m.newList("Collaborator Invites", items)
		return m, nil

	case mutationDoneMsg:
		// Re-read through the cache; the workflow already invalidated
		// whatever the mutation touched.
		switch msg.view {
		case CatalogView:
			return m, tea.Batch(m.fetchCatalog(), m.fetchLiked())
		case LikedView:
			return m, tea.Batch(m.fetchCatalog(), m.fetchLiked())
		case InviteListView:
			return m, tea.Batch(m.fetchInvites(), m.fetchPlaylists())
		}
		return m, nil
	}

	return m.updateActiveList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	var body string
	switch m.view {
	case CatalogView:
		body = m.catalogList.View()
	case LikedView:
		body = m.likedList.View()
	case PlaylistListView:
		body = m.playlistList.View()
	case PlaylistDetailView:
		body = m.detailList.View()
	case InviteListView:
		body = m.inviteList.View()
	}

	return fmt.Sprintf("%s\n%s\n%s", body, m.renderStatus(), m.renderHelp())
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.tab):
		return m.nextView()

	case key.Matches(msg, m.keys.back):
		if m.view == PlaylistDetailView {
			m.view = PlaylistListView
			m.detail = nil
		}
		return m, nil

	case key.Matches(msg, m.keys.like):
		if m.view == CatalogView || m.view == LikedView {
			if item, ok := m.selectedMusic(); ok {
				return m, m.toggleLike(item)
			}
		}

	case key.Matches(msg, m.keys.accept):
		if m.view == InviteListView {
			if invite, ok := m.selectedInvite(); ok {
				return m, m.acceptInvite(invite.ID)
			}
		}

	case key.Matches(msg, m.keys.reject):
		if m.view == InviteListView {
			if invite, ok := m.selectedInvite(); ok {
				return m, m.rejectInvite(invite.ID)
			}
		}

	case key.Matches(msg, m.keys.enter):
		if m.view == PlaylistListView {
			if selected := m.playlistList.SelectedItem(); selected != nil {
				if pl, ok := selected.(playlistItem); ok {
					return m, m.fetchDetail(pl.playlist.ID)
				}
			}
		}
	}

	return m.updateActiveList(msg)
}

// nextView cycles the top-level tabs, fetching the incoming view's data.
// Reads go through the cache, so an unchanged view costs no network call.
func (m *Model) nextView() (tea.Model, tea.Cmd) {
	switch m.view {
	case CatalogView:
		m.view = LikedView
		return m, m.fetchLiked()
	case LikedView:
		m.view = PlaylistListView
		return m, m.fetchPlaylists()
	case PlaylistListView, PlaylistDetailView:
		m.view = InviteListView
		return m, m.fetchInvites()
	default:
		m.view = CatalogView
		return m, m.fetchCatalog()
	}
}

func (m *Model) selectedMusic() (models.Music, bool) {
	active := &m.catalogList
	if m.view == LikedView {
		active = &m.likedList
	}
	if selected := active.SelectedItem(); selected != nil {
		if item, ok := selected.(musicItem); ok {
			return item.music, true
		}
	}
	return models.Music{}, false
}

func (m *Model) selectedInvite() (models.CollaboratorInvite, bool) {
	if selected := m.inviteList.SelectedItem(); selected != nil {
		if item, ok := selected.(inviteItem); ok {
			return item.invite, true
		}
	}
	return models.CollaboratorInvite{}, false
}

func (m *Model) updateActiveList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CatalogView:
		m.catalogList, cmd = m.catalogList.Update(msg)
	case LikedView:
		m.likedList, cmd = m.likedList.Update(msg)
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case PlaylistDetailView:
		m.detailList, cmd = m.detailList.Update(msg)
	case InviteListView:
		m.inviteList, cmd = m.inviteList.Update(msg)
	}
	return m, cmd
}

func (m *Model) newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-6)
	l.Title = title
	l.SetShowHelp(false)
	return l
}

func (m *Model) fetchCatalog() tea.Cmd {
	return func() tea.Msg {
		musics, err := m.flows.Catalog.Musics(m.ctx)
		return catalogFetchedMsg{musics: musics, err: err}
	}
}

func (m *Model) fetchLiked() tea.Cmd {
	return func() tea.Msg {
		musics, err := m.flows.Likes.LikedMusics(m.ctx)
		return likedFetchedMsg{musics: musics, err: err}
	}
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.flows.Playlists.MyPlaylists(m.ctx)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchDetail(playlistID int64) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.flows.Playlists.Detail(m.ctx, playlistID)
		return detailFetchedMsg{detail: detail, err: err}
	}
}

func (m *Model) fetchInvites() tea.Cmd {
	return func() tea.Msg {
		invites, err := m.flows.Invites.ListMyInvites(m.ctx)
		return invitesFetchedMsg{invites: invites, err: err}
	}
}

// toggleLike runs the pessimistic toggle off the UI goroutine. Failures and
// in-flight rejections surface through the status notifier; the lists only
// re-render from confirmed state.
func (m *Model) toggleLike(music models.Music) tea.Cmd {
	view := m.view
	return func() tea.Msg {
		m.flows.Likes.Toggle(m.ctx, music)
		return mutationDoneMsg{view: view}
	}
}

func (m *Model) acceptInvite(inviteID int64) tea.Cmd {
	return func() tea.Msg {
		m.flows.Invites.Accept(m.ctx, inviteID)
		return mutationDoneMsg{view: InviteListView}
	}
}

func (m *Model) rejectInvite(inviteID int64) tea.Cmd {
	return func() tea.Msg {
		m.flows.Invites.Reject(m.ctx, inviteID)
		return mutationDoneMsg{view: InviteListView}
	}
}

// waitForStatus blocks on the notifier channel and re-arms after each
// delivery, the same shape as a progress subscription.
func (m *Model) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		return <-m.notifier.ch
	}
}

func (m *Model) renderStatus() string {
	if m.status.text == "" {
		return ""
	}
	if m.status.isErr {
		return styles.err.Render(m.status.text)
	}
	return styles.ok.Render(m.status.text)
}

func (m *Model) renderHelp() string {
	var keys []key.Binding
	switch m.view {
	case CatalogView, LikedView:
		keys = []key.Binding{m.keys.like, m.keys.tab, m.keys.quit}
	case PlaylistListView:
		keys = []key.Binding{m.keys.enter, m.keys.tab, m.keys.quit}
	case PlaylistDetailView:
		keys = []key.Binding{m.keys.back, m.keys.tab, m.keys.quit}
	case InviteListView:
		keys = []key.Binding{m.keys.accept, m.keys.reject, m.keys.tab, m.keys.quit}
	}
	return m.help.ShortHelpView(keys)
}
