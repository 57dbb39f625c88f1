package app

import (
	"fmt"
	"sort"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NorthstarWang/fintech-banking-tui/client"
	"github.com/NorthstarWang/fintech-banking-tui/config"
	"github.com/NorthstarWang/fintech-banking-tui/model"
	"github.com/NorthstarWang/fintech-banking-tui/msg"
	"github.com/NorthstarWang/fintech-banking-tui/style"
	"github.com/NorthstarWang/fintech-banking-tui/ui/debounce"
	"github.com/NorthstarWang/fintech-banking-tui/ui/lazyload"
)

// ProfileDir is where persistent settings live. Set by main before the
// program starts.
var ProfileDir string

// ProgramReady delivers the running tea.Program so background readers
// (the event stream) can Send into the update loop.
type ProgramReady struct{ Program *tea.Program }

// Private result messages; the app converts client payloads to display
// mirrors so the model packages never import client.
type (
	retryHealth        struct{}
	demoTick           struct{}
	accountsLoaded     []client.Account
	transactionsLoaded []client.Transaction
	budgetsLoaded      []client.Budget
	offersLoaded       []client.Offer
	loadFailed         struct {
		what string
		err  error
	}
)

type Model struct {
	header       model.HeaderModel
	transactions model.TransactionsModel
	accounts     model.AccountsModel
	budgets      model.BudgetsModel
	offers       model.OffersModel
	toasts       model.ToastsModel
	statusbar    model.StatusBarModel
	picker       model.PickerModel

	state   State
	api     client.API
	demo    *client.Demo // nil when talking to a real backend
	stream  *client.StreamClient
	program *tea.Program
	cfg     config.Config
	keys    KeyMap
	width   int
	height  int
}

// New builds the root model. api serves the data; demo, when non-nil, also
// feeds fabricated live transactions in place of the event stream.
func New(api client.API, demo *client.Demo, cfg config.Config) Model {
	month := time.Now().Format("2006-01")
	m := Model{
		header:       model.NewHeader(),
		transactions: model.NewTransactions(20),
		accounts:     model.NewAccounts(),
		budgets:      model.NewBudgets(month),
		toasts:       model.NewToasts(),
		statusbar:    model.NewStatusBar(),
		picker:       model.NewPicker(),
		state:        StateConnecting,
		api:          api,
		demo:         demo,
		cfg:          cfg,
		keys:         DefaultKeyMap(),
		width:        80,
		height:       24,
	}
	m.offers = model.NewOffers(20, func(src string) (string, error) {
		return api.OfferDetail(src)
	})
	return m
}

// SetStream attaches the live event stream client (real backend only).
func (m *Model) SetStream(s *client.StreamClient) { m.stream = s }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkHealth(), m.statusbar.Init(), m.tickCmd(), tea.WindowSize())
}

// -- Commands -----------------------------------------------------------------

func (m Model) checkHealth() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		h, err := api.Health()
		if err != nil {
			return msg.HealthResult{Err: err}
		}
		return msg.HealthResult{Status: h.Status, Version: h.Version, UptimeSeconds: h.UptimeSeconds}
	}
}

func (m Model) loadAll() tea.Cmd {
	api := m.api
	pageSize := m.cfg.PageSize
	return tea.Batch(
		func() tea.Msg {
			accounts, err := api.Accounts()
			if err != nil {
				return loadFailed{what: "accounts", err: err}
			}
			return accountsLoaded(accounts)
		},
		func() tea.Msg {
			txns, err := api.Transactions("", pageSize)
			if err != nil {
				return loadFailed{what: "transactions", err: err}
			}
			return transactionsLoaded(txns)
		},
		func() tea.Msg {
			budgets, err := api.Budgets()
			if err != nil {
				return loadFailed{what: "budgets", err: err}
			}
			return budgetsLoaded(budgets)
		},
		func() tea.Msg {
			offers, err := api.Offers()
			if err != nil {
				return loadFailed{what: "offers", err: err}
			}
			return offersLoaded(offers)
		},
	)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return msg.TickMsg{} })
}

func (m Model) demoTickCmd() tea.Cmd {
	return tea.Tick(6*time.Second, func(time.Time) tea.Msg { return demoTick{} })
}

func (m Model) startStream() tea.Cmd {
	if m.stream == nil || m.program == nil {
		return nil
	}
	return m.stream.ListenCmd(m.program)
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		bh := m.bodyHeight()
		m.transactions.SetHeight(bh - 2) // search line + filter line
		m.transactions.SetWidth(v.Width)
		m.accounts.SetWidth(v.Width)
		m.offers.SetHeight(bh)
		m.offers.SetWidth(v.Width)
		m.picker.SetWidth(v.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(v)

	case ProgramReady:
		m.program = v.Program
		return m, m.startStream()

	case msg.HealthResult:
		return m.handleHealth(v)

	case retryHealth:
		return m, m.checkHealth()

	case accountsLoaded:
		accounts := make([]model.Account, len(v))
		for i, a := range v {
			accounts[i] = model.Account{
				ID: a.ID, Name: a.Name, Type: a.Type,
				Currency: a.Currency, BalanceCents: a.BalanceCents,
			}
		}
		m.accounts.SetAccounts(accounts)
		return m, nil

	case transactionsLoaded:
		txns := make([]msg.Transaction, len(v))
		for i, t := range v {
			txns[i] = toMsgTransaction(t)
		}
		m.transactions.SetTransactions(txns)
		m.budgets.Recalculate(txns)
		m.syncStatus()
		return m, nil

	case budgetsLoaded:
		budgets := make([]model.Budget, len(v))
		for i, b := range v {
			budgets[i] = model.Budget{Category: b.Category, LimitCents: b.LimitCents, Currency: b.Currency}
		}
		m.budgets.SetBudgets(budgets)
		return m, nil

	case offersLoaded:
		items := make([]model.OfferItem, len(v))
		for i, o := range v {
			items[i] = model.OfferItem{
				ID: o.ID, Title: o.Title, Issuer: o.Issuer,
				APR: o.APR, Teaser: o.Teaser, Detail: o.Detail,
			}
		}
		m.offers.SetOffers(items)
		return m, m.offers.Init()

	case loadFailed:
		m.toasts.Add(fmt.Sprintf("Failed to load %s: %v", v.what, v.err), model.ToastError)
		return m, nil

	case client.StreamConnectedEvent:
		m.statusbar.SetConnection(model.ConnLive)
		return m, nil

	case client.StreamDisconnectedEvent:
		if m.stream != nil && !m.stream.IsClosed() && m.program != nil {
			return m, m.stream.ReconnectListenCmd(m.program)
		}
		m.statusbar.SetConnection(model.ConnOffline)
		return m, nil

	case client.StreamReconnectingEvent:
		m.statusbar.SetReconnecting(v.Attempt)
		return m, nil

	case client.StreamAuthFailedEvent:
		m.toasts.Add("Stream authentication failed", model.ToastError)
		m.statusbar.SetConnection(model.ConnOffline)
		return m, nil

	case client.StreamParseWarning:
		m.toasts.Add(v.Message, model.ToastWarning)
		return m, nil

	case client.TransactionCreatedEvent:
		next, cmd := m.handleLiveTransaction(toMsgTransaction(v.Transaction))
		return next, cmd

	case client.BalanceUpdatedEvent:
		m.accounts.UpdateBalance(v.AccountID, v.BalanceCents)
		return m, nil

	case client.BudgetThresholdEvent:
		m.toasts.Add(v.Message, model.ToastWarning)
		return m, nil

	case demoTick:
		if m.demo == nil {
			return m, nil
		}
		next, cmd := m.handleLiveTransaction(toMsgTransaction(m.demo.NextTransaction()))
		return next, tea.Batch(cmd, m.demoTickCmd())

	case msg.SearchCommitted:
		m.syncStatus()
		return m, nil

	case model.PickerChoice:
		m.transactions.SetCategory(v.Category)
		m.syncStatus()
		return m, nil

	case model.PickerCancel:
		return m, nil

	case debounce.CommittedMsg:
		return m, m.transactions.Update(rawMsg)

	case lazyload.FailedMsg:
		m.toasts.Add(fmt.Sprintf("Offer details failed: %v", v.Err), model.ToastError)
		return m, m.offers.Update(rawMsg)

	case lazyload.LoadedMsg:
		return m, m.offers.Update(rawMsg)

	case msg.TickMsg:
		m.toasts.Tick()
		m.syncStatus()
		return m, m.tickCmd()

	case tea.MouseMsg:
		return m, m.activeViewUpdate(rawMsg)
	}

	// Unnamed messages (debounce commit timers, input blink) must still
	// reach the search input's own fall-through.
	var cmd tea.Cmd
	m.statusbar, cmd = m.statusbar.Update(rawMsg)
	return m, tea.Batch(cmd, m.transactions.Update(rawMsg))
}

func (m Model) handleHealth(v msg.HealthResult) (tea.Model, tea.Cmd) {
	if v.Err != nil {
		m.statusbar.SetConnection(model.ConnOffline)
		m.toasts.Add(fmt.Sprintf("Backend unreachable: %v", v.Err), model.ToastError)
		return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return retryHealth{} })
	}
	m.state = StateReady
	m.header.SetHealth(v)
	if m.demo != nil {
		m.statusbar.SetConnection(model.ConnDemo)
		return m, tea.Batch(m.loadAll(), m.demoTickCmd())
	}
	return m, tea.Batch(m.loadAll(), m.startStream())
}

func (m Model) handleLiveTransaction(t msg.Transaction) (Model, tea.Cmd) {
	m.transactions.Prepend(t)
	m.budgets.Recalculate(m.transactions.History())
	amount := money.New(t.AmountCents, t.Currency).Display()
	m.toasts.Add(fmt.Sprintf("%s  %s", t.Merchant, amount), model.ToastInfo)
	m.syncStatus()
	return m, nil
}

func (m Model) handleKey(v tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.IsActive() {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(v)
		return m, cmd
	}

	// While the search box owns the keyboard, only ctrl+c quits globally.
	if m.header.Active() == model.TabTransactions && m.transactions.Searching() {
		if v.String() == "ctrl+c" {
			m.shutdown()
			return m, tea.Quit
		}
		return m, m.transactions.Update(v)
	}

	switch {
	case key.Matches(v, m.keys.Quit), key.Matches(v, m.keys.QuitEOF):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(v, m.keys.NextTab):
		m.setTab((m.header.Active() + 1) % 4)
		return m, nil

	case key.Matches(v, m.keys.PrevTab):
		m.setTab((m.header.Active() + 3) % 4)
		return m, nil

	case key.Matches(v, m.keys.Search):
		if m.header.Active() == model.TabTransactions {
			return m, m.transactions.FocusSearch()
		}
		return m, nil

	case key.Matches(v, m.keys.Filter):
		if m.header.Active() == model.TabTransactions {
			m.picker.SetItems(m.categoryItems())
		}
		return m, nil

	case key.Matches(v, m.keys.Refresh):
		if m.state == StateReady {
			return m, m.loadAll()
		}
		return m, nil

	case key.Matches(v, m.keys.Theme):
		m.cycleTheme()
		return m, nil

	case key.Matches(v, m.keys.Escape):
		if m.header.Active() == model.TabTransactions {
			m.transactions.ClearSearch()
			m.transactions.SetCategory("")
			m.syncStatus()
		}
		return m, nil
	}

	return m, m.activeViewUpdate(v)
}

// activeViewUpdate forwards a message to whichever view owns the body.
func (m *Model) activeViewUpdate(rawMsg tea.Msg) tea.Cmd {
	switch m.header.Active() {
	case model.TabTransactions:
		cmd := m.transactions.Update(rawMsg)
		m.syncStatus()
		return cmd
	case model.TabOffers:
		cmd := m.offers.Update(rawMsg)
		m.syncStatus()
		return cmd
	}
	return nil
}

func (m *Model) setTab(t model.Tab) {
	m.header.SetActive(t)
	m.syncStatus()
}

// syncStatus refreshes the status bar from the active view.
func (m *Model) syncStatus() {
	switch m.header.Active() {
	case model.TabTransactions:
		m.statusbar.SetRows(m.transactions.Len(), m.transactions.Total())
		m.statusbar.SetScroll(m.transactions.ScrollPercent())
		m.statusbar.SetHints("/ search · f filter · tab views · q quit")
	case model.TabOffers:
		m.statusbar.SetRows(m.offers.LoadedCount(), m.offers.Len())
		m.statusbar.SetScroll(m.offers.ScrollPercent())
		m.statusbar.SetHints("↑↓ scroll · tab views · q quit")
	case model.TabAccounts:
		m.statusbar.SetRows(m.accounts.Len(), m.accounts.Len())
		m.statusbar.ClearScroll()
		m.statusbar.SetHints("tab views · r refresh · q quit")
	case model.TabBudgets:
		m.statusbar.SetRows(m.budgets.Len(), m.budgets.Len())
		m.statusbar.ClearScroll()
		m.statusbar.SetHints("tab views · r refresh · q quit")
	}
}

// categoryItems builds the picker entries from the loaded history.
func (m Model) categoryItems() []model.PickerItem {
	counts := make(map[string]int)
	for _, t := range m.transactions.History() {
		counts[t.Category]++
	}
	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	active := m.transactions.Category()
	items := []model.PickerItem{{Category: "", Active: active == ""}}
	for _, c := range cats {
		items = append(items, model.PickerItem{Category: c, Count: counts[c], Active: c == active})
	}
	return items
}

func (m *Model) cycleTheme() {
	names := style.ThemeNames
	for i, name := range names {
		if name == style.CurrentThemeName {
			next := names[(i+1)%len(names)]
			style.SetTheme(next)
			m.cfg.Theme = next
			if ProfileDir != "" {
				_ = config.Save(ProfileDir, m.cfg)
			}
			m.toasts.Add("Theme: "+next, model.ToastInfo)
			return
		}
	}
}

func (m *Model) shutdown() {
	if m.stream != nil {
		m.stream.Close()
	}
	if ProfileDir != "" {
		_ = config.Save(ProfileDir, m.cfg)
	}
}

// -- View ---------------------------------------------------------------------

// bodyHeight is the space left for the active view after the header, its
// separator, and the status line.
func (m Model) bodyHeight() int {
	h := m.height - 3
	if h < 4 {
		return 4
	}
	return h
}

func (m Model) View() string {
	if m.state == StateConnecting {
		return "\n  " + m.statusbar.View() + "\n"
	}

	var body string
	if m.picker.IsActive() {
		body = m.picker.View()
	} else {
		switch m.header.Active() {
		case model.TabTransactions:
			body = m.transactions.View()
		case model.TabAccounts:
			body = m.accounts.View()
		case model.TabBudgets:
			body = m.budgets.View()
		case model.TabOffers:
			body = m.offers.View()
		}
	}

	out := m.header.View() + "\n\n" + body
	if m.toasts.HasToasts() {
		out += "\n" + m.toasts.View(m.width)
	}
	return out + "\n" + m.statusbar.View()
}

func toMsgTransaction(t client.Transaction) msg.Transaction {
	return msg.Transaction{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Date:        t.Date,
		Merchant:    t.Merchant,
		Category:    t.Category,
		Description: t.Description,
		AmountCents: t.AmountCents,
		Currency:    t.Currency,
		Pending:     t.Pending,
	}
}
