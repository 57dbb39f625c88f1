package model

import (
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NorthstarWang/fintech-banking-tui/markdown"
	"github.com/NorthstarWang/fintech-banking-tui/style"
	"github.com/NorthstarWang/fintech-banking-tui/ui/lazyload"
	"github.com/NorthstarWang/fintech-banking-tui/ui/window"
)

// OfferItem is the display mirror of a backend credit-card offer.
type OfferItem struct {
	ID     string
	Title  string
	Issuer string
	APR    string
	Teaser string
	Detail string // body reference, fetched lazily
}

// offerRowHeight is the fixed height of one offer in lines: a header, a
// meta line, the teaser, and a detail region.
const offerRowHeight = 8

// offerRow pairs an offer with its lazy detail loader.
type offerRow struct {
	OfferItem
	loader *lazyload.Model
}

// OffersModel is the offers feed: a windowed list whose per-offer detail
// bodies are fetched only when the offer scrolls into (or near) view, once
// per offer.
type OffersModel struct {
	win   *window.Model[*offerRow]
	fetch lazyload.FetchFunc
	// width is shared across model copies and read off the update loop by
	// fetch commands, so resizes reach loaders that have not fired yet.
	width *atomic.Int64
}

// NewOffers builds the feed. fetch retrieves an offer's markdown body by
// its Detail reference; results are rendered for the terminal at load time.
func NewOffers(height int, fetch lazyload.FetchFunc) OffersModel {
	m := OffersModel{fetch: fetch, width: new(atomic.Int64)}
	m.width.Store(80)
	m.win = window.New(height, offerRowHeight, renderOfferRow)
	return m
}

// rendered wraps the raw fetch so loaded bodies arrive already styled at
// the width current when the fetch actually runs.
func (m *OffersModel) rendered() lazyload.FetchFunc {
	fetch := m.fetch
	width := m.width
	return func(src string) (string, error) {
		body, err := fetch(src)
		if err != nil {
			return "", err
		}
		w := int(width.Load()) - 6
		if w < 40 {
			w = 40
		}
		return markdown.RenderWidth(body, w), nil
	}
}

// SetOffers replaces the feed, creating a fresh Pending loader per offer.
func (m *OffersModel) SetOffers(items []OfferItem) {
	rows := make([]*offerRow, len(items))
	for i, it := range items {
		rows[i] = &offerRow{
			OfferItem: it,
			loader: lazyload.New(it.Detail, it.Title, m.rendered(),
				lazyload.WithPlaceholder(style.Hint.Render("… details load when visible"))),
		}
	}
	m.win.SetItems(rows)
}

// Len returns the number of offers.
func (m OffersModel) Len() int { return m.win.Len() }

// SetHeight resizes the feed viewport.
func (m *OffersModel) SetHeight(h int) { m.win.SetHeight(h) }

// SetWidth constrains detail rendering to the terminal width.
func (m *OffersModel) SetWidth(w int) { m.width.Store(int64(w)) }

// ScrollPercent exposes the feed's scroll position for the status bar.
func (m OffersModel) ScrollPercent() float64 {
	return m.win.Viewport().ScrollPercent()
}

// LoadedCount reports how many offer details have arrived, for the status
// bar.
func (m OffersModel) LoadedCount() int {
	n := 0
	for _, r := range m.win.Items() {
		if r.loader.State() == lazyload.StateLoaded {
			n++
		}
	}
	return n
}

// checkVisibility fires the loaders of offers inside the current window
// that have not fetched yet.
func (m *OffersModel) checkVisibility() tea.Cmd {
	win := m.win.Window()
	if win.Range.Empty() {
		return nil
	}
	var cmds []tea.Cmd
	for i, r := range win.Items {
		index := win.Range.Start + i
		if cmd := r.loader.CheckVisible(index*offerRowHeight, offerRowHeight, m.win.Viewport()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update routes scroll input and loader results. Every scroll re-runs the
// visibility check so newly exposed offers start loading.
func (m *OffersModel) Update(message tea.Msg) tea.Cmd {
	switch v := message.(type) {
	case lazyload.LoadedMsg, lazyload.FailedMsg:
		for _, r := range m.win.Items() {
			r.loader.Update(v)
		}
		return nil

	case tea.KeyMsg:
		vp := m.win.Viewport()
		switch v.String() {
		case "up", "k":
			vp.ScrollBy(-offerRowHeight)
		case "down", "j":
			vp.ScrollBy(offerRowHeight)
		case "pgup":
			vp.PageUp()
		case "pgdown":
			vp.PageDown()
		case "home", "g":
			vp.GotoTop()
		case "end", "G":
			vp.GotoBottom()
		default:
			return nil
		}
		return m.checkVisibility()

	case tea.MouseMsg:
		cmd := m.win.Update(message)
		return tea.Batch(cmd, m.checkVisibility())
	}
	return nil
}

// Init fires the visibility check for the initially visible offers.
func (m *OffersModel) Init() tea.Cmd {
	return m.checkVisibility()
}

// View renders the windowed feed.
func (m OffersModel) View() string {
	if m.win.Len() == 0 {
		return style.Faint.Render("No offers right now.")
	}
	return m.win.View()
}

func renderOfferRow(r *offerRow, index int) string {
	var b strings.Builder
	b.WriteString(style.CardTitle.Render(r.Title))
	b.WriteString("\n")
	b.WriteString(style.Faint.Render(r.Issuer + "  ·  APR " + r.APR))
	b.WriteString("\n")
	b.WriteString(r.Teaser)
	b.WriteString("\n")
	detail := r.loader.View()
	if r.loader.State() == lazyload.StateFailed {
		detail = style.ErrorText.Render("details unavailable")
	}
	b.WriteString(detail)
	return b.String()
}
