// Package tui is the terminal front end of the panel.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AlexZinkM/eth-wallet-panel/internal/notify"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	inputDeposit = iota
	inputWithdraw
)

// toastTick re-renders so expired toasts disappear
const toastTick = 500 * time.Millisecond

// opDoneMsg reports a finished controller call
type opDoneMsg struct {
	op      string
	outcome panel.Outcome
}

type tickMsg time.Time

// Model is the bubbletea model of the panel
type Model struct {
	ctx      context.Context
	panel    *panel.Controller
	toasts   *notify.Center
	contract string

	inputs   [2]textinput.Model
	focus    int
	spinner  spinner.Model
	running  map[string]bool
	help     help.Model
	keys     keyMap
	quitting bool
}

// New creates the terminal panel. ctx bounds every controller call.
func New(ctx context.Context, p *panel.Controller, toasts *notify.Center, contract string) Model {
	var inputs [2]textinput.Model
	for i, label := range []string{"Deposit amount", "Withdraw amount"} {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 80
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[inputDeposit].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		panel:    p,
		toasts:   toasts,
		contract: contract,
		inputs:   inputs,
		spinner:  sp,
		running:  make(map[string]bool),
		help:     help.New(),
		keys:     keys,
	}
}

func tick() tea.Cmd {
	return tea.Tick(toastTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, tick())
}

// run calls a controller operation off the UI goroutine
func (m Model) run(op string, call func(context.Context) panel.Outcome) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, outcome: call(ctx)}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opDoneMsg:
		delete(m.running, msg.op)
		if msg.outcome == panel.OutcomeOK {
			// the controller cleared the amount after a confirmed transaction
			s := m.panel.State()
			m.inputs[inputDeposit].SetValue(s.DepositAmount)
			m.inputs[inputWithdraw].SetValue(s.WithdrawAmount)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			return m, m.inputs[m.focus].Focus()

		case key.Matches(msg, m.keys.Refresh):
			m.running["refresh"] = true
			return m, m.run("refresh", m.panel.RefreshBalance)

		case key.Matches(msg, m.keys.Connect):
			m.running["connect"] = true
			return m, m.run("connect", m.panel.EnsureAccountAccess)

		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.focus == inputDeposit {
		m.panel.SetDepositAmount(m.inputs[inputDeposit].Value())
	} else {
		m.panel.SetWithdrawAmount(m.inputs[inputWithdraw].Value())
	}
	return m, cmd
}

// submit starts the operation of the focused input.
// A second submit while one runs reaches the controller, which refuses it.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.focus == inputDeposit {
		amount := m.inputs[inputDeposit].Value()
		m.running["deposit"] = true
		return m, m.run("deposit", func(ctx context.Context) panel.Outcome {
			return m.panel.DepositAmount(ctx, amount)
		})
	}
	amount := m.inputs[inputWithdraw].Value()
	m.running["withdraw"] = true
	return m, m.run("withdraw", func(ctx context.Context) panel.Outcome {
		return m.panel.WithdrawAmount(ctx, amount)
	})
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	s := m.panel.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Vault panel"))
	b.WriteString("\n")
	for _, t := range m.toasts.Active() {
		b.WriteString(toastStyles[t.Kind].Render("• " + t.Message))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	balance := s.Balance
	if balance == "" {
		balance = "-"
	}
	card := []string{
		balanceStyle.Render(fmt.Sprintf("Vault Balance: %s ETH", balance)),
	}
	if s.FiatValue != "" {
		card = append(card, fmt.Sprintf("%s %s", s.FiatValue, strings.ToUpper(s.FiatCurrency)))
	}
	account := s.Account
	if account == "" {
		account = "not connected (ctrl+a)"
	}
	card = append(card,
		mutedStyle.Render("Account  "+account),
		mutedStyle.Render("Contract "+m.contract),
	)
	if m.running["refresh"] || m.running["connect"] {
		card = append(card, m.spinner.View()+" working...")
	}
	b.WriteString(cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, card...)))
	b.WriteString("\n")

	b.WriteString(m.operationCard(inputDeposit, "Deposit", s.DepositPhase, s.DepositReceipt))
	b.WriteString("\n")
	b.WriteString(m.operationCard(inputWithdraw, "Withdraw", s.WithdrawPhase, s.WithdrawReceipt))
	b.WriteString("\n")

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) operationCard(idx int, title string, phase panel.Phase, receipt *types.Receipt) string {
	style := cardStyle
	if m.focus == idx {
		style = focusedCardStyle
	}

	status := string(phase)
	if phase == panel.PhaseSigning || phase == panel.PhasePending {
		status = m.spinner.View() + " " + status
	}

	lines := []string{
		titleStyle.Render(title) + "  " + mutedStyle.Render(status),
		m.inputs[idx].View(),
	}
	if receipt != nil {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("last tx %s (block %s)", shortHash(receipt.TxHash.Hex()), receipt.BlockNumber)))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func shortHash(h string) string {
	if len(h) <= 14 {
		return h
	}
	return h[:8] + "…" + h[len(h)-6:]
}
