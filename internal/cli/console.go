package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nigamshah29/TokenCrowdsale/internal/app"
	"github.com/nigamshah29/TokenCrowdsale/internal/cli/render"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// autoLoadDelay is how long the console waits before loading the artifacts
const autoLoadDelay = time.Second

// Console actions
const (
	actionLoad      = "load"
	actionToken     = "token"
	actionCrowdsale = "crowdsale"
	actionAddress   = "address"
	actionRefresh   = "refresh"
)

// consoleActions is what the console drives; a thin layer over the app
type consoleActions interface {
	Load(ctx context.Context) error
	PublishToken(ctx context.Context) error
	PublishCrowdsale(ctx context.Context) error
	SetTokenAddress(ctx context.Context, address string) error
	Refresh(ctx context.Context) error
	View(ctx context.Context) *usecase.SessionView
}

type autoLoadMsg struct{}

type sessionChangedMsg struct{}

type actionDoneMsg struct {
	action string
	err    error
}

// consoleModel is the bubbletea model for the interactive console
type consoleModel struct {
	ctx     context.Context
	actions consoleActions
	changes <-chan struct{}
	network string

	view       *usecase.SessionView
	busy       map[string]bool
	editing    bool
	input      string
	lastErr    string
	autoLoad   bool
	loadedOnce bool
	quitting   bool
}

func newConsoleModel(ctx context.Context, actions consoleActions, changes <-chan struct{}, network string) consoleModel {
	return consoleModel{
		ctx:      ctx,
		actions:  actions,
		changes:  changes,
		network:  network,
		view:     actions.View(ctx),
		busy:     make(map[string]bool),
		autoLoad: true,
	}
}

// Init schedules the automatic load and starts listening for session changes
func (m consoleModel) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForChange(m.changes)}
	if m.autoLoad {
		cmds = append(cmds, tea.Tick(autoLoadDelay, func(time.Time) tea.Msg { return autoLoadMsg{} }))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case autoLoadMsg:
		if m.loadedOnce {
			return m, nil
		}
		return m.start(actionLoad, m.actions.Load)

	case sessionChangedMsg:
		m.view = m.actions.View(m.ctx)
		return m, waitForChange(m.changes)

	case actionDoneMsg:
		delete(m.busy, msg.action)
		if msg.action == actionLoad {
			m.loadedOnce = true
		}
		m.lastErr = ""
		if msg.err != nil && !errors.Is(msg.err, domain.ErrCancelled) {
			m.lastErr = usecase.DisplayMessage(msg.err)
		}
		m.view = m.actions.View(m.ctx)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "l":
			return m.start(actionLoad, m.actions.Load)
		case "t":
			if !m.enabled(actionToken) {
				return m, nil
			}
			return m.start(actionToken, m.actions.PublishToken)
		case "c":
			if !m.enabled(actionCrowdsale) {
				return m, nil
			}
			return m.start(actionCrowdsale, m.actions.PublishCrowdsale)
		case "a":
			m.editing = true
			m.input = m.view.Session.Field(models.FormPublishCrowdsale, models.FieldTokenAddress)
		case "r":
			return m.start(actionRefresh, m.actions.Refresh)
		}
	}
	return m, nil
}

func (m consoleModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.editing = false
		m.input = ""
	case tea.KeyEnter:
		m.editing = false
		address := strings.TrimSpace(m.input)
		m.input = ""
		return m.start(actionAddress, func(ctx context.Context) error {
			return m.actions.SetTokenAddress(ctx, address)
		})
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// enabled reports whether a publish control can be used: at most one
// outstanding request per step
func (m consoleModel) enabled(action string) bool {
	if m.busy[action] {
		return false
	}
	step := models.StepToken
	if action == actionCrowdsale {
		step = models.StepCrowdsale
	}
	return !m.view.InFlight[step]
}

// start runs fn in the background and reports back with actionDoneMsg
func (m consoleModel) start(action string, fn func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	if m.busy[action] {
		return m, nil
	}
	m.busy[action] = true
	ctx := m.ctx
	return m, func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctx)}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return sessionChangedMsg{}
	}
}

// View renders the UI
func (m consoleModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := color.New(color.FgCyan, color.Bold)
	key := color.New(color.FgYellow, color.Bold)
	faint := color.New(color.Faint)

	b.WriteString(title.Sprint("NigamCoin crowdsale deployment"))
	if m.network != "" {
		b.WriteString(faint.Sprintf("  (%s)", m.network))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s load contracts   token %s  crowdsale %s%s\n\n",
		key.Sprint("[l]"), loadedMark(m.view.TokenLoaded), loadedMark(m.view.CrowdsaleLoaded), m.busyMark(actionLoad)))

	m.writeForm(&b, models.FormPublishToken)
	b.WriteString(fmt.Sprintf("%s publish token%s\n\n", m.keyLabel("[t]", actionToken), m.busyMark(actionToken)))

	m.writeForm(&b, models.FormPublishCrowdsale)
	if m.editing {
		b.WriteString(fmt.Sprintf("  token address: %s█\n", m.input))
	}
	b.WriteString(fmt.Sprintf("%s publish crowdsale   %s edit token address%s\n\n",
		m.keyLabel("[c]", actionCrowdsale), key.Sprint("[a]"), m.busyMark(actionAddress)))

	if msg := m.errorMessage(); msg != "" {
		b.WriteString(render.FormatError(msg))
		b.WriteString("\n\n")
	}

	if m.editing {
		b.WriteString(faint.Sprint("Enter: save  Esc: cancel\n"))
	} else {
		b.WriteString(faint.Sprint("l: load  t: token  c: crowdsale  a: address  r: refresh  q: quit\n"))
	}

	return b.String()
}

func (m consoleModel) writeForm(b *strings.Builder, form string) {
	b.WriteString(color.New(color.Bold).Sprint(render.Title(form)))
	b.WriteString("\n")
	for _, field := range models.FieldNames(form) {
		value := m.view.Session.Field(form, field)
		if value == "" {
			value = color.New(color.Faint).Sprint("-")
		}
		b.WriteString(fmt.Sprintf("  %-18s %s\n", field, value))
	}
}

func (m consoleModel) keyLabel(label, action string) string {
	if !m.enabled(action) {
		return color.New(color.Faint).Sprint(label)
	}
	return color.New(color.FgYellow, color.Bold).Sprint(label)
}

func (m consoleModel) busyMark(action string) string {
	if m.busy[action] {
		return color.New(color.FgYellow).Sprint("  working...")
	}
	return ""
}

// errorMessage prefers the session's error region over local failures
func (m consoleModel) errorMessage() string {
	if m.view.Session.ErrorMsg != "" {
		return m.view.Session.ErrorMsg
	}
	return m.lastErr
}

func loadedMark(ok bool) string {
	if ok {
		return color.New(color.FgGreen).Sprint("✓")
	}
	return color.New(color.Faint).Sprint("○")
}

// appActions adapts the app's use cases to the console
type appActions struct {
	app *app.App
}

func (a *appActions) Load(ctx context.Context) error {
	_, err := a.app.LoadContracts.Execute(ctx)
	return err
}

// The key press is the confirmation, so publishing from the console never prompts
func (a *appActions) PublishToken(ctx context.Context) error {
	_, err := a.app.DeployToken.Execute(ctx, usecase.DeployParams{AssumeYes: true, NoWait: a.app.Config.NoWait})
	return err
}

func (a *appActions) PublishCrowdsale(ctx context.Context) error {
	_, err := a.app.DeployCrowdsale.Execute(ctx, usecase.DeployCrowdsaleParams{
		DeployParams: usecase.DeployParams{AssumeYes: true, NoWait: a.app.Config.NoWait},
	})
	return err
}

func (a *appActions) SetTokenAddress(ctx context.Context, address string) error {
	return a.app.ManageSession.SetField(ctx, models.FormPublishCrowdsale, models.FieldTokenAddress, address)
}

func (a *appActions) Refresh(ctx context.Context) error {
	_, err := a.app.RefreshDeployments.Execute(ctx)
	return err
}

func (a *appActions) View(ctx context.Context) *usecase.SessionView {
	return a.app.ManageSession.Show(ctx)
}

// NewConsoleCmd creates the console command
func NewConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Interactive deployment console",
		Long: `Open an interactive console with the token and crowdsale forms.
Contracts are loaded automatically one second after start.

Keys:
  l  load contract artifacts
  t  publish the token
  c  publish the crowdsale
  a  edit the crowdsale token address
  r  refresh pending deployments
  q  quit`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd)
		},
	}
}

func runConsole(cmd *cobra.Command) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	// The console draws the error region itself
	app.ErrorRegion.Mute(true)
	defer app.ErrorRegion.Mute(false)

	watcher := app.Controller.Watch()
	defer watcher.Close()

	network := app.Config.NetworkName
	if app.Config.RPCURL != "" {
		network = app.Config.RPCURL
	}

	// Deployments outlive the command timeout; only quitting stops observation
	ctx, cancel := context.WithCancel(context.WithoutCancel(cmd.Context()))
	defer cancel()

	model := newConsoleModel(ctx, &appActions{app: app}, watcher.C, network)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("console failed: %w", err)
	}
	return nil
}
