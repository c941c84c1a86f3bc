package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// SessionRenderer renders the forms, deployment results and error region
type SessionRenderer struct {
	out io.Writer
}

// NewSessionRenderer creates a new session renderer
func NewSessionRenderer(out io.Writer) *SessionRenderer {
	return &SessionRenderer{out: out}
}

// Render displays the session
func (r *SessionRenderer) Render(view *usecase.SessionView) error {
	if view == nil || view.Session == nil {
		return fmt.Errorf("no session to render")
	}
	s := view.Session

	for _, form := range []string{models.FormPublishToken, models.FormPublishCrowdsale} {
		titleStyle.Fprintln(r.out, Title(form))
		fmt.Fprintln(r.out, r.formTable(s, form))
		fmt.Fprintln(r.out)
	}

	if len(s.Results) > 0 {
		titleStyle.Fprintln(r.out, "Deployments")
		fmt.Fprintln(r.out, r.resultsTable(view))
		fmt.Fprintln(r.out)
	}

	labelStyle.Fprint(r.out, "Artifacts: ")
	fmt.Fprintf(r.out, "token %s, crowdsale %s\n", loaded(view.TokenLoaded), loaded(view.CrowdsaleLoaded))

	if s.ErrorMsg != "" {
		fmt.Fprintln(r.out, FormatError(s.ErrorMsg))
	}

	return nil
}

func (r *SessionRenderer) formTable(s *models.Session, form string) string {
	t := newTable()
	for _, field := range models.FieldNames(form) {
		t.AppendRow(table.Row{faintStyle.Sprint(field), orDash(s.Field(form, field))})
	}
	return t.Render()
}

func (r *SessionRenderer) resultsTable(view *usecase.SessionView) string {
	t := newTable()
	t.AppendHeader(table.Row{"STEP", "CONTRACT", "STATE", "TRANSACTION", "ADDRESS"})
	for _, step := range []models.DeploymentStep{models.StepToken, models.StepCrowdsale} {
		res, ok := view.Session.Results[step]
		if !ok {
			continue
		}
		state := FormatState(res.State)
		if view.InFlight[step] {
			state += pendingStyle.Sprint(" (in flight)")
		}
		t.AppendRow(table.Row{string(step), res.ContractName, state, orDash(res.TxHash), orDash(res.Address)})
		if res.Error != "" {
			t.AppendRow(table.Row{"", "", errorStyle.Sprint(res.Error), "", ""})
		}
	}
	return t.Render()
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:  "  ",
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignLeft}})
	return t
}

func loaded(ok bool) string {
	if ok {
		return addressStyle.Sprint("loaded")
	}
	return faintStyle.Sprint("not loaded")
}
