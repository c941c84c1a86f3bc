package render

import (
	"strings"
	"unicode"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

var (
	titleStyle   = color.New(color.FgCyan, color.Bold)
	labelStyle   = color.New(color.FgWhite, color.Bold)
	addressStyle = color.New(color.FgGreen, color.Bold)
	hashStyle    = color.New(color.FgWhite)
	faintStyle   = color.New(color.Faint)
	errorStyle   = color.New(color.FgRed)
	pendingStyle = color.New(color.FgYellow)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// Title turns a camelCase name like publishTokenForm into "Publish Token Form"
func Title(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return cases.Title(language.English, cases.NoLower).String(b.String())
}

// FormatState colors a deployment state
func FormatState(state models.DeploymentState) string {
	switch state {
	case models.StateConfirmed:
		return color.New(color.FgGreen, color.Bold).Sprint(string(state))
	case models.StateFailed:
		return errorStyle.Sprint(string(state))
	case models.StatePending, models.StateSubmitted:
		return pendingStyle.Sprint(string(state))
	default:
		return faintStyle.Sprint(string(state))
	}
}

// orDash renders empty values as a faint dash
func orDash(value string) string {
	if value == "" {
		return faintStyle.Sprint("-")
	}
	return value
}
