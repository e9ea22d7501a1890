package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/gophforum/internal/client/forms"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
)

var (
	errorBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("1")).
				Padding(0, 1)

	successBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("2")).
				Padding(0, 1)

	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			PaddingLeft(2)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// errReported is returned by commands whose failure was already shown.
var errReported = errors.New("request failed")

func (a *App) alertError(msg string) {
	fmt.Fprintln(a.out, errorBannerStyle.Render(msg))
}

func (a *App) alertSuccess(msg string) {
	fmt.Fprintln(a.out, successBannerStyle.Render(msg))
}

func (a *App) info(msg string) {
	fmt.Fprintln(a.out, dimStyle.Render(msg))
}

// report shows the failure of f: the form-level error as a banner, then
// one line per field that has an error of its own.
func (a *App) report(f *forms.Form) error {
	if e, ok := f.Error(); ok {
		a.alertError(e.Message)
	}

	seen := map[string]bool{fielderrors.RootLocation: true}
	for _, fe := range f.FieldErrors() {
		path := fe.Path()
		if seen[path] {
			continue
		}
		seen[path] = true
		if e, ok := f.Error(path); ok {
			fmt.Fprintln(a.out, fieldErrorStyle.Render(path+": "+e.Message))
		}
	}
	return errReported
}
