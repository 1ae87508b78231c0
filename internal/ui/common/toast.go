package common

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
)

// ToastType identifies the type of toast notification
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
)

// ToastDismissed is sent when a toast should be dismissed
type ToastDismissed struct{}

// ToastModel shows one short-lived status message at a time.
type ToastModel struct {
	message   string
	kind      ToastType
	showUntil time.Time
	styles    Styles
	now       func() time.Time
}

// NewToastModel creates a new toast model
func NewToastModel() *ToastModel {
	return &ToastModel{styles: DefaultStyles(), now: time.Now}
}

// SetStyles updates the toast styles (for theme changes).
func (m *ToastModel) SetStyles(styles Styles) {
	m.styles = styles
}

// Show displays message for duration and returns the dismissal tick.
func (m *ToastModel) Show(message string, kind ToastType, duration time.Duration) tea.Cmd {
	m.message = message
	m.kind = kind
	m.showUntil = m.now().Add(duration)
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return ToastDismissed{}
	})
}

// ShowSuccess shows a success toast
func (m *ToastModel) ShowSuccess(message string) tea.Cmd {
	return m.Show(message, ToastSuccess, 2*time.Second)
}

// ShowError shows an error toast
func (m *ToastModel) ShowError(message string) tea.Cmd {
	return m.Show(message, ToastError, 5*time.Second)
}

// ShowInfo shows an info toast
func (m *ToastModel) ShowInfo(message string) tea.Cmd {
	return m.Show(message, ToastInfo, 2*time.Second)
}

// Update clears an expired toast on dismissal.
func (m *ToastModel) Update(msg tea.Msg) (*ToastModel, tea.Cmd) {
	if _, ok := msg.(ToastDismissed); ok && !m.Visible() {
		m.message = ""
	}
	return m, nil
}

// Visible returns whether the toast is currently visible
func (m *ToastModel) Visible() bool {
	return m.message != "" && m.now().Before(m.showUntil)
}

// View renders the toast, or "" when nothing is showing.
func (m *ToastModel) View() string {
	if !m.Visible() {
		return ""
	}
	var style lipgloss.Style
	switch m.kind {
	case ToastSuccess:
		style = m.styles.ToastSuccess
	case ToastError:
		style = m.styles.ToastError
	default:
		style = m.styles.ToastInfo
	}
	return style.Render(m.message)
}
