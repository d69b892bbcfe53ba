package profile

import (
	"fmt"
	"strings"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	verifyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

func Render(info domain.UserInfo, state domain.AuthState) string {
	name := firstNonEmpty(info.Name, info.Nickname, info.Email, "Unknown user")

	email := info.Email
	if email != "" && info.EmailVerified {
		email += " " + verifyStyle.Render("(verified)")
	}

	lines := []string{
		titleStyle.Render(name),
		field("nickname", info.Nickname),
		field("email", email),
		field("picture", info.Picture),
		field("roles", strings.Join(state.Roles, ", ")),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(key, value string) string {
	rendered := valueStyle.Render(value)
	if value == "" {
		rendered = faintStyle.Render("n/a")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(key+":"), " ", rendered)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Admin renders the admin landing view.
func Admin(state domain.AuthState) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Admin"),
		valueStyle.Render(fmt.Sprintf("Signed in with roles: %s", strings.Join(state.Roles, ", "))),
	)
}
