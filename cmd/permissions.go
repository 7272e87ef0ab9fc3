package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/spf13/cobra"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Print the role permission matrix",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), renderPermissions())
	},
}

func renderPermissions() string {
	const labelWidth = 26
	const cellWidth = 13

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("Role Permissions")
	header := lipgloss.NewStyle().Bold(true).Width(cellWidth).Align(lipgloss.Center)
	label := lipgloss.NewStyle().Width(labelWidth)
	granted := lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Width(cellWidth).Align(lipgloss.Center)
	denied := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(cellWidth).Align(lipgloss.Center)

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  ", title)
	b.WriteString(label.Render(""))
	for _, role := range rbac.AllRoles {
		b.WriteString(header.Render(role.Label()))
	}
	b.WriteString("\n")

	for _, row := range rbac.Rows() {
		b.WriteString("  ")
		b.WriteString(label.Render(row.Label))
		for _, ok := range row.Granted {
			if ok {
				b.WriteString(granted.Render("yes"))
			} else {
				b.WriteString(denied.Render("-"))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
