package listing

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectern/internal/ui/theme"
)

const bannerArt = `
 ██╗     ███████╗ ██████╗████████╗███████╗██████╗ ███╗   ██╗
 ██║     ██╔════╝██╔════╝╚══██╔══╝██╔════╝██╔══██╗████╗  ██║
 ██║     █████╗  ██║        ██║   █████╗  ██████╔╝██╔██╗ ██║
 ██║     ██╔══╝  ██║        ██║   ██╔══╝  ██╔══██╗██║╚██╗██║
 ███████╗███████╗╚██████╗   ██║   ███████╗██║  ██║██║ ╚████║
 ╚══════╝╚══════╝ ╚═════╝   ╚═╝   ╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝`

const bannerCompact = "L E C T E R N"

// RenderBanner returns the banner in the primary color, or a compact
// fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 64 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
