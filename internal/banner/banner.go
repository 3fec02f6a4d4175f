package banner

import (
	"trendbench/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

func GetString() string {
	renderer := lipgloss.DefaultRenderer()

	style := renderer.NewStyle().
		Foreground(styles.ColorBanner).
		Bold(true)

	ascii := `
  ______                    ________                 __
 /_  __/_______  ____  ____/ / __ )___  ____  _____/ /_
  / / / ___/ _ \/ __ \/ __  / __  / _ \/ __ \/ ___/ __ \
 / / / /  /  __/ / / / /_/ / /_/ /  __/ / / / /__/ / / /
/_/ /_/   \___/_/ /_/\__,_/_____/\___/_/ /_/\___/_/ /_/`

	return "\n" + style.Render(ascii) + "\n"
}
