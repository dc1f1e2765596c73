package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing
// current room, exits, vitals and move count.
func (m Model) renderStatusBar() string {
	gs := m.engine.State
	p := gs.Player

	roomName := p.CurrentRoom
	var dirs []string
	if room, ok := gs.Rooms[p.CurrentRoom]; ok {
		roomName = room.Name
		for dir := range room.Exits {
			dirs = append(dirs, string(dir))
		}
		sort.Strings(dirs)
	}
	exitStr := strings.Join(dirs, ",")

	left := fmt.Sprintf(" %s | Exits: %s", roomName, exitStr)
	right := fmt.Sprintf("HP:%d/%d | L%d | G:%d | M:%d ",
		p.Health, p.MaxHealth, p.Level, p.Gold, p.Moves)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
