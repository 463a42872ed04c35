package cli

import (
	"errors"
	"fmt"
)

// ErrExit is returned when the user chooses to exit the menu
var ErrExit = errors.New("exit")

// Menu provides an interactive menu interface
type Menu struct {
	ctx *RunContext
}

// NewMenu creates a new Menu instance
func NewMenu(ctx *RunContext) *Menu {
	return &Menu{ctx: ctx}
}

var menuOptions = []string{
	"Scan for large directories",
	"Rebalance (scan, select, move)",
	"Show status",
	"Quit",
}

// Show displays the main menu and handles user input until the user quits
func (m *Menu) Show() error {
	m.ctx.UI.Header("Home Directory Rebalance")
	m.ctx.UI.Infof("Scan root: %s, destination: %s at %s",
		m.ctx.Settings.RootPath, m.ctx.Settings.Device, m.ctx.Settings.MountPoint)

	for {
		m.ctx.UI.Print("")
		choice, err := m.ctx.UI.PromptSelect("What would you like to do?", menuOptions)
		if err != nil {
			return err
		}

		if err := m.handleChoice(choice); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			m.ctx.UI.Error(fmt.Sprintf("%v", err))
		}
	}
}

func (m *Menu) handleChoice(choice int) error {
	switch choice {
	case 0:
		return RunScan(m.ctx)
	case 1:
		return RunRebalance(m.ctx)
	case 2:
		return RunStatus(m.ctx)
	default:
		return ErrExit
	}
}
