package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	infoLabel   *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	infoLabel := widget.NewLabel("")

	return &StatusBar{
		container:   container.NewBorder(nil, nil, statusLabel, infoLabel),
		statusLabel: statusLabel,
		infoLabel:   infoLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// SetImageInfo shows the size of the displayed buffer; zero values clear it.
func (sb *StatusBar) SetImageInfo(width, height int, source string) {
	if width <= 0 || height <= 0 {
		sb.infoLabel.SetText("")
		return
	}
	sb.infoLabel.SetText(fmt.Sprintf("%s  %dx%d", source, width, height))
}
