package components

import (
	"image/color"

	"image-processor/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ActionLabels are the button captions, indexed by action.
var ActionLabels = map[models.Action]string{
	models.ActionLoadFile:       "Load File",
	models.ActionCapture:        "Capture Photo",
	models.ActionShowOriginal:   "Original",
	models.ActionIsolateChannel: "Channel",
	models.ActionRotate:         "Rotate",
	models.ActionNegate:         "Negative",
	models.ActionDrawCircle:     "Circle",
	models.ActionExport:         "Save",
}

// Toolbar holds one button per action. Buttons start disabled until ApplyActions runs.
type Toolbar struct {
	container *fyne.Container
	buttons   map[models.Action]*widget.Button
	handlers  map[models.Action]func()
}

func NewToolbar() *Toolbar {
	t := &Toolbar{
		buttons:  make(map[models.Action]*widget.Button, len(models.AllActions)),
		handlers: make(map[models.Action]func(), len(models.AllActions)),
	}
	t.setupToolbar()
	return t
}

func (t *Toolbar) setupToolbar() {
	background := canvas.NewRectangle(color.RGBA{R: 250, G: 249, B: 245, A: 255})
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeWidth = 1.0
	border.StrokeColor = color.RGBA{R: 231, G: 231, B: 231, A: 255}

	sources := container.NewHBox()
	edits := container.NewHBox()

	for _, action := range models.AllActions {
		button := widget.NewButton(ActionLabels[action], func() { t.trigger(action) })
		button.Disable()
		t.buttons[action] = button

		switch action {
		case models.ActionLoadFile, models.ActionCapture, models.ActionExport:
			button.Importance = widget.HighImportance
			sources.Add(button)
		default:
			edits.Add(button)
		}
	}

	content := container.NewBorder(nil, nil, sources, nil, container.NewCenter(edits))

	t.container = container.NewStack(
		border,
		container.NewPadded(
			container.NewStack(background, container.NewPadded(content)),
		),
	)
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetHandler(action models.Action, handler func()) {
	t.handlers[action] = handler
}

// ApplyActions enables exactly the buttons in enabled.
func (t *Toolbar) ApplyActions(enabled models.ActionSet) {
	for action, button := range t.buttons {
		if enabled.Has(action) {
			button.Enable()
		} else {
			button.Disable()
		}
	}
}

func (t *Toolbar) trigger(action models.Action) {
	if handler := t.handlers[action]; handler != nil {
		handler()
	}
}
