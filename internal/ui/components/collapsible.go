package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// NewSection creates a collapsible section using Fyne's Accordion. The
// export panel stacks one section per destination, so all but the first
// usually start collapsed to save vertical space.
func NewSection(title string, content fyne.CanvasObject, expanded bool) *widget.Accordion {
	accordion := widget.NewAccordion(
		widget.NewAccordionItem(title, content),
	)
	if expanded {
		accordion.Open(0)
	} else {
		accordion.Close(0)
	}
	return accordion
}
