package errors

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	apperrors "github.com/rowboat-io/rowboat/internal/errors"
)

// ShowError displays a plain error dialog.
func ShowError(err error, window fyne.Window) {
	if err == nil {
		return
	}

	dialog.ShowError(err, window)
}

// ShowClassifiedError displays a rich error dialog with recovery
// suggestions and expandable technical details. onRetry, when not nil,
// adds a Retry button for errors that carry a retry action.
func ShowClassifiedError(err error, window fyne.Window, onRetry func()) {
	if err == nil {
		return
	}

	uiErr := apperrors.ClassifyAPIError(err)
	if uiErr == nil {
		dialog.ShowError(err, window)
		return
	}

	// Word-wrapping labels keep long CRM messages from stretching the window
	msgLabel := widget.NewLabel(uiErr.Message)
	msgLabel.Wrapping = fyne.TextWrapWord
	content := container.NewVBox(msgLabel)

	if len(uiErr.Recovery) > 0 {
		content.Add(widget.NewSeparator())
		content.Add(widget.NewLabel("You can:"))
		for _, suggestion := range uiErr.Recovery {
			lbl := widget.NewLabel("• " + suggestion)
			lbl.Wrapping = fyne.TextWrapWord
			content.Add(lbl)
		}
	}

	if uiErr.Details != "" {
		detailsLabel := widget.NewLabel(uiErr.Details)
		detailsLabel.Wrapping = fyne.TextWrapWord
		content.Add(widget.NewAccordion(
			widget.NewAccordionItem("Technical Details", detailsLabel),
		))
	}

	hasRetry := false
	for _, action := range uiErr.Actions {
		if action.Label == "Retry" && onRetry != nil {
			hasRetry = true
			break
		}
	}

	if hasRetry {
		d := dialog.NewCustomConfirm(
			uiErr.Title,
			"Retry",
			"Close",
			content,
			func(retry bool) {
				if retry && onRetry != nil {
					onRetry()
				}
			},
			window,
		)
		d.Resize(fyne.NewSize(480, 360))
		d.Show()
		return
	}

	d := dialog.NewCustom(uiErr.Title, "Close", content, window)
	d.Resize(fyne.NewSize(480, 360))
	d.Show()
}
