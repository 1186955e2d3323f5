package activity

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rowboat-io/rowboat/internal/domain"
)

// Panel shows the session activity log, newest entry first. Entries
// arrive from the session store via SetEntries; the panel never reaches
// into the store itself.
type Panel struct {
	widget.BaseWidget

	allEntries []domain.ActivityEntry
	entries    []domain.ActivityEntry

	statusFilter string // "" (all), domain.ActivityOK or domain.ActivityFailed

	countLabel   *widget.Label
	filterSelect *widget.Select
	listWidget   *widget.List
	content      *fyne.Container
}

// NewPanel creates an empty activity panel.
func NewPanel() *Panel {
	p := &Panel{}

	p.ExtendBaseWidget(p)
	p.buildUI()
	return p
}

func (p *Panel) buildUI() {
	p.countLabel = widget.NewLabel("Activity (0)")

	p.filterSelect = widget.NewSelect([]string{"All", "OK", "Failed"}, func(selected string) {
		switch selected {
		case "OK":
			p.statusFilter = domain.ActivityOK
		case "Failed":
			p.statusFilter = domain.ActivityFailed
		default:
			p.statusFilter = ""
		}
		p.applyFilter()
	})
	p.filterSelect.SetSelected("All")

	p.listWidget = widget.NewList(
		func() int {
			return len(p.entries)
		},
		func() fyne.CanvasObject {
			statusLabel := widget.NewLabel("")
			timeLabel := widget.NewLabel("")
			kindLabel := widget.NewLabel("")
			kindLabel.TextStyle = fyne.TextStyle{Bold: true}
			summaryLabel := widget.NewLabel("")
			summaryLabel.Truncation = fyne.TextTruncateEllipsis
			detailLabel := widget.NewLabel("")
			detailLabel.Importance = widget.LowImportance
			detailLabel.Truncation = fyne.TextTruncateEllipsis

			return container.NewBorder(
				nil, nil,
				statusLabel,
				nil,
				container.NewVBox(
					container.NewHBox(timeLabel, kindLabel),
					summaryLabel,
					detailLabel,
				),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(p.entries) {
				return
			}
			entry := p.entries[id]

			border := obj.(*fyne.Container)
			statusLabel := border.Objects[1].(*widget.Label)
			centerBox := border.Objects[0].(*fyne.Container)
			topRow := centerBox.Objects[0].(*fyne.Container)
			timeLabel := topRow.Objects[0].(*widget.Label)
			kindLabel := topRow.Objects[1].(*widget.Label)
			summaryLabel := centerBox.Objects[1].(*widget.Label)
			detailLabel := centerBox.Objects[2].(*widget.Label)

			if entry.Status == domain.ActivityOK {
				statusLabel.SetText("✓")
			} else {
				statusLabel.SetText("✗")
			}
			timeLabel.SetText(entry.Timestamp.Format("15:04:05"))
			kindLabel.SetText(string(entry.Kind))
			summaryLabel.SetText(entry.Summary)
			detailLabel.SetText(entry.Detail)
		},
	)

	header := container.NewBorder(
		nil, nil,
		p.countLabel,
		p.filterSelect,
		nil,
	)

	p.content = container.NewBorder(
		header,
		nil, nil, nil,
		p.listWidget,
	)
}

// SetEntries replaces the log with a fresh snapshot from the store,
// which keeps entries oldest first; the panel flips them so the latest
// action is on top.
func (p *Panel) SetEntries(entries []domain.ActivityEntry) {
	p.allEntries = make([]domain.ActivityEntry, len(entries))
	for i, e := range entries {
		p.allEntries[len(entries)-1-i] = e
	}
	p.applyFilter()
}

func (p *Panel) applyFilter() {
	if p.statusFilter == "" {
		p.entries = p.allEntries
	} else {
		filtered := make([]domain.ActivityEntry, 0, len(p.allEntries))
		for _, e := range p.allEntries {
			if e.Status == p.statusFilter {
				filtered = append(filtered, e)
			}
		}
		p.entries = filtered
	}

	p.countLabel.SetText(fmt.Sprintf("Activity (%d)", len(p.entries)))
	p.listWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}
