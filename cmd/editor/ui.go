package main

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tilesmith/tilemap"
	"github.com/milk9111/tilesmith/tool"
	"golang.org/x/image/font/gofont/goregular"
)

const panelWidth = 220

var toolOrder = []tool.ID{tool.Brush, tool.Eraser, tool.Eyedropper, tool.Fill, tool.Line}

// uiCallbacks are the session operations the widgets trigger.
type uiCallbacks struct {
	onTool       func(tool.ID)
	onLayer      func(index int)
	onNewLayer   func()
	onNewObjects func()
	onDuplicate  func()
	onDelete     func()
	onMoveUp     func()
	onMoveDown   func()
	onToggleShow func()
	onToggleLock func()
	onUndo       func()
	onRedo       func()
	onSave       func()
}

// toolBar mirrors the active tool in a radio group.
type toolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
}

func (tb *toolBar) setTool(id tool.ID) {
	for i, t := range toolOrder {
		if t == id && tb != nil && tb.group != nil {
			tb.group.SetActive(tb.buttons[i])
			return
		}
	}
}

// layerEntry is one row of the layer list.
type layerEntry struct {
	Index int
	Layer tilemap.Layer
}

// layerPanel lists the stack top first, like most editors.
type layerPanel struct {
	list    *widget.List
	entries []any
	// suppress marks programmatic updates so they are not read as clicks.
	suppress bool
}

func (lp *layerPanel) setLayers(layers []tilemap.Layer, active int) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppress = true
	defer func() { lp.suppress = false }()

	lp.entries = make([]any, 0, len(layers))
	for i := len(layers) - 1; i >= 0; i-- {
		lp.entries = append(lp.entries, layerEntry{Index: i, Layer: layers[i]})
	}
	lp.list.SetEntries(lp.entries)
	for _, e := range lp.entries {
		if e.(layerEntry).Index == active {
			lp.list.SetSelectedEntry(e)
		}
	}
}

func layerLabel(e layerEntry) string {
	flags := ""
	if !e.Layer.Visible {
		flags += " [hidden]"
	}
	if e.Layer.Locked {
		flags += " [locked]"
	}
	kind := "T"
	if e.Layer.IsObject() {
		kind = "O"
	}
	return fmt.Sprintf("%d %s %s%s", e.Index+1, kind, e.Layer.Name, flags)
}

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newTheme(face *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: face,
			EntryColor: &widget.ListEntryColor{
				Unselected:          color.White,
				Selected:            color.RGBA{255, 220, 120, 255},
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 64},
				SelectingBackground: color.RGBA{60, 80, 120, 255},
				SelectedBackground:  color.RGBA{50, 70, 110, 255},
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(color.RGBA{30, 30, 30, 255}),
				Mask: solidNineSlice(color.RGBA{30, 30, 30, 255}),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(color.RGBA{40, 40, 40, 255}),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
				Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
				Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
			},
			TextFace: face,
			TextColor: &widget.ButtonTextColor{
				Idle: color.Black,
			},
		},
	}
}

func button(theme *widget.Theme, face *text.Face, label string, fn func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, face, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if fn != nil {
				fn()
			}
		}),
	)
}

func row(children ...widget.PreferredSizeLocateableWidget) *widget.Container {
	c := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	for _, ch := range children {
		c.AddChild(ch)
	}
	return c
}

func buildToolBar(theme *widget.Theme, face *text.Face, onTool func(tool.ID), initial tool.ID) (*widget.Container, *toolBar) {
	textColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}
	bar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(400, 40)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	tb := &toolBar{}
	for _, id := range toolOrder {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(id.String(), face, textColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(64, 32)),
		)
		tb.buttons = append(tb.buttons, btn)
		bar.AddChild(btn)
	}
	elements := make([]widget.RadioGroupElement, 0, len(tb.buttons))
	for _, b := range tb.buttons {
		elements = append(elements, b)
	}
	tb.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for i, b := range tb.buttons {
				if args.Active == b && onTool != nil {
					onTool(toolOrder[i])
					return
				}
			}
		}),
	)
	tb.setTool(initial)
	return bar, tb
}

func buildLayerPanel(theme *widget.Theme, face *text.Face, cb uiCallbacks) (*widget.Container, *layerPanel) {
	lp := &layerPanel{}
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(panelWidth, 400)),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	panel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Layers", face, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	))

	lp.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(layerEntry); ok {
				return layerLabel(entry)
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(layerEntry)
			if !ok || lp.suppress || cb.onLayer == nil {
				return
			}
			cb.onLayer(entry.Index)
		}),
	)
	panel.AddChild(lp.list)

	panel.AddChild(row(
		button(theme, face, "Tiles", cb.onNewLayer),
		button(theme, face, "Objects", cb.onNewObjects),
		button(theme, face, "Copy", cb.onDuplicate),
	))
	panel.AddChild(row(
		button(theme, face, "Up", cb.onMoveUp),
		button(theme, face, "Down", cb.onMoveDown),
		button(theme, face, "Delete", cb.onDelete),
	))
	panel.AddChild(row(
		button(theme, face, "Show", cb.onToggleShow),
		button(theme, face, "Lock", cb.onToggleLock),
	))
	panel.AddChild(row(
		button(theme, face, "Undo", cb.onUndo),
		button(theme, face, "Redo", cb.onRedo),
		button(theme, face, "Save", cb.onSave),
	))
	return panel, lp
}

// buildUI assembles the side panel and the toolbar.
func buildUI(cb uiCallbacks, initial tool.ID) (*ebitenui.UI, *toolBar, *layerPanel) {
	ui := &ebitenui.UI{}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("editor: load font: " + err.Error())
	}
	var face text.Face = &text.GoTextFace{Source: src, Size: 14}
	ui.PrimaryTheme = newTheme(&face)

	panel, lp := buildLayerPanel(ui.PrimaryTheme, &face, cb)
	bar, tb := buildToolBar(ui.PrimaryTheme, &face, cb.onTool, initial)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	panel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	bar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(panel)
	root.AddChild(bar)
	ui.Container = root
	return ui, tb, lp
}
