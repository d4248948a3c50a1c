// Package ui holds the options menu and the small bindings it is built from.
package ui

import (
	"image/color"
	"math"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/commonsolutions/fade"
	"github.com/milk9111/commonsolutions/variable"
	"golang.org/x/image/font/basicfont"
)

// MenuOptions configures NewOptionsMenu. Nil callbacks hide their buttons.
type MenuOptions struct {
	Width, Height int
	Title         string
	Status        *variable.Variable[string]
	Volume        *VolumeSlider
	Resume        func()
	Quit          func()

	// Flags for the menu's canvas group. A zero InFlags keeps the menu
	// interactive while shown.
	InFlags  fade.Endpoint
	OutFlags fade.Endpoint
}

// OptionsMenu is a centered panel whose opacity and interactivity follow a
// fade controller.
type OptionsMenu struct {
	UI    *ebitenui.UI
	Group *fade.CanvasGroup
	Fader *fade.Controller[float64]

	status *StringBinding
	slider *widget.Slider
	volume *VolumeSlider
	canvas *ebiten.Image
}

// NewOptionsMenu builds the menu hidden. Fade it in to show it.
func NewOptionsMenu(sched *fade.Scheduler, fopts fade.Options[float64], opts MenuOptions) *OptionsMenu {
	m := &OptionsMenu{volume: opts.Volume}

	m.Group = fade.NewCanvasGroup()
	if opts.InFlags != (fade.Endpoint{}) {
		m.Group.InFlags = opts.InFlags
	}
	m.Group.OutFlags = opts.OutFlags
	m.Fader = fade.New[float64](m.Group, sched, fopts)
	m.Fader.SetImmediate(fade.Out)

	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}),
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(opts.Width/2, opts.Height/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	title := opts.Title
	if title == "" {
		title = "Options"
	}
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &face, white),
		widget.TextOpts.WidgetOpts(center),
	))

	if opts.Status != nil {
		status := widget.NewText(
			widget.TextOpts.Text("", &face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
			widget.TextOpts.WidgetOpts(center),
		)
		m.status = BindText(opts.Status, status)
		panel.AddChild(status)
	}

	if opts.Volume != nil {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text("Volume", &face, white),
			widget.TextOpts.WidgetOpts(center),
		))
		m.slider = widget.NewSlider(
			widget.SliderOpts.Direction(widget.DirectionHorizontal),
			widget.SliderOpts.MinMax(0, 100),
			widget.SliderOpts.WidgetOpts(widget.WidgetOpts.MinSize(200, 16), center),
			widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
				opts.Volume.Set(float64(args.Current) / 100)
			}),
		)
		m.syncSlider()
		panel.AddChild(m.slider)
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text("Default Volume", &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				opts.Volume.RestoreDefault()
				m.syncSlider()
			}),
		))
	}

	for _, b := range []struct {
		label string
		fn    func()
	}{{"Resume", opts.Resume}, {"Quit", opts.Quit}} {
		if b.fn == nil {
			continue
		}
		fn := b.fn
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				fn()
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	m.UI = &ebitenui.UI{Container: root}
	m.UI.PrimaryTheme = newTheme(&face)
	return m
}

// Visible reports whether any part of the menu is drawn.
func (m *OptionsMenu) Visible() bool {
	return m.Group.Alpha > 0
}

// Update forwards input to the widgets while the menu is interactable.
func (m *OptionsMenu) Update() {
	if m.Group.Interactable {
		m.UI.Update()
	}
}

// Draw renders the widgets offscreen and composites them with the group alpha.
func (m *OptionsMenu) Draw(screen *ebiten.Image) {
	alpha := max(0, min(1, m.Group.Alpha))
	if alpha <= 0 {
		return
	}
	b := screen.Bounds()
	if m.canvas == nil || m.canvas.Bounds() != b {
		if m.canvas != nil {
			m.canvas.Deallocate()
		}
		m.canvas = ebiten.NewImage(b.Dx(), b.Dy())
	}
	m.canvas.Clear()
	m.UI.Draw(m.canvas)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(m.canvas, op)
}

// Close stops the fader and detaches the status binding.
func (m *OptionsMenu) Close() {
	if m.status != nil {
		m.status.Disable()
	}
	m.Fader.Dispose()
}

func (m *OptionsMenu) syncSlider() {
	if m.slider == nil || m.volume == nil {
		return
	}
	m.slider.Current = int(math.Round(m.volume.Value() * 100))
}

func newTheme(face *ebtext.Face) *widget.Theme {
	return &widget.Theme{
		ButtonTheme: &widget.ButtonParams{
			TextFace:  face,
			TextColor: &widget.ButtonTextColor{Idle: color.White},
		},
		SliderTheme: &widget.SliderParams{
			TrackImage: &widget.SliderTrackImage{
				Idle:  imageui.NewNineSliceColor(color.RGBA{180, 180, 180, 255}),
				Hover: imageui.NewNineSliceColor(color.RGBA{200, 200, 200, 255}),
			},
			HandleImage: &widget.ButtonImage{
				Idle:    imageui.NewNineSliceColor(color.RGBA{120, 120, 120, 255}),
				Hover:   imageui.NewNineSliceColor(color.RGBA{160, 160, 160, 255}),
				Pressed: imageui.NewNineSliceColor(color.RGBA{100, 100, 100, 255}),
			},
		},
	}
}
