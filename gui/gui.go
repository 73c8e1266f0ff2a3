// Package gui implements the desktop window of the converter on top of the Gio toolkit.
// The window only deals with the presentation: every operation on the image list
// and the document generation is delegated to the img2pdf pipeline.
package gui

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/esimov/img2pdf"
	"github.com/esimov/img2pdf/config"
	"github.com/esimov/img2pdf/session"
	"github.com/esimov/img2pdf/utils"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	windowWidth  = 500
	windowHeight = 800
	windowTitle  = "Image to PDF Converter"
)

var (
	defaultBkgColor    = color.NRGBA{R: 0xec, G: 0xf0, B: 0xf1, A: 0xff}
	defaultBorderColor = color.NRGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
)

// convResult transfers the outcome of a background conversion to the event loop.
type convResult struct {
	res *img2pdf.Result
	err error
}

// Gui is the basic struct containing all of the information needed for the UI operation.
type Gui struct {
	cfg   *config.Config
	sess  *session.Session
	theme *material.Theme
	done  chan convResult

	thumbSrc image.Image
	thumbOp  paint.ImageOp

	addBtn     widget.Clickable
	clearBtn   widget.Clickable
	removeBtn  widget.Clickable
	upBtn      widget.Clickable
	downBtn    widget.Clickable
	convertBtn widget.Clickable
	pathEd     widget.Editor
	nameEd     widget.Editor
	list       widget.List
	rows       []widget.Clickable
}

// NewGUI initializes the Gio interface, preloading the provided image sources.
func NewGUI(cfg *config.Config, sources ...string) *Gui {
	g := &Gui{
		cfg:   cfg,
		sess:  session.New(img2pdf.New(cfg.Options()), cfg.Extensions),
		theme: material.NewTheme(gofont.Collection()),
		done:  make(chan convResult, 1),
	}
	g.pathEd.SingleLine = true
	g.pathEd.Submit = true
	g.nameEd.SingleLine = true
	g.nameEd.SetText(cfg.Output)
	g.list.Axis = layout.Vertical

	for _, src := range sources {
		g.sess.Add(src)
	}
	return g
}

// Run is the core method of the Gio GUI application. It has to be called from
// a separate goroutine, while the main goroutine is blocked in app.Main.
// It returns once the window has been closed.
func (g *Gui) Run() error {
	w := app.NewWindow(
		app.Title(windowTitle),
		app.Size(unit.Dp(windowWidth), unit.Dp(windowHeight)),
		app.MinSize(unit.Dp(windowWidth), unit.Dp(windowHeight)),
	)
	var ops op.Ops

	for {
		select {
		case e := <-w.Events():
			switch e := e.(type) {
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				g.update()
				g.layout(gtx)
				e.Frame(gtx.Ops)
			case key.Event:
				if e.Name == key.NameEscape {
					w.Perform(system.ActionClose)
				}
			case system.DestroyEvent:
				return e.Err
			}
		case r := <-g.done:
			g.sess.FinishConvert(r.res, r.err)
			if r.err == nil && g.cfg.OpenFolder {
				if err := utils.OpenFolder(r.res.Output); err != nil {
					g.sess.SetStatus(fmt.Sprintf("%s, could not open the folder: %v", g.sess.Status(), err))
				}
			}
			w.Invalidate()
		}
	}
}

// update processes the widget events queued since the last frame.
func (g *Gui) update() {
	for _, e := range g.pathEd.Events() {
		if _, ok := e.(widget.SubmitEvent); ok {
			g.addSource()
		}
	}
	if g.addBtn.Clicked() {
		g.addSource()
	}
	if g.clearBtn.Clicked() && !g.sess.Busy() {
		g.sess.Clear()
	}
	if g.removeBtn.Clicked() && !g.sess.Busy() {
		g.sess.Remove()
	}
	if g.upBtn.Clicked() && !g.sess.Busy() {
		g.sess.MoveUp()
	}
	if g.downBtn.Clicked() && !g.sess.Busy() {
		g.sess.MoveDown()
	}
	for i := range g.rows {
		if g.rows[i].Clicked() {
			g.sess.Select(i)
		}
	}
	if g.convertBtn.Clicked() {
		if p := g.sess.StartConvert(); p != nil {
			name := g.nameEd.Text()
			go func() {
				res, err := p.Assemble(name)
				g.done <- convResult{res: res, err: err}
			}()
		}
	}
}

func (g *Gui) addSource() {
	if g.sess.Busy() {
		return
	}
	g.sess.Add(g.pathEd.Text())
	g.pathEd.SetText("")
}

func (g *Gui) layout(gtx C) D {
	paint.Fill(gtx.Ops, defaultBkgColor)

	if n := g.sess.Pipeline().Len(); len(g.rows) < n {
		g.rows = append(g.rows, make([]widget.Clickable, n-len(g.rows))...)
	}

	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(material.H5(g.theme, windowTitle).Layout),
			layout.Rigid(spacer),
			layout.Rigid(g.layoutSource),
			layout.Rigid(spacer),
			layout.Rigid(g.layoutButtons),
			layout.Rigid(spacer),
			layout.Flexed(0.5, g.layoutPreview),
			layout.Rigid(spacer),
			layout.Flexed(0.5, g.layoutList),
			layout.Rigid(spacer),
			layout.Rigid(g.layoutOutput),
			layout.Rigid(spacer),
			layout.Rigid(material.Body2(g.theme, g.sess.Status()).Layout),
		)
	})
}

func spacer(gtx C) D {
	return layout.Spacer{Width: unit.Dp(8), Height: unit.Dp(8)}.Layout(gtx)
}

// bordered draws the widget inside a thin rounded border.
func bordered(gtx C, w layout.Widget) D {
	return widget.Border{
		Color:        defaultBorderColor,
		CornerRadius: unit.Dp(4),
		Width:        unit.Dp(1),
	}.Layout(gtx, func(gtx C) D {
		return layout.UniformInset(unit.Dp(6)).Layout(gtx, w)
	})
}

func (g *Gui) layoutSource(gtx C) D {
	if g.sess.Busy() {
		gtx = gtx.Disabled()
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return bordered(gtx, material.Editor(g.theme, &g.pathEd, "Image file, folder, pattern or URL").Layout)
		}),
		layout.Rigid(spacer),
		layout.Rigid(material.Button(g.theme, &g.addBtn, "Add").Layout),
	)
}

func (g *Gui) layoutButtons(gtx C) D {
	if g.sess.Busy() {
		gtx = gtx.Disabled()
	}
	return layout.Flex{Spacing: layout.SpaceBetween}.Layout(gtx,
		layout.Rigid(material.Button(g.theme, &g.upBtn, "Move Up").Layout),
		layout.Rigid(material.Button(g.theme, &g.downBtn, "Move Down").Layout),
		layout.Rigid(material.Button(g.theme, &g.removeBtn, "Remove").Layout),
		layout.Rigid(material.Button(g.theme, &g.clearBtn, "Clear All").Layout),
	)
}

func (g *Gui) layoutPreview(gtx C) D {
	if g.sess.Thumbnail() == nil {
		return layout.Center.Layout(gtx, material.Body1(g.theme, "No image selected").Layout)
	}
	// Upload the thumbnail only when the selection has changed.
	if g.thumbSrc != g.sess.Thumbnail() {
		g.thumbSrc = g.sess.Thumbnail()
		g.thumbOp = paint.NewImageOp(g.thumbSrc)
	}
	gtx.Constraints.Max.Y = utils.Min(gtx.Constraints.Max.Y, gtx.Dp(unit.Dp(g.cfg.ThumbSize)))
	return layout.Center.Layout(gtx, widget.Image{
		Src: g.thumbOp,
		Fit: widget.ScaleDown,
	}.Layout)
}

func (g *Gui) layoutList(gtx C) D {
	names := g.sess.Pipeline().Names()

	return bordered(gtx, func(gtx C) D {
		return material.List(g.theme, &g.list).Layout(gtx, len(names), func(gtx C, i int) D {
			return material.Clickable(gtx, &g.rows[i], func(gtx C) D {
				lbl := material.Body1(g.theme, fmt.Sprintf("%d. %s", i+1, names[i]))
				if i == g.sess.Selected() {
					lbl.Color = g.theme.Palette.ContrastBg
				}
				return layout.UniformInset(unit.Dp(4)).Layout(gtx, lbl.Layout)
			})
		})
	})
}

func (g *Gui) layoutOutput(gtx C) D {
	if g.sess.Busy() {
		gtx = gtx.Disabled()
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return bordered(gtx, material.Editor(g.theme, &g.nameEd, "PDF name").Layout)
		}),
		layout.Rigid(spacer),
		layout.Rigid(material.Button(g.theme, &g.convertBtn, "Convert to PDF").Layout),
	)
}
