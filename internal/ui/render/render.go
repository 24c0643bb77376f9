// Package render draws the editor onto a tcell screen: the window
// tree with highlighted text, a modeline per window, and the status
// line with its picker and edit-tree overlays.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/zee-editor/zee/internal/engine/buffer"
	"github.com/zee-editor/zee/internal/engine/rope"
	"github.com/zee-editor/zee/internal/syntax"
	"github.com/zee-editor/zee/internal/ui/picker"
	"github.com/zee-editor/zee/internal/ui/theme"
	"github.com/zee-editor/zee/internal/ui/window"
)

// Frame is everything one redraw needs.
type Frame struct {
	Placements []window.Placement
	Buffers    map[buffer.ID]*buffer.Buffer
	Theme      *theme.Theme
	TabWidth   int

	Status      string
	StatusError bool

	Picker     *picker.Picker
	PickerKind string // display name for the prompt

	TreeViewer bool
}

// Renderer draws frames onto a screen.
type Renderer struct {
	screen tcell.Screen
}

// New creates a renderer for a screen.
func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw renders a full frame and flushes it.
func (r *Renderer) Draw(f Frame) {
	width, height := r.screen.Size()
	if width <= 0 || height <= 1 {
		return
	}
	base := r.baseStyle(f.Theme)
	r.fill(0, 0, width, height, ' ', base)
	r.screen.HideCursor()

	for _, p := range f.Placements {
		r.drawWindow(f, p)
	}
	if f.TreeViewer {
		r.drawTreeViewer(f, width, height)
	}
	if f.Picker != nil {
		r.drawPicker(f, width, height)
	} else {
		r.drawStatus(f, width, height)
	}
	r.screen.Show()
}

func (r *Renderer) baseStyle(t *theme.Theme) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.GetColor(t.Foreground)).
		Background(tcell.GetColor(t.Background))
}

func (r *Renderer) drawWindow(f Frame, p window.Placement) {
	buf, ok := f.Buffers[p.Leaf.Buffer]
	if !ok || p.W <= 0 || p.H <= 1 {
		return
	}
	text := buf.Text()
	base := r.baseStyle(f.Theme)
	selStyle := base.Background(tcell.GetColor(f.Theme.Selection))
	selStart, selEnd := buf.Cursor.Selection()

	textHeight := p.H - 1 // bottom row is the modeline
	for row := 0; row < textHeight; row++ {
		line := p.Leaf.TopLine + row
		if line >= text.LenLines() {
			break
		}
		r.drawLine(f, p, buf, text, line, p.Y+row, selStart, selEnd, base, selStyle)
	}

	r.drawModeline(f, p, buf)

	if p.Focused {
		r.placeCursor(f, p, buf, text)
	}
}

func (r *Renderer) drawLine(
	f Frame, p window.Placement, buf *buffer.Buffer, text rope.Rope,
	line, screenY int, selStart, selEnd rope.CharOffset, base, selStyle tcell.Style,
) {
	lineStart := text.LineToChar(line)
	lineEnd := lineStart + text.LineLen(line)
	spans := buf.Parse.Spans

	col := -p.Leaf.ScrollCol
	text.Graphemes(lineStart, lineEnd, func(cluster string, at rope.CharOffset) bool {
		w := rope.GraphemeWidth(f.TabWidth, col+p.Leaf.ScrollCol, cluster)
		if col+w > p.W {
			return false
		}
		if col+w <= 0 {
			col += w
			return true
		}

		style := base
		if s, ok := syntax.SpanAt(spans, text.CharToByte(at)); ok {
			style = r.highlightStyle(f.Theme, s.Highlight, base)
		}
		if at >= selStart && at < selEnd {
			style = selStyle
		}

		x := p.X + col
		if cluster == "\t" {
			for i := 0; i < w; i++ {
				if x+i >= p.X {
					r.screen.SetContent(x+i, screenY, ' ', nil, style)
				}
			}
		} else {
			runes := []rune(cluster)
			r.screen.SetContent(x, screenY, runes[0], runes[1:], style)
		}
		col += w
		return true
	})
}

func (r *Renderer) highlightStyle(t *theme.Theme, name string, base tcell.Style) tcell.Style {
	s, ok := t.StyleFor(name)
	if !ok {
		return base
	}
	style := base
	if s.Fg != "" {
		style = style.Foreground(tcell.GetColor(s.Fg))
	}
	if s.Bg != "" {
		style = style.Background(tcell.GetColor(s.Bg))
	}
	return style.Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
}

func (r *Renderer) drawModeline(f Frame, p window.Placement, buf *buffer.Buffer) {
	style := tcell.StyleDefault.
		Foreground(tcell.GetColor(f.Theme.StatusFg)).
		Background(tcell.GetColor(f.Theme.StatusBg))
	if p.Focused {
		style = style.Bold(true)
	}

	dirty := " "
	if buf.Dirty() {
		dirty = "*"
	}
	modeName := "plain"
	if buf.Mode != nil {
		modeName = buf.Mode.Name
	}
	text := buf.Text()
	line := text.CharToLine(buf.Cursor.Point())
	col := buf.Cursor.Point() - text.LineToChar(line)
	left := fmt.Sprintf(" %s%s  %s", dirty, buf.Name(), modeName)
	right := fmt.Sprintf("%d:%d ", line+1, col)

	y := p.Y + p.H - 1
	r.fill(p.X, y, p.W, 1, ' ', style)
	r.drawText(p.X, y, p.W, left, style)
	rw := runewidth.StringWidth(right)
	if rw < p.W {
		r.drawText(p.X+p.W-rw, y, rw, right, style)
	}
}

func (r *Renderer) placeCursor(f Frame, p window.Placement, buf *buffer.Buffer, text rope.Rope) {
	point := buf.Cursor.Point()
	line := text.CharToLine(point)
	row := line - p.Leaf.TopLine
	if row < 0 || row >= p.H-1 {
		return
	}
	lineStart := text.LineToChar(line)
	col := rope.Width(f.TabWidth, text.Slice(lineStart, point)) - p.Leaf.ScrollCol
	if col < 0 || col >= p.W {
		return
	}
	r.screen.ShowCursor(p.X+col, p.Y+row)
}

func (r *Renderer) drawStatus(f Frame, width, height int) {
	style := r.baseStyle(f.Theme)
	if f.StatusError {
		style = style.Foreground(tcell.ColorRed)
	}
	r.fill(0, height-1, width, 1, ' ', style)
	r.drawText(0, height-1, width, f.Status, style)
}

func (r *Renderer) drawPicker(f Frame, width, height int) {
	p := f.Picker
	results := p.Results()
	rows := len(results)
	if max := height / 2; rows > max {
		rows = max
	}

	base := r.baseStyle(f.Theme)
	selStyle := base.Background(tcell.GetColor(f.Theme.Selection)).Bold(true)

	top := height - 1 - rows
	for i := 0; i < rows; i++ {
		style := base
		if i == p.SelectedIndex() {
			style = selStyle
		}
		r.fill(0, top+i, width, 1, ' ', style)
		r.drawText(1, top+i, width-1, results[i].Text, style)
	}

	prompt := fmt.Sprintf("%s (%d): %s", f.PickerKind, p.SeenCount(), p.Query())
	promptStyle := tcell.StyleDefault.
		Foreground(tcell.GetColor(f.Theme.StatusFg)).
		Background(tcell.GetColor(f.Theme.StatusBg))
	r.fill(0, height-1, width, 1, ' ', promptStyle)
	r.drawText(0, height-1, width, prompt, promptStyle)
	r.screen.ShowCursor(runewidth.StringWidth(prompt), height-1)
}

// drawTreeViewer paints the revision tree in a panel on the right:
// one row per revision, indented by depth, the current revision
// marked, the selected redo path highlighted.
func (r *Renderer) drawTreeViewer(f Frame, width, height int) {
	var buf *buffer.Buffer
	for _, p := range f.Placements {
		if p.Focused {
			buf = f.Buffers[p.Leaf.Buffer]
		}
	}
	if buf == nil {
		return
	}

	panelW := width / 3
	if panelW < 24 {
		panelW = width
	}
	x0 := width - panelW
	style := tcell.StyleDefault.
		Foreground(tcell.GetColor(f.Theme.StatusFg)).
		Background(tcell.GetColor(f.Theme.StatusBg))
	cur := style.Bold(true).Foreground(tcell.GetColor(f.Theme.Foreground))

	r.fill(x0, 0, panelW, height-1, ' ', style)
	r.drawText(x0+1, 0, panelW-1, "edit tree", style.Underline(true))

	tree := buf.History
	row := 1
	var walk func(idx, depth int, onSelected bool)
	walk = func(idx, depth int, onSelected bool) {
		if row >= height-1 {
			return
		}
		marker := "o"
		if idx == tree.Current() {
			marker = "@"
		} else if onSelected {
			marker = "*"
		}
		label := fmt.Sprintf("%s r%d v%d", marker, idx, tree.Version(idx))
		lineStyle := style
		if idx == tree.Current() {
			lineStyle = cur
		}
		r.drawText(x0+1+depth*2, row, panelW-1-depth*2, label, lineStyle)
		row++
		children := tree.Children(idx)
		for i, c := range children {
			walk(c, depth+1, onSelected && i == tree.Selected(idx))
		}
	}
	walk(0, 0, true)
}

func (r *Renderer) drawText(x, y, maxWidth int, s string, style tcell.Style) {
	col := 0
	for _, ru := range s {
		w := runewidth.RuneWidth(ru)
		if col+w > maxWidth {
			break
		}
		r.screen.SetContent(x+col, y, ru, nil, style)
		col += w
	}
}

func (r *Renderer) fill(x, y, w, h int, ru rune, style tcell.Style) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			r.screen.SetContent(xx, yy, ru, nil, style)
		}
	}
}
