package draw

import (
	"github.com/gdamore/tcell/v2"
)

// TcellPresenter draws canvases through a tcell screen. tcell does its own
// diffing, so every cell is handed over each frame.
type TcellPresenter struct {
	screen tcell.Screen
}

// NewTcellPresenter wraps an initialized screen.
func NewTcellPresenter(screen tcell.Screen) *TcellPresenter {
	return &TcellPresenter{screen: screen}
}

func tcellColor(c [3]uint8) tcell.Color {
	return tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2]))
}

// Present copies c into the screen and shows it.
func (p *TcellPresenter) Present(c *Canvas) error {
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			st := c.state(col, row)
			if st.cont {
				continue
			}
			x, y := col+c.offsetCol, row+c.offsetRow
			if st.text == "" {
				style := tcell.StyleDefault.Foreground(tcellColor(st.top)).Background(tcellColor(st.bottom))
				p.screen.SetContent(x, y, BlockUpperHalf, nil, style)
				continue
			}
			runes := []rune(st.text)
			style := tcell.StyleDefault.Foreground(tcellColor(st.fg)).Background(tcellColor(st.top))
			p.screen.SetContent(x, y, runes[0], runes[1:], style)
		}
	}
	p.screen.Show()
	return nil
}

// Clear blanks the screen.
func (p *TcellPresenter) Clear() {
	p.screen.Clear()
}

// Size reports the screen size.
func (p *TcellPresenter) Size() (int, int, error) {
	w, h := p.screen.Size()
	return w, h, nil
}

// Close finalizes the screen and restores the terminal.
func (p *TcellPresenter) Close() error {
	p.screen.Fini()
	return nil
}

var _ Presenter = (*TcellPresenter)(nil)
