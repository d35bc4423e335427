package tetris

import "image/color"

// ShapeKind identifies one of the seven tetrominoes.
type ShapeKind int

const (
	ShapeI ShapeKind = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeL
	ShapeJ
	shapeCount
)

// ShapeCount is the number of canonical tetrominoes.
const ShapeCount = int(shapeCount)

var shapeNames = [shapeCount]string{"I", "O", "T", "S", "Z", "L", "J"}

func (k ShapeKind) String() string {
	if k < 0 || k >= shapeCount {
		return "?"
	}
	return shapeNames[k]
}

// Shape is a piece matrix indexed [row][col]. Rows may differ in count
// between rotations of the same piece but are always rectangular.
type Shape [][]bool

// Tetromino pairs a canonical shape with its display colour.
type Tetromino struct {
	Kind  ShapeKind
	Shape Shape
	Color color.RGBA
}

// Tetrominoes is the fixed piece set, in ShapeKind order.
var Tetrominoes = [shapeCount]Tetromino{
	ShapeI: {ShapeI, Shape{{true, true, true, true}}, color.RGBA{R: 0, G: 255, B: 255, A: 255}},
	ShapeO: {ShapeO, Shape{{true, true}, {true, true}}, color.RGBA{R: 255, G: 255, B: 0, A: 255}},
	ShapeT: {ShapeT, Shape{{false, true, false}, {true, true, true}}, color.RGBA{R: 128, G: 0, B: 128, A: 255}},
	ShapeS: {ShapeS, Shape{{true, true, false}, {false, true, true}}, color.RGBA{R: 0, G: 255, B: 0, A: 255}},
	ShapeZ: {ShapeZ, Shape{{false, true, true}, {true, true, false}}, color.RGBA{R: 255, G: 0, B: 0, A: 255}},
	ShapeL: {ShapeL, Shape{{true, false, false}, {true, true, true}}, color.RGBA{R: 255, G: 165, B: 0, A: 255}},
	ShapeJ: {ShapeJ, Shape{{false, false, true}, {true, true, true}}, color.RGBA{R: 0, G: 0, B: 255, A: 255}},
}

// NewTetromino returns a copy of the canonical piece whose shape can be
// rotated without touching the table.
func NewTetromino(k ShapeKind) Tetromino {
	t := Tetrominoes[k]
	t.Shape = t.Shape.Clone()
	return t
}

// Height is the number of matrix rows.
func (s Shape) Height() int { return len(s) }

// Width is the number of matrix columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone deep-copies the matrix.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for r := range s {
		out[r] = append([]bool(nil), s[r]...)
	}
	return out
}

// Rotate returns a new matrix turned 90° clockwise: the rows are reversed
// and then transposed.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for r := 0; r < w; r++ {
		out[r] = make([]bool, h)
		for c := 0; c < h; c++ {
			out[r][c] = s[h-1-c][r]
		}
	}
	return out
}

// RotateBack returns a new matrix turned 90° counter-clockwise.
func (s Shape) RotateBack() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for r := 0; r < w; r++ {
		out[r] = make([]bool, h)
		for c := 0; c < h; c++ {
			out[r][c] = s[c][w-1-r]
		}
	}
	return out
}

// Equal reports whether both matrices have the same dimensions and pattern.
func (s Shape) Equal(o Shape) bool {
	if s.Height() != o.Height() || s.Width() != o.Width() {
		return false
	}
	for r := range s {
		for c := range s[r] {
			if s[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Cells returns the occupied offsets relative to the shape origin.
func (s Shape) Cells() []Position {
	var out []Position
	for r, row := range s {
		for c, filled := range row {
			if filled {
				out = append(out, Position{Row: r, Col: c})
			}
		}
	}
	return out
}
