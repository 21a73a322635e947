package tictactoe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidBoard = errors.New("invalid board id")
)

// Mark is the content of a cell. Its value is the cell's base-3 digit in a
// board id.
type Mark int64

const (
	Empty Mark = iota
	Circle
	Cross
)

func (m Mark) Flip() Mark {
	switch m {
	case Circle:
		return Cross
	case Cross:
		return Circle
	default:
		return Empty
	}
}

func (m Mark) String() string {
	switch m {
	case Circle:
		return "O"
	case Cross:
		return "X"
	default:
		return " "
	}
}

const (
	size  = 3
	cells = size * size
	// number of distinct boards, 3^9
	numBoards int64 = 19683
)

// Board is a 3x3 grid. Cell (r, c) is the digit 3r+c of the board id.
type Board [size][size]Mark

// ActionLabel names the move on cell (r, c).
func ActionLabel(r, c int) string {
	return fmt.Sprintf("[%d,%d]", r, c)
}

func parseAction(action string) (int, int, error) {
	var r, c int
	if _, err := fmt.Sscanf(strings.TrimSpace(action), "[%d,%d]", &r, &c); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrIllegalMove, action)
	}
	if r < 0 || r >= size || c < 0 || c >= size {
		return 0, 0, fmt.Errorf("%w: %q is off the board", ErrIllegalMove, action)
	}
	return r, c, nil
}

// FromID restores a board and the side to move. Cross moves when circles
// outnumber crosses, circle otherwise.
func FromID(id int64) (Board, Mark, error) {
	var b Board
	if id < 0 || id >= numBoards {
		return b, Empty, fmt.Errorf("%w: %d", ErrInvalidBoard, id)
	}
	circles, crosses := 0, 0
	remaining := id
	for i := 0; i < cells; i++ {
		m := Mark(remaining % 3)
		remaining /= 3
		switch m {
		case Circle:
			circles++
		case Cross:
			crosses++
		}
		b[i/size][i%size] = m
	}
	if circles > crosses {
		return b, Cross, nil
	}
	return b, Circle, nil
}

func (b Board) ID() int64 {
	id := int64(0)
	pow := int64(1)
	for i := 0; i < cells; i++ {
		id += pow * int64(b[i/size][i%size])
		pow *= 3
	}
	return id
}

// Actions lists the empty cells in cell order.
func (b Board) Actions() []string {
	actions := make([]string, 0, cells)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if b[r][c] == Empty {
				actions = append(actions, ActionLabel(r, c))
			}
		}
	}
	return actions
}

// Apply returns the board with m placed on the action's cell.
func (b Board) Apply(action string, m Mark) (Board, error) {
	r, c, err := parseAction(action)
	if err != nil {
		return b, err
	}
	if b[r][c] != Empty {
		return b, fmt.Errorf("%w: %s is taken", ErrIllegalMove, action)
	}
	b[r][c] = m
	return b, nil
}

func (b Board) HasWon(m Mark) bool {
	for i := 0; i < size; i++ {
		if b[i][0] == m && b[i][1] == m && b[i][2] == m {
			return true
		}
		if b[0][i] == m && b[1][i] == m && b[2][i] == m {
			return true
		}
	}
	if b[0][0] == m && b[1][1] == m && b[2][2] == m {
		return true
	}
	return b[0][2] == m && b[1][1] == m && b[2][0] == m
}

func (b Board) Full() bool {
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if b[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

// Over reports whether either side has won or no cell is left.
func (b Board) Over() bool {
	return b.HasWon(Circle) || b.HasWon(Cross) || b.Full()
}

func (b Board) String() string {
	return b.Render(aurora.NewAurora(false))
}

// Render draws the board, colouring circles and crosses when au is enabled.
func (b Board) Render(au aurora.Aurora) string {
	var sb strings.Builder
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			switch m := b[r][c]; m {
			case Circle:
				sb.WriteString(au.Green(m.String()).Bold().String())
			case Cross:
				sb.WriteString(au.Red(m.String()).Bold().String())
			default:
				sb.WriteString(m.String())
			}
			if c < size-1 {
				sb.WriteString(" | ")
			}
		}
		if r < size-1 {
			sb.WriteString("\n---------\n")
		}
	}
	return sb.String()
}
