package stack

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTower is returned when the tower is queried before a base
	// block has been placed.
	ErrEmptyTower = errors.New("stack: tower has no blocks")

	// ErrInvalidGeometry is returned when a block with a non-positive
	// width is committed.
	ErrInvalidGeometry = errors.New("stack: block width must be positive")
)

// Block is a committed tower entry. Height is shared by every block in
// a session and lives on the Tower.
type Block struct {
	CenterX    float64
	Width      float64
	ColorIndex int
}

// Left returns the x-coordinate of the block's left edge.
func (b Block) Left() float64 {
	return b.CenterX - b.Width/2
}

// Right returns the x-coordinate of the block's right edge.
func (b Block) Right() float64 {
	return b.CenterX + b.Width/2
}

// Tower is the ordered stack of committed blocks, base first.
// The base block is never removed.
type Tower struct {
	blocks      []Block
	blockHeight float64
	baseY       float64 // Top edge of the base block
	topY        float64 // Top edge of the highest block
}

// NewTower creates a tower holding only the base block.
func NewTower(base Block, blockHeight, baseY float64) *Tower {
	t := &Tower{
		blocks:      make([]Block, 0, 32),
		blockHeight: blockHeight,
		baseY:       baseY,
	}
	t.blocks = append(t.blocks, base)
	t.topY = baseY
	return t
}

// Top returns the most recently committed block.
func (t *Tower) Top() (Block, error) {
	if len(t.blocks) == 0 {
		return Block{}, ErrEmptyTower
	}
	return t.blocks[len(t.blocks)-1], nil
}

// Commit appends a block and raises the tower top by one block height.
// A block with non-positive width is rejected and the tower is left
// unchanged.
func (t *Tower) Commit(b Block) error {
	if len(t.blocks) == 0 {
		return ErrEmptyTower
	}
	if !(b.Width > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidGeometry, b.Width)
	}
	t.blocks = append(t.blocks, b)
	t.topY -= t.blockHeight
	return nil
}

// Reset truncates the tower back to its base block.
func (t *Tower) Reset() {
	if len(t.blocks) > 1 {
		t.blocks = t.blocks[:1]
	}
	t.topY = t.baseY
}

// Len returns the number of blocks including the base.
func (t *Tower) Len() int {
	return len(t.blocks)
}

// TopY returns the y-coordinate of the tower's top edge.
// It equals BaseY - BlockHeight*(Len-1).
func (t *Tower) TopY() float64 {
	return t.topY
}

// BaseY returns the y-coordinate of the base block's top edge.
func (t *Tower) BaseY() float64 {
	return t.baseY
}

// BlockHeight returns the shared block height.
func (t *Tower) BlockHeight() float64 {
	return t.blockHeight
}

// Blocks returns a copy of the committed blocks, base first.
func (t *Tower) Blocks() []Block {
	out := make([]Block, len(t.blocks))
	copy(out, t.blocks)
	return out
}
