package orders

import (
	"fmt"

	"github.com/angelmondragon/brewcart/pkg/enums"
)

// Bucket groups the items currently at one stage.
type Bucket struct {
	Stage enums.OrderStage `json:"stage"`
	Items []Item           `json:"items"`
}

// Board holds one bucket per stage in lifecycle order.
type Board struct {
	Buckets []Bucket `json:"buckets"`
}

// NewBoard returns a board with every stage present and empty.
func NewBoard() Board {
	stages := enums.OrderStages()
	buckets := make([]Bucket, len(stages))
	for i, stage := range stages {
		buckets[i] = Bucket{Stage: stage, Items: []Item{}}
	}
	return Board{Buckets: buckets}
}

// Project places every item of the order in the ordered stage. A nil order
// yields an empty board.
func Project(o *Order) Board {
	board := NewBoard()
	if o == nil {
		return board
	}
	ordered := board.Bucket(enums.OrderStageOrdered)
	ordered.Items = append(ordered.Items, o.Items...)
	return board
}

// Bucket returns the bucket for stage, or nil for an unknown stage.
func (b *Board) Bucket(stage enums.OrderStage) *Bucket {
	for i := range b.Buckets {
		if b.Buckets[i].Stage == stage {
			return &b.Buckets[i]
		}
	}
	return nil
}

// Move transfers the item at position idx of from into to.
func (b *Board) Move(from, to enums.OrderStage, idx int) error {
	src := b.Bucket(from)
	dst := b.Bucket(to)
	if src == nil || dst == nil {
		return fmt.Errorf("unknown stage %q or %q", from, to)
	}
	if idx < 0 || idx >= len(src.Items) {
		return fmt.Errorf("no item %d in stage %s", idx, from)
	}
	item := src.Items[idx]
	src.Items = append(src.Items[:idx:idx], src.Items[idx+1:]...)
	dst.Items = append(dst.Items, item)
	return nil
}
