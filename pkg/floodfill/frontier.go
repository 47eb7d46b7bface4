package floodfill

import (
	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/emirpasic/gods/stacks/arraystack"

	"unionfind_tool/pkg/raster"
)

// frontier 待处理的点，栈是后进先出，队列是先进先出
type frontier interface {
	push(p raster.Point)
	pop() (raster.Point, bool)
	size() int
}

type stackFrontier struct {
	s *arraystack.Stack
}

func (f stackFrontier) push(p raster.Point) { f.s.Push(p) }

func (f stackFrontier) pop() (raster.Point, bool) {
	v, ok := f.s.Pop()
	if !ok {
		return raster.Point{}, false
	}
	return v.(raster.Point), true
}

func (f stackFrontier) size() int { return f.s.Size() }

type queueFrontier struct {
	q *arrayqueue.Queue
}

func (f queueFrontier) push(p raster.Point) { f.q.Enqueue(p) }

func (f queueFrontier) pop() (raster.Point, bool) {
	v, ok := f.q.Dequeue()
	if !ok {
		return raster.Point{}, false
	}
	return v.(raster.Point), true
}

func (f queueFrontier) size() int { return f.q.Size() }

func newFrontier(mode Mode) (frontier, error) {
	switch mode {
	case ModeStack:
		return stackFrontier{s: arraystack.New()}, nil
	case ModeQueue:
		return queueFrontier{q: arrayqueue.New()}, nil
	default:
		return nil, ErrUnknownMode
	}
}
