package mousefilter

import (
	"sync"
	"time"
)

// MoveFilter paces pointer move events to at most fps per second,
// discarding stale intermediate moves. Non-move events flush the
// pending move first to keep ordering.
type MoveFilter struct {
	out      chan<- interface{}
	fps      *int
	isMoveFn func(interface{}) bool

	last struct {
		sync.Mutex
		timer  *time.Timer
		sent   time.Time
		moveEv interface{}
	}
}

func NewMoveFilter(out chan<- interface{}, fps *int, isMoveFn func(interface{}) bool) *MoveFilter {
	return &MoveFilter{out: out, fps: fps, isMoveFn: isMoveFn}
}

func (movef *MoveFilter) Filter(ev interface{}) {
	if movef.isMoveFn(ev) {
		movef.keepMoveEv(ev)
	} else {
		movef.sendMoveEv()
		movef.out <- ev
	}
}

func (movef *MoveFilter) keepMoveEv(moveEv interface{}) {
	frameDur := time.Second / time.Duration(*movef.fps)
	movef.last.Lock()
	defer movef.last.Unlock()
	if movef.last.timer != nil {
		// a send is already armed, just replace the payload
		movef.last.moveEv = moveEv
		return
	}
	now := time.Now()
	if now.Sub(movef.last.sent) >= frameDur {
		movef.last.sent = now
		movef.out <- moveEv
	} else {
		movef.last.moveEv = moveEv
		d := frameDur - now.Sub(movef.last.sent)
		movef.last.timer = time.AfterFunc(d, movef.sendMoveEv)
	}
}

func (movef *MoveFilter) sendMoveEv() {
	movef.last.Lock()
	defer movef.last.Unlock()
	if movef.last.moveEv != nil {
		movef.last.sent = time.Now()
		movef.out <- movef.last.moveEv
		movef.last.moveEv = nil
	}
	if movef.last.timer != nil {
		movef.last.timer.Stop()
		movef.last.timer = nil
	}
}
