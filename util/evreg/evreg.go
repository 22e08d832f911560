package evreg

// Register is a small callback registry keyed by event id. Callbacks
// run synchronously on the caller's goroutine, in registration order.
type Register struct {
	m map[int][]*Callback
}

func NewRegister() *Register {
	return &Register{m: map[int][]*Callback{}}
}

func (reg *Register) Add(evId int, fn func(interface{})) *Regist {
	cb := &Callback{fn}
	reg.m[evId] = append(reg.m[evId], cb)
	return &Regist{reg, evId, cb}
}

func (reg *Register) Remove(evId int, cb *Callback) {
	w := reg.m[evId]
	for i, cb2 := range w {
		if cb2 == cb {
			reg.m[evId] = append(w[:i], w[i+1:]...)
			break
		}
	}
	if len(reg.m[evId]) == 0 {
		delete(reg.m, evId)
	}
}

func (reg *Register) RunCallbacks(evId int, ev interface{}) int {
	w := reg.m[evId]
	for _, cb := range w {
		cb.F(ev)
	}
	return len(w)
}

type Callback struct {
	F func(interface{})
}

type Regist struct {
	reg  *Register
	evId int
	cb   *Callback
}

func (r *Regist) Unregister() {
	r.reg.Remove(r.evId, r.cb)
}
