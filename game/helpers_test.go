package game

import (
	"math/rand"
	"testing"

	"bossarena/protocol"
)

type recordingOutbox struct {
	msgs []protocol.Message
}

func (r *recordingOutbox) Send(m protocol.Message) { r.msgs = append(r.msgs, m) }

func (r *recordingOutbox) kinds() []protocol.Kind {
	out := make([]protocol.Kind, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.Kind()
	}
	return out
}

func (r *recordingOutbox) count(k protocol.Kind) int {
	n := 0
	for _, m := range r.msgs {
		if m.Kind() == k {
			n++
		}
	}
	return n
}

type recordingCues struct {
	cues []Cue
}

func (r *recordingCues) Cue(c Cue) { r.cues = append(r.cues, c) }

func newTestWorld(t *testing.T, networked bool) (*World, *recordingOutbox) {
	t.Helper()
	out := &recordingOutbox{}
	w := NewWorld(1, Options{
		Out:       out,
		Rand:      rand.New(rand.NewSource(7)),
		Networked: networked,
	})
	return w, out
}

func approx(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}
