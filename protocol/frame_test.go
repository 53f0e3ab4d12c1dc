package protocol

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"
	"testing/iotest"
)

func mustFrame(t *testing.T, m Message) []byte {
	t.Helper()
	f, err := EncodeFrame(m)
	if err != nil {
		t.Fatalf("frame %s: %v", m.Kind(), err)
	}
	return f
}

func TestFrameBufferWaitsForWholeFrame(t *testing.T) {
	frame := mustFrame(t, PlayerShot{ID: 3, X: 1, Y: 2, DirX: 0, DirY: 1})

	var fb FrameBuffer
	fb.Write(frame[:2])
	if _, ok := fb.Next(); ok {
		t.Fatal("frame returned with only a partial header")
	}
	fb.Write(frame[2 : len(frame)-1])
	if _, ok := fb.Next(); ok {
		t.Fatal("frame returned with a partial payload")
	}
	if fb.Len() != len(frame)-1 {
		t.Fatalf("buffered %d bytes, want %d untouched", fb.Len(), len(frame)-1)
	}
	fb.Write(frame[len(frame)-1:])
	got, ok := fb.Next()
	if !ok {
		t.Fatal("complete frame not returned")
	}
	if !bytes.Equal(got, frame) {
		t.Fatalf("frame = % x, want % x", got, frame)
	}
	if fb.Len() != 0 {
		t.Fatalf("%d bytes left after drain", fb.Len())
	}
}

func TestFrameBufferDrainsSeveralFramesFromOneWrite(t *testing.T) {
	msgs := []Message{PlayerJoined{ID: 1}, PositionUpdate{ID: 1, X: 3, Y: 4}, BossDefeated{}}
	var stream []byte
	for _, m := range msgs {
		stream = append(stream, mustFrame(t, m)...)
	}
	half := mustFrame(t, PlayerLeft{ID: 1})
	stream = append(stream, half[:3]...)

	var fb FrameBuffer
	fb.Write(stream)
	var got []Message
	for {
		f, ok := fb.Next()
		if !ok {
			break
		}
		m, err := DecodeFrame(f)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, m)
	}
	if !reflect.DeepEqual(got, msgs) {
		t.Fatalf("got %v, want %v", got, msgs)
	}
	if fb.Len() != 3 {
		t.Fatalf("partial tail = %d bytes, want 3", fb.Len())
	}
}

func TestFrameBufferSkipsUndecodablePayload(t *testing.T) {
	bad := AppendFrame(nil, []byte{0xee, 0xee, 0xee, 0xee, 1})
	good := mustFrame(t, PlayerJoined{ID: 8})

	var fb FrameBuffer
	fb.Write(append(bad, good...))

	f, _ := fb.Next()
	if _, err := DecodeFrame(f); err == nil {
		t.Fatal("garbage frame decoded")
	}
	f, ok := fb.Next()
	if !ok {
		t.Fatal("boundary lost after a bad frame")
	}
	m, err := DecodeFrame(f)
	if err != nil || m != (PlayerJoined{ID: 8}) {
		t.Fatalf("got %v, %v", m, err)
	}
}

func TestReadFramesOneByteAtATime(t *testing.T) {
	msgs := allMessages()
	var stream bytes.Buffer
	for _, m := range msgs {
		stream.Write(mustFrame(t, m))
	}

	var got []Message
	err := ReadFrames(iotest.OneByteReader(&stream), func(frame []byte) {
		m, err := DecodeFrame(frame)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		got = append(got, m)
	})
	if err != nil {
		t.Fatalf("ReadFrames: %v", err)
	}
	if !reflect.DeepEqual(got, msgs) {
		t.Fatalf("got %d messages, want %d", len(got), len(msgs))
	}
}

func TestReadFramesReturnsReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(bytes.NewReader(mustFrame(t, PlayerLeft{ID: 2})), iotest.ErrReader(boom))
	calls := 0
	err := ReadFrames(r, func([]byte) { calls++ })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if calls != 1 {
		t.Fatalf("handled %d frames before the error, want 1", calls)
	}
}
