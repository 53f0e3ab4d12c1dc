package protocol

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	// HeaderSize 每个负载前的小端 u32 长度前缀
	HeaderSize = 4
	// ReadChunkSize ReadFrames 每次读取的缓冲大小
	ReadChunkSize = 1024
)

// AppendFrame 把长度前缀和负载追加到 dst
func AppendFrame(dst, payload []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...)
}

// EncodeFrame 编码消息并封装成帧
func EncodeFrame(m Message) ([]byte, error) {
	payload, err := Encode(m)
	if err != nil {
		return nil, err
	}
	return AppendFrame(make([]byte, 0, HeaderSize+len(payload)), payload), nil
}

// DecodeFrame 解码 FrameBuffer.Next 返回的完整帧
func DecodeFrame(frame []byte) (Message, error) {
	if len(frame) < HeaderSize {
		return nil, &DecodeError{Reason: "frame shorter than header"}
	}
	return Decode(frame[HeaderSize:])
}

// FrameBuffer 累积字节流并按完整帧吐出
// 整帧到齐之前不消费任何字节
type FrameBuffer struct {
	buf []byte
}

// Write 追加字节，不会失败
func (b *FrameBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// Len 已缓冲但未消费的字节数
func (b *FrameBuffer) Len() int { return len(b.buf) }

// Next 返回最早的完整帧（含前缀），恰好移除 HeaderSize+length 字节；
// 返回的切片归调用方所有
func (b *FrameBuffer) Next() ([]byte, bool) {
	if len(b.buf) < HeaderSize {
		return nil, false
	}
	size := HeaderSize + int(binary.LittleEndian.Uint32(b.buf[:HeaderSize]))
	if size < HeaderSize || len(b.buf) < size {
		return nil, false
	}
	frame := make([]byte, size)
	copy(frame, b.buf[:size])
	n := copy(b.buf, b.buf[size:])
	b.buf = b.buf[:n]
	return frame, true
}

// ReadFrames 读取 r 直到结束，按到达顺序对每个完整帧调用 fn；
// 一次读取到的帧全部处理完才会再次读取。
// 流结束返回 nil，其他读错误原样返回
func ReadFrames(r io.Reader, fn func(frame []byte)) error {
	var fb FrameBuffer
	chunk := make([]byte, ReadChunkSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			fb.Write(chunk[:n])
			for {
				frame, ok := fb.Next()
				if !ok {
					break
				}
				fn(frame)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
