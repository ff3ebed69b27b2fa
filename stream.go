package snailfish

import (
	"fmt"

	"github.com/cisco/go-tls-syntax"
)

// A homework set on the wire is a uint32 count followed by that many
// encoded numbers.

///
/// Write Stream
///

type WriteStream struct {
	buffer []byte
}

func NewWriteStream() *WriteStream {
	return &WriteStream{}
}

func (s *WriteStream) Data() []byte {
	return s.buffer
}

func (s *WriteStream) Write(val interface{}) error {
	enc, err := syntax.Marshal(val)
	if err != nil {
		return err
	}
	s.buffer = append(s.buffer, enc...)
	return nil
}

func (s *WriteStream) WriteNumber(n *Number) error {
	enc, err := n.MarshalTLS()
	if err != nil {
		return err
	}
	s.buffer = append(s.buffer, enc...)
	return nil
}

func (s *WriteStream) WriteNumbers(numbers ...*Number) error {
	for _, n := range numbers {
		if err := s.WriteNumber(n); err != nil {
			return err
		}
	}
	return nil
}

///
/// ReadStream
///

type ReadStream struct {
	buffer []byte
	cursor int
}

func NewReadStream(data []byte) *ReadStream {
	return &ReadStream{data, 0}
}

func (s *ReadStream) Read(val interface{}) (int, error) {
	read, err := syntax.Unmarshal(s.buffer[s.cursor:], val)
	if err != nil {
		return 0, err
	}

	s.cursor += read
	return read, nil
}

func (s *ReadStream) ReadNumber() (*Number, int, error) {
	n := &Number{}
	read, err := n.UnmarshalTLS(s.buffer[s.cursor:])
	if err != nil {
		return nil, 0, err
	}

	s.cursor += read
	return n, read, nil
}

func (s *ReadStream) Consumed() int {
	return s.cursor
}

func (s *ReadStream) Remaining() int {
	return len(s.buffer) - s.cursor
}

///
/// Homework sets
///

func EncodeHomework(numbers []*Number) ([]byte, error) {
	w := NewWriteStream()
	if err := w.Write(uint32(len(numbers))); err != nil {
		return nil, fmt.Errorf("snailfish.codec: %v", err)
	}
	if err := w.WriteNumbers(numbers...); err != nil {
		return nil, err
	}
	return w.Data(), nil
}

// DecodeHomework decodes each number into its own arena
func DecodeHomework(data []byte) ([]*Number, error) {
	r := NewReadStream(data)

	var count uint32
	if _, err := r.Read(&count); err != nil {
		return nil, fmt.Errorf("snailfish.codec: %v", err)
	}

	// the count is untrusted
	hint := int(count)
	if hint > r.Remaining() {
		hint = r.Remaining()
	}

	numbers := make([]*Number, 0, hint)
	for i := uint32(0); i < count; i++ {
		n, _, err := r.ReadNumber()
		if err != nil {
			return nil, fmt.Errorf("snailfish.codec: number %d: %w", i, err)
		}
		numbers = append(numbers, n)
	}

	if r.Remaining() != 0 {
		return nil, fmt.Errorf("snailfish.codec: %w: %d trailing bytes", InvalidNodeError, r.Remaining())
	}
	return numbers, nil
}
