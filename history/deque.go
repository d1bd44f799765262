package history

import "github.com/milk9111/tilesmith/command"

// stack is a ring buffer of commands that supports dropping from the front
// (oldest) and pushing/popping at the back (newest) in O(1). It keeps a
// running byte total so trimming never rescans.
type stack struct {
	buf   []command.Command
	head  int
	n     int
	bytes int
}

func (s *stack) len() int { return s.n }

func (s *stack) grow() {
	size := len(s.buf) * 2
	if size == 0 {
		size = 16
	}
	buf := make([]command.Command, size)
	for i := 0; i < s.n; i++ {
		buf[i] = s.buf[(s.head+i)%len(s.buf)]
	}
	s.buf = buf
	s.head = 0
}

func (s *stack) pushBack(c command.Command) {
	if s.n == len(s.buf) {
		s.grow()
	}
	s.buf[(s.head+s.n)%len(s.buf)] = c
	s.n++
	s.bytes += c.EstimatedBytes()
}

func (s *stack) popBack() (command.Command, bool) {
	if s.n == 0 {
		return nil, false
	}
	i := (s.head + s.n - 1) % len(s.buf)
	c := s.buf[i]
	s.buf[i] = nil
	s.n--
	s.bytes -= c.EstimatedBytes()
	return c, true
}

func (s *stack) popFront() (command.Command, bool) {
	if s.n == 0 {
		return nil, false
	}
	c := s.buf[s.head]
	s.buf[s.head] = nil
	s.head = (s.head + 1) % len(s.buf)
	s.n--
	s.bytes -= c.EstimatedBytes()
	return c, true
}

// at returns the i-th command, oldest first.
func (s *stack) at(i int) command.Command {
	return s.buf[(s.head+i)%len(s.buf)]
}

func (s *stack) clear() {
	for i := range s.buf {
		s.buf[i] = nil
	}
	s.head, s.n, s.bytes = 0, 0, 0
}
