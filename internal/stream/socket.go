package stream

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Socket wraps a websocket.Conn so that the frame writer and the command
// reader can share it across goroutines. Writes block each other, as do reads.
type Socket struct {
	c       *websocket.Conn
	writeMu *sync.Mutex
	readMu  *sync.Mutex
}

func NewSocket(c *websocket.Conn) Socket {
	return Socket{c, &sync.Mutex{}, &sync.Mutex{}}
}

func (s Socket) ReadJSON(v any) error {
	s.readMu.Lock()
	defer s.readMu.Unlock()
	return s.c.ReadJSON(v)
}

func (s Socket) WriteJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.c.WriteJSON(v)
}
