package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of
// socket connections, keyed by the anonymous uid of the device.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track uid -> socket connections
	UserConnections map[string]*socket.Socket
	mutex           sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(uid string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[uid] = socket
}

func (s *SocketServer) RemoveConnection(uid string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.UserConnections, uid)
}

func (s *SocketServer) GetConnection(uid string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.UserConnections[uid]
	return socket, exists
}
