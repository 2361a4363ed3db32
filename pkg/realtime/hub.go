package realtime

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ghuser/liveboard/pkg/logger"
)

// Hub owns every connected client and their room memberships. All state is
// confined to the Run loop; the exported methods communicate with it over
// channels, so they are safe from any goroutine.
//
// A nil *Hub is a valid no-op channel: every method returns immediately.
// Handlers hold the hub as an optional capability and never need to nil-check.
type Hub struct {
	log logger.Logger

	register   chan *Client
	unregister chan *Client
	broadcasts chan Event
	roomcasts  chan Event
	commands   chan clientCommand
	done       chan struct{}

	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	upgrader websocket.Upgrader
}

type clientCommand struct {
	client *Client
	cmd    command
}

// NewHub returns a Hub ready to Run.
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		log:        log,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcasts: make(chan Event, 64),
		roomcasts:  make(chan Event, 64),
		commands:   make(chan clientCommand, 64),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS for the HTTP API is enforced by middleware; the demo
			// clients connect from file:// and localhost origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Run processes hub events until ctx is cancelled. Call it once, in its own
// goroutine, before serving connections.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			c.enqueue(Event{
				Event:     "welcome",
				Message:   "Welcome! You are now connected to real-time updates.",
				UserID:    c.id,
				Timestamp: now(),
			})
			h.sendToAll(Event{
				Event:     "userJoined",
				Message:   "A new user joined the application",
				UserID:    c.id,
				Timestamp: now(),
			}, c)
			h.log.Info("realtime: client connected", "client_id", c.id, "clients", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; !ok {
				continue
			}
			h.drop(c)
			h.sendToAll(Event{
				Event:     "userLeft",
				Message:   "A user left the application",
				UserID:    c.id,
				Timestamp: now(),
			}, nil)
			h.log.Info("realtime: client disconnected", "client_id", c.id, "clients", len(h.clients))

		case e := <-h.broadcasts:
			h.sendToAll(e, nil)

		case e := <-h.roomcasts:
			h.sendToRoom(e.Room, e, nil)

		case cc := <-h.commands:
			h.handleCommand(cc.client, cc.cmd)
		}
	}
}

// Broadcast pushes an event to every connected client. Safe on a nil hub.
func (h *Hub) Broadcast(e Event) {
	if h == nil {
		return
	}
	select {
	case h.broadcasts <- e:
	default:
		// Hub loop is saturated; notifications are best-effort.
	}
}

// ToRoom pushes an event to the clients that joined room. Safe on a nil hub.
func (h *Hub) ToRoom(room string, e Event) {
	if h == nil {
		return
	}
	e.Room = room
	select {
	case h.roomcasts <- e:
	default:
	}
}

// ServeWS upgrades the request to a WebSocket connection and registers the
// client with the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WarnContext(r.Context(), "realtime: upgrade failed", "error", err)
		return
	}
	c := newClient(h, conn)
	select {
	case h.register <- c:
	case <-h.done:
		// Hub already stopped; don't leak the upgraded connection.
		_ = conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// handleCommand reacts to an inbound client command. Commands from clients
// already dropped by the hub are ignored.
func (h *Hub) handleCommand(c *Client, cmd command) {
	if !h.clients[c] {
		return
	}
	switch cmd.Action {
	case ActionJoinRoom:
		if cmd.Room == "" {
			return
		}
		if h.rooms[cmd.Room] == nil {
			h.rooms[cmd.Room] = make(map[*Client]bool)
		}
		h.rooms[cmd.Room][c] = true
		c.rooms[cmd.Room] = true
		h.sendToRoom(cmd.Room, Event{
			Event:     "userJoinedRoom",
			Message:   "A user joined " + cmd.Room + " section",
			Room:      cmd.Room,
			UserID:    c.id,
			Timestamp: now(),
		}, c)
		h.log.Debug("realtime: client joined room", "client_id", c.id, "room", cmd.Room)

	case ActionLeaveRoom:
		h.leaveRoom(c, cmd.Room)
		h.sendToRoom(cmd.Room, Event{
			Event:     "userLeftRoom",
			Message:   "A user left " + cmd.Room + " section",
			Room:      cmd.Room,
			UserID:    c.id,
			Timestamp: now(),
		}, c)

	case ActionSendMessage:
		username := cmd.Username
		if username == "" {
			username = "Anonymous"
		}
		h.sendToAll(Event{
			Event:     "newMessage",
			Message:   cmd.Message,
			Data:      map[string]string{"username": username},
			UserID:    c.id,
			Timestamp: now(),
		}, nil)
	}
}

// sendToAll fans e out to every client except skip. Clients with a full send
// queue are dropped rather than blocking the hub.
func (h *Hub) sendToAll(e Event, skip *Client) {
	for c := range h.clients {
		if c == skip {
			continue
		}
		if !c.enqueue(e) {
			h.drop(c)
		}
	}
}

func (h *Hub) sendToRoom(room string, e Event, skip *Client) {
	for c := range h.rooms[room] {
		if c == skip {
			continue
		}
		if !c.enqueue(e) {
			h.drop(c)
		}
	}
}

// drop removes a client from the hub and all rooms and closes its queue.
func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for room := range c.rooms {
		h.leaveRoom(c, room)
	}
	close(c.send)
}

func (h *Hub) leaveRoom(c *Client, room string) {
	delete(c.rooms, room)
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}
