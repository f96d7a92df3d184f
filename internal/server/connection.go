package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	sendBufferSize = 256
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection is one client's WebSocket. Requests are handled in the order
// they arrive.
type Connection struct {
	conn      *websocket.Conn
	server    *Server
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		server: server,
		send:   make(chan *Message, sendBufferSize),
		logger: logger.WithPrefix("conn").With("remote", conn.RemoteAddr().String()),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client.
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client. It is the only
// goroutine that writes to the socket.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)

	var (
		reply MessageType
		data  any
		err   error
	)

	switch msg.Type {
	case MessageTypeEvaluate:
		var req EvaluateData
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse evaluate data")
			return
		}
		reply = MessageTypeEvaluateResult
		data, err = c.server.evaluate(req)

	case MessageTypeBestHand:
		var req BestHandData
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse best hand data")
			return
		}
		reply = MessageTypeBestHandResult
		data, err = c.server.bestHand(req)

	case MessageTypeCompare:
		var req CompareData
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse compare data")
			return
		}
		reply = MessageTypeCompareResult
		data, err = c.server.compare(req)

	case MessageTypeEquity:
		var req EquityData
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse equity data")
			return
		}
		reply = MessageTypeEquityResult
		data, err = c.server.equityOdds(c.ctx, req)

	default:
		c.sendError(msg.RequestID, "unknown_message_type", "Unknown message type: "+msg.Type.String())
		return
	}

	if err != nil {
		c.logger.Debug("Request failed", "type", msg.Type, "requestId", msg.RequestID, "error", err)
		c.sendError(msg.RequestID, errorCode(err), err.Error())
		return
	}
	c.reply(reply, msg.RequestID, data)
}

func (c *Connection) reply(messageType MessageType, requestID string, data any) {
	msg, err := NewMessage(messageType, data, c.server.clock.Now())
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	msg.RequestID = requestID
	if err := c.SendMessage(msg); err != nil {
		c.logger.Debug("Dropped reply", "type", messageType, "error", err)
	}
}

func (c *Connection) sendError(requestID, code, message string) {
	c.reply(MessageTypeError, requestID, ErrorData{Code: code, Message: message})
}
