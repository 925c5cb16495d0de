package status

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mogaika/keyframe_browser/animation"
)

const (
	INFO = iota
	ERROR
	FRAME
	KEY
)

type status struct {
	Message string
	Time    time.Time
	Type    int
	Frame   animation.Frame `json:",omitempty"`
	Object  string          `json:",omitempty"`
	Channel string          `json:",omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		unregisterClient(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[status] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[status] ws write ping error: %v", err)
				return
			}
		}
	}
}

// readPump drains control frames, client never sends anything useful
func (c *client) readPump() {
	defer c.conn.Close()
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

func NewClient(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, 32)}
	globalLock.Lock()
	broadcastList[c] = true
	if lastMessage != nil {
		c.send <- lastMessage
	}
	globalLock.Unlock()
	go c.writePump()
	go c.readPump()
	return c
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ServeWs upgrades request and subscribes connection to status stream
func ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[status] ws upgrade error: %v", err)
		return
	}
	NewClient(conn)
}

var statusBroadcast chan *status
var broadcastList map[*client]bool
var globalLock sync.Mutex
var lastMessage []byte = nil

func unregisterClient(c *client) {
	globalLock.Lock()
	defer globalLock.Unlock()
	delete(broadcastList, c)
}

func init() {
	statusBroadcast = make(chan *status, 16)
	broadcastList = make(map[*client]bool)
	go func() {
		for s := range statusBroadcast {
			data, err := json.Marshal(s)
			if err != nil {
				panic(err)
			}
			globalLock.Lock()
			lastMessage = data
			for c := range broadcastList {
				select {
				case c.send <- data:
				default:
					// slow client misses message
				}
			}
			globalLock.Unlock()
		}
	}()
}

func send(s *status) {
	s.Time = time.Now()
	statusBroadcast <- s
}

func Info(format string, a ...interface{}) {
	send(&status{Message: fmt.Sprintf(format, a...), Type: INFO})
}

func Error(format string, a ...interface{}) {
	send(&status{Message: fmt.Sprintf(format, a...), Type: ERROR})
}

// Frame reports current frame of playback
func Frame(f animation.Frame) {
	send(&status{Message: fmt.Sprintf("frame %d", f), Type: FRAME, Frame: f})
}

// Key reports edited key of object channel
func Key(object string, channel string, f animation.Frame) {
	send(&status{
		Message: fmt.Sprintf("%s.%s @%d", object, channel, f),
		Type:    KEY,
		Frame:   f,
		Object:  object,
		Channel: channel,
	})
}
