package services

import (
	"log"
	"sync"
	"time"

	"sitestock-backend/utils"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WSMessage представляет сообщение WebSocket
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client представляет подключенного клиента
type Client struct {
	ID       string
	Operator string
	Conn     *websocket.Conn
	Send     chan WSMessage
	Hub      *Hub
}

// label ID клиента и оператор, если подключение с токеном
func (c *Client) label() string {
	if c.Operator == "" {
		return c.ID
	}
	return c.ID + " (" + c.Operator + ")"
}

// Hub рассылает события об изменении остатков всем подписчикам
type Hub struct {
	clients      map[*Client]bool
	register     chan *Client
	unregister   chan *Client
	broadcast    chan WSMessage
	done         chan struct{}
	stopOnce     sync.Once
	mutex        sync.RWMutex
	requireToken bool
}

// NewHub создает новый хаб; requireToken - подключение только с JWT оператора
func NewHub(requireToken bool) *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		broadcast:    make(chan WSMessage, 256),
		done:         make(chan struct{}),
		requireToken: requireToken,
	}
}

// Run запускает хаб; возвращается после Stop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()

			log.Printf("Client %s connected. Total clients: %d", client.label(), total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			total := len(h.clients)
			h.mutex.Unlock()

			log.Printf("Client %s disconnected. Total clients: %d", client.label(), total)

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()

		case <-h.done:
			h.mutex.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// Stop останавливает хаб и закрывает очереди клиентов
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Publish ставит событие в очередь рассылки. Не блокирует: при переполнении событие теряется.
func (h *Hub) Publish(eventType string, payload interface{}) {
	message := WSMessage{Type: eventType, Payload: payload}
	select {
	case h.broadcast <- message:
	default:
		log.Printf("WebSocket broadcast queue is full, dropping %s", eventType)
	}
}

// ClientCount количество подключенных клиентов
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) removeClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// HandleWebSocket обрабатывает WebSocket соединение
func (h *Hub) HandleWebSocket(c *websocket.Conn) {
	operator := ""
	if h.requireToken {
		// Токен передается в query параметре
		tokenString := c.Query("token")
		if tokenString == "" {
			c.Close()
			return
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			c.Close()
			return
		}
		operator = claims.Operator
	}

	client := &Client{
		ID:       uuid.NewString(),
		Operator: operator,
		Conn:     c,
		Send:     make(chan WSMessage, 64),
		Hub:      h,
	}

	if !h.addClient(client) {
		c.Close()
		return
	}

	// Обработчик gofiber/websocket закрывает соединение после возврата,
	// поэтому чтение идет в текущей горутине
	go client.writePump()
	client.readPump()
}

// readPump читает сообщения из WebSocket
func (c *Client) readPump() {
	defer func() {
		c.Hub.removeClient(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var message WSMessage
		if err := c.Conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if message.Type == "ping" {
			c.handlePing()
		}
	}
}

// writePump записывает сообщения в WebSocket
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handlePing отвечает pong только этому клиенту
func (c *Client) handlePing() {
	pong := WSMessage{
		Type: "pong",
		Payload: map[string]interface{}{
			"timestamp": time.Now().Unix(),
		},
	}

	// Send закрывается хабом под Lock, поэтому отправка под RLock
	c.Hub.mutex.RLock()
	defer c.Hub.mutex.RUnlock()
	if _, ok := c.Hub.clients[c]; !ok {
		return
	}

	select {
	case c.Send <- pong:
	default:
	}
}
