package ws

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/repository"
	"github.com/adithyaaneesh/swiggy-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// StatusHub pushes order status changes to watching clients over WebSocket.
// One channel per order; the transition engine feeds it through the
// StatusNotifier interface.
type StatusHub struct {
	clients    map[uint]map[*websocket.Conn]bool // orderID -> set of clients
	broadcast  chan StatusEvent
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
	orders     *repository.OrderRepository
}

type Subscription struct {
	Conn    *websocket.Conn
	OrderID uint
	UserID  uint
}

// StatusEvent is the payload written to every watcher of the order.
type StatusEvent struct {
	OrderID        uint               `json:"orderId"`
	PreviousStatus entity.OrderStatus `json:"previousStatus"`
	NewStatus      entity.OrderStatus `json:"newStatus"`
}

func NewStatusHub(orders *repository.OrderRepository) *StatusHub {
	return &StatusHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan StatusEvent, 16),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		orders:     orders,
	}
}

// OrderStatusChanged implements services.StatusNotifier.
func (h *StatusHub) OrderStatusChanged(orderID uint, previous, next entity.OrderStatus) {
	h.broadcast <- StatusEvent{OrderID: orderID, PreviousStatus: previous, NewStatus: next}
}

func (h *StatusHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.OrderID] == nil {
				h.clients[sub.OrderID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.OrderID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.OrderID][sub.Conn]; ok {
				delete(h.clients[sub.OrderID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.OrderID] {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[ev.OrderID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders/:id. The owning customer (or admin) watches one
// order's status feed.
func (h *StatusHub) HandleWebSocket(c *gin.Context) {
	var orderID uint
	fmt.Sscan(c.Param("id"), &orderID)

	userID := utils.CurrentUserID(c)

	o, err := h.orders.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if o.UserID != userID && utils.CurrentRole(c) != entity.RoleAdmin && !utils.IsSuperuser(c) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Subscription{Conn: conn, OrderID: o.ID, UserID: userID}
	h.register <- sub

	go h.drain(sub)
}

// drain keeps the connection alive until the client goes away; the feed is
// one-directional.
func (h *StatusHub) drain(sub Subscription) {
	defer func() { h.unregister <- sub }()

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
