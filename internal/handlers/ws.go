package handlers

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hackhub-dev/hackhub/internal/types"
	"github.com/hackhub-dev/hackhub/internal/utils"
)

var (
	teamClients   = make(map[string]map[*websocket.Conn]bool)
	teamClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastTeamRefresh tells every connected member of a team to refetch its
// state. Called after successful team and mail mutations; this is the
// explicit replacement for client-side query-cache invalidation.
func BroadcastTeamRefresh(teamID uint) {
	key := strconv.FormatUint(uint64(teamID), 10)

	teamClientsMu.RLock()
	clients, exists := teamClients[key]
	if !exists || len(clients) == 0 {
		teamClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	teamClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":    "refresh",
			"message": "Team updated",
			"team_id": key,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			teamClientsMu.Lock()
			if clients, exists := teamClients[key]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(teamClients, key)
				}
			}
			teamClientsMu.Unlock()
			conn.Close()
		}
	}
}

// TeamWebSocket upgrades the connection and parks it on the team's refresh
// channel. Only team members may subscribe.
func TeamWebSocket(c *gin.Context) {
	userID, err := utils.GetCurrentUserID(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teamID, err := utils.GetTeamID(c)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := isTeamMember(teamID, userID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this team"})
		return
	}

	key := strconv.FormatUint(uint64(teamID), 10)

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	teamClientsMu.Lock()
	if teamClients[key] == nil {
		teamClients[key] = make(map[*websocket.Conn]bool)
	}
	teamClients[key][conn] = true
	teamClientsMu.Unlock()

	defer func() {
		teamClientsMu.Lock()

		if clients, exists := teamClients[key]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(teamClients, key)
			}
		}

		teamClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection closed for team %s", key)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "WebSocket connection established",
		"team_id": key,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for team %s: %v", key, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for team %s: %v", key, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for team %s: %v", key, err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for team %s: %v", key, err)
			}
			break
		}
	}
}
