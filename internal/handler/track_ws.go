package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Lraccc/campus-eats-sub003/config"
	"github.com/Lraccc/campus-eats-sub003/internal/auth"
	"github.com/Lraccc/campus-eats-sub003/internal/metrics"
	"github.com/Lraccc/campus-eats-sub003/internal/models"
	"github.com/Lraccc/campus-eats-sub003/internal/service"
	"github.com/Lraccc/campus-eats-sub003/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Message kinds on the realtime channel.
const (
	msgIdentify          = "identify"
	msgRoomJoin          = "room:join"
	msgLocationUpdate    = "location:update"
	msgLocationBroadcast = "location:broadcast"
)

type identifyMsg struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type roomJoinMsg struct {
	RoomID string `json:"roomId"`
}

type locationUpdateMsg struct {
	Lng  *float64 `json:"lng"`
	Lat  *float64 `json:"lat"`
	Role string   `json:"role"`
}

// locationBroadcast is the enriched event fanned out to subscribers.
type locationBroadcast struct {
	Type            string                  `json:"type"`
	UserID          string                  `json:"userId"`
	Name            string                  `json:"name,omitempty"`
	Role            string                  `json:"role,omitempty"`
	Lng             float64                 `json:"lng"`
	Lat             float64                 `json:"lat"`
	InsideGeofences []service.GeofenceMatch `json:"insideGeofences"`
}

type locationStore interface {
	Upsert(loc *models.UserLocation) error
	GetByUserID(userID string) (*models.UserLocation, error)
}

type geofenceMatcher interface {
	Containing(lng, lat float64) []service.GeofenceMatch
}

// TrackHandler owns the realtime connection lifecycle: upgrade, optional
// token pre-identify, per-session read loop with tagged-message dispatch,
// and the write pump. Each session's messages are processed sequentially by
// its read loop, which is what keeps one identity's reports ordered.
type TrackHandler struct {
	jwtCfg   *config.JWTConfig
	rtCfg    *config.RealtimeConfig
	hub      *ws.Hub
	locs     locationStore
	matcher  geofenceMatcher
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader
}

func NewTrackHandler(jwtCfg *config.JWTConfig, rtCfg *config.RealtimeConfig, hub *ws.Hub, locs locationStore, matcher geofenceMatcher, m *metrics.Metrics) *TrackHandler {
	return &TrackHandler{
		jwtCfg:  jwtCfg,
		rtCfg:   rtCfg,
		hub:     hub,
		locs:    locs,
		matcher: matcher,
		metrics: m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  rtCfg.ReadBufferSize,
			WriteBufferSize: rtCfg.WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the connection and runs the session until disconnect.
func (h *TrackHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	client := ws.NewClient(uuid.NewString(), h.rtCfg.SendBufferSize)
	h.hub.Register(client)
	defer client.Close()

	// A token minted by the upstream auth service pre-identifies the
	// session; an identify message can still overwrite. Invalid tokens are
	// ignored and the session simply starts unidentified.
	if token := c.Query("token"); token != "" {
		if claims, err := auth.ParseIdentityToken(h.jwtCfg, token); err == nil {
			h.hub.Identify(client, ws.Identity{UserID: claims.UserID, Name: claims.Name, Role: claims.Role})
		} else {
			log.Debug().Str("session_id", client.SessionID).Msg("identity token rejected")
		}
	}

	pongWait := h.rtCfg.PongWait
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	go h.writePump(client, conn)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		h.dispatch(client, raw)
	}
}

func (h *TrackHandler) writePump(client *ws.Client, conn *websocket.Conn) {
	writeWait := h.rtCfg.WriteWait
	ticker := time.NewTicker((h.rtCfg.PongWait * 9) / 10)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// dispatch routes one inbound frame by its type tag. Malformed or unknown
// frames are dropped without closing the connection; drops are logged and
// counted.
func (h *TrackHandler) dispatch(client *ws.Client, raw []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		h.drop(client, metrics.ReasonMalformed, "undecodable frame")
		return
	}
	switch env.Type {
	case msgIdentify:
		var msg identifyMsg
		if json.Unmarshal(raw, &msg) != nil || msg.UserID == "" {
			h.drop(client, metrics.ReasonMalformed, "identify without userId")
			return
		}
		h.hub.Identify(client, ws.Identity{UserID: msg.UserID, Name: msg.Name, Role: msg.Role})
	case msgRoomJoin:
		var msg roomJoinMsg
		if json.Unmarshal(raw, &msg) != nil || msg.RoomID == "" {
			h.drop(client, metrics.ReasonMalformed, "room:join without roomId")
			return
		}
		peers := h.hub.JoinRoom(client, msg.RoomID)
		h.replayPeers(client, peers)
	case msgLocationUpdate:
		var msg locationUpdateMsg
		if json.Unmarshal(raw, &msg) != nil || msg.Lng == nil || msg.Lat == nil {
			h.drop(client, metrics.ReasonMalformed, "location:update without coordinates")
			return
		}
		h.handleLocation(client, msg)
	default:
		h.drop(client, metrics.ReasonUnknownType, env.Type)
	}
}

// handleLocation is the ingest path: upsert, match, enrich, fan out.
// A store failure drops this one event; the session stays up.
func (h *TrackHandler) handleLocation(client *ws.Client, msg locationUpdateMsg) {
	id, identified := h.hub.Identity(client)
	userID := id.UserID
	if !identified {
		// Documented fallback: reports from sessions that never identified
		// are stored under the transport-assigned session id.
		userID = "anon-" + client.SessionID
	}
	role := id.Role
	if msg.Role != "" {
		role = msg.Role
	}
	loc := &models.UserLocation{
		UserID:        userID,
		Name:          id.Name,
		Role:          role,
		Longitude:     *msg.Lng,
		Latitude:      *msg.Lat,
		LastUpdatedAt: time.Now().UTC(),
	}
	if err := h.locs.Upsert(loc); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("location upsert failed, event dropped")
		h.metrics.DroppedMessages.WithLabelValues(metrics.ReasonStoreError).Inc()
		return
	}
	h.hub.Route(locationBroadcast{
		Type:            msgLocationBroadcast,
		UserID:          userID,
		Name:            id.Name,
		Role:            role,
		Lng:             *msg.Lng,
		Lat:             *msg.Lat,
		InsideGeofences: h.matcher.Containing(*msg.Lng, *msg.Lat),
	}, client)
}

// replayPeers sends the joiner the last stored position of each identified
// session already in the room. Best-effort: peers without a stored location
// are skipped.
func (h *TrackHandler) replayPeers(client *ws.Client, peers []string) {
	for _, peerID := range peers {
		loc, err := h.locs.GetByUserID(peerID)
		if err != nil || loc == nil {
			continue
		}
		h.hub.SendTo(client, locationBroadcast{
			Type:            msgLocationBroadcast,
			UserID:          loc.UserID,
			Name:            loc.Name,
			Role:            loc.Role,
			Lng:             loc.Longitude,
			Lat:             loc.Latitude,
			InsideGeofences: h.matcher.Containing(loc.Longitude, loc.Latitude),
		})
	}
}

func (h *TrackHandler) drop(client *ws.Client, reason, detail string) {
	h.metrics.DroppedMessages.WithLabelValues(reason).Inc()
	log.Debug().
		Str("session_id", client.SessionID).
		Str("reason", reason).
		Str("detail", detail).
		Msg("realtime message dropped")
}
