package server

import (
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"

	"github.com/df07/go-light-sampler/pkg/core"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// lookupQuery is one query point sent by a websocket client
type lookupQuery struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// handleLookupSocket streams distribution lookups over a websocket. The
// client sends query points as JSON and receives one LookupResult per point,
// against the strategy instance chosen by the connection's query parameters.
func (s *Server) handleLookupSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := s.getSession(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Errorf("inspector: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	glog.V(1).Infof("inspector: websocket lookup stream opened for %s", sess.distrib.Name())

	for {
		var q lookupQuery
		if err := conn.ReadJSON(&q); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				glog.Warningf("inspector: websocket read: %v", err)
			}
			return
		}
		result := sess.lookupAt(core.NewVec3(q.X, q.Y, q.Z))
		if err := conn.WriteJSON(result); err != nil {
			glog.Warningf("inspector: websocket write: %v", err)
			return
		}
	}
}
