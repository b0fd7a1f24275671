package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/tataton/roadgraph/pkg/concurrent"
	"github.com/tataton/roadgraph/pkg/util"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*shortestPathRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &shortestPathRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// SearchRoute read one shortest path query from the websocket, stream every
// node the search visits back to the client, then send the final route.
func (u *User) SearchRoute() error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}
	if req.Algorithm == "" {
		req.Algorithm = "dijkstra"
	}

	validate := validator.New()

	if err := validate.Struct(req); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		errResp := envelope{"error": map[string]string{
			"code":    http.StatusText(http.StatusBadRequest),
			"message": fmt.Sprintf("validation error: %v", vvString),
		}}
		return u.write(errResp)
	}

	var writeErr error
	eta, dist, pathPolyline, routeCoords, visitedNodes, err := u.hub.routingService.ShortestPathStream(
		req.OriginLat, req.OriginLon,
		req.DestinationLat, req.DestinationLon, req.Algorithm,
		func(lat, lon float64) {
			if writeErr != nil {
				return
			}
			writeErr = u.write(envelope{"visited": visitedNodeEvent{Lat: lat, Lon: lon}})
		})
	if writeErr != nil {
		u.conn.Close()
		return writeErr
	}
	if err != nil {
		status := http.StatusInternalServerError
		var domainErr *util.Error
		if errors.As(err, &domainErr) {
			switch domainErr.Code() {
			case util.ErrBadParamInput:
				status = http.StatusBadRequest
			case util.ErrNotFound:
				status = http.StatusNotFound
			}
		}
		errResp := envelope{"error": map[string]string{
			"code":    http.StatusText(status),
			"message": err.Error(),
		}}
		return u.write(errResp)
	}

	resp := envelope{"data": NewShortestPathResponse(eta, dist, pathPolyline, routeCoords, visitedNodes)}
	return u.write(resp)
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu             sync.RWMutex
	seq            uint
	us             []*User
	ns             map[uint]*User
	routingService RoutingService

	pool *concurrent.WorkerPool[int, int]
}

func NewHub(pool *concurrent.WorkerPool[int, int], routingService RoutingService) *Hub {
	hub := &Hub{
		pool:           pool,
		ns:             make(map[uint]*User),
		us:             make([]*User, 0),
		routingService: routingService,
	}

	return hub
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, oki := h.ns[user.id]; !oki {
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
	}
}
