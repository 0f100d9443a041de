// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/saitachain/staking/api/utils"
	"github.com/saitachain/staking/eventdb"
	"github.com/saitachain/staking/log"
	"github.com/saitachain/staking/runtime"
	"github.com/saitachain/staking/saita"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10
)

type Subscriptions struct {
	rt             *runtime.Runtime
	db             *eventdb.EventDB
	backtraceLimit uint32
	upgrader       *websocket.Upgrader
	done           chan struct{}
	wg             sync.WaitGroup
}

// New creates the subscription endpoints. A subscription may start at most
// backtraceLimit blocks behind the best block.
func New(rt *runtime.Runtime, db *eventdb.EventDB, allowedOrigins []string, backtraceLimit uint32) *Subscriptions {
	return &Subscriptions{
		rt:             rt,
		db:             db,
		backtraceLimit: backtraceLimit,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin || allowed == "*" {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

// best returns the last committed block.
func (s *Subscriptions) best() (uint32, bool) {
	pending := s.rt.BlockNumber()
	if pending == 0 {
		return 0, false
	}
	return pending - 1, true
}

func (s *Subscriptions) parsePosition(req *http.Request) (uint32, error) {
	best, ok := s.best()
	if !ok {
		return 0, nil
	}
	raw := req.URL.Query().Get("pos")
	if raw == "" {
		return best + 1, nil
	}
	pos, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "pos"))
	}
	if uint32(pos) > best+1 {
		return 0, utils.BadRequest(errors.New("pos: beyond the pending block"))
	}
	if best-min(best, uint32(pos)) > s.backtraceLimit {
		return 0, utils.Forbidden(errors.New("pos: backtrace limit exceeded"))
	}
	return uint32(pos), nil
}

func parseAddressQuery(req *http.Request, name string) (*saita.Address, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	addr, err := saita.ParseAddress(raw)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	pos, err := s.parsePosition(req)
	if err != nil {
		return err
	}
	account, err := parseAddressQuery(req, "account")
	if err != nil {
		return err
	}
	validator, err := parseAddressQuery(req, "validator")
	if err != nil {
		return err
	}
	query := req.URL.Query()
	reader := newEventReader(s.db, s.best, pos, readerFilter{
		Module:    query.Get("module"),
		Name:      query.Get("name"),
		Account:   account,
		Validator: validator,
	})

	conn, err := s.upgrader.Upgrade(w, req, nil)
	// since the conn is hijacked here, no error should be returned in lines below
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}
	s.wg.Add(1)
	defer s.wg.Done()

	err = s.pipe(conn, reader)
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err != nil {
		closeMsg = websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
		logger.Debug("subscription closed", "err", err)
	}
	conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait))
	conn.Close()
	return nil
}

func (s *Subscriptions) pipe(conn *websocket.Conn, reader *eventReader) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	closed := make(chan struct{})
	// read goroutine detects the closing of the peer
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		ticker := s.rt.NewTicker()
		msgs, err := reader.Read(ctx)
		if err != nil {
			return err
		}
		for _, msg := range msgs {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
		}
		select {
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case <-ticker:
		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		}
	}
}

// Close terminates open subscriptions and waits for them.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("subscribe-events").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvents))
}
