package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/janpfeifer/GoMemory/internal/game"
	"k8s.io/klog/v2"
)

const writeTimeout = 5 * time.Second

// client is one WebSocket connection playing a game.
type client struct {
	conn *websocket.Conn

	// states holds the latest snapshot not yet written: older ones are
	// dropped, since each snapshot is the whole board.
	states chan game.Snapshot
}

// pushState queues snapshot for writing, replacing any snapshot still pending.
// It never blocks, so it can be used as a session listener.
func (c *client) pushState(snapshot game.Snapshot) {
	for {
		select {
		case c.states <- snapshot:
			return
		default:
		}
		select {
		case <-c.states:
		default:
		}
	}
}

// writeLoop writes the queued snapshots until ctx is done.
func (c *client) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-c.states:
			msg, err := game.NewWsMessage(game.MsgTypeState, game.StateMessage{Snapshot: snapshot})
			if err != nil {
				klog.Errorf("writeLoop: Failed to create state message: %v", err)
				continue
			}
			if err := c.write(ctx, msg); err != nil {
				klog.V(1).Infof("writeLoop: Failed to write state for game %s: %v", snapshot.GameID, err)
				return
			}
		}
	}
}

func (c *client) write(ctx context.Context, msg game.WsMessage) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, c.conn, msg)
}

func (c *client) sendError(ctx context.Context, message string) {
	msg, err := game.NewWsMessage(game.MsgTypeError, game.ErrorMessage{Message: message})
	if err != nil {
		klog.Errorf("sendError: Failed to create error message: %v", err)
		return
	}
	if err := c.write(ctx, msg); err != nil {
		klog.V(1).Infof("sendError: Failed to write error: %v", err)
	}
}

// HandleWS handles one game connection.
//
// The first message must be a join. After that the client receives a state
// message after every applied transition, and may send click and restart
// messages.
func (s *ServerState) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		klog.Errorf("HandleWS: Failed to accept websocket: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	c := &client{conn: conn, states: make(chan game.Snapshot, 1)}

	var msg game.WsMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		klog.Errorf("HandleWS: Failed to read join message: %v", err)
		return
	}
	if msg.Type != game.MsgTypeJoin {
		c.sendError(ctx, "expected a join message, got "+string(msg.Type))
		conn.Close(websocket.StatusPolicyViolation, "join first")
		return
	}
	p, err := msg.Parse()
	if err != nil {
		c.sendError(ctx, "invalid join message: "+err.Error())
		conn.Close(websocket.StatusPolicyViolation, "invalid join")
		return
	}
	join := p.(*game.JoinMessage)

	session := s.attach(join.GameID)
	gameID := session.ID
	defer s.detach(gameID)
	klog.Infof("HandleWS: Client %s joined game %s", r.RemoteAddr, gameID)

	go c.writeLoop(ctx)
	unsubscribe := session.Subscribe(c.pushState)
	defer func() { unsubscribe() }()

	for {
		var msg game.WsMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
				klog.Infof("HandleWS: Client left game %s", gameID)
			} else {
				klog.Errorf("HandleWS: Failed to read message for game %s: %v", gameID, err)
			}
			return
		}

		p, err := msg.Parse()
		if err != nil {
			klog.Errorf("HandleWS: Invalid message in game %s: %v", gameID, err)
			c.sendError(ctx, err.Error())
			continue
		}

		switch m := p.(type) {
		case *game.ClickMessage:
			session.Click(m.Position)

		case *game.RestartMessage:
			unsubscribe()
			session = s.restart(gameID)
			unsubscribe = session.Subscribe(c.pushState)

		default:
			c.sendError(ctx, "unexpected message type "+string(msg.Type))
		}
	}
}
