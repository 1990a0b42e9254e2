// Package socket общий цикл websocket потоков: апгрейд, keepalive и запись JSON.
package socket

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	maxInboundMessage = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// токен проверяется до апгрейда, origin браузера тут ничего не добавляет
	CheckOrigin: func(*http.Request) bool { return true },
}

// Message конверт каждого сообщения в потоке.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return upgrader.Upgrade(w, r, nil)
}

// Pump пишет сообщения из updates до закрытия канала, отмены ctx или ухода клиента.
// Входящие кадры читаются только ради pong и close.
func Pump(ctx context.Context, conn *websocket.Conn, stream string, updates <-chan Message) error {
	ActiveSessions.WithLabelValues(stream).Inc()
	defer ActiveSessions.WithLabelValues(stream).Dec()

	conn.SetReadLimit(maxInboundMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	gone := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				gone <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			closeNormal(conn)
			return ctx.Err()

		case err := <-gone:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}

		case msg, ok := <-updates:
			if !ok {
				closeNormal(conn)
				return nil
			}
			if err := Write(conn, msg); err != nil {
				return err
			}
			MessagesSentTotal.WithLabelValues(stream, msg.Type).Inc()
		}
	}
}

func Write(conn *websocket.Conn, msg Message) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

// closeNormal ошибку не возвращает: соединение закрывается в любом случае.
func closeNormal(conn *websocket.Conn) {
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
}
