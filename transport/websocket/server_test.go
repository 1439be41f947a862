package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemoryStateRepository())
	server := httptest.NewServer(New(logger, manager, view.MustNewRenderer()))
	t.Cleanup(server.Close)

	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	return msg
}

func readRender(t *testing.T, conn *websocket.Conn) RenderPayload {
	t.Helper()

	msg := readMessage(t, conn)
	require.Equal(t, actionRender, msg.Action)

	var payload RenderPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))

	return payload
}

func send(t *testing.T, conn *websocket.Conn, action, payload string) {
	t.Helper()

	msg := Message{Action: action}
	if payload != "" {
		msg.Payload = json.RawMessage(payload)
	}

	require.NoError(t, conn.WriteJSON(msg))
}

func TestServer_InitialRender(t *testing.T) {
	// Given: a running server
	server := newTestServer(t)

	// When: a client connects
	conn := dial(t, server)

	// Then: the current tree is pushed right away
	payload := readRender(t, conn)
	assert.Equal(t, "Next player: X", payload.Status.Text)
	assert.Equal(t, 9, strings.Count(payload.HTML, `class="square`))
}

func TestServer_Intents(t *testing.T) {
	t.Run("Board click renders the new state", func(t *testing.T) {
		server := newTestServer(t)
		conn := dial(t, server)
		readRender(t, conn)

		// When: X clicks the center
		send(t, conn, actionBoardClick, `{"cell":4}`)

		// Then: O is next
		payload := readRender(t, conn)
		assert.Equal(t, "Next player: O", payload.Status.Text)
		assert.Contains(t, payload.HTML, "Go to move #1 w/ (Column, Row): (1, 1)")
	})

	t.Run("Top row win", func(t *testing.T) {
		server := newTestServer(t)
		conn := dial(t, server)
		readRender(t, conn)

		var payload RenderPayload
		for _, cell := range []string{"0", "4", "1", "3", "2"} {
			send(t, conn, actionBoardClick, `{"cell":`+cell+`}`)
			payload = readRender(t, conn)
		}

		assert.Equal(t, "Winner: X!", payload.Status.Text)
		assert.Equal(t, 3, strings.Count(payload.HTML, "winning-square"))
	})

	t.Run("Jump and sort", func(t *testing.T) {
		server := newTestServer(t)
		conn := dial(t, server)
		readRender(t, conn)

		send(t, conn, actionBoardClick, `{"cell":0}`)
		readRender(t, conn)

		// When: jumping back to the start and toggling the sort
		send(t, conn, actionHistoryJump, `{"step":0}`)
		jumped := readRender(t, conn)
		send(t, conn, actionHistorySort, "")
		sorted := readRender(t, conn)

		// Then: X is next again and the newest move is listed first
		assert.Equal(t, "Next player: X", jumped.Status.Text)
		assert.Less(t, strings.Index(sorted.HTML, "Go to move #1"), strings.Index(sorted.HTML, "Go to game start"))
	})

	t.Run("Every connected page receives the update", func(t *testing.T) {
		server := newTestServer(t)
		first := dial(t, server)
		second := dial(t, server)
		readRender(t, first)
		readRender(t, second)

		send(t, first, actionBoardClick, `{"cell":8}`)

		assert.Equal(t, "Next player: O", readRender(t, first).Status.Text)
		assert.Equal(t, "Next player: O", readRender(t, second).Status.Text)
	})
}

func TestServer_Errors(t *testing.T) {
	t.Run("Unknown action is answered with an error", func(t *testing.T) {
		server := newTestServer(t)
		conn := dial(t, server)
		readRender(t, conn)

		send(t, conn, "game:unknown", "")

		msg := readMessage(t, conn)
		assert.Equal(t, "game:unknown", msg.Action)
		assert.Contains(t, string(msg.Payload), "unknown action")
	})

	t.Run("Jump outside history is answered with an error", func(t *testing.T) {
		server := newTestServer(t)
		conn := dial(t, server)
		readRender(t, conn)

		send(t, conn, actionHistoryJump, `{"step":5}`)

		msg := readMessage(t, conn)
		assert.Equal(t, actionHistoryJump, msg.Action)
		assert.Contains(t, string(msg.Payload), "out of history range")
	})

	t.Run("Missing cell is answered with an error", func(t *testing.T) {
		server := newTestServer(t)
		conn := dial(t, server)
		readRender(t, conn)

		send(t, conn, actionBoardClick, `{}`)

		msg := readMessage(t, conn)
		assert.Contains(t, string(msg.Payload), "cell is required")
	})

	t.Run("Occupied cell is ignored silently", func(t *testing.T) {
		server := newTestServer(t)
		conn := dial(t, server)
		readRender(t, conn)

		send(t, conn, actionBoardClick, `{"cell":4}`)
		readRender(t, conn)

		// When: the same cell is clicked, then a valid move follows
		send(t, conn, actionBoardClick, `{"cell":4}`)
		send(t, conn, actionBoardClick, `{"cell":0}`)

		// Then: the next message is the render of the valid move
		payload := readRender(t, conn)
		assert.Equal(t, "Next player: X", payload.Status.Text)
		assert.Equal(t, 3, strings.Count(payload.HTML, `class="move`))
	})
}
