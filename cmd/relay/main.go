package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
)

type roomID string
type cid string

type mailbox struct {
	mu      sync.RWMutex
	members map[roomID]map[cid]bool
	queues  map[roomID]map[cid][][]byte
}

func newMailbox() *mailbox {
	return &mailbox{
		members: make(map[roomID]map[cid]bool),
		queues:  make(map[roomID]map[cid][][]byte),
	}
}

func (m *mailbox) register(room roomID, who cid) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.members[room] == nil {
		m.members[room] = make(map[cid]bool)
		m.queues[room] = make(map[cid][][]byte)
	}
	m.members[room][who] = true
}

func (m *mailbox) enqueue(room roomID, to cid, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queues[room] == nil {
		m.queues[room] = make(map[cid][][]byte)
	}
	m.queues[room][to] = append(m.queues[room][to], payload)
}

func (m *mailbox) broadcast(room roomID, from cid, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for who := range m.members[room] {
		if who == from {
			continue
		}
		if m.queues[room] == nil {
			m.queues[room] = make(map[cid][][]byte)
		}
		m.queues[room][who] = append(m.queues[room][who], payload)
	}
}

func (m *mailbox) drain(room roomID, who cid) [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.members[room] == nil {
		m.members[room] = make(map[cid]bool)
	}
	m.members[room][who] = true
	if m.queues[room] == nil {
		return nil
	}
	out := m.queues[room][who]
	delete(m.queues[room], who)
	return out
}

// splitRoomPath pulls {room} plus the trailing segments out of a path like
// /rooms/{room}/broadcast/{from} or /rooms/{room}/send/{from}/{to}.
func splitRoomPath(prefix, path string) (room roomID, rest []string, ok bool) {
	trimmed := strings.TrimPrefix(path, prefix)
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[0] == "" {
		return "", nil, false
	}
	return roomID(parts[0]), parts[1:], true
}

func main() {
	box := newMailbox()

	http.HandleFunc("/rooms/", func(w http.ResponseWriter, r *http.Request) {
		room, rest, ok := splitRoomPath("/rooms/", r.URL.Path)
		if !ok {
			http.Error(w, "bad path", http.StatusBadRequest)
			return
		}

		switch {
		case len(rest) == 2 && rest[0] == "broadcast" && r.Method == http.MethodPost:
			from := cid(rest[1])
			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			box.register(room, from)
			box.broadcast(room, from, body)
			w.WriteHeader(http.StatusOK)

		case len(rest) == 3 && rest[0] == "send" && r.Method == http.MethodPost:
			from, to := cid(rest[1]), cid(rest[2])
			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			box.register(room, from)
			box.enqueue(room, to, body)
			w.WriteHeader(http.StatusOK)

		case len(rest) == 2 && rest[0] == "poll" && r.Method == http.MethodGet:
			who := cid(rest[1])
			payloads := box.drain(room, who)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(payloads)

		default:
			http.NotFound(w, r)
		}
	})

	log.Println("relay listening on :8080")
	log.Fatal(http.ListenAndServe(":8080", nil))
}
