package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-ai/internal/knowledge"
)

var ErrSessionNotFound = errors.New("session not found")

type session struct {
	mu       sync.Mutex
	kb       *knowledge.KnowledgeBase
	rnd      *rand.Rand
	saturate bool
	lastSeen time.Time
}

// SessionHandler serves knowledge bases fed by a remote player. Each
// session is used by one request at a time.
type SessionHandler struct {
	log    *logrus.Logger
	seeder *Seeder

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

func NewSessionHandler(log *logrus.Logger, seeder *Seeder) *SessionHandler {
	return &SessionHandler{
		log:      log,
		seeder:   seeder,
		sessions: make(map[uuid.UUID]*session),
	}
}

func (h *SessionHandler) lookup(r *http.Request) (uuid.UUID, *session, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid session id: %w", err)
	}
	h.mu.RLock()
	s, ok := h.sessions[id]
	h.mu.RUnlock()
	if !ok {
		return id, nil, ErrSessionNotFound
	}
	return id, s, nil
}

func (h *SessionHandler) lookupOrFail(w http.ResponseWriter, r *http.Request) (uuid.UUID, *session, bool) {
	id, s, err := h.lookup(r)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		sendError(w, h.log, http.StatusNotFound, err)
		return id, nil, false
	case err != nil:
		sendError(w, h.log, http.StatusBadRequest, err)
		return id, nil, false
	}
	return id, s, true
}

func snapshot(id uuid.UUID, s *session) SessionDTO {
	statements := s.kb.Statements()
	dto := SessionDTO{
		SessionId:    id,
		Height:       s.kb.Height(),
		Width:        s.kb.Width(),
		Saturate:     s.saturate,
		Moves:        s.kb.MovesMade(),
		KnownSafe:    s.kb.KnownSafe(),
		KnownHazards: s.kb.KnownHazards(),
		Statements:   make([]string, len(statements)),
	}
	for i, st := range statements {
		dto.Statements[i] = st.String()
	}
	return dto
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[CreateSessionDTO](r.URL.Query())
	if err == nil {
		err = dto.Validate()
	}
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	var opts []knowledge.Option
	if dto.Saturate {
		opts = append(opts, knowledge.WithSaturation())
	}
	s := &session{
		kb:       knowledge.New(dto.Height, dto.Width, opts...),
		rnd:      h.seeder.Rand(),
		saturate: dto.Saturate,
		lastSeen: time.Now(),
	}
	id := uuid.New()

	h.mu.Lock()
	h.sessions[id] = s
	h.mu.Unlock()
	sessionsActive.Inc()

	h.log.WithFields(logrus.Fields{
		"session_id": id, "height": dto.Height, "width": dto.Width,
	}).Debug("session created")

	sendStatusJSON(w, h.log, http.StatusCreated, snapshot(id, s))
}

func (h *SessionHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookupOrFail(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	sendJSONOrLog(w, h.log, snapshot(id, s))
}

func (h *SessionHandler) Observe(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookupOrFail(w, r)
	if !ok {
		return
	}
	dto, err := decode[ObservationDTO](r.URL.Query())
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	err = s.kb.Ingest(dto.Cell(), dto.Count)
	switch {
	case errors.Is(err, knowledge.ErrOutOfBounds),
		errors.Is(err, knowledge.ErrInvalidStatement):
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	case errors.Is(err, knowledge.ErrContradiction):
		sendError(w, h.log, http.StatusConflict, err)
		return
	case err != nil:
		h.log.WithFields(logrus.Fields{
			"session_id": id, "error": err,
		}).Error("unable to ingest observation")
		sendError(w, h.log, http.StatusInternalServerError, err)
		return
	}

	sendJSONOrLog(w, h.log, snapshot(id, s))
}

func (h *SessionHandler) Move(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.lookupOrFail(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	if c, ok := s.kb.PickKnownSafeMove(); ok {
		sendJSONOrLog(w, h.log, MoveDTO{Cell: c, KnownSafe: true})
		return
	}
	c, err := s.kb.PickFallbackMove(s.rnd)
	if err != nil {
		sendError(w, h.log, http.StatusConflict, err)
		return
	}
	sendJSONOrLog(w, h.log, MoveDTO{Cell: c})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := h.lookupOrFail(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	_, found := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if found {
		sessionsActive.Dec()
	}
	w.WriteHeader(http.StatusNoContent)
}

// Expire drops sessions idle for longer than ttl and returns how many
// were dropped.
func (h *SessionHandler) Expire(ttl time.Duration) int {
	deadline := time.Now().Add(-ttl)

	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for id, s := range h.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(deadline)
		s.mu.Unlock()
		if idle {
			delete(h.sessions, id)
			n++
		}
	}
	sessionsActive.Sub(float64(n))
	if n > 0 {
		h.log.WithField("expired", n).Info("expired idle sessions")
	}
	return n
}

func (h *SessionHandler) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
