package handlers

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log *logrus.Logger, v any) {
	if _, err := SendJSON(w, v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithFields(logrus.Fields{
			"response": v, "error": err,
		}).Error("unable to send response")
	}
}

func sendStatusJSON(w http.ResponseWriter, log *logrus.Logger, status int, v any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithFields(logrus.Fields{
			"response": v, "error": err,
		}).Error("unable to send response")
	}
}

func sendError(w http.ResponseWriter, log *logrus.Logger, status int, err error) {
	sendStatusJSON(w, log, status, wrapError(err))
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// Seeder hands out independent random sources drawn from one parent.
type Seeder struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSeeder(r *rand.Rand) *Seeder {
	return &Seeder{r: r}
}

func (s *Seeder) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Uint64()
}

func (s *Seeder) Rand() *rand.Rand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rand.New(rand.NewPCG(s.r.Uint64(), s.r.Uint64()))
}
