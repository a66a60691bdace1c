package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	ScoreHandler(w http.ResponseWriter, r *http.Request)
}

type scoreService interface {
	GetTally(ctx context.Context, clientID string) (*entity.ScoreTally, error)
}

type handlers struct {
	scoreService scoreService
}

func NewHandlers(scoreService scoreService) Handlers {
	return &handlers{
		scoreService: scoreService,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// ScoreHandler - returns the win/draw tally for a client.
func (that *handlers) ScoreHandler(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client")
	if clientID == "" {
		http.Error(w, "client query parameter is required", http.StatusBadRequest)
		return
	}

	tally, err := that.scoreService.GetTally(r.Context(), clientID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(tally); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
