package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/matryer/way"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
)

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

// handleIndex - renders the whole page with the game mounted in it.
func (that *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleIndex")

	state, err := that.game.State(r.Context())
	if err != nil {
		log.Error("failed to get game state", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = that.renderer.Page(w, view.Build(state)); err != nil {
		log.Error("failed to render page", "error", err)
	}
}

func (that *Server) handleState(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleState")

	state, err := that.game.State(r.Context())
	if err != nil {
		log.Error("failed to get game state", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(view.Build(state)); err != nil {
		log.Error("failed to encode state", "error", err)
	}
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(way.Param(r.Context(), "cell"))
	if err != nil {
		http.Error(w, "cell must be a number", http.StatusBadRequest)
		return
	}

	_, err = that.game.MakeMove(r.Context(), cell)
	that.respond(w, r, "handleMove", err)
}

func (that *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(way.Param(r.Context(), "step"))
	if err != nil {
		http.Error(w, "step must be a number", http.StatusBadRequest)
		return
	}

	_, err = that.game.JumpTo(r.Context(), step)
	that.respond(w, r, "handleJump", err)
}

func (that *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	_, err := that.game.ToggleSort(r.Context())
	that.respond(w, r, "handleSort", err)
}

// respond - sends the browser back to the page after an intent, post/redirect/get.
func (that *Server) respond(w http.ResponseWriter, r *http.Request, method string, err error) {
	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, apperror.ErrStepOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		that.logger.Error("failed to apply intent", "method", method, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
