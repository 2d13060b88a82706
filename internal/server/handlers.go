package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/langkah-ekspor/exporo/internal/chat"
	"github.com/langkah-ekspor/exporo/internal/report"
	"github.com/langkah-ekspor/exporo/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg store.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if reg.Email == "" || reg.Password == "" {
		s.respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if len(reg.Password) < 6 {
		s.respondError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	user, err := s.store.CreateUser(r.Context(), reg)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.respondError(w, http.StatusConflict, "email already registered")
			return
		}
		s.logger.Error("register failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	s.respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.store.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			s.respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.logger.Error("login failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	s.respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		s.respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	sess, err := s.sessionFor(r.Context(), userID)
	if err != nil {
		s.logger.Error("load session failed", zap.String("user", userID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	reply, err := s.engine.ProcessTurn(r.Context(), sess, req.Message)
	if err != nil {
		s.logger.Error("process turn failed", zap.String("user", userID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"reply":        reply,
		"session_id":   sess.ID,
		"completeness": chat.CheckCompleteness(sess.Profile),
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	sess, err := s.sessionFor(r.Context(), userID)
	if err != nil {
		s.logger.Error("load profile failed", zap.String("user", userID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"profile":      sess.Profile,
		"completeness": chat.CheckCompleteness(sess.Profile),
	})
}

func (s *Server) handleExportProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	sess, err := s.sessionFor(r.Context(), userID)
	if err != nil {
		s.logger.Error("load profile failed", zap.String("user", userID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		doc, err := report.JSONDocument(sess.Profile)
		if err != nil {
			s.logger.Error("export failed", zap.String("user", userID), zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="profile.json"`)
		w.WriteHeader(http.StatusOK)
		w.Write(doc)
	case "xlsx":
		var buf bytes.Buffer
		if err := report.Workbook(sess.Profile, &buf); err != nil {
			s.logger.Error("export failed", zap.String("user", userID), zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="profile.xlsx"`)
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	default:
		s.respondError(w, http.StatusBadRequest, "format must be json or xlsx")
	}
}

func (s *Server) handleResetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	sess, err := s.sessionFor(r.Context(), userID)
	if err != nil {
		s.logger.Error("load profile failed", zap.String("user", userID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	sess.Reset()
	if err := s.store.SaveProfile(r.Context(), userID, sess.Profile); err != nil {
		s.logger.Warn("persist reset failed", zap.String("user", userID), zap.Error(err))
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "reset", "session_id": sess.ID})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
