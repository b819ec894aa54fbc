package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/BootforgeIO/bootforge/internal/bootstrap"
	"github.com/BootforgeIO/bootforge/internal/dispatch"
	"github.com/BootforgeIO/bootforge/internal/history"
	"github.com/BootforgeIO/bootforge/internal/security/enroll"
	"github.com/BootforgeIO/bootforge/internal/tasks"
)

// History is the optional run-history store, wired in by the server main.
var History *history.Store

type bootstrapRequest struct {
	Platform     string `json:"platform"`
	PrivateKey   string `json:"private_key"`
	PublicKey    string `json:"public_key"`
	MinionConfig string `json:"minion_config"`
}

// enqueueBootstrap handles POST /nodes/{nodeId}/bootstrap
func enqueueBootstrap(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeId")
	if nodeID == "" {
		http.Error(w, "nodeId is required", http.StatusBadRequest)
		return
	}

	// Token auth is on whenever the server carries an enroll secret.
	if secret := os.Getenv("BOOTFORGE_ENROLL_JWT_SECRET"); secret != "" {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tok == "" {
			http.Error(w, "enroll token required", http.StatusUnauthorized)
			return
		}
		claims, err := enroll.VerifyToken([]byte(secret), tok)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid token: %v", err), http.StatusUnauthorized)
			return
		}
		if claims.NodeID != nodeID {
			http.Error(w, "token not valid for this node", http.StatusForbidden)
			return
		}
	}

	var req bootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if _, ok := bootstrap.Profile(req.Platform); !ok {
		http.Error(w, fmt.Sprintf("unknown platform %q", req.Platform), http.StatusBadRequest)
		return
	}
	secrets := &bootstrap.Secrets{
		PrivateKey:   []byte(req.PrivateKey),
		PublicKey:    []byte(req.PublicKey),
		MinionConfig: req.MinionConfig,
	}
	if err := secrets.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t := tasks.Default.EnqueueBootstrap(nodeID, req.Platform)
	dispatch.Default.AddPending(nodeID, &dispatch.Job{Task: t, Secrets: secrets})

	// Return 202 with Location header to the task resource.
	w.Header().Set("Location", fmt.Sprintf("/api/v1/tasks/%s", t.ID))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(t)
}

// getTaskStatus handles GET /tasks/{taskId}
func getTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskId")
	if id == "" {
		http.Error(w, "taskId is required", http.StatusBadRequest)
		return
	}
	t, ok := tasks.Default.Get(id)
	if !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(t)
}

// listHistory handles GET /history
func listHistory(w http.ResponseWriter, r *http.Request) {
	if History == nil {
		http.Error(w, "history disabled", http.StatusServiceUnavailable)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	recs, err := History.Recent(limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("history query failed: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": recs})
}
