package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/BootforgeIO/bootforge/internal/security/enroll"
)

type enrollTokenReq struct {
	NodeID string `json:"node_id"`
	TTL    string `json:"ttl"` // Go duration, e.g. "15m"
}

type enrollTokenResp struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// createEnrollToken handles POST /enroll/token
func createEnrollToken(w http.ResponseWriter, r *http.Request) {
	secret := os.Getenv("BOOTFORGE_ENROLL_JWT_SECRET")
	if secret == "" {
		http.Error(w, "enrollment disabled: BOOTFORGE_ENROLL_JWT_SECRET not set", http.StatusForbidden)
		return
	}
	var req enrollTokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	if req.NodeID == "" {
		http.Error(w, "node_id is required", http.StatusBadRequest)
		return
	}
	ttl := 15 * time.Minute
	if req.TTL != "" {
		if d, err := time.ParseDuration(req.TTL); err == nil {
			ttl = d
		}
	}
	tok, err := enroll.IssueToken([]byte(secret), req.NodeID, ttl)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to issue token: %v", err), http.StatusInternalServerError)
		return
	}
	resp := enrollTokenResp{Token: tok, ExpiresAt: time.Now().Add(ttl)}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(resp)
}
