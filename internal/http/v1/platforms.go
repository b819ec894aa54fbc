package v1

import (
	"encoding/json"
	"net/http"

	"github.com/BootforgeIO/bootforge/internal/bootstrap"
)

type platformInfo struct {
	ID          string `json:"id"`
	Family      string `json:"family"`
	ConfDir     string `json:"conf_dir"`
	ServiceName string `json:"service_name"`
	StepCount   int    `json:"step_count"`
}

// listPlatforms handles GET /platforms
func listPlatforms(w http.ResponseWriter, r *http.Request) {
	var items []platformInfo
	for _, p := range bootstrap.Profiles() {
		items = append(items, platformInfo{
			ID:          p.ID,
			Family:      string(p.Family),
			ConfDir:     p.ConfDir,
			ServiceName: p.ServiceName,
			StepCount:   len(p.Steps),
		})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}
