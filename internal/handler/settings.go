package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jand19081/ladle/internal/backup"
	"github.com/jand19081/ladle/internal/model"
	"github.com/jand19081/ladle/internal/store"
	ws "github.com/jand19081/ladle/internal/websocket"
)

type SettingsHandler struct {
	settingsStore *store.SettingsStore
	backupStore   *store.BackupStore
	backupManager *backup.Manager
	hub           *ws.Hub
	logger        *slog.Logger
}

func NewSettingsHandler(ss *store.SettingsStore, bs *store.BackupStore, bm *backup.Manager, hub *ws.Hub, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settingsStore: ss, backupStore: bs, backupManager: bm, hub: hub, logger: logger}
}

func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list settings"})
		return
	}
	if settings == nil {
		settings = []model.Setting{}
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Set(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "key is required"})
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.settingsStore.Set(key, req.Value); err != nil {
		h.logger.Error("set setting", "key", key, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set setting"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("settings", "updated", 0, map[string]any{"key": key}))
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
}

// --- Backups ---

func (h *SettingsHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := h.backupStore.List(50)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list backups"})
		return
	}
	if backups == nil {
		backups = []model.Backup{}
	}
	writeJSON(w, http.StatusOK, backups)
}

func (h *SettingsHandler) BackupStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.backupManager.Status())
}

// RestoreBackup replaces the live database with a decrypted backup. The
// process exits on success so the supervisor restarts on the restored data.
func (h *SettingsHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid backup ID"})
		return
	}

	if !h.backupManager.Enabled() {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "backups are not configured"})
		return
	}

	if err := h.backupManager.Restore(r.Context(), id); err != nil {
		h.logger.Error("restore failed", "backup_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "restore failed"})
		return
	}
}

// DownloadBackup streams the encrypted backup file to the client.
func (h *SettingsHandler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid backup ID"})
		return
	}

	body, size, err := h.backupManager.Download(r.Context(), id)
	if err != nil {
		h.logger.Error("download failed", "backup_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "download failed"})
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	io.Copy(w, body)
}

// BackupNow kicks off a backup in the background; progress flows over the
// websocket via the manager's status callback.
func (h *SettingsHandler) BackupNow(w http.ResponseWriter, r *http.Request) {
	if !h.backupManager.Enabled() {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "backups are not configured"})
		return
	}

	// Detached from the request context: the upload outlives the response.
	go func() {
		if _, err := h.backupManager.RunNow(context.Background()); err != nil {
			h.logger.Error("manual backup failed", "error", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}
