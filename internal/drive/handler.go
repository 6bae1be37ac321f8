package drive

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oceanbridge/importflow/internal/config"
)

// Handler exposes the catalog ingest over HTTP for the ingest binary.
type Handler struct {
	service       *Service
	ingestService *IngestService
	cfg           config.DriveConfig
}

func NewHandler(service *Service, ingestService *IngestService, cfg config.DriveConfig) *Handler {
	return &Handler{
		service:       service,
		ingestService: ingestService,
		cfg:           cfg,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/catalogs/files", h.ListFiles).Methods("GET")
	router.HandleFunc("/api/catalogs/files/download", h.DownloadFile).Methods("GET")
	router.HandleFunc("/api/catalogs/ingest", h.IngestFile).Methods("POST")
	router.HandleFunc("/api/catalogs/sync", h.SyncCatalog).Methods("POST")
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	folderID := query.Get("folderId")
	folderPath := query.Get("path")

	var err error
	if folderPath != "" {
		folderID, err = h.service.FindFolderByPath(folderPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}

	files, err := h.service.ListFiles(folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	fileID := r.URL.Query().Get("fileId")
	if fileID == "" {
		http.Error(w, "fileId parameter is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=catalog.csv")

	if err := h.service.DownloadFile(fileID, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) IngestFile(w http.ResponseWriter, r *http.Request) {
	fileID := r.URL.Query().Get("fileId")
	if fileID == "" {
		http.Error(w, "fileId parameter is required", http.StatusBadRequest)
		return
	}

	if err := h.ingestService.IngestFile(r.Context(), fileID); err != nil {
		http.Error(w, fmt.Sprintf("ingestion failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// SyncCatalog pulls the whole configured catalog folder and ingests
// every file in it. The folder can be overridden per-request.
func (h *Handler) SyncCatalog(w http.ResponseWriter, r *http.Request) {
	folderID := r.URL.Query().Get("folderId")
	if folderID == "" {
		var err error
		folderID, err = h.service.FindFolderByPath(h.cfg.CatalogFolder)
		if err != nil {
			http.Error(w, fmt.Sprintf("catalog folder not found: %v", err), http.StatusNotFound)
			return
		}
	}

	ingested, err := h.ingestService.SyncFolder(r.Context(), folderID, h.cfg.DownloadDir)
	if err != nil {
		http.Error(w, fmt.Sprintf("sync failed after %d files: %v", ingested, err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"files_ingested": ingested})
}
