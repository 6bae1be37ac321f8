// internal/api/handlers/document_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oceanbridge/importflow/internal/storage"
)

// DocumentHandler serves shipment paperwork (bills of lading, invoices,
// telex confirmations) attached to an order.
type DocumentHandler struct {
	store storage.DocumentStore
}

func NewDocumentHandler(store storage.DocumentStore) *DocumentHandler {
	return &DocumentHandler{store: store}
}

// Upload stores a multipart file under the order's document prefix.
func (h *DocumentHandler) Upload(c *gin.Context) {
	orderID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	name := path.Base(fileHeader.Filename)
	if name == "" || name == "." || name == "/" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file name"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := documentKey(orderID, name)
	if err := h.store.Put(c.Request.Context(), key, f, fileHeader.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store document"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id": orderID,
		"name":     name,
		"size":     fileHeader.Size,
	})
}

// List returns the documents stored for an order.
func (h *DocumentHandler) List(c *gin.Context) {
	orderID := c.Param("id")
	prefix := documentKey(orderID, "")

	objects, err := h.store.List(c.Request.Context(), prefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list documents"})
		return
	}

	type docEntry struct {
		Name         string `json:"name"`
		Size         int64  `json:"size"`
		ContentType  string `json:"content_type"`
		LastModified string `json:"last_modified"`
	}
	entries := make([]docEntry, 0, len(objects))
	for _, obj := range objects {
		entries = append(entries, docEntry{
			Name:         strings.TrimPrefix(obj.Key, prefix),
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "documents": entries})
}

// Download streams a stored document back to the client.
func (h *DocumentHandler) Download(c *gin.Context) {
	orderID := c.Param("id")
	name := path.Base(c.Param("name"))

	rc, info, err := h.store.Get(c.Request.Context(), documentKey(orderID, name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	defer rc.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.DataFromReader(http.StatusOK, info.Size, contentType, rc, nil)
}

func documentKey(orderID, name string) string {
	return fmt.Sprintf("orders/%s/%s", orderID, name)
}
