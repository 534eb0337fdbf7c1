package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sockchat/pkg/chat"
)

// UploadHandlers is the opaque blob-store boundary: a file goes in, a
// {url, name, type} triple comes out. Nothing here touches broker state;
// the client sends the returned reference as a normal message body.
type UploadHandlers struct {
	dir string
}

func NewUploadHandlers(dir string) *UploadHandlers {
	return &UploadHandlers{dir: dir}
}

func (h *UploadHandlers) UploadHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// Unique prefix keeps same-named uploads from clobbering each other.
	stored := uuid.NewString() + "-" + filepath.Base(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.dir, stored)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	c.JSON(http.StatusOK, chat.FileRef{
		URL:  "/uploads/" + stored,
		Name: file.Filename,
		Type: file.Header.Get("Content-Type"),
	})
}
