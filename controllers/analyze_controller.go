package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guptavaibhav1806/food-analyzer-api/models"
	"github.com/guptavaibhav1806/food-analyzer-api/services"
	"github.com/guptavaibhav1806/food-analyzer-api/utils"
)

type AnalyzeController struct {
	svc *services.DecisionService
}

func NewAnalyzeController(svc *services.DecisionService) *AnalyzeController {
	return &AnalyzeController{svc: svc}
}

// POST /analyze — multipart form with fields:
//
//	image    packaging photo (optional when barcode is given)
//	profile  user profile JSON (optional)
//	barcode  explicit product barcode (optional)
func (ac *AnalyzeController) Analyze(c *gin.Context) {
	profile, err := models.ParseProfile(c.PostForm("profile"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	barcode := strings.TrimSpace(c.PostForm("barcode"))
	file, _ := c.FormFile("image")
	if file == nil && barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "an 'image' upload or a 'barcode' is required"})
		return
	}

	var imageBytes []byte
	var imageMIME string
	if file != nil {
		imageBytes, imageMIME, err = readUpload(c, file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded image", "detail": err.Error()})
			return
		}
	}

	decision, err := ac.svc.Analyze(c.Request.Context(), services.AnalyzeRequest{
		Image:     imageBytes,
		ImageMIME: imageMIME,
		Barcode:   barcode,
		Profile:   profile,
	})
	if err != nil {
		var parseErr *utils.ExtractionParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": parseErr.Error(), "raw_text": parseErr.RawText})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, decision)
}

// readUpload spools the upload through a request-scoped temp file and
// returns its bytes plus a best-guess MIME type.
func readUpload(c *gin.Context, file *multipart.FileHeader) ([]byte, string, error) {
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		return nil, "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		return nil, "", fmt.Errorf("save upload: %w", err)
	}
	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}

	mime := file.Header.Get("Content-Type")
	if mime == "" {
		switch strings.ToLower(filepath.Ext(file.Filename)) {
		case ".png":
			mime = "image/png"
		default:
			mime = "image/jpeg"
		}
	}
	return data, mime, nil
}
