// File: autolot/handlers/upload.go
package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"autolot/models"
	"autolot/services/inventory"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UploadListingHandler handles the multipart POST /api/listings. Scalar
// fields arrive as plain values, structured fields as JSON strings, and
// images as file attachments.
func (h *InventoryHandler) UploadListingHandler(c *gin.Context) {
	logger := getLogger(c)

	form, err := c.MultipartForm()
	if err != nil {
		logger.Error("Failed to parse multipart form", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse upload"})
		return
	}

	input, err := ingestInputFromForm(form)
	if err != nil {
		logger.Error("Failed to decode listing form", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode listing"})
		return
	}

	listing, err := h.InventoryService.Ingest(c.Request.Context(), input)
	if err != nil {
		logger.Error("Failed to ingest listing", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// ingestInputFromForm maps a parsed multipart form onto an IngestInput.
func ingestInputFromForm(form *multipart.Form) (inventory.IngestInput, error) {
	input := inventory.IngestInput{
		Title:   formValue(form, "title"),
		Price:   formValue(form, "price"),
		Mileage: formValue(form, "mileage"),
		Extra:   formValue(form, "extra"),
		Domain:  formValue(form, "domain"),
		Images:  form.File["images"],
	}

	var rawDetails []struct {
		Detail string  `json:"detail"`
		Option *string `json:"option"`
	}
	if err := decodeJSONField(form, "details", &rawDetails); err != nil {
		return input, err
	}
	for _, rd := range rawDetails {
		detailID, err := primitive.ObjectIDFromHex(rd.Detail)
		if err != nil {
			return input, fmt.Errorf("invalid detail id %q: %w", rd.Detail, err)
		}
		assoc := models.DetailAssociation{Detail: detailID}
		if rd.Option != nil && *rd.Option != "" {
			optionID, err := primitive.ObjectIDFromHex(*rd.Option)
			if err != nil {
				return input, fmt.Errorf("invalid option id %q: %w", *rd.Option, err)
			}
			assoc.Option = &optionID
		}
		input.Details = append(input.Details, assoc)
	}

	var rawFeatures []string
	if err := decodeJSONField(form, "features", &rawFeatures); err != nil {
		return input, err
	}
	for _, rf := range rawFeatures {
		featureID, err := primitive.ObjectIDFromHex(rf)
		if err != nil {
			return input, fmt.Errorf("invalid feature id %q: %w", rf, err)
		}
		input.Features = append(input.Features, featureID)
	}

	if err := decodeJSONField(form, "videos", &input.Videos); err != nil {
		return input, err
	}
	if err := decodeJSONField(form, "pages", &input.Pages); err != nil {
		return input, err
	}
	if err := decodeJSONField(form, "sellerNotes", &input.SellerNotes); err != nil {
		return input, err
	}
	return input, nil
}

// formValue returns the first value posted under a form key, or "".
func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// decodeJSONField unmarshals an optional JSON-encoded form field.
func decodeJSONField(form *multipart.Form, key string, dst interface{}) error {
	raw := formValue(form, key)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("failed to decode %s field: %w", key, err)
	}
	return nil
}
