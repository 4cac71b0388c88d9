package handler

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"campusnest/model"
	"campusnest/storage"
)

func fileExtentionFromFileName(fileName string) (string, error) {
	// Use extention after last dot; for ex.: 'somefile.txt' -> 'txt'
	for i := len(fileName) - 1; i >= 0; i-- {
		if fileName[i] == '.' {
			return strings.ToLower(fileName[i+1:]), nil
		}
	}
	return "", fmt.Errorf("no extention found")
}

// uploadFile stores one form file and records it as provisional media.
func (h *Handler) uploadFile(ctx context.Context, userID, folder string, file *multipart.FileHeader) (model.File, error) {
	src, err := file.Open()
	if err != nil {
		return model.File{}, err
	}
	defer src.Close()

	newID, err := uuid.NewRandom()
	if err != nil {
		return model.File{}, err
	}

	dbFile := model.File{ID: newID.String()}

	newFilename := dbFile.ID
	if ext, err := fileExtentionFromFileName(file.Filename); err == nil {
		newFilename = fmt.Sprintf("%s.%s", dbFile.ID, ext)
	}

	dbFile.Title = file.Filename
	dbFile.Path = fmt.Sprintf("%s/%s/%s", folder, userID, newFilename)
	dbFile.Mime = file.Header.Get("Content-Type")
	dbFile.Size = file.Size
	dbFile.CreatedByID = userID
	dbFile.IsProvisional = true

	url, err := h.Media.Put(ctx, dbFile.Path, dbFile.Mime, src)
	if err != nil {
		return model.File{}, fmt.Errorf("upload %s: %w", file.Filename, err)
	}
	dbFile.URL = url

	if err := h.DB.WithContext(ctx).Create(&dbFile).Error; err != nil {
		if delErr := h.Media.Delete(ctx, dbFile.Path); delErr != nil {
			log.Errorf("Failed to delete %s after DB error: %v", dbFile.Path, delErr)
		}
		return model.File{}, fmt.Errorf("save file %s: %w", file.Filename, err)
	}

	log.Infof("File uploaded to %s", url)
	return dbFile, nil
}

// uploadFiles uploads every file in order. When one fails, the ones already
// stored in this call are removed again.
func (h *Handler) uploadFiles(ctx context.Context, userID, folder string, files []*multipart.FileHeader) ([]model.File, error) {
	uploaded := []model.File{}
	for _, file := range files {
		dbFile, err := h.uploadFile(ctx, userID, folder, file)
		if err != nil {
			h.discardFiles(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, dbFile)
	}
	return uploaded, nil
}

// discardFiles deletes stored objects and their rows. Failures are logged and
// leave provisional rows behind for PruneFiles.
func (h *Handler) discardFiles(ctx context.Context, files []model.File) {
	for _, f := range files {
		if err := h.Media.Delete(ctx, f.Path); err != nil {
			log.Errorf("Failed to delete %s from storage: %v", f.Path, err)
			continue
		}
		if err := h.DB.WithContext(ctx).Delete(&model.File{ID: f.ID}).Error; err != nil {
			log.Errorf("Failed to delete file %s from DB: %v", f.ID, err)
		}
	}
}

// attachFiles marks media as belonging to a written submission.
func attachFiles(tx *gorm.DB, files []model.File, submissionID string) error {
	if len(files) == 0 {
		return nil
	}

	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}

	return tx.Model(&model.File{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"is_provisional": false, "submission_id": submissionID}).
		Error
}

func (h *Handler) FetchFiles(c echo.Context) error {
	files := []model.File{}
	query := h.DB.Model(&model.File{}).Order("created_at desc")
	if c.QueryParam("provisional") == "true" {
		query = query.Where("is_provisional = ?", true)
	}

	if err := query.Find(&files).Error; err != nil {
		log.Errorf("Failed to get files from DB: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to get files from DB"}
	}

	return c.JSON(http.StatusOK, ListResponse{Total: int64(len(files)), Items: files})
}

// PruneFiles removes media left provisional for longer than the orphan age:
// uploads whose submission was never written.
func (h *Handler) PruneFiles(c echo.Context) error {
	ctx := c.Request().Context()
	cutoff := time.Now().Add(-h.Limits.OrphanMediaAge)

	orphans := []model.File{}
	err := h.DB.Where("is_provisional = ? AND created_at < ?", true, cutoff).Find(&orphans).Error
	if err != nil {
		log.Errorf("Failed to list orphaned files: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to list orphaned files."}
	}

	pruned := 0
	for _, f := range orphans {
		if err := h.Media.Delete(ctx, f.Path); err != nil {
			log.Errorf("Failed to delete %s from storage: %v", f.Path, err)
			continue
		}
		if err := h.DB.Delete(&model.File{ID: f.ID}).Error; err != nil {
			log.Errorf("Failed to delete file %s from DB: %v", f.ID, err)
			continue
		}
		pruned++
	}

	log.Infof("Pruned %d orphaned files", pruned)
	return c.JSON(http.StatusOK, model.PruneResponse{Pruned: pruned})
}

func (h *Handler) DownloadFile(c echo.Context) error {
	id := c.Param("id")

	file := model.File{}
	err := h.DB.First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{Code: http.StatusNotFound, Message: "File not found."}
		}
		log.Errorf("Failed to get file from DB: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to get file from DB"}
	}

	visible, err := h.canDownload(currentUser(c), file)
	if err != nil {
		log.Errorf("Failed to check access to file %s: %v", file.ID, err)
		he := &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to download file."}
		return he.SetInternal(err)
	}
	if !visible {
		return &echo.HTTPError{Code: http.StatusNotFound, Message: "File not found."}
	}

	obj, err := h.Media.Get(c.Request().Context(), file.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &echo.HTTPError{Code: http.StatusNotFound, Message: "File not found."}
		}
		log.Errorf("Failed to download file: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to download file."}
	}
	defer obj.Body.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, "inline; filename="+file.ID)

	return c.Stream(http.StatusOK, obj.ContentType, obj.Body)
}

// canDownload lets admins and the uploader see any file; everyone else only
// sees media of a listing on the public pages.
func (h *Handler) canDownload(u *model.AuthUser, file model.File) (bool, error) {
	if u.IsAdmin || (u.ID != "" && u.ID == file.CreatedByID) {
		return true, nil
	}
	if file.IsProvisional || file.SubmissionID == "" {
		return false, nil
	}

	var count int64
	err := h.DB.Model(&model.Property{}).
		Where("submission_id = ? AND status IN ?", file.SubmissionID, model.PublicPropertyStatuses).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
