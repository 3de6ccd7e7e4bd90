package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cloudrumbles/avvai/internal/api/shared"
	"github.com/cloudrumbles/avvai/internal/dictionary"
	"github.com/cloudrumbles/avvai/internal/domain"
	"github.com/cloudrumbles/avvai/internal/lesson"
	"github.com/cloudrumbles/avvai/internal/media"
	"github.com/cloudrumbles/avvai/internal/platform/logger"
)

// maxUploadBytes bounds a single media upload.
const maxUploadBytes = 32 << 20 // 32 MiB

// CacheKeyRequest identifies a dictionary cache entry by its key
type CacheKeyRequest struct {
	Key string `json:"key" validate:"required"`
}

// CacheUpsertRequest replaces a dictionary cache entry
type CacheUpsertRequest struct {
	Key   string           `json:"key" validate:"required"`
	Entry dictionary.Entry `json:"entry" validate:"required"`
}

// AdminHandler handles the administrative HTTP requests: lesson editing,
// media uploads and dictionary cache maintenance.
type AdminHandler struct {
	lessons *lesson.Store
	media   *media.Store
	cache   *dictionary.Cache
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	lessons *lesson.Store,
	mediaStore *media.Store,
	cache *dictionary.Cache,
	logger *slog.Logger,
) *AdminHandler {
	if lessons == nil {
		panic("lesson store cannot be nil") // ALLOW-PANIC
	}
	if mediaStore == nil {
		panic("media store cannot be nil") // ALLOW-PANIC
	}
	if cache == nil {
		panic("dictionary cache cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC
	}
	return &AdminHandler{
		lessons: lessons,
		media:   mediaStore,
		cache:   cache,
		logger:  logger.With(slog.String("component", "admin_handler")),
	}
}

// ListLessons handles GET /api/admin/lessons requests, returning full lessons.
func (h *AdminHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.lessons.ListFull(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lessons)
}

// GetLesson handles GET /api/admin/lessons/{id} requests.
func (h *AdminHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	l, err := h.lessons.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, l)
}

// CreateLesson handles POST /api/admin/lessons requests.
func (h *AdminHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var l domain.Lesson
	if err := shared.DecodeJSON(r, &l); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson format")
		return
	}

	if err := h.lessons.Create(r.Context(), &l); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("lesson created", slog.String("lesson_id", l.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, l)
}

// UpdateLesson handles PUT /api/admin/lessons/{id} requests.
func (h *AdminHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id := chi.URLParam(r, "id")

	var l domain.Lesson
	if err := shared.DecodeJSON(r, &l); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson format")
		return
	}

	if err := h.lessons.Update(r.Context(), id, &l); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("lesson updated", slog.String("lesson_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, l)
}

// DeleteLesson handles DELETE /api/admin/lessons/{id} requests.
func (h *AdminHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id := chi.URLParam(r, "id")

	if err := h.lessons.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("lesson deleted", slog.String("lesson_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListMedia handles GET /api/admin/media requests.
func (h *AdminHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	names, err := h.media.List()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, names)
}

// UploadMedia handles POST /api/admin/media multipart requests. The first
// file field in the form is stored.
func (h *AdminHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.Warn("closing uploaded file", slog.String("error", cerr.Error()))
		}
	}()

	name, err := h.media.Save(header.Filename, file)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"status":   "uploaded",
		"filename": name,
	})
}

// DeleteMedia handles DELETE /api/admin/media/{filename} requests.
func (h *AdminHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	if err := h.media.Delete(chi.URLParam(r, "filename")); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListCacheEntries handles GET /api/admin/dictionary-cache requests.
func (h *AdminHandler) ListCacheEntries(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.cache.List())
}

// GetCacheEntry handles POST /api/admin/dictionary-cache/get requests.
func (h *AdminHandler) GetCacheEntry(w http.ResponseWriter, r *http.Request) {
	var req CacheKeyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, ok := h.cache.Get(req.Key)
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "Cache entry not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// UpsertCacheEntry handles POST /api/admin/dictionary-cache requests,
// replacing an entry wholesale.
func (h *AdminHandler) UpsertCacheEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CacheUpsertRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.cache.Set(req.Key, req.Entry); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("dictionary cache entry replaced", slog.String("key", dictionary.Normalise(req.Key)))
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// DeleteCacheEntry handles DELETE /api/admin/dictionary-cache requests.
func (h *AdminHandler) DeleteCacheEntry(w http.ResponseWriter, r *http.Request) {
	var req CacheKeyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	removed, err := h.cache.Remove(req.Key)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if !removed {
		shared.RespondWithError(w, r, http.StatusNotFound, "Cache entry not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}
