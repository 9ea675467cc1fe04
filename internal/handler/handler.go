package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/model"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/service"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/shared"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/storage"
)

type Handler struct {
	photos *service.PhotoService
	auth   *service.AuthService
}

func NewHandler(photos *service.PhotoService, auth *service.AuthService) *Handler {
	return &Handler{photos: photos, auth: auth}
}

// statusFor maps each error kind to a stable caller-facing status.
func statusFor(err error) int {
	var validationErr *service.ValidationError
	var decodeErr *service.DecodeError
	var storeErr *storage.StoreError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &decodeErr):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrDuplicatePhoto):
		return http.StatusConflict
	case errors.Is(err, model.ErrPhotoNotFound):
		return http.StatusNotFound
	case errors.As(err, &storeErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), model.ErrorMessage{Error: err.Error()})
}

// --- Public routes ---

func (h *Handler) ListPhotos(c *gin.Context) {
	sort := shared.ParseSort(c.Query("sort"))
	photos, err := h.photos.GetAllPhotos(c.Request.Context(), sort)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.photoList(photos))
}

func (h *Handler) GetPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "invalid photo id"})
		return
	}
	photo, err := h.photos.GetPhoto(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.photos.ToResponse(photo))
}

func (h *Handler) ListCollections(c *gin.Context) {
	collections, err := h.photos.GetCollections(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	if collections == nil {
		collections = []string{}
	}
	c.JSON(http.StatusOK, model.CollectionsResponse{Collections: collections})
}

func (h *Handler) ListCollectionPhotos(c *gin.Context) {
	name := c.Param("name")
	if name == model.AboutCollection {
		c.JSON(http.StatusNotFound, model.ErrorMessage{Error: "unknown collection"})
		return
	}
	sort := shared.ParseSort(c.Query("sort"))
	photos, err := h.photos.GetPhotosByCollection(c.Request.Context(), name, sort)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.photoList(photos))
}

func (h *Handler) GetHeroPhoto(c *gin.Context) {
	photo, err := h.photos.GetHeroPhoto(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.photos.ToResponse(photo))
}

func (h *Handler) GetAboutPhoto(c *gin.Context) {
	photo, err := h.photos.GetAboutPhoto(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.photos.ToResponse(photo))
}

// --- Auth ---

func (h *Handler) Register(c *gin.Context) {
	var input model.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	err := h.auth.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if errors.Is(err, service.ErrAdminExists) {
		c.JSON(http.StatusConflict, model.ErrorMessage{Error: err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorMessage{Error: "Could not register"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin registered"})
}

func (h *Handler) Login(c *gin.Context) {
	var input model.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, model.ErrorMessage{Error: "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, model.TokenResponse{AccessToken: token})
}

func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorMessage{Error: "Missing token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")
		userID, err := h.auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorMessage{Error: "Invalid token"})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// --- Admin routes ---

func (h *Handler) UploadPhoto(c *gin.Context) {
	title := c.PostForm("title")
	collection := c.PostForm("collection")
	if title == "" || len(title) > 50 {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "title must be 1-50 characters"})
		return
	}
	if collection == "" {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "collection is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "could not read file"})
		return
	}
	defer file.Close()

	photo, err := h.photos.UploadPhoto(
		c.Request.Context(),
		title,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		collection,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.photos.ToResponse(photo))
}

func (h *Handler) DeletePhotos(c *gin.Context) {
	var input model.DeletePhotosRequest
	if err := c.ShouldBindJSON(&input); err != nil || len(input.IDs) == 0 {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	report, err := h.photos.DeletePhotos(c.Request.Context(), input.IDs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) photoList(photos []model.Photo) model.PhotoListResponse {
	resp := model.PhotoListResponse{Photos: make([]model.PhotoResponse, 0, len(photos))}
	for i := range photos {
		resp.Photos = append(resp.Photos, h.photos.ToResponse(&photos[i]))
	}
	return resp
}
