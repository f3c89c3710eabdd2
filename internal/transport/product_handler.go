package transport

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"catalog-api/internal/domain"
	"catalog-api/internal/features/products"
	"catalog-api/internal/pipeline"
	"catalog-api/internal/storage"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// multipartMemoryLimit bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const multipartMemoryLimit = 10 << 20

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	errors *ErrorWriter
	logger *zap.Logger
}

func NewProductHandler(errors *ErrorWriter, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{errors: errors, logger: logger}
}

// RegisterRoutes registers all product routes. Reads are public and
// cacheable, writes require the admin role.
func (h *ProductHandler) RegisterRoutes(r chi.Router, cache, authenticate, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.With(cache).Get("/", h.List)
		r.With(cache).Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(requireAdmin)
			r.Post("/", h.Create)
			r.Post("/with-image", h.CreateWithImage)
			r.Put("/{id}", h.Update)
			r.Post("/{id}/image", h.UpdateImage)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles GET /api/products with pageNumber and pageSize query params.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := products.ListProductsQuery{
		PageNumber: queryInt(r, "pageNumber"),
		PageSize:   queryInt(r, "pageSize"),
	}

	page, err := mediator.Send[products.ListProductsQuery, products.PagedResponse[products.ProductDTO]](r.Context(), query)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	product, err := mediator.Send[products.GetProductQuery, products.ProductDTO](r.Context(), products.GetProductQuery{ID: id})
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd products.CreateProductCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.errors.WriteError(w, r, domain.NewFieldError("Body", "invalid request body"))
		return
	}

	id, err := mediator.Send[products.CreateProductCommand, uuid.UUID](r.Context(), cmd)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	h.logger.Info("product created", zap.String("product_id", id.String()))
	w.Header().Set("Location", "/api/products/"+id.String())
	RespondJSON(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

// CreateWithImage handles multipart/form-data creation. The image part is
// optional; form fields carry the product data.
func (h *ProductHandler) CreateWithImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		h.errors.WriteError(w, r, domain.NewFieldError("Body", "invalid multipart form"))
		return
	}

	categoryIDs, err := parseCategoryIDs(r.Form["categoryIds"])
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	cmd := products.CreateProductWithImageCommand{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		CategoryIDs: categoryIDs,
	}

	file, header, err := r.FormFile("image")
	switch err {
	case nil:
		defer file.Close()
		cmd.File = fileUpload(file, header)
	case http.ErrMissingFile:
		// image part is optional here
	default:
		h.errors.WriteError(w, r, domain.NewFieldError("ImageFile", "invalid image upload"))
		return
	}

	id, err := mediator.Send[products.CreateProductWithImageCommand, uuid.UUID](r.Context(), cmd)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	h.logger.Info("product created", zap.String("product_id", id.String()))
	w.Header().Set("Location", "/api/products/"+id.String())
	RespondJSON(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd products.UpdateProductCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.errors.WriteError(w, r, domain.NewFieldError("Body", "invalid request body"))
		return
	}
	cmd.ID = id

	if _, err := mediator.Send[products.UpdateProductCommand, pipeline.Unit](r.Context(), cmd); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		h.errors.WriteError(w, r, domain.NewFieldError("Body", "invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.errors.WriteError(w, r, domain.NewFieldError("ImageFile", "image file is required"))
		return
	}
	defer file.Close()

	cmd := products.UpdateProductImageCommand{ID: id, File: fileUpload(file, header)}

	url, err := mediator.Send[products.UpdateProductImageCommand, string](r.Context(), cmd)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if _, err := mediator.Send[products.DeleteProductCommand, pipeline.Unit](r.Context(), products.DeleteProductCommand{ID: id}); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.errors.WriteError(w, r, domain.NewFieldError("Id", "invalid identifier"))
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}

func parseCategoryIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, domain.NewFieldError("CategoryIds", "invalid identifier %q", value)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func fileUpload(file multipart.File, header *multipart.FileHeader) *storage.FileUpload {
	return &storage.FileUpload{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}
}
