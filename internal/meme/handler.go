package meme

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/memebin/service/internal/mediaclient"
	"github.com/memebin/service/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// resolvedMemeKey is the context key for the record resolved from the path id.
const resolvedMemeKey contextKey = "meme"

const defaultPageSize = 10

// MemeWithURL is a meme record composed with a presigned download URL.
type MemeWithURL struct {
	Meme
	URL string `json:"url"`
}

// Handler holds HTTP handlers for the meme endpoints.
type Handler struct {
	svc        *Service
	maxText    int
	maxPerPage int
}

// NewHandler creates a meme Handler with the given caption-length and page-size limits.
func NewHandler(svc *Service, maxText, maxPerPage int) *Handler {
	return &Handler{svc: svc, maxText: maxText, maxPerPage: maxPerPage}
}

// Routes returns the meme router, mounted at /memes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.resolveMeme)
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
	return r
}

// resolveMeme parses the path id and loads the record before any handler
// logic runs. Mutating handlers therefore never validate uploads or call
// the media service for a record that does not exist.
func (h *Handler) resolveMeme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.UnprocessableEntity(w, response.Detail{
				Msg:   "id must be a positive integer",
				Loc:   []string{"path", "id"},
				Type:  response.TypeIntParsing,
				Input: raw,
			})
			return
		}

		m, err := h.svc.GetByID(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, response.Detail{
				Msg:   "meme not found",
				Loc:   []string{"path", "id"},
				Type:  response.TypeMemeNotFound,
				Input: id,
			})
			return
		}
		if err != nil {
			response.InternalError(w, "error while loading meme")
			return
		}

		ctx := context.WithValue(r.Context(), resolvedMemeKey, m)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolved returns the meme record loaded by resolveMeme.
func resolved(ctx context.Context) *Meme {
	m, _ := ctx.Value(resolvedMemeKey).(*Meme)
	return m
}

// List godoc
//
//	@Summary		List memes
//	@Description	Returns an id-ordered page of meme records. Pure metadata read, no storage calls.
//	@Tags			memes
//	@Produce		json
//	@Param			offset	query		int	false	"Number of items to skip"		default(0)
//	@Param			limit	query		int	false	"Number of items on the page"	default(10)
//	@Success		200		{array}		Meme
//	@Failure		422		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/memes [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	offset, ok := h.queryInt(w, r, "offset", 0, 0, -1)
	if !ok {
		return
	}
	limit, ok := h.queryInt(w, r, "limit", defaultPageSize, 1, h.maxPerPage)
	if !ok {
		return
	}

	memes, err := h.svc.List(r.Context(), offset, limit)
	if err != nil {
		response.InternalError(w, "error while listing memes")
		return
	}
	response.OK(w, memes)
}

// Get godoc
//
//	@Summary		Get one meme
//	@Description	Returns the meme record together with a presigned, time-limited download URL for its image.
//	@Tags			memes
//	@Produce		json
//	@Param			id	path		int	true	"Meme id"
//	@Success		200	{object}	MemeWithURL
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		422	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Failure		502	{object}	response.ErrorBody
//	@Router			/memes/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	m := resolved(r.Context())

	url, err := h.svc.DownloadURL(r.Context(), m)
	if err != nil {
		h.writeMediaError(w, err)
		return
	}

	response.OK(w, MemeWithURL{Meme: *m, URL: url})
}

// Create godoc
//
//	@Summary		Create a meme
//	@Description	Uploads the image to the media service, then records the meme. The caption goes in the text query parameter, the image in the multipart "file" field.
//	@Tags			memes
//	@Accept			mpfd
//	@Produce		json
//	@Param			text	query		string	true	"Caption attached to the image"
//	@Param			file	formData	file	true	"Image file"
//	@Success		201		{object}	Meme
//	@Failure		413		{object}	response.ErrorBody
//	@Failure		415		{object}	response.ErrorBody
//	@Failure		422		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Failure		502		{object}	response.ErrorBody
//	@Router			/memes [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	text, ok := h.queryText(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.UnprocessableEntity(w, response.Detail{
			Msg:  "file is required",
			Loc:  []string{"body", "file"},
			Type: response.TypeMissing,
		})
		return
	}
	defer file.Close()

	up := &Upload{
		Content:     file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}

	m, err := h.svc.Create(r.Context(), text, up)
	if err != nil {
		h.writeMediaError(w, err)
		return
	}

	response.Created(w, m)
}

// Update godoc
//
//	@Summary		Update a meme
//	@Description	Replaces the caption and/or the image. The two sub-operations are independent: a text-only update never touches storage, an image-only update never touches the caption.
//	@Tags			memes
//	@Accept			mpfd
//	@Produce		json
//	@Param			id		path		int		true	"Meme id"
//	@Param			text	query		string	false	"New caption"
//	@Param			file	formData	file	false	"Replacement image file"
//	@Success		200		{object}	Meme
//	@Failure		404		{object}	response.ErrorBody
//	@Failure		413		{object}	response.ErrorBody
//	@Failure		415		{object}	response.ErrorBody
//	@Failure		422		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Failure		502		{object}	response.ErrorBody
//	@Router			/memes/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	m := resolved(r.Context())

	hasText := r.URL.Query().Has("text")
	var text string
	if hasText {
		var ok bool
		if text, ok = h.queryText(w, r); !ok {
			return
		}
	}

	var up *Upload
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		up = &Upload{
			Content:     file,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Filename:    header.Filename,
		}
	}

	updated, err := h.svc.Update(r.Context(), m, text, hasText, up)
	if err != nil {
		h.writeMediaError(w, err)
		return
	}

	response.OK(w, updated)
}

// Delete godoc
//
//	@Summary		Delete a meme
//	@Description	Removes the record, then the stored image. Returns the deleted record.
//	@Tags			memes
//	@Produce		json
//	@Param			id	path		int	true	"Meme id"
//	@Success		200	{object}	Meme
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		422	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Failure		502	{object}	response.ErrorBody
//	@Router			/memes/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	m := resolved(r.Context())

	if err := h.svc.Delete(r.Context(), m); err != nil {
		h.writeMediaError(w, err)
		return
	}

	response.OK(w, m)
}

// queryText validates the text query parameter: required, 1..maxText characters.
func (h *Handler) queryText(w http.ResponseWriter, r *http.Request) (string, bool) {
	text := r.URL.Query().Get("text")
	if text == "" {
		response.UnprocessableEntity(w, response.Detail{
			Msg:  "text must not be empty",
			Loc:  []string{"query", "text"},
			Type: response.TypeMissing,
		})
		return "", false
	}
	if len([]rune(text)) > h.maxText {
		response.UnprocessableEntity(w, response.Detail{
			Msg:   "text must be at most " + strconv.Itoa(h.maxText) + " characters",
			Loc:   []string{"query", "text"},
			Type:  response.TypeBadLength,
			Input: text,
		})
		return "", false
	}
	return text, true
}

// queryInt parses an integer query parameter and enforces its bounds.
// max < 0 means unbounded.
func (h *Handler) queryInt(w http.ResponseWriter, r *http.Request, name string, fallback, min, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.UnprocessableEntity(w, response.Detail{
			Msg:   name + " must be an integer",
			Loc:   []string{"query", name},
			Type:  response.TypeIntParsing,
			Input: raw,
		})
		return 0, false
	}
	if n < min || (max >= 0 && n > max) {
		response.UnprocessableEntity(w, response.Detail{
			Msg:   name + " is out of range",
			Loc:   []string{"query", name},
			Type:  response.TypeOutOfRange,
			Input: n,
		})
		return 0, false
	}
	return n, true
}

// writeMediaError maps orchestration failures to the public error surface:
// validation errors keep their own status codes, media transport failures
// become a static 502, absent blobs a 404, everything else a static 500.
func (h *Handler) writeMediaError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		response.Error(w, vErr.HTTPStatus(), response.Detail{
			Msg:   vErr.Msg,
			Loc:   []string{"body", "file"},
			Type:  response.TypeImageValidation,
			Input: vErr.Input,
		})
		return
	}
	if errors.Is(err, mediaclient.ErrUnavailable) {
		response.BadGateway(w, "media service is not available")
		return
	}
	if errors.Is(err, mediaclient.ErrNotFound) {
		response.NotFound(w, response.Detail{
			Msg:  "stored image not found",
			Type: response.TypeExternalError,
		})
		return
	}
	response.InternalError(w, "error while processing meme")
}
