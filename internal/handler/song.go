package handler // handler contains song CRUD endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aoihana/koubanhyou-server/internal/model"
	"github.com/aoihana/koubanhyou-server/internal/repository"
)

// ListSongs handles GET /v1/songs and returns every song in matrix order.
func (h *Handler) ListSongs(c echo.Context) error {
	songs, err := h.SongRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, songs)
}

// ListActiveSongs handles GET /v1/songs/active and returns the songs
// included in the matrices.
func (h *Handler) ListActiveSongs(c echo.Context) error {
	songs, err := h.SongRepo.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, songs)
}

// songBody is the create/update payload. Links are pointers so an
// omitted link stays NULL rather than becoming an empty string.
type songBody struct {
	Ba         string  `json:"ba"`
	SongNumber string  `json:"song_number"`
	SongName   string  `json:"song_name"`
	ScoreLink  *string `json:"score_link"`
	AudioLink  *string `json:"audio_link"`
	IsActive   *bool   `json:"is_active"`
}

func (b *songBody) toSong() model.Song {
	s := model.Song{
		Ba:         b.Ba,
		SongNumber: b.SongNumber,
		SongName:   b.SongName,
		IsActive:   true,
	}
	if b.ScoreLink != nil && strings.TrimSpace(*b.ScoreLink) != "" {
		v := strings.TrimSpace(*b.ScoreLink)
		s.ScoreLink = &v
	}
	if b.AudioLink != nil && strings.TrimSpace(*b.AudioLink) != "" {
		v := strings.TrimSpace(*b.AudioLink)
		s.AudioLink = &v
	}
	if b.IsActive != nil {
		s.IsActive = *b.IsActive
	}
	return s
}

// CreateSong handles POST /v1/songs.
func (h *Handler) CreateSong(c echo.Context) error {
	var body songBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.SongName) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "song_name is required"})
	}

	s := body.toSong()
	if err := h.SongRepo.Create(c.Request().Context(), &s); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "song number already used in this ba"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create song"})
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateSong handles PUT /v1/songs/:id.
func (h *Handler) UpdateSong(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body songBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	s := body.toSong()
	s.ID = id
	if err := h.SongRepo.Update(c.Request().Context(), &s); err != nil {
		switch {
		case errors.Is(err, repository.ErrSongNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "song not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, map[string]string{"error": "song number already used in this ba"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteSong handles DELETE /v1/songs/:id. Matrix rows referencing the
// song are removed by the schema's cascades.
func (h *Handler) DeleteSong(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.SongRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "song not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "song deleted"})
}
