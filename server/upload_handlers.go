package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
	"github.com/jrsteele09/go-club-server/uploads"
	"github.com/rs/zerolog/log"
)

const (
	uploadFormField   = "file"
	multipartOverhead = 64 << 10
)

// UploadHandler stores one multipart file for the club in the path and
// returns its key.
func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxBytes := s.config.GetUploadMaxBytes()
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

		file, header, err := r.FormFile(uploadFormField)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err))
			return
		}
		defer file.Close()

		if header.Size > maxBytes {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
			return
		}

		head := make([]byte, 512)
		n, err := io.ReadFull(file, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			writeError(w, r, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err))
			return
		}
		head = head[:n]
		contentType := http.DetectContentType(head)
		clubID := r.PathValue(ParamClubID)
		key, err := uploads.NewKey(clubID, contentType)
		if err != nil {
			writeError(w, r, err)
			return
		}
		body := io.MultiReader(bytes.NewReader(head), file)
		if err := s.uploads.Put(r.Context(), key, contentType, body); err != nil {
			writeError(w, r, err)
			return
		}

		log.Info().Str("club_id", clubID).Str("key", key).Int64("size", header.Size).Msg("file uploaded")
		writeJSON(w, http.StatusCreated, map[string]string{
			"key": key,
			"url": RouteUploadsPrefix + key,
		})
	}
}

// ServeUploadHandler streams a stored file. Files are public like the rest of
// the site content.
func (s *Server) ServeUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue(ParamKey)
		if uploads.ValidateKey(key) != nil {
			writeError(w, r, fmt.Errorf("%w: malformed upload key", apperrors.ErrNotFound))
			return
		}

		rc, err := s.uploads.Open(r.Context(), key)
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", uploads.ContentTypeOf(key))
		w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		if _, err := io.Copy(w, rc); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("upload stream interrupted")
		}
	}
}
