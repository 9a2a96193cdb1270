package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-club-server/content"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

// contentPath pulls the club and kind out of the request path
func contentPath(r *http.Request) (string, content.Kind, error) {
	kind, err := content.ParseKind(r.PathValue(ParamKind))
	if err != nil {
		return "", "", err
	}
	return r.PathValue(ParamClubID), kind, nil
}

// recordID reads the record id. A malformed id cannot name a record, so it is a 404.
func recordID(r *http.Request) (int64, error) {
	id, err := pathInt64(r, ParamID)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed record id %q", apperrors.ErrNotFound, r.PathValue(ParamID))
	}
	return id, nil
}

func (s *Server) ListContentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID, kind, err := contentPath(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		records, err := s.content.List(r.Context(), clubID, kind)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"records": records})
	}
}

func (s *Server) GetContentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID, kind, err := contentPath(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		id, err := recordID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		rec, err := s.content.Get(r.Context(), clubID, kind, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) CreateContentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID, kind, err := contentPath(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var draft content.Draft
		if err := decodeJSON(w, r, &draft); err != nil {
			writeError(w, r, err)
			return
		}
		if err := draft.Validate(clubID); err != nil {
			writeError(w, r, err)
			return
		}
		rec, err := s.content.Create(r.Context(), clubID, kind, draft)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

func (s *Server) UpdateContentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID, kind, err := contentPath(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		id, err := recordID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var draft content.Draft
		if err := decodeJSON(w, r, &draft); err != nil {
			writeError(w, r, err)
			return
		}
		if err := draft.Validate(clubID); err != nil {
			writeError(w, r, err)
			return
		}
		rec, err := s.content.Update(r.Context(), clubID, kind, id, draft)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) DeleteContentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID, kind, err := contentPath(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		id, err := recordID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.content.Delete(r.Context(), clubID, kind, id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
