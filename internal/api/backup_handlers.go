package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/dueldisk/dueldisk-server/internal/http/response"
	"github.com/dueldisk/dueldisk-server/internal/store"
)

// handleExport returns a full snapshot of the collection and decks for
// manual backup.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, err := s.store.Export(ctx)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, snap, s.logger)
}

// handleImport upserts every record from an exported snapshot. Records not
// mentioned in the snapshot are left untouched.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var snap store.Snapshot
	if err := json.UnmarshalRead(r.Body, &snap); err != nil {
		response.BadRequest(w, "Invalid snapshot body", s.logger)
		return
	}

	if err := s.store.Import(ctx, &snap); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.refreshSnapshot(r)
	response.Success(w, map[string]int{
		"cards": len(snap.Cards),
		"decks": len(snap.Decks),
	}, s.logger)
}
