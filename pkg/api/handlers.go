package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/ssorent/rowbin/pkg/archive"
	"github.com/ssorent/rowbin/pkg/envelope"
	"github.com/ssorent/rowbin/pkg/rowcodec"
	"github.com/ssorent/rowbin/pkg/textrec"
)

// Server holds the API server state
type Server struct {
	archive Archiver
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(archive Archiver, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		archive: archive,
		config:  config,
		metrics: metrics,
	}
}

func errUnknownFieldType(name, typ string) error {
	return fmt.Errorf("field %q: unknown type %q", name, typ)
}

// decodeJSON parses a JSON request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) recordCodecOp(op string, success bool, start time.Time, bytesIn, bytesOut int) {
	if s.metrics != nil {
		s.metrics.RecordCodecOperation(op, success, time.Since(start), bytesIn, bytesOut)
	}
}

func (s *Server) recordArchiveOp(op string, success bool) {
	if s.metrics != nil {
		s.metrics.RecordArchiveOperation(op, success)
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handlePack godoc
//
//	@Summary		Pack text records into binary rows
//	@Description	Encode line-formatted records against a field spec
//	@Tags			codec
//	@Accept			json
//	@Produce		json
//	@Param			body	body		PackRequest	true	"Spec and records"
//	@Success		200		{object}	PackResponse
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/pack [post]
func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req PackRequest
	if err := decodeJSON(r, &req); err != nil {
		s.recordCodecOp("pack", false, start, 0, 0)
		sendError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	spec, err := req.Spec.toSpec()
	if err != nil {
		s.recordCodecOp("pack", false, start, 0, 0)
		sendError(w, fmt.Sprintf("Invalid spec: %v", err), http.StatusBadRequest)
		return
	}

	parsed := make([]rowcodec.Record, 0, len(req.Records))
	for i, line := range req.Records {
		rec, err := textrec.ParseRecord(spec, line)
		if err != nil {
			s.recordCodecOp("pack", false, start, 0, 0)
			sendError(w, fmt.Sprintf("Invalid record %d: %v", i, err), http.StatusBadRequest)
			return
		}
		parsed = append(parsed, rec)
	}

	data, err := spec.Encode(parsed)
	if err != nil {
		s.recordCodecOp("pack", false, start, 0, 0)
		sendError(w, fmt.Sprintf("Failed to pack records: %v", err), http.StatusBadRequest)
		return
	}

	s.recordCodecOp("pack", true, start, 0, len(data))
	sendSuccess(w, PackResponse{
		Data:        data,
		RowSize:     spec.RowSize(),
		RecordCount: len(parsed),
	})
}

// handleUnpack godoc
//
//	@Summary		Unpack binary rows into text records
//	@Description	Decode packed rows against a field spec
//	@Tags			codec
//	@Accept			json
//	@Produce		json
//	@Param			body	body		UnpackRequest	true	"Spec and packed data"
//	@Success		200		{object}	UnpackResponse
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/unpack [post]
func (s *Server) handleUnpack(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req UnpackRequest
	if err := decodeJSON(r, &req); err != nil {
		s.recordCodecOp("unpack", false, start, 0, 0)
		sendError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	spec, err := req.Spec.toSpec()
	if err != nil {
		s.recordCodecOp("unpack", false, start, 0, 0)
		sendError(w, fmt.Sprintf("Invalid spec: %v", err), http.StatusBadRequest)
		return
	}

	records, err := spec.Decode(req.Data)
	if err != nil {
		s.recordCodecOp("unpack", false, start, len(req.Data), 0)
		sendError(w, fmt.Sprintf("Failed to unpack data: %v", err), http.StatusBadRequest)
		return
	}

	lines := make([]string, 0, len(records))
	for i, rec := range records {
		line, err := textrec.FormatRecord(spec, rec)
		if err != nil {
			s.recordCodecOp("unpack", false, start, len(req.Data), 0)
			sendError(w, fmt.Sprintf("Failed to render record %d: %v", i, err), http.StatusInternalServerError)
			return
		}
		lines = append(lines, line)
	}

	s.recordCodecOp("unpack", true, start, len(req.Data), 0)
	sendSuccess(w, UnpackResponse{Records: lines})
}

// handleWrap godoc
//
//	@Summary		Wrap a payload in a compression envelope
//	@Description	Compress with the best candidate algorithm and frame with integrity metadata
//	@Tags			envelope
//	@Accept			json
//	@Produce		json
//	@Param			body	body		WrapRequest	true	"Payload and options"
//	@Success		200		{object}	WrapResponse
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/wrap [post]
func (s *Server) handleWrap(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req WrapRequest
	if err := decodeJSON(r, &req); err != nil {
		s.recordCodecOp("wrap", false, start, 0, 0)
		sendError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	algs, err := envelope.ParseAlgorithms(req.Algorithms)
	if err != nil {
		s.recordCodecOp("wrap", false, start, 0, 0)
		sendError(w, fmt.Sprintf("Invalid algorithms: %v", err), http.StatusBadRequest)
		return
	}

	wrapped, err := envelope.Wrap(req.Data, envelope.Options{Algorithms: algs, MinGain: req.MinGain})
	if err != nil {
		s.recordCodecOp("wrap", false, start, len(req.Data), 0)
		sendError(w, fmt.Sprintf("Failed to wrap payload: %v", err), http.StatusBadRequest)
		return
	}

	info, err := envelope.Inspect(wrapped)
	if err != nil {
		s.recordCodecOp("wrap", false, start, len(req.Data), 0)
		sendError(w, fmt.Sprintf("Failed to inspect envelope: %v", err), http.StatusInternalServerError)
		return
	}

	md := envelope.Metadata{
		Algorithm:      info.Algorithm,
		OriginalSize:   int(info.OriginalSize),
		CompressedSize: int(info.PayloadSize),
	}
	if info.OriginalSize > 0 {
		md.Ratio = 1 - float64(info.PayloadSize)/float64(info.OriginalSize)
	}

	s.recordCodecOp("wrap", true, start, len(req.Data), len(wrapped))
	sendSuccess(w, WrapResponse{Data: wrapped, Metadata: md})
}

// handleUnwrap godoc
//
//	@Summary		Unwrap a compression envelope
//	@Description	Decompress and verify size and checksum
//	@Tags			envelope
//	@Accept			json
//	@Produce		json
//	@Param			body	body		UnwrapRequest	true	"Envelope bytes"
//	@Success		200		{object}	UnwrapResponse
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/unwrap [post]
func (s *Server) handleUnwrap(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req UnwrapRequest
	if err := decodeJSON(r, &req); err != nil {
		s.recordCodecOp("unwrap", false, start, 0, 0)
		sendError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	data, md, err := envelope.Unwrap(req.Data)
	if err != nil {
		s.recordCodecOp("unwrap", false, start, len(req.Data), 0)
		sendError(w, fmt.Sprintf("Failed to unwrap envelope: %v", err), http.StatusBadRequest)
		return
	}

	s.recordCodecOp("unwrap", true, start, len(req.Data), len(data))
	sendSuccess(w, UnwrapResponse{Data: data, Metadata: md})
}

// handleInspect godoc
//
//	@Summary		Inspect an envelope header
//	@Description	Report header claims without decompressing or verifying the payload
//	@Tags			envelope
//	@Accept			json
//	@Produce		json
//	@Param			body	body		InspectRequest	true	"Envelope bytes"
//	@Success		200		{object}	envelope.Info
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/inspect [post]
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req InspectRequest
	if err := decodeJSON(r, &req); err != nil {
		s.recordCodecOp("inspect", false, start, 0, 0)
		sendError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	info, err := envelope.Inspect(req.Data)
	if err != nil {
		s.recordCodecOp("inspect", false, start, len(req.Data), 0)
		sendError(w, fmt.Sprintf("Failed to inspect envelope: %v", err), http.StatusBadRequest)
		return
	}

	s.recordCodecOp("inspect", true, start, len(req.Data), 0)
	sendSuccess(w, info)
}

// handleAlgorithms godoc
//
//	@Summary		List available compression algorithms
//	@Tags			envelope
//	@Produce		json
//	@Success		200	{object}	AlgorithmsResponse
//	@Security		ApiKeyAuth
//	@Router			/algorithms [get]
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	algs := envelope.Available()
	names := make([]string, 0, len(algs))
	for _, a := range algs {
		names = append(names, a.String())
	}
	sendSuccess(w, AlgorithmsResponse{Algorithms: names})
}

// handleArchiveCreate godoc
//
//	@Summary		Store an envelope in the archive
//	@Tags			archive
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ArchiveCreateRequest	true	"Envelope bytes"
//	@Success		200		{object}	ArchiveCreateResponse
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/archive [post]
func (s *Server) handleArchiveCreate(w http.ResponseWriter, r *http.Request) {
	var req ArchiveCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.recordArchiveOp("create", false)
		sendError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	id, err := s.archive.Create(req.Data)
	if err != nil {
		s.recordArchiveOp("create", false)
		sendError(w, fmt.Sprintf("Failed to archive envelope: %v", err), http.StatusBadRequest)
		return
	}

	s.recordArchiveOp("create", true)
	sendSuccess(w, ArchiveCreateResponse{ID: id.String()})
}

// handleArchiveRead godoc
//
//	@Summary		Fetch an archived envelope
//	@Tags			archive
//	@Produce		json
//	@Param			id	path		string	true	"Entry id"
//	@Success		200	{object}	ArchiveReadResponse
//	@Failure		404	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/archive/{id} [get]
func (s *Server) handleArchiveRead(w http.ResponseWriter, r *http.Request) {
	id, ok := s.archiveID(w, r, "read")
	if !ok {
		return
	}

	data, err := s.archive.Read(id)
	if err != nil {
		s.recordArchiveOp("read", false)
		if errors.Is(err, pebble.ErrNotFound) {
			sendError(w, "Entry not found", http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("Failed to read entry: %v", err), http.StatusInternalServerError)
		return
	}

	info, err := envelope.Inspect(data)
	if err != nil {
		s.recordArchiveOp("read", false)
		sendError(w, fmt.Sprintf("Stored entry is not a valid envelope: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordArchiveOp("read", true)
	sendSuccess(w, ArchiveReadResponse{Data: data, Info: info})
}

// handleArchiveUpdate godoc
//
//	@Summary		Replace an archived envelope
//	@Tags			archive
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Entry id"
//	@Param			body	body		ArchiveCreateRequest	true	"Envelope bytes"
//	@Success		200		{object}	map[string]string
//	@Failure		404		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/archive/{id} [put]
func (s *Server) handleArchiveUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.archiveID(w, r, "update")
	if !ok {
		return
	}

	var req ArchiveCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.recordArchiveOp("update", false)
		sendError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	// PUT replaces an existing entry; it never creates one.
	if _, err := s.archive.Read(id); err != nil {
		s.recordArchiveOp("update", false)
		if errors.Is(err, pebble.ErrNotFound) {
			sendError(w, "Entry not found", http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("Failed to read entry: %v", err), http.StatusInternalServerError)
		return
	}

	if err := s.archive.Update(id, req.Data); err != nil {
		s.recordArchiveOp("update", false)
		sendError(w, fmt.Sprintf("Failed to update entry: %v", err), http.StatusBadRequest)
		return
	}

	s.recordArchiveOp("update", true)
	sendSuccess(w, map[string]string{"message": "Entry updated"})
}

// handleArchiveDelete godoc
//
//	@Summary		Delete an archived envelope
//	@Tags			archive
//	@Produce		json
//	@Param			id	path		string	true	"Entry id"
//	@Success		200	{object}	map[string]string
//	@Failure		400	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/archive/{id} [delete]
func (s *Server) handleArchiveDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.archiveID(w, r, "delete")
	if !ok {
		return
	}

	if err := s.archive.Delete(id); err != nil {
		s.recordArchiveOp("delete", false)
		sendError(w, fmt.Sprintf("Failed to delete entry: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordArchiveOp("delete", true)
	sendSuccess(w, map[string]string{"message": "Entry deleted"})
}

// handleArchiveList godoc
//
//	@Summary		List archived envelopes
//	@Tags			archive
//	@Produce		json
//	@Success		200	{array}		archive.Entry
//	@Failure		500	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/archive [get]
func (s *Server) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.archive.List()
	if err != nil {
		s.recordArchiveOp("list", false)
		sendError(w, fmt.Sprintf("Failed to list archive: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordArchiveOp("list", true)
	sendSuccess(w, entries)
}

func (s *Server) archiveID(w http.ResponseWriter, r *http.Request, op string) (*ksuid.KSUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := archive.ParseID(raw)
	if err != nil {
		s.recordArchiveOp(op, false)
		sendError(w, fmt.Sprintf("Invalid id: %v", err), http.StatusBadRequest)
		return nil, false
	}
	return id, true
}
