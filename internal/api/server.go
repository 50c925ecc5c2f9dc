package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/bytepair/internal/bpe"
	"github.com/samcharles93/bytepair/internal/logger"
)

// Model is the read-only view of a trained tokenizer the server needs.
// Every method must be safe for concurrent use.
type Model interface {
	bpe.Tokenizer
	Trained() bool
	VocabSize() int
	NumMerges() int
	Merges() []bpe.Merge
	TokenBytes(id int) ([]byte, error)
}

type Server struct {
	model Model
	log   logger.Logger
	clock func() time.Time
}

func NewServer(model Model, log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		model: model,
		log:   log.With("component", "api"),
		clock: time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/model", s.handleModel)
	e.GET("/v1/merges", s.handleMerges)
	e.GET("/v1/tokens/:id", s.handleToken)
	e.POST("/v1/encode", s.handleEncode)
	e.POST("/v1/decode", s.handleDecode)
}

func (s *Server) handleModel(c *echo.Context) error {
	if s.model == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "model not configured", "", "")
	}
	return c.JSON(http.StatusOK, ModelInfo{
		Object:    "model",
		VocabSize: s.model.VocabSize(),
		NumMerges: s.model.NumMerges(),
		Trained:   s.model.Trained(),
	})
}

func (s *Server) handleMerges(c *echo.Context) error {
	if s.model == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "model not configured", "", "")
	}
	if !s.model.Trained() {
		return writeModelError(c, bpe.ErrNotTrained, "")
	}
	merges := s.model.Merges()
	data := make([]MergeEntry, 0, len(merges))
	for _, m := range merges {
		raw, err := s.model.TokenBytes(m.ID)
		if err != nil {
			return writeModelError(c, err, "")
		}
		data = append(data, MergeEntry{
			ID:    m.ID,
			Left:  m.Pair.Left,
			Right: m.Pair.Right,
			Text:  bpe.Printable(raw),
		})
	}
	return c.JSON(http.StatusOK, MergeList{Object: "list", Data: data})
}

func (s *Server) handleToken(c *echo.Context) error {
	if s.model == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "model not configured", "", "")
	}
	id, err := parseTokenID(c.Param("id"))
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	raw, err := s.model.TokenBytes(id)
	if err != nil {
		var unknown *bpe.UnknownTokenError
		if errors.As(err, &unknown) {
			return writeNotFound(c, fmt.Sprintf("token %d not found", id))
		}
		return writeModelError(c, err, "id")
	}
	return c.JSON(http.StatusOK, TokenInfo{
		Object: "token",
		ID:     id,
		Bytes:  bytesToInts(raw),
		Text:   bpe.Printable(raw),
	})
}

func (s *Server) handleEncode(c *echo.Context) error {
	if s.model == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "model not configured", "", "")
	}
	req, err := decodeJSON[EncodeRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if req.Text == nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", "text is required", "text", "")
	}

	ids, err := s.model.Encode(*req.Text)
	if err != nil {
		return writeModelError(c, err, "text")
	}
	s.log.Debug("encoded", "bytes", len(*req.Text), "tokens", len(ids))
	return c.JSON(http.StatusOK, EncodeResponse{
		ID:      newEncodingID(),
		Object:  "encoding",
		Created: s.clock().Unix(),
		Tokens:  ids,
		Count:   len(ids),
	})
}

func (s *Server) handleDecode(c *echo.Context) error {
	if s.model == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "model not configured", "", "")
	}
	req, err := decodeJSON[DecodeRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if req.Tokens == nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", "tokens is required", "tokens", "")
	}

	text, err := s.model.Decode(req.Tokens)
	if err != nil {
		return writeModelError(c, err, "tokens")
	}
	s.log.Debug("decoded", "tokens", len(req.Tokens), "bytes", len(text))
	return c.JSON(http.StatusOK, DecodeResponse{
		ID:      newDecodingID(),
		Object:  "decoding",
		Created: s.clock().Unix(),
		Text:    text,
		Bytes:   bytesToInts([]byte(text)),
	})
}
