package http

import (
	"io"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor/internal/router"
)

// Bridge adapts gin requests to the transport-agnostic router contract.
type Bridge struct {
	router       *router.Router
	maxBodyBytes int64
	log          *zerolog.Logger
}

// NewBridge creates a bridge with the given request body size cap.
func NewBridge(rt *router.Router, maxBodyBytes int64, logger *zerolog.Logger) *Bridge {
	return &Bridge{
		router:       rt,
		maxBodyBytes: maxBodyBytes,
		log:          logger,
	}
}

// Handle reads the request, dispatches it, and renders the envelope.
func (b *Bridge) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, b.maxBodyBytes+1))
	if err != nil {
		b.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("failed to read request body")
		c.JSON(stdhttp.StatusInternalServerError, router.Envelope{
			Status:       router.StatusFail,
			ErrorMessage: "unknown error, please contact me",
		})
		return
	}
	if int64(len(body)) > b.maxBodyBytes {
		b.log.Debug().Str("path", c.Request.URL.Path).Msg("request body over size cap")
		c.JSON(stdhttp.StatusBadRequest, router.Envelope{
			Status:       router.StatusFail,
			ErrorMessage: "invalid request body: too large",
		})
		return
	}

	result := b.router.Dispatch(router.Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Header: c.GetHeader,
		Body:   body,
	})

	c.JSON(statusCode(result.Outcome), result.Envelope)
}

// statusCode maps a dispatch outcome to its HTTP status. Unknown paths and
// missing rooms both surface as 404; the envelope carries the distinction.
func statusCode(outcome router.Outcome) int {
	switch outcome {
	case router.OutcomeOK:
		return stdhttp.StatusOK
	case router.OutcomeUnauthorized:
		return stdhttp.StatusUnauthorized
	case router.OutcomeNotFound, router.OutcomeUnknownPath:
		return stdhttp.StatusNotFound
	case router.OutcomeInvalidInput:
		return stdhttp.StatusBadRequest
	default:
		return stdhttp.StatusInternalServerError
	}
}
