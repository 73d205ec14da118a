package handlers

import (
	"net/http"

	"studybuddy/services/request"
	"studybuddy/utils"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	RequestService request.RequestService
	Metrics        *utils.Collector
}

func NewRequestHandler(rs request.RequestService, metrics *utils.Collector) *RequestHandler {
	return &RequestHandler{RequestService: rs, Metrics: metrics}
}

// SendRequestHandler handles POST /api/requests.
func (h *RequestHandler) SendRequestHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var in request.SendRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	req, err := h.RequestService.SendRequest(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, req)
}

// IncomingHandler handles GET /api/requests/incoming.
func (h *RequestHandler) IncomingHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	reqs, err := h.RequestService.ListIncoming(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, reqs)
}

// RespondHandler handles POST /api/requests/:id/respond.
func (h *RequestHandler) RespondHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var in request.RespondInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.RequestService.Respond(c.Request.Context(), c.Param("id"), uid, in.Action)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RequestsResponded.WithLabelValues(in.Action).Inc()
	}
	respondOK(c, http.StatusOK, res)
}
