package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/classification"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	httpmw "github.com/johnquangdev/meeting-summarizer/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/gate"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
)

// Classification handles meeting type classification endpoints
type Classification struct {
	svc    meeting.Service
	logger *zap.Logger
}

// NewClassificationHandler creates a new classification handler
func NewClassificationHandler(svc meeting.Service, logger *zap.Logger) *Classification {
	return &Classification{svc: svc, logger: logger}
}

// Classify handles POST /classifications
// @Summary      Classify a transcript
// @Description  Classifies a transcript into a meeting type. Confident results resolve immediately; the rest return a prompt and wait for a decision.
// @Tags         Classifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      classification.ClassifyRequest  true  "Transcript and optional metadata"
// @Success      201      {object}  classification.ClassificationResponse
// @Failure      400      {object}  map[string]interface{}  "Empty or oversized transcript"
// @Failure      401      {object}  map[string]interface{}  "User not authenticated"
// @Failure      500      {object}  map[string]interface{}  "Failed to store classification"
// @Router       /classifications [post]
func (h *Classification) Classify(c echo.Context) error {
	var req classification.ClassifyRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	out, err := h.svc.Classify(c.Request().Context(), meeting.ClassifyInput{
		Text:     req.Text,
		Metadata: req.Metadata,
		Room:     req.Room,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToClassificationResponse(out))
}

// ClassifyAssemblyAI handles POST /classifications/assemblyai/:transcript_id
// @Summary      Classify an AssemblyAI transcript
// @Description  Fetches a completed AssemblyAI transcript, labels speakers and classifies it. The audio duration is used when no duration is declared.
// @Tags         Classifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transcript_id  path      string                                    true   "AssemblyAI transcript ID"
// @Param        request        body      classification.ClassifyAssemblyAIRequest  false  "Optional metadata"
// @Success      201            {object}  classification.ClassificationResponse
// @Failure      409            {object}  map[string]interface{}  "Transcript not completed yet"
// @Failure      502            {object}  map[string]interface{}  "AssemblyAI request failed"
// @Failure      503            {object}  map[string]interface{}  "AssemblyAI not configured"
// @Router       /classifications/assemblyai/{transcript_id} [post]
func (h *Classification) ClassifyAssemblyAI(c echo.Context) error {
	transcriptID := c.Param("transcript_id")
	if transcriptID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("transcript_id is required"))
	}

	var req classification.ClassifyAssemblyAIRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload())
		}
		if err := c.Validate(&req); err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
		}
	}

	out, err := h.svc.ClassifyAssemblyAI(c.Request().Context(), transcriptID, meeting.ClassifyInput{
		Metadata: req.Metadata,
		Room:     req.Room,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToClassificationResponse(out))
}

// Get handles GET /classifications/:id
// @Summary      Get a classification
// @Tags         Classifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Classification ID (UUID)"
// @Success      200  {object}  classification.ClassificationResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid classification ID"
// @Failure      404  {object}  map[string]interface{}  "Classification not found"
// @Router       /classifications/{id} [get]
func (h *Classification) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToClassificationResponse(out))
}

// Decide handles POST /classifications/:id/decision
// @Summary      Confirm or correct the meeting type
// @Description  Resumes a classification awaiting input. accept=true confirms the tentative type; otherwise type names the correct one and is recorded in the override log.
// @Tags         Classifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Classification ID (UUID)"
// @Param        request  body      classification.DecisionRequest  true  "Decision"
// @Success      200      {object}  classification.ClassificationResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid meeting type"
// @Failure      404      {object}  map[string]interface{}  "Classification not found"
// @Failure      409      {object}  map[string]interface{}  "Already resolved"
// @Router       /classifications/{id}/decision [post]
func (h *Classification) Decide(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req classification.DecisionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidMeetingType(req.Type))
	}

	resp := gate.Response{Accept: req.Accept, By: httpmw.Identity(c)}
	if !req.Accept {
		if req.Type == "" {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("either accept or type is required"))
		}
		t, err := entities.ParseMeetingType(req.Type)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidMeetingType(req.Type))
		}
		resp.Type = t
	}

	out, err := h.svc.Respond(c.Request().Context(), id, resp)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToClassificationResponse(out))
}

// Extract handles POST /classifications/:id/extraction
// @Summary      Extract report content
// @Description  Fills the resolved meeting type's template from the transcript. A failed extraction keeps the resolved type and can be requested again.
// @Tags         Classifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Classification ID (UUID)"
// @Success      200  {object}  classification.ExtractionResponse
// @Failure      404  {object}  map[string]interface{}  "Classification not found"
// @Failure      409  {object}  map[string]interface{}  "Meeting type not confirmed yet"
// @Failure      502  {object}  map[string]interface{}  "Content extractor failed; details.retryable tells whether to try again"
// @Failure      503  {object}  map[string]interface{}  "No content extractor configured"
// @Router       /classifications/{id}/extraction [post]
func (h *Classification) Extract(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.svc.Extract(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToExtractionResponse(out))
}

// MeetingTypes handles GET /meeting-types
// @Summary      List meeting types
// @Description  Lists every selectable meeting type with its template and required fields
// @Tags         Meeting Types
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  classification.MeetingTypeResponse
// @Router       /meeting-types [get]
func (h *Classification) MeetingTypes(c echo.Context) error {
	return HandleSuccess(h.logger, c, presenter.ToMeetingTypeResponses(h.svc.MeetingTypes()))
}

// Adjustments handles GET /overrides/adjustments
// @Summary      Current learning snapshot
// @Description  Keyword weight multipliers derived from the override log
// @Tags         Overrides
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  classification.AdjustmentsResponse
// @Failure      500  {object}  map[string]interface{}  "Override log unavailable"
// @Router       /overrides/adjustments [get]
func (h *Classification) Adjustments(c echo.Context) error {
	adj, err := h.svc.Adjustments(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrCacheFailed("read override log", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToAdjustmentsResponse(adj))
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("invalid classification id")
	}
	return id, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
