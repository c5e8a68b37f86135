package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/triviahub/trivia-api/internal/trivia"
	httperrors "github.com/triviahub/trivia-api/pkg/http/errors"
)

// HTTPHandlers exposes the trivia engine over REST.
type HTTPHandlers struct {
	engine *trivia.Engine
	logger zerolog.Logger
}

func NewHTTPHandlers(engine *trivia.Engine, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{engine: engine, logger: logger}
}

type createOrSearchRequest struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Category   *int64  `json:"category"`
	Difficulty *int    `json:"difficulty"`
	SearchTerm *string `json:"searchTerm"`
}

type quizRequest struct {
	PreviousQuestions *[]int64      `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
}

type quizCategory struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// ListCategories handles GET /categories.
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.engine.Categories(r.Context())
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	byID := make(map[string]string, len(cats))
	for _, c := range cats {
		byID[strconv.FormatInt(c.ID, 10)] = c.Label
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": byID,
	})
}

// ListQuestions handles GET /questions?page=N.
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)

	result, err := h.engine.ListQuestionsPage(r.Context(), page, 0)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.TotalQuestions,
		"categories":       result.Categories,
		"current_category": nil,
	})
}

// CreateOrSearchQuestion handles POST /questions. The legacy wire format
// multiplexes create and search on one route; the payload shape picks the
// operation here, never inside the engine.
func (h *HTTPHandlers) CreateOrSearchQuestion(w http.ResponseWriter, r *http.Request) {
	var req createOrSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	switch {
	case req.Question != nil:
		h.createQuestion(w, r, req)
	case req.SearchTerm != nil:
		h.searchQuestions(w, r, *req.SearchTerm)
	default:
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Request must include a question or a searchTerm")
	}
}

func (h *HTTPHandlers) createQuestion(w http.ResponseWriter, r *http.Request, req createOrSearchRequest) {
	in := trivia.NewQuestion{}
	if req.Question != nil {
		in.Text = *req.Question
	}
	if req.Answer != nil {
		in.Answer = *req.Answer
	}
	if req.Category != nil {
		in.Category = *req.Category
	}
	if req.Difficulty != nil {
		in.Difficulty = *req.Difficulty
	}

	result, err := h.engine.CreateQuestion(r.Context(), in, pageParam(r))
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"questions":        result.Questions,
		"created":          result.CreatedID,
		"question_created": result.CreatedText,
	})
}

func (h *HTTPHandlers) searchQuestions(w http.ResponseWriter, r *http.Request, term string) {
	result, err := h.engine.SearchQuestions(r.Context(), term)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.TotalQuestions,
		"current_category": nil,
	})
}

// DeleteQuestion handles DELETE /questions/{id}.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Question id must be an integer")
		return
	}

	result, err := h.engine.DeleteQuestion(r.Context(), id)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"questions": result.Questions,
		"deleted":   result.DeletedID,
	})
}

// ListByCategory handles GET /categories/{id}/questions.
func (h *HTTPHandlers) ListByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Category id must be an integer")
		return
	}

	result, err := h.engine.QuestionsByCategory(r.Context(), id)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.TotalQuestions,
		"current_category": result.CurrentCategory,
	})
}

// NextQuizQuestion handles POST /quizzes. A null question in the response is
// the quiz-complete state, not an error.
func (h *HTTPHandlers) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.PreviousQuestions == nil || req.QuizCategory == nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "previous_questions and quiz_category are required")
		return
	}

	question, err := h.engine.NextQuestion(r.Context(), req.QuizCategory.ID, *req.PreviousQuestions)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"question": question,
	})
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("encode response")
	}
}

func (h *HTTPHandlers) respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch trivia.KindOf(err) {
	case trivia.KindInvalidRequest:
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Your request is not well formatted")
	case trivia.KindValidation:
		httperrors.RespondBadRequest(w, httperrors.ErrCodeValidationFailed, err.(*trivia.Error).Message)
	case trivia.KindNotFound:
		httperrors.RespondNotFound(w, "We couldn't find what you are looking for")
	case trivia.KindUnprocessable:
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("engine failure")
		httperrors.RespondUnprocessable(w, "Sorry, we couldn't process your request")
	default:
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected failure")
		httperrors.RespondInternalError(w, "Internal server error")
	}
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
