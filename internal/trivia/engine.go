package trivia

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// QuestionStore is the persistence contract the engine consumes. The engine
// never owns the canonical question set; it works on snapshots returned by
// these calls. Implementations must serialize conflicting writes.
type QuestionStore interface {
	// ListAll returns every question in stable listing order.
	ListAll(ctx context.Context) ([]Question, error)
	// ByCategory returns the questions of one category in listing order.
	ByCategory(ctx context.Context, categoryID int64) ([]Question, error)
	// SearchText returns questions whose text contains term as a
	// case-insensitive substring, in listing order.
	SearchText(ctx context.Context, term string) ([]Question, error)
	// Get returns the question with the given id, or nil if absent.
	Get(ctx context.Context, id int64) (*Question, error)
	// Insert stores a new question and assigns its id. It must reject
	// records whose category does not resolve to an existing one.
	Insert(ctx context.Context, in NewQuestion) (Question, error)
	// Delete removes a question, reporting whether it existed.
	Delete(ctx context.Context, id int64) (bool, error)
}

// CategoryStore is the read-only category catalog contract.
type CategoryStore interface {
	ListAll(ctx context.Context) ([]Category, error)
}

// Engine implements the trivia query and selection operations over injected
// stores. It keeps no state between calls.
type Engine struct {
	questions  QuestionStore
	categories CategoryStore
	pageSize   int

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// EngineOptions tunes engine behavior. Zero values fall back to defaults.
type EngineOptions struct {
	// PageSize is the listing page size; defaults to DefaultPageSize.
	PageSize int
	// Rand drives quiz selection. Inject a seeded source for deterministic
	// tests; defaults to a time-seeded source.
	Rand *rand.Rand
}

func NewEngine(questions QuestionStore, categories CategoryStore, opts EngineOptions) *Engine {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		questions:  questions,
		categories: categories,
		pageSize:   pageSize,
		rng:        rng,
	}
}

// Categories returns the full catalog. An empty catalog is a degenerate
// state and reported as not found.
func (e *Engine) Categories(ctx context.Context) ([]Category, error) {
	cats, err := e.categories.ListAll(ctx)
	if err != nil {
		return nil, WrapErr(KindUnprocessable, err, "list categories")
	}
	if len(cats) == 0 {
		return nil, Errf(KindNotFound, "no categories")
	}
	return cats, nil
}

// CategoryLabels returns the catalog's labels in listing order.
func (e *Engine) CategoryLabels(ctx context.Context) ([]string, error) {
	cats, err := e.Categories(ctx)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(cats))
	for _, c := range cats {
		labels = append(labels, c.Label)
	}
	return labels, nil
}

// ListQuestionsPage returns one page of the full question listing together
// with the overall question count and the category labels. A page beyond the
// last one is not found; the result does not distinguish that from an empty
// store.
func (e *Engine) ListQuestionsPage(ctx context.Context, page, pageSize int) (QuestionPage, error) {
	if pageSize <= 0 {
		pageSize = e.pageSize
	}
	all, err := e.questions.ListAll(ctx)
	if err != nil {
		return QuestionPage{}, WrapErr(KindUnprocessable, err, "list questions")
	}
	paged := Paginate(all, page, pageSize)
	if len(paged) == 0 {
		return QuestionPage{}, Errf(KindNotFound, "no questions on page %d", page)
	}
	labels, err := e.CategoryLabels(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{
		Questions:      paged,
		TotalQuestions: len(all),
		Categories:     labels,
	}, nil
}

// CreateQuestion validates and inserts a question, then returns the requested
// page of the refreshed listing as confirmation. A page below 1 defaults to
// the first.
func (e *Engine) CreateQuestion(ctx context.Context, in NewQuestion, page int) (CreateResult, error) {
	if in.Text == "" || in.Answer == "" || in.Category == 0 || in.Difficulty == 0 {
		return CreateResult{}, Errf(KindInvalidRequest, "question, answer, category and difficulty are required")
	}
	created, err := e.questions.Insert(ctx, in)
	if err != nil {
		// Category resolution and any other store failure surface as one
		// coarse could-not-process result.
		return CreateResult{}, WrapErr(KindUnprocessable, err, "insert question")
	}
	if page < 1 {
		page = 1
	}
	all, err := e.questions.ListAll(ctx)
	if err != nil {
		return CreateResult{}, WrapErr(KindUnprocessable, err, "list questions")
	}
	return CreateResult{
		CreatedID:   created.ID,
		CreatedText: created.Text,
		Questions:   Paginate(all, page, e.pageSize),
	}, nil
}

// SearchQuestions returns every question matching term. Zero matches is not
// found.
func (e *Engine) SearchQuestions(ctx context.Context, term string) (SearchResult, error) {
	matched, err := e.questions.SearchText(ctx, term)
	if err != nil {
		return SearchResult{}, WrapErr(KindUnprocessable, err, "search questions")
	}
	if len(matched) == 0 {
		return SearchResult{}, Errf(KindNotFound, "no questions match %q", term)
	}
	return SearchResult{
		Questions:      matched,
		TotalQuestions: len(matched),
	}, nil
}

// DeleteQuestion removes the question with the given id and returns the
// first page of what remains.
func (e *Engine) DeleteQuestion(ctx context.Context, id int64) (DeleteResult, error) {
	existing, err := e.questions.Get(ctx, id)
	if err != nil {
		return DeleteResult{}, WrapErr(KindUnprocessable, err, "get question")
	}
	if existing == nil {
		return DeleteResult{}, Errf(KindNotFound, "question %d not found", id)
	}
	removed, err := e.questions.Delete(ctx, id)
	if err != nil {
		return DeleteResult{}, WrapErr(KindUnprocessable, err, "delete question")
	}
	if !removed {
		return DeleteResult{}, Errf(KindNotFound, "question %d not found", id)
	}
	remaining, err := e.questions.ListAll(ctx)
	if err != nil {
		return DeleteResult{}, WrapErr(KindUnprocessable, err, "list questions")
	}
	return DeleteResult{
		DeletedID: id,
		Questions: Paginate(remaining, 1, e.pageSize),
	}, nil
}

// QuestionsByCategory returns all questions of one category. An unknown
// category and an empty one both yield zero questions and are both not
// found.
func (e *Engine) QuestionsByCategory(ctx context.Context, categoryID int64) (CategoryResult, error) {
	qs, err := e.questions.ByCategory(ctx, categoryID)
	if err != nil {
		return CategoryResult{}, WrapErr(KindUnprocessable, err, "list questions by category")
	}
	if len(qs) == 0 {
		return CategoryResult{}, Errf(KindNotFound, "no questions in category %d", categoryID)
	}
	return CategoryResult{
		Questions:       qs,
		TotalQuestions:  len(qs),
		CurrentCategory: strconv.FormatInt(categoryID, 10),
	}, nil
}

// NextQuestion picks one question the caller has not seen, uniformly at
// random. A categoryID of 0 draws from every category. An empty pool is not
// found; a fully consumed pool returns nil with no error, the quiz-complete
// terminal state.
func (e *Engine) NextQuestion(ctx context.Context, categoryID int64, previousIDs []int64) (*Question, error) {
	var (
		pool []Question
		err  error
	)
	if categoryID == 0 {
		pool, err = e.questions.ListAll(ctx)
	} else {
		pool, err = e.questions.ByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, WrapErr(KindUnprocessable, err, "resolve quiz pool")
	}
	if len(pool) == 0 {
		return nil, Errf(KindNotFound, "no questions in category %d", categoryID)
	}

	seen := make(map[int64]struct{}, len(previousIDs))
	for _, id := range previousIDs {
		seen[id] = struct{}{}
	}

	for _, i := range e.perm(len(pool)) {
		if _, ok := seen[pool[i].ID]; !ok {
			q := pool[i]
			return &q, nil
		}
	}
	return nil, nil
}

func (e *Engine) perm(n int) []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Perm(n)
}
