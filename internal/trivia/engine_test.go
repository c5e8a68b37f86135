package trivia

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// memStore is an in-memory QuestionStore/CategoryStore pair with the same
// contract the Postgres repositories honor: stable id ordering, ids assigned
// by a monotonic sequence and never reused.
type memStore struct {
	questions  []Question
	categories []Category
	nextID     int64

	listErr   error
	insertErr error
	deleteErr error
}

func newMemStore(categories ...Category) *memStore {
	return &memStore{categories: categories, nextID: 1}
}

func (s *memStore) add(text, answer string, category int64, difficulty int) Question {
	q := Question{ID: s.nextID, Text: text, Answer: answer, Category: category, Difficulty: difficulty}
	s.nextID++
	s.questions = append(s.questions, q)
	return q
}

func (s *memStore) ListAll(context.Context) ([]Question, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]Question(nil), s.questions...), nil
}

func (s *memStore) ByCategory(_ context.Context, categoryID int64) ([]Question, error) {
	var out []Question
	for _, q := range s.questions {
		if q.Category == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memStore) SearchText(_ context.Context, term string) ([]Question, error) {
	return Search(s.questions, term), nil
}

func (s *memStore) Get(_ context.Context, id int64) (*Question, error) {
	for _, q := range s.questions {
		if q.ID == id {
			found := q
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memStore) Insert(_ context.Context, in NewQuestion) (Question, error) {
	if s.insertErr != nil {
		return Question{}, s.insertErr
	}
	known := false
	for _, c := range s.categories {
		if c.ID == in.Category {
			known = true
			break
		}
	}
	if !known {
		return Question{}, Errf(KindValidation, "category %d does not exist", in.Category)
	}
	return s.add(in.Text, in.Answer, in.Category, in.Difficulty), nil
}

func (s *memStore) Delete(_ context.Context, id int64) (bool, error) {
	if s.deleteErr != nil {
		return false, s.deleteErr
	}
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) catalog() CategoryStore { return catalogFromSlice(s.categories) }

type catalogFromSlice []Category

func (c catalogFromSlice) ListAll(context.Context) ([]Category, error) {
	return append([]Category(nil), c...), nil
}

func testCategories() []Category {
	return []Category{
		{ID: 1, Label: "Science"},
		{ID: 2, Label: "Art"},
		{ID: 3, Label: "Geography"},
	}
}

func newTestEngine(store *memStore) *Engine {
	return NewEngine(store, store.catalog(), EngineOptions{
		Rand: rand.New(rand.NewSource(42)),
	})
}

// seedStore fills the store with 12 questions across categories 1 and 2.
// Category 3 stays empty on purpose.
func seedStore(store *memStore) {
	for i := 1; i <= 12; i++ {
		category := int64(1)
		if i%2 == 0 {
			category = 2
		}
		store.add(fmt.Sprintf("Question %d?", i), fmt.Sprintf("Answer %d", i), category, 1+i%5)
	}
}

func TestCategories(t *testing.T) {
	store := newMemStore(testCategories()...)
	engine := newTestEngine(store)

	cats, err := engine.Categories(context.Background())
	assert.NoError(t, err)
	assert.Len(t, cats, 3)

	labels, err := engine.CategoryLabels(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"Science", "Art", "Geography"}, labels)
}

func TestCategoriesEmptyCatalogIsNotFound(t *testing.T) {
	store := newMemStore()
	engine := newTestEngine(store)

	_, err := engine.Categories(context.Background())
	assert.True(t, IsKind(err, KindNotFound))

	_, err = engine.CategoryLabels(context.Background())
	assert.True(t, IsKind(err, KindNotFound))
}

func TestListQuestionsPage(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	engine := newTestEngine(store)

	page, err := engine.ListQuestionsPage(context.Background(), 1, 0)
	assert.NoError(t, err)
	assert.Len(t, page.Questions, 10)
	assert.Equal(t, 12, page.TotalQuestions)
	assert.Equal(t, []string{"Science", "Art", "Geography"}, page.Categories)
	assert.Equal(t, int64(1), page.Questions[0].ID)

	page, err = engine.ListQuestionsPage(context.Background(), 2, 0)
	assert.NoError(t, err)
	assert.Len(t, page.Questions, 2)
	assert.Equal(t, 12, page.TotalQuestions)
	assert.Equal(t, int64(11), page.Questions[0].ID)
}

func TestListQuestionsPageBeyondEndIsNotFound(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	engine := newTestEngine(store)

	_, err := engine.ListQuestionsPage(context.Background(), 1000, 0)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestListQuestionsPageEmptyStoreIsNotFound(t *testing.T) {
	store := newMemStore(testCategories()...)
	engine := newTestEngine(store)

	_, err := engine.ListQuestionsPage(context.Background(), 1, 0)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestCreateQuestion(t *testing.T) {
	store := newMemStore(testCategories()...)
	engine := newTestEngine(store)

	result, err := engine.CreateQuestion(context.Background(), NewQuestion{
		Text:       "What is the chemical symbol for gold?",
		Answer:     "Au",
		Category:   1,
		Difficulty: 2,
	}, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.CreatedID)
	assert.Equal(t, "What is the chemical symbol for gold?", result.CreatedText)
	assert.Len(t, result.Questions, 1)
}

func TestCreateQuestionMissingFieldIsInvalidRequest(t *testing.T) {
	store := newMemStore(testCategories()...)
	engine := newTestEngine(store)

	_, err := engine.CreateQuestion(context.Background(), NewQuestion{
		Text:       "Orphan question?",
		Category:   1,
		Difficulty: 2,
	}, 0)
	assert.True(t, IsKind(err, KindInvalidRequest))
	assert.Empty(t, store.questions)
}

func TestCreateQuestionUnknownCategoryIsUnprocessable(t *testing.T) {
	store := newMemStore(testCategories()...)
	engine := newTestEngine(store)

	_, err := engine.CreateQuestion(context.Background(), NewQuestion{
		Text:       "Question?",
		Answer:     "Answer",
		Category:   99,
		Difficulty: 2,
	}, 0)
	assert.True(t, IsKind(err, KindUnprocessable))
}

func TestCreateQuestionStoreFailureIsUnprocessable(t *testing.T) {
	store := newMemStore(testCategories()...)
	store.insertErr = errors.New("db down")
	engine := newTestEngine(store)

	_, err := engine.CreateQuestion(context.Background(), NewQuestion{
		Text:       "Question?",
		Answer:     "Answer",
		Category:   1,
		Difficulty: 2,
	}, 0)
	assert.True(t, IsKind(err, KindUnprocessable))
}

func TestCreateQuestionIDsAreNotReused(t *testing.T) {
	store := newMemStore(testCategories()...)
	engine := newTestEngine(store)

	first, err := engine.CreateQuestion(context.Background(), NewQuestion{
		Text: "First?", Answer: "Yes", Category: 1, Difficulty: 1,
	}, 0)
	assert.NoError(t, err)

	_, err = engine.DeleteQuestion(context.Background(), first.CreatedID)
	assert.NoError(t, err)

	second, err := engine.CreateQuestion(context.Background(), NewQuestion{
		Text: "Second?", Answer: "Yes", Category: 1, Difficulty: 1,
	}, 0)
	assert.NoError(t, err)
	assert.NotEqual(t, first.CreatedID, second.CreatedID)
}

func TestSearchQuestions(t *testing.T) {
	store := newMemStore(testCategories()...)
	store.add("What is the capital of France?", "Paris", 3, 1)
	store.add("Which planet is closest to the sun?", "Mercury", 1, 2)
	engine := newTestEngine(store)

	result, err := engine.SearchQuestions(context.Background(), "CAPITAL")
	assert.NoError(t, err)
	assert.Equal(t, 1, result.TotalQuestions)
	assert.Equal(t, "What is the capital of France?", result.Questions[0].Text)
}

func TestSearchQuestionsNoMatchIsNotFound(t *testing.T) {
	store := newMemStore(testCategories()...)
	store.add("What is the capital of France?", "Paris", 3, 1)
	engine := newTestEngine(store)

	_, err := engine.SearchQuestions(context.Background(), "dinosaur")
	assert.True(t, IsKind(err, KindNotFound))
}

func TestDeleteQuestion(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	engine := newTestEngine(store)

	result, err := engine.DeleteQuestion(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), result.DeletedID)
	assert.Len(t, result.Questions, 10)

	remaining, err := store.ListAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, remaining, 11)
	for _, q := range remaining {
		assert.NotEqual(t, int64(3), q.ID)
	}
}

func TestDeleteQuestionMissingIsNotFound(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	engine := newTestEngine(store)

	_, err := engine.DeleteQuestion(context.Background(), 1000)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestDeleteQuestionStoreFailureIsUnprocessable(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	store.deleteErr = errors.New("db down")
	engine := newTestEngine(store)

	_, err := engine.DeleteQuestion(context.Background(), 1)
	assert.True(t, IsKind(err, KindUnprocessable))
}

func TestQuestionsByCategory(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	engine := newTestEngine(store)

	result, err := engine.QuestionsByCategory(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, 6, result.TotalQuestions)
	assert.Equal(t, "2", result.CurrentCategory)
	for _, q := range result.Questions {
		assert.Equal(t, int64(2), q.Category)
	}
}

func TestQuestionsByCategoryEmptyIsNotFound(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	engine := newTestEngine(store)

	// Category 3 exists but has no questions; category 99 does not exist.
	// Both look the same to callers.
	_, err := engine.QuestionsByCategory(context.Background(), 3)
	assert.True(t, IsKind(err, KindNotFound))

	_, err = engine.QuestionsByCategory(context.Background(), 99)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestNextQuestionAllCategories(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	engine := newTestEngine(store)

	question, err := engine.NextQuestion(context.Background(), 0, nil)
	assert.NoError(t, err)
	assert.NotNil(t, question)
}

func TestNextQuestionNeverRepeatsAndExhausts(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	engine := newTestEngine(store)

	var previous []int64
	seen := map[int64]bool{}
	for i := 0; i < 12; i++ {
		question, err := engine.NextQuestion(context.Background(), 0, previous)
		assert.NoError(t, err)
		if assert.NotNil(t, question) {
			assert.False(t, seen[question.ID], "question %d repeated", question.ID)
			seen[question.ID] = true
			previous = append(previous, question.ID)
		}
	}

	question, err := engine.NextQuestion(context.Background(), 0, previous)
	assert.NoError(t, err)
	assert.Nil(t, question, "exhausted quiz should return no question")
}

func TestNextQuestionRestrictedToCategory(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	engine := newTestEngine(store)

	for i := 0; i < 20; i++ {
		question, err := engine.NextQuestion(context.Background(), 1, nil)
		assert.NoError(t, err)
		if assert.NotNil(t, question) {
			assert.Equal(t, int64(1), question.Category)
		}
	}
}

func TestNextQuestionCategoryExhaustedIsQuizComplete(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	engine := newTestEngine(store)

	var categoryOne []int64
	for _, q := range store.questions {
		if q.Category == 1 {
			categoryOne = append(categoryOne, q.ID)
		}
	}

	question, err := engine.NextQuestion(context.Background(), 1, categoryOne)
	assert.NoError(t, err)
	assert.Nil(t, question)
}

func TestNextQuestionEmptyPoolIsNotFound(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	engine := newTestEngine(store)

	_, err := engine.NextQuestion(context.Background(), 3, nil)
	assert.True(t, IsKind(err, KindNotFound))

	empty := newMemStore(testCategories()...)
	engine = newTestEngine(empty)
	_, err = engine.NextQuestion(context.Background(), 0, nil)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestListQuestionsStoreFailureIsUnprocessable(t *testing.T) {
	store := newMemStore(testCategories()...)
	seedStore(store)
	store.listErr = errors.New("db down")
	engine := newTestEngine(store)

	_, err := engine.ListQuestionsPage(context.Background(), 1, 0)
	assert.True(t, IsKind(err, KindUnprocessable))
}
