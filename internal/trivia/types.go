package trivia

// DefaultPageSize is the number of questions per listing page.
const DefaultPageSize = 10

// Difficulty bounds for a question (inclusive).
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question is a single trivia record as served to clients.
type Question struct {
	ID         int64  `json:"id"`
	Text       string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category labels a group of questions.
type Category struct {
	ID    int64  `json:"id"`
	Label string `json:"type"`
}

// NewQuestion carries the fields required to create a question.
type NewQuestion struct {
	Text       string
	Answer     string
	Category   int64
	Difficulty int
}

// QuestionPage is the result of a paginated listing.
type QuestionPage struct {
	Questions      []Question
	TotalQuestions int
	Categories     []string
}

// CreateResult confirms a successful creation with a fresh page view.
type CreateResult struct {
	CreatedID   int64
	CreatedText string
	Questions   []Question
}

// SearchResult holds questions matching a search term. CurrentCategory is
// always empty: matches span categories.
type SearchResult struct {
	Questions      []Question
	TotalQuestions int
}

// CategoryResult holds the questions of one category.
type CategoryResult struct {
	Questions       []Question
	TotalQuestions  int
	CurrentCategory string
}

// DeleteResult confirms a deletion with the first page of what remains.
type DeleteResult struct {
	DeletedID int64
	Questions []Question
}
