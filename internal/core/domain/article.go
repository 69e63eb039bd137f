package domain

import "time"

// Difficulty is the pedagogical difficulty level of an article
type Difficulty string

const (
	DifficultyFacil   Difficulty = "facil"
	DifficultyMedio   Difficulty = "medio"
	DifficultyDificil Difficulty = "dificil"
)

// Article represents an uploaded source text for bitacora exercises
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Difficulty  Difficulty `json:"difficulty"`
	Processed   bool       `json:"processed"`
	PageCount   int        `json:"page_count"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// ArticleChunk is a contiguous word-window slice of an article's text,
// stored together with its embedding for similarity search.
// Chunks are immutable once stored and cascade-deleted with their article.
type ArticleChunk struct {
	ID         string    `json:"id"`
	ArticleID  string    `json:"article_id"`
	ChunkIndex int       `json:"chunk_index"` // 0-based, contiguous per article
	Content    string    `json:"content"`
	WordCount  int       `json:"word_count"`
	PageNumber *int      `json:"page_number,omitempty"`
	Embedding  []float32 `json:"embedding,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RetrievedChunk is a similarity search result
type RetrievedChunk struct {
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// IngestResult summarises a completed ingestion run
type IngestResult struct {
	ArticleID  string        `json:"article_id"`
	ChunkCount int           `json:"chunk_count"`
	PageCount  int           `json:"page_count"`
	Duration   time.Duration `json:"duration"`
}
