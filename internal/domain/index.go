package domain

// KeyPrefix namespaces every Redis key written by this service.
const KeyPrefix = "contentd:"

// IndexedDocument is the unit stored in the vector index. It is a derived
// projection of a blog: key tracks the blog ID, text is the denormalized
// title plus cleaned body that was embedded.
type IndexedDocument struct {
	Key    string
	Text   string
	Vector []float32
}

// SimilarityResult is a single hit from a top-K vector search, ordered by
// descending cosine similarity. Never persisted.
type SimilarityResult struct {
	Key   string
	Text  string
	Score float64
}
