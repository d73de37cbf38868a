package corpus

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Chunk is one page-sized unit of the searchable document corpus.
// Ordinals are 1-based and stable for the lifetime of the cache.
type Chunk struct {
	Ordinal int
	Text    string
}

// Scored pairs a chunk with its keyword-match score for one query.
type Scored struct {
	Chunk Chunk
	Score int
}

// ObjectFetcher retrieves the raw source document bytes.
type ObjectFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// S3Fetcher downloads the corpus document from an S3 object.
type S3Fetcher struct {
	Client *s3.Client
	Bucket string
	Key    string
}

func (f *S3Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	out, err := f.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.Bucket),
		Key:    aws.String(f.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetching s3://%s/%s: %w", f.Bucket, f.Key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading s3://%s/%s: %w", f.Bucket, f.Key, err)
	}
	return data, nil
}

// FileFetcher reads the corpus document from the local filesystem.
type FileFetcher struct {
	Path string
}

func (f *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	return os.ReadFile(f.Path)
}

// Library caches the extracted corpus for the lifetime of the process.
// The first successful Load populates the cache; later calls only read.
// A failed load leaves the cache empty so the next call retries.
type Library struct {
	fetcher ObjectFetcher
	logger  *log.Logger

	mu     sync.Mutex
	chunks []Chunk
	loaded bool
}

func NewLibrary(fetcher ObjectFetcher) *Library {
	return &Library{
		fetcher: fetcher,
		logger:  log.New(log.Writer(), "[CORPUS] ", log.LstdFlags),
	}
}

// NewStaticLibrary returns a library whose cache is already populated.
// The local bot runtime uses it for file-backed corpora prepared ahead
// of time; tests use it to skip document parsing.
func NewStaticLibrary(chunks []Chunk) *Library {
	return &Library{
		logger: log.New(log.Writer(), "[CORPUS] ", log.LstdFlags),
		chunks: chunks,
		loaded: true,
	}
}

// Load returns the cached corpus, fetching and parsing the source
// document on first use.
func (l *Library) Load(ctx context.Context) ([]Chunk, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return l.chunks, nil
	}

	data, err := l.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading corpus document: %w", err)
	}
	l.logger.Printf("document downloaded: %d bytes", len(data))

	chunks, err := ExtractPages(data, l.logger)
	if err != nil {
		return nil, fmt.Errorf("parsing corpus document: %w", err)
	}
	l.logger.Printf("corpus loaded: %d chunks with content", len(chunks))

	l.chunks = chunks
	l.loaded = true
	return l.chunks, nil
}

// Score sums the non-overlapping substring occurrences of each keyword
// in the lowercased chunk text. Matching is deliberately not
// word-boundary aware: a keyword inside a longer word still counts.
func Score(chunk Chunk, keywords []string) int {
	text := strings.ToLower(chunk.Text)
	score := 0
	for _, kw := range keywords {
		score += strings.Count(text, kw)
	}
	return score
}

// Best returns the highest-scoring chunk for the keywords. Ties go to
// the chunk with the lower ordinal. The second result is false when no
// chunk scores above zero.
func Best(chunks []Chunk, keywords []string) (Scored, bool) {
	var best Scored
	for _, c := range chunks {
		if s := Score(c, keywords); s > best.Score {
			best = Scored{Chunk: c, Score: s}
		}
	}
	return best, best.Score > 0
}
