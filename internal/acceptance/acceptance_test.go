package acceptance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"

	"github.com/askpdf/askpdf-core/internal/adapters/driven/ai"
	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven/mocks"
	"github.com/askpdf/askpdf-core/internal/core/ports/driving"
	"github.com/askpdf/askpdf-core/internal/core/services"
	"github.com/askpdf/askpdf-core/internal/extractors"
	"github.com/askpdf/askpdf-core/internal/textproc"
)

// pipelineWorld holds the collaborators and outcome of one scenario
type pipelineWorld struct {
	embedder driven.EmbeddingService
	mockEmb  *mocks.MockEmbeddingService
	index    *mocks.MockVectorIndex
	registry driven.ExtractorRegistry

	embedServer *httptest.Server

	filename string
	text     string

	result    *domain.IngestResult
	ingestErr error
	answer    *domain.ChatAnswer
	uploadErr error
}

func newPipelineWorld() *pipelineWorld {
	w := &pipelineWorld{
		mockEmb:  mocks.NewMockEmbeddingService(),
		index:    mocks.NewMockVectorIndex(),
		registry: extractors.DefaultRegistry(),
	}
	w.embedder = w.mockEmb
	return w
}

func (w *pipelineWorld) close() {
	if w.embedServer != nil {
		w.embedServer.Close()
	}
}

func (w *pipelineWorld) ingestService() driving.IngestService {
	chunker := textproc.NewChunker(textproc.DefaultChunkConfig())
	return services.NewIngestService(chunker, w.embedder, w.index, nil, zerolog.Nop())
}

func (w *pipelineWorld) aDocumentContainingCharacters(filename string, length int) error {
	w.filename = filename
	w.text = strings.Repeat("a", length)
	return nil
}

func (w *pipelineWorld) anEmptyIndex() error {
	if w.index.Count() != 0 {
		return fmt.Errorf("index already holds %d records", w.index.Count())
	}
	return nil
}

func (w *pipelineWorld) anImageFile(filename string) error {
	w.filename = filename
	return nil
}

func (w *pipelineWorld) theEmbeddingProviderRateLimitsTheSecondBatch() error {
	requests := 0
	w.embedServer = httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		requests++
		if requests >= 2 {
			rw.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(rw).Encode(map[string]string{"message": "rate limit exceeded"})
			return
		}

		var req struct {
			Texts []string `json:"texts"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		embeddings := make([][]float32, len(req.Texts))
		for i := range embeddings {
			embeddings[i] = make([]float32, 384)
		}
		json.NewEncoder(rw).Encode(map[string]any{"embeddings": embeddings})
	}))

	svc, err := ai.NewCohereEmbedding("test-key", "embed-english-light-v3.0", w.embedServer.URL)
	if err != nil {
		return err
	}
	svc.(*ai.CohereEmbedding).SetBatchDelay(0)
	w.embedder = svc
	return nil
}

func (w *pipelineWorld) theDocumentIsIngested(ctx context.Context) error {
	w.result, w.ingestErr = w.ingestService().Ingest(ctx, driving.IngestRequest{
		Filename:    w.filename,
		ContentType: "application/pdf",
		Text:        w.text,
		PageCount:   1,
	})
	return nil
}

func (w *pipelineWorld) theIngestionSucceedsWithChunks(count int) error {
	if w.ingestErr != nil {
		return fmt.Errorf("ingestion failed: %w", w.ingestErr)
	}
	if w.result.ChunksProcessed != count {
		return fmt.Errorf("expected %d chunks, got %d", count, w.result.ChunksProcessed)
	}
	return nil
}

func (w *pipelineWorld) theIndexHoldsRecordsFor(count int, filename string) error {
	if w.index.Count() != count {
		return fmt.Errorf("expected %d records, got %d", count, w.index.Count())
	}
	for i := 0; i < count; i++ {
		if _, ok := w.index.Get(domain.ChunkID(filename, i)); !ok {
			return fmt.Errorf("missing record %s", domain.ChunkID(filename, i))
		}
	}
	return nil
}

func (w *pipelineWorld) theQuestionIsAsked(ctx context.Context, question string) error {
	chat := services.NewChatService(w.embedder, w.index, mocks.NewMockGenerator(), 0, zerolog.Nop())
	var err error
	w.answer, err = chat.Ask(ctx, domain.ChatRequest{Query: question})
	return err
}

func (w *pipelineWorld) theAnswerIsTheFallbackSentence() error {
	if w.answer.Answer != domain.FallbackAnswer {
		return fmt.Errorf("expected fallback answer, got %q", w.answer.Answer)
	}
	return nil
}

func (w *pipelineWorld) theFileIsUploaded() error {
	contentType := extractors.TypeForFilename(w.filename)
	if contentType == "" {
		contentType = "image/png"
	}
	if w.registry.Get(contentType) == nil {
		w.uploadErr = fmt.Errorf("%w: %s", domain.ErrUnsupportedType, contentType)
	}
	return nil
}

func (w *pipelineWorld) theUploadIsRejectedAsUnsupported() error {
	if !errors.Is(w.uploadErr, domain.ErrUnsupportedType) {
		return fmt.Errorf("expected unsupported type error, got %v", w.uploadErr)
	}
	return nil
}

func (w *pipelineWorld) noChunksWereEmbeddedOrIndexed() error {
	if w.mockEmb.EmbedCalls != 0 {
		return fmt.Errorf("expected no embedding calls, got %d", w.mockEmb.EmbedCalls)
	}
	if w.index.UpsertCalls != 0 {
		return fmt.Errorf("expected no upsert calls, got %d", w.index.UpsertCalls)
	}
	return nil
}

func (w *pipelineWorld) theIngestionFailsWithARateLimitError() error {
	if !errors.Is(w.ingestErr, domain.ErrEmbeddingRateLimited) {
		return fmt.Errorf("expected rate limit error, got %v", w.ingestErr)
	}
	return nil
}

func InitializeScenario(sc *godog.ScenarioContext) {
	var w *pipelineWorld

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		w = newPipelineWorld()
		return ctx, nil
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		w.close()
		return ctx, nil
	})

	sc.Step(`^a document "([^"]*)" containing (\d+) characters of text$`, func(filename string, length int) error {
		return w.aDocumentContainingCharacters(filename, length)
	})
	sc.Step(`^an empty index$`, func() error { return w.anEmptyIndex() })
	sc.Step(`^an image file "([^"]*)"$`, func(filename string) error { return w.anImageFile(filename) })
	sc.Step(`^the embedding provider rate limits the second batch$`, func() error {
		return w.theEmbeddingProviderRateLimitsTheSecondBatch()
	})
	sc.Step(`^the document is ingested$`, func(ctx context.Context) error { return w.theDocumentIsIngested(ctx) })
	sc.Step(`^the ingestion succeeds with (\d+) chunks$`, func(count int) error {
		return w.theIngestionSucceedsWithChunks(count)
	})
	sc.Step(`^the index holds (\d+) records for "([^"]*)"$`, func(count int, filename string) error {
		return w.theIndexHoldsRecordsFor(count, filename)
	})
	sc.Step(`^the question "([^"]*)" is asked$`, func(ctx context.Context, question string) error {
		return w.theQuestionIsAsked(ctx, question)
	})
	sc.Step(`^the answer is the fallback sentence$`, func() error { return w.theAnswerIsTheFallbackSentence() })
	sc.Step(`^the file is uploaded$`, func() error { return w.theFileIsUploaded() })
	sc.Step(`^the upload is rejected as unsupported$`, func() error { return w.theUploadIsRejectedAsUnsupported() })
	sc.Step(`^no chunks were embedded or indexed$`, func() error { return w.noChunksWereEmbeddedOrIndexed() })
	sc.Step(`^the ingestion fails with a rate limit error$`, func() error { return w.theIngestionFailsWithARateLimitError() })
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
