package serviceImp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfa/entities"
	"sfa/pkg/ai/service"
)

// fakeRepo keeps documents in insertion order and assigns ids like the real
// store does.
type fakeRepo struct {
	docs   []entities.KnowledgeDoc
	nextID uint
}

func (f *fakeRepo) Upsert(d *entities.KnowledgeDoc) error {
	if d.DocID == 0 {
		f.nextID++
		d.DocID = f.nextID
		f.docs = append(f.docs, *d)
		return nil
	}
	for i := range f.docs {
		if f.docs[i].DocID == d.DocID {
			f.docs[i] = *d
			return nil
		}
	}
	f.docs = append(f.docs, *d)
	return nil
}

func (f *fakeRepo) Recent(limit int) ([]entities.KnowledgeDoc, error) {
	out := make([]entities.KnowledgeDoc, len(f.docs))
	copy(out, f.docs)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) FindByID(id uint) (*entities.KnowledgeDoc, error) {
	for i := range f.docs {
		if f.docs[i].DocID == id {
			d := f.docs[i]
			return &d, nil
		}
	}
	return nil, nil
}

func newSvc(repo *fakeRepo) service.AIService {
	// nil embedder and chat client: keyword ranking and template answers
	return New(repo, nil, nil)
}

func TestIngestAppliesDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := newSvc(repo)

	res, err := svc.IngestKnowledge([]service.KnowledgeItem{
		{Title: "  Rice cultivation  ", Content: " Transplant at 21 days. "},
	}, "admin@example.com")
	require.NoError(t, err)

	require.Equal(t, 1, res.Count)
	assert.False(t, res.EmbeddingEnabled)
	doc := res.Documents[0]
	assert.Equal(t, "Rice cultivation", doc.Title)
	assert.Equal(t, "Transplant at 21 days.", doc.Content)
	assert.Equal(t, "uploaded-by:admin@example.com", doc.Source)
	assert.Equal(t, "bn", doc.Language, "language defaults to Bengali")
}

func TestIngestUpdatesExistingDoc(t *testing.T) {
	repo := &fakeRepo{}
	svc := newSvc(repo)

	first, err := svc.IngestKnowledge([]service.KnowledgeItem{
		{Title: "Wheat", Content: "Old content"},
	}, "admin@example.com")
	require.NoError(t, err)
	id := first.Documents[0].DocID

	_, err = svc.IngestKnowledge([]service.KnowledgeItem{
		{ID: id, Title: "Wheat", Content: "New content"},
	}, "admin@example.com")
	require.NoError(t, err)

	require.Len(t, repo.docs, 1)
	assert.Equal(t, "New content", repo.docs[0].Content)
}

func TestAskRanksByKeywordOverlap(t *testing.T) {
	repo := &fakeRepo{}
	svc := newSvc(repo)
	_, err := svc.IngestKnowledge([]service.KnowledgeItem{
		{Title: "Potato blight", Content: "Late blight spreads in cool humid weather.", Tags: "potato,disease"},
		{Title: "Rice irrigation", Content: "Alternate wetting and drying saves water in rice fields.", Tags: "rice,water"},
		{Title: "Soil testing", Content: "Test soil pH before the season.", Tags: "soil"},
	}, "admin@example.com")
	require.NoError(t, err)

	ans, err := svc.AskQuestion("How much water does rice irrigation need?", 2, "en")
	require.NoError(t, err)

	require.NotEmpty(t, ans.References)
	assert.Equal(t, "Rice irrigation", ans.References[0].Title)
	assert.LessOrEqual(t, len(ans.References), 2)
	assert.Contains(t, ans.Answer, "Rice irrigation")
	assert.Contains(t, ans.Answer, "AI_API_KEY", "template answer points at the generation switch")
}

func TestAskWithoutAnyMatch(t *testing.T) {
	repo := &fakeRepo{}
	svc := newSvc(repo)
	_, err := svc.IngestKnowledge([]service.KnowledgeItem{
		{Title: "Potato blight", Content: "Late blight spreads in cool humid weather."},
	}, "admin@example.com")
	require.NoError(t, err)

	ans, err := svc.AskQuestion("quantum chromodynamics", 4, "en")
	require.NoError(t, err)
	assert.Empty(t, ans.References)
	assert.Equal(t, "No relevant knowledge found yet. Please ingest Bengali knowledge docs first.", ans.Answer)
}

func TestAskDefaultsToBengali(t *testing.T) {
	repo := &fakeRepo{}
	svc := newSvc(repo)

	ans, err := svc.AskQuestion("ধান চাষ", 0, "")
	require.NoError(t, err)
	assert.Contains(t, ans.Answer, "জ্ঞানভান্ডার")
}

func TestFallbackAnswerTruncatesLongContent(t *testing.T) {
	long := make([]rune, 0, 300)
	for i := 0; i < 300; i++ {
		long = append(long, 'a')
	}
	docs := []entities.KnowledgeDoc{{DocID: 1, Title: "Long doc", Content: string(long)}}

	out := fallbackAnswer("anything", "en", docs)
	assert.Contains(t, out, "1. Long doc: ")
	assert.NotContains(t, out, string(long), "content is trimmed to a snippet")
}
