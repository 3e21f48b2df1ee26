package serviceImp

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"sfa/entities"
	"sfa/pkg/ai/embedder"
	"sfa/pkg/ai/llm"
	"sfa/pkg/ai/repository"
	"sfa/pkg/ai/service"
)

type Svc struct {
	repo repository.KnowledgeRepository
	emb  *embedder.Client // nil when embedding is disabled
	chat *llm.Client      // nil when generation is disabled
}

func New(repo repository.KnowledgeRepository, emb *embedder.Client, chat *llm.Client) service.AIService {
	return &Svc{repo: repo, emb: emb, chat: chat}
}

func (s *Svc) IngestKnowledge(items []service.KnowledgeItem, actorEmail string) (*service.IngestResult, error) {
	docs := make([]entities.KnowledgeDoc, 0, len(items))
	for _, item := range items {
		saved, err := s.upsertDocument(item, actorEmail)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *saved)
	}
	return &service.IngestResult{
		Count:            len(docs),
		Documents:        docs,
		EmbeddingEnabled: s.emb != nil,
	}, nil
}

func (s *Svc) ListKnowledge(limit int) ([]entities.KnowledgeDoc, error) {
	return s.repo.Recent(limit)
}

func (s *Svc) AskQuestion(question string, topK int, answerLanguage string) (*service.Answer, error) {
	if topK <= 0 {
		topK = 4
	}
	lang := answerLanguage
	if lang != "en" {
		lang = "bn"
	}

	candidates, err := s.repo.Recent(200)
	if err != nil {
		return nil, err
	}
	ranked := s.rank(question, candidates, topK)

	if len(ranked) == 0 {
		return &service.Answer{
			Answer:     noKnowledgeMessage(lang),
			References: []service.Reference{},
		}, nil
	}

	var answer string
	if s.chat != nil {
		answer, err = s.generate(question, lang, ranked)
		if err != nil {
			answer = fallbackAnswer(question, lang, ranked)
		}
	} else {
		answer = fallbackAnswer(question, lang, ranked)
	}

	refs := make([]service.Reference, 0, len(ranked))
	for _, d := range ranked {
		refs = append(refs, service.Reference{ID: d.DocID, Title: d.Title, Source: d.Source})
	}
	return &service.Answer{Answer: answer, References: refs}, nil
}

func (s *Svc) upsertDocument(item service.KnowledgeItem, actorEmail string) (*entities.KnowledgeDoc, error) {
	doc := &entities.KnowledgeDoc{
		Title:    strings.TrimSpace(item.Title),
		Content:  strings.TrimSpace(item.Content),
		Source:   strings.TrimSpace(item.Source),
		Language: item.Language,
		Tags:     item.Tags,
	}
	if item.ID != 0 {
		existing, err := s.repo.FindByID(item.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			doc.DocID = existing.DocID
			doc.CreatedAt = existing.CreatedAt
		}
	}
	if doc.Source == "" {
		doc.Source = "uploaded-by:" + actorEmail
	}
	if doc.Language == "" {
		doc.Language = "bn"
	}

	if s.emb != nil {
		vecs, err := s.emb.Embed([]string{doc.Title + "\n" + doc.Content})
		if err == nil && len(vecs) > 0 {
			doc.Embedding = embedder.FloatsToBytes(vecs[0])
		}
	}

	if err := s.repo.Upsert(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// rank orders candidates by embedding similarity when possible, dropping to
// keyword hits when embeddings are unavailable or produce nothing.
func (s *Svc) rank(question string, docs []entities.KnowledgeDoc, topK int) []entities.KnowledgeDoc {
	if len(docs) == 0 {
		return nil
	}

	if s.emb != nil {
		if vecs, err := s.emb.Embed([]string{question}); err == nil && len(vecs) > 0 {
			qvec := vecs[0]
			type scored struct {
				doc   entities.KnowledgeDoc
				score float64
			}
			var list []scored
			for _, d := range docs {
				if len(d.Embedding) == 0 {
					continue
				}
				list = append(list, scored{d, cosine(qvec, embedder.BytesToFloats(d.Embedding))})
			}
			sort.SliceStable(list, func(i, j int) bool { return list[i].score > list[j].score })
			if len(list) > topK {
				list = list[:topK]
			}
			if len(list) > 0 {
				out := make([]entities.KnowledgeDoc, len(list))
				for i := range list {
					out[i] = list[i].doc
				}
				return out
			}
		}
	}

	tokens := tokenize(question)
	type scored struct {
		doc   entities.KnowledgeDoc
		score int
	}
	var list []scored
	for _, d := range docs {
		hay := strings.ToLower(d.Title + " " + d.Content + " " + d.Tags)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(hay, tok) {
				score++
			}
		}
		if score > 0 {
			list = append(list, scored{d, score})
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].score > list[j].score })
	if len(list) > topK {
		list = list[:topK]
	}
	out := make([]entities.KnowledgeDoc, len(list))
	for i := range list {
		out[i] = list[i].doc
	}
	return out
}

func (s *Svc) generate(question, lang string, docs []entities.KnowledgeDoc) (string, error) {
	var ctx strings.Builder
	for i, d := range docs {
		src := d.Source
		if src == "" {
			src = "N/A"
		}
		fmt.Fprintf(&ctx, "[%d] %s\nSource: %s\n%s\n\n", i+1, d.Title, src, d.Content)
	}

	system := "You are an agriculture assistant. Answer only from the provided context and explicitly mention when context is insufficient."
	prefix := "Question: "
	if lang == "bn" {
		system = "তুমি একটি Bengali agriculture assistant। শুধুমাত্র দেওয়া context অনুযায়ী উত্তর দাও। context-এ না থাকলে স্পষ্টভাবে জানাও।"
		prefix = "প্রশ্ন: "
	}
	return s.chat.Complete(system, prefix+question+"\n\nContext:\n"+ctx.String())
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func noKnowledgeMessage(lang string) string {
	if lang == "bn" {
		return "এই প্রশ্নের জন্য এখনও পর্যাপ্ত জ্ঞানভান্ডার পাওয়া যায়নি। আগে Bengali knowledge docs যোগ করুন।"
	}
	return "No relevant knowledge found yet. Please ingest Bengali knowledge docs first."
}

func fallbackAnswer(question, lang string, docs []entities.KnowledgeDoc) string {
	intro := fmt.Sprintf("Relevant knowledge found for your question %q:", question)
	outro := "\n\nNote: set AI_API_KEY for higher-quality generated responses."
	if lang == "bn" {
		intro = fmt.Sprintf("আপনার প্রশ্ন \"%s\" অনুযায়ী জ্ঞানভান্ডার থেকে প্রাসঙ্গিক তথ্য:", question)
		outro = "\n\nনোট: আরও natural উত্তর পেতে AI_API_KEY সেট করুন।"
	}

	var points []string
	for i, d := range docs {
		snippet := []rune(d.Content)
		if len(snippet) > 220 {
			snippet = snippet[:220]
		}
		points = append(points, fmt.Sprintf("%d. %s: %s", i+1, d.Title, strings.TrimSpace(string(snippet))))
	}
	return intro + "\n" + strings.Join(points, "\n") + outro
}
