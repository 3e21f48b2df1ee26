package controllerImp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"

	"sfa/pkg/ai/service"
	logsRepo "sfa/pkg/logs/repository"
	mw "sfa/pkg/middleware"
)

type AICtrl struct {
	s        service.AIService
	logs     logsRepo.LogRepository
	allow    map[string]bool
	maxBytes int
}

func New(s service.AIService, logs logsRepo.LogRepository, allowedDomains string) *AICtrl {
	allow := map[string]bool{}
	for _, h := range strings.Split(allowedDomains, ",") {
		h = strings.TrimSpace(strings.ToLower(h))
		if h != "" {
			allow[h] = true
		}
	}
	return &AICtrl{s: s, logs: logs, allow: allow, maxBytes: 1500000}
}

type ingestReq struct {
	Documents []service.KnowledgeItem `json:"documents"`
}

func (h *AICtrl) Ingest(c echo.Context) error {
	email, role := mw.Actor(c)
	var req ingestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if len(req.Documents) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "documents is required"})
	}
	for _, d := range req.Documents {
		if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Content) == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "every document needs a title and content"})
		}
	}
	res, err := h.s.IngestKnowledge(req.Documents, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	_, _ = h.logs.Create("AI_KNOWLEDGE_INGEST", email, role, fmt.Sprintf("Knowledge docs ingested: %d", res.Count))
	return c.JSON(http.StatusCreated, res)
}

func (h *AICtrl) IngestURL(c echo.Context) error {
	email, role := mw.Actor(c)
	var body struct {
		URL   string `json:"url"`
		Title string `json:"title"`
		Tags  string `json:"tags"`
	}
	if err := c.Bind(&body); err != nil || body.URL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url required"})
	}
	u, err := url.Parse(body.URL)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad url"})
	}
	if !h.allow[strings.ToLower(u.Host)] {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "domain not allowed"})
	}

	text, title, err := fetchMainText(body.URL, h.maxBytes)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	if body.Title != "" {
		title = body.Title
	}

	res, err := h.s.IngestKnowledge([]service.KnowledgeItem{{
		Title:   title,
		Content: text,
		Source:  body.URL,
		Tags:    body.Tags,
	}}, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	_, _ = h.logs.Create("AI_KNOWLEDGE_INGEST", email, role, "Knowledge doc ingested from "+body.URL)
	return c.JSON(http.StatusCreated, res)
}

func (h *AICtrl) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	docs, err := h.s.ListKnowledge(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *AICtrl) Ask(c echo.Context) error {
	email, role := mw.Actor(c)
	var body struct {
		Question       string `json:"question"`
		TopK           int    `json:"topK"`
		AnswerLanguage string `json:"answerLanguage"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.Question) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "question is required"})
	}
	ans, err := h.s.AskQuestion(body.Question, body.TopK, body.AnswerLanguage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	_, _ = h.logs.Create("AI_ASK", email, role, "AI question answered")
	return c.JSON(http.StatusOK, ans)
}

// --- helpers ---

func fetchMainText(u string, maxBytes int) (string, string, error) {
	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Get(u)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.ContentLength > 0 && resp.ContentLength > int64(maxBytes) {
		return "", "", fmt.Errorf("page too large")
	}
	limited := io.LimitedReader{R: resp.Body, N: int64(maxBytes)}
	b, err := io.ReadAll(&limited)
	if err != nil {
		return "", "", err
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ct, "text/html") && !strings.Contains(ct, "text/plain") {
		return "", "", fmt.Errorf("unsupported content-type: %s", ct)
	}
	if strings.Contains(ct, "text/plain") {
		return string(b), guessTitleFromText(string(b)), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return "", "", err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())

	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,p,li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return cleanWhitespace(strings.Join(parts, "\n")), title, nil
}

var wsRX = regexp.MustCompile(`\s+\n`)

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return wsRX.ReplaceAllString(s, "\n")
}

func guessTitleFromText(s string) string {
	line := strings.SplitN(strings.TrimSpace(s), "\n", 2)[0]
	if len(line) > 120 {
		line = line[:120]
	}
	return line
}
