package providers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"tatico/internal/models"
	"tatico/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

// fallbackVerses is served whenever the remote endpoint misbehaves. The
// chosen entry is cached for the day so a failing endpoint is hit at most
// once per calendar day.
var fallbackVerses = []models.DailyVerse{
	{Text: "Tudo posso naquele que me fortalece.", Reference: "Filipenses 4:13"},
	{Text: "O Senhor é o meu pastor; de nada terei falta.", Reference: "Salmos 23:1"},
	{Text: "Sejam fortes e corajosos. Não tenham medo.", Reference: "Josué 1:9"},
	{Text: "Mil cairão ao teu lado, e dez mil à tua direita, mas tu não serás atingido.", Reference: "Salmos 91:7"},
	{Text: "Combati o bom combate, acabei a carreira, guardei a fé.", Reference: "2 Timóteo 4:7"},
}

type VerseProviderInterface interface {
	Today() models.DailyVerse
}

type VerseProvider struct {
	endpoint string
	store    StoreProviderInterface
	logger   Logger
	metrics  MetricsProviderInterface
	client   *http.Client
	now      func() time.Time
	pick     func(n int) int
}

func NewVerseProvider(conf *structures.Config, store StoreProviderInterface, logger Logger, metrics MetricsProviderInterface) VerseProviderInterface {
	return &VerseProvider{
		endpoint: conf.Verse.Endpoint,
		store:    store,
		logger:   logger,
		metrics:  metrics,
		// No explicit timeout: the fetch happens at most once per day and a
		// slow response only delays the error-path fallback decision.
		client: &http.Client{},
		now:    time.Now,
		pick:   rand.Intn,
	}
}

// Today returns the verse for the current calendar day, fetching it on the
// first call of the day and serving the cached copy afterwards.
func (vp *VerseProvider) Today() models.DailyVerse {
	today := models.DayKey(vp.now())

	var cachedDate string
	var cached models.DailyVerse
	if vp.store.Get(models.KeyVerseDate, &cachedDate) && cachedDate == today &&
		vp.store.Get(models.KeyVerseData, &cached) && cached.Text != "" {
		return cached
	}

	verse, err := vp.fetch()
	if err != nil {
		verse = fallbackVerses[vp.pick(len(fallbackVerses))]
		vp.metrics.IncVerseFallbacks()
		vp.logger.Warnf(TypeVerse, "Verse fetch failed, using fallback: %s", err)
	} else {
		vp.logger.Debugf(TypeVerse, "Fetched verse %s", verse.Reference)
	}

	vp.store.Set(models.KeyVerseData, verse)
	vp.store.Set(models.KeyVerseDate, today)
	return verse
}

func (vp *VerseProvider) fetch() (models.DailyVerse, error) {
	resp, err := vp.client.Get(vp.endpoint)
	if err != nil {
		return models.DailyVerse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.DailyVerse{}, fmt.Errorf("unexpected status %d from verse endpoint", resp.StatusCode)
	}

	var payload struct {
		Text      string `json:"text"`
		Reference string `json:"reference"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.DailyVerse{}, err
	}
	if strings.TrimSpace(payload.Text) == "" || payload.Reference == "" {
		return models.DailyVerse{}, errInvalidVersePayload
	}

	return models.DailyVerse{
		Text:      strings.TrimSpace(payload.Text),
		Reference: payload.Reference,
	}, nil
}

var errInvalidVersePayload = errors.New("verse payload missing text or reference")
