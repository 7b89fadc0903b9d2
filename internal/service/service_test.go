package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"derdiedas/internal/game"
	"derdiedas/internal/metrics"
	"derdiedas/internal/models"
)

type staticSource struct {
	words []models.Word
	err   error
}

func (s staticSource) Load(context.Context) ([]models.Word, error) {
	return s.words, s.err
}

// memoryStore is an in-memory WordStore
type memoryStore struct {
	mu    sync.Mutex
	words []models.StoredWord
	fail  error
}

func (m *memoryStore) ListWords(context.Context) ([]models.StoredWord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.StoredWord(nil), m.words...), nil
}

func (m *memoryStore) ImportWords(_ context.Context, words []models.Word, replace bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if replace {
		m.words = nil
	}
	for i, w := range words {
		found := false
		for j := range m.words {
			if m.words[j].Word.Text == w.Text {
				m.words[j].Word, m.words[j].Position = w, i
				found = true
			}
		}
		if !found {
			m.words = append(m.words, models.StoredWord{ID: int64(len(m.words) + 1), Word: w, Position: i})
		}
	}
	return nil
}

func (m *memoryStore) CountWords(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.words), nil
}

var drillPool = []models.Word{
	{Text: "Tisch", Article: models.Der},
	{Text: "Lampe", Article: models.Die},
	{Text: "Buch", Article: models.Das},
}

func newDrillService(t *testing.T, src staticSource) (*DrillService, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	return NewDrillService(src, NewSessionStore(time.Hour), m, zaptest.NewLogger(t), 42), m
}

func TestDrillServiceFlow(t *testing.T) {
	svc, m := newDrillService(t, staticSource{words: drillPool})

	snap, err := svc.Start(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, snap.SessionID)
	assert.Equal(t, models.PhasePresenting, snap.State.Phase)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsActive))

	word := snap.State.Word
	wrong := models.Der
	if word.Article == models.Der {
		wrong = models.Die
	}

	snap, out, err := svc.Guess(snap.SessionID, string(wrong))
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Equal(t, models.PhaseQuizzing, snap.State.Phase)
	require.NotNil(t, snap.State.Challenge)

	// invalid input leaves the stored session untouched
	_, _, err = svc.Submit(snap.SessionID, "des", "en")
	assert.ErrorIs(t, err, game.ErrInvalidGuess)
	got, err := svc.Get(snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseQuizzing, got.State.Phase)

	snap, out, err = svc.Submit(snap.SessionID, "der", "e")
	require.NoError(t, err)
	assert.True(t, out.Evaluated)
	assert.Equal(t, models.PhasePresenting, snap.State.Phase)
	assert.Equal(t, 2, snap.State.Score.Total)
	assert.NotEqual(t, word.Text, snap.State.Word.Text)

	snap, err = svc.Restart(snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.Score{}, snap.State.Score)

	require.NoError(t, svc.End(snap.SessionID))
	assert.ErrorIs(t, svc.End(snap.SessionID), ErrSessionNotFound)
	_, err = svc.Get(snap.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SessionsActive))

	answered := testutil.ToFloat64(m.Answers.WithLabelValues("guess", "incorrect")) +
		testutil.ToFloat64(m.Answers.WithLabelValues("quiz", "correct")) +
		testutil.ToFloat64(m.Answers.WithLabelValues("quiz", "incorrect"))
	assert.Equal(t, 2.0, answered)
}

func TestDrillServiceStartErrors(t *testing.T) {
	svc, _ := newDrillService(t, staticSource{err: game.ErrDataUnavailable})
	_, err := svc.Start(context.Background())
	assert.ErrorIs(t, err, game.ErrDataUnavailable)

	svc, _ = newDrillService(t, staticSource{})
	_, err = svc.Start(context.Background())
	assert.ErrorIs(t, err, game.ErrPoolEmpty)
	assert.Zero(t, svc.store.Len(), "failed starts store nothing")
}

func TestDrillServiceSeedIsReproducible(t *testing.T) {
	first := func() string {
		svc, _ := newDrillService(t, staticSource{words: drillPool})
		snap, err := svc.Start(context.Background())
		require.NoError(t, err)
		return snap.State.Word.Text
	}
	assert.Equal(t, first(), first())
}

func TestDrillServiceConcurrentSessions(t *testing.T) {
	svc, _ := newDrillService(t, staticSource{words: drillPool})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := svc.Start(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			for k := 0; k < 20; k++ {
				if snap.State.Phase == models.PhaseQuizzing {
					snap, _, err = svc.Submit(snap.SessionID, "dem", "en")
				} else {
					snap, _, err = svc.Guess(snap.SessionID, "die")
				}
				if !assert.NoError(t, err) {
					return
				}
			}
			assert.Equal(t, 20, snap.State.Score.Total)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, svc.store.Len())
}

func TestCleanupExpired(t *testing.T) {
	svc, m := newDrillService(t, staticSource{words: drillPool})
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.store.now = func() time.Time { return now }

	old, err := svc.Start(context.Background())
	require.NoError(t, err)

	now = now.Add(50 * time.Minute)
	fresh, err := svc.Start(context.Background())
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, svc.CleanupExpired())

	_, err = svc.Get(old.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get(fresh.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsExpired))
}

func TestWordServiceSeedAndExport(t *testing.T) {
	store := &memoryStore{}
	svc := NewWordService(store, zaptest.NewLogger(t))
	ctx := context.Background()

	res, err := svc.ImportCSV(ctx, strings.NewReader("Word,Article\nZeitung,die\nTisch,der\n"), false)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 2, Total: 2}, res)
	require.NotNil(t, store.words[0].Word.MagicalSuffix)
	assert.Equal(t, "ung", store.words[0].Word.MagicalSuffix.Suffix)

	n, err := svc.SeedFromCSV(ctx, "does-not-matter.csv")
	require.NoError(t, err)
	assert.Zero(t, n, "seeding skips a populated pool")

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf))
	assert.Equal(t, "Word,Article,Note,Example\nZeitung,die,,\nTisch,der,,\n", buf.String())

	res, err = svc.ImportCSV(ctx, strings.NewReader("Word,Article\nHaus,das\n"), true)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 1, Total: 1}, res)
}

func TestWordServiceSeedMissingFile(t *testing.T) {
	svc := NewWordService(&memoryStore{}, zaptest.NewLogger(t))
	_, err := svc.SeedFromCSV(context.Background(), "testdata/missing.csv")
	assert.Error(t, err)
}

func TestBackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := &memoryStore{}
	require.NoError(t, source.ImportWords(ctx, []models.Word{
		{Text: "Zeitung", Article: models.Die, MagicalSuffix: &models.MagicalSuffix{Stem: "Zeit", Suffix: "ung"}},
		{Text: "Tisch", Article: models.Der, Example: "Der Tisch ist neu."},
	}, false))

	var buf bytes.Buffer
	backup, err := NewBackupService(source, "sqlite", zaptest.NewLogger(t)).Export(ctx, &buf)
	require.NoError(t, err)
	assert.Len(t, backup.Words, 2)

	target := &memoryStore{}
	res, err := NewBackupService(target, "postgres", zaptest.NewLogger(t)).Import(ctx, &buf, true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	restored, err := target.ListWords(ctx)
	require.NoError(t, err)
	require.Len(t, restored, 2)
	assert.Equal(t, source.words[0].Word, restored[0].Word)
	assert.Equal(t, source.words[1].Word, restored[1].Word)
}

func TestBackupImportRejectsBadData(t *testing.T) {
	svc := NewBackupService(&memoryStore{}, "sqlite", zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := svc.Import(ctx, strings.NewReader(`{"version":"0.1","words":[]}`), false)
	assert.Error(t, err)

	_, err = svc.Import(ctx, strings.NewReader(`{"version":"1.0","words":[{"text":"Tisch","article":"den"}]}`), false)
	assert.Error(t, err)

	failing := NewBackupService(&memoryStore{fail: errors.New("disk full")}, "sqlite", zaptest.NewLogger(t))
	_, err = failing.Import(ctx, strings.NewReader(`{"version":"1.0","words":[{"text":"Tisch","article":"der"}]}`), false)
	assert.Error(t, err)
}
