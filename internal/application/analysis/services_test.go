package analysis

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/hairscan/internal/application"
	"github.com/bryanwahyu/hairscan/internal/domain/ai"
	domain "github.com/bryanwahyu/hairscan/internal/domain/analysis"
	"github.com/bryanwahyu/hairscan/internal/domain/parsefailures"
)

const goodResponse = `Timeline: Age 30-35
Current Stage: Mild thinning at the crown
Pattern Details:
- Crown: mild
- Temples: none
- Overall: stable
Risk Level: Low

Immediate Actions:
- Title: Gentle shampoo
  Description: Switch to a mild formula
  Urgency: Medium`

type memRepo struct {
	mu   sync.Mutex
	recs []*domain.Record
}

func (m *memRepo) Save(_ context.Context, r *domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, r)
	return nil
}

func (m *memRepo) Get(_ context.Context, subject string, id domain.RecordID) (*domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.SubjectID == subject && r.ID == id {
			return r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memRepo) Latest(_ context.Context, subject string) (*domain.Record, error) {
	list := m.bySubject(subject)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (m *memRepo) Paginate(_ context.Context, subject string, page, pageSize int) ([]*domain.Record, error) {
	list := m.bySubject(subject)
	start := (page - 1) * pageSize
	if start >= len(list) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], nil
}

func (m *memRepo) Delete(_ context.Context, subject string, id domain.RecordID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.recs {
		if r.SubjectID == subject && r.ID == id {
			m.recs = append(m.recs[:i], m.recs[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memRepo) bySubject(subject string) []*domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Record
	for _, r := range m.recs {
		if r.SubjectID == subject {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type memFailures struct {
	saved []*parsefailures.ParseFailure
	err   error
}

func (m *memFailures) Save(_ context.Context, f *parsefailures.ParseFailure) error {
	if m.err != nil {
		return m.err
	}
	f.ID = int64(len(m.saved) + 1)
	m.saved = append(m.saved, f)
	return nil
}

func (m *memFailures) ListBySubject(_ context.Context, subject string, _ int) ([]*parsefailures.ParseFailure, error) {
	var out []*parsefailures.ParseFailure
	for _, f := range m.saved {
		if f.SubjectID == subject {
			out = append(out, f)
		}
	}
	return out, nil
}

type memImages struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemImages() *memImages {
	return &memImages{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memImages) PutImage(_ context.Context, key string, data []byte, contentType string) (string, error) {
	m.objects[key] = data
	m.types[key] = contentType
	return key, nil
}

func (m *memImages) GetImage(_ context.Context, key string) ([]byte, string, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, "", errors.New("no such key")
	}
	return data, m.types[key], nil
}

type fakeAI struct {
	reply string
	err   error
	calls int
	last  ai.Image
}

func (f *fakeAI) Analyze(_ context.Context, img ai.Image) (string, error) {
	f.calls++
	f.last = img
	return f.reply, f.err
}

func newService(reply string) (*Service, *memRepo, *memFailures, *memImages, *fakeAI) {
	repo := &memRepo{}
	failures := &memFailures{}
	images := newMemImages()
	model := &fakeAI{reply: reply}
	return &Service{
		Repo:       repo,
		FailureLog: failures,
		Images:     images,
		AI:         model,
		Clock:      application.FixedClock{T: time.Date(2024, 11, 15, 8, 0, 0, 0, time.UTC)},
	}, repo, failures, images, model
}

func TestAnalyze_ImageInput(t *testing.T) {
	svc, repo, _, images, model := newService(goodResponse)

	res, err := svc.Analyze(context.Background(), "subject-1", ImageInput{Data: []byte("jpeg"), ContentType: "image/png"})
	require.NoError(t, err)

	rec := res.Record
	assert.Equal(t, "subject-1", rec.SubjectID)
	assert.True(t, strings.HasPrefix(rec.SourceRef, "subject-1/"))
	assert.True(t, strings.HasSuffix(rec.SourceRef, ".png"))
	assert.Equal(t, []byte("jpeg"), images.objects[rec.SourceRef])
	assert.Equal(t, "image/png", model.last.ContentType)
	assert.Equal(t, time.Date(2024, 11, 15, 8, 0, 0, 0, time.UTC), rec.CreatedAt)
	assert.Len(t, rec.ImmediateActions, 1)
	assert.Empty(t, res.DuplicateOf)
	assert.Len(t, repo.recs, 1)
}

func TestAnalyze_StoredImageInput(t *testing.T) {
	svc, _, _, images, model := newService(goodResponse)
	images.objects["subject-1/a.jpg"] = []byte("stored")
	images.types["subject-1/a.jpg"] = "image/jpeg"

	res, err := svc.Analyze(context.Background(), "subject-1", StoredImageInput{Key: "subject-1/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "subject-1/a.jpg", res.Record.SourceRef)
	assert.Equal(t, []byte("stored"), model.last.Data)

	_, err = svc.Analyze(context.Background(), "subject-1", StoredImageInput{Key: "missing"})
	assert.ErrorContains(t, err, "load image")
}

func TestAnalyze_TextInputSkipsModel(t *testing.T) {
	svc, _, _, _, model := newService("")

	res, err := svc.Analyze(context.Background(), "s", TextInput{Raw: goodResponse, SourceRef: "external"})
	require.NoError(t, err)
	assert.Equal(t, "external", res.Record.SourceRef)
	assert.Zero(t, model.calls)
}

func TestAnalyze_ParseFailureIsRecorded(t *testing.T) {
	bad := strings.Replace(goodResponse, "Risk Level: Low", "Risk Level: Severe", 1)
	svc, repo, failures, _, _ := newService(bad)

	_, err := svc.Analyze(context.Background(), "s", ImageInput{Data: []byte("x"), ContentType: "image/jpeg"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidFormat))
	assert.Empty(t, repo.recs)

	require.Len(t, failures.saved, 1)
	f := failures.saved[0]
	assert.Equal(t, string(domain.KindInvalidFormat), f.Kind)
	assert.Equal(t, bad, f.RawResponse)
	assert.Contains(t, f.Message, `"Severe"`)
	assert.NotEmpty(t, f.SourceRef)

	list, err := svc.Failures(context.Background(), "s", 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAnalyze_FailureLogErrorDoesNotMaskParseError(t *testing.T) {
	svc, _, failures, _, _ := newService("")
	failures.err = errors.New("db down")

	_, err := svc.Analyze(context.Background(), "s", TextInput{Raw: ""})
	assert.True(t, errors.Is(err, domain.ErrEmptyResponse))
}

func TestAnalyze_ModelErrorPassesThrough(t *testing.T) {
	svc, _, failures, _, model := newService("")
	model.err = ai.ErrQuotaExceeded

	_, err := svc.Analyze(context.Background(), "s", ImageInput{Data: []byte("x")})
	assert.ErrorIs(t, err, ai.ErrQuotaExceeded)
	assert.Empty(t, failures.saved)
}

func TestAnalyze_EmptyImage(t *testing.T) {
	svc, _, _, _, model := newService(goodResponse)
	_, err := svc.Analyze(context.Background(), "s", ImageInput{})
	assert.ErrorIs(t, err, ErrEmptyImage)
	assert.Zero(t, model.calls)
}

func TestAnalyze_FlagsDuplicate(t *testing.T) {
	svc, repo, _, _, _ := newService(goodResponse)
	ctx := context.Background()

	first, err := svc.Analyze(ctx, "s", TextInput{Raw: goodResponse})
	require.NoError(t, err)
	second, err := svc.Analyze(ctx, "s", TextInput{Raw: goodResponse})
	require.NoError(t, err)

	assert.Equal(t, first.Record.ID, second.DuplicateOf)
	assert.NotEqual(t, first.Record.ID, second.Record.ID)
	assert.Len(t, repo.recs, 2)

	other, err := svc.Analyze(ctx, "s", TextInput{Raw: strings.Replace(goodResponse, "Risk Level: Low", "Risk Level: High", 1)})
	require.NoError(t, err)
	assert.Empty(t, other.DuplicateOf)
}

func TestService_ReadUseCases(t *testing.T) {
	svc, _, _, _, _ := newService(goodResponse)
	ctx := context.Background()

	res, err := svc.Analyze(ctx, "s", TextInput{Raw: goodResponse})
	require.NoError(t, err)
	id := res.Record.ID

	got, err := svc.Get(ctx, "s", id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = svc.Get(ctx, "other", id)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	latest, err := svc.Latest(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, id, latest.ID)

	page, err := svc.List(ctx, "s", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Len(t, page.Data, 1)

	empty, err := svc.List(ctx, "nobody", 2, 5)
	require.NoError(t, err)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)

	require.NoError(t, svc.Delete(ctx, "s", id))
	assert.ErrorIs(t, svc.Delete(ctx, "s", id), sql.ErrNoRows)
}

func TestPreview_DoesNotPersist(t *testing.T) {
	svc, repo, failures, _, _ := newService("")

	rec, err := svc.Preview("s", goodResponse, "ref")
	require.NoError(t, err)
	assert.Equal(t, "ref", rec.SourceRef)

	_, err = svc.Preview("s", "nonsense", "ref")
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)

	assert.Empty(t, repo.recs)
	assert.Empty(t, failures.saved)
}

func TestExtFor(t *testing.T) {
	assert.Equal(t, ".png", extFor("image/png"))
	assert.Equal(t, ".webp", extFor("image/webp"))
	assert.Equal(t, ".jpg", extFor(""))
}
