package assessment

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/mindwell/internal/domain/instrument"
)

// -- Mock Repositories --

type mockAssessmentRepo struct {
	store map[uuid.UUID]*AssessmentRecord
	// afterList runs once ListByUser has read its page, before it returns.
	afterList func()
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{store: make(map[uuid.UUID]*AssessmentRecord)}
}

func (m *mockAssessmentRepo) Create(_ context.Context, r *AssessmentRecord) error {
	r.ID = uuid.New()
	r.CreatedAt = r.CompletedAt
	m.store[r.ID] = r
	return nil
}

func (m *mockAssessmentRepo) GetByID(_ context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	r, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (m *mockAssessmentRepo) byUser(userID uuid.UUID) []*AssessmentRecord {
	var out []*AssessmentRecord
	for _, r := range m.store {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out
}

func (m *mockAssessmentRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*AssessmentRecord, int, error) {
	all := m.byUser(userID)
	if m.afterList != nil {
		defer m.afterList()
	}
	if offset >= len(all) {
		return nil, len(all), nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], len(all), nil
}

func (m *mockAssessmentRepo) ListRecent(_ context.Context, userID uuid.UUID, n int) ([]*AssessmentRecord, error) {
	all := m.byUser(userID)
	return all[:min(n, len(all))], nil
}

type mockCrisisLogRepo struct {
	store map[uuid.UUID]*CrisisLog
}

func newMockCrisisLogRepo() *mockCrisisLogRepo {
	return &mockCrisisLogRepo{store: make(map[uuid.UUID]*CrisisLog)}
}

func (m *mockCrisisLogRepo) Create(_ context.Context, l *CrisisLog) error {
	l.ID = uuid.New()
	l.CreatedAt = time.Now().UTC()
	m.store[l.ID] = l
	return nil
}

func (m *mockCrisisLogRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*CrisisLog, int, error) {
	var out []*CrisisLog
	for _, l := range m.store {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	if offset >= len(out) {
		return nil, len(out), nil
	}
	return out[offset:min(offset+limit, len(out))], len(out), nil
}

type mockCache struct {
	store       map[uuid.UUID]*Dashboard
	versions    map[uuid.UUID]int64
	gets, sets  int
	invalidated int
	failReads   bool
}

func newMockCache() *mockCache {
	return &mockCache{
		store:    make(map[uuid.UUID]*Dashboard),
		versions: make(map[uuid.UUID]int64),
	}
}

func (m *mockCache) Get(_ context.Context, userID uuid.UUID) (*Dashboard, int64, error) {
	m.gets++
	if m.failReads {
		return nil, 0, errors.New("cache down")
	}
	return m.store[userID], m.versions[userID], nil
}

func (m *mockCache) Set(_ context.Context, userID uuid.UUID, version int64, d *Dashboard) error {
	if m.versions[userID] != version {
		return nil
	}
	m.sets++
	m.store[userID] = d
	return nil
}

func (m *mockCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	m.invalidated++
	m.versions[userID]++
	delete(m.store, userID)
	return nil
}

type mockConsent map[uuid.UUID]bool

func (m mockConsent) HasConsented(_ context.Context, userID uuid.UUID) (bool, error) {
	return m[userID], nil
}

func newTestService() *Service {
	svc := NewService(newMockAssessmentRepo(), newMockCrisisLogRepo(), nil)
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

var (
	phq9Minimal = []int{0, 0, 0, 0, 0, 0, 0, 0, 0}
	phq9Crisis  = []int{0, 0, 0, 0, 0, 0, 0, 0, 1}
	phq9Severe  = []int{3, 3, 3, 3, 3, 3, 3, 3, 0}
	gad7Mod     = []int{2, 2, 2, 2, 2, 1, 0}
)

// -- Submit --

func TestService_Submit(t *testing.T) {
	svc := newTestService()
	user := uuid.New()
	sub, err := svc.Submit(context.Background(), user, instrument.PHQ9, phq9Minimal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := sub.Record
	if rec.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if rec.UserID != user || rec.InstrumentID != instrument.PHQ9 {
		t.Errorf("unexpected owner or instrument: %+v", rec)
	}
	if rec.SeverityLevel != instrument.SeverityMinimal || rec.Color != instrument.ColorGreen {
		t.Errorf("expected minimal/green, got %s/%s", rec.SeverityLevel, rec.Color)
	}
	if rec.CompletedAt.IsZero() {
		t.Error("expected CompletedAt to be set")
	}
	if sub.CrisisResources != nil {
		t.Error("expected no crisis resources for an unflagged result")
	}
}

func TestService_Submit_CrisisAttachesResources(t *testing.T) {
	svc := newTestService()
	sub, err := svc.Submit(context.Background(), uuid.New(), instrument.PHQ9, phq9Crisis)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sub.Record.CrisisFlagged || sub.Record.TriggerReason == "" {
		t.Errorf("expected flagged record with a reason, got %+v", sub.Record)
	}
	if len(sub.CrisisResources) != 3 {
		t.Errorf("expected 3 crisis resources, got %d", len(sub.CrisisResources))
	}
}

func TestService_Submit_CopiesResponses(t *testing.T) {
	svc := newTestService()
	responses := []int{1, 1, 1, 1, 1, 1, 1}
	sub, err := svc.Submit(context.Background(), uuid.New(), instrument.GAD7, responses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	responses[0] = 3
	if sub.Record.Responses[0] != 1 {
		t.Error("stored responses alias the caller's slice")
	}
}

func TestService_Submit_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.Submit(ctx, uuid.Nil, instrument.PHQ9, phq9Minimal); err == nil {
		t.Error("expected error for missing user_id")
	}
	if _, err := svc.Submit(ctx, uuid.New(), "", phq9Minimal); err == nil {
		t.Error("expected error for missing instrument_id")
	}
}

func TestService_Submit_ScoringErrorsStoreNothing(t *testing.T) {
	repo := newMockAssessmentRepo()
	svc := NewService(repo, newMockCrisisLogRepo(), nil)
	ctx := context.Background()
	user := uuid.New()

	tests := []struct {
		name      string
		id        string
		responses []int
		want      error
	}{
		{"unknown instrument", "BDI", phq9Minimal, instrument.ErrUnknownInstrument},
		{"short response set", instrument.PHQ9, []int{0, 0}, instrument.ErrInvalidResponseSet},
		{"option out of range", instrument.GAD7, []int{0, 0, 0, 0, 0, 0, 4}, instrument.ErrInvalidOptionValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, user, tt.id, tt.responses)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if len(repo.store) != 0 {
		t.Errorf("expected nothing stored, got %d records", len(repo.store))
	}
}

func TestService_Submit_ConsentRequired(t *testing.T) {
	svc := newTestService()
	consented, refused := uuid.New(), uuid.New()
	svc.SetConsentChecker(mockConsent{consented: true})

	if _, err := svc.Submit(context.Background(), refused, instrument.PHQ9, phq9Minimal); !errors.Is(err, ErrConsentRequired) {
		t.Fatalf("expected ErrConsentRequired, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), consented, instrument.PHQ9, phq9Minimal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// -- Get / List --

func TestService_Get_OwnerOnly(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	owner := uuid.New()
	sub, _ := svc.Submit(ctx, owner, instrument.PHQ9, phq9Minimal)

	if _, err := svc.Get(ctx, owner, sub.Record.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := svc.Get(ctx, uuid.New(), sub.Record.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user, got %v", err)
	}
	if _, err := svc.Get(ctx, owner, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestService_List_NewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	user := uuid.New()
	first, _ := svc.Submit(ctx, user, instrument.PHQ9, phq9Minimal)
	second, _ := svc.Submit(ctx, user, instrument.GAD7, gad7Mod)
	svc.Submit(ctx, uuid.New(), instrument.PHQ9, phq9Minimal)

	items, total, err := svc.List(ctx, user, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 records, got %d (total %d)", len(items), total)
	}
	if items[0].ID != second.Record.ID || items[1].ID != first.Record.ID {
		t.Error("expected newest record first")
	}
}

// -- Risk / Dashboard --

func TestService_CurrentRisk(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	user := uuid.New()

	risk, err := svc.CurrentRisk(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if risk.Level != RiskLow {
		t.Errorf("expected low for empty history, got %s", risk.Level)
	}

	svc.Submit(ctx, user, instrument.GAD7, gad7Mod)
	risk, _ = svc.CurrentRisk(ctx, user)
	if risk.Level != RiskMedium {
		t.Errorf("expected medium after a moderate result, got %s", risk.Level)
	}
}

func TestService_Dashboard_WindowLimitsRisk(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	user := uuid.New()

	// Two severe results followed by five minimal ones fall outside the
	// risk window.
	svc.Submit(ctx, user, instrument.PHQ9, phq9Severe)
	svc.Submit(ctx, user, instrument.PHQ9, phq9Severe)
	for i := 0; i < 5; i++ {
		svc.Submit(ctx, user, instrument.PHQ9, phq9Minimal)
	}

	d, err := svc.Dashboard(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TotalAssessments != 7 {
		t.Errorf("expected 7 assessments, got %d", d.TotalAssessments)
	}
	if d.Risk.Level != RiskLow {
		t.Errorf("expected low risk, got %s", d.Risk.Level)
	}
	if d.LastCompletedAt == nil || !d.LastCompletedAt.Equal(d.Recent[0].CompletedAt) {
		t.Error("expected LastCompletedAt to match the newest record")
	}
}

func TestService_Dashboard_RecentCapped(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	user := uuid.New()
	for i := 0; i < DashboardRecent+2; i++ {
		svc.Submit(ctx, user, instrument.PHQ9, phq9Minimal)
	}
	d, err := svc.Dashboard(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Recent) != DashboardRecent {
		t.Errorf("expected %d recent records, got %d", DashboardRecent, len(d.Recent))
	}
	if d.TotalAssessments != DashboardRecent+2 {
		t.Errorf("expected total %d, got %d", DashboardRecent+2, d.TotalAssessments)
	}
}

func TestService_Dashboard_Empty(t *testing.T) {
	svc := newTestService()
	d, err := svc.Dashboard(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TotalAssessments != 0 || d.LastCompletedAt != nil || d.Recent == nil {
		t.Errorf("unexpected empty dashboard: %+v", d)
	}
	if d.Risk.Level != RiskLow {
		t.Errorf("expected low risk, got %s", d.Risk.Level)
	}
}

func TestService_Dashboard_Cache(t *testing.T) {
	svc := newTestService()
	cache := newMockCache()
	svc.SetCache(cache)
	ctx := context.Background()
	user := uuid.New()

	svc.Submit(ctx, user, instrument.PHQ9, phq9Minimal)
	if cache.invalidated != 1 {
		t.Errorf("expected submit to invalidate the cache, got %d", cache.invalidated)
	}

	first, _ := svc.Dashboard(ctx, user)
	second, _ := svc.Dashboard(ctx, user)
	if cache.sets != 1 {
		t.Errorf("expected one cache write, got %d", cache.sets)
	}
	if first != second {
		t.Error("expected second dashboard to come from the cache")
	}

	svc.Submit(ctx, user, instrument.PHQ9, phq9Severe)
	third, _ := svc.Dashboard(ctx, user)
	if third.TotalAssessments != 2 {
		t.Errorf("expected fresh dashboard after submit, got total %d", third.TotalAssessments)
	}
}

func TestService_Dashboard_SubmitDuringRebuild(t *testing.T) {
	repo := newMockAssessmentRepo()
	svc := NewService(repo, newMockCrisisLogRepo(), nil)
	cache := newMockCache()
	svc.SetCache(cache)
	ctx := context.Background()
	user := uuid.New()

	repo.afterList = func() {
		repo.afterList = nil
		if _, err := svc.Submit(ctx, user, instrument.PHQ9, phq9Crisis); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	stale, err := svc.Dashboard(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stale.TotalAssessments != 0 {
		t.Fatalf("expected the rebuild to miss the concurrent submit, got total %d", stale.TotalAssessments)
	}
	if cache.sets != 0 {
		t.Errorf("expected the outdated dashboard not to be cached, got %d writes", cache.sets)
	}

	d, err := svc.Dashboard(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TotalAssessments != 1 || d.Risk.Level != RiskHigh {
		t.Errorf("expected total 1 and high risk, got total %d risk %s", d.TotalAssessments, d.Risk.Level)
	}
}

func TestService_Dashboard_CacheFailureFallsBack(t *testing.T) {
	svc := newTestService()
	cache := newMockCache()
	cache.failReads = true
	svc.SetCache(cache)
	ctx := context.Background()
	user := uuid.New()
	svc.Submit(ctx, user, instrument.PHQ9, phq9Minimal)

	d, err := svc.Dashboard(ctx, user)
	if err != nil {
		t.Fatalf("cache failure leaked: %v", err)
	}
	if d.TotalAssessments != 1 {
		t.Errorf("expected total 1, got %d", d.TotalAssessments)
	}
	if cache.sets != 0 {
		t.Errorf("expected no cache write after a failed read, got %d", cache.sets)
	}
}

// -- Crisis acknowledgment --

func TestService_AcknowledgeCrisis(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	user := uuid.New()
	sub, _ := svc.Submit(ctx, user, instrument.PHQ9, phq9Crisis)

	entry, err := svc.AcknowledgeCrisis(ctx, user, sub.Record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !entry.Acknowledged || entry.AssessmentID != sub.Record.ID {
		t.Errorf("unexpected log entry: %+v", entry)
	}
	if entry.TriggerReason != sub.Record.TriggerReason {
		t.Errorf("expected trigger reason %q, got %q", sub.Record.TriggerReason, entry.TriggerReason)
	}

	logs, total, _ := svc.ListCrisisLogs(ctx, user, 10, 0)
	if total != 1 || len(logs) != 1 {
		t.Errorf("expected one crisis log, got %d", total)
	}
}

func TestService_AcknowledgeCrisis_Refusals(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	user := uuid.New()
	calm, _ := svc.Submit(ctx, user, instrument.PHQ9, phq9Minimal)
	flagged, _ := svc.Submit(ctx, user, instrument.PHQ9, phq9Crisis)

	if _, err := svc.AcknowledgeCrisis(ctx, user, calm.Record.ID); !errors.Is(err, ErrNotCrisisFlagged) {
		t.Errorf("expected ErrNotCrisisFlagged, got %v", err)
	}
	if _, err := svc.AcknowledgeCrisis(ctx, uuid.New(), flagged.Record.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user's assessment, got %v", err)
	}
}

func TestIsScoringInputError(t *testing.T) {
	_, err := instrument.Score(instrument.PHQ9, nil)
	if !IsScoringInputError(err) {
		t.Errorf("expected input error, got %v", err)
	}
	_, err = instrument.Score("BDI", nil)
	if IsScoringInputError(err) {
		t.Error("unknown instrument is not an input error")
	}
}
