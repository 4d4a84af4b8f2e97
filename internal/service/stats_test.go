package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/service"
	mock_service "github.com/shalinibhavi525-sudo/border-incident-reporter/internal/service/mocks"
)

func TestStats_GetStats_CacheMiss_CountsAndCaches(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockIncidentRepository(ctrl)
	cache := mock_service.NewMockStatsCache(ctrl)

	cache.EXPECT().Get(gomock.Any()).Return(nil, nil).Times(1)

	repo.EXPECT().Count(gomock.Any(), domain.IncidentFilter{}).Return(int64(2), nil).Times(1)
	repo.EXPECT().Count(gomock.Any(), domain.IncidentFilter{Severity: domain.SeverityCritical}).Return(int64(1), nil).Times(1)
	repo.EXPECT().Count(gomock.Any(), domain.IncidentFilter{Severity: domain.SeverityHigh}).Return(int64(0), nil).Times(1)
	repo.EXPECT().Count(gomock.Any(), domain.IncidentFilter{Status: string(domain.StatusOpen)}).Return(int64(1), nil).Times(1)

	want := &domain.IncidentStats{Total: 2, Critical: 1, High: 0, Open: 1}
	cache.EXPECT().Set(gomock.Any(), want).Return(nil).Times(1)

	svc := service.NewStats(repo, cache, newTestLogger())

	got, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected stats: got=%+v want=%+v", got, want)
	}
}

func TestStats_GetStats_EmptyStore(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockIncidentRepository(ctrl)
	cache := mock_service.NewMockStatsCache(ctrl)

	cache.EXPECT().Get(gomock.Any()).Return(nil, nil).Times(1)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(0), nil).Times(4)
	cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	svc := service.NewStats(repo, cache, newTestLogger())

	got, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := &domain.IncidentStats{}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected zero stats, got=%+v", got)
	}
}

func TestStats_GetStats_CacheHit_SkipsCounts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no repo expectations: the snapshot comes straight from the cache
	repo := mock_service.NewMockIncidentRepository(ctrl)
	cache := mock_service.NewMockStatsCache(ctrl)

	want := &domain.IncidentStats{Total: 10, Critical: 3, High: 2, Open: 5}
	cache.EXPECT().Get(gomock.Any()).Return(want, nil).Times(1)

	svc := service.NewStats(repo, cache, newTestLogger())

	got, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected stats: got=%+v want=%+v", got, want)
	}
}

func TestStats_GetStats_CacheErrorDegradesToRecount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockIncidentRepository(ctrl)
	cache := mock_service.NewMockStatsCache(ctrl)

	cache.EXPECT().Get(gomock.Any()).Return(nil, errors.New("redis down")).Times(1)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(1), nil).Times(4)
	cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(1)

	svc := service.NewStats(repo, cache, newTestLogger())

	got, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("cache trouble must not fail stats: %v", err)
	}
	if got.Total != 1 {
		t.Fatalf("expected live recount, got=%+v", got)
	}
}

func TestStats_GetStats_CountError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockIncidentRepository(ctrl)
	cache := mock_service.NewMockStatsCache(ctrl)

	wantErr := errors.New("pool exhausted")
	cache.EXPECT().Get(gomock.Any()).Return(nil, nil).Times(1)
	repo.EXPECT().Count(gomock.Any(), domain.IncidentFilter{}).Return(int64(0), wantErr).Times(1)

	svc := service.NewStats(repo, cache, newTestLogger())

	if _, err := svc.GetStats(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected count error, got %v", err)
	}
}
