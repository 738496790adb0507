package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/internal/domain/mocks"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
)

func setupReconciler(t *testing.T, dryRun bool) (*SummaryReconciler, *mocks.MockDomainRepository, *mocks.MockEmailRepository, *mocks.MockEmailSummaryRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	domainRepo := mocks.NewMockDomainRepository(ctrl)
	emailRepo := mocks.NewMockEmailRepository(ctrl)
	summaryRepo := mocks.NewMockEmailSummaryRepository(ctrl)

	r := NewSummaryReconciler(domainRepo, emailRepo, summaryRepo, logger.NewTestLogger(t), 2, dryRun)
	return r, domainRepo, emailRepo, summaryRepo
}

func findReconciliation(t *testing.T, report *domain.ReconcileReport, name string) *domain.DomainReconciliation {
	t.Helper()
	for _, d := range report.Domains {
		if d.Domain.Name == name {
			return d
		}
	}
	t.Fatalf("no reconciliation for %s", name)
	return nil
}

func TestSummaryReconciler_Reconcile(t *testing.T) {
	r, domainRepo, emailRepo, summaryRepo := setupReconciler(t, false)

	domainRepo.EXPECT().List(gomock.Any()).Return([]*domain.SendingDomain{
		{ID: "d-drift", Name: "drift.com"},
		{ID: "d-ok", Name: "ok.com"},
		{ID: "d-new", Name: "new.com"},
		{ID: "d-bad", Name: "bad.com"},
	}, nil)

	// drifted: ingestion counted a repeated sent event twice
	emailRepo.EXPECT().CountSummary(gomock.Any(), "d-drift").Return(&domain.SummaryCounts{TotalSent: 5, TotalLoaded: 2}, nil)
	summaryRepo.EXPECT().Get(gomock.Any(), "d-drift").Return(&domain.EmailSummary{
		DomainID:      "d-drift",
		SummaryCounts: domain.SummaryCounts{TotalSent: 6, TotalLoaded: 2},
	}, nil)
	summaryRepo.EXPECT().Replace(gomock.Any(), "d-drift", domain.SummaryCounts{TotalSent: 5, TotalLoaded: 2}, gomock.Any()).Return(false, nil)

	// already correct: no write
	emailRepo.EXPECT().CountSummary(gomock.Any(), "d-ok").Return(&domain.SummaryCounts{TotalSent: 1}, nil)
	summaryRepo.EXPECT().Get(gomock.Any(), "d-ok").Return(&domain.EmailSummary{SummaryCounts: domain.SummaryCounts{TotalSent: 1}}, nil)

	// no summary row yet
	emailRepo.EXPECT().CountSummary(gomock.Any(), "d-new").Return(&domain.SummaryCounts{TotalBounce: 1}, nil)
	summaryRepo.EXPECT().Get(gomock.Any(), "d-new").Return(nil, &domain.ErrNotFound{Entity: "email summary", ID: "d-new"})
	summaryRepo.EXPECT().Replace(gomock.Any(), "d-new", domain.SummaryCounts{TotalBounce: 1}, gomock.Any()).Return(true, nil)

	emailRepo.EXPECT().CountSummary(gomock.Any(), "d-bad").Return(nil, errors.New("statement timeout"))

	report, err := r.Reconcile(context.Background())

	require.NoError(t, err)
	assert.Len(t, report.Domains, 4)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Failed)

	drift := findReconciliation(t, report, "drift.com")
	require.NotNil(t, drift.Before)
	assert.Equal(t, int64(6), drift.Before.TotalSent)
	assert.Equal(t, int64(5), drift.After.TotalSent)
	assert.Equal(t, []domain.SummaryField{domain.SummaryFieldSent}, drift.Changed)

	ok := findReconciliation(t, report, "ok.com")
	assert.Empty(t, ok.Changed)
	assert.False(t, ok.Created)

	created := findReconciliation(t, report, "new.com")
	assert.Nil(t, created.Before)
	assert.True(t, created.Created)
	assert.Equal(t, []domain.SummaryField{domain.SummaryFieldBounce}, created.Changed)

	bad := findReconciliation(t, report, "bad.com")
	assert.Contains(t, bad.Error, "statement timeout")
}

func TestSummaryReconciler_DryRunWritesNothing(t *testing.T) {
	r, domainRepo, emailRepo, summaryRepo := setupReconciler(t, true)

	domainRepo.EXPECT().List(gomock.Any()).Return([]*domain.SendingDomain{{ID: "d1", Name: "example.com"}}, nil)
	emailRepo.EXPECT().CountSummary(gomock.Any(), "d1").Return(&domain.SummaryCounts{TotalClicked: 3}, nil)
	summaryRepo.EXPECT().Get(gomock.Any(), "d1").Return(&domain.EmailSummary{SummaryCounts: domain.SummaryCounts{TotalClicked: 1}}, nil)
	// Replace must not be called

	report, err := r.Reconcile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, []domain.SummaryField{domain.SummaryFieldClicked}, report.Domains[0].Changed)
}

func TestSummaryReconciler_ListFailure(t *testing.T) {
	r, domainRepo, _, _ := setupReconciler(t, false)

	domainRepo.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))

	report, err := r.Reconcile(context.Background())

	assert.Nil(t, report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list domains")
}

func TestNewSummaryReconciler_DefaultConcurrency(t *testing.T) {
	r := NewSummaryReconciler(nil, nil, nil, logger.NewTestLogger(t), 0, false)
	assert.Equal(t, DefaultReconcileConcurrency, r.concurrency)
}
