package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/dashboard"
)

func admin() auth.Caller {
	return auth.Caller{ID: uuid.New(), Role: auth.RoleAdmin, Active: true}
}

func date(month time.Month) time.Time {
	return time.Date(2025, month, 15, 0, 0, 0, 0, time.UTC)
}

func TestService_Stats_AdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repo expectations: non-admins never trigger a fetch.
	svc := dashboard.NewService(dashboard.NewMockRepository(ctrl))

	_, err := svc.Stats(context.Background(), auth.Caller{ID: uuid.New(), Role: auth.RoleClient, Active: true})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestService_Stats_Aggregates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dashboard.NewMockRepository(ctrl)
	repo.EXPECT().ApplicationRows(gomock.Any()).Return([]dashboard.ApplicationRow{
		{Status: "pending", CreatedAt: date(time.January)},
		{Status: "approved", CreatedAt: date(time.January)},
		{Status: "approved", CreatedAt: date(time.March)},
		{Status: "rejected", CreatedAt: date(time.March)},
		{Status: "approved", CreatedAt: date(time.March)},
	}, nil)
	repo.EXPECT().PaymentRows(gomock.Any()).Return([]dashboard.PaymentRow{
		{Status: "completed", Amount: 100000},
		{Status: "completed", Amount: 250000},
		{Status: "pending", Amount: 999999},
		{Status: "failed", Amount: 50000},
	}, nil)
	repo.EXPECT().CountReceipts(gomock.Any()).Return(7, nil)
	repo.EXPECT().EstateRows(gomock.Any()).Return([]dashboard.EstateRow{
		{Name: "Unity Gardens", Total: 100, Available: 40, Sold: 35},
		{Name: "Harmony Court", Total: 20},
	}, nil)

	svc := dashboard.NewService(repo)

	stats, err := svc.Stats(context.Background(), admin())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalApplications)
	assert.Equal(t, 1, stats.PendingApplications)
	assert.Equal(t, 3, stats.ApprovedApplications)
	assert.Equal(t, 1, stats.RejectedApplications)

	// Only completed payments count toward sales.
	assert.Equal(t, int64(350000), stats.TotalSales)
	assert.Equal(t, 7, stats.ReceiptsIssued)

	// Buckets are sparse: only months with applications appear.
	require.Len(t, stats.MonthlyApplications, 2)
	byMonth := map[string]dashboard.MonthBucket{}
	for _, b := range stats.MonthlyApplications {
		byMonth[b.Month] = b
	}
	assert.Equal(t, dashboard.MonthBucket{Month: "January", Total: 2, Approved: 1}, byMonth["January"])
	assert.Equal(t, dashboard.MonthBucket{Month: "March", Total: 3, Approved: 2}, byMonth["March"])

	require.Len(t, stats.EstateAllocations, 2)
	assert.Equal(t, 25, stats.EstateAllocations[0].Booked)
	// Absent unit columns count as zero, never poisoning the arithmetic.
	assert.Equal(t, 20, stats.EstateAllocations[1].Booked)
}

func TestService_Stats_ProgressSplitSumsToApproved(t *testing.T) {
	for approved := 0; approved <= 50; approved++ {
		repo := func() *dashboard.MockRepository {
			ctrl := gomock.NewController(t)

			apps := make([]dashboard.ApplicationRow, approved)
			for i := range apps {
				apps[i] = dashboard.ApplicationRow{Status: "approved", CreatedAt: date(time.June)}
			}

			m := dashboard.NewMockRepository(ctrl)
			m.EXPECT().ApplicationRows(gomock.Any()).Return(apps, nil)
			m.EXPECT().PaymentRows(gomock.Any()).Return(nil, nil)
			m.EXPECT().CountReceipts(gomock.Any()).Return(0, nil)
			m.EXPECT().EstateRows(gomock.Any()).Return(nil, nil)
			return m
		}()

		svc := dashboard.NewService(repo)

		stats, err := svc.Stats(context.Background(), admin())
		require.NoError(t, err)

		p := stats.EstimatedPaymentProgress
		assert.Equal(t, approved, p.Pending+p.Partial+p.Full,
			"split must partition the approved count for %d", approved)
		assert.Equal(t, approved*30/100, p.Pending)
		assert.Equal(t, approved*30/100, p.Full)
	}
}

func TestService_Stats_FirstErrorAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dashboard.NewMockRepository(ctrl)
	repo.EXPECT().ApplicationRows(gomock.Any()).Return(nil, nil)
	repo.EXPECT().PaymentRows(gomock.Any()).Return(nil, errors.New("db down"))
	// No CountReceipts or EstateRows expectations: the aggregation stops at
	// the first failing fetch.

	svc := dashboard.NewService(repo)

	_, err := svc.Stats(context.Background(), admin())
	assert.Error(t, err)
}
