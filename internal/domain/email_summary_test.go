package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryStatus_SummaryField(t *testing.T) {
	for _, status := range DeliveryStatuses {
		field := status.SummaryField()
		assert.True(t, field.IsValid(), string(status))
	}
	assert.Equal(t, SummaryFieldHardFail, DeliveryStatusHardFail.SummaryField())
	assert.Equal(t, SummaryField(""), DeliveryStatus("queued").SummaryField())
}

func TestDeliveryStatus_IsFailure(t *testing.T) {
	failures := map[DeliveryStatus]bool{
		DeliveryStatusSent:     false,
		DeliveryStatusHardFail: true,
		DeliveryStatusSoftFail: true,
		DeliveryStatusBounce:   true,
		DeliveryStatusError:    true,
		DeliveryStatusHeld:     false,
		DeliveryStatusDelayed:  false,
	}
	for status, expected := range failures {
		assert.Equal(t, expected, status.IsFailure(), string(status))
	}
}

func TestParseDeliveryStatus(t *testing.T) {
	status, ok := ParseDeliveryStatus("bounce")
	assert.True(t, ok)
	assert.Equal(t, DeliveryStatusBounce, status)

	_, ok = ParseDeliveryStatus("Bounce")
	assert.False(t, ok)
}

func TestSummaryField_IsValid(t *testing.T) {
	assert.True(t, SummaryFieldClicked.IsValid())
	assert.False(t, SummaryField("total_sent; DROP TABLE emails").IsValid())
}

func TestSummaryCounts_Arithmetic(t *testing.T) {
	var c SummaryCounts
	c.Increment(SummaryFieldSent)
	c.Increment(SummaryFieldSent)
	c.Increment(SummaryFieldSoftFail)
	c.Increment(SummaryFieldLoaded)
	c.Increment(SummaryField("bogus"))

	assert.Equal(t, int64(2), c.Get(SummaryFieldSent))
	assert.Equal(t, int64(1), c.Get(SummaryFieldSoftFail))
	assert.Equal(t, int64(0), c.Get(SummaryField("bogus")))
	assert.Equal(t, int64(1), c.TotalFailed())
	assert.Equal(t, int64(1), c.TotalDelivered())

	c.Add(SummaryCounts{TotalSent: 3, TotalClicked: 2})
	assert.Equal(t, int64(5), c.TotalSent)
	assert.Equal(t, int64(2), c.TotalClicked)
}

func TestSummaryCounts_DeliveredFlooredAtZero(t *testing.T) {
	// softfail then bounce for one email that never reported sent
	c := SummaryCounts{TotalSent: 1, TotalSoftFail: 1, TotalBounce: 1}
	assert.Equal(t, int64(2), c.TotalFailed())
	assert.Equal(t, int64(0), c.TotalDelivered())
}

func TestSummaryCounts_Diff(t *testing.T) {
	stored := SummaryCounts{TotalSent: 10, TotalLoaded: 4, TotalClicked: 1}
	actual := SummaryCounts{TotalSent: 9, TotalLoaded: 4, TotalClicked: 2}

	assert.Equal(t, []SummaryField{SummaryFieldSent, SummaryFieldClicked}, stored.Diff(actual))
	assert.Empty(t, stored.Diff(stored))
}
