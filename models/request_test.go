package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusClaimed.IsTerminal())
	assert.False(t, StatusSubmitted.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
}

func TestKindIsValid(t *testing.T) {
	assert.True(t, KindFirstTimeMint.IsValid())
	assert.True(t, KindAnnualMint.IsValid())
	assert.True(t, KindRewardPayout.IsValid())
	assert.True(t, KindBatchBurn.IsValid())
	assert.False(t, Kind("").IsValid())
	assert.False(t, Kind("airdrop").IsValid())
}

func TestKindIsBatchable(t *testing.T) {
	assert.False(t, KindFirstTimeMint.IsBatchable())
	assert.False(t, KindAnnualMint.IsBatchable())
	assert.True(t, KindRewardPayout.IsBatchable())
	assert.True(t, KindBatchBurn.IsBatchable())
}

func TestKindIsOneShot(t *testing.T) {
	assert.True(t, KindFirstTimeMint.IsOneShot())
	assert.True(t, KindAnnualMint.IsOneShot())
	assert.False(t, KindRewardPayout.IsOneShot())
	assert.False(t, KindBatchBurn.IsOneShot())
}

func TestDefaultPriority(t *testing.T) {
	assert.Equal(t, PriorityFirstTimeMint, DefaultPriority(KindFirstTimeMint))
	assert.Equal(t, PriorityAnnualMint, DefaultPriority(KindAnnualMint))
	assert.Equal(t, PriorityRewardPayout, DefaultPriority(KindRewardPayout))
	assert.Equal(t, PriorityBatchBurn, DefaultPriority(KindBatchBurn))

	assert.Less(t, DefaultPriority(KindFirstTimeMint), DefaultPriority(KindAnnualMint))
	assert.Less(t, DefaultPriority(KindAnnualMint), DefaultPriority(KindRewardPayout))
	assert.Less(t, DefaultPriority(KindRewardPayout), DefaultPriority(KindBatchBurn))
}

func TestBatchReportAdd(t *testing.T) {
	report := BatchReport{}
	report.Add(BatchReport{Processed: 3, Completed: 2, Failed: 1})
	report.Add(BatchReport{Processed: 2, Requeued: 2})

	assert.Equal(t, int64(5), report.Processed)
	assert.Equal(t, int64(2), report.Completed)
	assert.Equal(t, int64(1), report.Failed)
	assert.Equal(t, int64(2), report.Requeued)
}
