package types

import (
	"testing"

	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceLimit(t *testing.T) {
	t.Run("unlimited sentinel", func(t *testing.T) {
		for _, s := range []string{"unlimited", "Unlimited", "UNLIMITED", " unlimited "} {
			limit, err := ParseResourceLimit(s)
			require.NoError(t, err, s)
			assert.True(t, limit.Unlimited)
		}
	})

	t.Run("integer bound", func(t *testing.T) {
		limit, err := ParseResourceLimit("10")
		require.NoError(t, err)
		assert.False(t, limit.Unlimited)
		assert.Equal(t, int64(10), limit.Bound)
	})

	t.Run("zero bound", func(t *testing.T) {
		limit, err := ParseResourceLimit("0")
		require.NoError(t, err)
		assert.Equal(t, int64(0), limit.Bound)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseResourceLimit("lots")
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("negative rejected", func(t *testing.T) {
		_, err := ParseResourceLimit("-1")
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestResourceLimitAllows(t *testing.T) {
	bounded := ResourceLimit{Bound: 10}
	assert.True(t, bounded.Allows(9, 1))
	assert.False(t, bounded.Allows(10, 1))
	assert.True(t, bounded.Allows(0, 10))
	assert.False(t, bounded.Allows(0, 11))

	unlimited := ResourceLimit{Unlimited: true}
	assert.True(t, unlimited.Allows(1_000_000, 1_000_000))
}

func TestClassifyPlanChange(t *testing.T) {
	assert.Equal(t, PlanChangeTypeUpgrade, ClassifyPlanChange(PlanTypeBasic, PlanTypePremium))
	assert.Equal(t, PlanChangeTypeDowngrade, ClassifyPlanChange(PlanTypeEnterprise, PlanTypeFree))
	assert.Equal(t, PlanChangeTypeLateral, ClassifyPlanChange(PlanTypeBasic, PlanTypeBasic))
}
