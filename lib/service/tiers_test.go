package service

import (
	"testing"

	"github.com/juriscab/comptahub/common"
	"github.com/stretchr/testify/assert"
)

func TestNextTierCodeStartsSequence(t *testing.T) {
	code, err := nextTierCode(common.TierPrefixClient, "")
	assert.NoError(t, err)
	assert.Equal(t, "41100001", code)

	code, err = nextTierCode(common.TierPrefixSupplier, "")
	assert.NoError(t, err)
	assert.Equal(t, "40100001", code)
}

func TestNextTierCodeIncrements(t *testing.T) {
	code, err := nextTierCode(common.TierPrefixClient, "41100001")
	assert.NoError(t, err)
	assert.Equal(t, "41100002", code)

	code, err = nextTierCode(common.TierPrefixClient, "41100042")
	assert.NoError(t, err)
	assert.Equal(t, "41100043", code)
}

func TestNextTierCodeKeepsZeroPadding(t *testing.T) {
	code, err := nextTierCode(common.TierPrefixSupplier, "40100009")
	assert.NoError(t, err)
	assert.Equal(t, "40100010", code)
}

func TestNextTierCodeRejectsMalformedCode(t *testing.T) {
	_, err := nextTierCode(common.TierPrefixClient, "411abc")
	assert.Error(t, err)
}

func TestNextTierCodeStopsAtLastSuffix(t *testing.T) {
	code, err := nextTierCode(common.TierPrefixClient, "41199998")
	assert.NoError(t, err)
	assert.Equal(t, "41199999", code)

	// 99999 is the end of the range, a six digit suffix would sort
	// before its predecessors and break the sequence
	_, err = nextTierCode(common.TierPrefixClient, "41199999")
	assert.Error(t, err)
}

func TestTierPrefixMapsTypeToAccount(t *testing.T) {
	prefix, accountType, err := tierPrefix(common.TierTypeClient)
	assert.NoError(t, err)
	assert.Equal(t, common.TierPrefixClient, prefix)
	assert.Equal(t, common.AccountTypeAsset, accountType)

	prefix, accountType, err = tierPrefix(common.TierTypeSupplier)
	assert.NoError(t, err)
	assert.Equal(t, common.TierPrefixSupplier, prefix)
	assert.Equal(t, common.AccountTypeLiability, accountType)

	_, _, err = tierPrefix("bank")
	assert.Error(t, err)
}
