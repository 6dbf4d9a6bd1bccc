package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/db/models"
	"github.com/uptrace/bun"
)

// tierCodeAttempts bounds the unique-constraint retry loop when two
// callers generate the same next code at once.
const tierCodeAttempts = 3

func tierPrefix(tierType string) (prefix, accountType string, err error) {
	switch tierType {
	case common.TierTypeClient:
		return common.TierPrefixClient, common.AccountTypeAsset, nil
	case common.TierTypeSupplier:
		return common.TierPrefixSupplier, common.AccountTypeLiability, nil
	}
	return "", "", fmt.Errorf("invalid tier type %q", tierType)
}

// maxTierSuffix is the last assignable generated suffix under a prefix.
const maxTierSuffix = 99999

// nextTierCode derives the successor of the given code under a prefix:
// parse the 5-digit suffix, increment, zero-pad. An empty code starts the
// sequence at 00001.
func nextTierCode(prefix, maxCode string) (string, error) {
	suffix := 0
	if maxCode != "" {
		parsed, err := strconv.Atoi(strings.TrimPrefix(maxCode, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed tier code %s: %v", maxCode, err)
		}
		suffix = parsed
	}
	if suffix >= maxTierSuffix {
		return "", fmt.Errorf("tier codes for prefix %s exhausted", prefix)
	}
	return fmt.Sprintf("%s%05d", prefix, suffix+1), nil
}

// CreateTier opens a client (411xxxxx receivable) or supplier (401xxxxx
// payable) sub-account. Without a custom code the next free code is
// generated; a concurrent insert of the same code trips the unique
// constraint and the generation is retried.
func (svc *ComptaService) CreateTier(ctx context.Context, name, tierType, customCode string) (*models.Account, error) {
	prefix, accountType, err := tierPrefix(tierType)
	if err != nil {
		return nil, err
	}

	if customCode != "" {
		if !strings.HasPrefix(customCode, prefix) {
			return nil, fmt.Errorf("tier code %s: %w", customCode, ErrInvalidPrefix)
		}
		return svc.CreateAccount(ctx, customCode, name, accountType)
	}

	for attempt := 0; attempt < tierCodeAttempts; attempt++ {
		maxCode, err := svc.maxTierCode(ctx, prefix)
		if err != nil {
			return nil, err
		}
		code, err := nextTierCode(prefix, maxCode)
		if err != nil {
			return nil, err
		}
		account, err := svc.CreateAccount(ctx, code, name, accountType)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, ErrDuplicateCode) {
			return nil, err
		}
		svc.Logger.Debugf("Tier code %s taken by a concurrent create, retrying", code)
	}
	return nil, fmt.Errorf("tier code generation for prefix %s: %w", prefix, ErrDuplicateCode)
}

func (svc *ComptaService) maxTierCode(ctx context.Context, prefix string) (string, error) {
	var code string
	// only generated-shape codes feed the sequence: the bare collective
	// account (e.g. the seeded 411) and free-form custom codes like
	// 411DUPONT must not become the max
	err := svc.DB.NewSelect().
		Model((*models.Account)(nil)).
		Column("code").
		Where("code ~ ?", "^"+prefix+"[0-9]{5}$").
		Order("code DESC").
		Limit(1).
		Scan(ctx, &code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return code, nil
}

// ListTiers returns the tier sub-accounts of one type, or of both types
// when tierType is empty. Collective accounts like the bare 411 are not
// tiers and are excluded.
func (svc *ComptaService) ListTiers(ctx context.Context, tierType string) ([]models.Account, error) {
	prefixes := []string{common.TierPrefixClient, common.TierPrefixSupplier}
	if tierType != "" {
		prefix, _, err := tierPrefix(tierType)
		if err != nil {
			return nil, err
		}
		prefixes = []string{prefix}
	}
	accounts := []models.Account{}
	query := svc.DB.NewSelect().Model(&accounts)
	query.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, prefix := range prefixes {
			prefix := prefix
			q = q.WhereGroup(" OR ", func(sub *bun.SelectQuery) *bun.SelectQuery {
				return sub.
					Where("code LIKE ?", prefix+"%").
					Where("length(code) > ?", len(prefix))
			})
		}
		return q
	})
	err := query.Order("code ASC").Scan(ctx)
	return accounts, err
}
