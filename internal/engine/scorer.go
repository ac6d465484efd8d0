// Package engine implements the reward recommendation engine: a pure,
// stateless scoring and ranking of payment instruments for a single
// transaction. It never mutates its inputs and performs no I/O.
package engine

import (
	"fmt"
	"strings"

	"github.com/crediwise/crediwise/internal/models"
)

// milestoneProximity is the fraction of a milestone threshold within which
// an "almost there" alert is raised.
const milestoneProximity = 0.15

// Score computes the estimated INR reward value for a single instrument
// given a transaction. The instrument's state is read as a snapshot; the
// caller guarantees amount > 0 and a valid category.
func Score(inst *models.PaymentInstrument, amount float64, category models.Category) models.ScoringResult {
	rule := selectRule(inst.RewardRules, category)
	if rule == nil {
		return models.ScoringResult{
			EffectiveRate: "0%",
			Explanation:   fmt.Sprintf("No reward rule configured for %s or general category.", category),
		}
	}

	if amount < rule.MinTransactionAmount {
		return models.ScoringResult{
			EffectiveRate: "0%",
			MinTxFailed:   true,
			Explanation:   fmt.Sprintf("Minimum transaction of ₹%g required. No reward for this transaction.", rule.MinTransactionAmount),
			AppliedRule:   rule,
		}
	}

	raw := amount * (rule.RatePercent / 100) * rule.PointValueINR

	// Rewards already earned this month are approximated from cumulative
	// spend at the current rate; the engine keeps no accrual ledger.
	alreadyEarned := inst.CurrentMonthSpend * (rule.RatePercent / 100) * rule.PointValueINR

	capReached := false
	estimated := raw
	switch {
	case rule.Cap > 0 && alreadyEarned >= rule.Cap:
		capReached = true
		estimated = 0
	case rule.Cap > 0 && alreadyEarned+raw > rule.Cap:
		estimated = rule.Cap - alreadyEarned
		if estimated < 0 {
			estimated = 0
		}
	}

	result := models.ScoringResult{
		EstimatedReward: estimated,
		EffectiveRate:   fmt.Sprintf("%g%%", rule.RatePercent),
		CapReached:      capReached,
		Explanation:     explain(rule, category, raw, estimated, capReached),
		AppliedRule:     rule,
	}

	// Milestone bonuses are an independent reward stream: a crossing adds
	// its bonus even on top of a cap-limited reward.
	alert, bonus := checkMilestones(inst, amount)
	result.MilestoneAlert = alert
	result.EstimatedReward += bonus

	return result
}

// selectRule returns the first rule matching the category, falling back to
// the first general rule. A linear scan preserves first-declared-wins when
// overlapping rules exist for the same category.
func selectRule(rules []models.RewardRule, category models.Category) *models.RewardRule {
	for i := range rules {
		if rules[i].Category == category {
			return &rules[i]
		}
	}
	for i := range rules {
		if rules[i].Category == models.CategoryGeneral {
			return &rules[i]
		}
	}
	return nil
}

func explain(rule *models.RewardRule, category models.Category, raw, estimated float64, capReached bool) string {
	label := rewardLabel(rule.RewardType)
	switch {
	case capReached:
		return fmt.Sprintf("Reward cap of ₹%g reached this month. No additional %s earned.", rule.Cap, label)
	case estimated < raw:
		return fmt.Sprintf("%g%% %s on %s. Partial reward, cap nearly reached. Est. ₹%.2f back.",
			rule.RatePercent, label, capitalize(category), estimated)
	case rule.RewardType == models.RewardCashback || rule.RewardType == "":
		return fmt.Sprintf("%g%% cashback on %s. Est. ₹%.2f back.",
			rule.RatePercent, capitalize(category), estimated)
	default:
		return fmt.Sprintf("%g%% %s on %s (₹%g/pt). Est. ₹%.2f value.",
			rule.RatePercent, label, capitalize(category), rule.PointValueINR, estimated)
	}
}

// checkMilestones walks the ordered milestone list. A threshold crossed by
// this transaction wins immediately and its bonus is returned; otherwise
// the nearest upcoming threshold within the proximity window produces an
// "almost there" alert with no bonus.
func checkMilestones(inst *models.PaymentInstrument, amount float64) (alert string, bonus float64) {
	totalAfterTx := inst.CurrentMonthSpend + amount

	nearestGap := 0.0
	for _, m := range inst.MilestoneIncentives {
		if inst.CurrentMonthSpend < m.SpendThreshold && totalAfterTx >= m.SpendThreshold {
			return fmt.Sprintf("This transaction unlocks a ₹%g milestone bonus!", m.BonusValue), m.BonusValue
		}
		if totalAfterTx < m.SpendThreshold {
			gap := m.SpendThreshold - totalAfterTx
			if gap <= m.SpendThreshold*milestoneProximity && (alert == "" || gap < nearestGap) {
				alert = fmt.Sprintf("Spend ₹%.0f more to unlock a ₹%g bonus!", gap, m.BonusValue)
				nearestGap = gap
			}
		}
	}
	return alert, 0
}

func rewardLabel(rewardType string) string {
	switch rewardType {
	case models.RewardPoints:
		return "points"
	case models.RewardMiles:
		return "miles"
	default:
		return "cashback"
	}
}

func capitalize(c models.Category) string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
