package analytics

import (
	"fmt"

	"jobtrack-backend/internal/model"
)

// Insights turns metrics into human-readable observations. The rules are a
// fixed decision table evaluated in order, so the output is deterministic
// for a given Metrics value.
func Insights(m Metrics) []string {
	if m.TotalApplications == 0 {
		return []string{"No applications tracked yet. Add your first application to start seeing trends."}
	}

	insights := []string{}

	if m.SuccessRate > 20 {
		insights = append(insights, fmt.Sprintf(
			"Excellent work! %.1f%% of your applications led to an offer.", m.SuccessRate))
	} else if m.SuccessRate < 5 && m.TotalApplications >= 10 {
		insights = append(insights, fmt.Sprintf(
			"Your offer rate is %.1f%%. Consider targeting roles that better match your experience.", m.SuccessRate))
	}

	if m.ResponseRate < 30 && m.TotalApplications >= 5 {
		insights = append(insights, fmt.Sprintf(
			"Only %.1f%% of your applications got a response. Tailoring your resume per role may help.", m.ResponseRate))
	} else if m.ResponseRate >= 60 {
		insights = append(insights, fmt.Sprintf(
			"Strong response rate: %.1f%% of your applications moved past the Applied stage.", m.ResponseRate))
	}

	if len(m.WeeklyVelocity) >= 2 {
		last := m.WeeklyVelocity[len(m.WeeklyVelocity)-1]
		prev := m.WeeklyVelocity[len(m.WeeklyVelocity)-2]
		if last.Count > prev.Count {
			insights = append(insights, fmt.Sprintf(
				"Momentum is up: %d applications this week versus %d the week before.", last.Count, prev.Count))
		} else if last.Count < prev.Count {
			insights = append(insights, fmt.Sprintf(
				"Application pace slowed: %d this week versus %d the week before.", last.Count, prev.Count))
		}
	}

	if stage, rate, ok := weakestStage(m.FunnelData); ok {
		insights = append(insights, fmt.Sprintf(
			"Your biggest drop-off is at the %s stage (%.1f%% conversion). That is where preparation pays off most.", stage, rate))
	}

	if interviewing := m.StatusDistribution[model.StatusPhoneScreen] +
		m.StatusDistribution[model.StatusTechnicalInterview] +
		m.StatusDistribution[model.StatusFinalRound]; interviewing > 0 {
		insights = append(insights, fmt.Sprintf(
			"You have %d application(s) in active interview stages. Keep notes fresh for each one.", interviewing))
	}

	return insights
}

// weakestStage finds the funnel stage past Applied with the lowest non-zero
// opportunity: the smallest conversion rate among stages whose previous stage
// had any records.
func weakestStage(stages []FunnelStage) (string, float64, bool) {
	found := false
	var name string
	var worst float64
	previousCount := -1
	for _, stage := range stages {
		if stage.Stage == model.StatusApplied {
			previousCount = stage.Count
			continue
		}
		if previousCount > 0 {
			if !found || stage.ConversionRate < worst {
				found = true
				name = stage.Stage
				worst = stage.ConversionRate
			}
		}
		previousCount = stage.Count
	}
	return name, worst, found
}
