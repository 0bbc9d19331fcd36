package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"central/services/chat"

	"go.uber.org/zap"
)

// ErrNoData is returned when no historical logs exist to score against.
var ErrNoData = errors.New("no recommendation data available")

const maxLogsScored = 500

// draftFeatures mirrors the features blob written when a reservation is
// confirmed.
type draftFeatures struct {
	PartySize    int    `json:"personas"`
	Restrictions string `json:"restricciones"`
}

// Predict scores recent recommendation logs against the draft features and
// returns the experience id with the highest accumulated score.
func (s *DefaultRecommendService) Predict(ctx context.Context, partySize int, restrictions string) (int, error) {
	logs, err := s.Logs.ListLogs(ctx, maxLogsScored)
	if err != nil {
		return 0, err
	}
	if len(logs) == 0 {
		return 0, ErrNoData
	}

	want := restrictionTokens(restrictions)
	scores := make(map[int]float64)
	for _, entry := range logs {
		if entry.ExperienceID == 0 {
			continue
		}
		var feats draftFeatures
		if entry.FeaturesJSON != "" {
			if err := json.Unmarshal([]byte(entry.FeaturesJSON), &feats); err != nil {
				s.Logger.Debug("skipping malformed recommendation log",
					zap.String("id", entry.ID), zap.Error(err))
				continue
			}
		}
		scores[entry.ExperienceID] += similarity(partySize, want, feats)
	}
	if len(scores) == 0 {
		return 0, ErrNoData
	}

	best, bestScore := 0, -1.0
	for id, score := range scores {
		if score > bestScore || (score == bestScore && id < best) {
			best, bestScore = id, score
		}
	}
	return best, nil
}

// similarity blends party-size closeness with restriction token overlap.
func similarity(partySize int, want map[string]bool, feats draftFeatures) float64 {
	score := 0.0
	if partySize > 0 && feats.PartySize > 0 {
		diff := partySize - feats.PartySize
		if diff < 0 {
			diff = -diff
		}
		score += 1.0 / float64(1+diff)
	}
	have := restrictionTokens(feats.Restrictions)
	if len(want) > 0 && len(have) > 0 {
		inter, union := 0, len(want)
		for tok := range have {
			if want[tok] {
				inter++
			} else {
				union++
			}
		}
		score += float64(inter) / float64(union)
	}
	return score
}

func restrictionTokens(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ',' || r == '/' || r == '|' || r == '.'
	}) {
		tok := chat.Normalize(strings.TrimSpace(part))
		if tok != "" {
			tokens[tok] = true
		}
	}
	return tokens
}
