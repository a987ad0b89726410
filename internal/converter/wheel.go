package converter

import (
	"vault_backend/internal/api/dto/admin"
	"vault_backend/internal/api/dto/wheel"
	"vault_backend/internal/model"
)

func ToReward(o model.Outcome) wheel.Reward {
	return wheel.Reward{
		ID:      o.ID,
		Label:   o.Label,
		Type:    string(o.Kind),
		Value:   o.Amount,
		Weight:  o.Weight,
		Premium: o.Premium,
	}
}

func ToOutcome(r wheel.Reward) model.Outcome {
	return model.Outcome{
		ID:      r.ID,
		Label:   r.Label,
		Kind:    model.OutcomeKind(r.Type),
		Amount:  r.Value,
		Weight:  r.Weight,
		Premium: r.Premium,
	}
}

func ToConfigResponse(cfg *model.WheelConfig) wheel.ConfigResponse {
	rewards := make([]wheel.Reward, len(cfg.Outcomes))
	for i, o := range cfg.Outcomes {
		rewards[i] = ToReward(o)
	}
	return wheel.ConfigResponse{
		Rewards:  rewards,
		Settings: wheel.Settings{DailySpinLimit: cfg.DailyLimit},
	}
}

// ToConfigPatch Отсутствующий список наград (null) не меняет секторы
func ToConfigPatch(req admin.UpdateRewardsRequest) model.WheelConfigPatch {
	patch := model.WheelConfigPatch{DailyLimit: req.DailySpinLimit}
	if req.UpdatedRewards != nil {
		patch.Outcomes = make([]model.Outcome, len(req.UpdatedRewards))
		for i, r := range req.UpdatedRewards {
			patch.Outcomes[i] = ToOutcome(r)
		}
	}
	return patch
}

func ToSpinResponse(res *model.SpinResult) wheel.SpinResponse {
	return wheel.SpinResponse{
		Outcome:           ToReward(res.Outcome),
		OutcomeIndex:      res.OutcomeIndex,
		NewBalance:        res.Balance,
		SpinCount:         res.State.SpinCount,
		WindowStart:       toMillis(res.State.WindowStart),
		LastSpinTimestamp: toMillis(res.State.LastSpinAt),
	}
}

func ToStatusResponse(st *model.SpinStatus) wheel.StatusResponse {
	out := wheel.StatusResponse{
		DailySpinLimit:    st.DailyLimit,
		SpinsLeft:         st.SpinsLeft,
		SpinCount:         st.State.SpinCount,
		SpinWindowStart:   toMillis(st.State.WindowStart),
		LastSpinTimestamp: toMillis(st.State.LastSpinAt),
		Balance:           st.Balance,
	}
	if st.HasCooldown {
		ms := st.Countdown.Milliseconds()
		out.CountdownMs = &ms
	}
	return out
}

func ToHistoryResponse(records []model.SpinRecord) wheel.HistoryResponse {
	spins := make([]wheel.HistoryItem, len(records))
	for i, r := range records {
		spins[i] = wheel.HistoryItem{
			ID:           r.ID,
			RewardID:     r.OutcomeID,
			Label:        r.Label,
			Type:         string(r.Kind),
			Value:        r.Amount,
			BalanceAfter: r.BalanceAfter,
			Timestamp:    toMillis(r.CreatedAt),
		}
	}
	return wheel.HistoryResponse{Spins: spins}
}
