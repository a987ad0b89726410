package converter

import (
	"vault_backend/internal/api/dto/account"
	"vault_backend/internal/api/dto/auth"
	"vault_backend/internal/model"
)

func ToProfile(u *model.User) account.Profile {
	return account.Profile{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Balance:           u.Balance,
		IsAdmin:           u.IsAdmin,
		SpinCount:         u.Spin.SpinCount,
		SpinWindowStart:   toMillis(u.Spin.WindowStart),
		LastSpinTimestamp: toMillis(u.Spin.LastSpinAt),
	}
}

func ToProfiles(users []model.User) []account.Profile {
	out := make([]account.Profile, len(users))
	for i := range users {
		out[i] = ToProfile(&users[i])
	}
	return out
}

func ToRegistration(req auth.RegisterRequest) model.Registration {
	return model.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		OTP:      req.OTP,
	}
}

func ToAuthResponse(data *model.AuthData) auth.AuthResponse {
	return auth.AuthResponse{
		AccessToken: data.AccessToken,
		User:        ToProfile(data.User),
	}
}
