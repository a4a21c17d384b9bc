package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"recipeshare/domain"
	"recipeshare/internal/utils"
)

type (
	// GoogleVerifier exchanges a Google access token for the profile behind it.
	GoogleVerifier interface {
		FetchUserInfo(ctx context.Context, accessToken string) (domain.GoogleUserInfo, error)
	}

	googleVerifier struct {
		httpClient *http.Client
		endpoint   string
	}
)

func NewGoogleVerifier() GoogleVerifier {
	return &googleVerifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   utils.GetConfig("GOOGLE_USERINFO_URL"),
	}
}

func (g *googleVerifier) FetchUserInfo(ctx context.Context, accessToken string) (domain.GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint, nil)
	if err != nil {
		return domain.GoogleUserInfo{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domain.GoogleUserInfo{}, domain.ErrGoogleExchangeFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.GoogleUserInfo{}, domain.ErrGoogleExchangeFailed
	}

	var info domain.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return domain.GoogleUserInfo{}, domain.ErrGoogleExchangeFailed
	}
	return info, nil
}
