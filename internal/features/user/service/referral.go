package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/url"
	"strings"
)

// referralPrefix marks a referral token inside the launch payload's
// start_param.
const referralPrefix = "ref_"

// generateReferralCode returns a fresh code of the form REF-XXXXXXXX where
// X is an uppercase hex digit. Global uniqueness is enforced by the
// directory's constraint, not here.
func generateReferralCode() string {
	b := make([]byte, 4)
	// rand.Read on crypto/rand never fails on supported platforms.
	_, _ = rand.Read(b)
	return "REF-" + strings.ToUpper(hex.EncodeToString(b))
}

// resolveReferral extracts a referral token from the raw launch payload and
// resolves it to an existing user's id. Absence of a referrer is a normal
// outcome: any parse failure, missing parameter, or unknown code yields nil.
func (s *userService) resolveReferral(ctx context.Context, rawInitData string) *string {
	params, err := url.ParseQuery(rawInitData)
	if err != nil {
		return nil
	}

	startParam := params.Get("start_param")
	if !strings.HasPrefix(startParam, referralPrefix) {
		return nil
	}

	code := strings.TrimPrefix(startParam, referralPrefix)
	if code == "" {
		return nil
	}

	referrer, err := s.repo.GetByReferralCode(ctx, code)
	if err != nil {
		return nil
	}
	return &referrer.ID
}
