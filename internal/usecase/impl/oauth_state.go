package impl

import (
	"net/netip"
	"strings"

	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
)

// oauthState is the client context smuggled through the provider round trip as "<ip>_<location>[_<provider>]".
type oauthState struct {
	IP       string
	Location string
	Provider entity.Provider
}

// parseOAuthState splits state on underscores. The first part must be an IP address. A trailing
// supported provider name is taken as the provider; everything between the ip and the provider is the location.
func parseOAuthState(state string) (oauthState, error) {
	parts := strings.Split(state, "_")
	if len(parts) < 2 || parts[0] == "" {
		return oauthState{}, domainerrors.ErrInvalidState.WithDetails(state)
	}
	if _, err := netip.ParseAddr(parts[0]); err != nil {
		return oauthState{}, domainerrors.ErrInvalidState.WithDetails("ip")
	}

	parsed := oauthState{IP: parts[0]}
	rest := parts[1:]
	if len(rest) > 1 {
		if provider, ok := entity.ParseProvider(rest[len(rest)-1]); ok {
			parsed.Provider = provider
			rest = rest[:len(rest)-1]
		}
	}
	parsed.Location = strings.Join(rest, "_")

	return parsed, nil
}

const naverUserIDLength = 29

// naverUserID derives a login handle from a Naver account id.
func naverUserID(externalID string) string {
	id := strings.NewReplacer("-", "", "_", "").Replace(externalID)
	id = strings.ToLower(id)
	if len(id) > naverUserIDLength {
		id = id[:naverUserIDLength]
	}

	return id
}
