package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/weekroster/weekroster-api-go/pkg/models"
)

// envelopeVersion is bumped whenever the encoded shape changes
const envelopeVersion = 1

// Encode packs a roster, its settings and a computed schedule into a
// URL-safe opaque string for link-based sharing.
func Encode(roster []models.Person, settings models.Settings, sched models.Schedule) (string, error) {
	env := models.ShareEnvelope{
		Version:  envelopeVersion,
		Roster:   roster,
		Settings: settings,
		Schedule: sched,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("share: encode: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode restores a shared blob. The version is checked so an old client
// cannot silently misread a newer shape.
func Decode(blob string) (*models.ShareEnvelope, error) {
	data, err := base64.RawURLEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("share: invalid encoding: %w", err)
	}
	var env models.ShareEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("share: invalid payload: %w", err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("share: unsupported version %d", env.Version)
	}
	return &env, nil
}
