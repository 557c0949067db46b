// Package license implements the tier system gating pro features.
//
// Keys look like AAUD-XXXX-XXXX-XXXX: the AAUD prefix, a two-group body, and
// a check segment derived from the body. Keys are discovered from the
// AGENT_AUDIT_LICENSE environment variable first, then from well-known file
// locations. Anything invalid silently resolves to the free tier.
package license

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Tier is a licensing level.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// Feature names used by the gate.
const (
	FeatureEstimate       = "estimate"
	FeatureLint           = "lint"
	FeatureCompare        = "compare"
	FeatureMarkdownExport = "markdown_export"
)

// ProFeatures are the features exclusive to the pro tier.
var ProFeatures = []string{FeatureCompare, FeatureMarkdownExport}

// TierInfo describes a tier's feature set. Features preserves display order.
type TierInfo struct {
	Name       string
	PriceLabel string
	Features   []string
}

// HasFeature reports whether the tier includes a feature.
func (t TierInfo) HasFeature(feature string) bool {
	for _, f := range t.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// TierDefinitions maps each tier to its feature set.
var TierDefinitions = map[Tier]TierInfo{
	TierFree: {
		Name:       "Free",
		PriceLabel: "free",
		Features:   []string{FeatureEstimate, FeatureLint},
	},
	TierPro: {
		Name:       "Pro",
		PriceLabel: "$8/mo",
		Features:   []string{FeatureEstimate, FeatureLint, FeatureCompare, FeatureMarkdownExport},
	},
}

// checksumSalt binds check segments to this product's key space.
const checksumSalt = "agent-audit-v1:"

// Info is the resolved license state for the current process.
type Info struct {
	Tier       Tier
	Valid      bool
	LicenseKey string
}

// licenseLocations returns the file paths probed for a key, in order.
func licenseLocations() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".agent-audit-license"))
	}
	paths = append(paths, ".agent-audit-license")
	return paths
}

// FindLicenseKey locates a license key: the AGENT_AUDIT_LICENSE environment
// variable wins, then the first readable license file. Returns "" when no key
// is found.
func FindLicenseKey() string {
	if key := strings.TrimSpace(os.Getenv("AGENT_AUDIT_LICENSE")); key != "" {
		return key
	}
	for _, path := range licenseLocations() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if key := strings.TrimSpace(string(data)); key != "" {
			return key
		}
	}
	return ""
}

// ValidateKeyFormat checks the AAUD-XXXX-XXXX-XXXX shape: four dash-separated
// groups of four uppercase alphanumeric characters, the first being AAUD.
func ValidateKeyFormat(key string) bool {
	key = strings.TrimSpace(key)
	parts := strings.Split(key, "-")
	if len(parts) != 4 {
		return false
	}
	if parts[0] != "AAUD" {
		return false
	}
	for _, part := range parts[1:] {
		if len(part) != 4 {
			return false
		}
		for _, c := range part {
			if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
				return false
			}
		}
	}
	return true
}

// ComputeCheckSegment derives the check segment for a key body (the two
// middle groups joined by a dash).
func ComputeCheckSegment(body string) string {
	sum := sha256.Sum256([]byte(checksumSalt + body))
	return strings.ToUpper(hex.EncodeToString(sum[:2]))
}

// ValidateKeyChecksum verifies that a key's final group matches the check
// segment computed over its body.
func ValidateKeyChecksum(key string) bool {
	key = strings.TrimSpace(key)
	if !ValidateKeyFormat(key) {
		return false
	}
	parts := strings.Split(key, "-")
	body := parts[1] + "-" + parts[2]
	return parts[3] == ComputeCheckSegment(body)
}

// GetInfo resolves the current license state. A missing or invalid key means
// the free tier.
func GetInfo() Info {
	key := FindLicenseKey()
	if key == "" {
		return Info{Tier: TierFree}
	}
	if !ValidateKeyChecksum(key) {
		return Info{Tier: TierFree}
	}
	return Info{Tier: TierPro, Valid: true, LicenseKey: key}
}

// HasFeature reports whether the current tier includes a feature.
func HasFeature(feature string) bool {
	return TierDefinitions[GetInfo().Tier].HasFeature(feature)
}

// IsPro reports whether a valid pro license is active.
func IsPro() bool {
	return GetInfo().Tier == TierPro
}

// UpgradeMessage is shown when a free-tier user invokes a pro feature.
func UpgradeMessage(feature string) string {
	return fmt.Sprintf(
		"'%s' is a Pro feature ($8/mo).\n"+
			"Get a license at https://agent-audit.dev/pricing and set the\n"+
			"AGENT_AUDIT_LICENSE environment variable with your key.",
		feature)
}
