package validation

import (
	"encoding/base64"
	"strings"

	validation "github.com/jellydator/validation"
)

// keeperSchemes are the gocloud.dev secrets drivers linked into the binary.
var keeperSchemes = []string{"awskms", "azurekeyvault", "gcpkms", "hashivault", "base64key"}

// Base64 accepts standard base64 with padding, as produced by the KMS wrapper.
var Base64 = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := base64.StdEncoding.DecodeString(s)
		return err == nil
	},
	validation.NewError("validation_base64", "must be valid base64-encoded data"),
)

// KeeperURI accepts a secrets keeper URI whose scheme has a registered driver.
var KeeperURI = validation.NewStringRuleWithError(
	func(s string) bool {
		scheme, rest, ok := strings.Cut(s, "://")
		if !ok || rest == "" {
			return false
		}
		for _, known := range keeperSchemes {
			if scheme == known {
				return true
			}
		}
		return false
	},
	validation.NewError(
		"validation_keeper_uri",
		"must be a keeper URI (awskms://, azurekeyvault://, gcpkms://, hashivault:// or base64key://)",
	),
)
