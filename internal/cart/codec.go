package cart

import (
	"encoding/json"
	"fmt"
)

// schemaVersion guards stored cart records. Decoding a record written by a
// different schema fails, and the store then treats the session's cart as
// empty rather than guessing at field meanings.
const schemaVersion = 1

type record struct {
	SchemaVersion int    `json:"schema_version"`
	Lines         []Line `json:"lines"`
	CheckoutToken string `json:"checkout_token,omitempty"`
}

func Encode(c Cart) (string, error) {
	payload, err := json.Marshal(record{
		SchemaVersion: schemaVersion,
		Lines:         c.Lines,
		CheckoutToken: c.CheckoutToken,
	})
	if err != nil {
		return "", fmt.Errorf("encoding cart record: %w", err)
	}
	return string(payload), nil
}

func Decode(raw string) (Cart, error) {
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Cart{}, fmt.Errorf("decoding cart record: %w", err)
	}
	if rec.SchemaVersion != schemaVersion {
		return Cart{}, fmt.Errorf("cart record schema %d is not supported", rec.SchemaVersion)
	}
	return Cart{Lines: rec.Lines, CheckoutToken: rec.CheckoutToken}, nil
}
