package domain

import "strconv"

// Action discriminates the structured command extracted from a prompt.
const (
	ActionTransfer     = "transfer"
	ActionSwap         = "swap"
	ActionQueryBalance = "query_balance"
	ActionError        = "error"
)

// validAssets is the whitelist of tickers the wallet can move.
var validAssets = map[string]struct{}{
	"SUI":   {},
	"USDC":  {},
	"USDT":  {},
	"CETUS": {},
	"WETH":  {},
}

// IsValidAsset reports whether the ticker is on the transfer whitelist.
func IsValidAsset(ticker string) bool {
	_, ok := validAssets[ticker]
	return ok
}

// StructuredAction is the JSON-shaped instruction extracted from a user
// command. It is a discriminated union over the Action constants; only
// the fields relevant to the chosen action are populated.
type StructuredAction struct {
	Action    string `json:"action"`
	Asset     string `json:"asset,omitempty"`
	FromAsset string `json:"fromAsset,omitempty"`
	ToAsset   string `json:"toAsset,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Reply     string `json:"reply,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ErrorAction builds the error variant with a human-readable message.
func ErrorAction(message string) StructuredAction {
	return StructuredAction{Action: ActionError, Message: message}
}

// Validate re-checks the model-enforced rules locally: asset whitelist
// membership and numeric amounts. The model is instructed to enforce
// both, but its output is untrusted; violations are downgraded to an
// error action instead of being passed through.
func (a StructuredAction) Validate() StructuredAction {
	switch a.Action {
	case ActionTransfer:
		if !IsValidAsset(a.Asset) {
			return ErrorAction("Asset " + a.Asset + " is not supported.")
		}
		if !isNumeric(a.Amount) {
			return ErrorAction("Amount " + a.Amount + " is not a valid number.")
		}
	case ActionSwap:
		if !IsValidAsset(a.FromAsset) || !IsValidAsset(a.ToAsset) {
			return ErrorAction("One of the swap assets is not supported.")
		}
		if !isNumeric(a.Amount) {
			return ErrorAction("Amount " + a.Amount + " is not a valid number.")
		}
	case ActionQueryBalance, ActionError:
		// Nothing to check.
	}
	return a
}

// isNumeric accepts a plain positive decimal: digits with an optional
// fractional part. Signs, exponents, NaN and Inf are rejected; so is zero,
// since no wallet action moves a zero amount.
func isNumeric(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f > 0
}

// Contact is a caller-supplied name/address pair used as a lookup table
// inside the command-extraction prompt. This service never mutates it.
type Contact struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}
