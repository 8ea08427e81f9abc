package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var referenceNow = time.Now

// GenerateDepositReference builds the user-facing reference for a deposit:
// "VC" + unix milliseconds + last six characters of the user id, uppercased.
// Unique per user+instant; used by support staff to match deposits by hand.
func GenerateDepositReference(userID uuid.UUID) string {
	id := userID.String()
	suffix := strings.ToUpper(strings.ReplaceAll(id[len(id)-6:], "-", ""))
	return fmt.Sprintf("VC%d%s", referenceNow().UnixMilli(), suffix)
}

// GenerateTransactionReference builds a ledger transaction reference
func GenerateTransactionReference() string {
	return fmt.Sprintf("TXN_%d_%s", referenceNow().UnixMilli(), uuid.NewString()[:8])
}
