// Package sequence formats the human-readable document numbers handed out by
// the atomic counter in the sequences table.
package sequence

import (
	"context"
	"fmt"
	"time"
)

const (
	KeyPurchase         = "purchase"
	keyReturnBatchStem  = "return_batch:"
	returnBatchDayStamp = "20060102"
)

// Counter hands out strictly increasing values per key, starting at 1.
type Counter interface {
	Next(ctx context.Context, key string) (int64, error)
}

// PurchaseNumber renders PO-<seq+offset>, e.g. PO-1001 for the first purchase.
func PurchaseNumber(seq, offset int64) string {
	return fmt.Sprintf("PO-%d", seq+offset)
}

// ReturnBatchKey scopes the batch counter to one calendar day.
func ReturnBatchKey(day time.Time) string {
	return keyReturnBatchStem + day.Format(returnBatchDayStamp)
}

// ReturnBatchNumber renders GP-YYYYMMDD-<seq>.
func ReturnBatchNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("GP-%s-%d", day.Format(returnBatchDayStamp), seq)
}
