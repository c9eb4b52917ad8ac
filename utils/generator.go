package utils

import (
	"math/rand"
	"time"

	"github.com/devgupta2601/tuition_hub/models"
	"gorm.io/gorm"
)

const referenceLength = 10
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTransactionReference returns a ledger reference code not yet used
// by any wallet transaction.
func GenerateTransactionReference(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, referenceLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := "TX-" + string(b)

		var count int64
		if err := tx.Model(&models.WalletTransaction{}).Where("reference = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
}
