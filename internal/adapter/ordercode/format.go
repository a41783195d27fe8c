package ordercode

import (
	"fmt"

	"github.com/polkiloo/restomart/internal/domain/model"
)

// CounterKey names the sequence a code is drawn from: one per year, sex and classification.
func CounterKey(key model.OrderCodeKey) string {
	return fmt.Sprintf("%04d-%s-%s", key.Year, sexLetter(key.Sex), classificationLetter(key.Classification))
}

// Format renders a code such as 26HC0007: two-digit year, sex letter,
// classification letter and the zero-padded sequence number.
func Format(key model.OrderCodeKey, seq int64) string {
	return fmt.Sprintf("%02d%s%s%04d", key.Year%100, sexLetter(key.Sex), classificationLetter(key.Classification), seq)
}

func sexLetter(s model.Sex) string {
	switch s {
	case model.SexMale:
		return "H"
	case model.SexFemale:
		return "F"
	default:
		return "X"
	}
}

func classificationLetter(c model.Classification) string {
	switch c {
	case model.ClassificationClientOffers:
		return "O"
	case model.ClassificationCompanyGift:
		return "G"
	default:
		return "C"
	}
}
