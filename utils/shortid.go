package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HashLength is the length of public short ids ("hash") on curriculum rows
const HashLength = 8

// NewHash returns a random short id candidate. A hash must contain at
// least one letter; an all-digit hash would also parse as a numeric id
// and the two lookup namespaces must not overlap.
func NewHash() string {
	for {
		candidate := strings.ReplaceAll(uuid.NewString(), "-", "")[:HashLength]
		if strings.ContainsAny(candidate, "abcdef") {
			return candidate
		}
	}
}

// GenerateHash returns a short id that is not yet used in the given
// table's hash column. The column carries a unique index, so the check
// here plus the index make collisions impossible rather than unlikely.
func GenerateHash(db *gorm.DB, tableName string) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		candidate := NewHash()

		var count int64
		if err := db.Table(tableName).Where("hash = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate unique hash for table %s", tableName)
}
