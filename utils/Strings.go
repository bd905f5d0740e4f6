package utils

import (
	"fmt"

	"github.com/google/uuid"
)

func GenerateRandomFilename(extension string) string {
	return fmt.Sprintf("%s.%s", uuid.New().String(), extension)
}
