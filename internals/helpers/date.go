package helper

import (
	"fmt"
	"strings"
	"time"
)

// Format tanggal date-only yang dipakai attendance & trainings.
const DateLayout = "2006-01-02"

// Today mengembalikan tanggal hari ini (local) dalam YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DateLayout)
}

// NormalizeDate memvalidasi string tanggal; kosong → hari ini.
func NormalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Today(), nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	}
	return t.Format(DateLayout), nil
}
