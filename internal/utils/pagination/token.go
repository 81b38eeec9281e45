package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeMultiFieldToken creates a token with any number of string fields.
// This provides flexibility for different pagination strategies.
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// EncodeEntryToken creates a token from an entry date and entry number, the
// sort key used when listing journal entries.
func EncodeEntryToken(entryDate time.Time, entryNumber int64) string {
	return EncodeMultiFieldToken(entryDate.Format(timeFormat), fmt.Sprintf("%d", entryNumber))
}

// DecodeEntryToken parses a token produced by EncodeEntryToken back into its
// entry date and entry number.
func DecodeEntryToken(token string) (time.Time, int64, error) {
	fields, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, 0, err
	}
	if len(fields) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (expected 2 fields, got %d)", len(fields))
	}

	entryDate, err := time.Parse(timeFormat, fields[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}

	var entryNumber int64
	if _, err := fmt.Sscanf(fields[1], "%d", &entryNumber); err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (entry number parse): %w", err)
	}

	return entryDate, entryNumber, nil
}
