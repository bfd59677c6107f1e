package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded token from a journal date and creation time.
// This is used for consistent pagination across different repositories.
func EncodeToken(journalDate time.Time, createdAt time.Time) string {
	tokenStr := fmt.Sprintf("%s|%s", journalDate.Format(timeFormat), createdAt.Format(timeFormat))
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into journal date and creation time.
func DecodeToken(token string) (time.Time, time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	tokenStr := string(decodedBytes)
	parts := strings.SplitN(tokenStr, "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	journalDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (journal date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return journalDate, createdAt, nil
}

// EncodeSeqToken creates a token from a posting sequence number and line number,
// used for General Ledger pagination where ordering is sequence-based.
func EncodeSeqToken(postingSeq int64, lineNo int) string {
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%d|%d", postingSeq, lineNo)))
}

// DecodeSeqToken decodes a sequence-based pagination token.
func DecodeSeqToken(token string) (int64, int, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	var postingSeq int64
	var lineNo int
	if _, err := fmt.Sscanf(string(decodedBytes), "%d|%d", &postingSeq, &lineNo); err != nil {
		return 0, 0, fmt.Errorf("invalid pagination token format (scan): %w", err)
	}
	return postingSeq, lineNo, nil
}
