package watchlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"anilistbot/pkg/models"
)

var csvHeader = []string{"user_id", "anime_id", "name_romaji", "name_english", "link", "added_at"}

// WriteCSV writes entries with a header row.
func WriteCSV(w io.Writer, entries []models.WatchlistEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		added := ""
		if !e.AddedAt.IsZero() {
			added = e.AddedAt.UTC().Format(time.RFC3339)
		}
		if err := cw.Write([]string{
			e.UserID,
			strconv.Itoa(e.AnimeID),
			e.NameRomaji,
			e.NameEnglish,
			e.Link,
			added,
		}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file written by WriteCSV. Columns are matched by header
// name, so extra or reordered columns are fine; rows missing a user or anime
// id are skipped.
func ReadCSV(r io.Reader) ([]models.WatchlistEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	var out []models.WatchlistEntry
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		userID := valueAt(header, row, "user_id")
		rawID := valueAt(header, row, "anime_id")
		if userID == "" || rawID == "" {
			continue
		}
		animeID, err := strconv.Atoi(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse anime_id on line %d: %w", line, err)
		}

		e := models.WatchlistEntry{
			UserID:      userID,
			AnimeID:     animeID,
			NameRomaji:  valueAt(header, row, "name_romaji"),
			NameEnglish: valueAt(header, row, "name_english"),
			Link:        valueAt(header, row, "link"),
		}
		if raw := valueAt(header, row, "added_at"); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, fmt.Errorf("parse added_at on line %d: %w", line, err)
			}
			e.AddedAt = t.UTC()
		}
		out = append(out, e)
	}
	return out, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	header := make(map[string]int, len(row))
	for i, name := range row {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
