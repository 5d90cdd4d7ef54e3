package file

import (
	"encoding/csv"
	"errors"
	"strconv"
	"strings"
)

// decodeCSV reads Category,Value,Question,OptionA..OptionD,CorrectAnswer rows,
// one per line. A first row that looks like a header is skipped, as are rows
// with fewer than eight fields and lines that do not parse as CSV.
func decodeCSV(data []byte) ([]record, error) {
	var records []record
	first := true
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row, err := parseCSVLine(line)
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				first = false
				continue
			}
			return nil, err
		}
		if first {
			first = false
			if looksLikeHeader(row) {
				continue
			}
		}
		if len(row) < 8 {
			continue
		}
		value, _ := strconv.Atoi(strings.TrimSpace(row[1]))
		records = append(records, record{
			Category: row[0],
			Value:    value,
			Prompt:   row[2],
			Options:  [4]string{row[3], row[4], row[5], row[6]},
			Answer:   row[7],
		})
	}
	return records, nil
}

func parseCSVLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.Read()
}

func looksLikeHeader(row []string) bool {
	line := strings.ToLower(strings.TrimSpace(strings.Join(row, ",")))
	return strings.HasPrefix(line, "id") ||
		strings.Contains(line, "category") ||
		strings.Contains(line, "value") ||
		strings.Contains(line, "question")
}
