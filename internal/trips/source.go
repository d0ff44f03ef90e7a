package trips

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"tarediiran-industries.com/bikeshare-tools/internal/db"
)

// Source yields a city's trip records, header row first.
type Source interface {
	Records(ctx context.Context) ([][]string, error)
	String() string
}

type CSVSource struct {
	Path string
}

func (source CSVSource) String() string {
	return source.Path
}

func (source CSVSource) Records(ctx context.Context) ([][]string, error) {
	file, err := os.Open(source.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source.Path, err)
	}

	return records, ctx.Err()
}

// SQLSource reads every row of a table. NULLs become empty strings.
type SQLSource struct {
	DB    db.DBTX
	Table string
}

func (source SQLSource) String() string {
	return "table " + source.Table
}

func (source SQLSource) Records(ctx context.Context) ([][]string, error) {
	rows, err := source.DB.QueryContext(ctx, db.BuildSelectAllQuery(source.Table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", source.Table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := [][]string{columns}

	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", source.Table, err)
		}

		record := make([]string, len(columns))
		for i, value := range values {
			record[i] = formatValue(value)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows %s: %w", source.Table, err)
	}

	return records, nil
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(timestampLayouts[0])
	default:
		return fmt.Sprint(v)
	}
}
