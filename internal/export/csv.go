package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/slitsim/internal/dynamo"
)

// RowCSV writes one line per column: index, screen coordinate, raw
// intensity and the normalized gray level.
func RowCSV(w io.Writer, row dynamo.Row, gray []uint8) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"column", "screen_x", "intensity", "gray"}); err != nil {
		return err
	}

	for i, v := range row {
		rec := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(dynamo.ScreenX(i, len(row)), 'f', 6, 64),
			strconv.FormatFloat(v, 'g', 10, 64),
			"",
		}
		if i < len(gray) {
			rec[3] = strconv.Itoa(int(gray[i]))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
