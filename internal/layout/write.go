package layout

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

// WriteJSON writes recs as an indented JSON array.
func WriteJSON(w io.Writer, recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

// WriteCSV writes recs with a header row, one rectangle per line.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"xmin", "xmax", "ymin", "ymax", "layer", "datatype"}); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			strconv.Itoa(int(r.XMin)),
			strconv.Itoa(int(r.XMax)),
			strconv.Itoa(int(r.YMin)),
			strconv.Itoa(int(r.YMax)),
			strconv.Itoa(int(r.Layer)),
			strconv.Itoa(int(r.Datatype)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Extent returns the largest XMax and YMax over recs, or zeros when recs is
// empty.
func Extent(recs []Record) (x, y int64) {
	for _, r := range recs {
		x = max(x, int64(r.XMax))
		y = max(y, int64(r.YMax))
	}
	return x, y
}
