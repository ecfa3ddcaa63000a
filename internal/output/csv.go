package output

import (
	"bytes"
	"encoding/csv"
)

// CSVFormatter writes section rows as section,label,value records, then
// the table (if any) with its own header.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if len(r.Sections) > 0 {
		if err := w.Write([]string{"section", "label", "value"}); err != nil {
			return nil, err
		}
		for _, s := range r.Sections {
			for _, row := range s.Rows {
				if err := w.Write([]string{s.Heading, row.Label, row.Value}); err != nil {
					return nil, err
				}
			}
		}
	}

	if r.Table != nil {
		if len(r.Sections) > 0 {
			// csv.Writer cannot emit an empty record; a blank line separates the blocks
			w.Flush()
			buf.WriteString("\n")
		}
		if err := w.Write(r.Table.Header); err != nil {
			return nil, err
		}
		if err := w.WriteAll(r.Table.Rows); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
