package output

import (
	"encoding/json"
)

// JSONFormatter marshals the raw result carried by the report
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if j.Pretty {
		data, err = json.MarshalIndent(r.Data, "", "  ")
	} else {
		data, err = json.Marshal(r.Data)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
