package export

import (
	"encoding/csv"
	"io"

	"github.com/Dicklesworthstone/sysmonlog/internal/model"
)

// CSV writes a header row with model.Columns followed by one row per sample.
type CSV struct {
	Path string
}

func (c CSV) Format() string      { return "csv" }
func (c CSV) Destination() string { return c.Path }

func (c CSV) Export(samples []model.Sample) error {
	err := writeAtomic(c.Path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(model.Columns); err != nil {
			return err
		}
		for _, s := range samples {
			if err := cw.Write(s.Record()); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	return wrap(c.Format(), c.Path, err)
}
