package xlsexport

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	fontFamily  = "Times New Roman"
	columnWidth = 25
)

// sheetWriter пишет таблицу на один лист: заголовок в первой строке, данные ниже
type sheetWriter struct {
	f         *excelize.File
	sheet     string
	columns   int
	row       int
	headStyle int
	cellStyle int
}

func newSheetWriter(f *excelize.File, sheet string, columns int) (*sheetWriter, error) {
	headStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Font:      &excelize.Font{Bold: true, Family: fontFamily, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Font:      &excelize.Font{Family: fontFamily, Size: 11},
	})
	if err != nil {
		return nil, err
	}
	return &sheetWriter{
		f:         f,
		sheet:     sheet,
		columns:   columns,
		headStyle: headStyle,
		cellStyle: cellStyle,
	}, nil
}

func (w *sheetWriter) header(headers []string) error {
	if err := w.writeRow(headers2values(headers), w.headStyle); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(w.columns)
	if err != nil {
		return err
	}
	if err = w.f.SetColWidth(w.sheet, "A", lastCol, columnWidth); err != nil {
		return err
	}
	// шапка остается на месте при прокрутке
	return w.f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (w *sheetWriter) data(values []interface{}) error {
	return w.writeRow(values, w.cellStyle)
}

// filter автофильтр по шапке и всем строкам данных
func (w *sheetWriter) filter() error {
	if w.row < 2 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(w.columns, w.row)
	if err != nil {
		return err
	}
	return w.f.AutoFilter(w.sheet, "A1:"+last, nil)
}

func (w *sheetWriter) writeRow(values []interface{}, style int) error {
	w.row++
	first, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err = w.f.SetSheetRow(w.sheet, first, &values); err != nil {
		return errors.Wrapf(err, "строка %d", w.row)
	}
	last, err := excelize.CoordinatesToCellName(w.columns, w.row)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, first, last, style)
}

func headers2values(headers []string) []interface{} {
	result := make([]interface{}, len(headers))
	for idx, header := range headers {
		result[idx] = header
	}
	return result
}
