// Package export 按显式列表把记录写成 CSV 或 Excel
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Column 导出列：表头与取值函数
type Column[T any] struct {
	Header string
	Value  func(*T) string
}

// Headers 全部表头
func Headers[T any](cols []Column[T]) []string {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	return headers
}

// Row 单条记录的全部列值
func Row[T any](cols []Column[T], rec *T) []string {
	row := make([]string, len(cols))
	for i, c := range cols {
		row[i] = c.Value(rec)
	}
	return row
}

// WriteCSV 写入表头与全部记录
func WriteCSV[T any](w io.Writer, cols []Column[T], records []T) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers(cols)); err != nil {
		return err
	}
	for i := range records {
		if err := cw.Write(Row(cols, &records[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX 以单个工作表写入 Excel
func WriteXLSX[T any](w io.Writer, sheet string, cols []Column[T], records []T) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: c.Header}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i := range records {
		values := Row(cols, &records[i])
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("写入第 %d 行失败: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}
