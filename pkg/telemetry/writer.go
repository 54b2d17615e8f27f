package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// Writer 把记录追加写入 CSV，表头只写一次
// nil Writer 的所有方法都是空操作（输出被禁用）
type Writer struct {
	out           io.Writer
	headerWritten bool
	rows          int
}

// NewWriter 创建写入器，out 为 nil 时返回 nil（输出被禁用）
func NewWriter(out io.Writer) *Writer {
	if out == nil {
		return nil
	}
	return &Writer{out: out}
}

// Write 写入一批记录
func (w *Writer) Write(records []TickRecord) error {
	if w == nil || len(records) == 0 {
		return nil
	}

	if !w.headerWritten {
		// 第一次写入包含表头
		if err := gocsv.Marshal(records, w.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		w.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, w.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}

	w.rows += len(records)
	return nil
}

// Rows 返回已写入的记录数
func (w *Writer) Rows() int {
	if w == nil {
		return 0
	}
	return w.rows
}

// ReadRecords 读回 CSV，用于离线分析
func ReadRecords(in io.Reader) ([]TickRecord, error) {
	var records []TickRecord
	if err := gocsv.Unmarshal(in, &records); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return records, nil
}
