package telemetry

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary 一组数值的描述统计
type Summary struct {
	N    int
	Mean float64
	Std  float64 // 样本标准差，N < 2 时为 0
	P10  float64
	P50  float64
	P90  float64
	Min  float64
	Max  float64
}

// Summarize 计算描述统计，空输入返回零值
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s := Summary{
		N:   n,
		P10: stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50: stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90: stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Min: floats.Min(sorted),
		Max: floats.Max(sorted),
	}
	if n < 2 {
		s.Mean = sorted[0]
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	return s
}

// String 单行格式
func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.2f std=%.2f p10=%.2f p50=%.2f p90=%.2f min=%.2f max=%.2f",
		s.N, s.Mean, s.Std, s.P10, s.P50, s.P90, s.Min, s.Max)
}
