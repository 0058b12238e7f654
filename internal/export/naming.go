package export

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// NormalizeDir возвращает dir ровно с одним разделителем на конце.
func NormalizeDir(dir string) string {
	sep := string(os.PathSeparator)
	if dir == "" {
		return "." + sep
	}
	trimmed := strings.TrimRight(dir, sep)
	if trimmed == "" && strings.HasPrefix(dir, sep) {
		return sep
	}
	return trimmed + sep
}

// PadWidth — число десятичных цифр в n. Номера 1..n с такой шириной
// сортируются как строки в числовом порядке.
func PadWidth(n int) int {
	if n < 1 {
		return 1
	}
	return len(strconv.Itoa(n))
}

// SequenceName — имя файла кадра index (с 1) из total.
func SequenceName(prefix string, index, total int, f Format) string {
	return fmt.Sprintf("%s-table-%0*d%s", prefix, PadWidth(total), index, f.Ext())
}

// MatrixName — имя файла матрицы с заданным размером ячейки.
func MatrixName(prefix string, cellWidth, cellHeight int, f Format) string {
	return fmt.Sprintf("%s-table-%d-%d%s", prefix, cellWidth, cellHeight, f.Ext())
}
