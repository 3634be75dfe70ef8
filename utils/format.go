package utils

import "time"

const chineseTimeLayout = "2006/01/02 15:04:05"

// FormatChineseTime returns the timestamp in the zh-CN display format used by
// exports, in local time.
func FormatChineseTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(chineseTimeLayout)
}

// FormatChineseTimePtr returns the formatted time for pointer values.
func FormatChineseTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatChineseTime(*t)
}
