package utils

import (
	"testing"
	"time"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"13000000000",
		"13812345678",
		"15912345678",
		"19912345678",
	}
	for _, phone := range valid {
		if !ValidatePhone(phone) {
			t.Errorf("ValidatePhone(%q) = false, want true", phone)
		}
	}

	invalid := []string{
		"",
		"12812345678",  // second digit out of range
		"10812345678",  // second digit 0
		"23812345678",  // does not start with 1
		"1381234567",   // too short
		"138123456789", // too long
		"13812345abc",
		" 13812345678",
		"13812345678 ",
	}
	for _, phone := range invalid {
		if ValidatePhone(phone) {
			t.Errorf("ValidatePhone(%q) = true, want false", phone)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  张三  "); got != "张三" {
		t.Errorf("SanitizeInput trimming: %q", got)
	}
	if got := SanitizeInput("a\x00b"); got != "ab" {
		t.Errorf("SanitizeInput null bytes: %q", got)
	}
}

func TestFormatChineseTime(t *testing.T) {
	ts := time.Date(2025, 6, 1, 9, 5, 3, 0, time.Local)
	if got := FormatChineseTime(ts); got != "2025/06/01 09:05:03" {
		t.Errorf("FormatChineseTime = %q", got)
	}
	if got := FormatChineseTime(time.Time{}); got != "" {
		t.Errorf("zero time formatted as %q, want empty", got)
	}
	if got := FormatChineseTimePtr(nil); got != "" {
		t.Errorf("nil pointer formatted as %q, want empty", got)
	}
}
