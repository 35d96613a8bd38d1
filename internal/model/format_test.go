package model

import "testing"

func int64Ptr(v int64) *int64 { return &v }

func TestMediaFormat_SizeString(t *testing.T) {
	tests := []struct {
		name     string
		format   MediaFormat
		expected string
	}{
		{"unknown", MediaFormat{}, "Unknown size"},
		{"bytes", MediaFormat{Filesize: int64Ptr(512)}, "512.0 B"},
		{"kilobytes", MediaFormat{Filesize: int64Ptr(2048)}, "2.0 KB"},
		{"megabytes", MediaFormat{Filesize: int64Ptr(5 * 1024 * 1024)}, "5.0 MB"},
		{"gigabytes", MediaFormat{Filesize: int64Ptr(3 * 1024 * 1024 * 1024)}, "3.0 GB"},
		{"approx fallback", MediaFormat{FilesizeApprox: int64Ptr(1024)}, "1.0 KB"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.format.SizeString(); got != test.expected {
				t.Errorf("SizeString() = %q, expected %q", got, test.expected)
			}
		})
	}
}

func TestMediaFormat_SizeBytes_PrefersExact(t *testing.T) {
	f := MediaFormat{Filesize: int64Ptr(100), FilesizeApprox: int64Ptr(200)}
	if got := f.SizeBytes(); got != 100 {
		t.Errorf("SizeBytes() = %d, expected 100", got)
	}
}
