package catalog

import "testing"

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "watch URL",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "short URL",
			input: "https://youtu.be/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "embed URL",
			input: "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "v path",
			input: "https://www.youtube.com/v/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "watch URL with extra params",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "bare identifier",
			input: "dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "not a url",
			input: "not a url",
			ok:    false,
		},
		{
			name:  "short URL with truncated id",
			input: "https://youtu.be/dQw4w9",
			ok:    false,
		},
		{
			name:  "empty input",
			input: "",
			ok:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tc.input)
			if ok != tc.ok {
				t.Fatalf("ExtractVideoID(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestExtractVideoIDIdempotent(t *testing.T) {
	inputs := []string{
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"dQw4w9WgXcQ",
	}
	for _, in := range inputs {
		first, ok := ExtractVideoID(in)
		if !ok {
			t.Fatalf("first extraction of %q failed", in)
		}
		second, ok := ExtractVideoID(first)
		if !ok {
			t.Fatalf("re-extraction of %q failed", first)
		}
		if second != first {
			t.Errorf("ExtractVideoID not idempotent: %q -> %q -> %q", in, first, second)
		}
	}
}
