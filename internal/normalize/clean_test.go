package normalize

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "think block",
			in:   "<think>step 1\nstep 2</think>\n{\"mathjs\":\"x\"}",
			want: "{\"mathjs\":\"x\"}",
		},
		{
			name: "multiple think blocks",
			in:   "<think>a</think>x<think>b\n</think>y",
			want: "xy",
		},
		{
			name: "waiting filler",
			in:   "answer /waiting for user to provide the result/",
			want: "answer",
		},
		{
			name: "tool call filler",
			in:   "Please provide the result of the reasoning tool call.\nanswer",
			want: "answer",
		},
		{
			name: "planning lines",
			in:   "I'll think about this carefully.\nI'll analyze the input\nNow, I'll create the JSON\nresult",
			want: "result",
		},
		{
			name: "curly apostrophe",
			in:   "I’ll analyze it\nresult",
			want: "result",
		},
		{
			name: "planning phrase mid-line is kept",
			in:   "so I'll analyze later\nresult",
			want: "so I'll analyze later\nresult",
		},
		{
			name: "code fences",
			in:   "```json\n{\"a\":1}\n```",
			want: "{\"a\":1}",
		},
		{
			name: "nested markers collapse",
			in:   "<thi<think>x</think>nk>y</think>z",
			want: "z",
		},
		{
			name: "unterminated think is kept",
			in:   "<think>no end",
			want: "<think>no end",
		},
		{
			name: "whitespace",
			in:   "  \n x \n ",
			want: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Fatalf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"<think>a</think>{\"mathjs\":\"x\",\"latex\":\"x\"}",
		"I'll think about it\n\nx\ny",
		"<thi<think>x</think>nk>y</think>z",
		"```\nI'll analyze\n```\nresult",
		"plain",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
