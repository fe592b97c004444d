package ics

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLineUnfolding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain lines",
			input: "VERSION:2.0\nPRODID:x\n",
			want:  []string{"VERSION:2.0", "PRODID:x"},
		},
		{
			name:  "crlf stripped",
			input: "VERSION:2.0\r\nPRODID:x\r\n",
			want:  []string{"VERSION:2.0", "PRODID:x"},
		},
		{
			name:  "space continuation joined",
			input: "DESCRIPTION:part one\n and part two\n",
			want:  []string{"DESCRIPTION:part one and part two"},
		},
		{
			name:  "tab continuation joined",
			input: "DESCRIPTION:part one\n\tand part two\n",
			want:  []string{"DESCRIPTION:part oneand part two"},
		},
		{
			name:  "multiple folds",
			input: "SUMMARY:a\n b\n c\nUID:1\n",
			want:  []string{"SUMMARY:abc", "UID:1"},
		},
		{
			name:  "missing final newline",
			input: "END:VCALENDAR",
			want:  []string{"END:VCALENDAR"},
		},
		{
			name:  "blank line preserved as empty",
			input: "UID:1\n\nSUMMARY:s\n",
			want:  []string{"UID:1", "", "SUMMARY:s"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cs := NewCalendarStream(strings.NewReader(tc.input))
			var got []string
			for {
				l, err := cs.ReadLine()
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
				got = append(got, string(l))
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadLineEmptyStream(t *testing.T) {
	cs := NewCalendarStream(strings.NewReader(""))
	_, err := cs.ReadLine()
	assert.Equal(t, io.EOF, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestReadLineReaderFailure(t *testing.T) {
	cs := NewCalendarStream(failingReader{})
	_, err := cs.ReadLine()
	assert.ErrorIs(t, err, ErrRead)
}
