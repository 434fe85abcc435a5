package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)
}

func TestGetSimpleTextEmptyEOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetSecret(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte(" s3cr3t \n"), nil }

	var out bytes.Buffer
	got, err := GetSecret(&out, "Client secret")
	require.NoError(t, err)
	require.Equal(t, "s3cr3t", got)
	require.Equal(t, "Client secret: \n", out.String())
}

func TestGetSecret_Error(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }

	var out bytes.Buffer
	_, err := GetSecret(&out, "Client secret")
	require.Error(t, err)
}

func TestParseShareArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    shareArgs
		wantErr string
	}{
		{
			name: "values only",
			args: []string{"score=100", "kills=3"},
			want: shareArgs{values: map[string]string{"score": "100", "kills": "3"}},
		},
		{
			name: "name and id",
			args: []string{"-name", "pablo", "score=1", "-id", "abc"},
			want: shareArgs{values: map[string]string{"score": "1"}, name: "pablo", id: "abc"},
		},
		{
			name: "empty value allowed",
			args: []string{"score="},
			want: shareArgs{values: map[string]string{"score": ""}},
		},
		{name: "no values", args: []string{"-name", "pablo"}, wantErr: "at least one"},
		{name: "missing flag value", args: []string{"score=1", "-name"}, wantErr: "needs a value"},
		{name: "not a pair", args: []string{"score"}, wantErr: "expected key=value"},
		{name: "empty key", args: []string{"=1"}, wantErr: "expected key=value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseShareArgs(tt.args)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
