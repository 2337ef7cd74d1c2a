package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExitCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil is success", nil, ExitOK},
		{"untagged error", errors.New("boom"), ExitError},
		{"usage", Errorf(KindUsage, "missing flag"), ExitUsage},
		{"missing dependency", Errorf(KindMissingDependency, "no http client"), ExitMissingDependency},
		{"malformed token", Errorf(KindMalformedToken, "bad token"), ExitError},
		{"insufficient scope", Errorf(KindInsufficientScope, "no scope"), ExitError},
		{"missing issuer", Errorf(KindMissingIssuer, "no iss"), ExitError},
		{"http failure", Errorf(KindHTTP, "403"), ExitError},
		{"wrapped usage keeps its code", fmt.Errorf("context: %w", Errorf(KindUsage, "bad flag")), ExitUsage},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, ExitCode(c.err))
		})
	}
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, Wrap(KindUsage, nil))
}

func TestWrapPreservesUnderlyingError(t *testing.T) {
	err := Wrap(KindGeneral, fmt.Errorf("open file: %w", fs.ErrNotExist))
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Equal(t, KindGeneral, KindOf(err))
}
