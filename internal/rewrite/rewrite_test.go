package rewrite

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_NoMatch_ReturnsInputUnchanged(t *testing.T) {
	re := regexp.MustCompile(`\d+`)

	out, fired, events := Run(re, func(m []string, _ *[]Event) string {
		return "X"
	}, "no digits here")

	require.False(t, fired)
	require.Equal(t, "no digits here", out)
	require.Empty(t, events)
}

func TestRun_MultipleMatches_SubstitutesEachInOrder(t *testing.T) {
	re := regexp.MustCompile(`(\w+)=(\w+)`)

	out, fired, _ := Run(re, func(m []string, _ *[]Event) string {
		return m[2] + "=" + m[1]
	}, "a=1 b=2")

	require.True(t, fired)
	require.Equal(t, "1=a 2=b", out)
}

func TestRun_UnmatchedOptionalGroup_YieldsEmptySubmatch(t *testing.T) {
	re := regexp.MustCompile(`x(y)?z`)

	var got []string
	out, fired, _ := Run(re, func(m []string, _ *[]Event) string {
		got = append([]string{}, m...)
		return "ok"
	}, "xz")

	require.True(t, fired)
	require.Equal(t, "ok", out)
	require.Equal(t, []string{"xz", ""}, got)
}

func TestRun_HandlerEvents_CollectedInMatchOrder(t *testing.T) {
	re := regexp.MustCompile(`\[(\w+)\]`)

	out, fired, events := Run(re, func(m []string, events *[]Event) string {
		*events = append(*events, Event{Name: m[1]})
		return ""
	}, "[first] and [second]")

	require.True(t, fired)
	require.Equal(t, " and ", out)
	require.Len(t, events, 2)
	require.Equal(t, "first", events[0].Name)
	require.Equal(t, "second", events[1].Name)
}

func TestRun_ReplacementIsLiteral_NoExpansion(t *testing.T) {
	re := regexp.MustCompile(`a`)

	out, fired, _ := Run(re, func(m []string, _ *[]Event) string {
		return "$1${2}"
	}, "a")

	require.True(t, fired)
	require.Equal(t, "$1${2}", out)
	require.False(t, strings.Contains(out, "a"))
}
