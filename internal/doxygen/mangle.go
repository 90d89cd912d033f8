// Package doxygen deals with the upstream extractor's artifacts: compound id
// mangling, the intermediate XML, and running the generator toolchain.
package doxygen

import "strings"

var mangleReplacer = strings.NewReplacer(
	"_", "__",
	":", "_1",
	"/", "_2",
	"<", "_3",
	">", "_4",
	"*", "_5",
	"&", "_6",
	"|", "_7",
	".", "_8",
	"!", "_9",
	",", "_00",
	" ", "_01",
	"{", "_02",
	"}", "_03",
	"?", "_04",
	"^", "_05",
	"%", "_06",
	"(", "_07",
	")", "_08",
	"+", "_09",
	"=", "_0a",
	"$", "_0b",
	"\\", "_0c",
	"@", "_0d",
	"]", "_0e",
	"[", "_0f",
	"#", "_0g",
)

// MangleName reproduces the extractor's escapeCharsInString mapping, used to
// derive compound ids from names and paths. Uppercase letters become an
// underscore followed by the lowercase letter.
func MangleName(name string) string {
	name = mangleReplacer.Replace(name)
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('_')
			sb.WriteRune(r - 'A' + 'a')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
