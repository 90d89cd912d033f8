package symbols

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/doxfix/internal/util/sets"
)

// Token kinds emitted by the upstream highlighter and by reclassification.
const (
	KindName        = "n"  // plain name
	KindLabel       = "nl" // label
	KindBuiltinType = "kt" // built-in type
	KindOperator    = "o"  // operator (:: between qualifier tokens)
	KindType        = "ut" // user-defined type
	KindEnum        = "ne" // enum value
	KindNamespace   = "ns" // namespace
	KindKeyword     = "k"
	KindMacro       = "m"
	KindComment     = "cm"
	KindStringAffix = "sa"
)

var (
	// qualifierTokenRe matches a single token that can participate in a
	// namespace-qualified chain: a bare identifier, a :: separator, or an
	// identifier glued to a separator on either side.
	qualifierTokenRe = regexp.MustCompile(`\A(?:::|[a-zA-Z_][a-zA-Z_0-9]*|::[a-zA-Z_][a-zA-Z_0-9]*|[a-zA-Z_][a-zA-Z_0-9]*::)\z`)

	// qualifiedChainRe matches a whole, optionally root-qualified chain.
	qualifiedChainRe = regexp.MustCompile(`\A(?:::)?[a-zA-Z_][a-zA-Z_0-9]*(?:::[a-zA-Z_][a-zA-Z_0-9]*)*(?:::)?\z`)
)

// IsQualifierToken reports whether text can be part of a compound name run.
func IsQualifierToken(text string) bool { return qualifierTokenRe.MatchString(text) }

// IsQualifiedChain reports whether text is a well-formed dotted chain.
func IsQualifiedChain(text string) bool { return qualifiedChainRe.MatchString(text) }

// languageKeywords are keywords the upstream highlighter sometimes mis-tags
// as functions, builtin types or reserved words.
var languageKeywords = sets.New(
	"alignas", "alignof", "bool", "char", "char16_t", "char32_t", "char8_t",
	"class", "const", "consteval", "constexpr", "constinit", "do", "double",
	"else", "explicit", "false", "float", "if", "inline", "int", "long",
	"mutable", "noexcept", "short", "signed", "sizeof", "struct", "template",
	"true", "typename", "unsigned", "void", "wchar_t", "while",
)

// IsKeyword reports whether text is an actual language keyword.
func IsKeyword(text string) bool { return languageKeywords.Has(text) }

// Classifier holds the frozen pattern sets. Read-only after Compile.
type Classifier struct {
	namespaces      *regexp.Regexp
	types           *regexp.Regexp
	enums           *regexp.Regexp
	stringLiterals  *regexp.Regexp
	numericLiterals *regexp.Regexp
	macros          []*regexp.Regexp
}

// IsStringLiteralSuffix reports whether text is a configured string-literal
// suffix.
func (c *Classifier) IsStringLiteralSuffix(text string) bool {
	return fullMatch(c.stringLiterals, text)
}

// IsNumericLiteralSuffix reports whether text is a configured
// numeric-literal suffix.
func (c *Classifier) IsNumericLiteralSuffix(text string) bool {
	return fullMatch(c.numericLiterals, text)
}

// IsMacro reports whether text matches a configured macro name pattern.
func (c *Classifier) IsMacro(text string) bool {
	for _, re := range c.macros {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Token is one classified leaf inside a rendered code block.
type Token struct {
	Kind string
	Text string
}

// Mark records a kind change for the token at Index.
type Mark struct {
	Index int
	Kind  string
}

// Collapse records that the first Count tokens of the run merge into a
// single namespace token carrying Text. The merged token only takes the
// namespace kind when the surviving token was previously a plain name, label
// or built-in type.
type Collapse struct {
	Count int
	Text  string
}

// Result is the outcome of classifying one compound-name run. It is a pure
// description; the caller applies it to the tree as one edit.
type Result struct {
	Marks    []Mark
	Collapse *Collapse
}

// Matched reports whether classification identified anything in the run.
func (r Result) Matched() bool { return len(r.Marks) > 0 || r.Collapse != nil }

func concatTokens(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func trimTrailingSeparators(tokens []Token) []Token {
	for len(tokens) > 0 && tokens[len(tokens)-1].Text == "::" {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// ClassifyCompound classifies a maximal compound-name run, longest match
// first: known enum values mark the trailing token and recurse on the
// remainder, then known types the same way, then the run is shortened from
// the right until a known namespace prefix remains, which collapses into one
// namespace token. The input slice is not modified.
func (c *Classifier) ClassifyCompound(tokens []Token) Result {
	var res Result
	c.classify(tokens, &res)
	return res
}

// classify operates on prefixes of the original run, so len(prefix)-1 is an
// absolute index.
func (c *Classifier) classify(tokens []Token, res *Result) {
	if len(tokens) == 0 {
		return
	}
	full := concatTokens(tokens)

	if fullMatch(c.enums, full) {
		res.Marks = append(res.Marks, Mark{Index: len(tokens) - 1, Kind: KindEnum})
		c.classify(trimTrailingSeparators(tokens[:len(tokens)-1]), res)
		return
	}

	if fullMatch(c.types, full) {
		res.Marks = append(res.Marks, Mark{Index: len(tokens) - 1, Kind: KindType})
		c.classify(trimTrailingSeparators(tokens[:len(tokens)-1]), res)
		return
	}

	for !fullMatch(c.namespaces, full) {
		tokens = trimTrailingSeparators(tokens[:len(tokens)-1])
		if len(tokens) == 0 {
			return
		}
		full = concatTokens(tokens)
	}
	res.Collapse = &Collapse{Count: len(tokens), Text: full}
}
