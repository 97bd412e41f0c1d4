package token

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT TokenType = "IDENT" // lowercase: operations, type variables
	CONID TokenType = "CONID" // uppercase: constructors, type names
	INT   TokenType = "INT"

	COLON    TokenType = ":"
	EFFECT   TokenType = "--" // separates pre and post stacks in a signature
	COMMA    TokenType = ","
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"

	DATA    TokenType = "DATA"
	DEF     TokenType = "DEF"
	FOREIGN TokenType = "FOREIGN"
	MATCH   TokenType = "MATCH"
	END     TokenType = "END"
)

type Token struct {
	Type    TokenType
	Lexeme  string // the raw source text
	Literal string // the interpreted value (identical to Lexeme except for literals)
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"data":    DATA,
	"def":     DEF,
	"foreign": FOREIGN,
	"match":   MATCH,
	"end":     END,
}

// LookupIdent returns the keyword type for ident, or IDENT/CONID based on
// the case of the first rune.
func LookupIdent(ident string, upper bool) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if upper {
		return CONID
	}
	return IDENT
}
