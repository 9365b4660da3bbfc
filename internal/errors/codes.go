package errors

// Error codes reported by the Tiny front end.
//
// Error code ranges:
// E0100-E0109: Lexical errors
// E0110-E0119: Syntax errors
// E0900-E0999: Reserved for tooling errors
const (
	// E0100: A character no token rule accepts
	ErrorUnexpectedCharacter = "E0100"

	// E0110: The grammar required a different token
	ErrorUnexpectedToken = "E0110"

	// E0111: The token stream ended inside a construct
	ErrorUnexpectedEOF = "E0111"

	// E0112: Tokens remain after the closing 'end'
	ErrorTrailingInput = "E0112"
)

// ErrorDescriptions maps error codes to short descriptions.
var ErrorDescriptions = map[string]string{
	ErrorUnexpectedCharacter: "unexpected character",
	ErrorUnexpectedToken:     "unexpected token",
	ErrorUnexpectedEOF:       "unexpected end of input",
	ErrorTrailingInput:       "trailing input after program",
}

// GetErrorDescription returns the description for an error code
func GetErrorDescription(code string) string {
	if desc, ok := ErrorDescriptions[code]; ok {
		return desc
	}
	return "unknown error"
}
