package highlight_engine

import "unicode/utf8"

// isLetter reports whether b is an ASCII letter
func isLetter(b byte) bool {
	b |= 0x20
	return b >= 'a' && b <= 'z'
}

// Tokenize splits tag-free text into letter runs and single non-letter
// characters. Concatenating the tokens gives back text.
func Tokenize(text string) []Token {
	var tokens []Token
	start := 0
	i := 0
	for i < len(text) {
		if isLetter(text[i]) {
			i++
			continue
		}
		if i > start {
			tokens = append(tokens, Token{Text: text[start:i], Word: true})
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		tokens = append(tokens, Token{Text: text[i : i+size]})
		i += size
		start = i
	}
	if len(text) > start {
		tokens = append(tokens, Token{Text: text[start:], Word: true})
	}
	return tokens
}
