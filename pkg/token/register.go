package token

import (
	"maps"
	"strings"
	"sync"
)

// dynamicTable holds keywords added by dialects at init time. Their types
// are allocated after maxBuiltin.
type dynamicTable struct {
	mu     sync.RWMutex
	last   TokenType
	names  map[TokenType]string
	byWord map[string]TokenType
}

var dynamic = &dynamicTable{
	last:   maxBuiltin,
	names:  make(map[TokenType]string),
	byWord: make(map[string]TokenType),
}

// Register returns the token type of a keyword, allocating a dynamic type
// when neither the shared grammar nor an earlier call knows the word.
// Words are case-insensitive. Safe for concurrent use.
func Register(name string) TokenType {
	if tok, ok := keywords[strings.ToLower(name)]; ok {
		return tok
	}
	word := strings.ToUpper(name)

	dynamic.mu.Lock()
	defer dynamic.mu.Unlock()
	if tok, ok := dynamic.byWord[word]; ok {
		return tok
	}
	dynamic.last++
	dynamic.names[dynamic.last] = word
	dynamic.byWord[word] = dynamic.last
	return dynamic.last
}

func getDynamicName(t TokenType) (string, bool) {
	if !IsDynamic(t) {
		return "", false
	}
	dynamic.mu.RLock()
	defer dynamic.mu.RUnlock()
	name, ok := dynamic.names[t]
	return name, ok
}

// LookupDynamicKeyword returns the type registered for a word, or IDENT and
// false.
func LookupDynamicKeyword(name string) (TokenType, bool) {
	dynamic.mu.RLock()
	defer dynamic.mu.RUnlock()
	tok, ok := dynamic.byWord[strings.ToUpper(name)]
	if !ok {
		return IDENT, false
	}
	return tok, true
}

// IsDynamic reports whether t was allocated by Register.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}

// RegisteredTokens returns a snapshot of the dynamic keywords.
func RegisteredTokens() map[TokenType]string {
	dynamic.mu.RLock()
	defer dynamic.mu.RUnlock()
	return maps.Clone(dynamic.names)
}
