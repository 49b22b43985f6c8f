package util

import (
	"fmt"
	"math/rand"
)

var codeNames = []string{
	"Owl",
	"Heron",
	"Carabao",
	"Civet",
	"Tarsier",
	"Gecko",
	"Maya",
	"Pawikan",
}

// GenerateCodeName labels an anonymous inbox message in place of a sender.
func GenerateCodeName() string {
	return fmt.Sprintf("Anon %v", codeNames[rand.Intn(len(codeNames))])
}
