package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func init() {
	lint.Register(AnA)
}

// AnA flags "a" before a vowel sound and "an" before a consonant sound.
var AnA = lint.RuleDef{
	Name:        "AnA",
	Description: "Checks that the indefinite article matches the sound of the following word.",
	Severity:    lint.SeverityWarning,
	Check:       checkAnA,
	BadExample:  "a apple and an banana",
	GoodExample: "an apple and a banana",
}

// Words that start with a vowel letter but a consonant sound, and the reverse.
var (
	consonantSoundPrefixes = []string{"uni", "use", "usu", "uti", "ure", "eu", "ewe", "one", "once", "ubiq", "uto"}
	vowelSoundPrefixes     = []string{"hour", "honest", "honor", "honour", "heir"}
)

// acronymVowelLetters are letters whose spoken name starts with a vowel sound.
const acronymVowelLetters = "AEFHILMNORSX"

func checkAnA(doc *document.Document, _ lint.Context) []lint.Lint {
	tokens := doc.Tokens()
	var lints []lint.Lint

	for i := 0; i+2 < len(tokens); i++ {
		if !tokens[i].IsWord() || !tokens[i+1].IsWhitespace() {
			continue
		}
		article := doc.TokenText(tokens[i])
		lower := strings.ToLower(article)
		if lower != "a" && lower != "an" {
			continue
		}
		next := tokens[i+2]
		var vowel bool
		switch {
		case next.IsWord():
			vowel = startsWithVowelSound(doc.TokenText(next))
		case next.IsNumber():
			vowel = numberStartsWithVowelSound(doc.TokenText(next))
		default:
			continue
		}

		switch {
		case vowel && lower == "a":
			lints = append(lints, newLint(tokens[i].Span, "Use “an” before a word that starts with a vowel sound.", matchCase(article, "an")))
		case !vowel && lower == "an":
			lints = append(lints, newLint(tokens[i].Span, "Use “a” before a word that starts with a consonant sound.", matchCase(article, "a")))
		}
	}
	return lints
}

func startsWithVowelSound(word string) bool {
	if utf8.RuneCountInString(word) > 1 && isUpperWord(word) && len(word) <= 5 {
		return strings.IndexByte(acronymVowelLetters, word[0]) >= 0
	}
	w := strings.ToLower(word)
	for _, p := range vowelSoundPrefixes {
		if strings.HasPrefix(w, p) {
			return true
		}
	}
	for _, p := range consonantSoundPrefixes {
		if strings.HasPrefix(w, p) {
			return false
		}
	}
	return w != "" && strings.IndexByte("aeiou", w[0]) >= 0
}

// numberStartsWithVowelSound covers "an 8", "an 11", "an 18" and "an 80".
func numberStartsWithVowelSound(num string) bool {
	digits := strings.ReplaceAll(num, ",", "")
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		digits = digits[:i]
	}
	if strings.HasPrefix(digits, "8") {
		return true
	}
	// 11 and 18 are read "eleven" and "eighteen" when they lead a group of
	// three: 11, 18, 11,000, 18,500.
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	return lead == 2 && (strings.HasPrefix(digits, "11") || strings.HasPrefix(digits, "18"))
}
