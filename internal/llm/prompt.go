package llm

import "fmt"

// seedMessage primes the exchange before the actual instruction, matching the
// two-message conversation shape the extraction models respond best to.
const seedMessage = "Want analyze expenses"

// buildExtractionPrompt wraps the user's free text with the extraction
// instruction. The model must answer with a flat JSON object carrying exactly
// the keys category, cost and item, all values as lower-cased strings with no
// currency symbols.
func buildExtractionPrompt(input string) string {
	return fmt.Sprintf("%s - identify category of expense, cost and item precisely. "+
		"Keep all words in small letters, don't add currency symbols. "+
		"Return the result as a perfect flat JSON object with exactly the string keys "+
		"\"category\", \"cost\" and \"item\", all values as strings.", input)
}
